package bencode

import "strconv"

// Kind identifies which variant a Bvalue holds.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInteger
	KindByteString
	KindBinaryBlob
	KindList
	KindDictionary
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindByteString:
		return "byte string"
	case KindBinaryBlob:
		return "binary blob"
	case KindList:
		return "list"
	case KindDictionary:
		return "dictionary"
	default:
		return "invalid"
	}
}

// Bvalue is a decoded bencode value. The set of implementations is closed:
// *BInt, *BString, *BBlob, *BList and *BDict.
//
// Offset is the position of the value's lead byte in the buffer it was decoded
// from and Consumed is the number of bytes its encoded form occupied there.
type Bvalue interface {
	Kind() Kind
	Offset() int
	Consumed() int
	MarshalBencode() ([]byte, error)

	bvalue()
}

type span struct {
	off int
	n   int
}

func (s span) Offset() int   { return s.off }
func (s span) Consumed() int { return s.n }

type BInt struct {
	span
	// Text is the digit text between 'i' and 'e', sign included.
	Text string
}

type BString struct {
	span
	// Data is the payload; Raw is the whole encoded form "<len>:<payload>".
	Data []byte
	Raw  []byte
}

// BBlob is a byte string that is not meant to be displayed, e.g. the
// concatenated SHA-1 hashes stored under "pieces".
type BBlob struct {
	span
	Data []byte
}

type BList struct {
	span
	Items []Bvalue
}

type Pair struct {
	Key   *BString
	Value Bvalue
}

// BDict keeps its pairs in the order they were read. Key order is not checked.
type BDict struct {
	span
	Pairs []Pair
}

func (*BInt) Kind() Kind    { return KindInteger }
func (*BString) Kind() Kind { return KindByteString }
func (*BBlob) Kind() Kind   { return KindBinaryBlob }
func (*BList) Kind() Kind   { return KindList }
func (*BDict) Kind() Kind   { return KindDictionary }

func (*BInt) bvalue()    {}
func (*BString) bvalue() {}
func (*BBlob) bvalue()   {}
func (*BList) bvalue()   {}
func (*BDict) bvalue()   {}

// Int64 converts the digit text. It fails only when the number does not fit.
func (i *BInt) Int64() (int64, error) {
	return strconv.ParseInt(i.Text, 10, 64)
}

func (s *BString) String() string {
	return string(s.Data)
}

func (l *BList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Items)
}

func (d *BDict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Pairs)
}

// Span returns the bytes of data that v was decoded from. data must be the
// buffer passed to the decoder that produced v.
func Span(data []byte, v Bvalue) []byte {
	if v == nil {
		return nil
	}
	start, end := v.Offset(), v.Offset()+v.Consumed()
	if start < 0 || end > len(data) || start > end {
		return nil
	}
	return data[start:end]
}
