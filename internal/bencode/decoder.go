package bencode

import (
	"log/slog"
)

// PiecesKey is the dictionary key whose value is read as a BBlob.
const PiecesKey = "pieces"

// Decoder walks a buffer holding one or more bencoded values. It is the
// parser context: the cursor, the nesting depth and the binary-payload flag
// all live here, so separate decoders never share state.
type Decoder struct {
	data []byte
	pos  int

	// binaryNext is set after a "pieces" key and consumed by the next value.
	binaryNext bool
	depth      int

	maxDepth int
	strict   bool
	logger   *slog.Logger
}

func NewDecoder(data []byte, opts ...Option) *Decoder {
	d := &Decoder{
		data:     data,
		maxDepth: DefaultMaxDepth,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Pos is the offset of the next unread byte.
func (d *Decoder) Pos() int {
	return d.pos
}

// More reports whether unread bytes remain.
func (d *Decoder) More() bool {
	return d.pos < len(d.data)
}

// Decode reads the value starting at Pos. On error the cursor is left where
// it was and no part of the value is returned.
func (d *Decoder) Decode() (Bvalue, error) {
	start := d.pos

	v, err := d.decodeValue()
	if err != nil {
		d.pos = start
		d.binaryNext = false
		d.depth = 0
		d.logger.Debug("decode failed", "start", start, "err", err)
		return nil, err
	}

	return v, nil
}

// Decode decodes the single document in data and returns its root value and
// the number of bytes it occupied. Bytes after the root value are logged as a
// warning, or rejected when WithStrict is given.
func Decode(data []byte, opts ...Option) (Bvalue, int, error) {
	d := NewDecoder(data, opts...)

	if len(data) == 0 {
		return nil, 0, &FormatError{Offset: 0, EOF: true, Reason: "empty input"}
	}

	v, err := d.Decode()
	if err != nil {
		return nil, 0, err
	}

	if d.pos != len(data) {
		if d.strict {
			return nil, 0, &FormatError{Offset: d.pos, Byte: data[d.pos], Reason: "trailing data after root value"}
		}
		d.logger.Warn("trailing bytes after root value", "consumed", d.pos, "length", len(data))
	}

	return v, d.pos, nil
}

// dispatch classifies a value by its lead byte.
func dispatch(b byte) Kind {
	switch {
	case b == 'i':
		return KindInteger
	case b >= '0' && b <= '9':
		return KindByteString
	case b == 'l':
		return KindList
	case b == 'd':
		return KindDictionary
	default:
		return KindInvalid
	}
}

func (d *Decoder) decodeValue() (Bvalue, error) {
	if d.pos >= len(d.data) {
		return nil, d.eof("expected value")
	}

	binary := d.binaryNext
	d.binaryNext = false

	b := d.data[d.pos]
	switch dispatch(b) {
	case KindInteger:
		return d.decodeInt()
	case KindByteString:
		return d.decodeString(binary)
	case KindList:
		return d.decodeList()
	case KindDictionary:
		return d.decodeDict()
	}

	return nil, d.fail(d.pos, "unrecognized lead byte")
}

func (d *Decoder) fail(off int, reason string) *FormatError {
	if off >= len(d.data) {
		return &FormatError{Offset: off, EOF: true, Reason: reason}
	}
	return &FormatError{Offset: off, Byte: d.data[off], Reason: reason}
}

func (d *Decoder) eof(reason string) *FormatError {
	return &FormatError{Offset: len(d.data), EOF: true, Reason: reason}
}
