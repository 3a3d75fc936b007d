package bencode

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// Encode serializes v back to bencode. Dictionaries are written in their
// stored order, so decoding then encoding a canonical document gives back the
// same bytes.
func Encode(v Bvalue) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func EncodeTo(w io.Writer, v Bvalue) error {
	var buf bytes.Buffer
	if err := encodeValue(&buf, v); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

func encodeValue(buf *bytes.Buffer, v Bvalue) error {
	switch v := v.(type) {
	case *BInt:
		if v == nil {
			return ErrInvalidValue
		}
		buf.WriteByte('i')
		buf.WriteString(v.Text)
		buf.WriteByte('e')

	case *BString:
		if v == nil {
			return ErrInvalidValue
		}
		writeBytes(buf, v.Data)

	case *BBlob:
		if v == nil {
			return ErrInvalidValue
		}
		writeBytes(buf, v.Data)

	case *BList:
		if v == nil {
			return ErrInvalidValue
		}
		buf.WriteByte('l')
		for i, item := range v.Items {
			if err := encodeValue(buf, item); err != nil {
				return fmt.Errorf("list item %d: %w", i, err)
			}
		}
		buf.WriteByte('e')

	case *BDict:
		if v == nil {
			return ErrInvalidValue
		}
		buf.WriteByte('d')
		for _, p := range v.Pairs {
			if p.Key == nil {
				return fmt.Errorf("dictionary key: %w", ErrInvalidValue)
			}
			writeBytes(buf, p.Key.Data)
			if err := encodeValue(buf, p.Value); err != nil {
				return fmt.Errorf("value of %q: %w", p.Key.Data, err)
			}
		}
		buf.WriteByte('e')

	default:
		return ErrInvalidValue
	}
	return nil
}

func writeBytes(buf *bytes.Buffer, b []byte) {
	buf.WriteString(strconv.Itoa(len(b)))
	buf.WriteByte(':')
	buf.Write(b)
}

func (i *BInt) MarshalBencode() ([]byte, error)    { return Encode(i) }
func (s *BString) MarshalBencode() ([]byte, error) { return Encode(s) }
func (b *BBlob) MarshalBencode() ([]byte, error)   { return Encode(b) }
func (l *BList) MarshalBencode() ([]byte, error)   { return Encode(l) }
func (d *BDict) MarshalBencode() ([]byte, error)   { return Encode(d) }
