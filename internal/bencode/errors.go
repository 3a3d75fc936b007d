package bencode

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("bencode: key not found")
	ErrInvalidValue = errors.New("bencode: invalid value")
)

// FormatError reports malformed input. Offset is absolute in the decoded
// buffer; Byte is the byte found there, or 0 when the input ended early.
type FormatError struct {
	Offset int
	Byte   byte
	EOF    bool
	Reason string
}

func (e *FormatError) Error() string {
	if e.EOF {
		return fmt.Sprintf("bencode: %s at offset %d: unexpected end of input", e.Reason, e.Offset)
	}
	return fmt.Sprintf("bencode: %s at offset %d (byte %q)", e.Reason, e.Offset, e.Byte)
}

// KeyTypeError reports a dictionary key that is not a byte string.
type KeyTypeError struct {
	Offset int
	Kind   Kind
}

func (e *KeyTypeError) Error() string {
	return fmt.Sprintf("bencode: dictionary key at offset %d is a %s, want byte string", e.Offset, e.Kind)
}

// TypeError is returned by the typed lookup helpers when the key exists but
// holds another kind of value.
type TypeError struct {
	Key  string
	Want Kind
	Got  Kind
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("bencode: value of %q is a %s, want %s", e.Key, e.Got, e.Want)
}
