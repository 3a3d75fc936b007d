package bencode

import (
	"strconv"
)

// decodeInt reads i<digits>e. The only numeric rules enforced are the
// format's own: an optional '-', at least one digit, no leading zero except
// for 0 itself and no negative zero.
func (d *Decoder) decodeInt() (Bvalue, error) {
	start := d.pos
	i := start + 1

	if i < len(d.data) && d.data[i] == '-' {
		i++
	}
	digits := i
	for i < len(d.data) && isDigit(d.data[i]) {
		i++
	}

	if i >= len(d.data) {
		return nil, d.eof("unterminated integer")
	}
	if d.data[i] != 'e' {
		return nil, d.fail(i, "invalid byte in integer")
	}
	if i == digits {
		return nil, d.fail(i, "integer has no digits")
	}
	if d.data[digits] == '0' {
		if i-digits > 1 {
			return nil, d.fail(digits, "integer has a leading zero")
		}
		if digits != start+1 {
			return nil, d.fail(start+1, "negative zero")
		}
	}

	d.pos = i + 1
	v := &BInt{
		span: span{off: start, n: d.pos - start},
		Text: string(d.data[start+1 : i]),
	}

	d.logger.Debug("decoded integer", "offset", start, "text", v.Text, "consumed", v.n)
	return v, nil
}

// decodeString reads <len>:<payload>. With binary set the payload becomes a
// BBlob copied verbatim, otherwise a BString.
func (d *Decoder) decodeString(binary bool) (Bvalue, error) {
	start := d.pos

	from, to, err := d.scanString()
	if err != nil {
		return nil, err
	}

	data := make([]byte, to-from)
	copy(data, d.data[from:to])
	sp := span{off: start, n: to - start}

	if binary {
		d.logger.Debug("decoded binary blob", "offset", start, "length", len(data), "consumed", sp.n)
		return &BBlob{span: sp, Data: data}, nil
	}

	raw := make([]byte, sp.n)
	copy(raw, d.data[start:to])

	d.logger.Debug("decoded byte string", "offset", start, "length", len(data), "consumed", sp.n)
	return &BString{span: sp, Data: data, Raw: raw}, nil
}

// scanString validates the length prefix and payload bounds of the string at
// d.pos, advances past it and returns the payload bounds.
func (d *Decoder) scanString() (int, int, error) {
	start := d.pos
	i := start

	if i < len(d.data) && d.data[i] == '-' {
		i++
	}
	for i < len(d.data) && isDigit(d.data[i]) {
		i++
	}

	if i >= len(d.data) {
		return 0, 0, d.eof("unterminated string length")
	}
	if d.data[i] != ':' {
		return 0, 0, d.fail(i, "invalid byte in string length")
	}

	prefix := string(d.data[start:i])
	length, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, 0, d.fail(start, "invalid string length "+strconv.Quote(prefix))
	}
	if length < 0 {
		return 0, 0, d.fail(start, "negative string length")
	}

	from := i + 1
	if length > len(d.data)-from {
		return 0, 0, d.eof("string payload shorter than declared length " + prefix)
	}

	d.pos = from + length
	return from, d.pos, nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
