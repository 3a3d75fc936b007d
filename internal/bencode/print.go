package bencode

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const indent = "  "

// Fprint writes an indented, human readable rendering of v to w. Binary
// blobs are shown as upper-case hex pairs.
func Fprint(w io.Writer, v Bvalue) error {
	var buf bytes.Buffer
	if err := printValue(&buf, v, 0); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}

func Sprint(v Bvalue) string {
	var buf bytes.Buffer
	if err := printValue(&buf, v, 0); err != nil {
		return "<" + err.Error() + ">"
	}
	return buf.String()
}

func printValue(buf *bytes.Buffer, v Bvalue, depth int) error {
	switch v := v.(type) {
	case *BInt:
		buf.WriteString(v.Text)

	case *BString:
		buf.WriteString(strconv.Quote(v.String()))

	case *BBlob:
		fmt.Fprintf(buf, "<%d bytes>", len(v.Data))
		if len(v.Data) > 0 {
			buf.WriteByte(' ')
			buf.WriteString(Hex(v.Data))
		}

	case *BList:
		if len(v.Items) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteString("[\n")
		for _, item := range v.Items {
			buf.WriteString(strings.Repeat(indent, depth+1))
			if err := printValue(buf, item, depth+1); err != nil {
				return err
			}
			buf.WriteByte('\n')
		}
		buf.WriteString(strings.Repeat(indent, depth))
		buf.WriteByte(']')

	case *BDict:
		if len(v.Pairs) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteString("{\n")
		for _, p := range v.Pairs {
			buf.WriteString(strings.Repeat(indent, depth+1))
			buf.WriteString(strconv.Quote(p.Key.String()))
			buf.WriteString(": ")
			if err := printValue(buf, p.Value, depth+1); err != nil {
				return err
			}
			buf.WriteByte('\n')
		}
		buf.WriteString(strings.Repeat(indent, depth))
		buf.WriteByte('}')

	default:
		return ErrInvalidValue
	}
	return nil
}

// Hex renders b as space separated upper-case hex pairs.
func Hex(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b) * 3)
	for i, c := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", c)
	}
	return sb.String()
}
