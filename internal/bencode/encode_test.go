package bencode_test

import (
	"bytes"
	"errors"
	"testing"

	"torrent-bencode/internal/bencode"
)

func roundTrip(t *testing.T, input string) {
	t.Helper()

	v, n, err := bencode.Decode([]byte(input), bencode.WithStrict())
	if err != nil {
		t.Fatalf("Decode(%q): %v", input, err)
	}
	if n != len(input) {
		t.Fatalf("Decode(%q) consumed %d of %d bytes", input, n, len(input))
	}
	out, err := bencode.Encode(v)
	if err != nil {
		t.Fatalf("Encode(%q): %v", input, err)
	}
	if string(out) != input {
		t.Fatalf("round trip gave %q, want %q", out, input)
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "integer", input: "i123e"},
		{name: "negative integer", input: "i-123e"},
		{name: "zero", input: "i0e"},
		{name: "string", input: "5:hello"},
		{name: "empty string", input: "0:"},
		{name: "list", input: "li1ei2ei3ee"},
		{name: "empty list", input: "le"},
		{name: "nested lists", input: "lli1eel9:test testelee"},
		{name: "dictionary", input: "d3:key5:valuee"},
		{name: "nested dictionary", input: "d4:dictd9:space keyi4eee"},
		{name: "empty dictionary", input: "de"},
		{name: "unsorted keys", input: "d1:bi1e1:ai2ee"},
		{name: "duplicate keys", input: "d1:ai1e1:ai2ee"},
		{name: "pieces blob", input: "d6:pieces20:" + string(pieceHashes(1)) + "e"},
	}

	for _, ts := range tests {
		t.Run(ts.name, func(t *testing.T) {
			roundTrip(t, ts.input)
		})
	}
}

func TestEncodeToWriter(t *testing.T) {
	v, _, err := bencode.Decode([]byte("l4:spami7ee"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	var buf bytes.Buffer
	if err := bencode.EncodeTo(&buf, v); err != nil {
		t.Fatalf("EncodeTo: %v", err)
	}
	if buf.String() != "l4:spami7ee" {
		t.Fatalf("EncodeTo wrote %q", buf.String())
	}
}

func TestEncodeBlobUsesRawBytes(t *testing.T) {
	raw := []byte{0x00, 0xAB, 0xFF}
	v, _, err := bencode.Decode(append([]byte("d6:pieces3:"), append(raw, 'e')...))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	blob, _ := v.(*bencode.BDict).Get("pieces")

	out, err := bencode.Encode(blob)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if want := append([]byte("3:"), raw...); !bytes.Equal(out, want) {
		t.Fatalf("Encode(blob) = %q, want %q", out, want)
	}
}

func TestEncodeInvalid(t *testing.T) {
	if _, err := bencode.Encode(nil); !errors.Is(err, bencode.ErrInvalidValue) {
		t.Fatalf("Encode(nil) error %v, want ErrInvalidValue", err)
	}

	list := &bencode.BList{Items: []bencode.Bvalue{(*bencode.BInt)(nil)}}
	if _, err := bencode.Encode(list); !errors.Is(err, bencode.ErrInvalidValue) {
		t.Fatalf("Encode(list with nil) error %v, want ErrInvalidValue", err)
	}
}

func TestSpanMatchesEncoding(t *testing.T) {
	in := []byte("d4:infod6:lengthi5e4:name1:xe3:fooi1ee")
	v, _, err := bencode.Decode(in)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	info, err := v.(*bencode.BDict).GetDict("info")
	if err != nil {
		t.Fatalf("GetDict: %v", err)
	}

	out, err := bencode.Encode(info)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if span := bencode.Span(in, info); !bytes.Equal(span, out) {
		t.Fatalf("span %q, encoding %q", span, out)
	}
}
