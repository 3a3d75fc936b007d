package bencode_test

import (
	"bytes"
	"crypto/sha1"
	"strconv"
	"testing"

	"torrent-bencode/internal/bencode"
)

func pieceHashes(n int) []byte {
	var out []byte
	for i := 0; i < n; i++ {
		h := sha1.Sum([]byte("piece " + strconv.Itoa(i)))
		out = append(out, h[:]...)
	}
	return out
}

func TestPiecesBecomeBlob(t *testing.T) {
	hashes := pieceHashes(2)
	in := "d6:pieces40:" + string(hashes) + "4:name5:a.txte"

	v, n, err := bencode.Decode([]byte(in))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n != len(in) {
		t.Fatalf("consumed %d, want %d", n, len(in))
	}
	dict := v.(*bencode.BDict)

	pieces, _ := dict.Get("pieces")
	blob, ok := pieces.(*bencode.BBlob)
	if !ok {
		t.Fatalf("pieces decoded as %s, want binary blob", pieces.Kind())
	}
	if !bytes.Equal(blob.Data, hashes) || len(blob.Data) != 40 {
		t.Fatalf("blob holds %d bytes, want the 40 hash bytes", len(blob.Data))
	}
	if blob.Consumed() != 43 {
		t.Fatalf("blob consumed %d, want 43", blob.Consumed())
	}

	name, _ := dict.Get("name")
	if name.Kind() != bencode.KindByteString {
		t.Fatalf("sibling after pieces decoded as %s, want byte string", name.Kind())
	}
	if dict.Pairs[1].Key.Kind() != bencode.KindByteString {
		t.Fatalf("key after pieces is %s", dict.Pairs[1].Key.Kind())
	}
}

func TestPiecesModeIsOneShot(t *testing.T) {
	tests := []struct {
		name  string
		input string
		key   string
		want  bencode.Kind
	}{
		{
			name:  "value is not a string",
			input: "d6:piecesi3e4:name3:abce",
			key:   "name",
			want:  bencode.KindByteString,
		},
		{
			name:  "value is a list",
			input: "d6:piecesl3:abce4:name3:abce",
			key:   "pieces",
			want:  bencode.KindList,
		},
		{
			name:  "pieces as list item",
			input: "d4:listl6:pieces3:abce4:name3:xyze",
			key:   "name",
			want:  bencode.KindByteString,
		},
		{
			name:  "pieces as plain value",
			input: "d4:kind6:pieces4:name3:xyze",
			key:   "name",
			want:  bencode.KindByteString,
		},
	}

	for _, ts := range tests {
		t.Run(ts.name, func(t *testing.T) {
			v, _, err := bencode.Decode([]byte(ts.input))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			got, ok := v.(*bencode.BDict).Get(ts.key)
			if !ok {
				t.Fatalf("key %q missing", ts.key)
			}
			if got.Kind() != ts.want {
				t.Fatalf("%q decoded as %s, want %s", ts.key, got.Kind(), ts.want)
			}
		})
	}
}

func TestPiecesListItemsStayText(t *testing.T) {
	v, _, err := bencode.Decode([]byte("d6:piecesl3:abcee"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	list, err := v.(*bencode.BDict).GetList("pieces")
	if err != nil {
		t.Fatalf("GetList: %v", err)
	}
	if list.Items[0].Kind() != bencode.KindByteString {
		t.Fatalf("list item decoded as %s", list.Items[0].Kind())
	}
}

func TestSeparateDecodersDoNotShareMode(t *testing.T) {
	a := bencode.NewDecoder([]byte("d6:pieces3:\x01\x02\x03e"))
	b := bencode.NewDecoder([]byte("3:abc"))

	va, err := a.Decode()
	if err != nil {
		t.Fatalf("decode a: %v", err)
	}
	vb, err := b.Decode()
	if err != nil {
		t.Fatalf("decode b: %v", err)
	}

	if p, _ := va.(*bencode.BDict).Get("pieces"); p.Kind() != bencode.KindBinaryBlob {
		t.Fatalf("pieces decoded as %s", p.Kind())
	}
	if vb.Kind() != bencode.KindByteString {
		t.Fatalf("independent decoder produced %s", vb.Kind())
	}
}

func TestNestedInfoPieces(t *testing.T) {
	hashes := pieceHashes(3)
	in := "d8:announce9:udp://x:14:infod6:lengthi10e6:pieces60:" + string(hashes) + "ee"

	v, _, err := bencode.Decode([]byte(in))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	p, err := bencode.Path(v, "info", "pieces")
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	blob, ok := p.(*bencode.BBlob)
	if !ok || !bytes.Equal(blob.Data, hashes) {
		t.Fatalf("info.pieces is %s, want 60 byte blob", p.Kind())
	}
}
