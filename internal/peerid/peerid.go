// Package peerid builds the 20-byte peer identifiers sent in handshakes and
// tracker announces.
package peerid

import (
	"crypto/rand"
	"crypto/sha1"
	"fmt"
)

const (
	Prefix = "-GS0001-"
	Size   = 20
)

// Fill writes Prefix followed by the first 12 bytes of SHA-1(seed) into
// out[:20]. The same seed always yields the same ID.
func Fill(seed string, out []byte) error {
	if len(out) < Size {
		return fmt.Errorf("peerid: output buffer is %d bytes, need %d", len(out), Size)
	}
	digest := sha1.Sum([]byte(seed))
	copy(out[:len(Prefix)], Prefix)
	copy(out[len(Prefix):Size], digest[:Size-len(Prefix)])
	return nil
}

func Generate(seed string) [Size]byte {
	var id [Size]byte
	_ = Fill(seed, id[:])
	return id
}

// Random keeps the prefix but fills the rest from crypto/rand, for hosts that
// want a fresh ID per session.
func Random() ([Size]byte, error) {
	var id [Size]byte
	copy(id[:len(Prefix)], Prefix)
	_, err := rand.Read(id[len(Prefix):])
	return id, err
}
