package crypto

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
)

// Hash is the 32-byte output of the protocol hash function. Record addresses
// on the quill ledger are hashes.
type Hash [Size]byte

var hashLength = base64.StdEncoding.EncodedLen(Size)

var ZeroHash Hash = Hasher([]byte{})

var ZeroValueHash Hash

func Hasher(data []byte) Hash {
	return Hash(sha256.Sum256(data))
}

func HashToken(token Token) Hash {
	return Hash(sha256.Sum256(token[:]))
}

func BytesToHash(bytes []byte) Hash {
	var hash Hash
	if len(bytes) != Size {
		return hash
	}
	copy(hash[:], bytes)
	return hash
}

func (h Hash) Equal(another Hash) bool {
	return h == another
}

func (h Hash) Equals(another []byte) bool {
	if len(another) < Size {
		return false
	}
	return bytes.Equal(h[:], another[:Size])
}

func (h Hash) MarshalText() (text []byte, err error) {
	text = make([]byte, hashLength)
	base64.StdEncoding.Encode(text, h[:])
	return
}

func (h *Hash) UnmarshalText(text []byte) error {
	_, err := base64.StdEncoding.Decode(h[:], text)
	return err
}

func EncodeHash(h Hash) string {
	text := make([]byte, hashLength)
	base64.StdEncoding.Encode(text, h[:])
	return string(text)
}

func DecodeHash(text string) Hash {
	var hash Hash
	base64.StdEncoding.Decode(hash[:], []byte(text))
	return hash
}
