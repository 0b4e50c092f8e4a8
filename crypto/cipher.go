package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
)

var ErrCannotOpenCipher = errors.New("could not open sealed data")

// Cipher is an AES-GCM cipher used to seal secrets at rest, namely the
// entries of a secure vault file.
type Cipher struct {
	gcm cipher.AEAD
}

func CipherFromKey(key []byte) Cipher {
	block, err := aes.NewCipher(key)
	if err != nil {
		return Cipher{}
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return Cipher{}
	}
	return Cipher{gcm: gcm}
}

// Seal encrypts data with a fresh random nonce. The nonce is prepended to the
// returned ciphertext.
func (c Cipher) Seal(data []byte) []byte {
	if c.gcm == nil {
		return nil
	}
	nonce := make([]byte, c.gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil
	}
	return c.gcm.Seal(nonce, nonce, data, nil)
}

func (c Cipher) Open(sealed []byte) ([]byte, error) {
	if c.gcm == nil || len(sealed) < c.gcm.NonceSize() {
		return nil, ErrCannotOpenCipher
	}
	nonce := sealed[:c.gcm.NonceSize()]
	data, err := c.gcm.Open(nil, nonce, sealed[c.gcm.NonceSize():], nil)
	if err != nil {
		return nil, ErrCannotOpenCipher
	}
	return data, nil
}
