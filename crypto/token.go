/*
Package crypto implements the cryptographic primitives of the quill protocol.

A Token is an Ed25519 public key and doubles as the identity of a user on the
quill social ledger. A PrivateKey is the corresponding private key. All record
addresses are 32-byte hashes derived from tokens and key material.
*/
package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
)

const (
	Size           = 32
	TokenSize      = 32
	PrivateKeySize = 64
	SignatureSize  = 64
)

type Token [TokenSize]byte

type PrivateKey [PrivateKeySize]byte

type Signature [SignatureSize]byte

var ZeroToken Token

var ZeroPrivateKey PrivateKey

var ZeroSignature Signature

func (t Token) Equal(another Token) bool {
	return t == another
}

func (t Token) Verify(msg []byte, signature Signature) bool {
	return ed25519.Verify(ed25519.PublicKey(t[:]), msg, signature[:])
}

func (t Token) String() string {
	return hex.EncodeToString(t[:])
}

func TokenFromString(text string) Token {
	var token Token
	bytes, err := hex.DecodeString(text)
	if err != nil || len(bytes) != TokenSize {
		return token
	}
	copy(token[:], bytes)
	return token
}

func BytesToToken(bytes []byte) Token {
	var token Token
	if len(bytes) != TokenSize {
		return token
	}
	copy(token[:], bytes)
	return token
}

func (pk PrivateKey) Sign(msg []byte) Signature {
	var signature Signature
	copy(signature[:], ed25519.Sign(ed25519.PrivateKey(pk[:]), msg))
	return signature
}

func (pk PrivateKey) PublicKey() Token {
	var token Token
	copy(token[:], pk[TokenSize:])
	return token
}

func (pk PrivateKey) IsValid() bool {
	return pk != ZeroPrivateKey
}

func PrivateKeyFromSeed(seed [32]byte) PrivateKey {
	var pk PrivateKey
	copy(pk[:], ed25519.NewKeyFromSeed(seed[:]))
	return pk
}

// RandomAsymetricKey returns a new random token and its private key.
func RandomAsymetricKey() (Token, PrivateKey) {
	var token Token
	var pk PrivateKey
	public, private, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return token, pk
	}
	copy(token[:], public)
	copy(pk[:], private)
	return token, pk
}
