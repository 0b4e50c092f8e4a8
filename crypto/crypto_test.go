package crypto

import (
	"testing"
)

func TestSignature(t *testing.T) {
	token, secret := RandomAsymetricKey()
	msg := []byte("a message to sign")
	signature := secret.Sign(msg)
	if !token.Verify(msg, signature) {
		t.Error("valid signature rejected")
	}
	msg[0] = msg[0] + 1
	if token.Verify(msg, signature) {
		t.Error("tampered message accepted")
	}
	another, _ := RandomAsymetricKey()
	if another.Verify(msg, signature) {
		t.Error("signature accepted by wrong token")
	}
}

func TestTokenString(t *testing.T) {
	token, _ := RandomAsymetricKey()
	if !TokenFromString(token.String()).Equal(token) {
		t.Error("token string round trip failed")
	}
	if !TokenFromString("not a token").Equal(ZeroToken) {
		t.Error("invalid token string should parse to zero")
	}
}

func TestPEMRoundTrip(t *testing.T) {
	token, secret := RandomAsymetricKey()
	parsed, err := ParsePEMPrivateKey(secret.PEM())
	if err != nil {
		t.Fatalf("could not parse pem: %v", err)
	}
	if !parsed.PublicKey().Equal(token) {
		t.Error("pem round trip changed the key")
	}
	public, err := ParsePEMPublicKey(token.PEM())
	if err != nil {
		t.Fatalf("could not parse public pem: %v", err)
	}
	if !public.Equal(token) {
		t.Error("public pem round trip changed the token")
	}
}

func TestHashEncoding(t *testing.T) {
	hash := Hasher([]byte("record address"))
	text := EncodeHash(hash)
	if !DecodeHash(text).Equal(hash) {
		t.Error("hash encoding round trip failed")
	}
	if !DecodeHash("!!!!").Equal(ZeroHash) {
		t.Error("invalid encoding should decode to zero")
	}
}

func TestCipher(t *testing.T) {
	key := Hasher([]byte("secret material"))
	cipher := CipherFromKey(key[:])
	sealed := cipher.Seal([]byte("quill"))
	opened, err := cipher.Open(sealed)
	if err != nil {
		t.Fatalf("could not open: %v", err)
	}
	if string(opened) != "quill" {
		t.Errorf("unexpected plaintext: %v", string(opened))
	}
	sealed[len(sealed)-1] = sealed[len(sealed)-1] + 1
	if _, err := cipher.Open(sealed); err == nil {
		t.Error("tampered ciphertext accepted")
	}
}
