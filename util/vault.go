package util

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/scrypt"

	"github.com/freehandle/quill/crypto"
)

// SecureVault is an append-only file of scrypt-encrypted entries. The first
// entry is the vault's own private key; further entries are arbitrary secrets,
// typically wallet keys for the quill ledger.
type SecureVault struct {
	SecretKey crypto.PrivateKey
	Entries   [][]byte
	file      io.WriteCloser
	cipher    crypto.Cipher
}

func (s *SecureVault) NewEntry(data []byte) error {
	sealed := s.cipher.Seal(data)
	s.Entries = append(s.Entries, data)
	bytes := make([]byte, 0)
	PutByteArray(sealed, &bytes)
	if n, err := s.file.Write(bytes); n != len(bytes) || err != nil {
		return fmt.Errorf("could not write entry to secure vault file: %v", err)
	}
	return nil
}

func (s *SecureVault) Close() {
	s.file.Close()
}

func NewSecureVault(password []byte, fileName string) (*SecureVault, error) {
	file, err := os.Create(fileName)
	if err != nil {
		return nil, fmt.Errorf("could not create secure vault file: %v", err)
	}
	data := make([]byte, 0)
	salt, _ := crypto.RandomAsymetricKey()
	PutToken(salt, &data)
	cipherKey, err := scrypt.Key(password, salt[:], 32768, 8, 1, 32)
	if err != nil {
		return nil, fmt.Errorf("could not generate cipher key from password and salt: %v", err)
	}
	_, secret := crypto.RandomAsymetricKey()
	vault := SecureVault{
		SecretKey: secret,
		Entries:   make([][]byte, 0),
		file:      file,
		cipher:    crypto.CipherFromKey(cipherKey),
	}
	sealed := vault.cipher.Seal(secret[:])
	PutByteArray(sealed, &data)
	if n, err := file.Write(data); n != len(data) || err != nil {
		return nil, fmt.Errorf("could not write header to secure vault file: %v", err)
	}
	return &vault, nil
}

func OpenVaultFromPassword(password []byte, fileName string) (*SecureVault, error) {
	file, err := os.OpenFile(fileName, os.O_APPEND|os.O_RDWR, os.ModeAppend)
	if err != nil {
		return nil, fmt.Errorf("could not open secure vault: %v", err)
	}
	vault := SecureVault{
		Entries: make([][]byte, 0),
		file:    file,
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("could not read secure vault: %v", err)
	}
	position := 0
	var salt crypto.Token
	salt, position = ParseToken(data, position)
	key, err := scrypt.Key(password, salt[:], 32768, 8, 1, 32)
	if err != nil {
		return nil, fmt.Errorf("could not derive cipher key from password and salt: %v", err)
	}
	vault.cipher = crypto.CipherFromKey(key)
	var sealed []byte
	sealed, position = ParseByteArray(data, position)
	secret, err := vault.cipher.Open(sealed)
	if err != nil {
		return nil, fmt.Errorf("wrong password: %v", err)
	}
	if len(secret) != crypto.PrivateKeySize {
		return nil, fmt.Errorf("corrupted secure vault file")
	}
	copy(vault.SecretKey[:], secret)
	for position < len(data) {
		sealed, position = ParseByteArray(data, position)
		if position > len(data) {
			return nil, fmt.Errorf("corrupted secure vault file")
		}
		entry, err := vault.cipher.Open(sealed)
		if err != nil {
			return nil, fmt.Errorf("corrupted secure vault entry: %v", err)
		}
		vault.Entries = append(vault.Entries, entry)
	}
	return &vault, nil
}
