package util

import (
	"github.com/freehandle/quill/crypto"
)

func Uint64ToBytes(v uint64) []byte {
	bytes := make([]byte, 0, 8)
	PutUint64(v, &bytes)
	return bytes
}

func Int64ToBytes(v int64) []byte {
	return Uint64ToBytes(uint64(v))
}

func PutToken(token crypto.Token, data *[]byte) {
	*data = append(*data, token[:]...)
}

func PutSecret(secret crypto.PrivateKey, data *[]byte) {
	*data = append(*data, secret[:]...)
}

func PutHash(hash crypto.Hash, data *[]byte) {
	*data = append(*data, hash[:]...)
}

func PutSignature(sign crypto.Signature, data *[]byte) {
	*data = append(*data, sign[:]...)
}

func PutHashArray(b []crypto.Hash, data *[]byte) {
	count := uint32(len(b))
	PutUint32(count, data)
	for _, hash := range b {
		PutHash(hash, data)
	}
}

func PutTokenArray(b []crypto.Token, data *[]byte) {
	count := uint32(len(b))
	PutUint32(count, data)
	for _, token := range b {
		PutToken(token, data)
	}
}

// PutByteArray puts a byte array up to 2^16 bytes into a byte array
func PutByteArray(b []byte, data *[]byte) {
	if len(b) == 0 {
		*data = append(*data, 0, 0)
		return
	}
	if len(b) > 1<<16-1 {
		*data = append(*data, append([]byte{255, 255}, b[0:1<<16-1]...)...)
		return
	}
	v := len(b)
	*data = append(*data, append([]byte{byte(v), byte(v >> 8)}, b...)...)
}

// PutLargeByteArray puts a byte array up to 2^32 bytes into a byte array
func PutLargeByteArray(b []byte, data *[]byte) {
	if len(b) == 0 {
		*data = append(*data, 0, 0, 0, 0)
		return
	}
	if len(b) > 1<<32-1 {
		*data = append(*data, append([]byte{255, 255, 255, 255}, b[0:1<<32-1]...)...)
		return
	}
	v := len(b)
	*data = append(*data, append([]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}, b...)...)
}

func PutString(value string, data *[]byte) {
	PutByteArray([]byte(value), data)
}

// PutMaybeString serializes an optional string as a presence flag followed by
// the string itself when present, or the bare flag when absent.
func PutMaybeString(value *string, data *[]byte) {
	if value == nil {
		PutBool(false, data)
		return
	}
	PutBool(true, data)
	PutString(*value, data)
}

// PutMaybeHash serializes an optional hash as a presence flag followed by the
// 32 raw bytes when present.
func PutMaybeHash(value *crypto.Hash, data *[]byte) {
	if value == nil {
		PutBool(false, data)
		return
	}
	PutBool(true, data)
	PutHash(*value, data)
}

func PutMaybeToken(value *crypto.Token, data *[]byte) {
	if value == nil {
		PutBool(false, data)
		return
	}
	PutBool(true, data)
	PutToken(*value, data)
}

func PutUint16(v uint16, data *[]byte) {
	*data = append(*data, byte(v), byte(v>>8))
}

func PutUint32(v uint32, data *[]byte) {
	*data = append(*data, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func PutUint64(v uint64, data *[]byte) {
	b := make([]byte, 8)
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
	b[4] = byte(v >> 32)
	b[5] = byte(v >> 40)
	b[6] = byte(v >> 48)
	b[7] = byte(v >> 56)
	*data = append(*data, b...)
}

// PutInt64 serializes a signed 64-bit integer as 8 little-endian bytes in
// two's complement.
func PutInt64(v int64, data *[]byte) {
	PutUint64(uint64(v), data)
}

func PutBool(b bool, data *[]byte) {
	if b {
		*data = append(*data, 1)
	} else {
		*data = append(*data, 0)
	}
}

func PutByte(b byte, data *[]byte) {
	*data = append(*data, b)
}

func ParseToken(data []byte, position int) (crypto.Token, int) {
	var token crypto.Token
	if position+crypto.TokenSize > len(data) {
		return token, position
	}
	copy(token[:], data[position:position+crypto.TokenSize])
	return token, position + crypto.TokenSize
}

func ParseSecret(data []byte, position int) (crypto.PrivateKey, int) {
	var secret crypto.PrivateKey
	if position+crypto.PrivateKeySize > len(data) {
		return secret, position
	}
	copy(secret[:], data[position:position+crypto.PrivateKeySize])
	return secret, position + crypto.PrivateKeySize
}

func ParseHash(data []byte, position int) (crypto.Hash, int) {
	var hash crypto.Hash
	if position+crypto.Size > len(data) {
		return hash, position
	}
	copy(hash[:], data[position:position+crypto.Size])
	return hash, position + crypto.Size
}

func ParseSignature(data []byte, position int) (crypto.Signature, int) {
	var sign crypto.Signature
	if position+crypto.SignatureSize > len(data) {
		return sign, position
	}
	copy(sign[0:crypto.SignatureSize], data[position:position+crypto.SignatureSize])
	return sign, position + crypto.SignatureSize
}

func ParseHashArray(data []byte, position int) ([]crypto.Hash, int) {
	if position+4 > len(data) {
		return []crypto.Hash{}, position
	}
	var count uint32
	count, position = ParseUint32(data, position)
	array := make([]crypto.Hash, int(count))
	for n := 0; n < int(count); n++ {
		array[n], position = ParseHash(data, position)
	}
	return array, position
}

func ParseTokenArray(data []byte, position int) ([]crypto.Token, int) {
	if position+4 > len(data) {
		return []crypto.Token{}, position
	}
	var count uint32
	count, position = ParseUint32(data, position)
	array := make([]crypto.Token, int(count))
	for n := 0; n < int(count); n++ {
		array[n], position = ParseToken(data, position)
	}
	return array, position
}

func ParseByteArray(data []byte, position int) ([]byte, int) {
	if position+2 > len(data) {
		return []byte{}, position
	}
	length := int(data[position]) | int(data[position+1])<<8
	position += 2
	if length == 0 {
		return []byte{}, position
	}
	if position+length > len(data) {
		return []byte{}, len(data) + 1
	}
	return data[position : position+length], position + length
}

func ParseLargeByteArray(data []byte, position int) ([]byte, int) {
	if position+4 > len(data) {
		return []byte{}, position
	}
	length := int(data[position]) | int(data[position+1])<<8 | int(data[position+2])<<16 | int(data[position+3])<<24
	position += 4
	if length == 0 {
		return []byte{}, position
	}
	if position+length > len(data) {
		return []byte{}, len(data) + 1
	}
	return data[position : position+length], position + length
}

func ParseString(data []byte, position int) (string, int) {
	bytes, newPosition := ParseByteArray(data, position)
	return string(bytes), newPosition
}

func ParseMaybeString(data []byte, position int) (*string, int) {
	var present bool
	present, position = ParseBool(data, position)
	if !present {
		return nil, position
	}
	var value string
	value, position = ParseString(data, position)
	return &value, position
}

func ParseMaybeHash(data []byte, position int) (*crypto.Hash, int) {
	var present bool
	present, position = ParseBool(data, position)
	if !present {
		return nil, position
	}
	var value crypto.Hash
	value, position = ParseHash(data, position)
	return &value, position
}

func ParseMaybeToken(data []byte, position int) (*crypto.Token, int) {
	var present bool
	present, position = ParseBool(data, position)
	if !present {
		return nil, position
	}
	var value crypto.Token
	value, position = ParseToken(data, position)
	return &value, position
}

func ParseUint16(data []byte, position int) (uint16, int) {
	if position+2 > len(data) {
		return 0, position
	}
	value := uint16(data[position]) | uint16(data[position+1])<<8
	return value, position + 2
}

func ParseUint32(data []byte, position int) (uint32, int) {
	if position+4 > len(data) {
		return 0, position
	}
	value := uint32(data[position]) | uint32(data[position+1])<<8 |
		uint32(data[position+2])<<16 | uint32(data[position+3])<<24
	return value, position + 4
}

func ParseUint64(data []byte, position int) (uint64, int) {
	if position+8 > len(data) {
		return 0, position
	}
	value := uint64(data[position]) | uint64(data[position+1])<<8 |
		uint64(data[position+2])<<16 | uint64(data[position+3])<<24 |
		uint64(data[position+4])<<32 | uint64(data[position+5])<<40 |
		uint64(data[position+6])<<48 | uint64(data[position+7])<<56
	return value, position + 8
}

func ParseInt64(data []byte, position int) (int64, int) {
	value, newPosition := ParseUint64(data, position)
	return int64(value), newPosition
}

func ParseBool(data []byte, position int) (bool, int) {
	if position+1 > len(data) {
		return false, position
	}
	return data[position] == 1, position + 1
}

func ParseByte(data []byte, position int) (byte, int) {
	if position+1 > len(data) {
		return 0, position
	}
	return data[position], position + 1
}
