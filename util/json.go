package util

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/freehandle/quill/crypto"
)

type JSONBuilder struct {
	Encode strings.Builder
}

func (j *JSONBuilder) putGeneral(fieldName, value string) {
	if j.Encode.Len() > 0 {
		fmt.Fprintf(&j.Encode, `,"%v":%v`, fieldName, value)
	} else {
		fmt.Fprintf(&j.Encode, `"%v":%v`, fieldName, value)
	}
}

func (j *JSONBuilder) PutUint64(fieldName string, value uint64) {
	j.putGeneral(fieldName, fmt.Sprintf("%v", value))
}

func (j *JSONBuilder) PutInt64(fieldName string, value int64) {
	j.putGeneral(fieldName, fmt.Sprintf("%v", value))
}

func (j *JSONBuilder) PutBool(fieldName string, value bool) {
	j.putGeneral(fieldName, fmt.Sprintf("%v", value))
}

func (j *JSONBuilder) PutHex(fieldName string, value []byte) {
	if len(value) == 0 {
		return
	}
	j.putGeneral(fieldName, fmt.Sprintf(`"0x%v"`, hex.EncodeToString(value)))
}

func (j *JSONBuilder) PutBase64(fieldName string, value []byte) {
	if len(value) == 0 {
		return
	}
	j.putGeneral(fieldName, fmt.Sprintf(`"%v"`, base64.StdEncoding.EncodeToString(value)))
}

func (j *JSONBuilder) PutString(fieldName, value string) {
	j.putGeneral(fieldName, fmt.Sprintf(`"%v"`, value))
}

func (j *JSONBuilder) PutJSON(fieldName, value string) {
	j.putGeneral(fieldName, value)
}

func (j *JSONBuilder) PutHashArray(fieldName string, hashes []crypto.Hash) {
	if len(hashes) == 0 {
		return
	}
	array := &strings.Builder{}
	array.WriteRune('[')
	for n, hash := range hashes {
		if n > 0 {
			array.WriteRune(',')
		}
		fmt.Fprintf(array, `"0x%v"`, hex.EncodeToString(hash[:]))
	}
	array.WriteRune(']')
	j.putGeneral(fieldName, array.String())
}

func (j *JSONBuilder) ToString() string {
	return fmt.Sprintf(`{%v}`, j.Encode.String())
}
