package actions

import (
	"github.com/freehandle/quill/crypto"
	"github.com/freehandle/quill/util"
)

// AddImageChunk attaches a slice of image data to an existing image post and
// re-declares the post's total chunk count.
type AddImageChunk struct {
	TimeStamp uint64
	Author    crypto.Token
	Post      crypto.Hash
	Index     uint32
	Total     uint32
	Data      []byte
	Fee       uint64
	Signature crypto.Signature
}

func (a *AddImageChunk) Tokens() []crypto.Token {
	return []crypto.Token{a.Author}
}

func (a *AddImageChunk) FeePaid() uint64 {
	return a.Fee
}

func (a *AddImageChunk) serializeSign() []byte {
	bytes := []byte{0, IAddImageChunk}
	util.PutUint64(a.TimeStamp, &bytes)
	util.PutToken(a.Author, &bytes)
	util.PutHash(a.Post, &bytes)
	util.PutUint32(a.Index, &bytes)
	util.PutUint32(a.Total, &bytes)
	util.PutLargeByteArray(a.Data, &bytes)
	util.PutUint64(a.Fee, &bytes)
	return bytes
}

func (a *AddImageChunk) Serialize() []byte {
	bytes := a.serializeSign()
	util.PutSignature(a.Signature, &bytes)
	return bytes
}

func (a *AddImageChunk) Authority() crypto.Token {
	return a.Author
}

func (a *AddImageChunk) Epoch() uint64 {
	return a.TimeStamp
}

func (a *AddImageChunk) Kind() byte {
	return IAddImageChunk
}

func (a *AddImageChunk) Payments() *Payment {
	return NewPayment(crypto.HashToken(a.Author), a.Fee)
}

func (a *AddImageChunk) Sign(key crypto.PrivateKey) {
	bytes := a.serializeSign()
	a.Signature = key.Sign(bytes)
}

func (a *AddImageChunk) JSON() string {
	bulk := &util.JSONBuilder{}
	bulk.PutString("kind", "addImageChunk")
	bulk.PutUint64("version", 0)
	bulk.PutUint64("instructionType", uint64(IAddImageChunk))
	bulk.PutUint64("epoch", a.TimeStamp)
	bulk.PutHex("author", a.Author[:])
	bulk.PutHex("post", a.Post[:])
	bulk.PutUint64("index", uint64(a.Index))
	bulk.PutUint64("total", uint64(a.Total))
	bulk.PutBase64("data", a.Data)
	bulk.PutUint64("fee", a.Fee)
	bulk.PutBase64("signature", a.Signature[:])
	return bulk.ToString()
}

func ParseAddImageChunk(data []byte) *AddImageChunk {
	if len(data) < 2 || data[1] != IAddImageChunk {
		return nil
	}
	p := AddImageChunk{}
	position := 2
	p.TimeStamp, position = util.ParseUint64(data, position)
	p.Author, position = util.ParseToken(data, position)
	p.Post, position = util.ParseHash(data, position)
	p.Index, position = util.ParseUint32(data, position)
	p.Total, position = util.ParseUint32(data, position)
	p.Data, position = util.ParseLargeByteArray(data, position)
	p.Fee, position = util.ParseUint64(data, position)
	msg := data[0:position]
	p.Signature, _ = util.ParseSignature(data, position)
	if !p.Author.Verify(msg, p.Signature) {
		return nil
	}
	return &p
}
