package actions

import (
	"github.com/freehandle/quill/crypto"
	"github.com/freehandle/quill/util"
)

// CreatePost creates a text or image post at the address derived from the
// author and PostTime. PostTime is caller-supplied and never checked against
// wall-clock time; it orders the author's posts and is part of the address.
type CreatePost struct {
	TimeStamp uint64
	Author    crypto.Token
	Content   string
	PostType  byte
	PostTime  int64
	ReplyTo   *crypto.Hash
	Fee       uint64
	Signature crypto.Signature
}

func (c *CreatePost) Tokens() []crypto.Token {
	return []crypto.Token{c.Author}
}

func (c *CreatePost) FeePaid() uint64 {
	return c.Fee
}

func (c *CreatePost) serializeSign() []byte {
	bytes := []byte{0, ICreatePost}
	util.PutUint64(c.TimeStamp, &bytes)
	util.PutToken(c.Author, &bytes)
	util.PutString(c.Content, &bytes)
	util.PutByte(c.PostType, &bytes)
	util.PutInt64(c.PostTime, &bytes)
	util.PutMaybeHash(c.ReplyTo, &bytes)
	util.PutUint64(c.Fee, &bytes)
	return bytes
}

func (c *CreatePost) Serialize() []byte {
	bytes := c.serializeSign()
	util.PutSignature(c.Signature, &bytes)
	return bytes
}

func (c *CreatePost) Authority() crypto.Token {
	return c.Author
}

func (c *CreatePost) Epoch() uint64 {
	return c.TimeStamp
}

func (c *CreatePost) Kind() byte {
	return ICreatePost
}

func (c *CreatePost) Payments() *Payment {
	return NewPayment(crypto.HashToken(c.Author), c.Fee)
}

func (c *CreatePost) Sign(key crypto.PrivateKey) {
	bytes := c.serializeSign()
	c.Signature = key.Sign(bytes)
}

func (c *CreatePost) JSON() string {
	bulk := &util.JSONBuilder{}
	bulk.PutString("kind", "createPost")
	bulk.PutUint64("version", 0)
	bulk.PutUint64("instructionType", uint64(ICreatePost))
	bulk.PutUint64("epoch", c.TimeStamp)
	bulk.PutHex("author", c.Author[:])
	bulk.PutString("content", c.Content)
	bulk.PutUint64("postType", uint64(c.PostType))
	bulk.PutInt64("postTime", c.PostTime)
	if c.ReplyTo != nil {
		bulk.PutHex("replyTo", c.ReplyTo[:])
	}
	bulk.PutUint64("fee", c.Fee)
	bulk.PutBase64("signature", c.Signature[:])
	return bulk.ToString()
}

func ParseCreatePost(data []byte) *CreatePost {
	if len(data) < 2 || data[1] != ICreatePost {
		return nil
	}
	p := CreatePost{}
	position := 2
	p.TimeStamp, position = util.ParseUint64(data, position)
	p.Author, position = util.ParseToken(data, position)
	p.Content, position = util.ParseString(data, position)
	p.PostType, position = util.ParseByte(data, position)
	p.PostTime, position = util.ParseInt64(data, position)
	p.ReplyTo, position = util.ParseMaybeHash(data, position)
	p.Fee, position = util.ParseUint64(data, position)
	msg := data[0:position]
	p.Signature, _ = util.ParseSignature(data, position)
	if !p.Author.Verify(msg, p.Signature) {
		return nil
	}
	return &p
}

// LinkAsset links an external image asset to an existing image post.
// Repeated calls replace the reference; no history is kept.
type LinkAsset struct {
	TimeStamp uint64
	Author    crypto.Token
	Post      crypto.Hash
	Asset     crypto.Token
	Fee       uint64
	Signature crypto.Signature
}

func (l *LinkAsset) Tokens() []crypto.Token {
	return []crypto.Token{l.Author, l.Asset}
}

func (l *LinkAsset) FeePaid() uint64 {
	return l.Fee
}

func (l *LinkAsset) serializeSign() []byte {
	bytes := []byte{0, ILinkAsset}
	util.PutUint64(l.TimeStamp, &bytes)
	util.PutToken(l.Author, &bytes)
	util.PutHash(l.Post, &bytes)
	util.PutToken(l.Asset, &bytes)
	util.PutUint64(l.Fee, &bytes)
	return bytes
}

func (l *LinkAsset) Serialize() []byte {
	bytes := l.serializeSign()
	util.PutSignature(l.Signature, &bytes)
	return bytes
}

func (l *LinkAsset) Authority() crypto.Token {
	return l.Author
}

func (l *LinkAsset) Epoch() uint64 {
	return l.TimeStamp
}

func (l *LinkAsset) Kind() byte {
	return ILinkAsset
}

func (l *LinkAsset) Payments() *Payment {
	return NewPayment(crypto.HashToken(l.Author), l.Fee)
}

func (l *LinkAsset) Sign(key crypto.PrivateKey) {
	bytes := l.serializeSign()
	l.Signature = key.Sign(bytes)
}

func (l *LinkAsset) JSON() string {
	bulk := &util.JSONBuilder{}
	bulk.PutString("kind", "linkAsset")
	bulk.PutUint64("version", 0)
	bulk.PutUint64("instructionType", uint64(ILinkAsset))
	bulk.PutUint64("epoch", l.TimeStamp)
	bulk.PutHex("author", l.Author[:])
	bulk.PutHex("post", l.Post[:])
	bulk.PutHex("asset", l.Asset[:])
	bulk.PutUint64("fee", l.Fee)
	bulk.PutBase64("signature", l.Signature[:])
	return bulk.ToString()
}

func ParseLinkAsset(data []byte) *LinkAsset {
	if len(data) < 2 || data[1] != ILinkAsset {
		return nil
	}
	p := LinkAsset{}
	position := 2
	p.TimeStamp, position = util.ParseUint64(data, position)
	p.Author, position = util.ParseToken(data, position)
	p.Post, position = util.ParseHash(data, position)
	p.Asset, position = util.ParseToken(data, position)
	p.Fee, position = util.ParseUint64(data, position)
	msg := data[0:position]
	p.Signature, _ = util.ParseSignature(data, position)
	if !p.Author.Verify(msg, p.Signature) {
		return nil
	}
	return &p
}
