package actions

import (
	"github.com/freehandle/quill/crypto"
	"github.com/freehandle/quill/util"
)

// Follow creates the follow relation for the ordered pair (follower,
// following). Only the follower signs; the following side is key material.
type Follow struct {
	TimeStamp uint64
	Follower  crypto.Token
	Following crypto.Token
	Fee       uint64
	Signature crypto.Signature
}

func (f *Follow) Tokens() []crypto.Token {
	return []crypto.Token{f.Follower, f.Following}
}

func (f *Follow) FeePaid() uint64 {
	return f.Fee
}

func (f *Follow) serializeSign() []byte {
	bytes := []byte{0, IFollow}
	util.PutUint64(f.TimeStamp, &bytes)
	util.PutToken(f.Follower, &bytes)
	util.PutToken(f.Following, &bytes)
	util.PutUint64(f.Fee, &bytes)
	return bytes
}

func (f *Follow) Serialize() []byte {
	bytes := f.serializeSign()
	util.PutSignature(f.Signature, &bytes)
	return bytes
}

func (f *Follow) Authority() crypto.Token {
	return f.Follower
}

func (f *Follow) Epoch() uint64 {
	return f.TimeStamp
}

func (f *Follow) Kind() byte {
	return IFollow
}

func (f *Follow) Payments() *Payment {
	return NewPayment(crypto.HashToken(f.Follower), f.Fee)
}

func (f *Follow) Sign(key crypto.PrivateKey) {
	bytes := f.serializeSign()
	f.Signature = key.Sign(bytes)
}

func (f *Follow) JSON() string {
	bulk := &util.JSONBuilder{}
	bulk.PutString("kind", "follow")
	bulk.PutUint64("version", 0)
	bulk.PutUint64("instructionType", uint64(IFollow))
	bulk.PutUint64("epoch", f.TimeStamp)
	bulk.PutHex("follower", f.Follower[:])
	bulk.PutHex("following", f.Following[:])
	bulk.PutUint64("fee", f.Fee)
	bulk.PutBase64("signature", f.Signature[:])
	return bulk.ToString()
}

func ParseFollow(data []byte) *Follow {
	if len(data) < 2 || data[1] != IFollow {
		return nil
	}
	p := Follow{}
	position := 2
	p.TimeStamp, position = util.ParseUint64(data, position)
	p.Follower, position = util.ParseToken(data, position)
	p.Following, position = util.ParseToken(data, position)
	p.Fee, position = util.ParseUint64(data, position)
	msg := data[0:position]
	p.Signature, _ = util.ParseSignature(data, position)
	if !p.Follower.Verify(msg, p.Signature) {
		return nil
	}
	return &p
}

// Unfollow destroys the follow relation and returns its storage deposit to
// the follower.
type Unfollow struct {
	TimeStamp uint64
	Follower  crypto.Token
	Following crypto.Token
	Fee       uint64
	Signature crypto.Signature
}

func (u *Unfollow) Tokens() []crypto.Token {
	return []crypto.Token{u.Follower, u.Following}
}

func (u *Unfollow) FeePaid() uint64 {
	return u.Fee
}

func (u *Unfollow) serializeSign() []byte {
	bytes := []byte{0, IUnfollow}
	util.PutUint64(u.TimeStamp, &bytes)
	util.PutToken(u.Follower, &bytes)
	util.PutToken(u.Following, &bytes)
	util.PutUint64(u.Fee, &bytes)
	return bytes
}

func (u *Unfollow) Serialize() []byte {
	bytes := u.serializeSign()
	util.PutSignature(u.Signature, &bytes)
	return bytes
}

func (u *Unfollow) Authority() crypto.Token {
	return u.Follower
}

func (u *Unfollow) Epoch() uint64 {
	return u.TimeStamp
}

func (u *Unfollow) Kind() byte {
	return IUnfollow
}

func (u *Unfollow) Payments() *Payment {
	return NewPayment(crypto.HashToken(u.Follower), u.Fee)
}

func (u *Unfollow) Sign(key crypto.PrivateKey) {
	bytes := u.serializeSign()
	u.Signature = key.Sign(bytes)
}

func (u *Unfollow) JSON() string {
	bulk := &util.JSONBuilder{}
	bulk.PutString("kind", "unfollow")
	bulk.PutUint64("version", 0)
	bulk.PutUint64("instructionType", uint64(IUnfollow))
	bulk.PutUint64("epoch", u.TimeStamp)
	bulk.PutHex("follower", u.Follower[:])
	bulk.PutHex("following", u.Following[:])
	bulk.PutUint64("fee", u.Fee)
	bulk.PutBase64("signature", u.Signature[:])
	return bulk.ToString()
}

func ParseUnfollow(data []byte) *Unfollow {
	if len(data) < 2 || data[1] != IUnfollow {
		return nil
	}
	p := Unfollow{}
	position := 2
	p.TimeStamp, position = util.ParseUint64(data, position)
	p.Follower, position = util.ParseToken(data, position)
	p.Following, position = util.ParseToken(data, position)
	p.Fee, position = util.ParseUint64(data, position)
	msg := data[0:position]
	p.Signature, _ = util.ParseSignature(data, position)
	if !p.Follower.Verify(msg, p.Signature) {
		return nil
	}
	return &p
}
