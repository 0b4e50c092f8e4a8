package actions

import (
	"github.com/freehandle/quill/crypto"
	"github.com/freehandle/quill/util"
)

// Like creates the like relation for (user, post) and increments the post's
// like counter.
type Like struct {
	TimeStamp uint64
	User      crypto.Token
	Post      crypto.Hash
	Fee       uint64
	Signature crypto.Signature
}

func (l *Like) Tokens() []crypto.Token {
	return []crypto.Token{l.User}
}

func (l *Like) FeePaid() uint64 {
	return l.Fee
}

func (l *Like) serializeSign() []byte {
	bytes := []byte{0, ILike}
	util.PutUint64(l.TimeStamp, &bytes)
	util.PutToken(l.User, &bytes)
	util.PutHash(l.Post, &bytes)
	util.PutUint64(l.Fee, &bytes)
	return bytes
}

func (l *Like) Serialize() []byte {
	bytes := l.serializeSign()
	util.PutSignature(l.Signature, &bytes)
	return bytes
}

func (l *Like) Authority() crypto.Token {
	return l.User
}

func (l *Like) Epoch() uint64 {
	return l.TimeStamp
}

func (l *Like) Kind() byte {
	return ILike
}

func (l *Like) Payments() *Payment {
	return NewPayment(crypto.HashToken(l.User), l.Fee)
}

func (l *Like) Sign(key crypto.PrivateKey) {
	bytes := l.serializeSign()
	l.Signature = key.Sign(bytes)
}

func (l *Like) JSON() string {
	bulk := &util.JSONBuilder{}
	bulk.PutString("kind", "like")
	bulk.PutUint64("version", 0)
	bulk.PutUint64("instructionType", uint64(ILike))
	bulk.PutUint64("epoch", l.TimeStamp)
	bulk.PutHex("user", l.User[:])
	bulk.PutHex("post", l.Post[:])
	bulk.PutUint64("fee", l.Fee)
	bulk.PutBase64("signature", l.Signature[:])
	return bulk.ToString()
}

func ParseLike(data []byte) *Like {
	if len(data) < 2 || data[1] != ILike {
		return nil
	}
	p := Like{}
	position := 2
	p.TimeStamp, position = util.ParseUint64(data, position)
	p.User, position = util.ParseToken(data, position)
	p.Post, position = util.ParseHash(data, position)
	p.Fee, position = util.ParseUint64(data, position)
	msg := data[0:position]
	p.Signature, _ = util.ParseSignature(data, position)
	if !p.User.Verify(msg, p.Signature) {
		return nil
	}
	return &p
}

// Unlike destroys the like relation, decrements the post's like counter and
// returns the relation's storage deposit to the user.
type Unlike struct {
	TimeStamp uint64
	User      crypto.Token
	Post      crypto.Hash
	Fee       uint64
	Signature crypto.Signature
}

func (u *Unlike) Tokens() []crypto.Token {
	return []crypto.Token{u.User}
}

func (u *Unlike) FeePaid() uint64 {
	return u.Fee
}

func (u *Unlike) serializeSign() []byte {
	bytes := []byte{0, IUnlike}
	util.PutUint64(u.TimeStamp, &bytes)
	util.PutToken(u.User, &bytes)
	util.PutHash(u.Post, &bytes)
	util.PutUint64(u.Fee, &bytes)
	return bytes
}

func (u *Unlike) Serialize() []byte {
	bytes := u.serializeSign()
	util.PutSignature(u.Signature, &bytes)
	return bytes
}

func (u *Unlike) Authority() crypto.Token {
	return u.User
}

func (u *Unlike) Epoch() uint64 {
	return u.TimeStamp
}

func (u *Unlike) Kind() byte {
	return IUnlike
}

func (u *Unlike) Payments() *Payment {
	return NewPayment(crypto.HashToken(u.User), u.Fee)
}

func (u *Unlike) Sign(key crypto.PrivateKey) {
	bytes := u.serializeSign()
	u.Signature = key.Sign(bytes)
}

func (u *Unlike) JSON() string {
	bulk := &util.JSONBuilder{}
	bulk.PutString("kind", "unlike")
	bulk.PutUint64("version", 0)
	bulk.PutUint64("instructionType", uint64(IUnlike))
	bulk.PutUint64("epoch", u.TimeStamp)
	bulk.PutHex("user", u.User[:])
	bulk.PutHex("post", u.Post[:])
	bulk.PutUint64("fee", u.Fee)
	bulk.PutBase64("signature", u.Signature[:])
	return bulk.ToString()
}

func ParseUnlike(data []byte) *Unlike {
	if len(data) < 2 || data[1] != IUnlike {
		return nil
	}
	p := Unlike{}
	position := 2
	p.TimeStamp, position = util.ParseUint64(data, position)
	p.User, position = util.ParseToken(data, position)
	p.Post, position = util.ParseHash(data, position)
	p.Fee, position = util.ParseUint64(data, position)
	msg := data[0:position]
	p.Signature, _ = util.ParseSignature(data, position)
	if !p.User.Verify(msg, p.Signature) {
		return nil
	}
	return &p
}
