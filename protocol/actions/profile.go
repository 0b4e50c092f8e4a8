package actions

import (
	"github.com/freehandle/quill/crypto"
	"github.com/freehandle/quill/util"
)

// CreateProfile creates the one-time profile record for the signer.
type CreateProfile struct {
	TimeStamp uint64
	User      crypto.Token
	Fee       uint64
	Signature crypto.Signature
}

func (c *CreateProfile) Tokens() []crypto.Token {
	return []crypto.Token{c.User}
}

func (c *CreateProfile) FeePaid() uint64 {
	return c.Fee
}

func (c *CreateProfile) serializeSign() []byte {
	bytes := []byte{0, ICreateProfile}
	util.PutUint64(c.TimeStamp, &bytes)
	util.PutToken(c.User, &bytes)
	util.PutUint64(c.Fee, &bytes)
	return bytes
}

func (c *CreateProfile) Serialize() []byte {
	bytes := c.serializeSign()
	util.PutSignature(c.Signature, &bytes)
	return bytes
}

func (c *CreateProfile) Authority() crypto.Token {
	return c.User
}

func (c *CreateProfile) Epoch() uint64 {
	return c.TimeStamp
}

func (c *CreateProfile) Kind() byte {
	return ICreateProfile
}

func (c *CreateProfile) Payments() *Payment {
	return NewPayment(crypto.HashToken(c.User), c.Fee)
}

func (c *CreateProfile) Sign(key crypto.PrivateKey) {
	bytes := c.serializeSign()
	c.Signature = key.Sign(bytes)
}

func (c *CreateProfile) JSON() string {
	bulk := &util.JSONBuilder{}
	bulk.PutString("kind", "createProfile")
	bulk.PutUint64("version", 0)
	bulk.PutUint64("instructionType", uint64(ICreateProfile))
	bulk.PutUint64("epoch", c.TimeStamp)
	bulk.PutHex("user", c.User[:])
	bulk.PutUint64("fee", c.Fee)
	bulk.PutBase64("signature", c.Signature[:])
	return bulk.ToString()
}

func ParseCreateProfile(data []byte) *CreateProfile {
	if len(data) < 2 || data[1] != ICreateProfile {
		return nil
	}
	p := CreateProfile{}
	position := 2
	p.TimeStamp, position = util.ParseUint64(data, position)
	p.User, position = util.ParseToken(data, position)
	p.Fee, position = util.ParseUint64(data, position)
	msg := data[0:position]
	p.Signature, _ = util.ParseSignature(data, position)
	if !p.User.Verify(msg, p.Signature) {
		return nil
	}
	return &p
}

// UpdateProfile replaces each of the seven optional fields that was supplied
// and leaves omitted fields untouched. All supplied fields are validated
// before any of them is written.
type UpdateProfile struct {
	TimeStamp     uint64
	User          crypto.Token
	Username      *string
	DisplayName   *string
	Bio           *string
	AvatarUrl     *string
	CoverImageUrl *string
	WebsiteUrl    *string
	Location      *string
	Fee           uint64
	Signature     crypto.Signature
}

func (u *UpdateProfile) Tokens() []crypto.Token {
	return []crypto.Token{u.User}
}

func (u *UpdateProfile) FeePaid() uint64 {
	return u.Fee
}

func (u *UpdateProfile) serializeSign() []byte {
	bytes := []byte{0, IUpdateProfile}
	util.PutUint64(u.TimeStamp, &bytes)
	util.PutToken(u.User, &bytes)
	util.PutMaybeString(u.Username, &bytes)
	util.PutMaybeString(u.DisplayName, &bytes)
	util.PutMaybeString(u.Bio, &bytes)
	util.PutMaybeString(u.AvatarUrl, &bytes)
	util.PutMaybeString(u.CoverImageUrl, &bytes)
	util.PutMaybeString(u.WebsiteUrl, &bytes)
	util.PutMaybeString(u.Location, &bytes)
	util.PutUint64(u.Fee, &bytes)
	return bytes
}

func (u *UpdateProfile) Serialize() []byte {
	bytes := u.serializeSign()
	util.PutSignature(u.Signature, &bytes)
	return bytes
}

func (u *UpdateProfile) Authority() crypto.Token {
	return u.User
}

func (u *UpdateProfile) Epoch() uint64 {
	return u.TimeStamp
}

func (u *UpdateProfile) Kind() byte {
	return IUpdateProfile
}

func (u *UpdateProfile) Payments() *Payment {
	return NewPayment(crypto.HashToken(u.User), u.Fee)
}

func (u *UpdateProfile) Sign(key crypto.PrivateKey) {
	bytes := u.serializeSign()
	u.Signature = key.Sign(bytes)
}

func (u *UpdateProfile) JSON() string {
	bulk := &util.JSONBuilder{}
	bulk.PutString("kind", "updateProfile")
	bulk.PutUint64("version", 0)
	bulk.PutUint64("instructionType", uint64(IUpdateProfile))
	bulk.PutUint64("epoch", u.TimeStamp)
	bulk.PutHex("user", u.User[:])
	if u.Username != nil {
		bulk.PutString("username", *u.Username)
	}
	if u.DisplayName != nil {
		bulk.PutString("displayName", *u.DisplayName)
	}
	if u.Bio != nil {
		bulk.PutString("bio", *u.Bio)
	}
	if u.AvatarUrl != nil {
		bulk.PutString("avatarUrl", *u.AvatarUrl)
	}
	if u.CoverImageUrl != nil {
		bulk.PutString("coverImageUrl", *u.CoverImageUrl)
	}
	if u.WebsiteUrl != nil {
		bulk.PutString("websiteUrl", *u.WebsiteUrl)
	}
	if u.Location != nil {
		bulk.PutString("location", *u.Location)
	}
	bulk.PutUint64("fee", u.Fee)
	bulk.PutBase64("signature", u.Signature[:])
	return bulk.ToString()
}

func ParseUpdateProfile(data []byte) *UpdateProfile {
	if len(data) < 2 || data[1] != IUpdateProfile {
		return nil
	}
	p := UpdateProfile{}
	position := 2
	p.TimeStamp, position = util.ParseUint64(data, position)
	p.User, position = util.ParseToken(data, position)
	p.Username, position = util.ParseMaybeString(data, position)
	p.DisplayName, position = util.ParseMaybeString(data, position)
	p.Bio, position = util.ParseMaybeString(data, position)
	p.AvatarUrl, position = util.ParseMaybeString(data, position)
	p.CoverImageUrl, position = util.ParseMaybeString(data, position)
	p.WebsiteUrl, position = util.ParseMaybeString(data, position)
	p.Location, position = util.ParseMaybeString(data, position)
	p.Fee, position = util.ParseUint64(data, position)
	msg := data[0:position]
	p.Signature, _ = util.ParseSignature(data, position)
	if !p.User.Verify(msg, p.Signature) {
		return nil
	}
	return &p
}
