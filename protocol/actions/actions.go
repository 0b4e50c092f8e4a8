/*
Package actions implements the signed operations of the quill protocol.

Every mutation of the social ledger is an action: create post, link image
asset, add image chunk, follow, unfollow, like, unlike, create profile and
update profile. An action carries a version byte, a kind byte, an epoch, the
signer token, its payload, a gateway fee and the signer's signature over
everything before the signature.

Parsing an action verifies the signature against the embedded signer token,
so a parsed action is already authenticated: the authorization guard of the
state validator only needs to match the signer against the authority each
operation requires.
*/
package actions

import (
	"github.com/freehandle/quill/crypto"
)

// Action kinds. Kind >= IUnknown is reserved for future use.
const (
	ICreatePost byte = iota
	ILinkAsset
	IAddImageChunk
	IFollow
	IUnfollow
	ILike
	IUnlike
	ICreateProfile
	IUpdateProfile
	IUnknown
)

type Wallet struct {
	Account        crypto.Hash
	FungibleTokens uint64
}

type Payment struct {
	Debit  []Wallet
	Credit []Wallet
}

// Action is the interface common to all quill operations. Authority is the
// token whose signature authorizes the action. Payments describes the wallet
// deltas of the gateway fee; the storage deposits and platform fees of post
// creation are computed by the state validator, not by the action.
type Action interface {
	Payments() *Payment
	Serialize() []byte
	Epoch() uint64
	Kind() byte
	FeePaid() uint64
	Authority() crypto.Token
	Tokens() []crypto.Token
	JSON() string
}

// NewPayment creates a new payment with a debit account and value.
func NewPayment(debitAcc crypto.Hash, value uint64) *Payment {
	return &Payment{
		Debit:  []Wallet{{debitAcc, value}},
		Credit: []Wallet{},
	}
}

func (p *Payment) NewCredit(account crypto.Hash, value uint64) {
	for n, credit := range p.Credit {
		if credit.Account.Equal(account) {
			p.Credit[n].FungibleTokens += value
			return
		}
	}
	p.Credit = append(p.Credit, Wallet{Account: account, FungibleTokens: value})
}

func (p *Payment) NewDebit(account crypto.Hash, value uint64) {
	for n, debit := range p.Debit {
		if debit.Account.Equal(account) {
			p.Debit[n].FungibleTokens += value
			return
		}
	}
	p.Debit = append(p.Debit, Wallet{Account: account, FungibleTokens: value})
}

func Kind(data []byte) byte {
	if len(data) < 2 {
		return IUnknown
	}
	return data[1]
}

// ParseAction parses and authenticates a serialized action. It returns nil
// for unknown kinds, malformed payloads and invalid signatures.
func ParseAction(data []byte) Action {
	if len(data) < 2 || data[0] != 0 {
		return nil
	}
	switch data[1] {
	case ICreatePost:
		if action := ParseCreatePost(data); action != nil {
			return action
		}
	case ILinkAsset:
		if action := ParseLinkAsset(data); action != nil {
			return action
		}
	case IAddImageChunk:
		if action := ParseAddImageChunk(data); action != nil {
			return action
		}
	case IFollow:
		if action := ParseFollow(data); action != nil {
			return action
		}
	case IUnfollow:
		if action := ParseUnfollow(data); action != nil {
			return action
		}
	case ILike:
		if action := ParseLike(data); action != nil {
			return action
		}
	case IUnlike:
		if action := ParseUnlike(data); action != nil {
			return action
		}
	case ICreateProfile:
		if action := ParseCreateProfile(data); action != nil {
			return action
		}
	case IUpdateProfile:
		if action := ParseUpdateProfile(data); action != nil {
			return action
		}
	}
	return nil
}
