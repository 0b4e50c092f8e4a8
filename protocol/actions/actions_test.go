package actions

import (
	"testing"

	"github.com/freehandle/quill/crypto"
)

func TestParseActionDispatch(t *testing.T) {
	token, secret := crypto.RandomAsymetricKey()
	create := CreatePost{
		TimeStamp: 10,
		Author:    token,
		Content:   "first post",
		PostType:  0,
		PostTime:  1700000000,
		Fee:       30,
	}
	create.Sign(secret)
	action := ParseAction(create.Serialize())
	if action == nil {
		t.Fatal("could not parse signed action")
	}
	parsed, ok := action.(*CreatePost)
	if !ok {
		t.Fatal("action parsed to wrong kind")
	}
	if parsed.Content != "first post" || parsed.PostTime != 1700000000 || parsed.FeePaid() != 30 {
		t.Error("action fields lost on round trip")
	}
	if !parsed.Authority().Equal(token) {
		t.Error("authority mismatch")
	}
}

func TestParseActionRejectsTampering(t *testing.T) {
	token, secret := crypto.RandomAsymetricKey()
	follow := Follow{TimeStamp: 1, Follower: token, Following: token, Fee: 5}
	follow.Sign(secret)
	data := follow.Serialize()
	if ParseAction(data) == nil {
		t.Fatal("valid action rejected")
	}
	// flip a byte inside the signed payload
	tampered := make([]byte, len(data))
	copy(tampered, data)
	tampered[10] = tampered[10] + 1
	if ParseAction(tampered) != nil {
		t.Error("tampered action accepted")
	}
	// wrong version byte
	tampered = make([]byte, len(data))
	copy(tampered, data)
	tampered[0] = 1
	if ParseAction(tampered) != nil {
		t.Error("unknown version accepted")
	}
}

func TestParseActionUnknownKind(t *testing.T) {
	if ParseAction([]byte{0, IUnknown, 1, 2, 3}) != nil {
		t.Error("unknown kind accepted")
	}
	if ParseAction([]byte{}) != nil {
		t.Error("empty data accepted")
	}
}

func TestPaymentsDebitFeePayer(t *testing.T) {
	token, secret := crypto.RandomAsymetricKey()
	like := Like{TimeStamp: 1, User: token, Post: crypto.Hasher([]byte("p")), Fee: 77}
	like.Sign(secret)
	payment := like.Payments()
	if payment == nil || len(payment.Debit) != 1 {
		t.Fatal("missing fee debit")
	}
	if !payment.Debit[0].Account.Equal(crypto.HashToken(token)) || payment.Debit[0].FungibleTokens != 77 {
		t.Error("fee debit must charge the signer")
	}
	payment.NewDebit(crypto.HashToken(token), 3)
	if payment.Debit[0].FungibleTokens != 80 {
		t.Error("debits against the same account must accumulate")
	}
}

func TestAllKindsRoundTrip(t *testing.T) {
	token, secret := crypto.RandomAsymetricKey()
	other, _ := crypto.RandomAsymetricKey()
	post := crypto.Hasher([]byte("post"))
	username := "quill"

	all := []Action{}
	profile := &CreateProfile{TimeStamp: 1, User: token, Fee: 1}
	profile.Sign(secret)
	all = append(all, profile)
	update := &UpdateProfile{TimeStamp: 2, User: token, Username: &username, Fee: 1}
	update.Sign(secret)
	all = append(all, update)
	link := &LinkAsset{TimeStamp: 3, Author: token, Post: post, Asset: other, Fee: 1}
	link.Sign(secret)
	all = append(all, link)
	chunk := &AddImageChunk{TimeStamp: 4, Author: token, Post: post, Index: 1, Total: 2, Data: []byte{1}, Fee: 1}
	chunk.Sign(secret)
	all = append(all, chunk)
	follow := &Follow{TimeStamp: 5, Follower: token, Following: other, Fee: 1}
	follow.Sign(secret)
	all = append(all, follow)
	unfollow := &Unfollow{TimeStamp: 6, Follower: token, Following: other, Fee: 1}
	unfollow.Sign(secret)
	all = append(all, unfollow)
	like := &Like{TimeStamp: 7, User: token, Post: post, Fee: 1}
	like.Sign(secret)
	all = append(all, like)
	unlike := &Unlike{TimeStamp: 8, User: token, Post: post, Fee: 1}
	unlike.Sign(secret)
	all = append(all, unlike)

	for _, action := range all {
		parsed := ParseAction(action.Serialize())
		if parsed == nil {
			t.Fatalf("kind %v: could not parse", action.Kind())
		}
		if parsed.Kind() != action.Kind() {
			t.Errorf("kind %v: parsed as %v", action.Kind(), parsed.Kind())
		}
		if !parsed.Authority().Equal(token) {
			t.Errorf("kind %v: authority mismatch", action.Kind())
		}
		if parsed.JSON() == "" {
			t.Errorf("kind %v: empty json view", action.Kind())
		}
	}
}
