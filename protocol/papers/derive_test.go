package papers

import (
	"crypto/sha256"
	"testing"

	"github.com/freehandle/quill/crypto"
	"github.com/freehandle/quill/util"
)

func TestDeriveAddressDeterministic(t *testing.T) {
	token, _ := crypto.RandomAsymetricKey()
	first, bump1, err := DeriveAddress(UserProfileSeed, token[:])
	if err != nil {
		t.Fatalf("derivation failed: %v", err)
	}
	second, bump2, _ := DeriveAddress(UserProfileSeed, token[:])
	if !first.Equal(second) || bump1 != bump2 {
		t.Error("derivation is not deterministic")
	}
	another, _ := crypto.RandomAsymetricKey()
	other, _, _ := DeriveAddress(UserProfileSeed, another[:])
	if first.Equal(other) {
		t.Error("distinct tokens derived the same address")
	}
}

func TestDeriveAddressLayout(t *testing.T) {
	token, _ := crypto.RandomAsymetricKey()
	address, bump, err := DeriveAddress(PostSeed, token[:], util.Int64ToBytes(1700000000))
	if err != nil {
		t.Fatalf("derivation failed: %v", err)
	}
	// preimage is seed tag, key material in order, then the bump byte
	preimage := append([]byte(PostSeed), token[:]...)
	preimage = append(preimage, util.Int64ToBytes(1700000000)...)
	preimage = append(preimage, bump)
	if crypto.Hash(sha256.Sum256(preimage)) != address {
		t.Error("address does not match sha256 over tagged preimage")
	}
}

func TestDeriveAddressRejectsBadKeys(t *testing.T) {
	if _, _, err := DeriveAddress(PostSeed); err != ErrInvalidSeed {
		t.Error("empty key material should be rejected")
	}
	if _, _, err := DeriveAddress(PostSeed, []byte{}); err != ErrInvalidSeed {
		t.Error("empty key part should be rejected")
	}
	if _, _, err := DeriveAddress(PostSeed, make([]byte, 33)); err != ErrInvalidSeed {
		t.Error("oversized key part should be rejected")
	}
}

func TestNamespacesDisjoint(t *testing.T) {
	a, _ := crypto.RandomAsymetricKey()
	b, _ := crypto.RandomAsymetricKey()
	follow, _ := FollowAddress(a, b)
	reversed, _ := FollowAddress(b, a)
	if follow.Equal(reversed) {
		t.Error("follow addresses must be ordered")
	}
	profile, _ := ProfileAddress(a)
	if follow.Equal(profile) {
		t.Error("namespaces must not collide")
	}
}

func TestChunkAddressIndexed(t *testing.T) {
	post := crypto.Hasher([]byte("post"))
	first, _ := ChunkAddress(post, 0)
	second, _ := ChunkAddress(post, 1)
	if first.Equal(second) {
		t.Error("chunk addresses must be indexed")
	}
	again, _ := ChunkAddress(post, 0)
	if !first.Equal(again) {
		t.Error("chunk derivation is not deterministic")
	}
}
