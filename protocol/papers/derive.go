package papers

import (
	"github.com/freehandle/quill/crypto"
	"github.com/freehandle/quill/util"
)

// maxSeedPartLen is the largest key component the derivation accepts. Key
// material is tokens, hashes and 8-byte integer encodings, all at most 32
// bytes.
const maxSeedPartLen = 32

// DeriveAddress maps a namespace seed and ordered key material to a record
// address and a disambiguation bump. The bump is the first value in a
// descending search from 255 whose derived hash does not alias a reserved
// ledger value. Derivation is pure: identical inputs always yield the same
// address and bump.
func DeriveAddress(seed string, parts ...[]byte) (crypto.Hash, byte, error) {
	if len(parts) == 0 {
		return crypto.ZeroValueHash, 0, ErrInvalidSeed
	}
	data := []byte(seed)
	for _, part := range parts {
		if len(part) == 0 || len(part) > maxSeedPartLen {
			return crypto.ZeroValueHash, 0, ErrInvalidSeed
		}
		data = append(data, part...)
	}
	for bump := 255; bump >= 0; bump-- {
		address := crypto.Hasher(append(data, byte(bump)))
		if address != crypto.ZeroHash && address != crypto.ZeroValueHash {
			return address, byte(bump), nil
		}
	}
	return crypto.ZeroValueHash, 0, ErrInvalidSeed
}

// PostAddress derives the address of the post created by author at the given
// caller-supplied timestamp. The timestamp is part of the key: one author can
// hold at most one post per exact timestamp value.
func PostAddress(author crypto.Token, timestamp int64) (crypto.Hash, byte) {
	address, bump, _ := DeriveAddress(PostSeed, author[:], util.Int64ToBytes(timestamp))
	return address, bump
}

// ProfileAddress derives the address of a user's unique profile record.
func ProfileAddress(user crypto.Token) (crypto.Hash, byte) {
	address, bump, _ := DeriveAddress(UserProfileSeed, user[:])
	return address, bump
}

// FollowAddress derives the address of the follow relation for the ordered
// pair (follower, following).
func FollowAddress(follower, following crypto.Token) (crypto.Hash, byte) {
	address, bump, _ := DeriveAddress(FollowSeed, follower[:], following[:])
	return address, bump
}

// LikeAddress derives the address of the like relation for (user, post).
func LikeAddress(user crypto.Token, post crypto.Hash) (crypto.Hash, byte) {
	address, bump, _ := DeriveAddress(LikeSeed, user[:], post[:])
	return address, bump
}

// ChunkAddress derives the address of an image chunk keyed by its parent post
// and its index.
func ChunkAddress(post crypto.Hash, index uint32) (crypto.Hash, byte) {
	address, bump, _ := DeriveAddress(ChunkSeed, post[:], util.Int64ToBytes(int64(index)))
	return address, bump
}
