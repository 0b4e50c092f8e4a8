package papers

import (
	"github.com/freehandle/quill/crypto"
	"github.com/freehandle/quill/util"
)

const MaxFollowRelationSize = 1 + 2*crypto.TokenSize + 8 + 1

const MaxLikeRelationSize = 1 + crypto.TokenSize + crypto.Size + 8 + 1

// FollowRelation records that follower follows following. The record's
// existence at its derived address is the relation; destroying the record is
// the unfollow.
type FollowRelation struct {
	Follower  crypto.Token
	Following crypto.Token
	TimeStamp int64
	Bump      byte
}

func (f *FollowRelation) Address() crypto.Hash {
	address, _ := FollowAddress(f.Follower, f.Following)
	return address
}

func (f *FollowRelation) Serialize() []byte {
	data := []byte{FollowKind}
	util.PutToken(f.Follower, &data)
	util.PutToken(f.Following, &data)
	util.PutInt64(f.TimeStamp, &data)
	util.PutByte(f.Bump, &data)
	return data
}

func ParseFollowRelation(data []byte) *FollowRelation {
	if len(data) == 0 || data[0] != FollowKind {
		return nil
	}
	position := 1
	follow := FollowRelation{}
	follow.Follower, position = util.ParseToken(data, position)
	follow.Following, position = util.ParseToken(data, position)
	follow.TimeStamp, position = util.ParseInt64(data, position)
	follow.Bump, position = util.ParseByte(data, position)
	if position != len(data) {
		return nil
	}
	return &follow
}

func (f *FollowRelation) JSON() string {
	bulk := &util.JSONBuilder{}
	bulk.PutString("kind", "follow")
	bulk.PutHex("follower", f.Follower[:])
	bulk.PutHex("following", f.Following[:])
	bulk.PutInt64("timestamp", f.TimeStamp)
	bulk.PutUint64("bump", uint64(f.Bump))
	return bulk.ToString()
}

// LikeRelation records that user likes the post at the given address, with
// the same existence-as-truth semantics as FollowRelation.
type LikeRelation struct {
	User      crypto.Token
	Post      crypto.Hash
	TimeStamp int64
	Bump      byte
}

func (l *LikeRelation) Address() crypto.Hash {
	address, _ := LikeAddress(l.User, l.Post)
	return address
}

func (l *LikeRelation) Serialize() []byte {
	data := []byte{LikeKind}
	util.PutToken(l.User, &data)
	util.PutHash(l.Post, &data)
	util.PutInt64(l.TimeStamp, &data)
	util.PutByte(l.Bump, &data)
	return data
}

func ParseLikeRelation(data []byte) *LikeRelation {
	if len(data) == 0 || data[0] != LikeKind {
		return nil
	}
	position := 1
	like := LikeRelation{}
	like.User, position = util.ParseToken(data, position)
	like.Post, position = util.ParseHash(data, position)
	like.TimeStamp, position = util.ParseInt64(data, position)
	like.Bump, position = util.ParseByte(data, position)
	if position != len(data) {
		return nil
	}
	return &like
}

func (l *LikeRelation) JSON() string {
	bulk := &util.JSONBuilder{}
	bulk.PutString("kind", "like")
	bulk.PutHex("user", l.User[:])
	bulk.PutHex("post", l.Post[:])
	bulk.PutInt64("timestamp", l.TimeStamp)
	bulk.PutUint64("bump", uint64(l.Bump))
	return bulk.ToString()
}
