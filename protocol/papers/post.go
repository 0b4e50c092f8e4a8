package papers

import (
	"github.com/freehandle/quill/crypto"
	"github.com/freehandle/quill/util"
)

// MaxPostSize is the worst-case serialized size of a post. Storage is paid
// for and sized at creation and cannot shrink, so every optional field
// reserves its full size even when unset.
const MaxPostSize = 1 + // kind
	crypto.TokenSize + // author
	2 + MaxContentLen + // content
	1 + // post type
	1 + crypto.TokenSize + // image asset
	4 + MaxImageChunks*crypto.Size + // chunk addresses
	4 + // declared chunk total
	1 + crypto.Size + // reply to
	8 + // timestamp
	8 + 8 + 8 + // likes, reposts, replies
	1 // bump

// Post is a single message on the quill ledger, addressed by its author and
// its caller-supplied timestamp. Reposts and Replies are persisted but no
// operation mutates them yet.
type Post struct {
	Author      crypto.Token
	Content     string
	PostType    byte
	ImageAsset  *crypto.Token
	Chunks      []crypto.Hash
	TotalChunks uint32
	ReplyTo     *crypto.Hash
	TimeStamp   int64
	Likes       uint64
	Reposts     uint64
	Replies     uint64
	Bump        byte
}

// Validate checks the content limits of the post.
func (p *Post) Validate() error {
	if len(p.Content) == 0 {
		return ErrContentEmpty
	}
	if len(p.Content) > MaxContentLen {
		return ErrContentTooLong
	}
	return nil
}

// Address recomputes the address the post must live at.
func (p *Post) Address() crypto.Hash {
	address, _ := PostAddress(p.Author, p.TimeStamp)
	return address
}

func (p *Post) Serialize() []byte {
	data := []byte{PostKind}
	util.PutToken(p.Author, &data)
	util.PutString(p.Content, &data)
	util.PutByte(p.PostType, &data)
	util.PutMaybeToken(p.ImageAsset, &data)
	util.PutHashArray(p.Chunks, &data)
	util.PutUint32(p.TotalChunks, &data)
	util.PutMaybeHash(p.ReplyTo, &data)
	util.PutInt64(p.TimeStamp, &data)
	util.PutUint64(p.Likes, &data)
	util.PutUint64(p.Reposts, &data)
	util.PutUint64(p.Replies, &data)
	util.PutByte(p.Bump, &data)
	return data
}

func ParsePost(data []byte) *Post {
	if len(data) == 0 || data[0] != PostKind {
		return nil
	}
	position := 1
	post := Post{}
	post.Author, position = util.ParseToken(data, position)
	post.Content, position = util.ParseString(data, position)
	post.PostType, position = util.ParseByte(data, position)
	post.ImageAsset, position = util.ParseMaybeToken(data, position)
	post.Chunks, position = util.ParseHashArray(data, position)
	post.TotalChunks, position = util.ParseUint32(data, position)
	post.ReplyTo, position = util.ParseMaybeHash(data, position)
	post.TimeStamp, position = util.ParseInt64(data, position)
	post.Likes, position = util.ParseUint64(data, position)
	post.Reposts, position = util.ParseUint64(data, position)
	post.Replies, position = util.ParseUint64(data, position)
	post.Bump, position = util.ParseByte(data, position)
	if position != len(data) {
		return nil
	}
	return &post
}

func (p *Post) JSON() string {
	bulk := &util.JSONBuilder{}
	bulk.PutString("kind", "post")
	bulk.PutHex("author", p.Author[:])
	bulk.PutString("content", p.Content)
	bulk.PutUint64("postType", uint64(p.PostType))
	if p.ImageAsset != nil {
		bulk.PutHex("imageAsset", p.ImageAsset[:])
	}
	bulk.PutHashArray("chunks", p.Chunks)
	bulk.PutUint64("totalChunks", uint64(p.TotalChunks))
	if p.ReplyTo != nil {
		bulk.PutHex("replyTo", p.ReplyTo[:])
	}
	bulk.PutInt64("timestamp", p.TimeStamp)
	bulk.PutUint64("likes", p.Likes)
	bulk.PutUint64("reposts", p.Reposts)
	bulk.PutUint64("replies", p.Replies)
	bulk.PutUint64("bump", uint64(p.Bump))
	return bulk.ToString()
}
