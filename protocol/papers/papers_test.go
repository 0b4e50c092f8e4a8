package papers

import (
	"strings"
	"testing"

	"github.com/freehandle/quill/crypto"
)

func TestPostValidate(t *testing.T) {
	token, _ := crypto.RandomAsymetricKey()
	post := Post{Author: token, Content: "", PostType: TextPost, TimeStamp: 100}
	if post.Validate() != ErrContentEmpty {
		t.Error("empty content accepted")
	}
	post.Content = strings.Repeat("a", MaxContentLen+1)
	if post.Validate() != ErrContentTooLong {
		t.Error("oversized content accepted")
	}
	post.Content = strings.Repeat("a", MaxContentLen)
	if post.Validate() != nil {
		t.Error("content at the limit rejected")
	}
}

func TestPostSerializeParse(t *testing.T) {
	token, _ := crypto.RandomAsymetricKey()
	asset, _ := crypto.RandomAsymetricKey()
	reply := crypto.Hasher([]byte("parent"))
	chunk := crypto.Hasher([]byte("chunk"))
	post := Post{
		Author:      token,
		Content:     "hello quill",
		PostType:    ImagePost,
		ImageAsset:  &asset,
		Chunks:      []crypto.Hash{chunk},
		TotalChunks: 3,
		ReplyTo:     &reply,
		TimeStamp:   1700000000,
		Likes:       7,
		Bump:        255,
	}
	parsed := ParsePost(post.Serialize())
	if parsed == nil {
		t.Fatal("could not parse serialized post")
	}
	if !parsed.Author.Equal(token) || parsed.Content != "hello quill" {
		t.Error("post fields lost on round trip")
	}
	if parsed.ImageAsset == nil || !parsed.ImageAsset.Equal(asset) {
		t.Error("image asset lost on round trip")
	}
	if parsed.ReplyTo == nil || !parsed.ReplyTo.Equal(reply) {
		t.Error("reply address lost on round trip")
	}
	if len(parsed.Chunks) != 1 || !parsed.Chunks[0].Equal(chunk) || parsed.TotalChunks != 3 {
		t.Error("chunk references lost on round trip")
	}
	if parsed.Likes != 7 || parsed.Bump != 255 {
		t.Error("counters lost on round trip")
	}
	data := post.Serialize()
	data[0] = UserProfileKind
	if ParsePost(data) != nil {
		t.Error("wrong discriminator accepted")
	}
	if ParsePost(append(post.Serialize(), 0)) != nil {
		t.Error("trailing bytes accepted")
	}
}

func TestProfileFieldValidation(t *testing.T) {
	bio := strings.Repeat("b", MaxBioLen+1)
	if ValidateProfileFields(nil, nil, &bio, nil, nil, nil, nil) != ErrBioTooLong {
		t.Error("oversized bio accepted")
	}
	username := strings.Repeat("u", MaxUsernameLen+1)
	if ValidateProfileFields(&username, nil, nil, nil, nil, nil, nil) != ErrUsernameTooLong {
		t.Error("oversized username accepted")
	}
	location := strings.Repeat("l", MaxLocationLen)
	if ValidateProfileFields(nil, nil, nil, nil, nil, nil, &location) != nil {
		t.Error("location at the limit rejected")
	}
	if ValidateProfileFields(nil, nil, nil, nil, nil, nil, nil) != nil {
		t.Error("all-empty update rejected")
	}
}

func TestProfileSerializeParse(t *testing.T) {
	token, _ := crypto.RandomAsymetricKey()
	username := "quill"
	profile := UserProfile{
		User:           token,
		Username:       &username,
		PostCount:      3,
		FollowersCount: 2,
		FollowingCount: 1,
		CreatedAt:      1700000000,
		Bump:           254,
	}
	parsed := ParseUserProfile(profile.Serialize())
	if parsed == nil {
		t.Fatal("could not parse serialized profile")
	}
	if !parsed.User.Equal(token) || parsed.Username == nil || *parsed.Username != "quill" {
		t.Error("profile fields lost on round trip")
	}
	if parsed.DisplayName != nil || parsed.Bio != nil {
		t.Error("unset optional fields must stay nil")
	}
	if parsed.PostCount != 3 || parsed.FollowersCount != 2 || parsed.FollowingCount != 1 {
		t.Error("counters lost on round trip")
	}
}

func TestRelationsSerializeParse(t *testing.T) {
	a, _ := crypto.RandomAsymetricKey()
	b, _ := crypto.RandomAsymetricKey()
	follow := FollowRelation{Follower: a, Following: b, TimeStamp: 123, Bump: 255}
	if parsed := ParseFollowRelation(follow.Serialize()); parsed == nil ||
		!parsed.Follower.Equal(a) || !parsed.Following.Equal(b) || parsed.TimeStamp != 123 {
		t.Error("follow relation round trip failed")
	}
	post := crypto.Hasher([]byte("post"))
	like := LikeRelation{User: a, Post: post, TimeStamp: 456, Bump: 253}
	if parsed := ParseLikeRelation(like.Serialize()); parsed == nil ||
		!parsed.User.Equal(a) || !parsed.Post.Equal(post) || parsed.Bump != 253 {
		t.Error("like relation round trip failed")
	}
	if ParseFollowRelation(like.Serialize()) != nil {
		t.Error("like record accepted as follow relation")
	}
}

func TestChunkValidate(t *testing.T) {
	post := crypto.Hasher([]byte("post"))
	chunk := ImageChunk{Post: post, Index: 0, TotalChunks: 2, Data: make([]byte, MaxChunkDataLen+1)}
	if chunk.Validate() != ErrChunkTooLarge {
		t.Error("oversized chunk accepted")
	}
	chunk.Data = make([]byte, MaxChunkDataLen)
	if chunk.Validate() != nil {
		t.Error("chunk at the limit rejected")
	}
	parsed := ParseImageChunk(chunk.Serialize())
	if parsed == nil || !parsed.Post.Equal(post) || len(parsed.Data) != MaxChunkDataLen {
		t.Error("chunk round trip failed")
	}
}

func TestRecordDispatch(t *testing.T) {
	token, _ := crypto.RandomAsymetricKey()
	post := Post{Author: token, Content: "dispatch", PostType: TextPost, TimeStamp: 1}
	if Kind(post.Serialize()) != PostKind {
		t.Error("post record misclassified")
	}
	if Kind([]byte{}) != UnknownKind {
		t.Error("empty record must be unknown")
	}
	view := JSONFromRecord(post.Serialize())
	if !strings.Contains(view, "dispatch") {
		t.Errorf("json view missing content: %v", view)
	}
}
