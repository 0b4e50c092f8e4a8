/*
Package papers implements the addressable records of the quill social
protocol and the deterministic derivation of their ledger addresses.

Every record lives at an address derived from a namespace seed and its
logical key material, so any party can recompute where a record must be
without an index. Five record kinds exist: Post, UserProfile, FollowRelation,
LikeRelation and ImageChunk. Follow and like relations carry no flag field;
the existence of the record at its derived address is the relation.
*/
package papers

// Record kind discriminators. The first byte of every serialized record.
const (
	PostKind byte = iota
	UserProfileKind
	FollowKind
	LikeKind
	ChunkKind
	UnknownKind
)

// Namespace seeds. Addresses are derived from these tags concatenated with
// raw key material, and must be preserved bit-for-bit across deployments.
const (
	PostSeed        = "post"
	UserProfileSeed = "user_profile"
	FollowSeed      = "follow"
	LikeSeed        = "like"
	ChunkSeed       = "chunk"
)

// Post types.
const (
	TextPost byte = iota
	ImagePost
)

// Field limits, checked before any mutation is applied.
const (
	MaxContentLen       = 280
	MaxUsernameLen      = 50
	MaxDisplayNameLen   = 50
	MaxBioLen           = 160
	MaxAvatarUrlLen     = 200
	MaxCoverImageUrlLen = 200
	MaxWebsiteUrlLen    = 200
	MaxLocationLen      = 100
	MaxChunkDataLen     = 9216
	MaxImageChunks      = 64
)
