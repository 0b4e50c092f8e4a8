package papers

// Kind returns the discriminator of a serialized record.
func Kind(data []byte) byte {
	if len(data) == 0 {
		return UnknownKind
	}
	return data[0]
}

// JSONFromRecord renders any serialized record as JSON, or an empty string
// when the blob parses as no known kind.
func JSONFromRecord(data []byte) string {
	switch Kind(data) {
	case PostKind:
		if post := ParsePost(data); post != nil {
			return post.JSON()
		}
	case UserProfileKind:
		if profile := ParseUserProfile(data); profile != nil {
			return profile.JSON()
		}
	case FollowKind:
		if follow := ParseFollowRelation(data); follow != nil {
			return follow.JSON()
		}
	case LikeKind:
		if like := ParseLikeRelation(data); like != nil {
			return like.JSON()
		}
	case ChunkKind:
		if chunk := ParseImageChunk(data); chunk != nil {
			return chunk.JSON()
		}
	}
	return ""
}
