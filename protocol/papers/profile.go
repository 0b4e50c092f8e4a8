package papers

import (
	"github.com/freehandle/quill/crypto"
	"github.com/freehandle/quill/util"
)

// MaxUserProfileSize reserves the worst case for all seven optional fields.
const MaxUserProfileSize = 1 + // kind
	crypto.TokenSize + // user
	1 + 2 + MaxUsernameLen +
	1 + 2 + MaxDisplayNameLen +
	1 + 2 + MaxBioLen +
	1 + 2 + MaxAvatarUrlLen +
	1 + 2 + MaxCoverImageUrlLen +
	1 + 2 + MaxWebsiteUrlLen +
	1 + 2 + MaxLocationLen +
	8 + 8 + 8 + // followers, following, posts
	8 + // created at
	1 + // verified
	1 // bump

// UserProfile is the unique profile record of a user token. The three
// counters are best-effort caches over relation existence. Verified is never
// set by any core operation; it is reserved for an external authority.
type UserProfile struct {
	User           crypto.Token
	Username       *string
	DisplayName    *string
	Bio            *string
	AvatarUrl      *string
	CoverImageUrl  *string
	WebsiteUrl     *string
	Location       *string
	FollowersCount uint64
	FollowingCount uint64
	PostCount      uint64
	CreatedAt      int64
	Verified       bool
	Bump           byte
}

func (u *UserProfile) Address() crypto.Hash {
	address, _ := ProfileAddress(u.User)
	return address
}

func (u *UserProfile) Serialize() []byte {
	data := []byte{UserProfileKind}
	util.PutToken(u.User, &data)
	util.PutMaybeString(u.Username, &data)
	util.PutMaybeString(u.DisplayName, &data)
	util.PutMaybeString(u.Bio, &data)
	util.PutMaybeString(u.AvatarUrl, &data)
	util.PutMaybeString(u.CoverImageUrl, &data)
	util.PutMaybeString(u.WebsiteUrl, &data)
	util.PutMaybeString(u.Location, &data)
	util.PutUint64(u.FollowersCount, &data)
	util.PutUint64(u.FollowingCount, &data)
	util.PutUint64(u.PostCount, &data)
	util.PutInt64(u.CreatedAt, &data)
	util.PutBool(u.Verified, &data)
	util.PutByte(u.Bump, &data)
	return data
}

func ParseUserProfile(data []byte) *UserProfile {
	if len(data) == 0 || data[0] != UserProfileKind {
		return nil
	}
	position := 1
	profile := UserProfile{}
	profile.User, position = util.ParseToken(data, position)
	profile.Username, position = util.ParseMaybeString(data, position)
	profile.DisplayName, position = util.ParseMaybeString(data, position)
	profile.Bio, position = util.ParseMaybeString(data, position)
	profile.AvatarUrl, position = util.ParseMaybeString(data, position)
	profile.CoverImageUrl, position = util.ParseMaybeString(data, position)
	profile.WebsiteUrl, position = util.ParseMaybeString(data, position)
	profile.Location, position = util.ParseMaybeString(data, position)
	profile.FollowersCount, position = util.ParseUint64(data, position)
	profile.FollowingCount, position = util.ParseUint64(data, position)
	profile.PostCount, position = util.ParseUint64(data, position)
	profile.CreatedAt, position = util.ParseInt64(data, position)
	profile.Verified, position = util.ParseBool(data, position)
	profile.Bump, position = util.ParseByte(data, position)
	if position != len(data) {
		return nil
	}
	return &profile
}

// ValidateProfileFields checks the limits of every supplied field before any
// of them is written, so a late failure leaves the profile untouched.
func ValidateProfileFields(username, displayName, bio, avatarUrl, coverImageUrl, websiteUrl, location *string) error {
	if username != nil && len(*username) > MaxUsernameLen {
		return ErrUsernameTooLong
	}
	if displayName != nil && len(*displayName) > MaxDisplayNameLen {
		return ErrDisplayNameTooLong
	}
	if bio != nil && len(*bio) > MaxBioLen {
		return ErrBioTooLong
	}
	if avatarUrl != nil && len(*avatarUrl) > MaxAvatarUrlLen {
		return ErrAvatarUrlTooLong
	}
	if coverImageUrl != nil && len(*coverImageUrl) > MaxCoverImageUrlLen {
		return ErrCoverImageUrlTooLong
	}
	if websiteUrl != nil && len(*websiteUrl) > MaxWebsiteUrlLen {
		return ErrWebsiteUrlTooLong
	}
	if location != nil && len(*location) > MaxLocationLen {
		return ErrLocationTooLong
	}
	return nil
}

func (u *UserProfile) JSON() string {
	bulk := &util.JSONBuilder{}
	bulk.PutString("kind", "userProfile")
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
	bulk.PutUint64("followersCount", u.FollowersCount)
	bulk.PutUint64("followingCount", u.FollowingCount)
	bulk.PutUint64("postCount", u.PostCount)
	bulk.PutInt64("createdAt", u.CreatedAt)
	bulk.PutBool("verified", u.Verified)
	bulk.PutUint64("bump", uint64(u.Bump))
	return bulk.ToString()
}
