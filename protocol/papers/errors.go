package papers

import "errors"

var (
	ErrContentTooLong       = errors.New("content cannot be longer than 280 bytes")
	ErrContentEmpty         = errors.New("content cannot be empty")
	ErrUsernameTooLong      = errors.New("username cannot be longer than 50 bytes")
	ErrDisplayNameTooLong   = errors.New("display name cannot be longer than 50 bytes")
	ErrBioTooLong           = errors.New("bio cannot be longer than 160 bytes")
	ErrAvatarUrlTooLong     = errors.New("avatar url cannot be longer than 200 bytes")
	ErrCoverImageUrlTooLong = errors.New("cover image url cannot be longer than 200 bytes")
	ErrWebsiteUrlTooLong    = errors.New("website url cannot be longer than 200 bytes")
	ErrLocationTooLong      = errors.New("location cannot be longer than 100 bytes")
	ErrChunkTooLarge        = errors.New("chunk data cannot be larger than 9216 bytes")
	ErrNotImagePost         = errors.New("not an image post")

	// Reserved for a batch image extension, not raised by the core operations
	// except for the declared total chunk ceiling.
	ErrImageArraysMismatch = errors.New("image arrays must have the same length")
	ErrTooManyImages       = errors.New("too many image chunks")

	ErrRecordExists           = errors.New("a record already exists at the derived address")
	ErrRecordNotFound         = errors.New("no record at the derived address")
	ErrInvalidKind            = errors.New("record discriminator does not match the expected kind")
	ErrUnauthorized           = errors.New("signer is not the required authority")
	ErrCounterUnderflow       = errors.New("counter cannot be decremented below zero")
	ErrInsufficientBalance    = errors.New("insufficient balance")
	ErrSelfFollow             = errors.New("a user cannot follow itself")
	ErrChunkTotalInconsistent = errors.New("declared chunk total is inconsistent with attached chunks")
	ErrInvalidSeed            = errors.New("invalid address derivation input")
)
