package state

import (
	"log/slog"

	"github.com/freehandle/quill/crypto"
	"github.com/freehandle/quill/protocol/actions"
	"github.com/freehandle/quill/protocol/papers"
)

// MutatingState validates actions against the state plus pending mutations
// and stages their effects. Every check of an operation runs before any of
// its effects is staged, so a rejected action leaves the overlay untouched.
// It keeps track of collected gateway fees.
type MutatingState struct {
	Epoch         uint64
	State         *State
	mutations     *Mutations
	FeesCollected uint64
}

func (m *MutatingState) GetEpoch() uint64 {
	return m.Epoch
}

func (m *MutatingState) Mutations() *Mutations {
	return m.mutations
}

// Incorporate deposits the fees collected into the validator token and
// incorporates mutations into the state.
func (m *MutatingState) Incorporate(validator crypto.Token) {
	validatorHash := crypto.HashToken(validator)
	m.mutations.DeltaWallets[validatorHash] = m.mutations.DeltaWallets[validatorHash] + int(m.FeesCollected)
	m.State.IncorporateMutations(m.mutations)
}

// Validate parses, authenticates and applies the action provided as a byte
// array. It returns true if the action was incorporated into the mutations,
// false otherwise.
func (m *MutatingState) Validate(data []byte) bool {
	action := actions.ParseAction(data)
	if action == nil {
		return false
	}
	if err := m.Apply(action); err != nil {
		slog.Info("action rejected", "kind", action.Kind(), "err", err)
		return false
	}
	return true
}

// Apply runs a parsed action through the full pipeline: authorization,
// address recomputation, payload validation and state transition, including
// deposit and fee movements.
func (m *MutatingState) Apply(action actions.Action) error {
	var err error
	switch a := action.(type) {
	case *actions.CreateProfile:
		err = m.applyCreateProfile(a)
	case *actions.UpdateProfile:
		err = m.applyUpdateProfile(a)
	case *actions.CreatePost:
		err = m.applyCreatePost(a)
	case *actions.LinkAsset:
		err = m.applyLinkAsset(a)
	case *actions.AddImageChunk:
		err = m.applyAddImageChunk(a)
	case *actions.Follow:
		err = m.applyFollow(a)
	case *actions.Unfollow:
		err = m.applyUnfollow(a)
	case *actions.Like:
		err = m.applyLike(a)
	case *actions.Unlike:
		err = m.applyUnlike(a)
	default:
		err = papers.ErrInvalidKind
	}
	if err != nil {
		return err
	}
	m.FeesCollected += action.FeePaid()
	return nil
}

// getRecord reads a record through the mutations overlay.
func (m *MutatingState) getRecord(address crypto.Hash) ([]byte, bool) {
	if m.mutations.Closed.Has(address) {
		return nil, false
	}
	if record, ok := m.mutations.Records[address]; ok {
		return record, true
	}
	return m.State.Records.Get(address)
}

// Balance returns the effective balance of the account with the given hash,
// including pending deltas.
func (m *MutatingState) Balance(hash crypto.Hash) uint64 {
	_, balance := m.State.Wallets.BalanceHash(hash)
	delta := m.mutations.DeltaBalance(hash)
	if delta < 0 {
		return balance - uint64(-delta)
	}
	return balance + uint64(delta)
}

// depositAt returns the effective storage deposit held against an address.
func (m *MutatingState) depositAt(address crypto.Hash) uint64 {
	_, deposit := m.State.Deposits.BalanceHash(address)
	delta := m.mutations.DeltaDeposits[address]
	if delta < 0 {
		return deposit - uint64(-delta)
	}
	return deposit + uint64(delta)
}

func (m *MutatingState) debitWallet(hash crypto.Hash, value uint64) {
	m.mutations.DeltaWallets[hash] = m.mutations.DeltaWallets[hash] - int(value)
}

func (m *MutatingState) creditWallet(hash crypto.Hash, value uint64) {
	m.mutations.DeltaWallets[hash] = m.mutations.DeltaWallets[hash] + int(value)
}

// holdDeposit moves value from the payer's wallet into the deposit backing a
// record address. The caller must have checked the payer's balance.
func (m *MutatingState) holdDeposit(payer crypto.Hash, address crypto.Hash, value uint64) {
	m.debitWallet(payer, value)
	m.mutations.DeltaDeposits[address] = m.mutations.DeltaDeposits[address] + int(value)
}

// refundDeposit returns the whole deposit held against a closed record to
// the party that paid for it.
func (m *MutatingState) refundDeposit(address crypto.Hash, payer crypto.Hash) {
	deposit := m.depositAt(address)
	m.mutations.DeltaDeposits[address] = m.mutations.DeltaDeposits[address] - int(deposit)
	m.creditWallet(payer, deposit)
}

// profileAt loads and parses the user profile stored at the given address.
func (m *MutatingState) profileAt(address crypto.Hash) (*papers.UserProfile, error) {
	record, ok := m.getRecord(address)
	if !ok {
		return nil, papers.ErrRecordNotFound
	}
	profile := papers.ParseUserProfile(record)
	if profile == nil {
		return nil, papers.ErrInvalidKind
	}
	return profile, nil
}

// postAt loads and parses the post stored at the given address, rejecting
// records whose recomputed address does not match the supplied one.
func (m *MutatingState) postAt(address crypto.Hash) (*papers.Post, error) {
	record, ok := m.getRecord(address)
	if !ok {
		return nil, papers.ErrRecordNotFound
	}
	post := papers.ParsePost(record)
	if post == nil {
		return nil, papers.ErrInvalidKind
	}
	if !post.Address().Equal(address) {
		return nil, papers.ErrInvalidKind
	}
	return post, nil
}

func (m *MutatingState) applyCreateProfile(create *actions.CreateProfile) error {
	address, bump := papers.ProfileAddress(create.User)
	if _, ok := m.getRecord(address); ok {
		return papers.ErrRecordExists
	}
	deposit := uint64(papers.MaxUserProfileSize) * DepositPerByte
	userHash := crypto.HashToken(create.User)
	if m.Balance(userHash) < deposit+create.Fee {
		return papers.ErrInsufficientBalance
	}
	profile := papers.UserProfile{
		User:      create.User,
		CreatedAt: m.State.TimeOfEpoch(m.Epoch),
		Bump:      bump,
	}
	m.debitWallet(userHash, create.Fee)
	m.holdDeposit(userHash, address, deposit)
	m.mutations.PutRecord(address, profile.Serialize())
	return nil
}

func (m *MutatingState) applyUpdateProfile(update *actions.UpdateProfile) error {
	address, _ := papers.ProfileAddress(update.User)
	profile, err := m.profileAt(address)
	if err != nil {
		return err
	}
	// all supplied fields are validated before any is written
	if err := papers.ValidateProfileFields(update.Username, update.DisplayName,
		update.Bio, update.AvatarUrl, update.CoverImageUrl, update.WebsiteUrl,
		update.Location); err != nil {
		return err
	}
	userHash := crypto.HashToken(update.User)
	if m.Balance(userHash) < update.Fee {
		return papers.ErrInsufficientBalance
	}
	if update.Username != nil {
		profile.Username = update.Username
	}
	if update.DisplayName != nil {
		profile.DisplayName = update.DisplayName
	}
	if update.Bio != nil {
		profile.Bio = update.Bio
	}
	if update.AvatarUrl != nil {
		profile.AvatarUrl = update.AvatarUrl
	}
	if update.CoverImageUrl != nil {
		profile.CoverImageUrl = update.CoverImageUrl
	}
	if update.WebsiteUrl != nil {
		profile.WebsiteUrl = update.WebsiteUrl
	}
	if update.Location != nil {
		profile.Location = update.Location
	}
	m.debitWallet(userHash, update.Fee)
	m.mutations.PutRecord(address, profile.Serialize())
	return nil
}

func (m *MutatingState) applyCreatePost(create *actions.CreatePost) error {
	if create.PostType != papers.TextPost && create.PostType != papers.ImagePost {
		return papers.ErrInvalidKind
	}
	post := papers.Post{
		Author:    create.Author,
		Content:   create.Content,
		PostType:  create.PostType,
		ReplyTo:   create.ReplyTo,
		TimeStamp: create.PostTime,
	}
	if err := post.Validate(); err != nil {
		return err
	}
	profileAddress, _ := papers.ProfileAddress(create.Author)
	profile, err := m.profileAt(profileAddress)
	if err != nil {
		return err
	}
	address, bump := papers.PostAddress(create.Author, create.PostTime)
	if _, ok := m.getRecord(address); ok {
		return papers.ErrRecordExists
	}
	post.Bump = bump
	deposit := uint64(papers.MaxPostSize) * DepositPerByte
	platformFee := deposit / 100
	if create.PostType == papers.ImagePost {
		platformFee = deposit / 10
	}
	authorHash := crypto.HashToken(create.Author)
	if m.Balance(authorHash) < deposit+platformFee+create.Fee {
		return papers.ErrInsufficientBalance
	}
	m.debitWallet(authorHash, platformFee+create.Fee)
	m.creditWallet(crypto.HashToken(m.State.Treasury), platformFee)
	m.holdDeposit(authorHash, address, deposit)
	profile.PostCount += 1
	m.mutations.PutRecord(profileAddress, profile.Serialize())
	m.mutations.PutRecord(address, post.Serialize())
	return nil
}

func (m *MutatingState) applyLinkAsset(link *actions.LinkAsset) error {
	post, err := m.postAt(link.Post)
	if err != nil {
		return err
	}
	// kind is checked before authorship: linking to a text post fails with
	// the same error no matter who signs
	if post.PostType != papers.ImagePost {
		return papers.ErrNotImagePost
	}
	if !post.Author.Equal(link.Author) {
		return papers.ErrUnauthorized
	}
	authorHash := crypto.HashToken(link.Author)
	if m.Balance(authorHash) < link.Fee {
		return papers.ErrInsufficientBalance
	}
	asset := link.Asset
	post.ImageAsset = &asset
	m.debitWallet(authorHash, link.Fee)
	m.mutations.PutRecord(link.Post, post.Serialize())
	return nil
}

func (m *MutatingState) applyAddImageChunk(add *actions.AddImageChunk) error {
	post, err := m.postAt(add.Post)
	if err != nil {
		return err
	}
	if !post.Author.Equal(add.Author) {
		return papers.ErrUnauthorized
	}
	if post.PostType != papers.ImagePost {
		return papers.ErrNotImagePost
	}
	if add.Total > papers.MaxImageChunks {
		return papers.ErrTooManyImages
	}
	// a declared total can be re-declared upwards, never below the chunks
	// the post will hold after this upload
	if int(add.Total) < len(post.Chunks)+1 || add.Index >= add.Total {
		return papers.ErrChunkTotalInconsistent
	}
	address, bump := papers.ChunkAddress(add.Post, add.Index)
	if _, ok := m.getRecord(address); ok {
		return papers.ErrRecordExists
	}
	chunk := papers.ImageChunk{
		Post:        add.Post,
		Index:       add.Index,
		TotalChunks: add.Total,
		Data:        add.Data,
		Bump:        bump,
	}
	if err := chunk.Validate(); err != nil {
		return err
	}
	deposit := uint64(papers.MaxImageChunkSize) * DepositPerByte
	authorHash := crypto.HashToken(add.Author)
	if m.Balance(authorHash) < deposit+add.Fee {
		return papers.ErrInsufficientBalance
	}
	m.debitWallet(authorHash, add.Fee)
	m.holdDeposit(authorHash, address, deposit)
	post.Chunks = append(post.Chunks, address)
	post.TotalChunks = add.Total
	m.mutations.PutRecord(add.Post, post.Serialize())
	m.mutations.PutRecord(address, chunk.Serialize())
	return nil
}

func (m *MutatingState) applyFollow(follow *actions.Follow) error {
	if follow.Follower.Equal(follow.Following) {
		return papers.ErrSelfFollow
	}
	followerAddress, _ := papers.ProfileAddress(follow.Follower)
	followerProfile, err := m.profileAt(followerAddress)
	if err != nil {
		return err
	}
	followingAddress, _ := papers.ProfileAddress(follow.Following)
	followingProfile, err := m.profileAt(followingAddress)
	if err != nil {
		return err
	}
	address, bump := papers.FollowAddress(follow.Follower, follow.Following)
	if _, ok := m.getRecord(address); ok {
		return papers.ErrRecordExists
	}
	deposit := uint64(papers.MaxFollowRelationSize) * DepositPerByte
	followerHash := crypto.HashToken(follow.Follower)
	if m.Balance(followerHash) < deposit+follow.Fee {
		return papers.ErrInsufficientBalance
	}
	relation := papers.FollowRelation{
		Follower:  follow.Follower,
		Following: follow.Following,
		TimeStamp: m.State.TimeOfEpoch(m.Epoch),
		Bump:      bump,
	}
	m.debitWallet(followerHash, follow.Fee)
	m.holdDeposit(followerHash, address, deposit)
	followerProfile.FollowingCount += 1
	followingProfile.FollowersCount += 1
	m.mutations.PutRecord(followerAddress, followerProfile.Serialize())
	m.mutations.PutRecord(followingAddress, followingProfile.Serialize())
	m.mutations.PutRecord(address, relation.Serialize())
	return nil
}

func (m *MutatingState) applyUnfollow(unfollow *actions.Unfollow) error {
	address, _ := papers.FollowAddress(unfollow.Follower, unfollow.Following)
	record, ok := m.getRecord(address)
	if !ok {
		return papers.ErrRecordNotFound
	}
	if papers.ParseFollowRelation(record) == nil {
		return papers.ErrInvalidKind
	}
	followerAddress, _ := papers.ProfileAddress(unfollow.Follower)
	followerProfile, err := m.profileAt(followerAddress)
	if err != nil {
		return err
	}
	followingAddress, _ := papers.ProfileAddress(unfollow.Following)
	followingProfile, err := m.profileAt(followingAddress)
	if err != nil {
		return err
	}
	if followerProfile.FollowingCount == 0 || followingProfile.FollowersCount == 0 {
		return papers.ErrCounterUnderflow
	}
	followerHash := crypto.HashToken(unfollow.Follower)
	if m.Balance(followerHash) < unfollow.Fee {
		return papers.ErrInsufficientBalance
	}
	m.debitWallet(followerHash, unfollow.Fee)
	m.refundDeposit(address, followerHash)
	followerProfile.FollowingCount -= 1
	followingProfile.FollowersCount -= 1
	m.mutations.PutRecord(followerAddress, followerProfile.Serialize())
	m.mutations.PutRecord(followingAddress, followingProfile.Serialize())
	m.mutations.CloseRecord(address)
	return nil
}

func (m *MutatingState) applyLike(like *actions.Like) error {
	post, err := m.postAt(like.Post)
	if err != nil {
		return err
	}
	address, bump := papers.LikeAddress(like.User, like.Post)
	if _, ok := m.getRecord(address); ok {
		return papers.ErrRecordExists
	}
	deposit := uint64(papers.MaxLikeRelationSize) * DepositPerByte
	userHash := crypto.HashToken(like.User)
	if m.Balance(userHash) < deposit+like.Fee {
		return papers.ErrInsufficientBalance
	}
	relation := papers.LikeRelation{
		User:      like.User,
		Post:      like.Post,
		TimeStamp: m.State.TimeOfEpoch(m.Epoch),
		Bump:      bump,
	}
	m.debitWallet(userHash, like.Fee)
	m.holdDeposit(userHash, address, deposit)
	post.Likes += 1
	m.mutations.PutRecord(like.Post, post.Serialize())
	m.mutations.PutRecord(address, relation.Serialize())
	return nil
}

func (m *MutatingState) applyUnlike(unlike *actions.Unlike) error {
	address, _ := papers.LikeAddress(unlike.User, unlike.Post)
	record, ok := m.getRecord(address)
	if !ok {
		return papers.ErrRecordNotFound
	}
	if papers.ParseLikeRelation(record) == nil {
		return papers.ErrInvalidKind
	}
	post, err := m.postAt(unlike.Post)
	if err != nil {
		return err
	}
	if post.Likes == 0 {
		return papers.ErrCounterUnderflow
	}
	userHash := crypto.HashToken(unlike.User)
	if m.Balance(userHash) < unlike.Fee {
		return papers.ErrInsufficientBalance
	}
	m.debitWallet(userHash, unlike.Fee)
	m.refundDeposit(address, userHash)
	post.Likes -= 1
	m.mutations.PutRecord(unlike.Post, post.Serialize())
	m.mutations.CloseRecord(address)
	return nil
}
