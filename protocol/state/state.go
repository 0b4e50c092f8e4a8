/*
Package state implements the quill social ledger: addressable records backed
by storage deposits, twin balance ledgers and the validator that applies
signed actions as atomic state transitions.

Every operation is validated fully against the current state plus pending
mutations before any of its effects are staged, so a failing action leaves no
partial write. Mutations are incorporated into the state once per epoch.
*/
package state

import (
	"log/slog"

	"github.com/freehandle/quill/crypto"
)

// DepositPerByte is the funding a creator commits per reserved byte of a new
// record. The deposit is held against the record's address and returned when
// the record is closed.
const DepositPerByte = 100

// DefaultBlockMs is the default number of milliseconds between epochs.
const DefaultBlockMs = 1000

type State struct {
	Epoch       uint64
	GenesisTime int64
	// BlockMs is the epoch spacing in milliseconds. It fixes the
	// authoritative clock together with GenesisTime and must match the
	// interval the node produces blocks at.
	BlockMs  int64
	Records  RecordStore
	Wallets  *Wallet
	Deposits *Wallet
	Treasury crypto.Token
}

func (s *State) NewMutations() *Mutations {
	return NewMutations(s.Epoch + 1)
}

// TimeOfEpoch is the authoritative clock: the timestamp of an epoch is fixed
// by genesis time and block interval, so every validator derives the same
// creation times.
func (s *State) TimeOfEpoch(epoch uint64) int64 {
	return s.GenesisTime + int64(epoch)*s.BlockMs/1000
}

func (s *State) Validator(mutations *Mutations, epoch uint64) *MutatingState {
	return &MutatingState{
		Epoch:     epoch,
		State:     s,
		mutations: mutations,
	}
}

func (s *State) Shutdown() {
	s.Records.Close()
	s.Wallets.Close()
	s.Deposits.Close()
}

func NewGenesisState(treasury crypto.Token) (*State, crypto.PrivateKey) {
	pubKey, prvKey := crypto.RandomAsymetricKey()
	state := NewGenesisStateWithToken(pubKey, treasury, 0, NewMemoryStore())
	return state, prvKey
}

// NewGenesisStateWithToken builds a fresh state over the given record store
// and credits the initial token with the genesis supply.
func NewGenesisStateWithToken(token, treasury crypto.Token, genesisTime int64, store RecordStore) *State {
	state := State{
		Epoch:       0,
		GenesisTime: genesisTime,
		BlockMs:     DefaultBlockMs,
		Records:     store,
		Wallets:     NewWallet("wallet"),
		Deposits:    NewWallet("deposit"),
		Treasury:    treasury,
	}
	if !state.Wallets.Credit(token, 1e9) {
		slog.Error("NewGenesisStateWithToken: could not credit wallet")
		return nil
	}
	return &state
}

func (s *State) IncorporateMutations(m *Mutations) {
	for address, record := range m.Records {
		s.Records.Put(address, record)
	}
	for address := range m.Closed {
		s.Records.Delete(address)
	}
	for hash, delta := range m.DeltaWallets {
		if delta > 0 {
			s.Wallets.CreditHash(hash, uint64(delta))
		} else if delta < 0 {
			s.Wallets.DebitHash(hash, uint64(-delta))
		}
	}
	for hash, delta := range m.DeltaDeposits {
		if delta > 0 {
			s.Deposits.CreditHash(hash, uint64(delta))
		} else if delta < 0 {
			s.Deposits.DebitHash(hash, uint64(-delta))
		}
	}
	if m.Epoch > s.Epoch {
		s.Epoch = m.Epoch
	}
}

// ChecksumHash is the standardized checksum over the whole state.
func (s *State) ChecksumHash() crypto.Hash {
	recordsHash := s.Records.Checksum()
	walletHash := s.Wallets.Checksum()
	depositHash := s.Deposits.Checksum()
	data := append(recordsHash[:], walletHash[:]...)
	data = append(data, depositHash[:]...)
	return crypto.Hasher(data)
}
