package state

import (
	"github.com/freehandle/quill/crypto"
	"github.com/freehandle/quill/util"
)

// Mutations is the in-memory overlay of state changes accumulated while
// validating a block of actions: record bytes created or updated, records
// closed, and balance deltas on the wallet and deposit ledgers.
type Mutations struct {
	Epoch         uint64
	Records       map[crypto.Hash][]byte
	Closed        util.Set[crypto.Hash]
	DeltaWallets  map[crypto.Hash]int
	DeltaDeposits map[crypto.Hash]int
}

func NewMutations(epoch uint64) *Mutations {
	return &Mutations{
		Epoch:         epoch,
		Records:       make(map[crypto.Hash][]byte),
		Closed:        util.NewSet[crypto.Hash](),
		DeltaWallets:  make(map[crypto.Hash]int),
		DeltaDeposits: make(map[crypto.Hash]int),
	}
}

func (m *Mutations) GetEpoch() uint64 {
	return m.Epoch
}

// DeltaBalance returns the pending wallet delta for the given hash.
func (m *Mutations) DeltaBalance(hash crypto.Hash) int {
	return m.DeltaWallets[hash]
}

// PutRecord stages the creation or update of a record.
func (m *Mutations) PutRecord(address crypto.Hash, record []byte) {
	m.Closed.Remove(address)
	m.Records[address] = record
}

// CloseRecord stages the destruction of a record.
func (m *Mutations) CloseRecord(address crypto.Hash) {
	delete(m.Records, address)
	m.Closed.Add(address)
}

// Append merges mutations into a single object. Later mutations override
// earlier record writes; balance deltas are summed.
func (m *Mutations) Append(array []*Mutations) *Mutations {
	grouped := NewMutations(m.Epoch)
	all := []*Mutations{m}
	for _, mutation := range array {
		if mutation.Epoch >= grouped.Epoch {
			grouped.Epoch = mutation.Epoch
		}
		all = append(all, mutation)
	}
	for _, mutations := range all {
		for address, record := range mutations.Records {
			grouped.PutRecord(address, record)
		}
		for address := range mutations.Closed {
			grouped.CloseRecord(address)
		}
		for hash, delta := range mutations.DeltaWallets {
			grouped.DeltaWallets[hash] = grouped.DeltaWallets[hash] + delta
		}
		for hash, delta := range mutations.DeltaDeposits {
			grouped.DeltaDeposits[hash] = grouped.DeltaDeposits[hash] + delta
		}
	}
	return grouped
}

// Merge combines mutations into a single consolidated mutation object.
func (m *Mutations) Merge(array ...*Mutations) *Mutations {
	return m.Append(array)
}
