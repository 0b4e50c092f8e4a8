package state

import (
	"sync"

	"github.com/freehandle/quill/crypto"
	"github.com/freehandle/quill/util"
)

// Wallet is a balance ledger keyed by hash. The state keeps two of them:
// spendable balances keyed by the hash of the owner token, and storage
// deposits keyed by the address of the record they back.
type Wallet struct {
	mu       sync.Mutex
	name     string
	balances map[crypto.Hash]uint64
}

func NewWallet(name string) *Wallet {
	return &Wallet{
		name:     name,
		balances: make(map[crypto.Hash]uint64),
	}
}

func (w *Wallet) CreditHash(hash crypto.Hash, value uint64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.balances[hash] = w.balances[hash] + value
	return true
}

func (w *Wallet) Credit(token crypto.Token, value uint64) bool {
	return w.CreditHash(crypto.HashToken(token), value)
}

// DebitHash removes value from the balance of hash. An account drained to
// zero is removed. Returns false on insufficient balance, leaving the
// account untouched.
func (w *Wallet) DebitHash(hash crypto.Hash, value uint64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	balance, ok := w.balances[hash]
	if !ok || balance < value {
		return false
	}
	if balance == value {
		delete(w.balances, hash)
	} else {
		w.balances[hash] = balance - value
	}
	return true
}

func (w *Wallet) Debit(token crypto.Token, value uint64) bool {
	return w.DebitHash(crypto.HashToken(token), value)
}

func (w *Wallet) BalanceHash(hash crypto.Hash) (bool, uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	balance, ok := w.balances[hash]
	return ok, balance
}

func (w *Wallet) Balance(token crypto.Token) (bool, uint64) {
	return w.BalanceHash(crypto.HashToken(token))
}

func (w *Wallet) Checksum() crypto.Hash {
	w.mu.Lock()
	defer w.mu.Unlock()
	var checksum crypto.Hash
	for hash, balance := range w.balances {
		entry := crypto.Hasher(append(hash[:], util.Uint64ToBytes(balance)...))
		for n := 0; n < crypto.Size; n++ {
			checksum[n] = checksum[n] ^ entry[n]
		}
	}
	return crypto.Hasher(checksum[:])
}

func (w *Wallet) Close() {
}

func (w *Wallet) Bytes() []byte {
	w.mu.Lock()
	defer w.mu.Unlock()
	data := make([]byte, 0)
	util.PutString(w.name, &data)
	util.PutUint64(uint64(len(w.balances)), &data)
	for hash, balance := range w.balances {
		util.PutHash(hash, &data)
		util.PutUint64(balance, &data)
	}
	return data
}

func NewWalletFromBytes(data []byte) *Wallet {
	position := 0
	var name string
	name, position = util.ParseString(data, position)
	wallet := NewWallet(name)
	var count uint64
	count, position = util.ParseUint64(data, position)
	for n := uint64(0); n < count; n++ {
		var hash crypto.Hash
		var balance uint64
		hash, position = util.ParseHash(data, position)
		balance, position = util.ParseUint64(data, position)
		if position > len(data) {
			return nil
		}
		wallet.balances[hash] = balance
	}
	return wallet
}

func (w *Wallet) Clone() *Wallet {
	w.mu.Lock()
	defer w.mu.Unlock()
	clone := NewWallet(w.name)
	for hash, balance := range w.balances {
		clone.balances[hash] = balance
	}
	return clone
}
