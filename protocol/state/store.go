package state

import (
	"sync"

	"github.com/freehandle/quill/crypto"
	"github.com/freehandle/quill/util"
)

// RecordStore is the persistence interface for quill records: raw record
// bytes keyed by derived address. Implementations must be safe for
// concurrent use. Besides the in-memory store below, the middleware/store
// package provides Postgres and Redis backends.
type RecordStore interface {
	Get(address crypto.Hash) ([]byte, bool)
	Put(address crypto.Hash, record []byte) bool
	Delete(address crypto.Hash) bool
	// Checksum is an order-independent hash over every stored record.
	Checksum() crypto.Hash
	Close()
}

// MemoryStore keeps records in a map. It is the default backend for solo
// nodes and tests, and the only backend that supports byte snapshots.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[crypto.Hash][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[crypto.Hash][]byte),
	}
}

func (m *MemoryStore) Get(address crypto.Hash) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.records[address]
	return record, ok
}

func (m *MemoryStore) Put(address crypto.Hash, record []byte) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[address] = record
	return true
}

func (m *MemoryStore) Delete(address crypto.Hash) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[address]; !ok {
		return false
	}
	delete(m.records, address)
	return true
}

func (m *MemoryStore) Checksum() crypto.Hash {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var checksum crypto.Hash
	for address, record := range m.records {
		entry := crypto.Hasher(append(address[:], record...))
		for n := 0; n < crypto.Size; n++ {
			checksum[n] = checksum[n] ^ entry[n]
		}
	}
	return crypto.Hasher(checksum[:])
}

func (m *MemoryStore) Close() {
}

// Bytes serializes the full content of the store for cloning or snapshots.
func (m *MemoryStore) Bytes() []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data := make([]byte, 0)
	util.PutUint64(uint64(len(m.records)), &data)
	for address, record := range m.records {
		util.PutHash(address, &data)
		util.PutLargeByteArray(record, &data)
	}
	return data
}

func NewMemoryStoreFromBytes(data []byte) *MemoryStore {
	store := NewMemoryStore()
	position := 0
	var count uint64
	count, position = util.ParseUint64(data, position)
	for n := uint64(0); n < count; n++ {
		var address crypto.Hash
		var record []byte
		address, position = util.ParseHash(data, position)
		record, position = util.ParseLargeByteArray(data, position)
		if position > len(data) {
			return nil
		}
		store.records[address] = record
	}
	return store
}

func (m *MemoryStore) Clone() *MemoryStore {
	m.mu.RLock()
	defer m.mu.RUnlock()
	clone := NewMemoryStore()
	for address, record := range m.records {
		bytes := make([]byte, len(record))
		copy(bytes, record)
		clone.records[address] = bytes
	}
	return clone
}
