package state

import (
	"testing"

	"github.com/freehandle/quill/crypto"
)

func TestWalletZeroFloor(t *testing.T) {
	wallet := NewWallet("test")
	token, _ := crypto.RandomAsymetricKey()
	if !wallet.Credit(token, 100) {
		t.Fatal("credit failed")
	}
	if wallet.Debit(token, 101) {
		t.Error("debit beyond balance accepted")
	}
	if _, balance := wallet.Balance(token); balance != 100 {
		t.Errorf("failed debit changed balance: %v", balance)
	}
	if !wallet.Debit(token, 100) {
		t.Error("exact debit rejected")
	}
	if exists, _ := wallet.Balance(token); exists {
		t.Error("zero balance entry must be removed")
	}
}

func TestWalletSnapshot(t *testing.T) {
	wallet := NewWallet("snapshot")
	balances := make(map[crypto.Token]uint64)
	for i := 0; i < 1000; i++ {
		token, _ := crypto.RandomAsymetricKey()
		balances[token] = uint64(i + 1)
		wallet.Credit(token, uint64(i+1))
	}
	restored := NewWalletFromBytes(wallet.Bytes())
	if restored == nil {
		t.Fatal("could not restore wallet")
	}
	for token, balance := range balances {
		if _, value := restored.Balance(token); value != balance {
			t.Errorf("%v != %v", balance, value)
		}
	}
	if !wallet.Checksum().Equal(restored.Checksum()) {
		t.Error("snapshot changed the checksum")
	}
}

func TestMemoryStoreSnapshot(t *testing.T) {
	store := NewMemoryStore()
	addresses := make([]crypto.Hash, 100)
	for n := range addresses {
		addresses[n] = crypto.Hasher([]byte{byte(n)})
		store.Put(addresses[n], []byte{byte(n), byte(n + 1)})
	}
	restored := NewMemoryStoreFromBytes(store.Bytes())
	if restored == nil {
		t.Fatal("could not restore store")
	}
	for n, address := range addresses {
		record, ok := restored.Get(address)
		if !ok || len(record) != 2 || record[0] != byte(n) {
			t.Errorf("record %v lost on snapshot", n)
		}
	}
	if !store.Checksum().Equal(restored.Checksum()) {
		t.Error("snapshot changed the checksum")
	}
	if !store.Clone().Checksum().Equal(store.Checksum()) {
		t.Error("clone changed the checksum")
	}
	if !store.Delete(addresses[0]) {
		t.Error("delete failed")
	}
	if store.Delete(addresses[0]) {
		t.Error("double delete accepted")
	}
	if store.Checksum().Equal(restored.Checksum()) {
		t.Error("checksum must change after delete")
	}
}

func TestMutationsOverlay(t *testing.T) {
	address := crypto.Hasher([]byte("address"))
	mutations := NewMutations(1)
	mutations.CloseRecord(address)
	if !mutations.Closed.Has(address) {
		t.Error("close not staged")
	}
	// a put supersedes a pending close
	mutations.PutRecord(address, []byte{1})
	if mutations.Closed.Has(address) {
		t.Error("put must clear a pending close")
	}
	mutations.CloseRecord(address)
	if _, ok := mutations.Records[address]; ok {
		t.Error("close must clear a pending put")
	}
}

func TestMutationsMerge(t *testing.T) {
	hash := crypto.Hasher([]byte("wallet"))
	first := NewMutations(1)
	first.DeltaWallets[hash] = 10
	second := NewMutations(2)
	second.DeltaWallets[hash] = -4
	second.PutRecord(crypto.Hasher([]byte("r")), []byte{1})
	merged := first.Merge(second)
	if merged.DeltaBalance(hash) != 6 {
		t.Errorf("merged delta %v != 6", merged.DeltaBalance(hash))
	}
	if len(merged.Records) != 1 {
		t.Error("merged records lost")
	}
}

func TestIncorporateClosesRecords(t *testing.T) {
	treasury, _ := crypto.RandomAsymetricKey()
	token, _ := crypto.RandomAsymetricKey()
	chain := NewGenesisStateWithToken(token, treasury, 0, NewMemoryStore())
	address := crypto.Hasher([]byte("record"))
	chain.Records.Put(address, []byte{1, 2, 3})

	mutations := NewMutations(1)
	mutations.CloseRecord(address)
	chain.IncorporateMutations(mutations)
	if _, ok := chain.Records.Get(address); ok {
		t.Error("closed record still stored")
	}
	if chain.Epoch != 1 {
		t.Errorf("epoch %v != 1", chain.Epoch)
	}
}

func TestTimeOfEpoch(t *testing.T) {
	treasury, _ := crypto.RandomAsymetricKey()
	token, _ := crypto.RandomAsymetricKey()
	chain := NewGenesisStateWithToken(token, treasury, 1000, NewMemoryStore())
	if chain.TimeOfEpoch(0) != 1000 {
		t.Error("epoch zero must be genesis time")
	}
	if chain.TimeOfEpoch(60) != 1060 {
		t.Error("epoch time must advance one second per default block")
	}
	chain.BlockMs = 500
	if chain.TimeOfEpoch(60) != 1030 {
		t.Error("epoch time must follow the configured block interval")
	}
	if chain.TimeOfEpoch(3) != 1001 {
		t.Error("fractional epoch seconds must not accumulate drift")
	}
}

func TestGenesisState(t *testing.T) {
	treasury, _ := crypto.RandomAsymetricKey()
	chain, secret := NewGenesisState(treasury)
	if chain == nil {
		t.Fatal("could not create genesis state")
	}
	if _, balance := chain.Wallets.Balance(secret.PublicKey()); balance != 1e9 {
		t.Errorf("genesis balance %v != 1e9", balance)
	}
	if !chain.Treasury.Equal(treasury) {
		t.Error("treasury token lost")
	}
}
