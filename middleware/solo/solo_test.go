package solo

import (
	"bytes"
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/freehandle/quill/crypto"
	"github.com/freehandle/quill/protocol/actions"
	"github.com/freehandle/quill/protocol/papers"
	"github.com/freehandle/quill/protocol/state"
)

func TestBlockRoundTrip(t *testing.T) {
	block := SimpleBlock{
		Epoch:   42,
		Actions: [][]byte{{1, 2, 3}, {4, 5}},
	}
	parsed := ParseSimpleBlock(block.Serialize())
	if parsed == nil {
		t.Fatal("could not parse serialized block")
	}
	if parsed.Epoch != 42 || len(parsed.Actions) != 2 || parsed.Actions[1][0] != 4 {
		t.Error("block fields lost on round trip")
	}
	if ParseSimpleBlock(append(block.Serialize(), 0)) != nil {
		t.Error("trailing bytes accepted")
	}
}

func TestChainReadWrite(t *testing.T) {
	var chain bytes.Buffer
	blocks := []*SimpleBlock{
		{Epoch: 1, Actions: [][]byte{{1}}},
		{Epoch: 2},
		{Epoch: 3, Actions: [][]byte{{2}, {3}}},
	}
	for _, block := range blocks {
		if err := WriteBlock(&chain, block); err != nil {
			t.Fatalf("could not write block: %v", err)
		}
	}
	read, err := ReadChain(&chain)
	if err != nil {
		t.Fatalf("could not read chain: %v", err)
	}
	if len(read) != 3 {
		t.Fatalf("read %v blocks", len(read))
	}
	for n, block := range read {
		if block.Epoch != blocks[n].Epoch || len(block.Actions) != len(blocks[n].Actions) {
			t.Errorf("block %v corrupted", n)
		}
	}
	truncated := blocks[0].Serialize()
	corrupt := bytes.NewBuffer(truncated[:len(truncated)-1])
	if _, err := ReadChain(corrupt); err == nil {
		t.Error("corrupted chain accepted")
	}
}

func TestReplayReproducesState(t *testing.T) {
	treasury, _ := crypto.RandomAsymetricKey()
	validator, _ := crypto.RandomAsymetricKey()
	aliceToken, aliceSecret := crypto.RandomAsymetricKey()

	build := func() *state.State {
		chain := state.NewGenesisStateWithToken(validator, treasury, 1000, state.NewMemoryStore())
		chain.Wallets.Credit(aliceToken, 1e12)
		return chain
	}

	profile := actions.CreateProfile{User: aliceToken}
	profile.Sign(aliceSecret)
	post := actions.CreatePost{Author: aliceToken, Content: "replayed", PostType: papers.TextPost, PostTime: 9}
	post.Sign(aliceSecret)
	blocks := []*SimpleBlock{
		{Epoch: 1, Actions: [][]byte{profile.Serialize()}},
		{Epoch: 2, Actions: [][]byte{post.Serialize()}},
	}

	first := build()
	Replay(first, blocks, validator)
	second := build()
	Replay(second, blocks, validator)

	if first.Epoch != 2 {
		t.Errorf("epoch %v != 2", first.Epoch)
	}
	if !first.ChecksumHash().Equal(second.ChecksumHash()) {
		t.Error("replay is not deterministic")
	}
	address, _ := papers.PostAddress(aliceToken, 9)
	if _, ok := first.Records.Get(address); !ok {
		t.Error("replayed post missing")
	}
}

func TestSoloShutdownWithPendingActions(t *testing.T) {
	treasury, _ := crypto.RandomAsymetricKey()
	_, credentials := crypto.RandomAsymetricKey()
	aliceToken, aliceSecret := crypto.RandomAsymetricKey()

	chain := state.NewGenesisStateWithToken(credentials.PublicKey(), treasury, 1000, state.NewMemoryStore())
	chain.Wallets.Credit(aliceToken, 1e12)

	baseline := runtime.NumGoroutine()
	ctx, cancel := context.WithCancel(context.Background())
	engine, err := NewSolo(ctx, t.TempDir(), chain, credentials, time.Hour)
	if err != nil {
		t.Fatalf("could not open engine: %v", err)
	}
	finalize := engine.Start(ctx)

	// the long interval keeps the block loop idle, so cancelling right after
	// the submissions leaves actions still in flight between the queue and
	// the engine
	for n := uint64(0); n < 16; n++ {
		post := actions.CreatePost{Author: aliceToken, Content: "pending", PostType: papers.TextPost, PostTime: int64(n)}
		post.Sign(aliceSecret)
		engine.Submit(post.Serialize())
	}
	cancel()

	select {
	case err := <-finalize:
		if err != nil {
			t.Errorf("shutdown returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("engine did not shut down")
	}
	deadline := time.Now().Add(2 * time.Second)
	for runtime.NumGoroutine() > baseline {
		if time.Now().After(deadline) {
			t.Fatalf("%v goroutines still running after shutdown", runtime.NumGoroutine()-baseline)
		}
		time.Sleep(10 * time.Millisecond)
	}
}
