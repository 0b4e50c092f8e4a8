package util

import (
	"context"
	"sync"
	"testing"

	"github.com/freehandle/quill/crypto"
)

func TestDataQueueDedup(t *testing.T) {
	queue := NewDataQueue[[]byte](context.Background(), crypto.Hasher)
	queue.Push([]byte{1})
	queue.Push([]byte{1})
	queue.Push([]byte{2})
	if data := queue.Pop(); len(data) != 1 || data[0] != 1 {
		t.Errorf("first pop: %v", data)
	}
	if data := queue.Pop(); len(data) != 1 || data[0] != 2 {
		t.Errorf("duplicate not dropped: %v", data)
	}
	queue.Close()
	if data := queue.Pop(); data != nil {
		t.Error("pop after close must return the zero value")
	}
}

func TestDataQueueConcurrentShutdown(t *testing.T) {
	// context cancellation and an explicit Close racing on the same queue
	// must both resolve to a single close of the write channel
	for i := 0; i < 5000; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		queue := NewDataQueue[[]byte](ctx, crypto.Hasher)
		var group sync.WaitGroup
		group.Add(2)
		go func() {
			defer group.Done()
			cancel()
		}()
		go func() {
			defer group.Done()
			queue.Close()
		}()
		group.Wait()
	}
}
