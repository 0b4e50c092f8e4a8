package util

import (
	"context"
	"sync"

	"github.com/freehandle/quill/crypto"
)

// DataQueue is an unbounded fifo queue that drops items whose hash was
// already queued. The solo engine uses it to deduplicate incoming actions
// before validation.
type DataQueue[T any] struct {
	live  bool
	once  sync.Once
	next  chan struct{}
	read  chan T
	write chan T
}

// Close is the single owner of the write channel: context cancellation and
// explicit shutdown both route through it, so they can race safely.
func (b *DataQueue[T]) Close() {
	b.once.Do(func() {
		b.live = false
		close(b.write)
	})
}

func (b *DataQueue[T]) Pop() T {
	var data T
	if !b.live {
		return data
	}
	b.next <- struct{}{}
	data = <-b.read
	return data
}

func (b *DataQueue[T]) Push(data T) {
	if b.live {
		b.write <- data
	}
}

func NewDataQueue[T any](ctx context.Context, hash func(T) crypto.Hash) *DataQueue[T] {
	hashes := make(Set[crypto.Hash])
	dataQueue := &DataQueue[T]{
		live:  true,
		next:  make(chan struct{}),
		read:  make(chan T),
		write: make(chan T),
	}
	go func() {
		defer func() {
			dataQueue.live = false
			close(dataQueue.read)
			close(dataQueue.next)
		}()
		buffer := make([]T, 0)
		waiting := false
		done := ctx.Done()
		for {
			select {
			case <-done:
				done = nil
				dataQueue.Close()
			case data, ok := <-dataQueue.write:
				if !ok {
					return
				}
				if hashes.Has(hash(data)) {
					continue
				}
				hashes.Add(hash(data))
				if waiting {
					dataQueue.read <- data
					waiting = false
				} else {
					buffer = append(buffer, data)
				}
			case <-dataQueue.next:
				if len(buffer) == 0 {
					waiting = true
				} else {
					dataQueue.read <- buffer[0]
					buffer = buffer[1:]
				}
			}
		}
	}()
	return dataQueue
}
