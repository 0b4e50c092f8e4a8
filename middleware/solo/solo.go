// Package solo runs a single node quill chain: it sequences actions into
// blocks on a fixed interval, validates them against the state and persists
// the block history so a node can be resumed by replay.
package solo

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/freehandle/quill/crypto"
	"github.com/freehandle/quill/protocol/state"
	"github.com/freehandle/quill/util"
)

const chainFileName = "chain.quill"

// SimpleBlock is an epoch with the actions incorporated during it. Blocks
// are appended to the chain file in epoch order, one length prefixed entry
// per block.
type SimpleBlock struct {
	Epoch   uint64
	Actions [][]byte
}

func (b *SimpleBlock) Serialize() []byte {
	data := make([]byte, 0)
	util.PutUint64(b.Epoch, &data)
	util.PutUint64(uint64(len(b.Actions)), &data)
	for _, action := range b.Actions {
		util.PutLargeByteArray(action, &data)
	}
	return data
}

func ParseSimpleBlock(data []byte) *SimpleBlock {
	position := 0
	block := SimpleBlock{}
	block.Epoch, position = util.ParseUint64(data, position)
	var count uint64
	count, position = util.ParseUint64(data, position)
	block.Actions = make([][]byte, 0, count)
	for n := uint64(0); n < count; n++ {
		var action []byte
		action, position = util.ParseLargeByteArray(data, position)
		if position > len(data) {
			return nil
		}
		block.Actions = append(block.Actions, action)
	}
	if position != len(data) {
		return nil
	}
	return &block
}

// WriteBlock appends a length prefixed block to the chain writer.
func WriteBlock(w io.Writer, block *SimpleBlock) error {
	data := make([]byte, 0)
	util.PutLargeByteArray(block.Serialize(), &data)
	if n, err := w.Write(data); err != nil {
		return err
	} else if n != len(data) {
		return fmt.Errorf("incomplete block write: %v of %v bytes", n, len(data))
	}
	return nil
}

// ReadChain reads every block from a chain reader until EOF.
func ReadChain(r io.Reader) ([]*SimpleBlock, error) {
	blocks := make([]*SimpleBlock, 0)
	size := make([]byte, 4)
	for {
		if _, err := io.ReadFull(r, size); err != nil {
			if err == io.EOF {
				return blocks, nil
			}
			return nil, fmt.Errorf("corrupted chain: %v", err)
		}
		length := int(size[0]) | int(size[1])<<8 | int(size[2])<<16 | int(size[3])<<24
		data := make([]byte, length)
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, fmt.Errorf("corrupted chain: %v", err)
		}
		block := ParseSimpleBlock(data)
		if block == nil {
			return nil, fmt.Errorf("corrupted chain: could not parse block %v", len(blocks))
		}
		blocks = append(blocks, block)
	}
}

// Replay incorporates a block history into a genesis state. Actions that no
// longer validate are skipped, so a replayed chain converges to the same
// state that produced it.
func Replay(genesis *state.State, blocks []*SimpleBlock, validator crypto.Token) {
	for _, block := range blocks {
		mutating := genesis.Validator(state.NewMutations(block.Epoch), block.Epoch)
		for _, action := range block.Actions {
			if !mutating.Validate(action) {
				slog.Warn("replay: action rejected", "epoch", block.Epoch)
			}
		}
		mutating.Incorporate(validator)
	}
}

// Solo is a non networked chain engine. Actions are proposed through Submit
// and incorporated into blocks on every tick of the interval clock.
type Solo struct {
	State       *state.State
	Interval    time.Duration
	credentials crypto.PrivateKey
	queue       *util.DataQueue[[]byte]
	writer      io.WriteCloser
}

// NewSolo opens or resumes a chain under path. A non empty chain file is
// replayed on top of the genesis state before the engine starts. The block
// interval anchors the state's epoch clock, so replayed timestamps match the
// ones minted live.
func NewSolo(ctx context.Context, path string, genesis *state.State, credentials crypto.PrivateKey, interval time.Duration) (*Solo, error) {
	genesis.BlockMs = interval.Milliseconds()
	chainPath := filepath.Join(path, chainFileName)
	if existing, err := os.Open(chainPath); err == nil {
		blocks, err := ReadChain(existing)
		existing.Close()
		if err != nil {
			return nil, err
		}
		Replay(genesis, blocks, credentials.PublicKey())
		slog.Info("solo: chain resumed", "blocks", len(blocks), "epoch", genesis.Epoch)
	}
	writer, err := os.OpenFile(chainPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, err
	}
	return &Solo{
		State:       genesis,
		Interval:    interval,
		credentials: credentials,
		queue:       util.NewDataQueue[[]byte](ctx, crypto.Hasher),
		writer:      writer,
	}, nil
}

// Submit proposes an action for the next block. Duplicate submissions of
// the same bytes are discarded by the queue.
func (s *Solo) Submit(action []byte) {
	s.queue.Push(action)
}

// Start runs the block clock until the context is cancelled. The returned
// channel receives the terminal error, nil on clean shutdown.
func (s *Solo) Start(ctx context.Context) chan error {
	finalize := make(chan error, 2)
	incoming := make(chan []byte)
	go func() {
		for {
			data := s.queue.Pop()
			if data == nil {
				return
			}
			select {
			case incoming <- data:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		ticker := time.NewTicker(s.Interval)
		defer ticker.Stop()
		epoch := s.State.Epoch + 1
		validator := s.State.Validator(state.NewMutations(epoch), epoch)
		block := &SimpleBlock{Epoch: epoch}
		for {
			select {
			case <-ticker.C:
				validator.Incorporate(s.credentials.PublicKey())
				if err := WriteBlock(s.writer, block); err != nil {
					s.shutdown()
					finalize <- err
					return
				}
				epoch += 1
				validator = s.State.Validator(state.NewMutations(epoch), epoch)
				block = &SimpleBlock{Epoch: epoch}
			case data := <-incoming:
				if len(data) == 0 || !validator.Validate(data) {
					continue
				}
				block.Actions = append(block.Actions, data)
			case <-ctx.Done():
				s.shutdown()
				finalize <- nil
				return
			}
		}
	}()
	return finalize
}

// Gateway accepts tcp connections on port and feeds length prefixed actions
// into the engine. Each message is a 4 byte little endian length followed by
// the serialized action.
func (s *Solo) Gateway(ctx context.Context, port int) error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		listener.Close()
	}()
	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer conn.Close()
				size := make([]byte, 4)
				for {
					if _, err := io.ReadFull(conn, size); err != nil {
						return
					}
					length := int(size[0]) | int(size[1])<<8 | int(size[2])<<16 | int(size[3])<<24
					data := make([]byte, length)
					if _, err := io.ReadFull(conn, data); err != nil {
						return
					}
					s.Submit(data)
				}
			}(conn)
		}
	}()
	return nil
}

func (s *Solo) shutdown() {
	s.queue.Close()
	s.writer.Close()
	s.State.Shutdown()
}
