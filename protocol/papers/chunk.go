package papers

import (
	"github.com/freehandle/quill/crypto"
	"github.com/freehandle/quill/util"
)

const MaxImageChunkSize = 1 + crypto.Size + 4 + 4 + 4 + MaxChunkDataLen + 1

// ImageChunk holds a slice of an image payload as an append-only child of a
// post, keyed by the parent post address and the chunk index.
type ImageChunk struct {
	Post        crypto.Hash
	Index       uint32
	TotalChunks uint32
	Data        []byte
	Bump        byte
}

func (c *ImageChunk) Validate() error {
	if len(c.Data) > MaxChunkDataLen {
		return ErrChunkTooLarge
	}
	return nil
}

func (c *ImageChunk) Address() crypto.Hash {
	address, _ := ChunkAddress(c.Post, c.Index)
	return address
}

func (c *ImageChunk) Serialize() []byte {
	data := []byte{ChunkKind}
	util.PutHash(c.Post, &data)
	util.PutUint32(c.Index, &data)
	util.PutUint32(c.TotalChunks, &data)
	util.PutLargeByteArray(c.Data, &data)
	util.PutByte(c.Bump, &data)
	return data
}

func ParseImageChunk(data []byte) *ImageChunk {
	if len(data) == 0 || data[0] != ChunkKind {
		return nil
	}
	position := 1
	chunk := ImageChunk{}
	chunk.Post, position = util.ParseHash(data, position)
	chunk.Index, position = util.ParseUint32(data, position)
	chunk.TotalChunks, position = util.ParseUint32(data, position)
	chunk.Data, position = util.ParseLargeByteArray(data, position)
	chunk.Bump, position = util.ParseByte(data, position)
	if position != len(data) {
		return nil
	}
	return &chunk
}

func (c *ImageChunk) JSON() string {
	bulk := &util.JSONBuilder{}
	bulk.PutString("kind", "imageChunk")
	bulk.PutHex("post", c.Post[:])
	bulk.PutUint64("index", uint64(c.Index))
	bulk.PutUint64("totalChunks", uint64(c.TotalChunks))
	bulk.PutBase64("data", c.Data)
	bulk.PutUint64("bump", uint64(c.Bump))
	return bulk.ToString()
}
