package store

import (
	"context"
	"encoding/hex"
	"strings"

	"github.com/freehandle/quill/crypto"
	"github.com/redis/go-redis/v9"
)

const recordKeyPrefix = "quill:record:"

// RedisStore persists records on a redis instance under keys of the form
// quill:record:<hex address>. It implements state.RecordStore.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(ctx context.Context, addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return &RedisStore{client: client}, nil
}

func recordKey(address crypto.Hash) string {
	return recordKeyPrefix + hex.EncodeToString(address[:])
}

func (r *RedisStore) Get(address crypto.Hash) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	data, err := r.client.Get(ctx, recordKey(address)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (r *RedisStore) Put(address crypto.Hash, record []byte) bool {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	return r.client.Set(ctx, recordKey(address), record, 0).Err() == nil
}

func (r *RedisStore) Delete(address crypto.Hash) bool {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	removed, err := r.client.Del(ctx, recordKey(address)).Result()
	return err == nil && removed > 0
}

func (r *RedisStore) Checksum() crypto.Hash {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	var checksum crypto.Hash
	iter := r.client.Scan(ctx, 0, recordKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		address, err := hex.DecodeString(strings.TrimPrefix(key, recordKeyPrefix))
		if err != nil || len(address) != crypto.Size {
			continue
		}
		data, err := r.client.Get(ctx, key).Bytes()
		if err != nil {
			return crypto.ZeroHash
		}
		entry := crypto.Hasher(append(address, data...))
		for n := 0; n < crypto.Size; n++ {
			checksum[n] = checksum[n] ^ entry[n]
		}
	}
	if iter.Err() != nil {
		return crypto.ZeroHash
	}
	return crypto.Hasher(checksum[:])
}

func (r *RedisStore) Close() {
	r.client.Close()
}
