package store

import (
	"context"
	"time"

	"github.com/freehandle/quill/crypto"
	"github.com/jackc/pgx/v5/pgxpool"
)

const queryTimeout = 5 * time.Second

const createRecordsTable = `CREATE TABLE IF NOT EXISTS quill_records (
	address BYTEA PRIMARY KEY,
	data    BYTEA NOT NULL
)`

// PostgresStore persists records on a postgres table keyed by derived
// address. It implements state.RecordStore.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if _, err := pool.Exec(ctx, createRecordsTable); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresStore{pool: pool}, nil
}

func (p *PostgresStore) Get(address crypto.Hash) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	var data []byte
	err := p.pool.QueryRow(ctx,
		"SELECT data FROM quill_records WHERE address = $1", address[:]).Scan(&data)
	if err != nil {
		return nil, false
	}
	return data, true
}

func (p *PostgresStore) Put(address crypto.Hash, record []byte) bool {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	_, err := p.pool.Exec(ctx,
		`INSERT INTO quill_records (address, data) VALUES ($1, $2)
		 ON CONFLICT (address) DO UPDATE SET data = EXCLUDED.data`,
		address[:], record)
	return err == nil
}

func (p *PostgresStore) Delete(address crypto.Hash) bool {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	tag, err := p.pool.Exec(ctx,
		"DELETE FROM quill_records WHERE address = $1", address[:])
	if err != nil {
		return false
	}
	return tag.RowsAffected() > 0
}

func (p *PostgresStore) Checksum() crypto.Hash {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	rows, err := p.pool.Query(ctx, "SELECT address, data FROM quill_records")
	if err != nil {
		return crypto.ZeroHash
	}
	var checksum crypto.Hash
	defer rows.Close()
	for rows.Next() {
		var address, data []byte
		if err := rows.Scan(&address, &data); err != nil {
			return crypto.ZeroHash
		}
		entry := crypto.Hasher(append(address, data...))
		for n := 0; n < crypto.Size; n++ {
			checksum[n] = checksum[n] ^ entry[n]
		}
	}
	if rows.Err() != nil {
		return crypto.ZeroHash
	}
	return crypto.Hasher(checksum[:])
}

func (p *PostgresStore) Close() {
	p.pool.Close()
}
