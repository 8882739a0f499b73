package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/database"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/kv"
)

const createKVTable = `
	CREATE TABLE IF NOT EXISTS kv_store (
		key        TEXT PRIMARY KEY,
		value      BYTEA NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

type postgresStore struct {
	db database.Conn
}

// NewPostgresStore keeps every key as one row of kv_store
func NewPostgresStore(db database.Conn) kv.Store {
	return &postgresStore{db: db}
}

// Migrate creates the kv_store table if needed
func Migrate(ctx context.Context, db database.Querier) error {
	if _, err := db.Exec(ctx, createKVTable); err != nil {
		return fmt.Errorf("failed to create kv_store table: %w", err)
	}
	return nil
}

func (s *postgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	q := database.GetQuerier(ctx, s.db)

	var value []byte
	err := q.QueryRow(ctx, `SELECT value FROM kv_store WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, kv.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return value, nil
}

func (s *postgresStore) Set(ctx context.Context, key string, value []byte) error {
	return s.set(ctx, database.GetQuerier(ctx, s.db), key, value)
}

func (s *postgresStore) set(ctx context.Context, q database.Querier, key string, value []byte) error {
	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	if _, err := q.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

func (s *postgresStore) Delete(ctx context.Context, key string) error {
	q := database.GetQuerier(ctx, s.db)
	if _, err := q.Exec(ctx, `DELETE FROM kv_store WHERE key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

func (s *postgresStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	q := database.GetQuerier(ctx, s.db)

	rows, err := q.Query(ctx, `SELECT key FROM kv_store WHERE starts_with(key, $1) ORDER BY key`, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	return keys, nil
}

// Update serializes writers on the key with a transaction-scoped advisory
// lock, which also covers the case where the row does not exist yet.
func (s *postgresStore) Update(ctx context.Context, key string, fn kv.UpdateFunc) error {
	return database.WithTransaction(ctx, s.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
			return fmt.Errorf("failed to lock key %s: %w", key, err)
		}

		var current []byte
		exists := true
		err := tx.QueryRow(ctx, `SELECT value FROM kv_store WHERE key = $1 FOR UPDATE`, key).Scan(&current)
		if errors.Is(err, pgx.ErrNoRows) {
			exists = false
		} else if err != nil {
			return fmt.Errorf("failed to read key %s: %w", key, err)
		}

		next, err := fn(current, exists)
		if err != nil {
			return err
		}
		if next == nil {
			if _, err := tx.Exec(ctx, `DELETE FROM kv_store WHERE key = $1`, key); err != nil {
				return fmt.Errorf("failed to delete key %s: %w", key, err)
			}
			return nil
		}
		return s.set(ctx, tx, key, next)
	})
}

// Close is a no-op, the pool is owned by the caller
func (s *postgresStore) Close() error { return nil }
