package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"TeeShop/pkg/kit"
)

const (
	slotPingTimeout  = 1 * time.Second
	slotQueryTimeout = 3 * time.Second
)

// SQLSlot stores blobs in a cart_slots table. The dialects differ only in
// placeholders and the blob column type.
type SQLSlot struct {
	db *sql.DB

	schema string
	getQ   string
	setQ   string
}

func NewPostgresSlot(db *sql.DB) *SQLSlot {
	return &SQLSlot{
		db: db,
		schema: `
			CREATE TABLE IF NOT EXISTS cart_slots (
				slot_key   TEXT PRIMARY KEY,
				value      BYTEA NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`,
		getQ: `SELECT value FROM cart_slots WHERE slot_key = $1`,
		setQ: `
			INSERT INTO cart_slots (slot_key, value, updated_at)
			VALUES ($1, $2, now())
			ON CONFLICT (slot_key) DO UPDATE
			SET value = excluded.value, updated_at = excluded.updated_at`,
	}
}

// OpenSQLiteSlot opens (creating if needed) an embedded database at path.
func OpenSQLiteSlot(ctx context.Context, path string) (*SQLSlot, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	s := &SQLSlot{
		db: db,
		schema: `
			CREATE TABLE IF NOT EXISTS cart_slots (
				slot_key   TEXT PRIMARY KEY,
				value      BLOB NOT NULL,
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
		getQ: `SELECT value FROM cart_slots WHERE slot_key = ?`,
		setQ: `
			INSERT INTO cart_slots (slot_key, value, updated_at)
			VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT (slot_key) DO UPDATE
			SET value = excluded.value, updated_at = excluded.updated_at`,
	}
	if err := s.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLSlot) EnsureSchema(ctx context.Context) error {
	return kit.WithTimeout(ctx, slotQueryTimeout, func(ctx context.Context) error {
		if _, err := s.db.ExecContext(ctx, s.schema); err != nil {
			return fmt.Errorf("create cart_slots: %w", err)
		}
		return nil
	})
}

func (s *SQLSlot) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var v []byte
	err := kit.WithTimeout(ctx, slotQueryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, s.getQ, key).Scan(&v)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (s *SQLSlot) Set(ctx context.Context, key string, value []byte) error {
	return kit.WithTimeout(ctx, slotQueryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, s.setQ, key, value)
		return err
	})
}

func (s *SQLSlot) Ping(ctx context.Context) error {
	return kit.WithTimeout(ctx, slotPingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *SQLSlot) Close() error {
	return s.db.Close()
}
