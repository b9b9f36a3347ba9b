package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// MySQLAdapter keeps every collection blob in a single key/document table.
// Rows are replaced whole, matching the blob store's write-whole contract.
type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

// EnsureSchema creates the backing table if it does not exist yet.
func (m *MySQLAdapter) EnsureSchema(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS kv_blobs (
			k          VARCHAR(191) PRIMARY KEY,
			doc        MEDIUMBLOB NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		)`)
	if err != nil {
		return fmt.Errorf("create kv_blobs: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	var doc []byte
	err := m.db.QueryRowContext(ctx,
		`SELECT doc FROM kv_blobs WHERE k = ?`, key,
	).Scan(&doc)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query blob %q: %w", key, err)
	}
	return doc, nil
}

func (m *MySQLAdapter) Set(ctx context.Context, key string, data []byte) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO kv_blobs (k, doc) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE doc = VALUES(doc)`,
		key, data,
	)
	if err != nil {
		return fmt.Errorf("store blob %q: %w", key, err)
	}
	return nil
}

func (m *MySQLAdapter) Delete(ctx context.Context, key string) error {
	if _, err := m.db.ExecContext(ctx, `DELETE FROM kv_blobs WHERE k = ?`, key); err != nil {
		return fmt.Errorf("delete blob %q: %w", key, err)
	}
	return nil
}
