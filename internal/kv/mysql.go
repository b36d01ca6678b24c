package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
)

// MySQL stores values in a single key/value table.
type MySQL struct {
	db *sql.DB
}

const createKVTable = `CREATE TABLE IF NOT EXISTS kv_entries (
    k VARCHAR(191) PRIMARY KEY,
    v LONGBLOB NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)`

// OpenMySQL connects to dsn and creates the table if needed.
func OpenMySQL(ctx context.Context, dsn string) (*MySQL, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("mysql backend requires a dsn")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	m := &MySQL{db: db}
	if err := m.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return m, nil
}

func (m *MySQL) migrate(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, createKVTable); err != nil {
		return fmt.Errorf("create kv table: %w", err)
	}
	return nil
}

// Get returns the value stored under key.
func (m *MySQL) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := m.db.QueryRowContext(ctx, "SELECT v FROM kv_entries WHERE k = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("mysql get %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key.
func (m *MySQL) Set(ctx context.Context, key string, value []byte) error {
	_, err := m.db.ExecContext(ctx,
		"INSERT INTO kv_entries (k, v) VALUES (?, ?) ON DUPLICATE KEY UPDATE v = VALUES(v)",
		key, value)
	if err != nil {
		return fmt.Errorf("mysql set %s: %w", key, err)
	}
	return nil
}

// Close closes the connection pool.
func (m *MySQL) Close() error {
	return m.db.Close()
}
