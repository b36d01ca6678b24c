// Package kv provides key/value backends for persisting the todo collection.
//
// Every backend stores opaque byte values under string keys and reports a
// missing key as (nil, false, nil) rather than an error.
package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amonks/tasklist/internal/validation"
)

// ErrUnknownBackend is returned when Open is asked for an unsupported backend.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Store is a key/value backend.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Backend names a Store implementation.
type Backend string

const (
	// BackendMemory keeps values in process memory.
	BackendMemory Backend = "memory"

	// BackendFile keeps values in a JSON document on disk.
	BackendFile Backend = "file"

	// BackendRedis keeps values in Redis.
	BackendRedis Backend = "redis"

	// BackendMySQL keeps values in a MySQL table.
	BackendMySQL Backend = "mysql"
)

// ValidBackends returns all supported backends.
func ValidBackends() []Backend {
	return []Backend{BackendMemory, BackendFile, BackendRedis, BackendMySQL}
}

// ParseBackend normalizes a backend name.
func ParseBackend(value string) (Backend, error) {
	normalized := Backend(strings.ToLower(strings.TrimSpace(value)))
	for _, valid := range ValidBackends() {
		if normalized == valid {
			return normalized, nil
		}
	}
	return "", validation.FormatInvalidValueError(ErrUnknownBackend, Backend(value), ValidBackends())
}

// Options selects and configures a backend.
type Options struct {
	Backend Backend

	// Dir is the directory of the file backend.
	Dir string

	// RedisURL is a redis:// URL or a plain host:port address.
	RedisURL string

	// RedisPrefix is prepended to every key in Redis.
	RedisPrefix string

	// MySQLDSN is a go-sql-driver/mysql data source name.
	MySQLDSN string
}

// Open connects to the configured backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile, "":
		if opts.Dir == "" {
			return nil, fmt.Errorf("file backend requires a directory")
		}
		return NewFile(opts.Dir), nil
	case BackendRedis:
		store, err := OpenRedis(ctx, opts.RedisURL, opts.RedisPrefix)
		if err != nil {
			return nil, err
		}
		return store, nil
	case BackendMySQL:
		store, err := OpenMySQL(ctx, opts.MySQLDSN)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, validation.FormatInvalidValueError(ErrUnknownBackend, opts.Backend, ValidBackends())
	}
}
