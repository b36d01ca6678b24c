package kv

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"
)

// TASKLIST_MYSQL_DSN points at a scratch database, e.g.
// root:secret@tcp(127.0.0.1:3306)/tasklist_test
const mysqlDSNEnvVar = "TASKLIST_MYSQL_DSN"

func TestMySQLContract(t *testing.T) {
	dsn := os.Getenv(mysqlDSNEnvVar)
	if dsn == "" {
		t.Skipf("%s not set", mysqlDSNEnvVar)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	store, err := OpenMySQL(ctx, dsn)
	if err != nil {
		t.Fatalf("open mysql: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	suffix := fmt.Sprint(time.Now().UnixNano())
	t.Cleanup(func() {
		_, _ = store.db.Exec("DELETE FROM kv_entries WHERE k IN (?, ?)", "todos"+suffix, "other"+suffix)
	})
	testStoreContract(t, &prefixedStore{Store: store, prefix: suffix})
}

// prefixedStore keeps test keys from colliding across runs.
type prefixedStore struct {
	Store
	prefix string
}

func (p *prefixedStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return p.Store.Get(ctx, key+p.prefix)
}

func (p *prefixedStore) Set(ctx context.Context, key string, value []byte) error {
	return p.Store.Set(ctx, key+p.prefix, value)
}

func TestOpenMySQLRequiresDSN(t *testing.T) {
	if _, err := OpenMySQL(context.Background(), "  "); err == nil {
		t.Fatal("expected empty dsn to fail")
	}
}
