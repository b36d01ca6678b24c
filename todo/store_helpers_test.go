package todo

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

// memPersister records every value written.
type memPersister struct {
	mu     sync.Mutex
	values map[string][]byte
	writes [][]byte
	getErr error
	setErr error
	block  chan struct{}
}

func newMemPersister() *memPersister {
	return &memPersister{values: make(map[string][]byte)}
}

func (p *memPersister) Get(ctx context.Context, key string) ([]byte, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.getErr != nil {
		return nil, false, p.getErr
	}
	value, ok := p.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

func (p *memPersister) Set(ctx context.Context, key string, value []byte) error {
	if p.block != nil {
		select {
		case <-p.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.setErr != nil {
		return p.setErr
	}
	p.values[key] = append([]byte(nil), value...)
	p.writes = append(p.writes, append([]byte(nil), value...))
	return nil
}

func (p *memPersister) value(key string) ([]byte, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	value, ok := p.values[key]
	return value, ok
}

func (p *memPersister) writeCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.writes)
}

var errBackend = errors.New("backend unavailable")

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestLogger() (*logrus.Logger, *logtest.Hook) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return logger, hook
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(Options{Logger: quietLogger()})
}

func newPersistentStore(t *testing.T, p Persister) *Store {
	t.Helper()
	store := NewStore(Options{Persister: p, Logger: quietLogger()})
	t.Cleanup(func() {
		_ = store.Close(testContext(t))
	})
	return store
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func mustCreate(t *testing.T, s *Store, title string) Todo {
	t.Helper()
	created, ok := s.Create(title)
	if !ok {
		t.Fatalf("create %q: not created", title)
	}
	return created
}

func titles(todos []Todo) []string {
	out := make([]string, len(todos))
	for i, t := range todos {
		out[i] = t.Title
	}
	return out
}
