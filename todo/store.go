package todo

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Persister stores opaque values by key. Get reports false when the key has
// no value.
type Persister interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Options configures a Store.
type Options struct {
	// Persister mirrors the collection. If nil, the store is memory-only.
	Persister Persister

	// Key is the persistence key. If empty, DefaultKey is used.
	Key string

	// Logger receives persistence warnings. If nil, the logrus standard
	// logger is used.
	Logger logrus.FieldLogger

	// WriteTimeout bounds each background write. If zero,
	// DefaultWriteTimeout is used.
	WriteTimeout time.Duration
}

// DefaultWriteTimeout bounds a single background write.
const DefaultWriteTimeout = 10 * time.Second

// Store holds the todo collection, newest first, and the ID counter.
// It is safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	todos  []Todo
	nextID int

	persister Persister
	key       string
	log       logrus.FieldLogger
	queue     *writeQueue
}

// NewStore returns an empty store. When opts.Persister is set, every change
// is written in the background; call Load to read the persisted collection.
// A persistent store runs a writer goroutine until Close, so callers must
// Close it.
func NewStore(opts Options) *Store {
	key := opts.Key
	if key == "" {
		key = DefaultKey
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	logger = logger.WithField("key", key)

	s := &Store{
		todos:     []Todo{},
		nextID:    1,
		persister: opts.Persister,
		key:       key,
		log:       logger,
	}
	if opts.Persister != nil {
		timeout := opts.WriteTimeout
		if timeout <= 0 {
			timeout = DefaultWriteTimeout
		}
		s.queue = newWriteQueue(opts.Persister, key, timeout, logger)
	}
	return s
}

// Open creates a store and loads the persisted collection.
func Open(ctx context.Context, opts Options) *Store {
	s := NewStore(opts)
	s.Load(ctx)
	return s
}

// Key returns the persistence key.
func (s *Store) Key() string {
	return s.key
}

// Persistent reports whether the store has a persister.
func (s *Store) Persistent() bool {
	return s.queue != nil
}

// Load replaces the collection with the persisted one and returns it.
// A missing value, a read error or an unreadable document leaves the
// collection as it is. The loaded state is written back either way.
func (s *Store) Load(ctx context.Context) []Todo {
	if s.queue == nil {
		return s.Todos()
	}

	loaded, ok := s.read(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if ok {
		s.todos = loaded
		if next := maxID(loaded) + 1; next > s.nextID {
			s.nextID = next
		}
	}
	s.changedLocked()
	return cloneTodos(s.todos)
}

func (s *Store) read(ctx context.Context) ([]Todo, bool) {
	data, found, err := s.persister.Get(ctx, s.key)
	if err != nil {
		s.log.WithError(err).Warn("read todos")
		return nil, false
	}
	if !found {
		return nil, false
	}

	todos, err := DecodeTodos(data)
	if err != nil {
		s.log.WithError(err).Warn("decode todos")
		return nil, false
	}
	return todos, true
}

// Todos returns a copy of the whole collection, newest first.
func (s *Store) Todos() []Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTodos(s.todos)
}

// View returns the todos visible under f.
func (s *Store) View(f Filter) []Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View(s.todos, f)
}

// Get returns the todo with the given ID.
func (s *Store) Get(id int) (Todo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return Todo{}, false
	}
	return s.todos[idx], true
}

// NextID returns the ID the next created todo will receive.
func (s *Store) NextID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextID
}

// Flush waits until every change made so far has been written or dropped.
func (s *Store) Flush(ctx context.Context) error {
	if s.queue == nil {
		return nil
	}
	return s.queue.flush(ctx)
}

// Close flushes pending writes and stops the background writer.
// Changes made after Close are kept in memory only.
func (s *Store) Close(ctx context.Context) error {
	if s.queue == nil {
		return nil
	}
	return s.queue.close(ctx)
}

func (s *Store) indexLocked(id int) int {
	for i := range s.todos {
		if s.todos[i].ID == id {
			return i
		}
	}
	return -1
}

// changedLocked schedules a write of the current collection.
func (s *Store) changedLocked() {
	if s.queue == nil {
		return
	}
	s.queue.enqueue(cloneTodos(s.todos))
}

func cloneTodos(todos []Todo) []Todo {
	out := make([]Todo, len(todos))
	copy(out, todos)
	return out
}
