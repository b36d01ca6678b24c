package todo

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type snapshot struct {
	revision uint64
	todos    []Todo
}

// writeQueue serializes writes of collection snapshots through a single
// goroutine. Only the newest pending snapshot is written, so the last change
// issued is always the last one persisted.
type writeQueue struct {
	persister Persister
	key       string
	timeout   time.Duration
	log       logrus.FieldLogger

	mu       sync.Mutex
	pending  *snapshot
	issued   uint64
	written  uint64
	progress chan struct{}
	closed   bool

	wake      chan struct{}
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func newWriteQueue(persister Persister, key string, timeout time.Duration, logger logrus.FieldLogger) *writeQueue {
	q := &writeQueue{
		persister: persister,
		key:       key,
		timeout:   timeout,
		log:       logger,
		progress:  make(chan struct{}),
		wake:      make(chan struct{}, 1),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	go q.run()
	return q
}

func (q *writeQueue) enqueue(todos []Todo) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		q.log.Debug("write queue closed; change kept in memory")
		return
	}
	q.issued++
	q.pending = &snapshot{revision: q.issued, todos: todos}
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *writeQueue) run() {
	defer close(q.done)
	for {
		select {
		case <-q.wake:
			q.drain()
		case <-q.stop:
			q.drain()
			return
		}
	}
}

func (q *writeQueue) drain() {
	for {
		q.mu.Lock()
		snap := q.pending
		q.pending = nil
		q.mu.Unlock()
		if snap == nil {
			return
		}

		q.write(snap)

		q.mu.Lock()
		q.written = snap.revision
		close(q.progress)
		q.progress = make(chan struct{})
		q.mu.Unlock()
	}
}

// write persists a snapshot. Failures are logged and the write is dropped.
func (q *writeQueue) write(snap *snapshot) {
	logger := q.log.WithField("revision", snap.revision)

	data, err := EncodeTodos(snap.todos)
	if err != nil {
		logger.WithError(err).Warn("encode todos")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()
	if err := q.persister.Set(ctx, q.key, data); err != nil {
		logger.WithError(err).Warn("write todos")
		return
	}
	logger.WithField("count", len(snap.todos)).Debug("wrote todos")
}

func (q *writeQueue) flush(ctx context.Context) error {
	q.mu.Lock()
	target := q.issued
	q.mu.Unlock()

	for {
		q.mu.Lock()
		if q.written >= target {
			q.mu.Unlock()
			return nil
		}
		progress := q.progress
		q.mu.Unlock()

		select {
		case <-progress:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (q *writeQueue) close(ctx context.Context) error {
	if err := q.flush(ctx); err != nil {
		return err
	}

	q.closeOnce.Do(func() {
		q.mu.Lock()
		q.closed = true
		q.mu.Unlock()
		close(q.stop)
	})

	select {
	case <-q.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
