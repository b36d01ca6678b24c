package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amonks/tasklist/internal/config"
	"github.com/amonks/tasklist/internal/kv"
	"github.com/amonks/tasklist/internal/paths"
	"github.com/amonks/tasklist/internal/todoenv"
	"github.com/amonks/tasklist/todo"
	log "github.com/sirupsen/logrus"
)

// closeTimeout bounds the final flush of pending writes.
const closeTimeout = 15 * time.Second

// session is one command's view of the list: the resolved settings, the
// backend, the store loaded from it and an editor over the store.
type session struct {
	cfg     *config.Config
	version todo.Version
	backend kv.Store
	store   *todo.Store
	editor  *todo.Editor
}

type sessionOptions struct {
	// requirePersistence fails the session below version 3, for commands
	// whose changes would otherwise be lost on exit.
	requirePersistence bool
}

func openSession(ctx context.Context, opts sessionOptions) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if globalLogLevel == "" {
		if err := configureLogging(cfg.Log.Level); err != nil {
			return nil, err
		}
	}

	version, err := resolveVersion(cfg)
	if err != nil {
		return nil, err
	}
	if opts.requirePersistence && !version.Persists() {
		return nil, todo.ErrPersistenceDisabled
	}

	s := &session{cfg: cfg, version: version}
	storeOpts := todo.Options{
		Key:    cfg.Store.Key,
		Logger: log.WithField("backend", cfg.Store.Backend),
	}
	if version.Persists() {
		kvOpts, err := kvOptions(cfg)
		if err != nil {
			return nil, err
		}
		backend, err := kv.Open(ctx, kvOpts)
		if err != nil {
			return nil, fmt.Errorf("open %s backend: %w", kvOpts.Backend, err)
		}
		s.backend = backend
		storeOpts.Persister = backend
	}

	s.store = todo.Open(ctx, storeOpts)
	s.editor = todo.NewEditor(s.store, version)
	log.WithFields(log.Fields{
		"version": version,
		"backend": cfg.Store.Backend,
		"key":     s.store.Key(),
		"count":   len(s.store.Todos()),
	}).Debug("opened todo list")
	return s, nil
}

// Close flushes pending writes and releases the backend.
func (s *session) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	storeErr := s.store.Close(ctx)
	var backendErr error
	if s.backend != nil {
		backendErr = s.backend.Close()
	}
	return errors.Join(storeErr, backendErr)
}

// loadConfig layers the environment and then the flags over the config files.
func loadConfig() (*config.Config, error) {
	cwd, err := paths.WorkingDir()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, err
	}
	if backend := todoenv.Backend(); backend != "" {
		cfg.Store.Backend = backend
	}
	if key := todoenv.Key(); key != "" {
		cfg.Store.Key = key
	}
	if globalBackend != "" {
		cfg.Store.Backend = globalBackend
	}
	if globalKey != "" {
		cfg.Store.Key = globalKey
	}
	if globalDir != "" {
		cfg.Store.Dir = globalDir
	}
	return cfg, nil
}

func resolveVersion(cfg *config.Config) (todo.Version, error) {
	if version, ok := globalVersion.Version(); ok {
		return version, nil
	}
	version := todo.Version(cfg.Version)
	if !version.IsValid() {
		return 0, fmt.Errorf("%w: %d in config", todo.ErrInvalidVersion, cfg.Version)
	}
	return version, nil
}

func kvOptions(cfg *config.Config) (kv.Options, error) {
	backend, err := kv.ParseBackend(cfg.Store.Backend)
	if err != nil {
		return kv.Options{}, err
	}
	opts := kv.Options{
		Backend:     backend,
		RedisURL:    cfg.Store.RedisURL,
		RedisPrefix: cfg.Store.RedisPrefix,
		MySQLDSN:    cfg.Store.MySQLDSN,
	}
	if backend == kv.BackendFile {
		dir, err := paths.ResolveWithDefault(cfg.Store.Dir, paths.DefaultStateDir)
		if err != nil {
			return kv.Options{}, err
		}
		opts.Dir = dir
	}
	return opts, nil
}
