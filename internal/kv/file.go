package kv

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// ErrNotJSON is returned when the file backend is given a non-JSON value.
var ErrNotJSON = errors.New("file backend values must be JSON")

const (
	fileDocumentName = "kv.json"
	fileLockName     = "kv.lock"
)

// File stores every key in one JSON document inside a directory.
// Writes hold an exclusive flock so several processes can share the directory.
type File struct {
	dir string
}

type fileDocument struct {
	Values map[string]json.RawMessage `json:"values"`
}

// NewFile returns a File store rooted at dir. The directory is created on
// first write.
func NewFile(dir string) *File {
	return &File{dir: dir}
}

// Dir returns the directory holding the document.
func (f *File) Dir() string {
	return f.dir
}

func (f *File) documentPath() string {
	return filepath.Join(f.dir, fileDocumentName)
}

func (f *File) lockPath() string {
	return filepath.Join(f.dir, fileLockName)
}

// Get returns the value stored under key.
func (f *File) Get(_ context.Context, key string) ([]byte, bool, error) {
	doc, err := f.load()
	if err != nil {
		return nil, false, err
	}
	value, ok := doc.Values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

// Set stores value under key.
func (f *File) Set(_ context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("%w: key %q", ErrNotJSON, key)
	}
	return f.update(func(doc *fileDocument) {
		doc.Values[key] = append(json.RawMessage(nil), value...)
	})
}

// Close is a no-op.
func (f *File) Close() error {
	return nil
}

// load reads the document. A missing file is an empty document.
func (f *File) load() (*fileDocument, error) {
	data, err := os.ReadFile(f.documentPath())
	if os.IsNotExist(err) {
		return &fileDocument{Values: make(map[string]json.RawMessage)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read kv file: %w", err)
	}

	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal kv file: %w", err)
	}
	if doc.Values == nil {
		doc.Values = make(map[string]json.RawMessage)
	}
	return &doc, nil
}

// save writes the document atomically via a temp file.
func (f *File) save(doc *fileDocument) error {
	// Compact so stored values read back byte for byte.
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal kv file: %w", err)
	}
	data = append(data, '\n')

	if existing, err := os.ReadFile(f.documentPath()); err == nil {
		if bytes.Equal(existing, data) {
			return nil
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("read kv file: %w", err)
	}

	tmpFile, err := os.CreateTemp(f.dir, fileDocumentName+".tmp")
	if err != nil {
		return fmt.Errorf("create temp kv file: %w", err)
	}
	name := tmpFile.Name()
	_, err = tmpFile.Write(data)
	if err1 := tmpFile.Close(); err1 != nil && err == nil {
		err = err1
	}
	if err != nil {
		os.Remove(name)
		return fmt.Errorf("write temp kv file: %w", err)
	}

	if err := os.Rename(name, f.documentPath()); err != nil {
		os.Remove(name)
		return fmt.Errorf("rename kv file: %w", err)
	}
	return nil
}

// update reads, modifies and writes the document under an exclusive lock.
func (f *File) update(fn func(doc *fileDocument)) error {
	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return fmt.Errorf("create kv dir: %w", err)
	}

	lockFile, err := os.OpenFile(f.lockPath(), os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer lockFile.Close()

	if err := syscall.Flock(int(lockFile.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer syscall.Flock(int(lockFile.Fd()), syscall.LOCK_UN)

	doc, err := f.load()
	if err != nil {
		return err
	}
	fn(doc)
	return f.save(doc)
}
