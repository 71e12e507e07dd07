// Package pkg provides shared utilities for seedstrip.
package pkg

import (
	"encoding/gob"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Spool is a generic append-only buffer that spills items of type T to a
// temporary file. It keeps scans over large seed trees from holding every
// match in memory.
type Spool[T any] interface {
	Len() uint64
	Path() string
	Append(item T) error
	AppendBatch(items []T) error
	Get(index uint64) (T, error)
	Range(fn func(index uint64, item T) error) error
	// Close releases the spool and removes its backing file.
	Close() error
}

type fileSpool[T any] struct {
	path    string
	file    *os.File
	encoder *gob.Encoder
	mu      sync.Mutex
	length  uint64
}

// NewSpool creates a Spool backed by a temp file named after prefix.
func NewSpool[T any](prefix string) (Spool[T], error) {
	dir := filepath.Join(os.TempDir(), "seedstrip")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create spool directory: %w", err)
	}

	file, err := os.CreateTemp(dir, prefix+"-*.gob")
	if err != nil {
		return nil, fmt.Errorf("create spool file: %w", err)
	}

	slog.Debug("Created spool", "path", file.Name())

	return &fileSpool[T]{
		path:    file.Name(),
		file:    file,
		encoder: gob.NewEncoder(file),
	}, nil
}

// Len returns the number of items appended so far.
func (s *fileSpool[T]) Len() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.length
}

// Path returns the location of the backing file.
func (s *fileSpool[T]) Path() string {
	return s.path
}

// Append encodes one item at the end of the spool.
func (s *fileSpool[T]) Append(item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.encoder.Encode(item); err != nil {
		return fmt.Errorf("encode spool item %d: %w", s.length, err)
	}

	s.length++

	return nil
}

// AppendBatch appends items in order.
func (s *fileSpool[T]) AppendBatch(items []T) error {
	for _, item := range items {
		if err := s.Append(item); err != nil {
			return err
		}
	}

	return nil
}

// Get decodes the item at index. Access is sequential from the start of the
// file, so Range is the cheaper way to visit many items.
func (s *fileSpool[T]) Get(index uint64) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T

	if index >= s.length {
		return zero, fmt.Errorf("spool index %d out of bounds (length %d)", index, s.length)
	}

	file, err := os.Open(s.path)
	if err != nil {
		return zero, fmt.Errorf("open spool: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("Failed to close spool", "path", s.path, "error", err)
		}
	}()

	decoder := gob.NewDecoder(file)

	var item T

	for i := uint64(0); i <= index; i++ {
		// Decode into a fresh value so fields absent from later items do
		// not inherit values from earlier ones.
		item = zero
		if err := decoder.Decode(&item); err != nil {
			return zero, fmt.Errorf("decode spool item %d: %w", i, err)
		}
	}

	return item, nil
}

// Range calls fn for every item in append order and stops on the first
// error the callback returns.
func (s *fileSpool[T]) Range(fn func(index uint64, item T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("open spool: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("Failed to close spool", "path", s.path, "error", err)
		}
	}()

	decoder := gob.NewDecoder(file)

	for i := uint64(0); i < s.length; i++ {
		var item T
		if err := decoder.Decode(&item); err != nil {
			return fmt.Errorf("decode spool item %d: %w", i, err)
		}

		if err := fn(i, item); err != nil {
			return err
		}
	}

	return nil
}

// Close closes and deletes the backing file.
func (s *fileSpool[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}

	if err := s.file.Close(); err != nil {
		return fmt.Errorf("close spool: %w", err)
	}

	s.file = nil

	if err := os.Remove(s.path); err != nil {
		slog.Warn("Failed to remove spool file", "path", s.path, "error", err)
	}

	slog.Debug("Closed spool", "path", s.path, "length", s.length)

	return nil
}
