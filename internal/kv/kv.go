package kv

import (
	"encoding/json"
	"errors"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/five82/pkgscout/internal/logging"
)

// ErrNotFound is returned by a Backend when a key has never been written
// or has been removed.
var ErrNotFound = errors.New("key not found")

// Backend is the raw byte medium behind a Store.
type Backend interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

var (
	_ Backend = (*Memory)(nil)
	_ Backend = (*File)(nil)
	_ Backend = (*SQLite)(nil)
)

// Store reads and writes JSON values on top of a Backend. A Store with no
// backend (or a nil *Store) behaves as unavailable storage: reads return the
// caller's fallback and writes are dropped.
type Store struct {
	backend Backend
	logger  *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New wraps backend. backend may be nil to model storage that is not
// available in the current execution context.
func New(backend Backend, logger *zap.Logger) *Store {
	return &Store{
		backend: backend,
		logger:  logging.OrNop(logger).Named("kv"),
		locks:   make(map[string]*sync.Mutex),
	}
}

// Available reports whether a backend is attached.
func (s *Store) Available() bool {
	return s != nil && s.backend != nil
}

// Read returns the value stored under key, or fallback when storage is
// unavailable, the key is absent, or the payload does not decode into T.
func Read[T any](s *Store, key string, fallback T) T {
	if !s.Available() {
		return fallback
	}
	data, err := s.backend.Get(key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Debug("read failed", zap.String("key", key), zap.Error(err))
		}
		return fallback
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		s.logger.Debug("decode failed", zap.String("key", key), zap.Error(err))
		return fallback
	}
	return value
}

// Write stores value under key. Encoding and storage failures are logged
// and otherwise ignored.
func (s *Store) Write(key string, value any) {
	if !s.Available() {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Debug("encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.backend.Set(key, data); err != nil {
		s.logger.Debug("write failed", zap.String("key", key), zap.Error(err))
	}
}

// Remove deletes key if present.
func (s *Store) Remove(key string) {
	if !s.Available() {
		return
	}
	if err := s.backend.Delete(key); err != nil && !errors.Is(err, ErrNotFound) {
		s.logger.Debug("remove failed", zap.String("key", key), zap.Error(err))
	}
}

// Update performs a read-modify-write of key. Calls for the same key are
// serialized so concurrent updates are not lost. The value returned by fn
// is persisted and returned even when the write fails.
func Update[T any](s *Store, key string, fallback T, fn func(T) T) T {
	if s == nil {
		return fn(fallback)
	}
	lock := s.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	next := fn(Read(s, key, fallback))
	s.Write(key, next)
	return next
}

// Close releases the backend when it holds resources.
func (s *Store) Close() error {
	if !s.Available() {
		return nil
	}
	if c, ok := s.backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (s *Store) keyLock(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locks == nil {
		s.locks = make(map[string]*sync.Mutex)
	}
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}
