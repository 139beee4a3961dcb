package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/logging"
)

// Observer receives timing for every backend call.
type Observer interface {
	ObserveStore(op string, duration time.Duration, err error)
}

// Store is the typed entry point every domain uses for persistence.
type Store struct {
	backend  Backend
	logger   *logging.Logger
	observer Observer

	cacheEnabled bool
	cache        sync.Map // key -> []byte

	// writeMu serialises backend writes with their cache update. versions
	// is bumped by every write so a read that missed before the write
	// never fills the cache with the value it replaced.
	writeMu  sync.Mutex
	versions map[string]uint64
}

// Option configures a Store.
type Option func(*Store)

// WithCache keeps decoded-from bytes in memory after the first read.
func WithCache() Option {
	return func(s *Store) { s.cacheEnabled = true }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Store) { s.logger = l.For("store") }
}

// WithObserver attaches a metrics observer.
func WithObserver(o Observer) Option {
	return func(s *Store) { s.observer = o }
}

// New wraps a backend.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{backend: backend, logger: logging.NewNop(), versions: make(map[string]uint64)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewMemoryStore returns a Store over a fresh memory backend.
func NewMemoryStore() *Store {
	return New(NewMemory())
}

func (s *Store) observe(op string, start time.Time, err error) {
	if errors.Is(err, ErrNotFound) {
		err = nil
	}
	if s.observer != nil {
		s.observer.ObserveStore(op, time.Since(start), err)
	}
	if err != nil {
		s.logger.Debug("Store operation failed", zap.String("op", op), zap.Error(err))
	}
}

func (s *Store) get(ctx context.Context, key string) ([]byte, error) {
	var version uint64
	if s.cacheEnabled {
		if v, ok := s.cache.Load(key); ok {
			return v.([]byte), nil
		}
		version = s.version(key)
	}

	start := time.Now()
	raw, err := s.backend.Get(ctx, key)
	s.observe("get", start, err)
	if err != nil {
		return nil, err
	}

	if s.cacheEnabled {
		s.writeMu.Lock()
		if s.versions[key] == version {
			s.cache.Store(key, raw)
		}
		s.writeMu.Unlock()
	}
	return raw, nil
}

func (s *Store) version(key string) uint64 {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.versions[key]
}

func (s *Store) set(ctx context.Context, key string, raw []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.versions[key]++

	start := time.Now()
	err := s.backend.Set(ctx, key, raw)
	s.observe("set", start, err)
	if err != nil {
		s.cache.Delete(key)
		return fmt.Errorf("store %s: %w", key, err)
	}

	if s.cacheEnabled {
		s.cache.Store(key, raw)
	}
	return nil
}

// GetJSON decodes the value at key into dst. found is false when the key
// is absent. A value that fails to decode returns an error wrapping ErrCorrupt.
func (s *Store) GetJSON(ctx context.Context, key string, dst interface{}) (bool, error) {
	raw, err := s.get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}

	if err := sonic.ConfigStd.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return true, nil
}

// SetJSON encodes v and stores it at key.
func (s *Store) SetJSON(ctx context.Context, key string, v interface{}) error {
	raw, err := sonic.ConfigStd.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.set(ctx, key, raw)
}

// GetString returns a raw scalar value.
func (s *Store) GetString(ctx context.Context, key string) (string, bool, error) {
	raw, err := s.get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load %s: %w", key, err)
	}
	return string(raw), true, nil
}

// SetString stores a raw scalar value.
func (s *Store) SetString(ctx context.Context, key, value string) error {
	return s.set(ctx, key, []byte(value))
}

// Delete removes a key. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.versions[key]++
	s.cache.Delete(key)

	start := time.Now()
	err := s.backend.Delete(ctx, key)
	s.observe("delete", start, err)
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// ClearSession removes recent items and system state; every other key survives.
func (s *Store) ClearSession(ctx context.Context) error {
	var errs []error
	for _, key := range SessionKeys {
		if err := s.Delete(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Keys lists stored keys.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	start := time.Now()
	keys, err := s.backend.Keys(ctx)
	s.observe("keys", start, err)
	return keys, err
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// Load is GetJSON for domain loaders: a corrupt value is logged and
// reported as absent so callers fall back to their defaults.
func (s *Store) Load(ctx context.Context, key string, dst interface{}) (bool, error) {
	found, err := s.GetJSON(ctx, key, dst)
	if errors.Is(err, ErrCorrupt) {
		s.logger.Warn("Discarding corrupt value, using defaults", zap.String("key", key), zap.Error(err))
		return false, nil
	}
	return found, err
}
