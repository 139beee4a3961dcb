package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/logging"
)

var (
	// ErrNotFound is returned by a Backend when a key is absent.
	ErrNotFound = errors.New("key not found")
	// ErrCorrupt wraps values that exist but cannot be decoded.
	ErrCorrupt = errors.New("corrupt value")
	// ErrUnknownBackend is returned by Open for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown store backend")
)

// Backend is a raw key-value store.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Open builds the backend selected by cfg.
func Open(ctx context.Context, cfg config.StoreConfig, rcfg config.RedisConfig, logger *logging.Logger) (Backend, error) {
	switch strings.ToLower(cfg.Backend) {
	case BackendMemory, "":
		return NewMemory(), nil
	case BackendFile:
		return NewFile(cfg.Path, cfg.Compress)
	case BackendSQLite:
		path := cfg.Path
		if filepath.Ext(path) == "" {
			path = filepath.Join(path, "webdesk.db")
		}
		return NewSQLite(ctx, path)
	case BackendRedis:
		return NewRedis(RedisOptions{
			Addr:        rcfg.Addr,
			Password:    rcfg.Password,
			DB:          rcfg.DB,
			Prefix:      rcfg.Prefix,
			DialTimeout: rcfg.DialTimeout,
		}, logger.For("redis")), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
