// Package store persists shell state as key-value pairs.
//
// A Backend moves raw bytes; Store layers typed JSON access, the shell's
// well-known keys and an optional read cache on top of any backend.
//
// Backends:
//   - memory: process-local map, used by tests and throwaway sessions
//   - file: one file per key, atomic rename, optional zstd compression
//   - sqlite: single kv table through modernc.org/sqlite
//   - redis: go-redis behind a sony/gobreaker circuit breaker
package store
