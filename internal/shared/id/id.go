// Package id provides centralized ID generation for the backend.
//
// Every entity the shell creates (windows, icons, file system items,
// calendar events, recent items, tasks) gets a prefixed ULID:
//   - Lexicographic sortability: creation order survives string sorting
//   - Monotonic entropy: IDs minted in the same millisecond never collide
//   - Prefixed types: win_*, fs_*, evt_* make logs and storage dumps readable
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ============================================================================
// Type-Safe ID Wrappers
// ============================================================================

// WindowID identifies an open application window
type WindowID string

// IconID identifies a desktop icon
type IconID string

// ItemID identifies a virtual file system record
type ItemID string

// RecentID identifies a recent-items entry
type RecentID string

// EventID identifies a calendar event
type EventID string

// MailID identifies an email notification
type MailID string

// TaskID identifies a task list entry
type TaskID string

// WallpaperID identifies a wallpaper option
type WallpaperID string

// RequestID identifies an API request
type RequestID string

// ============================================================================
// ID Prefixes (for debugging and type identification)
// ============================================================================

const (
	WindowPrefix    = "win"
	IconPrefix      = "icon"
	ItemPrefix      = "fs"
	RecentPrefix    = "rec"
	EventPrefix     = "evt"
	MailPrefix      = "mail"
	TaskPrefix      = "task"
	WallpaperPrefix = "wp"
	RequestPrefix   = "req"
)

// ============================================================================
// ULID Generator
// ============================================================================

// Generator generates ULIDs with optional prefixes
type Generator struct {
	mu      sync.Mutex
	entropy io.Reader
	now     func() time.Time
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator instance
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator backed by monotonic crypto entropy.
func NewGenerator() *Generator {
	return NewGeneratorWithEntropy(ulid.Monotonic(rand.Reader, 0))
}

// NewGeneratorWithEntropy creates a generator with a custom entropy source.
// Tests pass a deterministic reader here.
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{
		entropy: entropy,
		now:     time.Now,
	}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.mu.Lock()
	defer g.mu.Unlock()

	return ulid.MustNew(ulid.Timestamp(g.now()), g.entropy)
}

// GenerateString creates a new ULID as a string
func (g *Generator) GenerateString() string {
	return g.Generate().String()
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.GenerateString())
}

// ============================================================================
// Typed ID Generators
// ============================================================================

func NewWindowID() WindowID       { return WindowID(Default().GenerateWithPrefix(WindowPrefix)) }
func NewIconID() IconID           { return IconID(Default().GenerateWithPrefix(IconPrefix)) }
func NewItemID() ItemID           { return ItemID(Default().GenerateWithPrefix(ItemPrefix)) }
func NewRecentID() RecentID       { return RecentID(Default().GenerateWithPrefix(RecentPrefix)) }
func NewEventID() EventID         { return EventID(Default().GenerateWithPrefix(EventPrefix)) }
func NewMailID() MailID           { return MailID(Default().GenerateWithPrefix(MailPrefix)) }
func NewTaskID() TaskID           { return TaskID(Default().GenerateWithPrefix(TaskPrefix)) }
func NewWallpaperID() WallpaperID { return WallpaperID(Default().GenerateWithPrefix(WallpaperPrefix)) }
func NewRequestID() RequestID     { return RequestID(Default().GenerateWithPrefix(RequestPrefix)) }

func (id WindowID) String() string    { return string(id) }
func (id IconID) String() string      { return string(id) }
func (id ItemID) String() string      { return string(id) }
func (id RecentID) String() string    { return string(id) }
func (id EventID) String() string     { return string(id) }
func (id MailID) String() string      { return string(id) }
func (id TaskID) String() string      { return string(id) }
func (id WallpaperID) String() string { return string(id) }
func (id RequestID) String() string   { return string(id) }

// ============================================================================
// Validation
// ============================================================================

// IsValid checks if an ID string is a valid ULID
func IsValid(id string) bool {
	_, err := ulid.Parse(id)
	return err == nil
}

// Parse parses a ULID string, accepting an optional "prefix_" head.
func Parse(id string) (ulid.ULID, error) {
	if i := strings.LastIndexByte(id, '_'); i >= 0 {
		id = id[i+1:]
	}
	return ulid.Parse(id)
}

// Timestamp extracts the creation time encoded in an ID
func Timestamp(id string) (time.Time, error) {
	parsed, err := Parse(id)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}
