package vfs

import (
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/id"
)

// Path returns the slash path of a record. Root is "/", its children
// "/Name", and so on.
func (f *FS) Path(itemID id.ItemID) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.pathLocked(itemID)
}

func (f *FS) pathLocked(itemID id.ItemID) (string, bool) {
	if _, ok := f.idx.pos[itemID]; !ok {
		return "", false
	}

	var parts []string
	seen := make(map[id.ItemID]bool)
	for current := itemID; current != "" && current != RootID; {
		if seen[current] {
			break
		}
		seen[current] = true

		slot, ok := f.idx.pos[current]
		if !ok {
			break
		}
		parts = append(parts, f.items[slot].Name)
		current = f.items[slot].Parent()
	}

	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return "/" + path.Join(parts...), true
}

// Glob returns records whose path matches pattern. Patterns use doublestar
// syntax against absolute paths, e.g. "/Documents/**/*.txt".
func (f *FS) Glob(pattern string) ([]Item, error) {
	if !strings.HasPrefix(pattern, "/") {
		pattern = "/" + pattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: %q", ErrBadPattern, pattern)
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	var matches []Item
	for _, item := range f.items {
		p, ok := f.pathLocked(item.ID)
		if !ok {
			continue
		}
		matched, err := doublestar.Match(pattern, p)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadPattern, err)
		}
		if matched {
			matches = append(matches, clone(item))
		}
	}
	return matches, nil
}

// Tree returns the hierarchy under root
func (f *FS) Tree() Node {
	f.mu.RLock()
	defer f.mu.RUnlock()

	slot := f.idx.pos[RootID]
	return f.nodeLocked(f.items[slot], map[id.ItemID]bool{})
}

func (f *FS) nodeLocked(item Item, seen map[id.ItemID]bool) Node {
	seen[item.ID] = true
	n := Node{Item: clone(item)}
	for _, child := range f.childrenLocked(item.ID) {
		if seen[child.ID] {
			continue
		}
		n.Children = append(n.Children, f.nodeLocked(child, seen))
	}
	return n
}
