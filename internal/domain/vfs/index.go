package vfs

import "github.com/GriffinCanCode/WebDesk/backend/internal/shared/id"

// index maps ids to slots and parents to ordered children
type index struct {
	pos      map[id.ItemID]int
	children map[id.ItemID][]id.ItemID
}

func buildIndex(items []Item) index {
	idx := index{
		pos:      make(map[id.ItemID]int, len(items)),
		children: make(map[id.ItemID][]id.ItemID),
	}
	for i, item := range items {
		idx.pos[item.ID] = i
		parent := item.Parent()
		idx.children[parent] = append(idx.children[parent], item.ID)
	}
	return idx
}

// descendants returns every id below root, breadth first
func (idx index) descendants(root id.ItemID) []id.ItemID {
	var out []id.ItemID
	seen := map[id.ItemID]bool{root: true}
	queue := []id.ItemID{root}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, child := range idx.children[current] {
			if seen[child] {
				continue
			}
			seen[child] = true
			out = append(out, child)
			queue = append(queue, child)
		}
	}
	return out
}

// isAncestor reports whether anc is item or one of its ancestors
func (idx index) isAncestor(items []Item, anc, item id.ItemID) bool {
	seen := make(map[id.ItemID]bool)
	for current := item; current != ""; {
		if current == anc {
			return true
		}
		if seen[current] {
			return false
		}
		seen[current] = true

		slot, ok := idx.pos[current]
		if !ok {
			return false
		}
		current = items[slot].Parent()
	}
	return false
}
