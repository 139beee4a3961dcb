package vfs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/store"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/id"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/utils"
)

// FS is the virtual file system
type FS struct {
	mu    sync.RWMutex
	items []Item // Protected by mu
	idx   index  // Protected by mu

	store    *store.Store
	notifier types.Notifier
	metrics  *monitoring.Metrics
	logger   *logging.Logger
	now      func() time.Time
}

// New creates a file system holding only the root folder. Call Load to
// read persisted records.
func New(st *store.Store) *FS {
	f := &FS{
		store:    st,
		notifier: types.Discard,
		logger:   logging.NewNop(),
		now:      time.Now,
	}
	f.items = []Item{defaultRoot(f.now().UnixMilli())}
	f.idx = buildIndex(f.items)
	return f
}

// WithNotifier publishes file system changes
func (f *FS) WithNotifier(n types.Notifier) *FS {
	f.notifier = n
	return f
}

// WithMetrics adds metrics tracking
func (f *FS) WithMetrics(metrics *monitoring.Metrics) *FS {
	f.metrics = metrics
	return f
}

// WithLogger sets the logger
func (f *FS) WithLogger(l *logging.Logger) *FS {
	f.logger = l.For("vfs")
	return f
}

// Load reads the persisted records. Missing or corrupt data yields the
// default tree; a list without a root gets one prepended.
func (f *FS) Load(ctx context.Context) error {
	var items []Item
	found, err := f.store.Load(ctx, store.KeyFileSystem, &items)
	if err != nil {
		return err
	}

	now := f.now().UnixMilli()
	if !found || len(items) == 0 {
		items = []Item{defaultRoot(now)}
	}
	if !hasRoot(items) {
		f.logger.Warn("File table has no root, adding one", zap.Int("items", len(items)))
		items = append([]Item{defaultRoot(now)}, items...)
	}

	f.mu.Lock()
	f.items = items
	f.idx = buildIndex(items)
	f.mu.Unlock()

	f.gauge()
	return nil
}

// Get returns a record by id
func (f *FS) Get(itemID id.ItemID) (Item, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	slot, ok := f.idx.pos[itemID]
	if !ok {
		return Item{}, false
	}
	return clone(f.items[slot]), true
}

// All returns every record in storage order
func (f *FS) All() []Item {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]Item, len(f.items))
	for i, item := range f.items {
		out[i] = clone(item)
	}
	return out
}

// Children returns the records whose parent is parentID, in creation order.
// An empty parentID lists top-level records.
func (f *FS) Children(parentID id.ItemID) []Item {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.childrenLocked(parentID)
}

func (f *FS) childrenLocked(parentID id.ItemID) []Item {
	ids := f.idx.children[parentID]
	out := make([]Item, 0, len(ids))
	for _, childID := range ids {
		out = append(out, clone(f.items[f.idx.pos[childID]]))
	}
	return out
}

// CreateFolder adds a folder under parentID ("" means root)
func (f *FS) CreateFolder(ctx context.Context, name string, parentID id.ItemID) (Item, error) {
	return f.create(ctx, name, TypeFolder, nil, parentID)
}

// CreateFile adds a file under parentID ("" means root). Size and MIME
// type are derived from content.
func (f *FS) CreateFile(ctx context.Context, name, content string, parentID id.ItemID) (Item, error) {
	return f.create(ctx, name, TypeFile, &content, parentID)
}

func (f *FS) create(ctx context.Context, name string, typ ItemType, content *string, parentID id.ItemID) (Item, error) {
	name, err := cleanName(name)
	if err != nil {
		return Item{}, err
	}
	if content != nil && len(*content) > utils.MaxContentLength {
		return Item{}, ErrTooLarge
	}
	if parentID == "" {
		parentID = RootID
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkParentLocked(parentID); err != nil {
		return Item{}, err
	}

	now := f.now().UnixMilli()
	parent := parentID
	item := Item{
		ID:        id.NewItemID(),
		Name:      name,
		Type:      typ,
		ParentID:  &parent,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if typ == TypeFile {
		setContent(&item, *content)
	}

	next := f.copyLocked()
	next = append(next, item)
	if err := f.commitLocked(ctx, next); err != nil {
		return Item{}, err
	}

	f.logger.Debug("Created item", zap.String("id", item.ID.String()), zap.String("type", string(typ)))
	f.changed("create")
	return clone(item), nil
}

// Update merges patch into the record and bumps UpdatedAt. Unknown ids
// return false with no error.
func (f *FS) Update(ctx context.Context, itemID id.ItemID, patch Patch) (Item, bool, error) {
	if patch.Name != nil {
		name, err := cleanName(*patch.Name)
		if err != nil {
			return Item{}, false, err
		}
		patch.Name = &name
	}
	if patch.Content != nil && len(*patch.Content) > utils.MaxContentLength {
		return Item{}, false, ErrTooLarge
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	slot, ok := f.idx.pos[itemID]
	if !ok {
		return Item{}, false, nil
	}

	next := f.copyLocked()
	item := &next[slot]
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Content != nil && item.Type == TypeFile {
		setContent(item, *patch.Content)
	}
	item.UpdatedAt = f.now().UnixMilli()

	if err := f.commitLocked(ctx, next); err != nil {
		return Item{}, false, err
	}
	updated := clone(next[slot])

	f.changed("update")
	return updated, true, nil
}

// Rename is Update with only a name
func (f *FS) Rename(ctx context.Context, itemID id.ItemID, name string) (Item, bool, error) {
	return f.Update(ctx, itemID, Patch{Name: &name})
}

// Delete removes the record and every descendant in one write. It
// returns how many records were removed; unknown ids remove nothing.
func (f *FS) Delete(ctx context.Context, itemID id.ItemID) (int, error) {
	if itemID == RootID {
		return 0, ErrRootProtected
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.idx.pos[itemID]; !ok {
		return 0, nil
	}

	doomed := map[id.ItemID]bool{itemID: true}
	for _, d := range f.idx.descendants(itemID) {
		doomed[d] = true
	}

	next := make([]Item, 0, len(f.items)-len(doomed))
	for _, item := range f.items {
		if !doomed[item.ID] {
			next = append(next, clone(item))
		}
	}

	if err := f.commitLocked(ctx, next); err != nil {
		return 0, err
	}

	f.logger.Debug("Deleted items", zap.String("id", itemID.String()), zap.Int("count", len(doomed)))
	f.changed("delete")
	return len(doomed), nil
}

// Move reparents a record. The new parent must be an existing folder that
// is not the record itself or one of its descendants.
func (f *FS) Move(ctx context.Context, itemID, newParentID id.ItemID) (bool, error) {
	if itemID == RootID {
		return false, ErrRootProtected
	}
	if newParentID == "" {
		newParentID = RootID
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	slot, ok := f.idx.pos[itemID]
	if !ok {
		return false, nil
	}
	if err := f.checkParentLocked(newParentID); err != nil {
		return false, err
	}
	if f.idx.isAncestor(f.items, itemID, newParentID) {
		return false, ErrCycle
	}

	next := f.copyLocked()
	parent := newParentID
	next[slot].ParentID = &parent
	next[slot].UpdatedAt = f.now().UnixMilli()

	if err := f.commitLocked(ctx, next); err != nil {
		return false, err
	}

	f.changed("move")
	return true, nil
}

// checkParentLocked validates a prospective parent (must hold lock)
func (f *FS) checkParentLocked(parentID id.ItemID) error {
	slot, ok := f.idx.pos[parentID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrParentNotFound, parentID)
	}
	if !f.items[slot].IsFolder() {
		return fmt.Errorf("%w: %s", ErrNotFolder, parentID)
	}
	return nil
}

func (f *FS) copyLocked() []Item {
	next := make([]Item, len(f.items), len(f.items)+1)
	for i, item := range f.items {
		next[i] = clone(item)
	}
	return next
}

// commitLocked persists next and swaps it in (must hold lock)
func (f *FS) commitLocked(ctx context.Context, next []Item) error {
	if err := f.store.SetJSON(ctx, store.KeyFileSystem, next); err != nil {
		return err
	}
	f.items = next
	f.idx = buildIndex(next)
	return nil
}

// changed records metrics and publishes the new list (may hold lock;
// notifiers must not call back into FS)
func (f *FS) changed(op string) {
	if f.metrics != nil {
		f.metrics.RecordFileOp(op)
		f.metrics.SetFileItems(len(f.items))
	}
	f.notifier.Notify(types.NewEvent(types.EventFiles, map[string]interface{}{
		"op":    op,
		"count": len(f.items),
	}))
}

func (f *FS) gauge() {
	if f.metrics == nil {
		return
	}
	f.mu.RLock()
	n := len(f.items)
	f.mu.RUnlock()
	f.metrics.SetFileItems(n)
}

func hasRoot(items []Item) bool {
	for _, item := range items {
		if item.ID == RootID {
			return true
		}
	}
	return false
}

func cleanName(name string) (string, error) {
	name = utils.SanitizeText(name)
	if err := utils.ValidateName(name, "name"); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidName, err)
	}
	return name, nil
}

func setContent(item *Item, content string) {
	size := int64(len(content))
	item.Content = &content
	item.Size = &size
	item.MimeType = mimetype.Detect([]byte(content)).String()
}
