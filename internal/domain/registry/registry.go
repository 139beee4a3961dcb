package registry

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/utils"
)

// MinQueryLength is the shortest query Search answers
const MinQueryLength = 2

var (
	// ErrInvalidDefinition is returned for definitions missing an id or title
	ErrInvalidDefinition = errors.New("invalid app definition")
)

// Definition describes a launchable app
type Definition struct {
	ID          string        `json:"id" yaml:"id" toml:"id"`
	Title       string        `json:"title" yaml:"title" toml:"title"`
	Icon        string        `json:"icon" yaml:"icon" toml:"icon"`
	Description string        `json:"description" yaml:"description" toml:"description"`
	Category    string        `json:"category,omitempty" yaml:"category" toml:"category"`
	Content     types.Content `json:"content" yaml:"content" toml:"content"`
}

// Validate checks the fields the shell depends on
func (d Definition) Validate() error {
	if err := utils.ValidateID(d.ID, "id", true); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}
	if err := utils.ValidateTitle(d.Title, "title"); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidDefinition, d.ID, err)
	}
	return nil
}

// Registry holds app definitions in registration order
type Registry struct {
	mu    sync.RWMutex
	order []string
	defs  map[string]Definition
}

// New creates an empty registry
func New() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// Register adds or replaces a definition. Replacing keeps the original slot.
func (r *Registry) Register(def Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defs[def.ID]; !exists {
		r.order = append(r.order, def.ID)
	}
	r.defs[def.ID] = def
	return nil
}

// Lookup returns the definition for an app id
func (r *Registry) Lookup(appID string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.defs[appID]
	return def, ok
}

// List returns all definitions in registration order
func (r *Registry) List() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Definition, 0, len(r.order))
	for _, appID := range r.order {
		out = append(out, r.defs[appID])
	}
	return out
}

// Len returns the number of definitions
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Search matches query case-insensitively against title and description.
// Queries shorter than MinQueryLength return nothing.
func (r *Registry) Search(query string) []Definition {
	query = strings.ToLower(strings.TrimSpace(query))
	if len([]rune(query)) < MinQueryLength {
		return []Definition{}
	}

	results := []Definition{}
	for _, def := range r.List() {
		if strings.Contains(strings.ToLower(def.Title), query) ||
			strings.Contains(strings.ToLower(def.Description), query) {
			results = append(results, def)
		}
	}
	return results
}

// Content resolves what a window for appID should render. Apps without
// dedicated content get a placeholder naming the title.
func (r *Registry) Content(appID, title string) types.Content {
	switch appID {
	case types.ContentExplorer:
		return types.Content{Kind: types.ContentExplorer, Props: map[string]interface{}{"parentId": "root"}}
	case types.ContentTasks:
		return types.Content{Kind: types.ContentTasks}
	case types.ContentSettings:
		return types.Content{Kind: types.ContentSettings}
	}

	if def, ok := r.Lookup(appID); ok && def.Content.Kind != "" {
		return def.Content
	}
	return Placeholder(title)
}

// Placeholder returns the stand-in content for apps that are not built
func Placeholder(title string) types.Content {
	return types.Content{
		Kind: types.ContentPlaceholder,
		Props: map[string]interface{}{
			"title":   title,
			"message": fmt.Sprintf("This is a placeholder for %s app.", title),
		},
	}
}
