package types

// Content kinds a window can host
const (
	ContentExplorer    = "explorer"
	ContentTasks       = "tasks"
	ContentSettings    = "settings"
	ContentPlaceholder = "placeholder"
)

// Content describes what a window renders. The renderer maps Kind to a
// component and passes Props through.
type Content struct {
	Kind  string                 `json:"kind" yaml:"kind" toml:"kind"`
	Props map[string]interface{} `json:"props,omitempty" yaml:"props" toml:"props"`
}
