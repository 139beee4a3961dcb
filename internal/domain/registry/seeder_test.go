package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/logging"
)

const yamlApps = `
apps:
  - id: notepad
    title: Notepad
    icon: notepad
    description: Plain text editor
    content:
      kind: editor
      props:
        wrap: true
  - id: ""
    title: Broken
`

const tomlApps = `
[[apps]]
id = "paint"
title = "Paint"
description = "Draw things"

[apps.content]
kind = "canvas"
`

const jsonApps = `{"apps":[{"id":"maps","title":"Maps","description":"Find places"}]}`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestSeedFileFormats(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
		id   string
		kind string
	}{
		{"yaml", "apps.yaml", yamlApps, "notepad", "editor"},
		{"yml", "apps.yml", yamlApps, "notepad", "editor"},
		{"toml", "apps.toml", tomlApps, "paint", "canvas"},
		{"json", "apps.json", jsonApps, "maps", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New()
			s := NewSeeder(r, logging.NewNop())

			require.NoError(t, s.SeedFile(writeFile(t, tt.file, tt.body)))

			def, ok := r.Lookup(tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.kind, def.Content.Kind)
			assert.Equal(t, 1, r.Len(), "invalid entries are skipped")
		})
	}
}

func TestSeedFileYAMLProps(t *testing.T) {
	r := New()
	require.NoError(t, NewSeeder(r, nil).SeedFile(writeFile(t, "apps.yaml", yamlApps)))

	def, _ := r.Lookup("notepad")
	assert.Equal(t, true, def.Content.Props["wrap"])
	assert.Equal(t, "editor", r.Content("notepad", "Notepad").Kind)
}

func TestSeedFileMissingIsIgnored(t *testing.T) {
	r := New()
	s := NewSeeder(r, logging.NewNop())

	assert.NoError(t, s.SeedFile(""))
	assert.NoError(t, s.SeedFile(filepath.Join(t.TempDir(), "absent.yaml")))
	assert.Zero(t, r.Len())
}

func TestSeedFileErrors(t *testing.T) {
	s := NewSeeder(New(), logging.NewNop())

	err := s.SeedFile(writeFile(t, "apps.ini", "x=1"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	err = s.SeedFile(writeFile(t, "apps.json", "{"))
	assert.Error(t, err)
}
