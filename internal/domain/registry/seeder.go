package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/logging"
)

// ErrUnsupportedFormat is returned for app files with an unknown extension
var ErrUnsupportedFormat = errors.New("unsupported app file format")

// appFile is the on-disk shape: a top-level "apps" list
type appFile struct {
	Apps []Definition `json:"apps" yaml:"apps" toml:"apps"`
}

// Seeder handles loading app definitions from disk
type Seeder struct {
	registry *Registry
	logger   *logging.Logger
}

// NewSeeder creates a new app seeder
func NewSeeder(registry *Registry, logger *logging.Logger) *Seeder {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Seeder{
		registry: registry,
		logger:   logger.For("registry"),
	}
}

// SeedFile registers every definition in path. A missing file is logged
// and ignored; invalid entries are skipped and counted.
func (s *Seeder) SeedFile(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("Apps file not found", zap.String("path", path))
		return nil
	}
	if err != nil {
		return fmt.Errorf("read apps file: %w", err)
	}

	defs, err := Parse(filepath.Ext(path), data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	var loaded, failed int
	for _, def := range defs {
		if err := s.registry.Register(def); err != nil {
			s.logger.Warn("Skipping app definition", zap.String("id", def.ID), zap.Error(err))
			failed++
			continue
		}
		loaded++
	}

	s.logger.Info("Seeding complete",
		zap.String("path", path),
		zap.Int("loaded", loaded),
		zap.Int("failed", failed),
	)
	return nil
}

// Parse decodes an app file by extension (.yaml, .yml, .toml, .json)
func Parse(ext string, data []byte) ([]Definition, error) {
	var file appFile

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, err
		}
	case ".toml":
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, err
		}
	case ".json":
		if err := sonic.ConfigStd.Unmarshal(data, &file); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	return file.Apps, nil
}
