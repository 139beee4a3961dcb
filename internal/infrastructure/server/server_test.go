package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/tracing"
)

func testConfig(t *testing.T) *config.Config {
	cfg := config.Default()
	cfg.Store.Backend = "file"
	cfg.Store.Path = t.TempDir()
	cfg.Logging.Development = true
	return cfg
}

func TestServerServesAPIAndMetrics(t *testing.T) {
	srv, err := NewServer(context.Background(), testConfig(t), logging.NewNop())
	require.NoError(t, err)
	defer srv.Close()

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/snapshot", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(tracing.HeaderTraceID))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])

	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestServerPersistsAcrossRestarts(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	srv, err := NewServer(ctx, cfg, logging.NewNop())
	require.NoError(t, err)
	_, err = srv.Shell().Files.CreateFolder(ctx, "Projects", "")
	require.NoError(t, err)
	require.NoError(t, srv.Close())

	srv, err = NewServer(ctx, cfg, logging.NewNop())
	require.NoError(t, err)
	defer srv.Close()

	matches, err := srv.Shell().Files.Glob("/Projects")
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestNewRegistrySeedsAppsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apps.yaml")
	require.NoError(t, os.WriteFile(path, []byte(strings.TrimSpace(`
apps:
  - id: paint
    title: Paint
    icon: paint
`)), 0o644))

	cfg := config.Default()
	cfg.Apps.File = path
	reg := NewRegistry(cfg, logging.NewNop())

	def, ok := reg.Lookup("paint")
	require.True(t, ok)
	assert.Equal(t, "Paint", def.Title)
	_, ok = reg.Lookup("explorer")
	assert.True(t, ok)
}

func TestOpenStoreRejectsUnknownBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Backend = "etcd"
	_, err := OpenStore(context.Background(), cfg, logging.NewNop(), nil)
	assert.Error(t, err)
}
