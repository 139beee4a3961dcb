package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/shell"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/utils"
)

// Version is reported by the root endpoint
const Version = "0.3.0"

// Handlers contains all HTTP handlers
type Handlers struct {
	shell   *shell.Shell
	metrics *monitoring.Metrics
	logger  *logging.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(s *shell.Shell, metrics *monitoring.Metrics, logger *logging.Logger) *Handlers {
	return &Handlers{
		shell:   s,
		metrics: metrics,
		logger:  logger.For("api"),
	}
}

// Register mounts every route on r
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)

	api := r.Group("/api")
	api.GET("/snapshot", h.Snapshot)
	api.GET("/metrics", h.MetricsSummary)
	api.POST("/logs", h.StreamLogs)

	windows := api.Group("/windows")
	windows.GET("", h.ListWindows)
	windows.POST("", h.OpenWindow)
	windows.DELETE("/:id", h.CloseWindow)
	windows.POST("/:id/minimize", h.MinimizeWindow)
	windows.POST("/:id/restore", h.RestoreWindow)
	windows.POST("/:id/focus", h.FocusWindow)
	windows.PUT("/:id/position", h.MoveWindow)
	windows.PUT("/:id/size", h.ResizeWindow)

	icons := api.Group("/icons")
	icons.GET("", h.ListIcons)
	icons.POST("/refresh", h.RefreshIcons)
	icons.POST("/folder", h.NewFolder)
	icons.PUT("/:id/position", h.MoveIcon)
	icons.POST("/:id/open", h.OpenIcon)

	files := api.Group("/files")
	files.GET("", h.ListFiles)
	files.GET("/tree", h.FileTree)
	files.GET("/glob", h.GlobFiles)
	files.POST("", h.CreateFile)
	files.GET("/:id", h.GetFile)
	files.PATCH("/:id", h.UpdateFile)
	files.POST("/:id/move", h.MoveFile)
	files.DELETE("/:id", h.DeleteFile)

	pwr := api.Group("/power")
	pwr.GET("", h.PowerState)
	pwr.POST("/signout", h.SignOut)
	pwr.POST("/:action", h.PowerAction)

	surfaces := api.Group("/surfaces")
	surfaces.GET("", h.SurfaceState)
	surfaces.POST("/:name/toggle", h.ToggleSurface)
	surfaces.POST("/context-menu", h.OpenContextMenu)
	surfaces.DELETE("/context-menu", h.CloseContextMenu)
	surfaces.DELETE("", h.CloseSurfaces)

	apps := api.Group("/apps")
	apps.GET("", h.ListApps)
	apps.GET("/search", h.SearchApps)
	apps.GET("/:id", h.GetApp)

	rec := api.Group("/recent")
	rec.GET("", h.ListRecent)
	rec.DELETE("/:id", h.RemoveRecent)
	rec.DELETE("", h.ClearRecent)

	cal := api.Group("/calendar")
	cal.GET("", h.ListEvents)
	cal.GET("/today", h.TodayEvents)
	cal.POST("", h.AddEvent)
	cal.PATCH("/:id", h.UpdateEvent)
	cal.POST("/:id/toggle", h.ToggleEvent)
	cal.DELETE("/:id", h.DeleteEvent)

	m := api.Group("/mail")
	m.GET("", h.ListMail)
	m.POST("", h.AddMail)
	m.POST("/:id/read", h.MarkMailRead)

	t := api.Group("/tasks")
	t.GET("", h.ListTasks)
	t.POST("", h.AddTask)
	t.POST("/:id/toggle", h.ToggleTask)
	t.PUT("/:id", h.RenameTask)
	t.DELETE("/:id", h.DeleteTask)

	s := api.Group("/settings")
	s.GET("", h.GetSettings)
	s.PUT("/wallpaper", h.SetWallpaper)
	s.POST("/wallpaper/next", h.NextWallpaper)
	s.POST("/wallpapers", h.AddWallpaper)
	s.PUT("/theme", h.SetTheme)
	s.PUT("/accent", h.SetAccentColor)
	s.PUT("/profile", h.SetProfile)
	s.PUT("/device/name", h.RenameDevice)
	s.POST("/bluetooth/toggle", h.ToggleBluetooth)
	s.PUT("/network", h.SetNetwork)
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "WebDesk Shell (Go)",
		"version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"power":    h.shell.Power.State(),
		"windows":  h.shell.Windows.Stats(),
		"apps":     h.shell.Registry.Len(),
		"files":    len(h.shell.Files.All()),
		"surfaces": h.shell.Surfaces.State(),
	})
}

// Snapshot returns everything the renderer needs to draw the screen
func (h *Handlers) Snapshot(c *gin.Context) {
	snap, err := h.shell.Snapshot(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"snapshot": snap,
	})
}

// MetricsSummary reports the JSON counters kept next to Prometheus
func (h *Handlers) MetricsSummary(c *gin.Context) {
	if h.metrics == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "metrics": nil})
		return
	}
	snap := h.metrics.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"metrics":            snap,
		"average_latency_ms": snap.AverageLatency().Milliseconds(),
		"uptime_seconds":     int64(h.metrics.Uptime().Seconds()),
	})
}

// pathID reads and validates the :id parameter
func pathID(c *gin.Context) (string, bool) {
	raw := c.Param("id")
	if err := utils.ValidateID(raw, "id", true); err != nil {
		invalid(c, err)
		return "", false
	}
	return raw, true
}
