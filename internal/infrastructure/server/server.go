package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/WebDesk/backend/internal/api/http"
	"github.com/GriffinCanCode/WebDesk/backend/internal/api/middleware"
	"github.com/GriffinCanCode/WebDesk/backend/internal/api/ws"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/registry"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/shell"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/store"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/tracing"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	shell   *shell.Shell
	store   *store.Store
	hub     *ws.Hub
	tracer  *tracing.Tracer
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// OpenStore opens the configured backend behind a Store. metrics may be nil.
func OpenStore(ctx context.Context, cfg *config.Config, logger *logging.Logger, metrics *monitoring.Metrics) (*store.Store, error) {
	backend, err := store.Open(ctx, cfg.Store, cfg.Redis, logger)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
	}

	opts := []store.Option{store.WithLogger(logger)}
	if cfg.Store.Cache {
		opts = append(opts, store.WithCache())
	}
	if metrics != nil {
		opts = append(opts, store.WithObserver(metrics))
	}
	return store.New(backend, opts...), nil
}

// NewRegistry builds the app registry: built-in apps, then the optional
// apps file on top.
func NewRegistry(cfg *config.Config, logger *logging.Logger) *registry.Registry {
	reg := registry.New()
	reg.RegisterDefaults()
	if err := registry.NewSeeder(reg, logger).SeedFile(cfg.Apps.File); err != nil {
		logger.Warn("Failed to seed apps file", zap.String("path", cfg.Apps.File), zap.Error(err))
	}
	return reg
}

// NewServer creates a new server instance and boots the shell
func NewServer(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*Server, error) {
	logger.Info("Initializing WebDesk server",
		zap.String("port", cfg.Server.Port),
		zap.String("store", cfg.Store.Backend),
	)

	// Initialize metrics first (needed by other components)
	metrics := monitoring.NewMetrics()
	tracer := tracing.New("webdesk", logger)

	st, err := OpenStore(ctx, cfg, logger, metrics)
	if err != nil {
		tracer.Close()
		return nil, err
	}

	reg := NewRegistry(cfg, logger)
	hub := ws.NewHub(cfg.Server.AllowOrigins, logger).WithMetrics(metrics)

	sh := shell.New(st, cfg.Shell, reg,
		shell.WithNotifier(hub),
		shell.WithMetrics(metrics),
		shell.WithLogger(logger),
	)
	if err := sh.Boot(ctx); err != nil {
		_ = st.Close()
		tracer.Close()
		return nil, fmt.Errorf("boot shell: %w", err)
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig().WithOrigins(cfg.Server.AllowOrigins)))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(rl))
	}

	apihttp.NewHandlers(sh, metrics, logger).Register(router)
	router.GET("/stream", hub.HandleConnection)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	logger.Info("Server initialized successfully", zap.Int("apps", reg.Len()))

	return &Server{
		router:  router,
		shell:   sh,
		store:   st,
		hub:     hub,
		tracer:  tracer,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}, nil
}

// Handler exposes the router, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// Shell returns the booted shell
func (s *Server) Shell() *shell.Shell {
	return s.shell
}

// Run serves until ctx is cancelled, then drains in-flight requests for up
// to the configured shutdown wait.
func (s *Server) Run(ctx context.Context) error {
	addr := net.JoinHostPort(s.config.Server.Host, s.config.Server.Port)
	srv := &http.Server{Addr: addr, Handler: s.router}

	tickCtx, stopTicks := context.WithCancel(ctx)
	defer stopTicks()
	go s.hub.Run(tickCtx, s.config.Shell.ClockTick)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server", zap.Duration("wait", s.config.Server.ShutdownWait))
	s.hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownWait)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Close gracefully shuts down the server
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")

	// A pending shutdown or restart finishes its boot cycle first
	s.shell.Power.Wait()
	s.hub.Close()
	s.tracer.Close()

	var err error
	if cerr := s.store.Close(); cerr != nil {
		s.logger.Error("Failed to close store", zap.Error(cerr))
		err = fmt.Errorf("failed to close store: %w", cerr)
	}

	s.logger.Sync()
	return err
}
