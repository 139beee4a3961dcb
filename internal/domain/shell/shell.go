package shell

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/calendar"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/mail"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/power"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/recent"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/registry"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/settings"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/tasks"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/vfs"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/window"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/store"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/id"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/utils"
)

var (
	ErrNotActive  = errors.New("shell is not active")
	ErrInvalidApp = errors.New("invalid app request")
)

// RecentSubtitle labels recent entries created by opening a window
const RecentSubtitle = "Recently opened"

// View is the full-screen view the renderer shows
type View string

const (
	ViewDesktop  View = "desktop"
	ViewLock     View = "lock"
	ViewShutdown View = "shutdown"
	ViewRestart  View = "restart"
	ViewSleep    View = "sleep"
)

// ViewFor maps a power state to its view
func ViewFor(s power.State) View {
	switch s {
	case power.StateLocked:
		return ViewLock
	case power.StateShuttingDown:
		return ViewShutdown
	case power.StateRestarting:
		return ViewRestart
	case power.StateSleeping:
		return ViewSleep
	default:
		return ViewDesktop
	}
}

// Snapshot is what the renderer needs to draw the current screen
type Snapshot struct {
	View        View             `json:"view"`
	Power       power.State      `json:"power"`
	Windows     []window.Window  `json:"windows"`
	Stats       window.Stats     `json:"stats"`
	Icons       []desktop.Icon   `json:"icons"`
	Surfaces    SurfaceState     `json:"surfaces"`
	Wallpaper   string           `json:"wallpaper"`
	Theme       settings.Theme   `json:"theme"`
	AccentColor string           `json:"accentColor"`
	Profile     settings.Profile `json:"profile"`
	UnreadMail  int              `json:"unreadMail"`
}

// Option configures a Shell
type Option func(*Shell)

// WithNotifier sends every domain's change events to n
func WithNotifier(n types.Notifier) Option {
	return func(s *Shell) { s.notifier = n }
}

// WithMetrics records window, file, power and registry metrics
func WithMetrics(m *monitoring.Metrics) Option {
	return func(s *Shell) { s.metrics = m }
}

// WithLogger sets the logger
func WithLogger(l *logging.Logger) Option {
	return func(s *Shell) { s.logger = l }
}

// Shell is one desktop session
type Shell struct {
	Registry *registry.Registry
	Windows  *window.Manager
	Desktop  *desktop.Manager
	Files    *vfs.FS
	Power    *power.Machine
	Surfaces *Surfaces
	Recent   *recent.Manager
	Calendar *calendar.Manager
	Mail     *mail.Manager
	Tasks    *tasks.Manager
	Settings *settings.Manager

	store    *store.Store
	notifier types.Notifier
	metrics  *monitoring.Metrics
	logger   *logging.Logger
}

// New wires a shell over st. Call Boot before serving requests.
func New(st *store.Store, cfg config.ShellConfig, reg *registry.Registry, opts ...Option) *Shell {
	s := &Shell{
		Registry: reg,
		store:    st,
		notifier: types.Discard,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	layout := window.Layout{
		Base:    types.Position{X: cfg.BaseX, Y: cfg.BaseY},
		Offset:  cfg.CascadeOffset,
		Default: types.Size{Width: cfg.DefaultWidth, Height: cfg.DefaultHeight},
		Min:     types.Size{Width: cfg.MinWidth, Height: cfg.MinHeight},
	}

	s.Surfaces = NewSurfaces().WithNotifier(s.notifier)
	s.Recent = recent.NewManager(st, cfg.RecentLimit).WithNotifier(s.notifier)
	s.Windows = window.NewManager(layout).
		WithRecorder(window.RecorderFunc(s.recordOpened)).
		WithNotifier(s.notifier).
		WithMetrics(s.metrics).
		WithLogger(s.logger)
	s.Desktop = desktop.NewManager(st).WithNotifier(s.notifier).WithLogger(s.logger)
	s.Files = vfs.New(st).WithNotifier(s.notifier).WithMetrics(s.metrics).WithLogger(s.logger)
	s.Power = power.NewMachine(st, cfg.PowerDelay).
		WithSurfaces(s.Surfaces).
		WithReload(s.Reload).
		WithNotifier(s.notifier).
		WithMetrics(s.metrics).
		WithLogger(s.logger)
	s.Calendar = calendar.NewManager(st).WithNotifier(s.notifier)
	s.Mail = mail.NewManager(st, cfg.MailLimit).WithNotifier(s.notifier)
	s.Tasks = tasks.NewManager(st).WithNotifier(s.notifier)
	s.Settings = settings.NewManager(st).WithNotifier(s.notifier)

	s.logger = s.logger.For("shell")
	return s
}

// Store returns the persistence layer the shell writes to
func (s *Shell) Store() *store.Store {
	return s.store
}

// Boot loads persisted desktop state
func (s *Shell) Boot(ctx context.Context) error {
	if _, err := s.Desktop.Load(ctx); err != nil {
		return fmt.Errorf("load desktop icons: %w", err)
	}
	if err := s.Files.Load(ctx); err != nil {
		return fmt.Errorf("load file system: %w", err)
	}
	state, err := s.Power.Boot(ctx)
	if err != nil {
		return fmt.Errorf("load power state: %w", err)
	}
	if s.metrics != nil {
		s.metrics.SetRegistryApps(s.Registry.Len())
	}

	s.logger.Info("Shell booted",
		zap.String("power", string(state)),
		zap.Int("icons", len(s.Desktop.List())),
		zap.Int("files", len(s.Files.All())))
	return nil
}

// Reload drops windows and surfaces and boots from storage again
func (s *Shell) Reload(ctx context.Context) error {
	s.Windows.Reset()
	s.Surfaces.CloseAll()
	if err := s.Boot(ctx); err != nil {
		return err
	}
	s.notifier.Notify(types.NewEvent(types.EventReload, nil))
	return nil
}

// OpenApp opens a window for appID. An empty title falls back to the
// registered definition's title and icon.
func (s *Shell) OpenApp(ctx context.Context, appID, title, icon string) (window.Window, error) {
	if err := utils.ValidateID(appID, "appId", true); err != nil {
		return window.Window{}, fmt.Errorf("%w: %v", ErrInvalidApp, err)
	}
	if s.Power.State() != power.StateActive {
		return window.Window{}, ErrNotActive
	}

	if def, ok := s.Registry.Lookup(appID); ok {
		if title == "" {
			title = def.Title
		}
		if icon == "" {
			icon = def.Icon
		}
	}
	title = utils.SanitizeText(title)
	if err := utils.ValidateTitle(title, "title"); err != nil {
		return window.Window{}, fmt.Errorf("%w: %v", ErrInvalidApp, err)
	}

	content := s.Registry.Content(appID, title)
	return s.Windows.Open(ctx, appID, title, content, icon), nil
}

// OpenIcon launches a desktop icon. Unknown icons and icons that are not
// launchable return false.
func (s *Shell) OpenIcon(ctx context.Context, iconID id.IconID) (window.Window, bool, error) {
	icon, ok := s.Desktop.Get(iconID)
	if !ok || !desktop.Launchable(icon) {
		return window.Window{}, false, nil
	}
	if s.Power.State() != power.StateActive {
		return window.Window{}, false, ErrNotActive
	}

	appID := desktop.AppFor(icon)
	content := s.Registry.Content(appID, icon.Label)
	return s.Windows.Open(ctx, appID, icon.Label, content, icon.Icon), true, nil
}

// Snapshot gathers the renderer state
func (s *Shell) Snapshot(ctx context.Context) (Snapshot, error) {
	state := s.Power.State()
	snap := Snapshot{
		View:     ViewFor(state),
		Power:    state,
		Windows:  s.Windows.List(),
		Stats:    s.Windows.Stats(),
		Icons:    s.Desktop.List(),
		Surfaces: s.Surfaces.State(),
	}

	var err error
	if snap.Wallpaper, err = s.Settings.Wallpaper(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Theme, err = s.Settings.Theme(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.AccentColor, err = s.Settings.AccentColor(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Profile, err = s.Settings.Profile(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.UnreadMail, err = s.Mail.Unread(ctx); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// recordOpened adds a recent entry for a newly opened window. Failures
// are logged; the window stays open.
func (s *Shell) recordOpened(ctx context.Context, w window.Window) {
	icon := w.Icon
	if icon == "" {
		icon = "app"
	}
	_, err := s.Recent.Add(ctx, recent.Entry{
		Title:    w.Title,
		Type:     recent.TypeApp,
		Icon:     icon,
		Subtitle: RecentSubtitle,
		AppID:    w.AppID,
	})
	if err != nil {
		s.logger.Warn("Failed to record recent item", zap.String("app", w.AppID), zap.Error(err))
	}
}
