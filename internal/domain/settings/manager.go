package settings

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/store"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/id"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/utils"
)

const maxURLLength = 2048

// Manager reads and writes settings
type Manager struct {
	mu       sync.Mutex
	store    *store.Store
	notifier types.Notifier
	now      func() time.Time
}

// NewManager creates a settings manager
func NewManager(st *store.Store) *Manager {
	return &Manager{store: st, notifier: types.Discard, now: time.Now}
}

// WithNotifier publishes setting changes
func (m *Manager) WithNotifier(n types.Notifier) *Manager {
	m.notifier = n
	return m
}

func (m *Manager) changed(key string, value interface{}) {
	m.notifier.Notify(types.NewEvent(types.EventSettings, map[string]interface{}{
		"key":   key,
		"value": value,
	}))
}

func (m *Manager) str(ctx context.Context, key, fallback string) (string, error) {
	v, found, err := m.store.GetString(ctx, key)
	if err != nil {
		return "", err
	}
	if !found || v == "" {
		return fallback, nil
	}
	return v, nil
}

func (m *Manager) doc(ctx context.Context, key string, dst interface{}) (bool, error) {
	return m.store.Load(ctx, key, dst)
}

// Wallpaper returns the current wallpaper url
func (m *Manager) Wallpaper(ctx context.Context) (string, error) {
	return m.str(ctx, store.KeyWallpaper, DefaultWallpaper)
}

// SetWallpaper stores a wallpaper url
func (m *Manager) SetWallpaper(ctx context.Context, url string) error {
	if err := utils.ValidateString(url, "url", 1, maxURLLength, true); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSetting, err)
	}
	if err := m.store.SetString(ctx, store.KeyWallpaper, url); err != nil {
		return err
	}
	m.changed(store.KeyWallpaper, url)
	return nil
}

// NextWallpaper advances to the option after the current one, wrapping
// around. A wallpaper not in the list moves to the first option.
func (m *Manager) NextWallpaper(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, err := m.Wallpaper(ctx)
	if err != nil {
		return "", err
	}
	options, err := m.WallpaperOptions(ctx)
	if err != nil {
		return "", err
	}
	if len(options) == 0 {
		return current, nil
	}

	next := options[0].URL
	for i, opt := range options {
		if opt.URL == current {
			next = options[(i+1)%len(options)].URL
			break
		}
	}
	return next, m.SetWallpaper(ctx, next)
}

// Theme returns the colour scheme
func (m *Manager) Theme(ctx context.Context) (Theme, error) {
	v, err := m.str(ctx, store.KeyTheme, string(DefaultTheme))
	if err != nil {
		return "", err
	}
	if t := Theme(v); t == ThemeLight || t == ThemeDark {
		return t, nil
	}
	return DefaultTheme, nil
}

// SetTheme stores the colour scheme
func (m *Manager) SetTheme(ctx context.Context, t Theme) error {
	if t != ThemeLight && t != ThemeDark {
		return fmt.Errorf("%w: theme must be light or dark", ErrInvalidSetting)
	}
	if err := m.store.SetString(ctx, store.KeyTheme, string(t)); err != nil {
		return err
	}
	m.changed(store.KeyTheme, t)
	return nil
}

// AccentColor returns the accent as #rrggbb
func (m *Manager) AccentColor(ctx context.Context) (string, error) {
	return m.str(ctx, store.KeyAccentColor, DefaultAccent)
}

// SetAccentColor stores the accent colour
func (m *Manager) SetAccentColor(ctx context.Context, color string) error {
	if err := utils.ValidateHexColor(color); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSetting, err)
	}
	if err := m.store.SetString(ctx, store.KeyAccentColor, color); err != nil {
		return err
	}
	m.changed(store.KeyAccentColor, color)
	return nil
}

// Profile returns the user profile
func (m *Manager) Profile(ctx context.Context) (Profile, error) {
	var p Profile
	found, err := m.doc(ctx, store.KeyUserProfile, &p)
	if err != nil {
		return Profile{}, err
	}
	if !found {
		return defaultProfile(m.now()), nil
	}
	return p, nil
}

// SetProfile stores the user profile
func (m *Manager) SetProfile(ctx context.Context, p Profile) error {
	p.Name = utils.SanitizeText(p.Name)
	if err := utils.ValidateName(p.Name, "name"); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSetting, err)
	}
	if err := utils.ValidateEmail(p.Email, false); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSetting, err)
	}
	if err := m.store.SetJSON(ctx, store.KeyUserProfile, p); err != nil {
		return err
	}
	m.changed(store.KeyUserProfile, p)
	return nil
}

// Device returns the device description
func (m *Manager) Device(ctx context.Context) (DeviceInfo, error) {
	var d DeviceInfo
	found, err := m.doc(ctx, store.KeyDeviceInfo, &d)
	if err != nil {
		return DeviceInfo{}, err
	}
	if !found {
		return defaultDevice(), nil
	}
	return d, nil
}

// RenameDevice changes the device name
func (m *Manager) RenameDevice(ctx context.Context, name string) (DeviceInfo, error) {
	name = utils.SanitizeText(name)
	if err := utils.ValidateName(name, "name"); err != nil {
		return DeviceInfo{}, fmt.Errorf("%w: %v", ErrInvalidSetting, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	d, err := m.Device(ctx)
	if err != nil {
		return DeviceInfo{}, err
	}
	d.Name = name
	if err := m.store.SetJSON(ctx, store.KeyDeviceInfo, d); err != nil {
		return DeviceInfo{}, err
	}
	m.changed(store.KeyDeviceInfo, d)
	return d, nil
}

// Bluetooth returns the radio settings
func (m *Manager) Bluetooth(ctx context.Context) (Bluetooth, error) {
	var b Bluetooth
	found, err := m.doc(ctx, store.KeyBluetooth, &b)
	if err != nil {
		return Bluetooth{}, err
	}
	if !found {
		return defaultBluetooth(), nil
	}
	if b.Devices == nil {
		b.Devices = []BluetoothDevice{}
	}
	return b, nil
}

// ToggleBluetooth flips the radio and returns the new state
func (m *Manager) ToggleBluetooth(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, err := m.Bluetooth(ctx)
	if err != nil {
		return false, err
	}
	b.Enabled = !b.Enabled
	if err := m.store.SetJSON(ctx, store.KeyBluetooth, b); err != nil {
		return false, err
	}
	m.changed(store.KeyBluetooth, b)
	return b.Enabled, nil
}

// Network returns the connection info
func (m *Manager) Network(ctx context.Context) (Network, error) {
	var n Network
	found, err := m.doc(ctx, store.KeyNetworkInfo, &n)
	if err != nil {
		return Network{}, err
	}
	if !found {
		return defaultNetwork(), nil
	}
	return n, nil
}

// SetNetwork stores the connection info
func (m *Manager) SetNetwork(ctx context.Context, n Network) error {
	if err := m.store.SetJSON(ctx, store.KeyNetworkInfo, n); err != nil {
		return err
	}
	m.changed(store.KeyNetworkInfo, n)
	return nil
}

// WallpaperOptions lists selectable wallpapers, custom ones first
func (m *Manager) WallpaperOptions(ctx context.Context) ([]WallpaperOption, error) {
	var opts []WallpaperOption
	found, err := m.doc(ctx, store.KeyWallpaperOptions, &opts)
	if err != nil {
		return nil, err
	}
	if !found {
		return defaultWallpapers(), nil
	}
	if opts == nil {
		opts = []WallpaperOption{}
	}
	return opts, nil
}

// AddCustomWallpaper prepends a custom option
func (m *Manager) AddCustomWallpaper(ctx context.Context, name, url string) (WallpaperOption, error) {
	name = utils.SanitizeText(name)
	if err := utils.ValidateName(name, "name"); err != nil {
		return WallpaperOption{}, fmt.Errorf("%w: %v", ErrInvalidSetting, err)
	}
	if err := utils.ValidateString(url, "url", 1, maxURLLength, true); err != nil {
		return WallpaperOption{}, fmt.Errorf("%w: %v", ErrInvalidSetting, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	opts, err := m.WallpaperOptions(ctx)
	if err != nil {
		return WallpaperOption{}, err
	}
	opt := WallpaperOption{
		ID:        id.NewWallpaperID(),
		Name:      name,
		Thumbnail: url,
		URL:       url,
		Category:  CategoryCustom,
	}
	opts = append([]WallpaperOption{opt}, opts...)
	if err := m.store.SetJSON(ctx, store.KeyWallpaperOptions, opts); err != nil {
		return WallpaperOption{}, err
	}
	m.changed(store.KeyWallpaperOptions, opts)
	return opt, nil
}

// Export returns every setting in one document
func (m *Manager) Export(ctx context.Context) (All, error) {
	var (
		all All
		err error
	)
	if all.Wallpaper, err = m.Wallpaper(ctx); err != nil {
		return All{}, err
	}
	if all.Theme, err = m.Theme(ctx); err != nil {
		return All{}, err
	}
	if all.AccentColor, err = m.AccentColor(ctx); err != nil {
		return All{}, err
	}
	if all.Profile, err = m.Profile(ctx); err != nil {
		return All{}, err
	}
	if all.Device, err = m.Device(ctx); err != nil {
		return All{}, err
	}
	if all.Bluetooth, err = m.Bluetooth(ctx); err != nil {
		return All{}, err
	}
	if all.Network, err = m.Network(ctx); err != nil {
		return All{}, err
	}
	if all.WallpaperOptions, err = m.WallpaperOptions(ctx); err != nil {
		return All{}, err
	}
	return all, nil
}
