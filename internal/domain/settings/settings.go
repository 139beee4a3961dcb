// Package settings holds personalisation and device settings.
//
// Scalar values (wallpaper, theme, accent colour) are stored as raw
// strings; the rest as JSON documents. Every getter falls back to a
// default when nothing is stored.
package settings

import (
	"errors"
	"time"

	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/id"
)

var ErrInvalidSetting = errors.New("invalid setting")

// Theme is the colour scheme
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Stock values
const (
	DefaultWallpaper = "/pexels-pixabay-50594.jpg"
	DefaultTheme     = ThemeLight
	DefaultAccent    = "#0078d4"
)

// Profile is the signed-in user
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	LastLogin time.Time `json:"lastLogin"`
}

// DeviceInfo describes the simulated machine
type DeviceInfo struct {
	Name         string `json:"name"`
	Model        string `json:"model"`
	Manufacturer string `json:"manufacturer"`
	OS           string `json:"os"`
	Version      string `json:"version"`
}

// BluetoothDevice is a paired device
type BluetoothDevice struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"` // audio, input, display, other
	Connected bool   `json:"connected"`
	Battery   *int   `json:"battery,omitempty"`
}

// Bluetooth is the radio state and paired devices
type Bluetooth struct {
	Enabled bool              `json:"enabled"`
	Devices []BluetoothDevice `json:"devices"`
}

// Network is the current connection
type Network struct {
	Connected      bool   `json:"connected"`
	SSID           string `json:"ssid"`
	Secured        bool   `json:"secured"`
	SignalStrength int    `json:"signalStrength,omitempty"`
	IPAddress      string `json:"ipAddress,omitempty"`
}

// Wallpaper categories
const (
	CategoryDefault   = "default"
	CategoryCustom    = "custom"
	CategorySpotlight = "spotlight"
)

// WallpaperOption is one selectable background
type WallpaperOption struct {
	ID        id.WallpaperID `json:"id"`
	Name      string         `json:"name"`
	Thumbnail string         `json:"thumbnail"`
	URL       string         `json:"url"`
	Category  string         `json:"category"`
}

// All is every setting in one document
type All struct {
	Wallpaper        string            `json:"wallpaper"`
	Theme            Theme             `json:"theme"`
	AccentColor      string            `json:"accentColor"`
	Profile          Profile           `json:"profile"`
	Device           DeviceInfo        `json:"device"`
	Bluetooth        Bluetooth         `json:"bluetooth"`
	Network          Network           `json:"network"`
	WallpaperOptions []WallpaperOption `json:"wallpaperOptions"`
}

func defaultProfile(now time.Time) Profile {
	return Profile{
		ID:        "user-1",
		Name:      "Tafar Mabi",
		Email:     "glodytafare@gmail.com",
		LastLogin: now,
	}
}

func defaultDevice() DeviceInfo {
	return DeviceInfo{
		Name:         "Tafar",
		Model:        "Latitude 3440",
		Manufacturer: "Dell Inc.",
		OS:           "Windows 11 Pro",
		Version:      "23H2",
	}
}

func defaultBluetooth() Bluetooth {
	return Bluetooth{Devices: []BluetoothDevice{}}
}

func defaultNetwork() Network {
	return Network{
		Connected:      true,
		SSID:           "Tokyo",
		Secured:        true,
		SignalStrength: 4,
		IPAddress:      "192.168.1.100",
	}
}

func defaultWallpapers() []WallpaperOption {
	return []WallpaperOption{
		{
			ID:        "default-1",
			Name:      "Windows 11 Bloom",
			Thumbnail: DefaultWallpaper,
			URL:       DefaultWallpaper,
			Category:  CategoryDefault,
		},
		{
			ID:        "default-2",
			Name:      "Dark Blue",
			Thumbnail: "/download.jpg",
			URL:       "/download.jpg",
			Category:  CategoryDefault,
		},
	}
}
