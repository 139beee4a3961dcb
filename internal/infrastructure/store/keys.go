package store

// Storage keys. The names match what earlier shell builds wrote to
// browser local storage so exported state stays readable.
const (
	KeyDesktopIcons     = "windows_desktop_icons"
	KeyWallpaper        = "windows_wallpaper"
	KeyTheme            = "windows_theme"
	KeyRecentItems      = "windows_recent_items"
	KeyCalendarEvents   = "windows_calendar_events"
	KeyEmails           = "windows_email_notifications"
	KeySystemState      = "windows_system_state"
	KeyUserProfile      = "windows_user_profile"
	KeyDeviceInfo       = "windows_device_info"
	KeyBluetooth        = "windows_bluetooth_settings"
	KeyNetworkInfo      = "windows_network_info"
	KeyWallpaperOptions = "windows_wallpaper_options"
	KeyAccentColor      = "windows_accent_color"
	KeyFileSystem       = "windows_vfs"
	KeyTasks            = "windows_tasks"
)

// SessionKeys are removed by ClearSession.
var SessionKeys = []string{KeyRecentItems, KeySystemState}

// AllKeys lists every key the shell writes.
var AllKeys = []string{
	KeyDesktopIcons, KeyWallpaper, KeyTheme, KeyRecentItems, KeyCalendarEvents,
	KeyEmails, KeySystemState, KeyUserProfile, KeyDeviceInfo, KeyBluetooth,
	KeyNetworkInfo, KeyWallpaperOptions, KeyAccentColor, KeyFileSystem, KeyTasks,
}
