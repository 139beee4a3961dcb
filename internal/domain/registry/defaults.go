package registry

// DefaultApps are the start menu's pinned apps followed by the taskbar extras
func DefaultApps() []Definition {
	return []Definition{
		{ID: "edge", Title: "Edge", Icon: "edge", Description: "Web browser", Category: "internet"},
		{ID: "mail", Title: "Mail", Icon: "mail", Description: "Email client", Category: "productivity"},
		{ID: "calendar", Title: "Calendar", Icon: "calendar", Description: "Calendar app", Category: "productivity"},
		{ID: "explorer", Title: "File Explorer", Icon: "folder", Description: "Browse files and folders", Category: "system"},
		{ID: "settings", Title: "Settings", Icon: "settings", Description: "System settings", Category: "system"},
		{ID: "photos", Title: "Photos", Icon: "photos", Description: "View photos", Category: "media"},
		{ID: "music", Title: "Music", Icon: "music", Description: "Music player", Category: "media"},
		{ID: "videos", Title: "Videos", Icon: "videos", Description: "Video player", Category: "media"},
		{ID: "messages", Title: "Messages", Icon: "messages", Description: "Messaging app", Category: "communication"},
		{ID: "calculator", Title: "Calculator", Icon: "calculator", Description: "Calculator", Category: "utilities"},
		{ID: "terminal", Title: "Terminal", Icon: "terminal", Description: "Command line", Category: "utilities"},
		{ID: "tasks", Title: "Tasks", Icon: "tasks", Description: "Task manager", Category: "productivity"},
		{ID: "store", Title: "Store", Icon: "store", Description: "App store", Category: "system"},
		{ID: "copilot", Title: "Copilot", Icon: "copilot", Description: "AI assistant", Category: "productivity"},
		{ID: "teams", Title: "Microsoft Teams", Icon: "teams", Description: "Teams collaboration app", Category: "communication"},
	}
}

// RegisterDefaults adds DefaultApps
func (r *Registry) RegisterDefaults() {
	for _, def := range DefaultApps() {
		// defaults are known-valid
		_ = r.Register(def)
	}
}
