// Package registry maps app ids to launchable definitions.
//
// Every place that opens a window (start menu, taskbar, desktop icons,
// recent items) asks the registry for the window content instead of
// branching on the app id itself.
//
// Components:
//   - Registry: ordered definitions with lookup, search and content resolution
//   - Seeder: loads extra definitions from a yaml, toml or json file
//
// Example Usage:
//
//	reg := registry.New()
//	reg.RegisterDefaults()
//	seeder := registry.NewSeeder(reg, logger)
//	if err := seeder.SeedFile("apps.yaml"); err != nil { ... }
//	results := reg.Search("photo")
package registry
