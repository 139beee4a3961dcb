// Package logging wraps uber/zap for the shell.
//
// Production writes JSON lines, development writes coloured console
// lines. Components take a *Logger and derive a named child with For, so
// every line carries a "logger" field (window, vfs, power, store, http).
//
//	logger, err := logging.New(logging.FromConfig(cfg.Logging, os.Stderr))
//	vfsLog := logger.For("vfs")
//	vfsLog.Warn("Corrupt file table, using defaults", zap.Error(err))
package logging
