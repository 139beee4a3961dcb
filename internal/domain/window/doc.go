// Package window implements the desktop window manager.
//
// Windows live in an ordered slice; order doubles as stacking order and
// as the focus fallback when the active window closes. At most one window
// carries IsActive at a time, and every Open makes the new window that one.
//
// Operations on an unknown id are silent no-ops that return false.
package window
