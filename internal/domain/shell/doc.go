/*
Package shell composes the desktop domains into one session.

A Shell owns the window manager, desktop icons, virtual file system,
power state machine, transient surfaces, and the personal data managers
(recent items, calendar, mail, tasks, settings). Boot reads persisted
state; Reload throws away everything in memory and boots again,
matching what a browser page reload does to the client.

Surfaces track the start menu, widgets panel, notification panel and
desktop context menu. Opening one panel closes the others.
*/
package shell
