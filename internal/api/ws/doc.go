// Package ws pushes shell events to connected renderers.
//
// The Hub is the shell's types.Notifier: every state change (windows,
// icons, files, power, surfaces, personal data) is broadcast as a JSON
// event, plus a clock tick so the taskbar clock needs no timer of its own.
//
// Message Types (Client → Server):
//   - ping: Keep-alive ping
//
// Message Types (Server → Client):
//   - system: Greeting sent on connect
//   - pong: Reply to ping
//   - error: Unknown or malformed message
//   - windows, icons, files, power, surfaces, recent, calendar, mail,
//     tasks, settings, reload, clock: shell events
//
// Example Usage:
//
//	hub := ws.NewHub(origins, logger).WithMetrics(metrics)
//	go hub.Run(ctx, time.Second)
//	router.GET("/stream", hub.HandleConnection)
package ws
