// Package types provides shared data structures for the WebDesk backend.
//
// Only types that cross package boundaries live here: screen geometry
// shared by windows and desktop icons, and the Event envelope the shell
// publishes to WebSocket subscribers, and window Content descriptors. Domain records (windows, icons,
// file system items) stay in their own packages.
package types
