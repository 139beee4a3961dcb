// Package http exposes the shell over a JSON API.
//
// Every response carries a "success" flag. Failures add an "error" string
// and use 400 for bad input, 404 for unknown ids, 409 for operations the
// current state refuses and 500 for storage failures.
//
// Routes are grouped per domain under /api: windows, icons, files, power,
// surfaces, recent, calendar, mail, tasks, settings and apps.
package http
