// Package http exposes the daemon control surface over HTTP.
//
// Routes map one to one onto [daemon.Control] operations. Requests pass
// through trace-id, access-log and optional bearer-token middleware before
// reaching a handler; handler errors are mapped onto status codes by
// statusFromError and written as a JSON {"error": "..."} body.
package http
