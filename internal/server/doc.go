// Package server runs the control HTTP server next to the daemon reactor.
//
// Both share one context; when it is cancelled, typically by SIGTERM or
// SIGINT, the HTTP server shuts down gracefully and the daemon finalizes
// its cradles before Run returns.
package server
