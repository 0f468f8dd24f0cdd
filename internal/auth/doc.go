// Package auth provides optional API key authentication for the HTTP
// surfaces (REST API and WebSocket hub). With mode "none" or no configured
// key the middleware is a pass-through.
package auth
