// Package ws implements the WebSocket hub for the dictionary service.
//
// Hub manages a set of connected clients and pushes the dictionary status
// document to all of them — on a periodic tick, and immediately after a
// successful refresh (Hub.Broadcast).
//
// New(store, interval) creates a Hub.
// Hub.Run(ctx) starts the broadcast ticker — blocks until ctx is cancelled,
// then closes all active connections.
// Hub.ServeHTTP upgrades an HTTP connection to WebSocket and sends the
// current status immediately on connect.
//
// Message format sent to clients:
//
//	{
//	  "event": "status",
//	  "data":  { /* same schema as GET /api/v1/status */ }
//	}
//
// The upgrader accepts all origins. Apply CORS restrictions at the reverse
// proxy level. The hub is mounted at /ws/status by the server.
package ws
