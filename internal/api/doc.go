// Package api implements the HTTP REST API for the dictionary service.
//
// New(store) returns an http.Handler that serves:
//
//	GET  /api/v1/health        — liveness and current entry count
//	GET  /api/v1/entries/{id}  — single entry; 404 if unknown
//	GET  /api/v1/search        — filtered entries (text, langs, sem_id, topics)
//	POST /api/v1/refresh       — on-demand feed refresh; 502 on failure
//	GET  /api/v1/status        — dataset summary and refresh stats
//	GET  /api/v1/languages     — supported language codes
//	GET  /api/v1/topics        — known topic labels
//
// Metrics(store) returns the GET /metrics handler (Prometheus text format).
//
// All endpoints respond with Content-Type: application/json (except
// /metrics) and return 405 for unsupported methods. JSON types are defined
// in types.go. No external HTTP framework is used.
package api
