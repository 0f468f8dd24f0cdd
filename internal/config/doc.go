// Package config loads the service configuration from a YAML file.
//
// Config sections:
//   - server.http_port   — port for the REST API and WebSocket hub (default 8080)
//   - server.auth        — API-key auth for incoming requests (mode, key_env, header)
//   - feed.url           — URL of the published dictionary CSV feed (required)
//   - feed.timeout       — per-fetch timeout (default 30s)
//   - feed.auth / feed.tls — outbound auth and TLS options for the feed host
//   - refresh.interval   — background refresh period (default 6h)
//
// Load(path) applies defaults before unmarshalling, then validates.
// Watch(ctx, path, current, onChange) hot-reloads the file via fsnotify,
// reporting which fields changed and which of those need a restart; an
// invalid file keeps the previous configuration active.
//
// Secrets (API keys, tokens, passwords) are never stored in the file itself;
// the file names environment variables that hold them.
package config
