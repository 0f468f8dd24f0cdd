package config

import (
	"context"
	"log/slog"

	"github.com/fsnotify/fsnotify"
)

// Watch monitors the config file at path and reloads it whenever the file is
// rewritten. current seeds the comparison, so every reload can report which
// fields actually changed. onChange receives each successfully loaded Config.
//
// Only refresh.interval takes effect on a running service. The feed URL,
// auth and TLS options are baked into the fetcher's HTTP client, and the
// listen port into the server, so changes to those are logged as requiring a
// restart rather than silently ignored. A reload that fails validation keeps
// the previous configuration active and does not invoke onChange.
func Watch(ctx context.Context, path string, current *Config, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}

	slog.Info("config: watching", "path", path)

	prev := current
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Plain saves write in place; atomic saves replace the file
			// (rename + create). React to both.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			next, err := Load(path)
			if err != nil {
				slog.Error("config: reload rejected, previous settings stay active",
					"path", path, "err", err)
				continue
			}

			live, restart := diffFields(prev, next)
			if len(restart) > 0 {
				slog.Warn("config: changed fields need a restart to apply",
					"fields", restart)
			}
			if len(live) > 0 {
				slog.Info("config: applying changed fields", "fields", live)
			}
			if len(live) > 0 || len(restart) > 0 {
				prev = next
				onChange(next)
			}

			// A rename-style save leaves the watch on a dead inode; re-arm it.
			_ = watcher.Add(path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("config: watch error", "err", err)
		}
	}
}

// diffFields compares two configs and splits the changed field names into
// those the running service applies live and those bound at startup.
func diffFields(old, next *Config) (live, restart []string) {
	if old.Refresh.Interval != next.Refresh.Interval {
		live = append(live, "refresh.interval")
	}
	if old.Server.HTTPPort != next.Server.HTTPPort {
		restart = append(restart, "server.http_port")
	}
	if old.Server.Auth != next.Server.Auth {
		restart = append(restart, "server.auth")
	}
	if old.Feed.URL != next.Feed.URL {
		restart = append(restart, "feed.url")
	}
	if old.Feed.Timeout != next.Feed.Timeout {
		restart = append(restart, "feed.timeout")
	}
	if old.Feed.Auth != next.Feed.Auth {
		restart = append(restart, "feed.auth")
	}
	if old.Feed.TLS != next.Feed.TLS {
		restart = append(restart, "feed.tls")
	}
	return live, restart
}
