// Package store holds the in-memory dictionary behind a multiple-readers /
// single-writer handle. It provides the three query operations (Get, Search,
// Status) plus Refresh, which re-fetches the feed and atomically replaces
// the whole dataset. A failed refresh leaves the last-known-good dataset
// serving; there is no partial update and no terminal state — the store
// lives for the process lifetime.
package store
