package store

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/neolatino/neolatino-api/internal/dict"
	"github.com/neolatino/neolatino-api/internal/feed"
)

// NotFoundError is returned by Get for an id with no entry.
type NotFoundError struct {
	ID uint32
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("entry %d not found", e.ID)
}

// Query is one search request. Zero-value fields mean "no filter": an empty
// Text skips text matching, a nil SemID skips the semantic filter, empty
// Topics passes every entry, and empty TextLangs means every language is
// searched. A zero Query returns the whole dataset.
type Query struct {
	Text      string
	TextLangs []dict.Language
	SemID     *uint32
	Topics    []dict.Topic
}

// Status is a point-in-time summary of the dictionary's state.
type Status struct {
	Entries    int
	Counters   dict.Counters
	LastUpdate time.Time
	Refreshes  uint64
	Failures   uint64
}

// Dictionary is a thread-safe in-memory dictionary, rebuilt from the feed on
// every refresh. Readers (Get, Search, Status) may run concurrently with
// each other and with the fetch-and-parse phase of a Refresh; only the final
// dataset swap takes the write lock, so a reader always observes either the
// fully-old or fully-new dataset.
type Dictionary struct {
	fetcher feed.Fetcher

	mu         sync.RWMutex
	entries    map[uint32]dict.Entry
	counters   dict.Counters
	lastUpdate time.Time
	refreshes  uint64
	failures   uint64

	now func() time.Time // injectable for deterministic tests
}

// New builds a Dictionary and populates it synchronously from the feed.
// Construction fails — yielding no store — if the initial fetch or parse
// fails, propagating the underlying error kind.
func New(ctx context.Context, fetcher feed.Fetcher) (*Dictionary, error) {
	d := &Dictionary{
		fetcher: fetcher,
		entries: map[uint32]dict.Entry{},
		now:     time.Now,
	}
	if err := d.Refresh(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

// Refresh re-fetches and re-parses the feed and, only on full success,
// atomically replaces the entry mapping, counters and last-update timestamp
// as a single unit. On any failure the previous dataset is left completely
// unchanged and the error is surfaced to the caller.
//
// The fetch-and-parse phase runs without holding the lock — readers proceed
// while a refresh is in flight.
func (d *Dictionary) Refresh(ctx context.Context) error {
	start := d.now()

	raw, err := d.fetcher.Fetch(ctx)
	if err != nil {
		d.recordFailure()
		return err
	}

	entries, counters, err := feed.Parse(bytes.NewReader(raw))
	if err != nil {
		d.recordFailure()
		return err
	}

	d.mu.Lock()
	d.entries = entries
	d.counters = counters
	d.lastUpdate = d.now()
	d.refreshes++
	d.mu.Unlock()

	slog.Info("dictionary refreshed",
		"entries", len(entries),
		"total_counter", counters.Total,
		"took", time.Since(start),
	)
	return nil
}

func (d *Dictionary) recordFailure() {
	d.mu.Lock()
	d.failures++
	d.mu.Unlock()
}

// Get returns a copy of the entry with the given id, or NotFoundError.
func (d *Dictionary) Get(id uint32) (dict.Entry, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	e, ok := d.entries[id]
	if !ok {
		return dict.Entry{}, NotFoundError{ID: id}
	}
	return e, nil
}

// Search returns copies of the entries satisfying every filter in q. Result
// order follows map iteration and is not guaranteed. The result is always a
// self-consistent snapshot, even if a refresh completes concurrently.
func (d *Dictionary) Search(q Query) []dict.Entry {
	var matcher *dict.Matcher
	if q.Text != "" {
		matcher = dict.NewMatcher(q.Text, q.TextLangs)
	}

	topics := make(map[dict.Topic]struct{}, len(q.Topics))
	for _, t := range q.Topics {
		topics[t] = struct{}{}
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]dict.Entry, 0)
	for _, e := range d.entries {
		if q.SemID != nil && (e.SemID == nil || *e.SemID != *q.SemID) {
			continue
		}
		if len(topics) > 0 {
			if e.Topic == nil {
				continue
			}
			if _, ok := topics[*e.Topic]; !ok {
				continue
			}
		}
		if matcher != nil && !matcher.Matches(&e) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Status returns the current dataset summary.
func (d *Dictionary) Status() Status {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return Status{
		Entries:    len(d.entries),
		Counters:   d.counters,
		LastUpdate: d.lastUpdate,
		Refreshes:  d.refreshes,
		Failures:   d.failures,
	}
}

// Len returns the number of entries currently held.
func (d *Dictionary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}
