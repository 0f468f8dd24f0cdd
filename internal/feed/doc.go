// Package feed fetches and parses the published dictionary feed.
//
// The feed is a CSV grid with a fixed column layout: id, sem_id, category,
// topic, sub_topic, sub_sub_topic, essential_flag, basic_flag, then one text
// column per supported language. Row 1 carries column titles, row 2 the
// aggregate counters, row 3 is reserved; entry records start at row 4.
//
// Parse is deliberately tolerant of individual entry rows: a malformed row
// is dropped and the rest of the feed is still used. Only a missing or
// unreadable counter row (ErrMissingHeaders, ErrMalformedNumber) aborts the
// parse. This trades strictness for availability of the dataset.
//
// Fetching is a separate concern behind the Fetcher interface;
// NewHTTPFetcher builds the production implementation with per-host auth
// and TLS options from the configuration.
package feed
