// Package dict defines the dictionary domain model: entries with optional
// per-language text, the closed Language and Topic sets, the aggregate
// counters published by the feed, and case-folded text matching.
//
// The Language and Topic sets are fixed enumerations rather than open
// strings so that adding a language or topic is a compile-visible change
// (the Entry.Text switch and the feed column layout both depend on them).
package dict
