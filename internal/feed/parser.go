package feed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/neolatino/neolatino-api/internal/dict"
)

// Parse error kinds. Both abort the whole parse — a feed without a readable
// counter row is considered unusable.
var (
	// ErrMissingHeaders means the counter row is absent or a required
	// counter column is missing.
	ErrMissingHeaders = errors.New("feed: missing counter headers")

	// ErrMalformedNumber means a counter cell could not be parsed as a
	// non-negative integer after stripping thousands separators.
	ErrMalformedNumber = errors.New("feed: malformed counter number")
)

// Fixed column layout of the feed. Entry rows and the counter row share the
// same grid: languages occupy one column each starting at colFirstLang, in
// dict.Languages() order.
const (
	colID        = 0
	colSemID     = 1
	colCategory  = 2
	colTopic     = 3
	colSubTopic  = 4
	colSubSub    = 5
	colEssential = 6
	colBasic     = 7
	colFirstLang = 8

	counterTotal = 0
	counterSem   = 1
)

// numColumns is the minimum number of cells an entry row must have.
func numColumns() int { return colFirstLang + dict.NumLanguages() }

// Parse reads the raw feed and returns the entry mapping and counters.
//
// Feed layout: row 1 is a column-title row (skipped), row 2 holds the
// aggregate counters, row 3 is reserved (skipped), every later row is an
// entry record. Entry rows that fail structural parsing are dropped
// silently so that one bad row never aborts the whole feed; duplicate ids
// keep the last row seen.
func Parse(r io.Reader) (map[uint32]dict.Entry, dict.Counters, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // rows are length-checked per record below

	// Title row.
	if _, err := reader.Read(); err != nil {
		return nil, dict.Counters{}, fmt.Errorf("%w: empty feed", ErrMissingHeaders)
	}

	// Counter row.
	row, err := reader.Read()
	if err != nil {
		return nil, dict.Counters{}, fmt.Errorf("%w: no counter row", ErrMissingHeaders)
	}
	counters, err := parseCounters(row)
	if err != nil {
		return nil, dict.Counters{}, err
	}

	// Reserved row. Its absence just means the feed has no entries.
	if _, err := reader.Read(); err != nil {
		return map[uint32]dict.Entry{}, counters, nil
	}

	entries := make(map[uint32]dict.Entry)
	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Structurally unreadable record (bare quotes etc.) — drop it.
			skipped++
			continue
		}
		e, ok := parseEntry(row)
		if !ok {
			skipped++
			continue
		}
		entries[e.ID] = e
	}

	if skipped > 0 {
		slog.Debug("feed: dropped malformed rows", "count", skipped)
	}
	return entries, counters, nil
}

// parseCounters reads the fixed counter columns: total, semantic clusters,
// and one count per language in feed column order.
func parseCounters(row []string) (dict.Counters, error) {
	var c dict.Counters

	total, err := readCount(row, counterTotal)
	if err != nil {
		return dict.Counters{}, err
	}
	sem, err := readCount(row, counterSem)
	if err != nil {
		return dict.Counters{}, err
	}
	c.Total, c.Sem = total, sem

	for i, lang := range dict.Languages() {
		n, err := readCount(row, colFirstLang+i)
		if err != nil {
			return dict.Counters{}, err
		}
		c.SetByLanguage(lang, n)
	}
	return c, nil
}

// readCount parses the counter cell at index. The feed formats counts with
// "." thousands separators ("100.000" means 100000), which are stripped
// before parsing.
func readCount(row []string, index int) (uint32, error) {
	if index >= len(row) {
		return 0, fmt.Errorf("%w: counter column %d absent", ErrMissingHeaders, index)
	}
	cell := strings.ReplaceAll(row[index], ".", "")
	n, err := strconv.ParseUint(cell, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: column %d value %q", ErrMalformedNumber, index, row[index])
	}
	return uint32(n), nil
}

// parseEntry converts one entry row into a dict.Entry. It returns ok=false
// for rows that fail structural parsing: too few columns, a non-numeric id,
// or a non-numeric non-empty sem_id. An unknown topic label is tolerated —
// the entry keeps no topic and the rest of the row is still used. Empty
// cells mean the field is absent.
func parseEntry(row []string) (dict.Entry, bool) {
	if len(row) < numColumns() {
		return dict.Entry{}, false
	}

	id, err := strconv.ParseUint(row[colID], 10, 32)
	if err != nil {
		return dict.Entry{}, false
	}
	e := dict.Entry{ID: uint32(id)}

	if cell := row[colSemID]; cell != "" {
		sem, err := strconv.ParseUint(cell, 10, 32)
		if err != nil {
			return dict.Entry{}, false
		}
		s := uint32(sem)
		e.SemID = &s
	}

	// category, sub_topic and sub_sub_topic columns are present in the feed
	// but not carried on entries.
	if t, ok := dict.ParseTopic(row[colTopic]); ok {
		e.Topic = &t
	}

	e.Essential = row[colEssential] == "e"
	e.Basic = row[colBasic] == "b"

	for i, lang := range dict.Languages() {
		if cell := row[colFirstLang+i]; cell != "" {
			e.SetText(lang, cell)
		}
	}
	return e, true
}
