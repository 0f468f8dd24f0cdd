package api

import (
	"time"

	"github.com/neolatino/neolatino-api/internal/dict"
	"github.com/neolatino/neolatino-api/internal/store"
)

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Entries int    `json:"entries"`
}

// EntryResponse is one dictionary entry in GET /api/v1/entries/{id} or
// GET /api/v1/search. Texts holds only the languages present on the entry.
type EntryResponse struct {
	ID        uint32                   `json:"id"`
	SemID     *uint32                  `json:"sem_id,omitempty"`
	Topic     string                   `json:"topic,omitempty"`
	Essential bool                     `json:"essential"`
	Basic     bool                     `json:"basic"`
	Texts     map[dict.Language]string `json:"texts"`
}

// SearchResponse is the payload for GET /api/v1/search.
type SearchResponse struct {
	Count   int             `json:"count"`
	Entries []EntryResponse `json:"entries"`
}

// StatusResponse is the payload for GET /api/v1/status and the WebSocket
// status broadcast.
type StatusResponse struct {
	Entries         int           `json:"entries"`
	Counters        dict.Counters `json:"counters"`
	LastUpdate      string        `json:"last_update"` // RFC3339
	Refreshes       uint64        `json:"refreshes"`
	RefreshFailures uint64        `json:"refresh_failures"`
}

// errorResponse is a generic JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}

// toEntryResponse maps a dict.Entry to its JSON representation.
func toEntryResponse(e dict.Entry) EntryResponse {
	texts := make(map[dict.Language]string)
	for _, lang := range dict.Languages() {
		if s := e.Text(lang); s != nil {
			texts[lang] = *s
		}
	}
	resp := EntryResponse{
		ID:        e.ID,
		SemID:     e.SemID,
		Essential: e.Essential,
		Basic:     e.Basic,
		Texts:     texts,
	}
	if e.Topic != nil {
		resp.Topic = string(*e.Topic)
	}
	return resp
}

// BuildStatus maps the store's current state to a StatusResponse. Shared
// with the WebSocket hub, which broadcasts the same document.
func BuildStatus(st *store.Dictionary) StatusResponse {
	s := st.Status()
	return StatusResponse{
		Entries:         s.Entries,
		Counters:        s.Counters,
		LastUpdate:      s.LastUpdate.UTC().Format(time.RFC3339),
		Refreshes:       s.Refreshes,
		RefreshFailures: s.Failures,
	}
}
