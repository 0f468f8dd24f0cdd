package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/neolatino/neolatino-api/internal/dict"
	"github.com/neolatino/neolatino-api/internal/store"
)

// Handler is the HTTP handler for all /api/v1/* endpoints.
// It reads from the dictionary store and returns JSON responses.
type Handler struct {
	store *store.Dictionary
	mux   *http.ServeMux
}

// New creates a Handler wired to the given dictionary store and registers
// all routes.
func New(st *store.Dictionary) http.Handler {
	h := &Handler{store: st, mux: http.NewServeMux()}

	h.mux.HandleFunc("/api/v1/health", h.health)
	h.mux.HandleFunc("/api/v1/entries/", h.getEntry) // subtree — extracts {id}
	h.mux.HandleFunc("/api/v1/search", h.search)
	h.mux.HandleFunc("/api/v1/refresh", h.refresh)
	h.mux.HandleFunc("/api/v1/status", h.status)
	h.mux.HandleFunc("/api/v1/languages", h.languages)
	h.mux.HandleFunc("/api/v1/topics", h.topics)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// --- route handlers ---------------------------------------------------------

// health returns GET /api/v1/health — liveness plus the current entry count.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, HealthResponse{Status: "ok", Entries: h.store.Len()})
}

// getEntry returns GET /api/v1/entries/{id} — a single entry by id.
func (h *Handler) getEntry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	raw := strings.TrimPrefix(r.URL.Path, "/api/v1/entries/")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		jsonErr(w, http.StatusBadRequest, "invalid entry id")
		return
	}

	e, err := h.store.Get(uint32(id))
	if err != nil {
		jsonErr(w, http.StatusNotFound, err.Error())
		return
	}
	jsonResp(w, http.StatusOK, toEntryResponse(e))
}

// search returns GET /api/v1/search — entries matching the query filters.
//
// Query parameters (all optional; none at all returns the full dataset):
//
//	text    — substring to match (case-folded)
//	langs   — comma-separated language codes to restrict text matching
//	sem_id  — semantic cluster id
//	topics  — comma-separated topic labels
func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	params := r.URL.Query()
	q := store.Query{Text: params.Get("text")}

	for _, raw := range splitParam(params["langs"]) {
		lang, ok := dict.ParseLanguage(raw)
		if !ok {
			jsonErr(w, http.StatusBadRequest, "unknown language "+strconv.Quote(raw))
			return
		}
		q.TextLangs = append(q.TextLangs, lang)
	}

	for _, raw := range splitParam(params["topics"]) {
		topic, ok := dict.ParseTopic(raw)
		if !ok {
			jsonErr(w, http.StatusBadRequest, "unknown topic "+strconv.Quote(raw))
			return
		}
		q.Topics = append(q.Topics, topic)
	}

	if raw := params.Get("sem_id"); raw != "" {
		sem, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			jsonErr(w, http.StatusBadRequest, "invalid sem_id")
			return
		}
		s := uint32(sem)
		q.SemID = &s
	}

	entries := h.store.Search(q)
	out := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryResponse(e))
	}
	jsonResp(w, http.StatusOK, SearchResponse{Count: len(out), Entries: out})
}

// refresh handles POST /api/v1/refresh — re-fetches the feed on demand.
// On failure the previous dataset keeps serving and 502 is returned.
func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := h.store.Refresh(r.Context()); err != nil {
		slog.Warn("on-demand refresh failed", "err", err)
		jsonErr(w, http.StatusBadGateway, err.Error())
		return
	}
	jsonResp(w, http.StatusOK, BuildStatus(h.store))
}

// status returns GET /api/v1/status — dataset summary and refresh stats.
func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, BuildStatus(h.store))
}

// languages returns GET /api/v1/languages — the supported language codes.
func (h *Handler) languages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, dict.Languages())
}

// topics returns GET /api/v1/topics — the known topic labels.
func (h *Handler) topics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, dict.Topics())
}

// --- helpers ----------------------------------------------------------------

// splitParam flattens repeated query parameters and splits each value on
// commas, dropping empty elements. ?langs=lat,ita&langs=spa yields three
// codes.
func splitParam(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}
