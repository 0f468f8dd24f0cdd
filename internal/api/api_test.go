package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/neolatino/neolatino-api/internal/api"
	"github.com/neolatino/neolatino-api/internal/dict"
	"github.com/neolatino/neolatino-api/internal/feed"
	"github.com/neolatino/neolatino-api/internal/store"
)

// --- test helpers -----------------------------------------------------------

const (
	titleRow    = "id,sem_id,category,topic,sub_topic,sub_sub_topic,essential,basic,lat,iro,por,spa,cat,occ,fra,srd,ita,rom,eng,fol,frk,sla"
	counterRow  = "300,120,,,,,,,1,2,3,4,5,6,7,8,9,10,11,12,13,14"
	reservedRow = ",,,,,,,,,,,,,,,,,,,,,"
)

func row(id, semID, topic, lat string) string {
	cells := []string{id, semID, "", topic, "", "", "", "", lat}
	for i := 1; i < dict.NumLanguages(); i++ {
		cells = append(cells, "")
	}
	return strings.Join(cells, ",")
}

func feedCSV(entryRows ...string) string {
	rows := []string{titleRow, counterRow, reservedRow}
	rows = append(rows, entryRows...)
	return strings.Join(rows, "\n") + "\n"
}

// swappableFetcher serves whatever body (or error) was last set.
type swappableFetcher struct {
	mu   sync.Mutex
	body string
	err  error
}

func (f *swappableFetcher) Fetch(context.Context) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return []byte(f.body), f.err
}

func (f *swappableFetcher) set(body string, err error) {
	f.mu.Lock()
	f.body, f.err = body, err
	f.mu.Unlock()
}

func newStore(t *testing.T, body string) (*store.Dictionary, *swappableFetcher) {
	t.Helper()
	f := &swappableFetcher{body: body}
	st, err := store.New(context.Background(), f)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	return st, f
}

func testFeed() string {
	return feedCSV(
		row("1", "10", "food", "caseus"),
		row("2", "10", "nature", "arbor"),
		row("3", "", "food", "panis"),
	)
}

func do(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, path, nil))
	return rr
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	return do(t, h, http.MethodGet, path)
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("decode JSON: %v (body: %s)", err, rr.Body.String())
	}
}

// --- /api/v1/health ---------------------------------------------------------

func TestHealth(t *testing.T) {
	st, _ := newStore(t, testFeed())
	rr := get(t, api.New(st), "/api/v1/health")

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	var resp api.HealthResponse
	decode(t, rr, &resp)
	if resp.Status != "ok" || resp.Entries != 3 {
		t.Errorf("got %+v, want status=ok entries=3", resp)
	}
}

// --- /api/v1/entries/{id} ---------------------------------------------------

func TestGetEntry(t *testing.T) {
	st, _ := newStore(t, testFeed())
	rr := get(t, api.New(st), "/api/v1/entries/1")

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (body: %s)", rr.Code, rr.Body.String())
	}
	var resp api.EntryResponse
	decode(t, rr, &resp)
	if resp.ID != 1 {
		t.Errorf("id: got %d, want 1", resp.ID)
	}
	if resp.SemID == nil || *resp.SemID != 10 {
		t.Errorf("sem_id: got %v, want 10", resp.SemID)
	}
	if resp.Topic != "food" {
		t.Errorf("topic: got %q, want food", resp.Topic)
	}
	if resp.Texts[dict.LangLat] != "caseus" {
		t.Errorf("texts.lat: got %q, want caseus", resp.Texts[dict.LangLat])
	}
	if _, ok := resp.Texts[dict.LangIta]; ok {
		t.Error("texts.ita: present, want absent")
	}
}

func TestGetEntry_NotFound(t *testing.T) {
	st, _ := newStore(t, testFeed())
	if rr := get(t, api.New(st), "/api/v1/entries/999"); rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rr.Code)
	}
}

func TestGetEntry_BadID(t *testing.T) {
	st, _ := newStore(t, testFeed())
	if rr := get(t, api.New(st), "/api/v1/entries/abc"); rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rr.Code)
	}
}

func TestGetEntry_MethodNotAllowed(t *testing.T) {
	st, _ := newStore(t, testFeed())
	if rr := do(t, api.New(st), http.MethodDelete, "/api/v1/entries/1"); rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("status: got %d, want 405", rr.Code)
	}
}

// --- /api/v1/search ---------------------------------------------------------

func searchIDs(t *testing.T, h http.Handler, query string) map[uint32]bool {
	t.Helper()
	rr := get(t, h, "/api/v1/search"+query)
	if rr.Code != http.StatusOK {
		t.Fatalf("search %q: got %d, want 200 (body: %s)", query, rr.Code, rr.Body.String())
	}
	var resp api.SearchResponse
	decode(t, rr, &resp)
	if resp.Count != len(resp.Entries) {
		t.Errorf("count %d does not match %d entries", resp.Count, len(resp.Entries))
	}
	out := make(map[uint32]bool, len(resp.Entries))
	for _, e := range resp.Entries {
		out[e.ID] = true
	}
	return out
}

func TestSearch_NoFilters(t *testing.T) {
	st, _ := newStore(t, testFeed())
	got := searchIDs(t, api.New(st), "")
	if len(got) != 3 {
		t.Errorf("got %v, want all 3 entries", got)
	}
}

func TestSearch_ByTopic(t *testing.T) {
	st, _ := newStore(t, testFeed())
	got := searchIDs(t, api.New(st), "?topics=food")
	if len(got) != 2 || !got[1] || !got[3] {
		t.Errorf("topics=food: got %v, want {1,3}", got)
	}
}

func TestSearch_BySemID(t *testing.T) {
	st, _ := newStore(t, testFeed())
	got := searchIDs(t, api.New(st), "?sem_id=10")
	if len(got) != 2 || !got[1] || !got[2] {
		t.Errorf("sem_id=10: got %v, want {1,2}", got)
	}
}

func TestSearch_ByText(t *testing.T) {
	st, _ := newStore(t, testFeed())
	got := searchIDs(t, api.New(st), "?text=ARBOR&langs=lat")
	if len(got) != 1 || !got[2] {
		t.Errorf("text=ARBOR: got %v, want {2}", got)
	}
}

func TestSearch_UnknownTopic(t *testing.T) {
	st, _ := newStore(t, testFeed())
	if rr := get(t, api.New(st), "/api/v1/search?topics=astrology"); rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rr.Code)
	}
}

func TestSearch_UnknownLanguage(t *testing.T) {
	st, _ := newStore(t, testFeed())
	if rr := get(t, api.New(st), "/api/v1/search?text=x&langs=klingon"); rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rr.Code)
	}
}

func TestSearch_BadSemID(t *testing.T) {
	st, _ := newStore(t, testFeed())
	if rr := get(t, api.New(st), "/api/v1/search?sem_id=banana"); rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rr.Code)
	}
}

// --- /api/v1/refresh --------------------------------------------------------

func TestRefresh_Success(t *testing.T) {
	st, f := newStore(t, testFeed())
	h := api.New(st)

	f.set(feedCSV(row("42", "", "", "novus")), nil)
	rr := do(t, h, http.MethodPost, "/api/v1/refresh")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (body: %s)", rr.Code, rr.Body.String())
	}

	var resp api.StatusResponse
	decode(t, rr, &resp)
	if resp.Entries != 1 {
		t.Errorf("entries after refresh: got %d, want 1", resp.Entries)
	}
	if rr := get(t, h, "/api/v1/entries/42"); rr.Code != http.StatusOK {
		t.Errorf("new entry not served after refresh: %d", rr.Code)
	}
}

func TestRefresh_FailureKeepsServing(t *testing.T) {
	st, f := newStore(t, testFeed())
	h := api.New(st)

	f.set("", fmt.Errorf("%w: upstream down", feed.ErrFetchFailed))
	if rr := do(t, h, http.MethodPost, "/api/v1/refresh"); rr.Code != http.StatusBadGateway {
		t.Fatalf("status: got %d, want 502", rr.Code)
	}

	// Previous dataset still fully served.
	if got := searchIDs(t, h, ""); len(got) != 3 {
		t.Errorf("after failed refresh: got %v, want all 3 entries", got)
	}
}

func TestRefresh_GetNotAllowed(t *testing.T) {
	st, _ := newStore(t, testFeed())
	if rr := get(t, api.New(st), "/api/v1/refresh"); rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("status: got %d, want 405", rr.Code)
	}
}

// --- /api/v1/status ---------------------------------------------------------

func TestStatus(t *testing.T) {
	st, _ := newStore(t, testFeed())
	rr := get(t, api.New(st), "/api/v1/status")

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	var resp api.StatusResponse
	decode(t, rr, &resp)
	if resp.Entries != 3 {
		t.Errorf("entries: got %d, want 3", resp.Entries)
	}
	if resp.Counters.Total != 300 {
		t.Errorf("counters.total: got %d, want 300 (from the feed, not re-derived)", resp.Counters.Total)
	}
	if resp.Refreshes != 1 {
		t.Errorf("refreshes: got %d, want 1", resp.Refreshes)
	}
}

// --- /api/v1/languages, /api/v1/topics --------------------------------------

func TestLanguages(t *testing.T) {
	st, _ := newStore(t, testFeed())
	rr := get(t, api.New(st), "/api/v1/languages")

	var langs []string
	decode(t, rr, &langs)
	if len(langs) != 14 || langs[0] != "lat" {
		t.Errorf("languages: got %v", langs)
	}
}

func TestTopics(t *testing.T) {
	st, _ := newStore(t, testFeed())
	rr := get(t, api.New(st), "/api/v1/topics")

	var topics []string
	decode(t, rr, &topics)
	if len(topics) == 0 {
		t.Error("topics: got empty list")
	}
}

// --- /metrics ---------------------------------------------------------------

func TestMetrics(t *testing.T) {
	st, _ := newStore(t, testFeed())
	rr := get(t, api.Metrics(st), "/metrics")

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{
		"neolatino_dictionary_entries 3",
		"neolatino_dictionary_refreshes_total 1",
		"neolatino_feed_total_count 300",
		`neolatino_feed_language_count{language="lat"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics body missing %q\n%s", want, body)
		}
	}
}
