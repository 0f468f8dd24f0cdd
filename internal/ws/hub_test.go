package ws_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/neolatino/neolatino-api/internal/dict"
	"github.com/neolatino/neolatino-api/internal/store"
	wsHub "github.com/neolatino/neolatino-api/internal/ws"
)

const testInterval = 20 * time.Millisecond

// --- helpers ----------------------------------------------------------------

type fetcherFunc func(ctx context.Context) ([]byte, error)

func (f fetcherFunc) Fetch(ctx context.Context) ([]byte, error) { return f(ctx) }

func feedCSV(entryRows ...string) string {
	titles := "id,sem_id,category,topic,sub_topic,sub_sub_topic,essential,basic,lat,iro,por,spa,cat,occ,fra,srd,ita,rom,eng,fol,frk,sla"
	counters := "100,50,,,,,,,1,2,3,4,5,6,7,8,9,10,11,12,13,14"
	reserved := ",,,,,,,,,,,,,,,,,,,,,"
	rows := append([]string{titles, counters, reserved}, entryRows...)
	return strings.Join(rows, "\n") + "\n"
}

func entryRow(id string) string {
	cells := []string{id, "", "", "", "", "", "", "", "verbum"}
	for i := 1; i < dict.NumLanguages(); i++ {
		cells = append(cells, "")
	}
	return strings.Join(cells, ",")
}

func newStore(t *testing.T, entryIDs ...string) *store.Dictionary {
	t.Helper()
	rows := make([]string, 0, len(entryIDs))
	for _, id := range entryIDs {
		rows = append(rows, entryRow(id))
	}
	body := feedCSV(rows...)
	st, err := store.New(context.Background(), fetcherFunc(func(context.Context) ([]byte, error) {
		return []byte(body), nil
	}))
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	return st
}

// startHub starts a test HTTP server with the hub as its handler.
// The hub's Run loop is started with a cancellable context.
func startHub(t *testing.T, st *store.Dictionary) (wsURL string, hub *wsHub.Hub) {
	t.Helper()

	hub = wsHub.New(st, testInterval)
	ctx, cancel := context.WithCancel(context.Background())

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeHTTP))
	go hub.Run(ctx)

	t.Cleanup(func() {
		cancel()
		srv.Close()
	})

	return "ws" + strings.TrimPrefix(srv.URL, "http"), hub
}

// dial connects a WebSocket client to wsURL and returns the connection.
func dial(t *testing.T, wsURL string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", wsURL, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readMessage reads one text message from conn with a short deadline.
func readMessage(t *testing.T, conn *websocket.Conn) []byte {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	return msg
}

// --- tests ------------------------------------------------------------------

func TestHub_Connect_ReceivesImmediateStatus(t *testing.T) {
	st := newStore(t, "1", "2")
	wsURL, _ := startHub(t, st)

	conn := dial(t, wsURL)
	msg := readMessage(t, conn)

	var m wsHub.Message
	if err := json.Unmarshal(msg, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m.Event != "status" {
		t.Errorf("event: got %q, want status", m.Event)
	}
	if m.Data.Entries != 2 {
		t.Errorf("data.entries: got %d, want 2", m.Data.Entries)
	}
	if m.Data.Counters.Total != 100 {
		t.Errorf("data.counters.total: got %d, want 100", m.Data.Counters.Total)
	}
}

func TestHub_TickerBroadcasts(t *testing.T) {
	st := newStore(t, "1")
	wsURL, _ := startHub(t, st)

	conn := dial(t, wsURL)

	// Immediate message plus at least one ticker broadcast.
	readMessage(t, conn)
	msg := readMessage(t, conn)

	var m wsHub.Message
	if err := json.Unmarshal(msg, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m.Event != "status" {
		t.Errorf("event: got %q, want status", m.Event)
	}
}

func TestHub_CountTracksClients(t *testing.T) {
	st := newStore(t, "1")
	wsURL, hub := startHub(t, st)

	if hub.Count() != 0 {
		t.Fatalf("Count before connect: got %d, want 0", hub.Count())
	}

	conn := dial(t, wsURL)
	readMessage(t, conn) // ensure the server side has registered

	if hub.Count() != 1 {
		t.Errorf("Count after connect: got %d, want 1", hub.Count())
	}

	conn.Close()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Count() != 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if hub.Count() != 0 {
		t.Errorf("Count after disconnect: got %d, want 0", hub.Count())
	}
}

func TestHub_BroadcastOnDemand(t *testing.T) {
	st := newStore(t, "1")

	// Long interval — any message beyond the connect push must come from
	// the explicit Broadcast call.
	hub := wsHub.New(st, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeHTTP))
	go hub.Run(ctx)
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})

	conn := dial(t, "ws"+strings.TrimPrefix(srv.URL, "http"))
	readMessage(t, conn) // connect push

	hub.Broadcast()
	msg := readMessage(t, conn)

	var m wsHub.Message
	if err := json.Unmarshal(msg, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m.Event != "status" {
		t.Errorf("event: got %q, want status", m.Event)
	}
}
