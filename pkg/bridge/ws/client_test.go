package ws

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/shopfront-miniapp/pkg/bridge"
	"github.com/angelmondragon/shopfront-miniapp/pkg/enums"
	"github.com/angelmondragon/shopfront-miniapp/pkg/logger"
	"github.com/gorilla/websocket"
)

type testHost struct {
	t        *testing.T
	server   *httptest.Server
	upgrader websocket.Upgrader
	conns    chan *websocket.Conn
}

func newTestHost(t *testing.T) *testHost {
	t.Helper()
	h := &testHost{t: t, conns: make(chan *websocket.Conn, 1)}
	h.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		h.conns <- conn
	}))
	t.Cleanup(h.server.Close)
	return h
}

func (h *testHost) url() string {
	return "ws" + strings.TrimPrefix(h.server.URL, "http")
}

func (h *testHost) conn() *websocket.Conn {
	select {
	case c := <-h.conns:
		return c
	case <-time.After(2 * time.Second):
		h.t.Fatal("no connection arrived")
		return nil
	}
}

func newConnectedClient(t *testing.T, host *testHost) *Client {
	t.Helper()
	client, err := NewClient(Options{
		URL:    host.url(),
		Logger: logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if err := client.Connect(context.Background()); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(client.Close)
	return client
}

func TestClientReceivesAndDispatchesEvents(t *testing.T) {
	host := newTestHost(t)
	client := newConnectedClient(t, host)
	conn := host.conn()

	payload := `{"type":"all_data","data":{"categories":[],"products":[]}}`
	if err := conn.WriteMessage(websocket.TextMessage, []byte(payload)); err != nil {
		t.Fatalf("host write: %v", err)
	}

	var ev bridge.Event
	select {
	case ev = <-client.Events():
	case <-time.After(2 * time.Second):
		t.Fatal("no event queued")
	}
	if ev.Type != bridge.EventAllData {
		t.Fatalf("unexpected event type %q", ev.Type)
	}

	var got []bridge.Event
	off := client.On(bridge.EventAllData, func(ev bridge.Event) {
		got = append(got, ev)
	})
	client.Dispatch(ev)
	if len(got) != 1 {
		t.Fatalf("expected 1 delivery, got %d", len(got))
	}

	off()
	client.Dispatch(ev)
	if len(got) != 1 {
		t.Fatalf("unsubscribed handler still ran")
	}
}

func TestClientDropsMalformedFrames(t *testing.T) {
	host := newTestHost(t)
	client := newConnectedClient(t, host)
	conn := host.conn()

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`garbage`)); err != nil {
		t.Fatalf("host write: %v", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"payment_url","url":"https://pay"}`)); err != nil {
		t.Fatalf("host write: %v", err)
	}

	select {
	case ev := <-client.Events():
		if ev.Type != bridge.EventPaymentURL {
			t.Fatalf("malformed frame should have been dropped, got %q", ev.Type)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("valid event never arrived")
	}
}

func TestClientSendAndControlFrames(t *testing.T) {
	host := newTestHost(t)
	client := newConnectedClient(t, host)
	conn := host.conn()

	if err := client.Send(context.Background(), bridge.NewGetAllData()); err != nil {
		t.Fatalf("Send: %v", err)
	}
	client.ShowAlert("hello")

	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("host read: %v", err)
	}
	if string(raw) != `{"command":"get_all_data"}` {
		t.Fatalf("unexpected command frame %s", raw)
	}

	_, raw, err = conn.ReadMessage()
	if err != nil {
		t.Fatalf("host read: %v", err)
	}
	var control map[string]any
	if err := json.Unmarshal(raw, &control); err != nil {
		t.Fatalf("control frame not json: %v", err)
	}
	if control["control"] != "show_alert" || control["text"] != "hello" {
		t.Fatalf("unexpected control frame %s", raw)
	}
}

func TestClientInvoiceCallback(t *testing.T) {
	host := newTestHost(t)
	client := newConnectedClient(t, host)
	host.conn()

	var status enums.InvoiceStatus
	client.OpenInvoice("https://pay", func(s enums.InvoiceStatus) { status = s })

	client.Dispatch(bridge.Event{Type: bridge.EventInvoiceClosed, Status: "paid"})
	if status != enums.InvoicePaid {
		t.Fatalf("expected paid callback, got %q", status)
	}

	// Callback is single-use.
	status = ""
	client.Dispatch(bridge.Event{Type: bridge.EventInvoiceClosed, Status: "paid"})
	if status != "" {
		t.Fatalf("callback fired twice")
	}
}
