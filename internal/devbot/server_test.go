package devbot

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/shopfront-miniapp/pkg/logger"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func newTestConn(t *testing.T) *websocket.Conn {
	t.Helper()

	catalog, err := LoadCatalog("")
	require.NoError(t, err)

	server, err := NewServer(Options{
		Catalog:    catalog,
		InvoiceURL: "https://t.me/invoice/dev",
		Logger:     logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
	})
	require.NoError(t, err)

	ts := httptest.NewServer(server.Router())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, out string) map[string]any {
	t.Helper()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(out)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	var reply map[string]any
	require.NoError(t, json.Unmarshal(raw, &reply))
	return reply
}

func TestServerServesCatalog(t *testing.T) {
	conn := newTestConn(t)

	reply := roundTrip(t, conn, `{"command":"get_all_data"}`)
	require.Equal(t, "all_data", reply["type"])

	data, ok := reply["data"].(map[string]any)
	require.True(t, ok, "reply must carry a data object")
	require.Contains(t, data, "categories")
	require.Contains(t, data, "products")
}

func TestServerAnswersOrderWithPaymentURL(t *testing.T) {
	conn := newTestConn(t)

	reply := roundTrip(t, conn, `{"command":"create_order","cart":{"101_M_white":{"item":{"id":101},"qty":1}}}`)
	require.Equal(t, "payment_url", reply["type"])
	require.Equal(t, "https://t.me/invoice/dev", reply["url"])
}

func TestServerAutoConfirmsInvoice(t *testing.T) {
	conn := newTestConn(t)

	reply := roundTrip(t, conn, `{"control":"open_invoice","url":"https://t.me/invoice/dev"}`)
	require.Equal(t, "invoice_closed", reply["type"])
	require.Equal(t, "paid", reply["status"])
}

func TestServerIgnoresChromeControls(t *testing.T) {
	conn := newTestConn(t)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"control":"show_alert","text":"hi"}`)))
	// No reply expected; the next round trip must still work.
	reply := roundTrip(t, conn, `{"command":"get_all_data"}`)
	require.Equal(t, "all_data", reply["type"])
}

func TestServerRejectsBadOptions(t *testing.T) {
	log := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	_, err := NewServer(Options{InvoiceURL: "x", Logger: log})
	require.Error(t, err)

	_, err = NewServer(Options{Catalog: []byte(`{}`), Logger: log})
	require.Error(t, err)
}

func TestLoadCatalogRejectsInvalidFile(t *testing.T) {
	_, err := LoadCatalog("does-not-exist.json")
	require.Error(t, err)
}
