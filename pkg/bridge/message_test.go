package bridge

import (
	"encoding/json"
	"testing"

	pkgerrors "github.com/angelmondragon/shopfront-miniapp/pkg/errors"
)

func TestDecodeEventAllData(t *testing.T) {
	raw := []byte(`{"type":"all_data","data":{"categories":[{"id":1,"name":"Shoes"}],"products":[]}}`)

	ev, err := DecodeEvent(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Type != EventAllData {
		t.Fatalf("unexpected type %q", ev.Type)
	}

	var payload struct {
		Categories []struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"categories"`
	}
	if err := json.Unmarshal(ev.Data, &payload); err != nil {
		t.Fatalf("data should stay decodable: %v", err)
	}
	if len(payload.Categories) != 1 || payload.Categories[0].Name != "Shoes" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestDecodeEventPaymentURL(t *testing.T) {
	ev, err := DecodeEvent([]byte(`{"type":"payment_url","url":"https://t.me/invoice/1"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Type != EventPaymentURL || ev.URL != "https://t.me/invoice/1" {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestDecodeEventChrome(t *testing.T) {
	for _, raw := range []string{
		`{"type":"back_button_clicked"}`,
		`{"type":"main_button_clicked"}`,
	} {
		if _, err := DecodeEvent([]byte(raw)); err != nil {
			t.Fatalf("chrome event %s should decode: %v", raw, err)
		}
	}

	ev, err := DecodeEvent([]byte(`{"type":"invoice_closed","status":"paid"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Status != "paid" {
		t.Fatalf("unexpected status %q", ev.Status)
	}
}

func TestDecodeEventMalformed(t *testing.T) {
	cases := []string{
		`not json`,
		`{"type":"all_data"}`,
		`{"type":"payment_url"}`,
		`{"type":"mystery"}`,
	}
	for _, raw := range cases {
		_, err := DecodeEvent([]byte(raw))
		if err == nil {
			t.Fatalf("expected error for %s", raw)
		}
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeMalformedResponse {
			t.Fatalf("expected MALFORMED_RESPONSE for %s, got %v", raw, err)
		}
	}
}

func TestOutboundWireShape(t *testing.T) {
	order := NewCreateOrder(map[string]int{"1_--_--": 2})
	raw, err := json.Marshal(order)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"command":"create_order","cart":{"1_--_--":2}}`
	if string(raw) != want {
		t.Fatalf("unexpected wire shape %s", raw)
	}

	raw, err = json.Marshal(NewGetAllData())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"command":"get_all_data"}` {
		t.Fatalf("unexpected wire shape %s", raw)
	}
}
