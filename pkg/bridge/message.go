package bridge

import (
	"encoding/json"

	pkgerrors "github.com/angelmondragon/shopfront-miniapp/pkg/errors"
	"github.com/google/uuid"
)

// Command names accepted by the backend bot.
const (
	CommandGetAllData  = "get_all_data"
	CommandCreateOrder = "create_order"
)

// EventType distinguishes inbound events. Payload events come from the
// backend bot, chrome events from the host itself.
type EventType string

const (
	EventAllData           EventType = "all_data"
	EventPaymentURL        EventType = "payment_url"
	EventBackButtonClicked EventType = "back_button_clicked"
	EventMainButtonClicked EventType = "main_button_clicked"
	EventInvoiceClosed     EventType = "invoice_closed"
)

// Outbound is a message for the backend bot. ID never crosses the wire;
// it only ties log lines to a send, since the bot cannot correlate
// replies anyway.
type Outbound struct {
	ID      uuid.UUID `json:"-"`
	Command string    `json:"command"`
	Cart    any       `json:"cart,omitempty"`
}

// NewGetAllData builds the one-shot startup catalog request.
func NewGetAllData() Outbound {
	return Outbound{ID: uuid.New(), Command: CommandGetAllData}
}

// NewCreateOrder builds the checkout hand-off carrying the cart snapshot,
// keyed by line key.
func NewCreateOrder(cart any) Outbound {
	return Outbound{ID: uuid.New(), Command: CommandCreateOrder, Cart: cart}
}

// Event is one decoded inbound envelope.
type Event struct {
	Type EventType
	// Data holds the raw payload for EventAllData.
	Data json.RawMessage
	// URL is set for EventPaymentURL.
	URL string
	// Status is set for EventInvoiceClosed.
	Status string
}

type envelope struct {
	Type   string          `json:"type"`
	Data   json.RawMessage `json:"data,omitempty"`
	URL    string          `json:"url,omitempty"`
	Status string          `json:"status,omitempty"`
}

// DecodeEvent parses one inbound frame. Unknown types are an error so the
// caller can log and drop them without guessing.
func DecodeEvent(raw []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Event{}, pkgerrors.Wrap(pkgerrors.CodeMalformedResponse, err, "undecodable inbound frame")
	}
	switch EventType(env.Type) {
	case EventAllData:
		if len(env.Data) == 0 {
			return Event{}, pkgerrors.New(pkgerrors.CodeMalformedResponse, "all_data event without data")
		}
		return Event{Type: EventAllData, Data: env.Data}, nil
	case EventPaymentURL:
		if env.URL == "" {
			return Event{}, pkgerrors.New(pkgerrors.CodeMalformedResponse, "payment_url event without url")
		}
		return Event{Type: EventPaymentURL, URL: env.URL}, nil
	case EventBackButtonClicked, EventMainButtonClicked:
		return Event{Type: EventType(env.Type)}, nil
	case EventInvoiceClosed:
		return Event{Type: EventInvoiceClosed, Status: env.Status}, nil
	default:
		return Event{}, pkgerrors.New(pkgerrors.CodeMalformedResponse, "unknown event type").
			WithDetails(env.Type)
	}
}
