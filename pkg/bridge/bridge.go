// Package bridge defines the host capability surface the storefront runs
// against: a one-way outbound message channel to the backend bot, an
// uncorrelated inbound event stream, and the host UI chrome (alerts,
// haptics, back/main buttons, invoices). The host cannot address a reply
// to a specific send, so subscribers must tolerate events arriving at any
// point in the session.
package bridge

import (
	"context"

	"github.com/angelmondragon/shopfront-miniapp/pkg/enums"
)

// Handler consumes one inbound event. Handlers run on the caller's event
// loop and must not block.
type Handler func(Event)

// Bridge is the surface the screen controller depends on. Implementations
// exist for the websocket transport and for tests.
type Bridge interface {
	// Send fires an outbound message at the backend bot. There is no
	// reply; any response arrives later as an uncorrelated Event.
	Send(ctx context.Context, msg Outbound) error

	// On registers a handler for an event type and returns its
	// unsubscribe function.
	On(eventType EventType, h Handler) (off func())

	ShowAlert(text string)
	HapticNotify(kind enums.HapticKind)
	ShowBackButton(visible bool)
	SetMainButton(text string, visible bool)
	OpenInvoice(url string, cb func(enums.InvoiceStatus))
	Close()
	Ready()
	Expand()
}
