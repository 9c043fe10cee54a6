// Package bridgetest provides an in-memory bridge for tests: capability
// calls are recorded, inbound events are replayed synchronously.
package bridgetest

import (
	"context"

	"github.com/angelmondragon/shopfront-miniapp/pkg/bridge"
	"github.com/angelmondragon/shopfront-miniapp/pkg/enums"
)

// MainButtonState captures the last SetMainButton call.
type MainButtonState struct {
	Text    string
	Visible bool
}

// InvoiceCall captures one OpenInvoice call with its pending callback.
type InvoiceCall struct {
	URL      string
	Callback func(enums.InvoiceStatus)
}

// Fake implements bridge.Bridge for controller tests.
type Fake struct {
	Sent        []bridge.Outbound
	SendErr     error
	Alerts      []string
	Haptics     []enums.HapticKind
	BackButton  []bool
	MainButtons []MainButtonState
	Invoices    []InvoiceCall
	Closed      bool
	ReadyCalled bool
	Expanded    bool

	handlers map[bridge.EventType][]*entry
}

type entry struct {
	h bridge.Handler
}

// New builds an empty fake.
func New() *Fake {
	return &Fake{handlers: make(map[bridge.EventType][]*entry)}
}

// Emit delivers an event to the registered handlers, synchronously, in
// registration order.
func (f *Fake) Emit(ev bridge.Event) {
	for _, e := range append([]*entry(nil), f.handlers[ev.Type]...) {
		e.h(ev)
	}
}

// LastMainButton returns the latest main-button state, hidden by default.
func (f *Fake) LastMainButton() MainButtonState {
	if len(f.MainButtons) == 0 {
		return MainButtonState{}
	}
	return f.MainButtons[len(f.MainButtons)-1]
}

// LastBackButton reports the latest back-button visibility.
func (f *Fake) LastBackButton() bool {
	if len(f.BackButton) == 0 {
		return false
	}
	return f.BackButton[len(f.BackButton)-1]
}

func (f *Fake) Send(_ context.Context, msg bridge.Outbound) error {
	if f.SendErr != nil {
		return f.SendErr
	}
	f.Sent = append(f.Sent, msg)
	return nil
}

func (f *Fake) On(eventType bridge.EventType, h bridge.Handler) func() {
	e := &entry{h: h}
	f.handlers[eventType] = append(f.handlers[eventType], e)
	return func() {
		current := f.handlers[eventType]
		for i, candidate := range current {
			if candidate == e {
				f.handlers[eventType] = append(current[:i], current[i+1:]...)
				return
			}
		}
	}
}

func (f *Fake) ShowAlert(text string) {
	f.Alerts = append(f.Alerts, text)
}

func (f *Fake) HapticNotify(kind enums.HapticKind) {
	f.Haptics = append(f.Haptics, kind)
}

func (f *Fake) ShowBackButton(visible bool) {
	f.BackButton = append(f.BackButton, visible)
}

func (f *Fake) SetMainButton(text string, visible bool) {
	f.MainButtons = append(f.MainButtons, MainButtonState{Text: text, Visible: visible})
}

func (f *Fake) OpenInvoice(url string, cb func(enums.InvoiceStatus)) {
	f.Invoices = append(f.Invoices, InvoiceCall{URL: url, Callback: cb})
}

func (f *Fake) Close() {
	f.Closed = true
}

func (f *Fake) Ready() {
	f.ReadyCalled = true
}

func (f *Fake) Expand() {
	f.Expanded = true
}
