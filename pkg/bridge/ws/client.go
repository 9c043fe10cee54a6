// Package ws attaches the storefront to a bridge host over a websocket.
// Outbound bot commands and host chrome calls are JSON frames; inbound
// frames are decoded into bridge events and queued for the app's event
// loop. Handlers never run on the read pump: the loop drains Events() and
// calls Dispatch, so controller state stays single-threaded.
package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/angelmondragon/shopfront-miniapp/pkg/bridge"
	"github.com/angelmondragon/shopfront-miniapp/pkg/enums"
	"github.com/angelmondragon/shopfront-miniapp/pkg/logger"
	"github.com/gorilla/websocket"
)

const eventBuffer = 16

// Options configures the websocket bridge client.
type Options struct {
	URL              string
	HandshakeTimeout time.Duration
	WriteTimeout     time.Duration
	Logger           *logger.Logger
}

// Client is a bridge.Bridge over one websocket connection.
type Client struct {
	mu           sync.RWMutex
	opts         Options
	conn         *websocket.Conn
	handlers     map[bridge.EventType][]*handlerEntry
	invoiceCb    func(enums.InvoiceStatus)
	events       chan bridge.Event
	done         chan struct{}
	closeOnce    sync.Once
	writeTimeout time.Duration
}

type handlerEntry struct {
	h bridge.Handler
}

// controlFrame mirrors a host chrome call onto the wire.
type controlFrame struct {
	Control string `json:"control"`
	Text    string `json:"text,omitempty"`
	Kind    string `json:"kind,omitempty"`
	Visible *bool  `json:"visible,omitempty"`
	URL     string `json:"url,omitempty"`
}

// NewClient builds an unconnected client.
func NewClient(opts Options) (*Client, error) {
	if opts.URL == "" {
		return nil, fmt.Errorf("bridge url required")
	}
	if opts.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if opts.HandshakeTimeout <= 0 {
		opts.HandshakeTimeout = 10 * time.Second
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 5 * time.Second
	}
	return &Client{
		opts:         opts,
		handlers:     make(map[bridge.EventType][]*handlerEntry),
		events:       make(chan bridge.Event, eventBuffer),
		done:         make(chan struct{}),
		writeTimeout: opts.WriteTimeout,
	}, nil
}

// Connect dials the host and starts the read pump.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return nil
	}

	dialer := websocket.Dialer{HandshakeTimeout: c.opts.HandshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, c.opts.URL, nil)
	if err != nil {
		return fmt.Errorf("websocket dial: %w", err)
	}
	c.conn = conn

	go c.readPump()

	return nil
}

// Events exposes the queue the app's event loop must drain. Every event
// read from it should be handed back to Dispatch.
func (c *Client) Events() <-chan bridge.Event {
	return c.events
}

// Dispatch runs the registered handlers for one event. It must be called
// from the app's event loop only.
func (c *Client) Dispatch(ev bridge.Event) {
	if ev.Type == bridge.EventInvoiceClosed {
		c.dispatchInvoiceClosed(ev)
	}

	c.mu.RLock()
	entries := append([]*handlerEntry(nil), c.handlers[ev.Type]...)
	c.mu.RUnlock()

	for _, entry := range entries {
		entry.h(ev)
	}
}

func (c *Client) dispatchInvoiceClosed(ev bridge.Event) {
	c.mu.Lock()
	cb := c.invoiceCb
	c.invoiceCb = nil
	c.mu.Unlock()

	if cb == nil {
		return
	}
	status, err := enums.ParseInvoiceStatus(ev.Status)
	if err != nil {
		c.opts.Logger.Warn(c.logCtx(), "invoice closed with unknown status "+ev.Status)
		status = enums.InvoiceFailed
	}
	cb(status)
}

func (c *Client) readPump() {
	for {
		select {
		case <-c.done:
			return
		default:
		}

		_, raw, err := c.readMessage()
		if err != nil {
			select {
			case <-c.done:
			default:
				c.opts.Logger.Error(c.logCtx(), "bridge read failed", err)
			}
			return
		}

		ev, err := bridge.DecodeEvent(raw)
		if err != nil {
			c.opts.Logger.Error(c.logCtx(), "dropping malformed inbound frame", err)
			continue
		}

		select {
		case c.events <- ev:
		case <-c.done:
			return
		}
	}
}

func (c *Client) readMessage() (int, []byte, error) {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()
	if conn == nil {
		return 0, nil, fmt.Errorf("not connected")
	}
	return conn.ReadMessage()
}

// Send implements bridge.Bridge.
func (c *Client) Send(ctx context.Context, msg bridge.Outbound) error {
	raw, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encoding outbound message: %w", err)
	}
	logCtx := c.opts.Logger.WithMessageID(ctx, msg.ID.String())
	logCtx = c.opts.Logger.WithField(logCtx, "command", msg.Command)
	if err := c.write(raw); err != nil {
		return err
	}
	c.opts.Logger.Debug(logCtx, "sent command to backend")
	return nil
}

// On implements bridge.Bridge.
func (c *Client) On(eventType bridge.EventType, h bridge.Handler) func() {
	entry := &handlerEntry{h: h}

	c.mu.Lock()
	c.handlers[eventType] = append(c.handlers[eventType], entry)
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		current := c.handlers[eventType]
		for i, candidate := range current {
			if candidate == entry {
				c.handlers[eventType] = append(current[:i], current[i+1:]...)
				return
			}
		}
	}
}

// ShowAlert implements bridge.Bridge.
func (c *Client) ShowAlert(text string) {
	c.control(controlFrame{Control: "show_alert", Text: text})
}

// HapticNotify implements bridge.Bridge.
func (c *Client) HapticNotify(kind enums.HapticKind) {
	c.control(controlFrame{Control: "haptic_notify", Kind: kind.String()})
}

// ShowBackButton implements bridge.Bridge.
func (c *Client) ShowBackButton(visible bool) {
	c.control(controlFrame{Control: "back_button", Visible: &visible})
}

// SetMainButton implements bridge.Bridge.
func (c *Client) SetMainButton(text string, visible bool) {
	c.control(controlFrame{Control: "main_button", Text: text, Visible: &visible})
}

// OpenInvoice implements bridge.Bridge. The callback fires when the host
// reports the invoice closed; only one invoice can be pending at a time.
func (c *Client) OpenInvoice(url string, cb func(enums.InvoiceStatus)) {
	c.mu.Lock()
	c.invoiceCb = cb
	c.mu.Unlock()
	c.control(controlFrame{Control: "open_invoice", URL: url})
}

// Ready implements bridge.Bridge.
func (c *Client) Ready() {
	c.control(controlFrame{Control: "ready"})
}

// Expand implements bridge.Bridge.
func (c *Client) Expand() {
	c.control(controlFrame{Control: "expand"})
}

// Close implements bridge.Bridge.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.conn == nil {
			return
		}
		err := c.conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		)
		if err != nil {
			c.opts.Logger.Warn(c.logCtx(), "failed to write close frame")
		}
		c.conn.Close()
		c.conn = nil
	})
}

func (c *Client) control(frame controlFrame) {
	raw, err := json.Marshal(frame)
	if err != nil {
		c.opts.Logger.Error(c.logCtx(), "encoding control frame", err)
		return
	}
	if err := c.write(raw); err != nil {
		c.opts.Logger.Error(c.logCtx(), "writing control frame "+frame.Control, err)
	}
}

func (c *Client) write(raw []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return fmt.Errorf("not connected")
	}
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
		return fmt.Errorf("setting write deadline: %w", err)
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
		return fmt.Errorf("websocket write: %w", err)
	}
	return nil
}

func (c *Client) logCtx() context.Context {
	return context.Background()
}
