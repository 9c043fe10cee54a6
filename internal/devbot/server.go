// Package devbot is a stand-in for the backend bot during development: it
// speaks the bridge wire protocol over a websocket so the storefront can
// run end to end without a chat host. Orders are logged, payments are
// answered with a dummy invoice URL.
package devbot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/angelmondragon/shopfront-miniapp/pkg/logger"
)

// Options configures the stub server.
type Options struct {
	Catalog    json.RawMessage
	InvoiceURL string
	Logger     *logger.Logger
}

// Server handles bridge connections from the storefront.
type Server struct {
	catalog    json.RawMessage
	invoiceURL string
	log        *logger.Logger
	upgrader   websocket.Upgrader
}

type inboundFrame struct {
	Command string          `json:"command"`
	Cart    json.RawMessage `json:"cart,omitempty"`
	Control string          `json:"control"`
	Text    string          `json:"text,omitempty"`
	Kind    string          `json:"kind,omitempty"`
	URL     string          `json:"url,omitempty"`
}

// NewServer validates options and builds the stub.
func NewServer(opts Options) (*Server, error) {
	if len(opts.Catalog) == 0 {
		return nil, fmt.Errorf("catalog payload required")
	}
	if opts.InvoiceURL == "" {
		return nil, fmt.Errorf("invoice url required")
	}
	if opts.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Server{
		catalog:    opts.Catalog,
		invoiceURL: opts.InvoiceURL,
		log:        opts.Logger,
	}, nil
}

// Router mounts the websocket endpoint.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Get("/ws", s.handleWS)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error(r.Context(), "websocket upgrade failed", err)
		return
	}
	defer conn.Close()

	ctx := s.log.WithField(r.Context(), "remote", r.RemoteAddr)
	s.log.Info(ctx, "storefront connected")

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			s.log.Info(ctx, "storefront disconnected")
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			s.log.Error(ctx, "dropping undecodable frame", err)
			continue
		}

		switch {
		case frame.Command != "":
			if err := s.handleCommand(ctx, conn, frame); err != nil {
				s.log.Error(ctx, "command handling failed", err)
				return
			}
		case frame.Control != "":
			if err := s.handleControl(ctx, conn, frame); err != nil {
				s.log.Error(ctx, "control handling failed", err)
				return
			}
		default:
			s.log.Warn(ctx, "frame with neither command nor control")
		}
	}
}

func (s *Server) handleCommand(ctx context.Context, conn *websocket.Conn, frame inboundFrame) error {
	cmdCtx := s.log.WithField(ctx, "command", frame.Command)

	switch frame.Command {
	case "get_all_data":
		s.log.Info(cmdCtx, "serving catalog")
		return s.reply(conn, map[string]any{
			"type": "all_data",
			"data": s.catalog,
		})
	case "create_order":
		s.log.Info(s.log.WithField(cmdCtx, "cart", json.RawMessage(frame.Cart)), "order received")
		return s.reply(conn, map[string]any{
			"type": "payment_url",
			"url":  s.invoiceURL,
		})
	default:
		s.log.Warn(cmdCtx, "unknown command")
		return nil
	}
}

func (s *Server) handleControl(ctx context.Context, conn *websocket.Conn, frame inboundFrame) error {
	fields := map[string]any{"control": frame.Control}
	if frame.Text != "" {
		fields["text"] = frame.Text
	}
	if frame.Kind != "" {
		fields["kind"] = frame.Kind
	}
	if frame.URL != "" {
		fields["url"] = frame.URL
	}
	s.log.Info(s.log.WithFields(ctx, fields), "host chrome call")

	// An opened invoice is immediately "paid" so the happy path can be
	// exercised end to end.
	if frame.Control == "open_invoice" {
		s.log.Info(ctx, "auto-confirming invoice")
		return s.reply(conn, map[string]any{
			"type":   "invoice_closed",
			"status": "paid",
		})
	}
	return nil
}

func (s *Server) reply(conn *websocket.Conn, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding reply: %w", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
		return fmt.Errorf("writing reply: %w", err)
	}
	return nil
}
