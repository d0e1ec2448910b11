// Package ws bridges websocket connections into the notification hub.
package ws

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/pandodao/fuji-wallet/core"
)

func New(sink core.NotificationSink, logger *slog.Logger) *Handler {
	return &Handler{
		sink:   sink,
		logger: logger.With("server", "ws"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

type Handler struct {
	sink     core.NotificationSink
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

func (h *Handler) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner := r.Header.Get("X-User-Id")
		if owner == "" {
			http.Error(w, "not authenticated", http.StatusUnauthorized)
			return
		}

		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Debug("upgrade failed", "err", err)
			return
		}

		ch := &channel{conn: conn}
		h.sink.Register(owner, ch)

		// Drain the read side to observe the close.
		go func() {
			defer func() {
				h.sink.Unregister(owner, ch)
				_ = ch.Close()
			}()

			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	})
}

// channel adapts a websocket connection to core.Channel. Writes are
// serialized; gorilla connections allow one concurrent writer.
type channel struct {
	conn *websocket.Conn
	mux  sync.Mutex
}

func (c *channel) Send(payload []byte) error {
	c.mux.Lock()
	defer c.mux.Unlock()

	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

func (c *channel) Close() error {
	return c.conn.Close()
}
