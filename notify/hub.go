// Package notify delivers events to live subscriber channels, at most one
// per owner, best-effort with no queueing or replay.
package notify

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/pandodao/fuji-wallet/core"
)

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:   logger.With("service", "notify"),
		channels: map[string]core.Channel{},
	}
}

type Hub struct {
	logger *slog.Logger

	mux      sync.RWMutex
	channels map[string]core.Channel
}

// Register installs the owner's live channel, replacing and closing any
// previous one.
func (h *Hub) Register(ownerID string, ch core.Channel) {
	h.mux.Lock()
	prev := h.channels[ownerID]
	h.channels[ownerID] = ch
	h.mux.Unlock()

	if prev != nil && prev != ch {
		_ = prev.Close()
	}
}

// Unregister removes the channel only if it is still the one registered,
// so a stale disconnect never tears down a fresh connection.
func (h *Hub) Unregister(ownerID string, ch core.Channel) {
	h.mux.Lock()
	defer h.mux.Unlock()

	if h.channels[ownerID] == ch {
		delete(h.channels, ownerID)
	}
}

// Publish sends the event to the owner's channel if one is live. Owners
// without a channel and failed sends are dropped silently.
func (h *Hub) Publish(ownerID string, event any) {
	h.mux.RLock()
	ch := h.channels[ownerID]
	h.mux.RUnlock()

	if ch == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("marshal event", "owner", ownerID, "err", err)
		return
	}

	if err := ch.Send(payload); err != nil {
		h.logger.Debug("send failed", "owner", ownerID, "err", err)
	}
}
