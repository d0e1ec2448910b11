package notify

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
)

type fakeChannel struct {
	sent    [][]byte
	closed  bool
	sendErr error
}

func (c *fakeChannel) Send(payload []byte) error {
	if c.sendErr != nil {
		return c.sendErr
	}

	c.sent = append(c.sent, payload)
	return nil
}

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

func newTestHub() *Hub {
	return NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestPublishWithoutChannel(t *testing.T) {
	h := newTestHub()

	// No registered channel: the event is dropped silently.
	h.Publish("u1", map[string]string{"type": "TEST"})
}

func TestPublishDelivers(t *testing.T) {
	h := newTestHub()

	ch := &fakeChannel{}
	h.Register("u1", ch)
	h.Publish("u1", map[string]string{"type": "TEST"})

	if len(ch.sent) != 1 {
		t.Fatalf("sent: got %d, want 1", len(ch.sent))
	}

	var payload map[string]string
	if err := json.Unmarshal(ch.sent[0], &payload); err != nil {
		t.Fatalf("payload is not json: %v", err)
	}

	if payload["type"] != "TEST" {
		t.Errorf("payload: %v", payload)
	}
}

func TestRegisterReplacesPrevious(t *testing.T) {
	h := newTestHub()

	first := &fakeChannel{}
	second := &fakeChannel{}
	h.Register("u1", first)
	h.Register("u1", second)

	if !first.closed {
		t.Error("previous channel should be closed")
	}

	h.Publish("u1", map[string]string{"type": "TEST"})

	if len(first.sent) != 0 || len(second.sent) != 1 {
		t.Errorf("delivery: first=%d second=%d", len(first.sent), len(second.sent))
	}
}

func TestUnregisterStaleChannel(t *testing.T) {
	h := newTestHub()

	stale := &fakeChannel{}
	fresh := &fakeChannel{}
	h.Register("u1", stale)
	h.Register("u1", fresh)

	// A late disconnect of the replaced channel must not tear down the
	// fresh one.
	h.Unregister("u1", stale)
	h.Publish("u1", map[string]string{"type": "TEST"})

	if len(fresh.sent) != 1 {
		t.Errorf("fresh channel should still receive, got %d", len(fresh.sent))
	}

	h.Unregister("u1", fresh)
	h.Publish("u1", map[string]string{"type": "TEST"})

	if len(fresh.sent) != 1 {
		t.Errorf("unregistered channel should not receive")
	}
}

func TestPublishSendFailureIsDropped(t *testing.T) {
	h := newTestHub()

	ch := &fakeChannel{sendErr: errors.New("connection gone")}
	h.Register("u1", ch)
	h.Publish("u1", map[string]string{"type": "TEST"})
}
