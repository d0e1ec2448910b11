package price

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/pandodao/fuji-wallet/core"
	"github.com/shopspring/decimal"
)

type fakeSource struct {
	quotes []func() (decimal.Decimal, error)
	calls  int
}

func (f *fakeSource) Fetch(ctx context.Context) (decimal.Decimal, error) {
	quote := f.quotes[f.calls]
	f.calls++
	return quote()
}

type fakeProperties struct {
	values map[string][]byte
}

func (f *fakeProperties) Get(ctx context.Context, key string, value any) error {
	b, ok := f.values[key]
	if !ok {
		return core.ErrNotFound
	}

	return json.Unmarshal(b, value)
}

func (f *fakeProperties) Set(ctx context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}

	f.values[key] = b
	return nil
}

func newTestCache(source *fakeSource, properties *fakeProperties) *Cache {
	return New(source, properties, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRateZeroBeforeFirstRefresh(t *testing.T) {
	c := newTestCache(&fakeSource{}, &fakeProperties{values: map[string][]byte{}})

	if rate := c.Rate(); !rate.Price.IsZero() {
		t.Errorf("rate before refresh: got %s, want 0", rate.Price)
	}
}

func TestRefreshReplacesRateAndPersists(t *testing.T) {
	source := &fakeSource{quotes: []func() (decimal.Decimal, error){
		func() (decimal.Decimal, error) { return decimal.NewFromInt(25), nil },
	}}
	properties := &fakeProperties{values: map[string][]byte{}}

	c := newTestCache(source, properties)

	if err := c.refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	if rate := c.Rate(); !rate.Price.Equal(decimal.NewFromInt(25)) {
		t.Errorf("rate: got %s, want 25", rate.Price)
	}

	if _, ok := properties.values[propertyRate]; !ok {
		t.Error("rate should be persisted")
	}
}

func TestRefreshFailureRetainsPrevious(t *testing.T) {
	source := &fakeSource{quotes: []func() (decimal.Decimal, error){
		func() (decimal.Decimal, error) { return decimal.NewFromInt(25), nil },
		func() (decimal.Decimal, error) { return decimal.Zero, &core.NetworkError{Err: errors.New("feed down")} },
	}}
	properties := &fakeProperties{values: map[string][]byte{}}

	c := newTestCache(source, properties)

	if err := c.refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	if err := c.refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}

	if rate := c.Rate(); !rate.Price.Equal(decimal.NewFromInt(25)) {
		t.Errorf("rate after failed refresh: got %s, want 25", rate.Price)
	}
}

func TestWarmupLoadsPersistedRate(t *testing.T) {
	properties := &fakeProperties{values: map[string][]byte{}}

	seed := newTestCache(&fakeSource{quotes: []func() (decimal.Decimal, error){
		func() (decimal.Decimal, error) { return decimal.NewFromInt(30), nil },
	}}, properties)

	if err := seed.refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	// A fresh cache over the same properties starts from the stored rate.
	c := newTestCache(&fakeSource{}, properties)
	c.warmup(context.Background())

	if rate := c.Rate(); !rate.Price.Equal(decimal.NewFromInt(30)) {
		t.Errorf("warmed rate: got %s, want 30", rate.Price)
	}
}
