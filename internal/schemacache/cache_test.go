package schemacache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/faciam-dev/airtab/internal/remoteapi"
)

type countingFetcher struct {
	calls map[string]int
}

func (f *countingFetcher) FetchBaseSchema(_ context.Context, baseID string) ([]remoteapi.TableSchema, error) {
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[baseID]++
	return []remoteapi.TableSchema{{ID: "tbl_" + baseID, Name: "Main"}}, nil
}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestGetRespectsTTL(t *testing.T) {
	f := &countingFetcher{}
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	c := NewWithClock(f, 120*time.Second, clock.Now)

	ctx := context.Background()
	if _, err := c.Get(ctx, "app1"); err != nil {
		t.Fatal(err)
	}
	clock.Advance(119 * time.Second)
	if _, err := c.Get(ctx, "app1"); err != nil {
		t.Fatal(err)
	}
	if f.calls["app1"] != 1 {
		t.Fatalf("within TTL want exactly 1 fetch, got %d", f.calls["app1"])
	}

	clock.Advance(2 * time.Second)
	if _, err := c.Get(ctx, "app1"); err != nil {
		t.Fatal(err)
	}
	if f.calls["app1"] != 2 {
		t.Fatalf("after TTL expiry want a second fetch, got %d", f.calls["app1"])
	}
}

func TestCeilingClearsWholeCache(t *testing.T) {
	f := &countingFetcher{}
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	c := NewWithClock(f, time.Hour, clock.Now)

	ctx := context.Background()
	for i := 0; i < 100; i++ {
		if _, err := c.Get(ctx, fmt.Sprintf("app%03d", i)); err != nil {
			t.Fatal(err)
		}
	}
	if f.calls["app000"] != 1 {
		t.Fatalf("setup fetches = %d", f.calls["app000"])
	}

	// The 101st distinct base clears every prior entry.
	if _, err := c.Get(ctx, "app100"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Get(ctx, "app000"); err != nil {
		t.Fatal(err)
	}
	if f.calls["app000"] != 2 {
		t.Fatalf("evicted base should refetch, calls = %d", f.calls["app000"])
	}
	// The freshly inserted base survives the clear.
	if _, err := c.Get(ctx, "app100"); err != nil {
		t.Fatal(err)
	}
	if f.calls["app100"] != 1 {
		t.Fatalf("new base should stay cached, calls = %d", f.calls["app100"])
	}
}

func TestTableResolvesByIDOrName(t *testing.T) {
	f := &countingFetcher{}
	c := New(f, 0)
	ctx := context.Background()

	ts, ok, err := c.Table(ctx, "base1", "tbl_base1")
	if err != nil || !ok || ts.Name != "Main" {
		t.Fatalf("by id = %v, %v, %v", ts, ok, err)
	}
	ts, ok, err = c.Table(ctx, "base1", "Main")
	if err != nil || !ok {
		t.Fatalf("by name = %v, %v, %v", ts, ok, err)
	}
	_, ok, err = c.Table(ctx, "base1", "nope")
	if err != nil || ok {
		t.Fatal("missing table should report not found")
	}
}
