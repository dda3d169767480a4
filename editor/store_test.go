// ABOUTME: Tests for the session store lifecycle.
// ABOUTME: Covers create/get/delete, capacity eviction, and TTL cleanup.

package editor

import (
	"testing"
	"time"

	"github.com/flumeworks/flume/flow"
)

func TestStore_CreateAndGet(t *testing.T) {
	store := NewStore(10, time.Hour)
	sess := store.Create(flow.NewPipeline("one"))

	got, ok := store.Get(sess.ID)
	if !ok {
		t.Fatal("expected session to be retrievable")
	}
	if got.Pipeline.Name != "one" {
		t.Errorf("expected pipeline one, got %s", got.Pipeline.Name)
	}

	if _, ok := store.Get("missing"); ok {
		t.Error("expected unknown id to miss")
	}
}

func TestStore_Delete(t *testing.T) {
	store := NewStore(10, time.Hour)
	sess := store.Create(flow.NewPipeline(""))

	if !store.Delete(sess.ID) {
		t.Error("expected delete to succeed")
	}
	if store.Delete(sess.ID) {
		t.Error("expected second delete to fail")
	}
	if store.Len() != 0 {
		t.Errorf("expected empty store, got %d", store.Len())
	}
}

func TestStore_CapacityEvictsOldest(t *testing.T) {
	store := NewStore(2, time.Hour)
	first := store.Create(flow.NewPipeline("first"))
	store.sessions[first.ID].LastAccess = time.Now().Add(-time.Minute)
	store.Create(flow.NewPipeline("second"))
	store.Create(flow.NewPipeline("third"))

	if store.Len() != 2 {
		t.Fatalf("expected capacity 2, got %d", store.Len())
	}
	if _, ok := store.Get(first.ID); ok {
		t.Error("expected oldest session evicted")
	}
}

func TestStore_CleanupRemovesExpired(t *testing.T) {
	store := NewStore(10, time.Minute)
	stale := store.Create(flow.NewPipeline("stale"))
	fresh := store.Create(flow.NewPipeline("fresh"))
	store.sessions[stale.ID].LastAccess = time.Now().Add(-2 * time.Minute)

	store.Cleanup()

	if _, ok := store.Get(stale.ID); ok {
		t.Error("expected stale session removed")
	}
	if _, ok := store.Get(fresh.ID); !ok {
		t.Error("expected fresh session kept")
	}
}
