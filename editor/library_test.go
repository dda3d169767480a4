// ABOUTME: Tests for the SQLite pipeline library.
// ABOUTME: Covers save/load round trips, upsert semantics, listing, and deletion.

package editor

import (
	"path/filepath"
	"testing"

	"github.com/flumeworks/flume/flow"
)

func openTestLibrary(t *testing.T) *Library {
	t.Helper()
	lib, err := OpenLibrary(filepath.Join(t.TempDir(), "library.db"))
	if err != nil {
		t.Fatalf("open library: %v", err)
	}
	t.Cleanup(func() { _ = lib.Close() })
	return lib
}

func sampleSnapshot(name string) *flow.Snapshot {
	p := flow.NewPipeline(name)
	p.AddNode(flow.NewDataNode("seed", 1))
	return p.Snapshot()
}

func TestLibrary_SaveAndLoad(t *testing.T) {
	lib := openTestLibrary(t)

	if err := lib.Save("demo", sampleSnapshot("demo")); err != nil {
		t.Fatalf("save: %v", err)
	}

	snap, err := lib.Load("demo")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if snap.Name != "demo" || len(snap.Nodes) != 1 {
		t.Errorf("unexpected snapshot %+v", snap)
	}

	if _, err := lib.Load("missing"); err == nil {
		t.Error("expected error for unknown name")
	}
}

func TestLibrary_SaveUpserts(t *testing.T) {
	lib := openTestLibrary(t)

	if err := lib.Save("demo", sampleSnapshot("first")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := lib.Save("demo", sampleSnapshot("second")); err != nil {
		t.Fatalf("resave: %v", err)
	}

	snap, err := lib.Load("demo")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if snap.Name != "second" {
		t.Errorf("expected latest snapshot, got %s", snap.Name)
	}

	entries, err := lib.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 entry after upsert, got %d", len(entries))
	}
}

func TestLibrary_Delete(t *testing.T) {
	lib := openTestLibrary(t)
	if err := lib.Save("gone", sampleSnapshot("gone")); err != nil {
		t.Fatalf("save: %v", err)
	}

	removed, err := lib.Delete("gone")
	if err != nil || !removed {
		t.Fatalf("expected delete to succeed, removed=%v err=%v", removed, err)
	}
	removed, err = lib.Delete("gone")
	if err != nil || removed {
		t.Errorf("expected second delete to report missing, removed=%v err=%v", removed, err)
	}
}
