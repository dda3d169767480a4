// ABOUTME: Tests for the definitions registry and its file persistence.
// ABOUTME: Covers missing-file loads, save/load round trips, in-place replacement, and catalog installation.
package logic

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/flumeworks/flume/flow"
)

func TestRegistry_LoadMissingFileIsEmpty(t *testing.T) {
	r := NewRegistry(filepath.Join(t.TempDir(), "absent.yaml"))
	if err := r.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(r.List()) != 0 {
		t.Errorf("expected empty registry, got %d definitions", len(r.List()))
	}
}

func TestRegistry_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defs.yaml")
	r := NewRegistry(path)

	def := Definition{
		Name:    "doubler",
		Inputs:  []PortSpec{{Name: "value", bare: true}},
		Outputs: []PortSpec{{Name: "result", bare: true}},
		Logic:   "result = value * 2",
	}
	if err := r.Add(def); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := r.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	fresh := NewRegistry(path)
	if err := fresh.Load(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	defs := fresh.List()
	if len(defs) != 1 {
		t.Fatalf("expected 1 definition, got %d", len(defs))
	}
	if defs[0].Name != "doubler" || defs[0].Logic != "result = value * 2" {
		t.Errorf("unexpected definition %+v", defs[0])
	}
	if len(defs[0].Inputs) != 1 || defs[0].Inputs[0].Name != "value" {
		t.Errorf("unexpected inputs %+v", defs[0].Inputs)
	}
}

func TestRegistry_SaveJSONByExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defs.json")
	r := NewRegistry(path)
	if err := r.Add(Definition{Name: "inc", Logic: "y = x + 1"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := r.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(data) == 0 || data[0] != '[' {
		t.Errorf("expected a JSON list document, got %q", data)
	}
}

func TestRegistry_AddReplacesInPlace(t *testing.T) {
	r := NewRegistry("")
	_ = r.Add(Definition{Name: "a", Logic: "y = 1"})
	_ = r.Add(Definition{Name: "b", Logic: "y = 2"})
	_ = r.Add(Definition{Name: "a", Logic: "y = 3"})

	defs := r.List()
	if len(defs) != 2 {
		t.Fatalf("expected 2 definitions, got %d", len(defs))
	}
	if defs[0].Name != "a" || defs[0].Logic != "y = 3" {
		t.Errorf("expected first slot replaced, got %+v", defs[0])
	}
}

func TestRegistry_AddRejectsInvalid(t *testing.T) {
	r := NewRegistry("")
	if err := r.Add(Definition{Name: "nameonly"}); err == nil {
		t.Error("expected empty logic to be rejected")
	}
	if err := r.Add(Definition{Logic: "y = 1"}); err == nil {
		t.Error("expected missing name to be rejected")
	}
}

func TestRegistry_RemoveAndGet(t *testing.T) {
	r := NewRegistry("")
	_ = r.Add(Definition{Name: "keep", Logic: "y = 1"})
	_ = r.Add(Definition{Name: "drop", Logic: "y = 2"})

	if !r.Remove("drop") {
		t.Error("expected removal to succeed")
	}
	if r.Remove("drop") {
		t.Error("expected second removal to fail")
	}
	if _, ok := r.Get("drop"); ok {
		t.Error("expected removed definition to be gone")
	}
	if def, ok := r.Get("keep"); !ok || def.Name != "keep" {
		t.Errorf("expected keep to remain, got %+v", def)
	}
}

func TestRegistry_InstallIntoCatalog(t *testing.T) {
	r := NewRegistry("")
	_ = r.Add(Definition{
		Name:    "tripler",
		Inputs:  []PortSpec{{Name: "value"}},
		Outputs: []PortSpec{{Name: "result"}},
		Logic:   "result = value * 3",
	})

	catalog := flow.DefaultCatalog()
	r.Install(catalog)

	node, err := catalog.Create("tripler")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	dyn, isDynamic := node.(*DynamicNode)
	if !isDynamic {
		t.Fatalf("expected a dynamic node, got %T", node)
	}
	dyn.SetInputValue("value", 4)
	if !dyn.Process() {
		t.Fatal("expected process to succeed")
	}
	if got := dyn.OutputValue("result"); got != 12 {
		t.Errorf("expected 12, got %v", got)
	}
}
