// ABOUTME: Registry keeps an ordered set of dynamic node definitions bound to a file on disk.
// ABOUTME: Definitions install into a node catalog so pipelines can create them by name.
package logic

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/flumeworks/flume/flow"
)

// Registry holds dynamic node definitions in load order and persists them
// to a single definitions file. It is an explicit value, not a global;
// callers decide how many registries exist and where each one saves.
type Registry struct {
	path string
	defs []Definition
}

// NewRegistry creates a registry persisted at path. The file is not read
// until Load is called.
func NewRegistry(path string) *Registry {
	return &Registry{path: path}
}

// Path returns the definitions file the registry saves to.
func (r *Registry) Path() string { return r.path }

// Load reads the definitions file. A missing file is an empty registry,
// not an error.
func (r *Registry) Load() error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			r.defs = nil
			return nil
		}
		return fmt.Errorf("load definitions: %w", err)
	}
	defs, err := ParseDefinitions(data)
	if err != nil {
		return err
	}
	r.defs = defs
	return nil
}

// Save writes the definitions file as a list, choosing JSON or YAML from
// the path extension.
func (r *Registry) Save() error {
	asJSON := strings.EqualFold(filepath.Ext(r.path), ".json")
	data, err := EncodeDefinitions(r.defs, asJSON)
	if err != nil {
		return fmt.Errorf("encode definitions: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("save definitions: %w", err)
	}
	return nil
}

// Add stores def, replacing any definition with the same name in place so
// file order stays stable across edits.
func (r *Registry) Add(def Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}
	for i, d := range r.defs {
		if d.Name == def.Name {
			r.defs[i] = def
			return nil
		}
	}
	r.defs = append(r.defs, def)
	return nil
}

// Remove deletes the named definition and reports whether it existed.
func (r *Registry) Remove(name string) bool {
	for i, d := range r.defs {
		if d.Name == name {
			r.defs = append(r.defs[:i], r.defs[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the named definition.
func (r *Registry) Get(name string) (Definition, bool) {
	for _, d := range r.defs {
		if d.Name == name {
			return d, true
		}
	}
	return Definition{}, false
}

// List returns the definitions in registry order.
func (r *Registry) List() []Definition {
	out := make([]Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

// Install registers every definition as a node factory in catalog. A
// definition whose expression logic fails to compile makes its factory
// fail; the other definitions still install.
func (r *Registry) Install(catalog *flow.Catalog) {
	for _, d := range r.defs {
		def := d
		catalog.Register(def.Name, func() (flow.Node, error) {
			return NewNode(def)
		})
	}
}
