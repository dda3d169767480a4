// ABOUTME: Node catalog mapping type names to constructors, with the full built-in node set registered.
// ABOUTME: Dynamic node definitions install additional type names into the same catalog at runtime.
package flow

import (
	"fmt"
	"sort"
)

// Factory constructs a fresh node instance. Construction may fail for
// malformed dynamic definitions; built-in factories never do.
type Factory func() (Node, error)

// Catalog is an explicit registry from type-name strings to node factories.
// It is passed into pipelines, snapshot restores, and the editor rather
// than living as process-wide shared state.
type Catalog struct {
	factories map[string]Factory
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{factories: make(map[string]Factory)}
}

// Register adds a factory under a type name, replacing any prior entry.
func (c *Catalog) Register(typeName string, f Factory) {
	c.factories[typeName] = f
}

// Unregister removes a type name from the catalog.
func (c *Catalog) Unregister(typeName string) {
	delete(c.factories, typeName)
}

// Create constructs a node of the given type. An unregistered name is an
// explicit construction error reported to the caller.
func (c *Catalog) Create(typeName string) (Node, error) {
	f, ok := c.factories[typeName]
	if !ok {
		return nil, fmt.Errorf("unknown node type %q", typeName)
	}
	return f()
}

// Has reports whether a type name is registered.
func (c *Catalog) Has(typeName string) bool {
	_, ok := c.factories[typeName]
	return ok
}

// Types returns all registered type names in sorted order.
func (c *Catalog) Types() []string {
	names := make([]string, 0, len(c.factories))
	for name := range c.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultCatalog creates a catalog with every built-in node family
// registered under its canonical type name.
func DefaultCatalog() *Catalog {
	c := NewCatalog()

	c.Register("true", func() (Node, error) { return NewBoolNode(true), nil })
	c.Register("false", func() (Node, error) { return NewBoolNode(false), nil })
	c.Register("data", func() (Node, error) { return NewDataNode("data", nil), nil })
	c.Register("array", func() (Node, error) { return NewArrayDataNode("array", nil), nil })
	c.Register("print", func() (Node, error) { return NewPrintNode(), nil })

	for _, op := range []string{"add", "subtract", "multiply", "divide", "power", "modulo"} {
		op := op
		c.Register("math_"+op, func() (Node, error) { return NewMathNode(op), nil })
	}

	for _, kind := range []string{"square", "sqrt", "abs", "log", "normalize"} {
		kind := kind
		c.Register("transform_"+kind, func() (Node, error) { return NewTransformNode(kind), nil })
	}

	for _, op := range []string{"sum", "mean", "min", "max", "count", "std", "median"} {
		op := op
		c.Register("aggregate_"+op, func() (Node, error) { return NewAggregateNode(op), nil })
	}

	c.Register("filter", func() (Node, error) { return NewFilterNode(), nil })
	c.Register("join", func() (Node, error) { return NewJoinNode(), nil })
	c.Register("split", func() (Node, error) { return NewSplitNode(), nil })

	for typeName, category := range mockTypeNames {
		typeName, category := typeName, category
		c.Register(typeName, func() (Node, error) { return NewMockNode(typeName, category, 10), nil })
	}

	return c
}
