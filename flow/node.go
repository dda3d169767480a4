// ABOUTME: Node contract and shared BaseNode implementation for all processing nodes.
// ABOUTME: Carries identity, port maps, properties, canvas position, and the default readiness predicate.
package flow

import (
	"github.com/google/uuid"
)

// Node is the capability every processing node implements. Port discovery
// goes through Inputs/Outputs only; there is no secondary shape probing.
type Node interface {
	// ID returns the node's opaque unique identifier, assigned at
	// construction and immutable for the node's lifetime.
	ID() string

	// Type returns the catalog type name the node was created under
	// (e.g. "math_add", "filter"). Snapshots rebuild nodes from this.
	Type() string

	// Name returns the node's display name.
	Name() string

	// SetName changes the node's display name.
	SetName(name string)

	// Inputs returns the node's input ports keyed by port name.
	Inputs() map[string]*Port

	// Outputs returns the node's output ports keyed by port name.
	Outputs() map[string]*Port

	// Properties returns the node's configured properties.
	Properties() map[string]any

	// Position returns the node's canvas position.
	Position() (x, y float64)

	// SetPosition moves the node on the canvas.
	SetPosition(x, y float64)

	// CanExecute reports whether the node has enough input to run.
	CanExecute() bool

	// Process runs the node's computation over its current input values.
	// A false return is a normal per-node failure (e.g. a missing numeric
	// operand), not an exceptional condition.
	Process() bool
}

// BaseNode is the shared state and behavior embedded by every node
// implementation. It supplies identity, ports, properties, and the default
// readiness check; concrete nodes add Process.
type BaseNode struct {
	id      string
	typ     string
	name    string
	inputs  map[string]*Port
	outputs map[string]*Port
	props   map[string]any
	x, y    float64
}

// NewBaseNode creates the embedded base for a node of the given catalog type
// and display name, with a freshly assigned id and empty port maps.
func NewBaseNode(typ, name string) BaseNode {
	return BaseNode{
		id:      uuid.NewString(),
		typ:     typ,
		name:    name,
		inputs:  make(map[string]*Port),
		outputs: make(map[string]*Port),
		props:   make(map[string]any),
	}
}

// ID returns the node's unique identifier.
func (n *BaseNode) ID() string { return n.id }

// Type returns the catalog type name.
func (n *BaseNode) Type() string { return n.typ }

// Name returns the display name.
func (n *BaseNode) Name() string { return n.name }

// SetName changes the display name.
func (n *BaseNode) SetName(name string) { n.name = name }

// Inputs returns the input port map.
func (n *BaseNode) Inputs() map[string]*Port { return n.inputs }

// Outputs returns the output port map.
func (n *BaseNode) Outputs() map[string]*Port { return n.outputs }

// Properties returns the node's property map.
func (n *BaseNode) Properties() map[string]any { return n.props }

// Position returns the canvas position.
func (n *BaseNode) Position() (float64, float64) { return n.x, n.y }

// SetPosition moves the node on the canvas.
func (n *BaseNode) SetPosition(x, y float64) { n.x, n.y = x, y }

// AddInput creates and registers an input port.
func (n *BaseNode) AddInput(name, typ string) *Port {
	p := NewPort(name, typ, Input)
	n.inputs[name] = p
	return p
}

// AddOutput creates and registers an output port.
func (n *BaseNode) AddOutput(name, typ string) *Port {
	p := NewPort(name, typ, Output)
	n.outputs[name] = p
	return p
}

// ResetPorts disconnects and removes every port. Only full node
// redefinition flows (dynamic node updates) use this.
func (n *BaseNode) ResetPorts() {
	for _, p := range n.inputs {
		p.Disconnect()
	}
	for _, p := range n.outputs {
		p.Disconnect()
	}
	n.inputs = make(map[string]*Port)
	n.outputs = make(map[string]*Port)
}

// InputValue reads the effective, coerced value of the named input port.
// A linked port yields the upstream output's current value; the local value
// is the fallback when unlinked. Returns nil for an unknown port.
func (n *BaseNode) InputValue(name string) any {
	p, ok := n.inputs[name]
	if !ok {
		return nil
	}
	return p.Read()
}

// SetInputValue stores a value on the named input port, if it exists.
func (n *BaseNode) SetInputValue(name string, v any) {
	if p, ok := n.inputs[name]; ok {
		p.SetValue(v)
	}
}

// OutputValue returns the raw value held by the named output port.
func (n *BaseNode) OutputValue(name string) any {
	p, ok := n.outputs[name]
	if !ok {
		return nil
	}
	return p.Value()
}

// SetOutputValue stores a value on the named output port, if it exists.
func (n *BaseNode) SetOutputValue(name string, v any) {
	if p, ok := n.outputs[name]; ok {
		p.SetValue(v)
	}
}

// CanExecute is the default readiness predicate: true iff every input port
// is either linked or holds a non-nil value. Nodes with optional inputs
// (mock generators, filters, data holders) override this.
func (n *BaseNode) CanExecute() bool {
	for _, p := range n.inputs {
		if p.Link() == nil && p.Value() == nil {
			return false
		}
	}
	return true
}
