// ABOUTME: Port model for the dataflow engine: named, directional value slots on nodes.
// ABOUTME: Implements the 1:1 link contract with overwrite-on-reconnect and read-through to upstream values.
package flow

// Direction identifies whether a port accepts values (Input) or publishes them (Output).
type Direction int

const (
	Input Direction = iota
	Output
)

// String returns "input" or "output" for diagnostics and serialization.
func (d Direction) String() string {
	if d == Input {
		return "input"
	}
	return "output"
}

// Port is an attachment point on a node. A port holds at most one link to a
// port of the opposite direction; reconnecting overwrites the prior link on
// both ends. The Type field is a semantic tag ("any", "number", "list", ...)
// used for display and dynamic node definitions, not enforced at link time.
type Port struct {
	Name      string
	Type      string
	Direction Direction

	value any
	link  *Port
}

// NewPort creates a port with the given name, semantic type tag, and direction.
// An empty type tag defaults to "any".
func NewPort(name, typ string, dir Direction) *Port {
	if typ == "" {
		typ = "any"
	}
	return &Port{Name: name, Type: typ, Direction: dir}
}

// Connect links this port to another port of the opposite direction.
// It returns false when both ports share the same direction. Any existing
// link on either port is cleared first, so a port ends up with exactly one
// live link; the overwrite is symmetric and intentional.
func (p *Port) Connect(other *Port) bool {
	if other == nil || p.Direction == other.Direction {
		return false
	}
	p.Disconnect()
	other.Disconnect()
	p.link = other
	other.link = p
	return true
}

// Disconnect clears the link on both sides. Calling it on an unlinked port
// is a no-op.
func (p *Port) Disconnect() {
	if p.link != nil {
		p.link.link = nil
		p.link = nil
	}
}

// Link returns the peer port, or nil when unlinked.
func (p *Port) Link() *Port {
	return p.link
}

// Value returns the locally stored value without following the link and
// without coercion.
func (p *Port) Value() any {
	return p.value
}

// SetValue stores a value on the port.
func (p *Port) SetValue(v any) {
	p.value = v
}

// Read returns the port's effective value. For a linked input port this is
// the upstream output port's current value; the local value is only the
// fallback when unlinked. The result passes through Coerce, so textual
// numerics and bracketed list literals arrive typed at the node boundary.
func (p *Port) Read() any {
	v := p.value
	if p.Direction == Input && p.link != nil {
		v = p.link.value
	}
	return Coerce(v)
}
