// ABOUTME: Constant and sink nodes: data holders, boolean constants, and the print pass-through tap.
// ABOUTME: Data holders republish on process and publish value-changed events to subscribed listeners on SetData.
package flow

import (
	"log"
	"strings"
)

// DataHolder is implemented by nodes that wrap a literal value. Snapshot
// restore uses it to re-apply persisted data.
type DataHolder interface {
	Data() any
	SetData(any)
}

// DataNode wraps a literal value and republishes it on its "output" port
// every time it runs or its data is explicitly set. Comma-separated string
// data parses into a best-effort typed list. Value changes broadcast to
// subscribed listeners through Changes.
type DataNode struct {
	BaseNode
	data    any
	changes *Broadcaster
}

// NewDataNode creates a data holder with the given initial value.
func NewDataNode(name string, data any) *DataNode {
	n := &DataNode{
		BaseNode: NewBaseNode("data", name),
		data:     data,
		changes:  NewBroadcaster(),
	}
	n.AddInput("input", "any")
	n.AddOutput("output", "any")
	n.Properties()["data"] = data
	if data != nil {
		n.SetInputValue("input", data)
	}
	return n
}

// Changes returns the broadcaster observers subscribe to for
// value-changed events.
func (n *DataNode) Changes() *Broadcaster { return n.changes }

// Data returns the currently held value.
func (n *DataNode) Data() any { return n.data }

// SetData replaces the held value, syncs the ports and properties, and
// notifies subscribed listeners. This is the explicit mutation operation
// the property-editing boundary calls.
func (n *DataNode) SetData(data any) {
	n.data = data
	n.SetInputValue("input", data)
	n.SetOutputValue("output", n.publishedValue())
	n.Properties()["data"] = data
	n.changes.Publish(ValueEvent{NodeID: n.ID(), Port: "output", Value: n.OutputValue("output")})
}

// CanExecute always holds: the held data makes the node self-sufficient
// even with nothing linked.
func (n *DataNode) CanExecute() bool { return true }

// Process refreshes the held value from the input port when one is
// available and republishes on the output port.
func (n *DataNode) Process() bool {
	if v := n.InputValue("input"); v != nil {
		n.data = v
	}
	n.SetOutputValue("output", n.publishedValue())
	return true
}

// publishedValue renders the held data for the output port, splitting
// comma-separated strings into a typed list.
func (n *DataNode) publishedValue() any {
	s, isStr := n.data.(string)
	if !isStr || !strings.Contains(s, ",") {
		return n.data
	}
	parts := strings.Split(s, ",")
	typed := make([]any, 0, len(parts))
	for _, part := range parts {
		typed = append(typed, Coerce(strings.TrimSpace(part)))
	}
	return typed
}

// ArrayDataNode wraps a sequence value and passes it through unchanged,
// without the comma-splitting behavior of DataNode.
type ArrayDataNode struct {
	DataNode
}

// NewArrayDataNode creates an array holder with the given initial sequence.
func NewArrayDataNode(name string, data []any) *ArrayDataNode {
	n := &ArrayDataNode{DataNode: *NewDataNode(name, nil)}
	n.typ = "array"
	if data != nil {
		n.data = data
		n.SetInputValue("input", data)
		n.Properties()["data"] = data
	}
	return n
}

// Process republishes the held sequence as-is.
func (n *ArrayDataNode) Process() bool {
	if v := n.InputValue("input"); v != nil {
		n.data = v
	}
	n.SetOutputValue("output", n.data)
	return true
}

// BoolNode is a constant boolean source.
type BoolNode struct {
	BaseNode
	value bool
}

// NewBoolNode creates a constant true or false node.
func NewBoolNode(value bool) *BoolNode {
	typ, name := "false", "False"
	if value {
		typ, name = "true", "True"
	}
	n := &BoolNode{BaseNode: NewBaseNode(typ, name), value: value}
	n.AddOutput("output", "bool")
	n.SetOutputValue("output", value)
	return n
}

// Process republishes the constant.
func (n *BoolNode) Process() bool {
	n.SetOutputValue("output", n.value)
	return true
}

// PrintNode is a pass-through debugging tap: it logs its input value and
// forwards it unchanged to the "data" output.
type PrintNode struct {
	BaseNode
}

// NewPrintNode creates a print node.
func NewPrintNode() *PrintNode {
	n := &PrintNode{BaseNode: NewBaseNode("print", "Print")}
	n.AddInput("data", "any")
	n.AddOutput("data", "any")
	return n
}

// Process logs and forwards the input value.
func (n *PrintNode) Process() bool {
	v := n.InputValue("data")
	log.Printf("[%s %s] %v", n.Name(), shortID(n.ID()), v)
	n.SetOutputValue("data", v)
	return true
}

// shortID returns the first segment of a dashed identifier for log output.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
