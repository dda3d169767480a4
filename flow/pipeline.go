// ABOUTME: Pipeline owning the node set and connection ledger, with connect/disconnect and the fixpoint scheduler.
// ABOUTME: Execute runs repeated readiness scans until no node makes progress; ExecutionOrder is the informational Kahn query.
package flow

import (
	"fmt"
	"sort"
	"time"
)

// Pipeline owns a set of nodes and the connection ledger between their
// ports. Nodes and connections have no lifecycle outside their owning
// pipeline. All mutation happens on a single goroutine; concurrent access
// is the embedder's responsibility to serialize.
type Pipeline struct {
	Name string

	nodes       map[string]Node
	connections map[string]*Connection
	events      func(Event)
}

// NewPipeline creates an empty pipeline with the given name.
func NewPipeline(name string) *Pipeline {
	if name == "" {
		name = "Pipeline"
	}
	return &Pipeline{
		Name:        name,
		nodes:       make(map[string]Node),
		connections: make(map[string]*Connection),
	}
}

// SetEventHandler installs a callback for scheduler lifecycle events.
func (p *Pipeline) SetEventHandler(fn func(Event)) {
	p.events = fn
}

func (p *Pipeline) emit(evt Event) {
	if p.events == nil {
		return
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now()
	}
	p.events(evt)
}

// AddNode registers a node and returns its id.
func (p *Pipeline) AddNode(n Node) string {
	p.nodes[n.ID()] = n
	return n.ID()
}

// Node returns the node with the given id, or nil.
func (p *Pipeline) Node(id string) Node {
	return p.nodes[id]
}

// NodeCount returns the number of nodes in the pipeline.
func (p *Pipeline) NodeCount() int {
	return len(p.nodes)
}

// NodeIDs returns all node ids in sorted order for deterministic iteration.
func (p *Pipeline) NodeIDs() []string {
	ids := make([]string, 0, len(p.nodes))
	for id := range p.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Connections returns the ledger entries sorted by id; ULIDs sort in
// creation order.
func (p *Pipeline) Connections() []*Connection {
	conns := make([]*Connection, 0, len(p.connections))
	for _, c := range p.connections {
		conns = append(conns, c)
	}
	sort.Slice(conns, func(i, j int) bool { return conns[i].ID < conns[j].ID })
	return conns
}

// Connection returns the ledger entry with the given id, or nil.
func (p *Pipeline) Connection(id string) *Connection {
	return p.connections[id]
}

// RemoveNode deletes a node and cascades removal of every connection
// touching it. Returns false when the id is unknown.
func (p *Pipeline) RemoveNode(id string) bool {
	if _, ok := p.nodes[id]; !ok {
		return false
	}
	var stale []string
	for connID, conn := range p.connections {
		if conn.SourceNodeID == id || conn.TargetNodeID == id {
			stale = append(stale, connID)
		}
	}
	for _, connID := range stale {
		p.Disconnect(connID)
	}
	delete(p.nodes, id)
	return true
}

// Connect resolves both nodes and the named ports, links the output port to
// the input port, and records a ledger entry. Structural problems (missing
// node or port, same-direction ports) return an error rather than panicking.
func (p *Pipeline) Connect(sourceNodeID, sourcePort, targetNodeID, targetPort string) (string, error) {
	source := p.nodes[sourceNodeID]
	if source == nil {
		return "", fmt.Errorf("source node %q not found", sourceNodeID)
	}
	target := p.nodes[targetNodeID]
	if target == nil {
		return "", fmt.Errorf("target node %q not found", targetNodeID)
	}
	out := source.Outputs()[sourcePort]
	if out == nil {
		return "", fmt.Errorf("node %q has no output port %q", sourceNodeID, sourcePort)
	}
	in := target.Inputs()[targetPort]
	if in == nil {
		return "", fmt.Errorf("node %q has no input port %q", targetNodeID, targetPort)
	}

	// A reconnect overwrites prior links on both ports; drop any ledger
	// entries that mirrored those links so the ledger stays consistent.
	p.dropEntriesFor(sourceNodeID, sourcePort, targetNodeID, targetPort)

	if !out.Connect(in) {
		return "", fmt.Errorf("cannot link %s port to %s port", out.Direction, in.Direction)
	}

	conn := NewConnection(sourceNodeID, sourcePort, targetNodeID, targetPort)
	p.connections[conn.ID] = conn
	return conn.ID, nil
}

// dropEntriesFor removes ledger entries for any link about to be overwritten
// by a new connection on the given output or input port.
func (p *Pipeline) dropEntriesFor(sourceNodeID, sourcePort, targetNodeID, targetPort string) {
	var stale []string
	for id, c := range p.connections {
		if c.SourceNodeID == sourceNodeID && c.SourcePort == sourcePort {
			stale = append(stale, id)
		} else if c.TargetNodeID == targetNodeID && c.TargetPort == targetPort {
			stale = append(stale, id)
		}
	}
	for _, id := range stale {
		delete(p.connections, id)
	}
}

// Disconnect clears the live link on both ports and removes the ledger
// entry. Returns false when the id is unknown.
func (p *Pipeline) Disconnect(connectionID string) bool {
	conn, ok := p.connections[connectionID]
	if !ok {
		return false
	}
	if source := p.nodes[conn.SourceNodeID]; source != nil {
		if out := source.Outputs()[conn.SourcePort]; out != nil {
			out.Disconnect()
		}
	}
	if target := p.nodes[conn.TargetNodeID]; target != nil {
		if in := target.Inputs()[conn.TargetPort]; in != nil {
			in.Disconnect()
		}
	}
	delete(p.connections, connectionID)
	return true
}

// NodeResult records the outcome of one node's Process call.
type NodeResult struct {
	Success bool           `json:"success"`
	Outputs map[string]any `json:"outputs"`
}

// ExecutionResult holds the per-node results of one Execute pass. Complete
// is false when the scheduler stalled (a cycle or a permanently missing
// input left nodes unexecuted); the partial results are still returned.
type ExecutionResult struct {
	Results  map[string]NodeResult `json:"results"`
	Complete bool                  `json:"complete"`
}

// Execute runs the fixpoint scheduler: repeatedly scan all nodes, running
// any node that is ready and whose upstream dependencies all have recorded
// results, until every node has executed or a full round makes no progress.
// A node's Process returning false is recorded, not raised; downstream nodes
// still run and fail on their own terms. The call is blocking and
// single-threaded.
func (p *Pipeline) Execute() *ExecutionResult {
	p.emit(Event{Type: EventPipelineStarted, Data: map[string]any{"nodes": len(p.nodes)}})

	executed := make(map[string]bool, len(p.nodes))
	results := make(map[string]NodeResult, len(p.nodes))
	ids := p.NodeIDs()

	for len(executed) < len(p.nodes) {
		progress := false
		for _, id := range ids {
			node := p.nodes[id]
			if executed[id] || !p.ready(node, executed) {
				continue
			}
			p.emit(Event{Type: EventNodeStarted, NodeID: id})
			success := node.Process()
			executed[id] = true
			outputs := make(map[string]any, len(node.Outputs()))
			for name, port := range node.Outputs() {
				outputs[name] = port.Value()
			}
			results[id] = NodeResult{Success: success, Outputs: outputs}
			if success {
				p.emit(Event{Type: EventNodeCompleted, NodeID: id})
			} else {
				p.emit(Event{Type: EventNodeFailed, NodeID: id})
			}
			progress = true
		}
		if !progress {
			// Cycle or permanently missing input: stop with partial results.
			p.emit(Event{Type: EventPipelineStalled, Data: map[string]any{
				"executed": len(executed), "total": len(p.nodes),
			}})
			return &ExecutionResult{Results: results, Complete: false}
		}
	}

	p.emit(Event{Type: EventPipelineCompleted})
	return &ExecutionResult{Results: results, Complete: true}
}

// ready reports whether a node may run this round: its own readiness
// predicate holds and every node feeding it through the ledger has already
// executed (successfully or not). The upstream gate keeps results in
// dependency order without computing an explicit topological sort.
func (p *Pipeline) ready(node Node, executed map[string]bool) bool {
	if !node.CanExecute() {
		return false
	}
	for _, conn := range p.connections {
		if conn.TargetNodeID == node.ID() && !executed[conn.SourceNodeID] {
			return false
		}
	}
	return true
}

// ExecutionOrder computes a Kahn-style topological ordering from connection
// in-degrees. It is informational only; Execute does not consume it. When
// the graph contains a cycle the returned order is shorter than the node
// count.
func (p *Pipeline) ExecutionOrder() []string {
	inDegree := make(map[string]int, len(p.nodes))
	for id := range p.nodes {
		inDegree[id] = 0
	}
	for _, conn := range p.connections {
		if _, ok := inDegree[conn.TargetNodeID]; ok {
			inDegree[conn.TargetNodeID]++
		}
	}

	var queue []string
	for _, id := range p.NodeIDs() {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	order := make([]string, 0, len(p.nodes))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		order = append(order, current)
		for _, conn := range p.Connections() {
			if conn.SourceNodeID != current {
				continue
			}
			inDegree[conn.TargetNodeID]--
			if inDegree[conn.TargetNodeID] == 0 {
				queue = append(queue, conn.TargetNodeID)
			}
		}
	}
	return order
}
