// ABOUTME: Connection ledger entry mirroring a live port-to-port link at the pipeline level.
// ABOUTME: Created only through Pipeline.Connect and removed through Pipeline.Disconnect.
package flow

import "github.com/oklog/ulid/v2"

// Connection records a directed edge from an output port to an input port.
// It is a pipeline-level ledger entry kept consistent with the live port
// links; the ULID id sorts in creation order.
type Connection struct {
	ID           string `json:"id" yaml:"id"`
	SourceNodeID string `json:"source_node" yaml:"source_node"`
	SourcePort   string `json:"source_port" yaml:"source_port"`
	TargetNodeID string `json:"target_node" yaml:"target_node"`
	TargetPort   string `json:"target_port" yaml:"target_port"`
}

// NewConnection creates a ledger entry with a fresh ULID id.
func NewConnection(sourceNodeID, sourcePort, targetNodeID, targetPort string) *Connection {
	return &Connection{
		ID:           ulid.Make().String(),
		SourceNodeID: sourceNodeID,
		SourcePort:   sourcePort,
		TargetNodeID: targetNodeID,
		TargetPort:   targetPort,
	}
}
