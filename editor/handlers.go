// ABOUTME: HTTP handler methods for all server endpoints
// ABOUTME: Covers session CRUD, node and connection mutations, execution, library, and definitions

package editor

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/flumeworks/flume/flow"
	"github.com/flumeworks/flume/logic"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error body.
func writeError(w http.ResponseWriter, status int, format string, args ...any) {
	writeJSON(w, status, map[string]string{"error": fmt.Sprintf(format, args...)})
}

// portInfo describes one port in API responses.
type portInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// nodeInfo describes one node in API responses.
type nodeInfo struct {
	ID       string     `json:"id"`
	Type     string     `json:"type"`
	Name     string     `json:"name"`
	Position []float64  `json:"position"`
	Inputs   []portInfo `json:"inputs"`
	Outputs  []portInfo `json:"outputs"`
}

func describeNode(n flow.Node) nodeInfo {
	x, y := n.Position()
	info := nodeInfo{
		ID:       n.ID(),
		Type:     n.Type(),
		Name:     n.Name(),
		Position: []float64{x, y},
		Inputs:   make([]portInfo, 0, len(n.Inputs())),
		Outputs:  make([]portInfo, 0, len(n.Outputs())),
	}
	for name, p := range n.Inputs() {
		info.Inputs = append(info.Inputs, portInfo{Name: name, Type: p.Type})
	}
	for name, p := range n.Outputs() {
		info.Outputs = append(info.Outputs, portInfo{Name: name, Type: p.Type})
	}
	return info
}

// session resolves the session from the URL, writing a 404 when missing.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	id := chi.URLParam(r, "id")
	sess, ok := s.store.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "session %s not found", id)
		return nil, false
	}
	return sess, true
}

// handleCatalog lists the registered node types.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"types": s.catalog.Types()})
}

// handleCreateSession creates a session around a fresh pipeline, or around
// a pipeline restored from a snapshot posted as the request body.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string         `json:"name"`
		Snapshot *flow.Snapshot `json:"snapshot"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid request body: %v", err)
			return
		}
	}

	var p *flow.Pipeline
	if req.Snapshot != nil {
		p = flow.Restore(req.Snapshot, s.catalog)
	} else {
		name := req.Name
		if name == "" {
			name = "Pipeline"
		}
		p = flow.NewPipeline(name)
	}

	sess := s.store.Create(p)
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":   sess.ID,
		"name": p.Name,
	})
}

// handleListSessions lists live session IDs.
func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"sessions": s.store.List()})
}

// handleGetSession returns the session's pipeline snapshot.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.Lock()
	snap := sess.Pipeline.Snapshot()
	sess.Unlock()
	writeJSON(w, http.StatusOK, snap)
}

// handleDeleteSession discards a session.
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.store.Delete(id) {
		writeError(w, http.StatusNotFound, "session %s not found", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAddNode creates a catalog node and adds it to the pipeline.
func (s *Server) handleAddNode(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req struct {
		Type     string    `json:"type"`
		Name     string    `json:"name"`
		Position []float64 `json:"position"`
		Data     any       `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body: %v", err)
		return
	}

	node, err := s.catalog.Create(req.Type)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "%v", err)
		return
	}
	if req.Name != "" {
		node.SetName(req.Name)
	}
	if len(req.Position) == 2 {
		node.SetPosition(req.Position[0], req.Position[1])
	}
	if req.Data != nil {
		if holder, ok := node.(flow.DataHolder); ok {
			holder.SetData(req.Data)
		}
	}

	sess.Lock()
	sess.Pipeline.AddNode(node)
	sess.Unlock()

	writeJSON(w, http.StatusCreated, describeNode(node))
}

// handleDeleteNode removes a node and its connections.
func (s *Server) handleDeleteNode(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	nodeID := chi.URLParam(r, "nodeID")
	sess.Lock()
	removed := sess.Pipeline.RemoveNode(nodeID)
	sess.Unlock()
	if !removed {
		writeError(w, http.StatusNotFound, "node %s not found", nodeID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSetNodeData sets the held value of a data-holding node.
func (s *Server) handleSetNodeData(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req struct {
		Data any `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body: %v", err)
		return
	}

	nodeID := chi.URLParam(r, "nodeID")
	sess.Lock()
	defer sess.Unlock()

	node := sess.Pipeline.Node(nodeID)
	if node == nil {
		writeError(w, http.StatusNotFound, "node %s not found", nodeID)
		return
	}
	holder, isHolder := node.(flow.DataHolder)
	if !isHolder {
		writeError(w, http.StatusUnprocessableEntity, "node %s does not hold data", nodeID)
		return
	}
	holder.SetData(req.Data)
	writeJSON(w, http.StatusOK, map[string]any{"id": nodeID, "data": holder.Data()})
}

// handleAddConnection wires an output port to an input port.
func (s *Server) handleAddConnection(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req struct {
		SourceNode string `json:"source_node"`
		SourcePort string `json:"source_port"`
		TargetNode string `json:"target_node"`
		TargetPort string `json:"target_port"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body: %v", err)
		return
	}

	sess.Lock()
	connID, err := sess.Pipeline.Connect(req.SourceNode, req.SourcePort, req.TargetNode, req.TargetPort)
	sess.Unlock()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "%v", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": connID})
}

// handleDeleteConnection unwires a connection by ID.
func (s *Server) handleDeleteConnection(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	connID := chi.URLParam(r, "connID")
	sess.Lock()
	removed := sess.Pipeline.Disconnect(connID)
	sess.Unlock()
	if !removed {
		writeError(w, http.StatusNotFound, "connection %s not found", connID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleExecute runs the pipeline and returns per-node results plus the
// completion flag.
func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	sess.Lock()
	result := sess.Pipeline.Execute()
	sess.Unlock()
	writeJSON(w, http.StatusOK, result)
}

// handleExecutionOrder returns a topological node ordering.
func (s *Server) handleExecutionOrder(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	sess.Lock()
	order := sess.Pipeline.ExecutionOrder()
	sess.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"order": order})
}

// handleSnapshot returns the serialized pipeline.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	sess.Lock()
	snap := sess.Pipeline.Snapshot()
	sess.Unlock()
	writeJSON(w, http.StatusOK, snap)
}

// handleSaveToLibrary saves the session's pipeline under a name.
func (s *Server) handleSaveToLibrary(w http.ResponseWriter, r *http.Request) {
	if s.library == nil {
		writeError(w, http.StatusNotFound, "no pipeline library configured")
		return
	}
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body: %v", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusUnprocessableEntity, "name is required")
		return
	}

	sess.Lock()
	snap := sess.Pipeline.Snapshot()
	sess.Unlock()
	snap.Name = req.Name

	if err := s.library.Save(req.Name, snap); err != nil {
		writeError(w, http.StatusInternalServerError, "%v", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"name": req.Name})
}

// handleListLibrary lists the saved pipelines.
func (s *Server) handleListLibrary(w http.ResponseWriter, r *http.Request) {
	if s.library == nil {
		writeError(w, http.StatusNotFound, "no pipeline library configured")
		return
	}
	entries, err := s.library.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "%v", err)
		return
	}
	if entries == nil {
		entries = []LibraryEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"pipelines": entries})
}

// handleOpenFromLibrary restores a saved pipeline into a new session.
func (s *Server) handleOpenFromLibrary(w http.ResponseWriter, r *http.Request) {
	if s.library == nil {
		writeError(w, http.StatusNotFound, "no pipeline library configured")
		return
	}
	name := chi.URLParam(r, "name")
	snap, err := s.library.Load(name)
	if err != nil {
		writeError(w, http.StatusNotFound, "%v", err)
		return
	}

	p := flow.Restore(snap, s.catalog)
	sess := s.store.Create(p)
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":   sess.ID,
		"name": p.Name,
	})
}

// handleDeleteFromLibrary removes a saved pipeline.
func (s *Server) handleDeleteFromLibrary(w http.ResponseWriter, r *http.Request) {
	if s.library == nil {
		writeError(w, http.StatusNotFound, "no pipeline library configured")
		return
	}
	name := chi.URLParam(r, "name")
	removed, err := s.library.Delete(name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "%v", err)
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "pipeline %q not found", name)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleListDefinitions lists the registered dynamic node definitions.
func (s *Server) handleListDefinitions(w http.ResponseWriter, r *http.Request) {
	if s.registry == nil {
		writeError(w, http.StatusNotFound, "no definitions registry configured")
		return
	}
	defs := s.registry.List()
	if defs == nil {
		defs = []logic.Definition{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"definitions": defs})
}

// handleAddDefinition validates, stores, persists, and installs a new
// dynamic node definition so sessions can create it immediately.
func (s *Server) handleAddDefinition(w http.ResponseWriter, r *http.Request) {
	if s.registry == nil {
		writeError(w, http.StatusNotFound, "no definitions registry configured")
		return
	}

	var def logic.Definition
	if err := json.NewDecoder(r.Body).Decode(&def); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body: %v", err)
		return
	}

	// Reject definitions whose expression logic cannot compile before
	// touching the registry.
	if _, err := logic.NewNode(def); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "%v", err)
		return
	}

	if err := s.registry.Add(def); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "%v", err)
		return
	}
	if err := s.registry.Save(); err != nil {
		writeError(w, http.StatusInternalServerError, "%v", err)
		return
	}
	s.catalog.Register(def.Name, func() (flow.Node, error) {
		return logic.NewNode(def)
	})

	writeJSON(w, http.StatusCreated, def)
}

// handleDeleteDefinition removes a dynamic node definition and unregisters
// its catalog type. Nodes already placed in sessions keep running.
func (s *Server) handleDeleteDefinition(w http.ResponseWriter, r *http.Request) {
	if s.registry == nil {
		writeError(w, http.StatusNotFound, "no definitions registry configured")
		return
	}
	name := chi.URLParam(r, "name")
	if !s.registry.Remove(name) {
		writeError(w, http.StatusNotFound, "definition %q not found", name)
		return
	}
	if err := s.registry.Save(); err != nil {
		writeError(w, http.StatusInternalServerError, "%v", err)
		return
	}
	s.catalog.Unregister(name)
	w.WriteHeader(http.StatusNoContent)
}
