// ABOUTME: Event types for pipeline lifecycle observation and value-changed broadcasting.
// ABOUTME: Replaces framework signals with an explicit subscription interface for data-holder nodes.
package flow

import (
	"sync"
	"time"
)

// EventType identifies the kind of pipeline lifecycle event.
type EventType string

const (
	EventPipelineStarted   EventType = "pipeline.started"
	EventPipelineCompleted EventType = "pipeline.completed"
	EventPipelineStalled   EventType = "pipeline.stalled"
	EventNodeStarted       EventType = "node.started"
	EventNodeCompleted     EventType = "node.completed"
	EventNodeFailed        EventType = "node.failed"
)

// Event is a lifecycle event emitted by the scheduler during execution.
type Event struct {
	Type      EventType
	NodeID    string
	Data      map[string]any
	Timestamp time.Time
}

// ValueEvent reports a data-holder node's value change to subscribers.
type ValueEvent struct {
	NodeID    string
	Port      string
	Value     any
	Timestamp time.Time
}

// Broadcaster fans value-changed events out to registered listeners. It is
// the explicit replacement for a UI framework's change signal: widgets (or
// anything else) subscribe, data nodes publish.
type Broadcaster struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]func(ValueEvent)
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{listeners: make(map[int]func(ValueEvent))}
}

// Subscribe registers a listener and returns a function that removes it.
func (b *Broadcaster) Subscribe(fn func(ValueEvent)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.listeners[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.listeners, id)
	}
}

// Publish delivers an event to every registered listener, stamping the
// current time if unset. Listeners run synchronously on the caller's
// goroutine; the engine is single-threaded by contract.
func (b *Broadcaster) Publish(evt ValueEvent) {
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now()
	}
	b.mu.Lock()
	fns := make([]func(ValueEvent), 0, len(b.listeners))
	for _, fn := range b.listeners {
		fns = append(fns, fn)
	}
	b.mu.Unlock()
	for _, fn := range fns {
		fn(evt)
	}
}
