// ABOUTME: Tests for data holder, boolean constant, and print nodes.
// ABOUTME: Covers comma-splitting, change broadcasting, unsubscribe, and pass-through behavior.
package flow

import (
	"reflect"
	"testing"
)

func TestDataNode_CommaStringSplitsToTypedList(t *testing.T) {
	n := NewDataNode("values", "1, 2.5, three")

	if !n.Process() {
		t.Fatal("expected process to succeed")
	}
	want := []any{1, 2.5, "three"}
	if got := n.OutputValue("output"); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestDataNode_SetDataBroadcastsChange(t *testing.T) {
	n := NewDataNode("watched", nil)

	var events []ValueEvent
	unsubscribe := n.Changes().Subscribe(func(evt ValueEvent) {
		events = append(events, evt)
	})

	n.SetData(42)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].NodeID != n.ID() || events[0].Value != 42 {
		t.Errorf("unexpected event %+v", events[0])
	}

	unsubscribe()
	n.SetData(43)
	if len(events) != 1 {
		t.Error("expected no events after unsubscribe")
	}
}

func TestDataNode_AlwaysReady(t *testing.T) {
	n := NewDataNode("idle", nil)
	if !n.CanExecute() {
		t.Error("expected data node to be ready with no inputs")
	}
}

func TestArrayDataNode_NoCommaSplitting(t *testing.T) {
	n := NewArrayDataNode("arr", []any{"a, b", 2})

	if !n.Process() {
		t.Fatal("expected process to succeed")
	}
	want := []any{"a, b", 2}
	if got := n.OutputValue("output"); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if n.Type() != "array" {
		t.Errorf("expected type array, got %s", n.Type())
	}
}

func TestBoolNode_ConstantOutput(t *testing.T) {
	yes := NewBoolNode(true)
	no := NewBoolNode(false)

	if !yes.Process() || !no.Process() {
		t.Fatal("expected process to succeed")
	}
	if yes.OutputValue("output") != true {
		t.Error("expected true constant")
	}
	if no.OutputValue("output") != false {
		t.Error("expected false constant")
	}
	if yes.Type() != "true" || no.Type() != "false" {
		t.Errorf("unexpected types %s, %s", yes.Type(), no.Type())
	}
}

func TestPrintNode_PassesThrough(t *testing.T) {
	n := NewPrintNode()
	n.SetInputValue("data", []any{1, 2})

	if !n.Process() {
		t.Fatal("expected process to succeed")
	}
	if got := n.OutputValue("data"); !reflect.DeepEqual(got, []any{1, 2}) {
		t.Errorf("expected passthrough, got %v", got)
	}
}
