// ABOUTME: Tests for port linking rules and effective value reads.
// ABOUTME: Covers direction constraints, reconnect overwrite, and string coercion.
package flow

import (
	"reflect"
	"testing"
)

func TestPort_ConnectRequiresOppositeDirections(t *testing.T) {
	out := NewPort("result", "number", Output)
	in := NewPort("a", "number", Input)

	if !out.Connect(in) {
		t.Fatal("expected output->input connect to succeed")
	}
	if in.Link() != out || out.Link() != in {
		t.Error("expected symmetric link after connect")
	}

	other := NewPort("b", "number", Input)
	if in.Connect(other) {
		t.Error("expected input->input connect to fail")
	}
	out2 := NewPort("x", "number", Output)
	if out.Connect(out2) {
		t.Error("expected output->output connect to fail")
	}
}

func TestPort_ReconnectOverwritesExistingLink(t *testing.T) {
	out1 := NewPort("r1", "number", Output)
	out2 := NewPort("r2", "number", Output)
	in := NewPort("a", "number", Input)

	out1.Connect(in)
	out2.Connect(in)

	if in.Link() != out2 {
		t.Errorf("expected input linked to second output, got %v", in.Link())
	}
	if out1.Link() != nil {
		t.Error("expected first output unlinked after overwrite")
	}
}

func TestPort_DisconnectIsIdempotent(t *testing.T) {
	out := NewPort("r", "number", Output)
	in := NewPort("a", "number", Input)
	out.Connect(in)

	in.Disconnect()
	in.Disconnect()

	if in.Link() != nil || out.Link() != nil {
		t.Error("expected both ports unlinked")
	}
}

func TestPort_ReadPullsFromLinkedOutput(t *testing.T) {
	out := NewPort("r", "number", Output)
	in := NewPort("a", "number", Input)
	out.Connect(in)

	out.SetValue(7)
	in.SetValue(99) // stale local value must be shadowed by the link

	if got := in.Read(); got != 7 {
		t.Errorf("expected linked read 7, got %v", got)
	}
}

func TestPort_ReadCoercesStrings(t *testing.T) {
	in := NewPort("a", "any", Input)

	in.SetValue("42")
	if got := in.Read(); got != 42 {
		t.Errorf("expected int 42, got %v (%T)", got, got)
	}

	in.SetValue("3.5")
	if got := in.Read(); got != 3.5 {
		t.Errorf("expected float 3.5, got %v (%T)", got, got)
	}

	in.SetValue("[1, 2.5, hello]")
	want := []any{1, 2.5, "hello"}
	if got := in.Read(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	in.SetValue("plain text")
	if got := in.Read(); got != "plain text" {
		t.Errorf("expected passthrough string, got %v", got)
	}
}

func TestCoerce_NestedListLiteral(t *testing.T) {
	got := Coerce("[[1, 2], [3]]")
	want := []any{[]any{1, 2}, []any{3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestCoerce_UnbalancedBracketsStayString(t *testing.T) {
	if got := Coerce("[1, 2"); got != "[1, 2" {
		t.Errorf("expected unbalanced literal to stay a string, got %v", got)
	}
}
