// ABOUTME: Tests for the element-wise transform node.
// ABOUTME: Covers square, sqrt, abs, normalize, non-numeric passthrough, and failure on non-sequence input.
package flow

import (
	"math"
	"reflect"
	"testing"
)

func TestTransformNode_SquareKeepsIntegers(t *testing.T) {
	n := NewTransformNode("square")
	n.SetInputValue("data", []any{2, -3, 1.5})

	if !n.Process() {
		t.Fatal("expected process to succeed")
	}
	want := []any{4, 9, 2.25}
	if got := n.OutputValue("transformed_data"); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestTransformNode_SqrtSkipsNegatives(t *testing.T) {
	n := NewTransformNode("sqrt")
	n.SetInputValue("data", []any{9, -4})

	if !n.Process() {
		t.Fatal("expected process to succeed")
	}
	got, isList := n.OutputValue("transformed_data").([]any)
	if !isList || len(got) != 2 {
		t.Fatalf("expected two elements, got %v", got)
	}
	if got[0] != 3.0 {
		t.Errorf("expected sqrt(9)=3.0, got %v", got[0])
	}
	if got[1] != -4 {
		t.Errorf("expected negative element untouched, got %v", got[1])
	}
}

func TestTransformNode_AbsMixed(t *testing.T) {
	n := NewTransformNode("abs")
	n.SetInputValue("data", []any{-2, 3.5, "word"})

	if !n.Process() {
		t.Fatal("expected process to succeed")
	}
	want := []any{2, 3.5, "word"}
	if got := n.OutputValue("transformed_data"); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestTransformNode_NormalizeUnitRange(t *testing.T) {
	n := NewTransformNode("normalize")
	n.SetInputValue("data", []any{10, 20, 30})

	if !n.Process() {
		t.Fatal("expected process to succeed")
	}
	got, isList := n.OutputValue("transformed_data").([]any)
	if !isList || len(got) != 3 {
		t.Fatalf("expected three elements, got %v", got)
	}
	wants := []float64{0, 0.5, 1}
	for i, want := range wants {
		f, isNum := got[i].(float64)
		if !isNum || math.Abs(f-want) > 1e-9 {
			t.Errorf("element %d: expected %v, got %v", i, want, got[i])
		}
	}
}

func TestTransformNode_UnknownKindPassesThrough(t *testing.T) {
	n := NewTransformNode("reticulate")
	data := []any{1, 2}
	n.SetInputValue("data", data)

	if !n.Process() {
		t.Fatal("expected process to succeed")
	}
	if got := n.OutputValue("transformed_data"); !reflect.DeepEqual(got, data) {
		t.Errorf("expected passthrough, got %v", got)
	}
}

func TestTransformNode_NonSequenceFails(t *testing.T) {
	n := NewTransformNode("square")
	n.SetInputValue("data", 42)

	if n.Process() {
		t.Error("expected process to fail on non-sequence input")
	}
}
