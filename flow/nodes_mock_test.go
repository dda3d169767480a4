// ABOUTME: Tests for the synthetic-data generator node.
// ABOUTME: Covers readiness, sequence sizing, numeric bounds, and category output types.
package flow

import "testing"

func TestMockNode_AlwaysReady(t *testing.T) {
	n := NewMockNode("mock_integers", "integer", 5)
	if !n.CanExecute() {
		t.Error("expected mock node to be ready with no inputs")
	}
}

func TestMockNode_SizeFromInputOverridesDefault(t *testing.T) {
	n := NewMockNode("mock_word", "word", 3)
	n.Seed(1)
	n.SetInputValue("size", 7)

	if !n.Process() {
		t.Fatal("expected process to succeed")
	}
	data, isList := n.OutputValue("mock_data").([]any)
	if !isList {
		t.Fatalf("expected a sequence, got %T", n.OutputValue("mock_data"))
	}
	if len(data) != 7 {
		t.Errorf("expected 7 elements, got %d", len(data))
	}
}

func TestMockNode_IntegerBounds(t *testing.T) {
	n := NewMockNode("mock_integers", "integer", 50)
	n.Seed(42)
	n.SetInputValue("min_length", 10)
	n.SetInputValue("max_length", 20)

	if !n.Process() {
		t.Fatal("expected process to succeed")
	}
	data := n.OutputValue("mock_data").([]any)
	for _, x := range data {
		i, isInt := x.(int)
		if !isInt {
			t.Fatalf("expected int elements, got %T", x)
		}
		if i < 10 || i > 20 {
			t.Errorf("element %d out of bounds [10, 20]", i)
		}
	}
}

func TestMockNode_AgesAreRealistic(t *testing.T) {
	n := NewMockNode("mock_ages", "age", 30)
	n.Seed(7)

	if !n.Process() {
		t.Fatal("expected process to succeed")
	}
	data := n.OutputValue("mock_data").([]any)
	for _, x := range data {
		i, isInt := x.(int)
		if !isInt || i < 0 || i > 120 {
			t.Errorf("implausible age %v", x)
		}
	}
}

func TestMockNode_EmailsContainDomain(t *testing.T) {
	n := NewMockNode("mock_emails", "email", 10)
	n.Seed(3)

	if !n.Process() {
		t.Fatal("expected process to succeed")
	}
	data := n.OutputValue("mock_data").([]any)
	for _, x := range data {
		s, isStr := x.(string)
		if !isStr || len(s) == 0 {
			t.Fatalf("expected string emails, got %v", x)
		}
		at := false
		for i := 0; i < len(s); i++ {
			if s[i] == '@' {
				at = true
			}
		}
		if !at {
			t.Errorf("expected an @ in %q", s)
		}
	}
}

func TestMockNode_SeededRunsRepeat(t *testing.T) {
	a := NewMockNode("mock_floats", "float", 5)
	b := NewMockNode("mock_floats", "float", 5)
	a.Seed(99)
	b.Seed(99)

	if !a.Process() || !b.Process() {
		t.Fatal("expected both runs to succeed")
	}
	da := a.OutputValue("mock_data").([]any)
	db := b.OutputValue("mock_data").([]any)
	for i := range da {
		if da[i] != db[i] {
			t.Errorf("element %d differs: %v vs %v", i, da[i], db[i])
		}
	}
}
