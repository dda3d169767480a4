// ABOUTME: Tests for the binary arithmetic node.
// ABOUTME: Covers integer-closed operations, float promotion, and zero-divisor behavior.
package flow

import "testing"

func TestMathNode_AddIntegers(t *testing.T) {
	n := NewMathNode("add")
	n.SetInputValue("a", 10)
	n.SetInputValue("b", 3)

	if !n.Process() {
		t.Fatal("expected process to succeed")
	}
	if got := n.OutputValue("result"); got != 13 {
		t.Errorf("expected 13, got %v (%T)", got, got)
	}
}

func TestMathNode_MixedOperandsPromoteToFloat(t *testing.T) {
	n := NewMathNode("multiply")
	n.SetInputValue("a", 2)
	n.SetInputValue("b", 1.5)

	if !n.Process() {
		t.Fatal("expected process to succeed")
	}
	if got := n.OutputValue("result"); got != 3.0 {
		t.Errorf("expected 3.0, got %v (%T)", got, got)
	}
}

func TestMathNode_IntegerDivisionYieldsFloat(t *testing.T) {
	n := NewMathNode("divide")
	n.SetInputValue("a", 7)
	n.SetInputValue("b", 2)

	if !n.Process() {
		t.Fatal("expected process to succeed")
	}
	if got := n.OutputValue("result"); got != 3.5 {
		t.Errorf("expected 3.5, got %v (%T)", got, got)
	}
}

func TestMathNode_DivideByZeroYieldsZero(t *testing.T) {
	n := NewMathNode("divide")
	n.SetInputValue("a", 10)
	n.SetInputValue("b", 0)

	if !n.Process() {
		t.Fatal("expected process to succeed")
	}
	if got := n.OutputValue("result"); got != 0 {
		t.Errorf("expected 0, got %v (%T)", got, got)
	}
}

func TestMathNode_ModuloByZeroYieldsZero(t *testing.T) {
	n := NewMathNode("modulo")
	n.SetInputValue("a", 10)
	n.SetInputValue("b", 0)

	if !n.Process() {
		t.Fatal("expected process to succeed")
	}
	if got := n.OutputValue("result"); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
}

func TestMathNode_IntegerPower(t *testing.T) {
	n := NewMathNode("power")
	n.SetInputValue("a", 2)
	n.SetInputValue("b", 10)

	if !n.Process() {
		t.Fatal("expected process to succeed")
	}
	if got := n.OutputValue("result"); got != 1024 {
		t.Errorf("expected 1024, got %v (%T)", got, got)
	}
}

func TestMathNode_MissingOperandFails(t *testing.T) {
	n := NewMathNode("add")
	n.SetInputValue("a", 1)

	if n.Process() {
		t.Error("expected process to fail with a missing operand")
	}
}

func TestMathNode_NonNumericOperandFails(t *testing.T) {
	n := NewMathNode("subtract")
	n.SetInputValue("a", "apples")
	n.SetInputValue("b", 2)

	if n.Process() {
		t.Error("expected process to fail with a non-numeric operand")
	}
}

func TestMathNode_CoercesStringOperands(t *testing.T) {
	n := NewMathNode("add")
	n.SetInputValue("a", "40")
	n.SetInputValue("b", "2")

	if !n.Process() {
		t.Fatal("expected process to succeed")
	}
	if got := n.OutputValue("result"); got != 42 {
		t.Errorf("expected 42, got %v (%T)", got, got)
	}
}
