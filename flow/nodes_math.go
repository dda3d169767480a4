// ABOUTME: Binary arithmetic node over two numeric inputs: add, subtract, multiply, divide, power, modulo.
// ABOUTME: Divide and modulo return 0 on a zero divisor; a missing operand fails the process call.
package flow

import "math"

// MathNode performs a binary arithmetic operation over inputs "a" and "b",
// publishing "result". Integer operands produce integer results where the
// operation is closed over integers; division always produces a float
// except for the zero-divisor case, which yields 0.
type MathNode struct {
	BaseNode
	op string
}

// NewMathNode creates an arithmetic node for the given operation name.
func NewMathNode(op string) *MathNode {
	n := &MathNode{BaseNode: NewBaseNode("math_"+op, "Math ("+op+")"), op: op}
	n.AddInput("a", "number")
	n.AddInput("b", "number")
	n.AddOutput("result", "number")
	n.Properties()["operation"] = op
	return n
}

// Operation returns the configured operation name.
func (n *MathNode) Operation() string { return n.op }

// Process computes the configured operation. It fails when either operand
// is absent or non-numeric, or when the operation name is unrecognized.
func (n *MathNode) Process() bool {
	a := n.InputValue("a")
	b := n.InputValue("b")
	if a == nil || b == nil {
		return false
	}

	if ai, aIsInt := asInt(a); aIsInt {
		if bi, bIsInt := asInt(b); bIsInt {
			result, handled := intOp(n.op, ai, bi)
			if handled {
				n.SetOutputValue("result", result)
				return true
			}
		}
	}

	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if !aok || !bok {
		return false
	}
	result, handled := floatOp(n.op, af, bf)
	if !handled {
		return false
	}
	n.SetOutputValue("result", result)
	return true
}

// intOp evaluates operations closed over integers. Division falls through
// to the float path except when the divisor is zero.
func intOp(op string, a, b int) (any, bool) {
	switch op {
	case "add":
		return a + b, true
	case "subtract":
		return a - b, true
	case "multiply":
		return a * b, true
	case "modulo":
		if b == 0 {
			return 0, true
		}
		return a % b, true
	case "divide":
		if b == 0 {
			return 0, true
		}
		return float64(a) / float64(b), true
	case "power":
		if b >= 0 {
			return intPow(a, b), true
		}
		return math.Pow(float64(a), float64(b)), true
	}
	return nil, false
}

func floatOp(op string, a, b float64) (any, bool) {
	switch op {
	case "add":
		return a + b, true
	case "subtract":
		return a - b, true
	case "multiply":
		return a * b, true
	case "divide":
		if b == 0 {
			return 0, true
		}
		return a / b, true
	case "power":
		return math.Pow(a, b), true
	case "modulo":
		if b == 0 {
			return 0, true
		}
		return math.Mod(a, b), true
	}
	return nil, false
}

// intPow computes a**b for b >= 0 by repeated squaring.
func intPow(a, b int) int {
	result := 1
	for b > 0 {
		if b&1 == 1 {
			result *= a
		}
		a *= a
		b >>= 1
	}
	return result
}
