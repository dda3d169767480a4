// ABOUTME: Unary elementwise transform node over a sequence: square, sqrt, abs, log, normalize.
// ABOUTME: Non-numeric elements pass through unchanged; sqrt and log skip out-of-domain elements.
package flow

import "math"

// TransformNode applies an elementwise transformation to the sequence on
// input "data", publishing "transformed_data". Elements outside the
// transform's domain (negative for sqrt, non-positive for log, non-numeric
// anywhere) pass through unchanged.
type TransformNode struct {
	BaseNode
	kind string
}

// NewTransformNode creates a transform node of the given kind.
func NewTransformNode(kind string) *TransformNode {
	n := &TransformNode{BaseNode: NewBaseNode("transform_"+kind, "Transform ("+kind+")"), kind: kind}
	n.AddInput("data", "list")
	n.AddOutput("transformed_data", "list")
	n.Properties()["transform_type"] = kind
	return n
}

// Kind returns the configured transform kind.
func (n *TransformNode) Kind() string { return n.kind }

// Process transforms the input sequence. It fails when the input is absent
// or not a sequence; an unrecognized kind passes the data through.
func (n *TransformNode) Process() bool {
	data, isList := asList(n.InputValue("data"))
	if !isList {
		return false
	}

	var out []any
	switch n.kind {
	case "square":
		out = mapElements(data, func(x any) any {
			if i, isInt := asInt(x); isInt {
				return i * i
			}
			if f, isNum := asFloat(x); isNum {
				return f * f
			}
			return x
		})
	case "sqrt":
		out = mapElements(data, func(x any) any {
			if f, isNum := asFloat(x); isNum && f >= 0 {
				return math.Sqrt(f)
			}
			return x
		})
	case "abs":
		out = mapElements(data, func(x any) any {
			if i, isInt := asInt(x); isInt {
				if i < 0 {
					return -i
				}
				return i
			}
			if f, isNum := asFloat(x); isNum {
				return math.Abs(f)
			}
			return x
		})
	case "log":
		out = mapElements(data, func(x any) any {
			if f, isNum := asFloat(x); isNum && f > 0 {
				return math.Log(f)
			}
			return x
		})
	case "normalize":
		out = normalize(data)
	default:
		out = data
	}

	n.SetOutputValue("transformed_data", out)
	return true
}

func mapElements(data []any, fn func(any) any) []any {
	out := make([]any, len(data))
	for i, x := range data {
		out[i] = fn(x)
	}
	return out
}

// normalize min-max scales numeric elements into [0, 1], computing the
// range over numeric elements only. When all numeric elements are equal a
// unit range avoids division by zero. Non-numeric elements pass through.
func normalize(data []any) []any {
	var minVal, maxVal float64
	found := false
	for _, x := range data {
		f, isNum := asFloat(x)
		if !isNum {
			continue
		}
		if !found || f < minVal {
			minVal = f
		}
		if !found || f > maxVal {
			maxVal = f
		}
		found = true
	}
	if !found {
		return data
	}
	rangeVal := maxVal - minVal
	if rangeVal == 0 {
		rangeVal = 1
	}
	return mapElements(data, func(x any) any {
		if f, isNum := asFloat(x); isNum {
			return (f - minVal) / rangeVal
		}
		return x
	})
}
