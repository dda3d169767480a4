// ABOUTME: Aggregate node reducing a sequence's numeric elements: sum, mean, min, max, count, std, median.
// ABOUTME: Non-numeric elements are dropped before reduction; an empty numeric remainder fails the process call.
package flow

import (
	"math"
	"sort"
)

// AggregateNode reduces the numeric elements of the sequence on input
// "data" into a single value on output "result". Non-numeric elements are
// dropped first; the node fails when none remain.
type AggregateNode struct {
	BaseNode
	op string
}

// NewAggregateNode creates an aggregate node for the given operation.
func NewAggregateNode(op string) *AggregateNode {
	n := &AggregateNode{BaseNode: NewBaseNode("aggregate_"+op, "Aggregate ("+op+")"), op: op}
	n.AddInput("data", "list")
	n.AddOutput("result", "number")
	n.Properties()["operation"] = op
	return n
}

// Operation returns the configured reduction name.
func (n *AggregateNode) Operation() string { return n.op }

// Process reduces the numeric elements of the input sequence. It fails
// when the input is absent, not a sequence, holds no numeric elements, or
// the operation name is unrecognized.
func (n *AggregateNode) Process() bool {
	data, isList := asList(n.InputValue("data"))
	if !isList {
		return false
	}

	nums := make([]float64, 0, len(data))
	allInt := true
	for _, x := range data {
		if f, isNum := asFloat(x); isNum {
			nums = append(nums, f)
			if _, isInt := asInt(x); !isInt {
				allInt = false
			}
		}
	}
	if len(nums) == 0 {
		return false
	}

	var result any
	switch n.op {
	case "sum":
		total := 0.0
		for _, f := range nums {
			total += f
		}
		if allInt {
			result = int(total)
		} else {
			result = total
		}
	case "mean":
		total := 0.0
		for _, f := range nums {
			total += f
		}
		result = total / float64(len(nums))
	case "min":
		m := nums[0]
		for _, f := range nums[1:] {
			if f < m {
				m = f
			}
		}
		result = m
	case "max":
		m := nums[0]
		for _, f := range nums[1:] {
			if f > m {
				m = f
			}
		}
		result = m
	case "count":
		result = len(nums)
	case "std":
		result = stddev(nums)
	case "median":
		result = median(nums)
	default:
		return false
	}

	n.SetOutputValue("result", result)
	return true
}

// stddev computes the population standard deviation.
func stddev(nums []float64) float64 {
	mean := 0.0
	for _, f := range nums {
		mean += f
	}
	mean /= float64(len(nums))
	variance := 0.0
	for _, f := range nums {
		d := f - mean
		variance += d * d
	}
	return math.Sqrt(variance / float64(len(nums)))
}

// median returns the middle value, averaging the two central values for
// even-length input.
func median(nums []float64) float64 {
	sorted := append([]float64(nil), nums...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
