// ABOUTME: Sequence-shaping nodes: filter by predicate or named condition, join two sequences, split at an index.
// ABOUTME: Filter and split treat their secondary inputs as optional; join treats absent sequences as empty.
package flow

// Predicate is a callable filter condition over sequence elements.
type Predicate func(any) bool

// FilterNode keeps elements of the sequence on input "data" that satisfy
// the condition on input "condition", publishing "filtered_data". The
// condition may be a Predicate or one of the named conditions "positive",
// "negative", "even", "odd". An absent or unrecognized condition passes
// the sequence through unchanged.
type FilterNode struct {
	BaseNode
}

// NewFilterNode creates a filter node.
func NewFilterNode() *FilterNode {
	n := &FilterNode{BaseNode: NewBaseNode("filter", "Filter")}
	n.AddInput("data", "list")
	n.AddInput("condition", "any")
	n.AddOutput("filtered_data", "list")
	return n
}

// CanExecute requires only the data input; the condition is optional.
func (n *FilterNode) CanExecute() bool {
	p := n.Inputs()["data"]
	return p.Link() != nil || p.Value() != nil
}

// Process filters the input sequence. It fails when data is absent or not
// a sequence.
func (n *FilterNode) Process() bool {
	data, isList := asList(n.InputValue("data"))
	if !isList {
		return false
	}

	condition := n.InputValue("condition")
	pred := resolveCondition(condition)
	if pred == nil {
		n.SetOutputValue("filtered_data", data)
		return true
	}

	filtered := make([]any, 0, len(data))
	for _, x := range data {
		if pred(x) {
			filtered = append(filtered, x)
		}
	}
	n.SetOutputValue("filtered_data", filtered)
	return true
}

// resolveCondition maps a condition value to a predicate, or nil for
// pass-through. Callable conditions are honored directly; "even" and "odd"
// apply to integers only, "positive" and "negative" to any numeric.
func resolveCondition(condition any) Predicate {
	switch c := condition.(type) {
	case Predicate:
		return c
	case func(any) bool:
		return c
	case string:
		switch c {
		case "positive":
			return func(x any) bool { f, isNum := asFloat(x); return isNum && f > 0 }
		case "negative":
			return func(x any) bool { f, isNum := asFloat(x); return isNum && f < 0 }
		case "even":
			return func(x any) bool { i, isInt := asInt(x); return isInt && i%2 == 0 }
		case "odd":
			return func(x any) bool { i, isInt := asInt(x); return isInt && i%2 != 0 }
		}
	}
	return nil
}

// JoinNode concatenates the sequences on inputs "data1" and "data2" in
// order, publishing "joined_data". Absent inputs are treated as empty.
type JoinNode struct {
	BaseNode
}

// NewJoinNode creates a join node.
func NewJoinNode() *JoinNode {
	n := &JoinNode{BaseNode: NewBaseNode("join", "Join")}
	n.AddInput("data1", "list")
	n.AddInput("data2", "list")
	n.AddOutput("joined_data", "list")
	return n
}

// CanExecute requires at least one input linked or set; a join of two
// absent sequences is meaningless, but either side alone may be missing.
func (n *JoinNode) CanExecute() bool {
	for _, p := range n.Inputs() {
		if p.Link() != nil || p.Value() != nil {
			return true
		}
	}
	return false
}

// Process concatenates the two sequences first-then-second. A present but
// non-sequence input fails the call.
func (n *JoinNode) Process() bool {
	data1, ok1 := optionalList(n.InputValue("data1"))
	data2, ok2 := optionalList(n.InputValue("data2"))
	if !ok1 || !ok2 {
		return false
	}
	joined := make([]any, 0, len(data1)+len(data2))
	joined = append(joined, data1...)
	joined = append(joined, data2...)
	n.SetOutputValue("joined_data", joined)
	return true
}

// optionalList treats nil as an empty sequence and rejects present
// non-sequence values.
func optionalList(v any) ([]any, bool) {
	if v == nil {
		return nil, true
	}
	return asList(v)
}

// SplitNode splits the sequence on input "data" at the index on input
// "split_index" into a front portion "data1" and back portion "data2".
// The index defaults to half the sequence length and clamps into range.
type SplitNode struct {
	BaseNode
}

// NewSplitNode creates a split node.
func NewSplitNode() *SplitNode {
	n := &SplitNode{BaseNode: NewBaseNode("split", "Split")}
	n.AddInput("data", "list")
	n.AddInput("split_index", "number")
	n.AddOutput("data1", "list")
	n.AddOutput("data2", "list")
	return n
}

// CanExecute requires only the data input; the split index is optional.
func (n *SplitNode) CanExecute() bool {
	p := n.Inputs()["data"]
	return p.Link() != nil || p.Value() != nil
}

// Process splits the sequence. It fails when the sequence is absent or not
// a sequence.
func (n *SplitNode) Process() bool {
	data, isList := asList(n.InputValue("data"))
	if !isList {
		return false
	}

	index := len(data) / 2
	if i, isInt := asInt(n.InputValue("split_index")); isInt {
		index = i
	}
	if index < 0 {
		index = 0
	}
	if index > len(data) {
		index = len(data)
	}

	n.SetOutputValue("data1", append([]any{}, data[:index]...))
	n.SetOutputValue("data2", append([]any{}, data[index:]...))
	return true
}
