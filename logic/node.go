// ABOUTME: DynamicNode builds a runnable pipeline node from a Definition.
// ABOUTME: Logic bodies compile once; function-form compile failures fall back to a null-output routine.
package logic

import (
	"fmt"
	"log"
	"regexp"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/flumeworks/flume/flow"
)

// Form distinguishes the two logic body shapes.
type Form int

const (
	// ExpressionForm is a sequence of output assignments evaluated in order.
	ExpressionForm Form = iota
	// FunctionForm wraps the assignments in an execute block; it may compute
	// intermediates and only the declared outputs are kept.
	FunctionForm
)

func (f Form) String() string {
	if f == FunctionForm {
		return "function"
	}
	return "expression"
}

// CompileState reports how a node's logic body compiled.
type CompileState int

const (
	Uncompiled CompileState = iota
	Compiled
	// FallbackCompiled means the function-form body failed to compile and a
	// null-output routine stands in for it.
	FallbackCompiled
)

func (s CompileState) String() string {
	switch s {
	case Compiled:
		return "compiled"
	case FallbackCompiled:
		return "fallback"
	}
	return "uncompiled"
}

var executeBlockRe = regexp.MustCompile(`(?m)^\s*execute\s*{`)

// assignment is one compiled output formula.
type assignment struct {
	name string
	expr hclsyntax.Expression
}

// DynamicNode is a pipeline node whose behavior comes from a user-supplied
// definition rather than built-in code.
type DynamicNode struct {
	flow.BaseNode

	def     Definition
	form    Form
	state   CompileState
	program []assignment
}

// NewNode builds a dynamic node from def. Definitions with an empty logic
// body are rejected here; a body that fails to compile is only an error
// for expression form, function form degrades to the fallback routine.
func NewNode(def Definition) (*DynamicNode, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	n := &DynamicNode{BaseNode: flow.NewBaseNode(def.Name, def.Name)}
	if err := n.apply(def); err != nil {
		return nil, err
	}
	return n, nil
}

// UpdateDefinition swaps in a new definition: the ports are rebuilt, the
// logic recompiled, and any existing connections dropped.
func (n *DynamicNode) UpdateDefinition(def Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}
	return n.apply(def)
}

func (n *DynamicNode) apply(def Definition) error {
	n.def = def
	n.SetName(def.Name)
	n.ResetPorts()
	for _, in := range def.Inputs {
		n.AddInput(in.Name, in.Type)
	}
	for _, out := range def.Outputs {
		n.AddOutput(out.Name, out.Type)
	}

	n.form = ExpressionForm
	if executeBlockRe.MatchString(def.Logic) {
		n.form = FunctionForm
	}

	program, err := compile(def.Name, def.Logic, n.form)
	if err != nil {
		if n.form == FunctionForm {
			log.Printf("dynamic node %q: compile failed, using fallback: %v", def.Name, err)
			n.program = nil
			n.state = FallbackCompiled
			return nil
		}
		n.state = Uncompiled
		return fmt.Errorf("dynamic node %q: %w", def.Name, err)
	}
	n.program = program
	n.state = Compiled
	return nil
}

// compile parses the logic body and extracts the ordered assignments. For
// function form the assignments live inside the execute block; expression
// form keeps them at the top level.
func compile(name, logic string, form Form) ([]assignment, error) {
	file, diags := hclsyntax.ParseConfig([]byte(logic), name+".logic", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse logic: %w", diags)
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("parse logic: unexpected body type")
	}

	if form == FunctionForm {
		var block *hclsyntax.Block
		for _, b := range body.Blocks {
			if b.Type == "execute" {
				block = b
				break
			}
		}
		if block == nil {
			return nil, fmt.Errorf("no execute block")
		}
		body = block.Body
	} else if len(body.Blocks) > 0 {
		return nil, fmt.Errorf("blocks are not allowed in expression logic")
	}

	program := make([]assignment, 0, len(body.Attributes))
	for name, attr := range body.Attributes {
		program = append(program, assignment{name: name, expr: attr.Expr})
	}
	sort.Slice(program, func(i, j int) bool {
		return program[i].expr.Range().Start.Byte < program[j].expr.Range().Start.Byte
	})
	return program, nil
}

// Definition returns the definition the node was built from.
func (n *DynamicNode) Definition() Definition { return n.def }

// Form reports which logic shape the node carries.
func (n *DynamicNode) Form() Form { return n.form }

// State reports how the logic body compiled.
func (n *DynamicNode) State() CompileState { return n.state }

// Process evaluates the compiled assignments against the current input
// values. Expression form reports failure when evaluation fails; function
// form never fails the node, it emits null outputs instead and logs any
// computed name that matches no declared output.
func (n *DynamicNode) Process() bool {
	if n.state == FallbackCompiled {
		for name := range n.Outputs() {
			n.SetOutputValue(name, nil)
		}
		return true
	}

	vars := make(map[string]cty.Value, len(n.Inputs()))
	for name := range n.Inputs() {
		v, err := toCty(n.InputValue(name))
		if err != nil {
			log.Printf("dynamic node %q: input %s: %v", n.Name(), name, err)
			v = cty.NullVal(cty.DynamicPseudoType)
		}
		vars[name] = v
	}

	scope := make(map[string]any, len(n.program))
	for _, a := range n.program {
		val, diags := a.expr.Value(evalContext(vars))
		if diags.HasErrors() {
			if n.form == FunctionForm {
				log.Printf("dynamic node %q: eval %s failed, using null outputs: %v", n.Name(), a.name, diags)
				for name := range n.Outputs() {
					n.SetOutputValue(name, nil)
				}
				return true
			}
			log.Printf("dynamic node %q: eval %s failed: %v", n.Name(), a.name, diags)
			return false
		}
		vars[a.name] = val
		scope[a.name] = fromCty(val)
	}

	outputs := n.Outputs()
	for name, val := range scope {
		if _, declared := outputs[name]; !declared {
			if n.form == FunctionForm {
				log.Printf("dynamic node %q: result %s matches no declared output", n.Name(), name)
			}
			continue
		}
		n.SetOutputValue(name, val)
	}
	return true
}
