// ABOUTME: Bridge between engine port values and the cty type system, plus the restricted evaluation scope.
// ABOUTME: Dynamic logic runs against named input variables and a curated stdlib function table, never arbitrary code.
package logic

import (
	"fmt"
	"math/big"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// scopeFunctions is the full set of functions dynamic logic may call. This
// is the sandbox boundary: expression bodies get arithmetic, comparison,
// and these helpers, and nothing else.
var scopeFunctions = map[string]function.Function{
	"abs":    stdlib.AbsoluteFunc,
	"ceil":   stdlib.CeilFunc,
	"floor":  stdlib.FloorFunc,
	"log":    stdlib.LogFunc,
	"pow":    stdlib.PowFunc,
	"signum": stdlib.SignumFunc,
	"min":    stdlib.MinFunc,
	"max":    stdlib.MaxFunc,
	"int":    stdlib.IntFunc,

	"upper":   stdlib.UpperFunc,
	"lower":   stdlib.LowerFunc,
	"strlen":  stdlib.StrlenFunc,
	"substr":  stdlib.SubstrFunc,
	"reverse": stdlib.ReverseFunc,

	"length": stdlib.LengthFunc,
	"concat": stdlib.ConcatFunc,
}

// evalContext builds the evaluation scope over the given named variables.
func evalContext(vars map[string]cty.Value) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: vars,
		Functions: scopeFunctions,
	}
}

// toCty converts an engine port value into a cty value. Unconvertible
// values surface as an error so the evaluation failure is attributable.
func toCty(v any) (cty.Value, error) {
	switch x := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case bool:
		return cty.BoolVal(x), nil
	case int:
		return cty.NumberIntVal(int64(x)), nil
	case int64:
		return cty.NumberIntVal(x), nil
	case float64:
		return cty.NumberFloatVal(x), nil
	case string:
		return cty.StringVal(x), nil
	case []any:
		if len(x) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, 0, len(x))
		for _, e := range x {
			ev, err := toCty(e)
			if err != nil {
				return cty.NilVal, err
			}
			elems = append(elems, ev)
		}
		return cty.TupleVal(elems), nil
	case map[string]any:
		attrs := make(map[string]cty.Value, len(x))
		for k, e := range x {
			ev, err := toCty(e)
			if err != nil {
				return cty.NilVal, err
			}
			attrs[k] = ev
		}
		return cty.ObjectVal(attrs), nil
	}
	return cty.NilVal, fmt.Errorf("unsupported value type %T", v)
}

// fromCty converts an evaluated cty value back to an engine port value.
// Integral numbers come back as int so downstream integer arithmetic stays
// closed; everything else maps to its natural Go counterpart.
func fromCty(v cty.Value) any {
	if v.IsNull() || !v.IsKnown() {
		return nil
	}
	ty := v.Type()
	switch {
	case ty == cty.Bool:
		return v.True()
	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return int(i)
			}
		}
		f, _ := bf.Float64()
		return f
	case ty == cty.String:
		return v.AsString()
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		out := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			out = append(out, fromCty(ev))
		}
		return out
	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			out[k.AsString()] = fromCty(ev)
		}
		return out
	}
	return nil
}
