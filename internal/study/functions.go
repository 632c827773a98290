package study

import (
	"math"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/gocty"
)

// spaceFunc builds a cty function of (start, stop, n) that returns n points
// mapped through point(start, step, i).
func spaceFunc(point func(start, step float64, i int) float64) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "start", Type: cty.Number},
			{Name: "stop", Type: cty.Number},
			{Name: "n", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.List(cty.Number)),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			var (
				start, stop float64
				n           int
			)
			if err := gocty.FromCtyValue(args[0], &start); err != nil {
				return cty.NilVal, function.NewArgError(0, err)
			}
			if err := gocty.FromCtyValue(args[1], &stop); err != nil {
				return cty.NilVal, function.NewArgError(1, err)
			}
			if err := gocty.FromCtyValue(args[2], &n); err != nil {
				return cty.NilVal, function.NewArgError(2, err)
			}
			if n < 0 {
				return cty.NilVal, function.NewArgErrorf(2, "must be non-negative, got %d", n)
			}
			if n == 0 {
				return cty.ListValEmpty(cty.Number), nil
			}
			step := 0.0
			if n > 1 {
				step = (stop - start) / float64(n-1)
			}
			vals := make([]cty.Value, n)
			for i := range vals {
				vals[i] = cty.NumberFloatVal(point(start, step, i))
			}
			return cty.ListVal(vals), nil
		},
	})
}

// LinspaceFunc returns n evenly spaced values from start to stop inclusive.
var LinspaceFunc = spaceFunc(func(start, step float64, i int) float64 {
	return start + float64(i)*step
})

// LogspaceFunc returns n values 10^e for e evenly spaced from start to stop.
var LogspaceFunc = spaceFunc(func(start, step float64, i int) float64 {
	return math.Pow(10, start+float64(i)*step)
})

func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"linspace": LinspaceFunc,
			"logspace": LogspaceFunc,
		},
	}
}
