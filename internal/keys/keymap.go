package keys

import (
	"sort"

	"github.com/toejough/keycalc/internal/engine"
)

// Names returns every non-numeric token Parse accepts, sorted.
func Names() []string {
	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// named maps lower-cased key tokens to their event.
//
//nolint:gochecknoglobals // lookup table
var named = map[string]engine.Event{
	".": engine.DecimalEvent{},

	"+":     engine.OperatorEvent{Operator: engine.Add},
	"-":     engine.OperatorEvent{Operator: engine.Subtract},
	"*":     engine.OperatorEvent{Operator: engine.Multiply},
	"x":     engine.OperatorEvent{Operator: engine.Multiply},
	"×":     engine.OperatorEvent{Operator: engine.Multiply},
	"/":     engine.OperatorEvent{Operator: engine.Divide},
	"÷":     engine.OperatorEvent{Operator: engine.Divide},
	"^":     engine.OperatorEvent{Operator: engine.Power},
	"pow":   engine.OperatorEvent{Operator: engine.Power},
	"root":  engine.OperatorEvent{Operator: engine.Root},
	"yroot": engine.OperatorEvent{Operator: engine.Root},

	"=":     engine.EqualsEvent{},
	"c":     engine.ClearEvent{},
	"ac":    engine.ClearEvent{},
	"clear": engine.ClearEvent{},
	"%":     engine.PercentEvent{},
	"+/-":   engine.SignEvent{},
	"±":     engine.SignEvent{},
	"neg":   engine.SignEvent{},

	"sin":    engine.FunctionEvent{Function: engine.Sin},
	"cos":    engine.FunctionEvent{Function: engine.Cos},
	"tan":    engine.FunctionEvent{Function: engine.Tan},
	"log":    engine.FunctionEvent{Function: engine.Log10},
	"log10":  engine.FunctionEvent{Function: engine.Log10},
	"ln":     engine.FunctionEvent{Function: engine.Ln},
	"sqrt":   engine.FunctionEvent{Function: engine.Sqrt},
	"√":      engine.FunctionEvent{Function: engine.Sqrt},
	"sq":     engine.FunctionEvent{Function: engine.Square},
	"square": engine.FunctionEvent{Function: engine.Square},
	"x^2":    engine.FunctionEvent{Function: engine.Square},
	"cube":   engine.FunctionEvent{Function: engine.Cube},
	"x^3":    engine.FunctionEvent{Function: engine.Cube},
	"1/x":    engine.FunctionEvent{Function: engine.Reciprocal},
	"recip":  engine.FunctionEvent{Function: engine.Reciprocal},
	"exp":    engine.FunctionEvent{Function: engine.Exp},

	"pi": engine.ConstantEvent{Constant: engine.Pi},
	"π":  engine.ConstantEvent{Constant: engine.Pi},
	"e":  engine.ConstantEvent{Constant: engine.E},

	"mc": engine.MemoryEvent{Action: engine.MemoryClear},
	"mr": engine.MemoryEvent{Action: engine.MemoryRecall},
	"m+": engine.MemoryEvent{Action: engine.MemoryAdd},
	"m-": engine.MemoryEvent{Action: engine.MemorySubtract},

	"sci":     engine.ScientificEvent{Enabled: true},
	"sci:on":  engine.ScientificEvent{Enabled: true},
	"sci:off": engine.ScientificEvent{Enabled: false},
	"deg":     engine.AngleUnitEvent{Unit: engine.Degrees},
	"rad":     engine.AngleUnitEvent{Unit: engine.Radians},
}
