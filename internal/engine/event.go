package engine

import "fmt"

// Event is one input event. The set of events is closed: only the types in
// this package implement it.
type Event interface {
	fmt.Stringer
	apply(s State) State
}

// Apply returns the state after e. A nil event leaves s unchanged.
func Apply(s State, e Event) State {
	if e == nil {
		return s
	}

	return e.apply(s)
}

// ApplyAll folds events over s in order.
func ApplyAll(s State, events ...Event) State {
	for _, e := range events {
		s = Apply(s, e)
	}

	return s
}

// AngleUnitEvent switches the trig angle unit.
type AngleUnitEvent struct{ Unit AngleUnit }

func (e AngleUnitEvent) String() string { return "angle:" + e.Unit.String() }

func (e AngleUnitEvent) apply(s State) State { return s.SetAngleUnit(e.Unit) }

// ClearEvent is the clear key.
type ClearEvent struct{}

func (ClearEvent) String() string { return "clear" }

func (ClearEvent) apply(s State) State { return s.Clear() }

// ConstantEvent inserts a constant.
type ConstantEvent struct{ Constant Constant }

func (e ConstantEvent) String() string { return "constant:" + e.Constant.String() }

func (e ConstantEvent) apply(s State) State { return s.InsertConstant(e.Constant) }

// DecimalEvent is the decimal point key.
type DecimalEvent struct{}

func (DecimalEvent) String() string { return "decimal" }

func (DecimalEvent) apply(s State) State { return s.InputDecimal() }

// DigitEvent is a digit key.
type DigitEvent struct{ Digit Digit }

func (e DigitEvent) String() string { return fmt.Sprintf("digit:%d", e.Digit) }

func (e DigitEvent) apply(s State) State { return s.InputDigit(e.Digit) }

// EqualsEvent is the equals key.
type EqualsEvent struct{}

func (EqualsEvent) String() string { return "equals" }

func (EqualsEvent) apply(s State) State { return s.Evaluate() }

// FunctionEvent applies a unary function.
type FunctionEvent struct{ Function Function }

func (e FunctionEvent) String() string { return "function:" + e.Function.String() }

func (e FunctionEvent) apply(s State) State { return s.ApplyFunction(e.Function) }

// MemoryEvent is a memory key.
type MemoryEvent struct{ Action MemoryAction }

func (e MemoryEvent) String() string { return "memory:" + e.Action.String() }

func (e MemoryEvent) apply(s State) State { return s.PressMemory(e.Action) }

// OperatorEvent enters a binary operator.
type OperatorEvent struct{ Operator Operator }

func (e OperatorEvent) String() string { return "operator:" + e.Operator.String() }

func (e OperatorEvent) apply(s State) State { return s.SetOperator(e.Operator) }

// PercentEvent is the percent key.
type PercentEvent struct{}

func (PercentEvent) String() string { return "percent" }

func (PercentEvent) apply(s State) State { return s.TogglePercent() }

// ScientificEvent turns the scientific function set on or off.
type ScientificEvent struct{ Enabled bool }

func (e ScientificEvent) String() string { return fmt.Sprintf("scientific:%t", e.Enabled) }

func (e ScientificEvent) apply(s State) State { return s.SetScientific(e.Enabled) }

// SignEvent is the sign toggle key.
type SignEvent struct{}

func (SignEvent) String() string { return "sign" }

func (SignEvent) apply(s State) State { return s.ToggleSign() }
