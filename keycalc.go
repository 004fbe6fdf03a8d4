// Package keycalc is a key-driven calculator engine.
// Callers feed it one input event per key press and render the state it
// returns after each one.
//
// This is the public API entry point. Implementation lives in internal/engine.
package keycalc

import (
	"github.com/toejough/keycalc/internal/engine"
	"github.com/toejough/keycalc/internal/keys"
)

// AngleUnit selects how trig functions read their argument.
type AngleUnit = engine.AngleUnit

// Angle units.
const (
	Radians = engine.Radians
	Degrees = engine.Degrees
)

// Class describes what kind of number the display holds.
type Class = engine.Class

// Display classes.
const (
	Finite     = engine.Finite
	Infinite   = engine.Infinite
	NotANumber = engine.NotANumber
)

// Constant is a value that can be inserted into the display.
type Constant = engine.Constant

// Constants.
const (
	Pi = engine.Pi
	E  = engine.E
)

// Digit is a digit key, 0 through 9.
type Digit = engine.Digit

// Event is one input event.
type Event = engine.Event

// Event types re-exported from internal/engine.
type (
	AngleUnitEvent  = engine.AngleUnitEvent
	ClearEvent      = engine.ClearEvent
	ConstantEvent   = engine.ConstantEvent
	DecimalEvent    = engine.DecimalEvent
	DigitEvent      = engine.DigitEvent
	EqualsEvent     = engine.EqualsEvent
	FunctionEvent   = engine.FunctionEvent
	MemoryEvent     = engine.MemoryEvent
	OperatorEvent   = engine.OperatorEvent
	PercentEvent    = engine.PercentEvent
	ScientificEvent = engine.ScientificEvent
	SignEvent       = engine.SignEvent
)

// Function is a unary scientific function.
type Function = engine.Function

// Functions.
const (
	Sin        = engine.Sin
	Cos        = engine.Cos
	Tan        = engine.Tan
	Log10      = engine.Log10
	Ln         = engine.Ln
	Sqrt       = engine.Sqrt
	Square     = engine.Square
	Cube       = engine.Cube
	Reciprocal = engine.Reciprocal
	Exp        = engine.Exp
)

// MemoryAction is a memory register key.
type MemoryAction = engine.MemoryAction

// Memory actions.
const (
	MemoryClear    = engine.MemoryClear
	MemoryRecall   = engine.MemoryRecall
	MemoryAdd      = engine.MemoryAdd
	MemorySubtract = engine.MemorySubtract
)

// Operator is a binary operator.
type Operator = engine.Operator

// Operators. OpNone means nothing is pending.
const (
	OpNone   = engine.OpNone
	Add      = engine.Add
	Subtract = engine.Subtract
	Multiply = engine.Multiply
	Divide   = engine.Divide
	Power    = engine.Power
	Root     = engine.Root
)

// State is an immutable calculator state.
type State = engine.State

// Errors re-exported from internal/keys.
var (
	ErrUnknownKey         = keys.ErrUnknownKey
	ErrScientificDisabled = keys.ErrScientificDisabled
)

// Apply returns the state after e.
func Apply(s State, e Event) State {
	return engine.Apply(s, e)
}

// ApplyAll applies events to s in order.
func ApplyAll(s State, events ...Event) State {
	return engine.ApplyAll(s, events...)
}

// FormatNumber renders v as the display would show it.
func FormatNumber(v float64) string {
	return engine.FormatNumber(v)
}

// NewState returns the state at the start of a session.
func NewState() State {
	return engine.New()
}

// ParseKeys translates a line of key tokens into events.
func ParseKeys(line string) ([]Event, error) {
	return keys.ParseLine(line)
}

// ParseNumber reads the numeric prefix of a display string.
func ParseNumber(s string) float64 {
	return engine.ParseNumber(s)
}
