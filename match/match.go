// Package match provides gomega matchers for keycalc states.
// This package is designed to be dot-imported alongside gomega matchers:
//
//	import (
//	    . "github.com/onsi/gomega"
//	    . "github.com/toejough/keycalc/match"
//	)
//
//	g.Expect(state).To(HaveDisplay("7"))
//	g.Expect(state).To(HavePendingOperation(7, keycalc.Add))
package match

import (
	"errors"
	"fmt"
	"math"

	"github.com/davecgh/go-spew/spew"

	"github.com/toejough/keycalc/internal/engine"
)

// errTypeMismatch is a sentinel error for non-State actuals.
var errTypeMismatch = errors.New("type mismatch")

// dumper prints State fields rather than calling State.String.
//
//nolint:gochecknoglobals // shared read-only config
var dumper = spew.ConfigState{Indent: "  ", DisableMethods: true, DisablePointerAddresses: true}

// Matcher defines the interface for matching a state.
// Compatible with gomega.GomegaMatcher via duck typing.
type Matcher interface {
	Match(actual any) (success bool, err error)
	FailureMessage(actual any) string
	NegatedFailureMessage(actual any) string
}

// BeAwaitingOperand matches a state whose next digit starts a fresh operand.
func BeAwaitingOperand() Matcher {
	return stateMatcher{
		desc: "to be awaiting an operand",
		check: func(s engine.State) bool {
			return s.AwaitingOperand()
		},
	}
}

// BeInScientificMode matches a state with the scientific function set enabled.
func BeInScientificMode() Matcher {
	return stateMatcher{
		desc: "to be in scientific mode",
		check: func(s engine.State) bool {
			return s.Scientific()
		},
	}
}

// HaveAngleUnit matches a state using the given trig angle unit.
func HaveAngleUnit(unit engine.AngleUnit) Matcher {
	return stateMatcher{
		desc: "to use " + unit.String(),
		check: func(s engine.State) bool {
			return s.AngleUnit() == unit
		},
	}
}

// HaveDisplay matches a state showing exactly display.
func HaveDisplay(display string) Matcher {
	return stateMatcher{
		desc: fmt.Sprintf("to display %q", display),
		check: func(s engine.State) bool {
			return s.Display() == display
		},
	}
}

// HaveMemory matches a state whose memory register holds m.
func HaveMemory(m float64) Matcher {
	return stateMatcher{
		desc: "to have memory " + engine.FormatNumber(m),
		check: func(s engine.State) bool {
			return sameNumber(s.Memory(), m)
		},
	}
}

// HaveNoPendingOperation matches a state with no operator pending.
func HaveNoPendingOperation() Matcher {
	return stateMatcher{
		desc: "to have no pending operation",
		check: func(s engine.State) bool {
			return s.Operator() == engine.OpNone
		},
	}
}

// HavePendingOperation matches a state whose pending operation is "first op".
func HavePendingOperation(first float64, op engine.Operator) Matcher {
	return stateMatcher{
		desc: fmt.Sprintf("to have pending %s %s", engine.FormatNumber(first), op.Symbol()),
		check: func(s engine.State) bool {
			got, gotOp, ok := s.Pending()
			return ok && gotOp == op && sameNumber(got, first)
		},
	}
}

// HaveDisplayValue matches a state whose display parses to v. NaN matches NaN.
func HaveDisplayValue(v float64) Matcher {
	return stateMatcher{
		desc: "to have value " + engine.FormatNumber(v),
		check: func(s engine.State) bool {
			return sameNumber(s.Value(), v)
		},
	}
}

// stateMatcher is the implementation behind every matcher in this package.
type stateMatcher struct {
	desc  string
	check func(engine.State) bool
}

func (m stateMatcher) FailureMessage(actual any) string {
	return fmt.Sprintf("Expected\n%s%s", dump(actual), m.desc)
}

func (m stateMatcher) Match(actual any) (bool, error) {
	s, ok := asState(actual)
	if !ok {
		return false, fmt.Errorf("%w: expected engine.State, got %T", errTypeMismatch, actual)
	}

	return m.check(s), nil
}

func (m stateMatcher) NegatedFailureMessage(actual any) string {
	return fmt.Sprintf("Expected\n%snot %s", dump(actual), m.desc)
}

func asState(actual any) (engine.State, bool) {
	switch s := actual.(type) {
	case engine.State:
		return s, true
	case *engine.State:
		if s == nil {
			return engine.State{}, false
		}

		return *s, true
	}

	return engine.State{}, false
}

// dump prints the summary line followed by the field-level spew output.
func dump(actual any) string {
	if s, ok := asState(actual); ok {
		return "    " + s.String() + "\n" + dumper.Sdump(actual)
	}

	return dumper.Sdump(actual)
}

func sameNumber(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}

	return a == b
}
