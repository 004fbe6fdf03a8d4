package engine

import (
	"strconv"
	"strings"
)

// ApplyFunction replaces the display with fn applied to its value. The next
// digit starts a fresh operand, while a following operator treats the
// result as if it had been typed.
func (s State) ApplyFunction(fn Function) State {
	s.display = FormatNumber(fn.Apply(s.Value(), s.angle))
	s.awaiting = true

	return s
}

// Clear resets the entry and any pending operation. Memory and mode flags
// are kept.
func (s State) Clear() State {
	s.display = "0"
	s.firstOperand = 0
	s.hasFirst = false
	s.operator = OpNone
	s.awaiting = false

	return s
}

// Evaluate completes the pending operation with the display as the right
// operand. Without a pending operator it returns s unchanged.
func (s State) Evaluate() State {
	if s.operator == OpNone {
		return s
	}

	result := s.operator.Apply(s.firstOperand, s.Value())
	s.display = FormatNumber(result)
	s.firstOperand = result
	s.hasFirst = true
	s.operator = OpNone
	s.awaiting = false

	return s
}

// InputDecimal adds a decimal point. A display already holding one is left
// alone.
func (s State) InputDecimal() State {
	if s.awaiting {
		s.display = "0."
		s.awaiting = false

		return s
	}

	if !strings.Contains(s.display, ".") {
		s.display += "."
	}

	return s
}

// InputDigit types d. Digits above MaxDigit are ignored.
func (s State) InputDigit(d Digit) State {
	if d > MaxDigit {
		return s
	}

	digit := strconv.Itoa(int(d))

	switch {
	case s.awaiting:
		s.display = digit
		s.awaiting = false
	case s.display == "0":
		s.display = digit
	default:
		s.display += digit
	}

	return s
}

// InsertConstant shows c at full precision.
func (s State) InsertConstant(c Constant) State {
	s.display = FormatNumber(c.Value())
	s.awaiting = true

	return s
}

// PressMemory performs a memory key. The pending operation is never touched.
func (s State) PressMemory(action MemoryAction) State {
	switch action {
	case MemoryClear:
		s.memory = 0
	case MemoryRecall:
		s.display = FormatNumber(s.memory)
		s.awaiting = true
	case MemoryAdd:
		s.memory += s.Value()
		s.awaiting = true
	case MemorySubtract:
		s.memory -= s.Value()
		s.awaiting = true
	}

	return s
}

// SetAngleUnit switches the unit used by trig functions.
func (s State) SetAngleUnit(u AngleUnit) State {
	s.angle = u
	return s
}

// SetOperator enters a binary operator. The display becomes the left operand
// only when none is held. If an operator is already pending it is evaluated
// first and its result becomes the new left operand, so "3 + 4 +" shows 7.
// After "=" the result stays the left operand, so "3 + 4 = 5 + 1 =" shows 8.
// OpNone is ignored.
func (s State) SetOperator(op Operator) State {
	if op == OpNone {
		return s
	}

	switch {
	case !s.hasFirst:
		s.firstOperand = s.Value()
		s.hasFirst = true
	case s.operator != OpNone:
		result := s.operator.Apply(s.firstOperand, s.Value())
		s.display = FormatNumber(result)
		s.firstOperand = result
	}

	s.operator = op
	s.awaiting = true

	return s
}

// SetScientific enables or disables the scientific function set.
func (s State) SetScientific(enabled bool) State {
	s.scientific = enabled
	return s
}

// TogglePercent divides the display by 100.
func (s State) TogglePercent() State {
	s.display = FormatNumber(s.Value() / 100) //nolint:mnd // percent
	return s
}

// ToggleSign negates the display.
func (s State) ToggleSign() State {
	s.display = FormatNumber(-s.Value())
	return s
}
