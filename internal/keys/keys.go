// Package keys translates key tokens, as typed on a command line, in a
// script file, or sent by a remote client, into engine events.
package keys

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/toejough/keycalc/internal/engine"
)

// Errors - Public

var (
	// ErrUnknownKey is returned for a token that names no key.
	ErrUnknownKey = errors.New("unknown key")
	// ErrScientificDisabled is returned by Gate for scientific keys while the
	// scientific function set is off.
	ErrScientificDisabled = errors.New("scientific functions are disabled")
)

// Functions - Public

// Gate rejects scientific events while s has the scientific set disabled. Events that turn the set on earlier in the same batch count.
func Gate(s engine.State, events []engine.Event) error {
	enabled := s.Scientific()

	for _, e := range events {
		if toggle, ok := e.(engine.ScientificEvent); ok {
			enabled = toggle.Enabled
			continue
		}

		if !enabled && IsScientific(e) {
			return fmt.Errorf("%w: %s", ErrScientificDisabled, e)
		}
	}

	return nil
}

// IsScientific reports whether e belongs to the scientific key set: functions,
// constants, memory keys, power and root.
func IsScientific(e engine.Event) bool {
	switch e := e.(type) {
	case engine.FunctionEvent, engine.ConstantEvent, engine.MemoryEvent:
		return true
	case engine.OperatorEvent:
		return e.Operator == engine.Power || e.Operator == engine.Root
	}

	return false
}

// Parse translates one token into the events it stands for. Number tokens
// such as "12.5" expand into one event per character.
func Parse(token string) ([]engine.Event, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrUnknownKey)
	}

	if isNumber(token) {
		return numberEvents(token), nil
	}

	if e, ok := named[strings.ToLower(token)]; ok {
		return []engine.Event{e}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownKey, token)
}

// ParseLine translates every token on a line.
func ParseLine(line string) ([]engine.Event, error) {
	var events []engine.Event

	for _, token := range Tokenize(line) {
		parsed, err := Parse(token)
		if err != nil {
			return nil, err
		}

		events = append(events, parsed...)
	}

	return events, nil
}

// ParseScript translates a whole script. Errors name the line they came from.
func ParseScript(r io.Reader) ([]engine.Event, error) {
	var events []engine.Event

	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++

		parsed, err := ParseLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		events = append(events, parsed...)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	return events, nil
}

// Tokenize splits a line on whitespace. A '#' starts a comment that runs to
// the end of the line.
func Tokenize(line string) []string {
	if before, _, found := strings.Cut(line, "#"); found {
		line = before
	}

	return strings.Fields(line)
}

// Functions - Private

func isNumber(token string) bool {
	hasDigit := false

	for _, r := range token {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case r == '.':
		default:
			return false
		}
	}

	return hasDigit
}

func numberEvents(token string) []engine.Event {
	events := make([]engine.Event, 0, len(token))

	for _, r := range token {
		if r == '.' {
			events = append(events, engine.DecimalEvent{})

			continue
		}

		events = append(events, engine.DigitEvent{Digit: engine.Digit(r - '0')})
	}

	return events
}
