package mcpserver

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/toejough/keycalc/internal/engine"
)

// Snapshot is the JSON form of a state. Numbers are carried as display text
// because NaN and Infinity have no JSON encoding.
type Snapshot struct {
	Display         string  `json:"display"`
	Operator        string  `json:"operator"`
	FirstOperand    *string `json:"first_operand"`
	AwaitingOperand bool    `json:"awaiting_operand"`
	Memory          string  `json:"memory"`
	Scientific      bool    `json:"scientific"`
	AngleUnit       string  `json:"angle_unit"`
	Class           string  `json:"class"`
}

// NewSnapshot captures s. FirstOperand is nil until an operand has been captured.
func NewSnapshot(s engine.State) Snapshot {
	snap := Snapshot{
		Display:         s.Display(),
		Operator:        s.Operator().String(),
		AwaitingOperand: s.AwaitingOperand(),
		Memory:          engine.FormatNumber(s.Memory()),
		Scientific:      s.Scientific(),
		AngleUnit:       s.AngleUnit().String(),
		Class:           s.Classify().String(),
	}

	if first, _, ok := s.Pending(); ok {
		text := engine.FormatNumber(first)
		snap.FirstOperand = &text
	}

	return snap
}

func snapshotResult(s engine.State) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(NewSnapshot(s))
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}

	return mcp.NewToolResultText(string(data)), nil
}
