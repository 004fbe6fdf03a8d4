package mcpserver

import (
	"context"
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/toejough/keycalc/internal/engine"
	"github.com/toejough/keycalc/internal/keys"
)

// toolHandler is the mcp-go handler signature.
type toolHandler = func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

func (s *Server) addTools() {
	s.mcp.AddTool(mcp.NewTool("press",
		mcp.WithDescription("Press a sequence of keys, e.g. \"12 + 3 =\" or \"sci deg 90 sin\""),
		mcp.WithString("keys", mcp.Required(), mcp.Description("Whitespace separated key tokens")),
	), s.handlePress)

	s.mcp.AddTool(mcp.NewTool("input_digit",
		mcp.WithDescription("Press a digit key"),
		mcp.WithNumber("digit", mcp.Required(), mcp.Min(0), mcp.Max(float64(engine.MaxDigit))),
	), s.handleInputDigit)

	s.mcp.AddTool(mcp.NewTool("input_decimal",
		mcp.WithDescription("Press the decimal point key"),
	), s.simple(engine.DecimalEvent{}))

	s.mcp.AddTool(mcp.NewTool("set_operator",
		mcp.WithDescription("Press a binary operator key; a pending operation is evaluated first. "+
			"Power and root need scientific mode"),
		mcp.WithString("operator", mcp.Required(), mcp.Enum(names(engine.Operators())...)),
	), s.handleSetOperator)

	s.mcp.AddTool(mcp.NewTool("evaluate",
		mcp.WithDescription("Press equals"),
	), s.simple(engine.EqualsEvent{}))

	s.mcp.AddTool(mcp.NewTool("clear",
		mcp.WithDescription("Clear the display and any pending operation; memory is kept"),
	), s.simple(engine.ClearEvent{}))

	s.mcp.AddTool(mcp.NewTool("apply_function",
		mcp.WithDescription("Apply a scientific function to the display (scientific mode only)"),
		mcp.WithString("function", mcp.Required(), mcp.Enum(names(engine.Functions())...)),
	), s.handleApplyFunction)

	s.mcp.AddTool(mcp.NewTool("insert_constant",
		mcp.WithDescription("Insert a constant into the display (scientific mode only)"),
		mcp.WithString("constant", mcp.Required(), mcp.Enum(names(engine.Constants())...)),
	), s.handleInsertConstant)

	s.mcp.AddTool(mcp.NewTool("memory",
		mcp.WithDescription("Press a memory key (scientific mode only)"),
		mcp.WithString("action", mcp.Required(), mcp.Enum(names(engine.MemoryActions())...)),
	), s.handleMemory)

	s.mcp.AddTool(mcp.NewTool("toggle_sign",
		mcp.WithDescription("Negate the display"),
	), s.simple(engine.SignEvent{}))

	s.mcp.AddTool(mcp.NewTool("percent",
		mcp.WithDescription("Divide the display by 100"),
	), s.simple(engine.PercentEvent{}))

	s.mcp.AddTool(mcp.NewTool("set_mode",
		mcp.WithDescription("Change the scientific flag and/or the trig angle unit"),
		mcp.WithBoolean("scientific", mcp.Description("Enable the scientific function set")),
		mcp.WithString("angle_unit", mcp.Enum(engine.Radians.String(), engine.Degrees.String())),
	), s.handleSetMode)

	s.mcp.AddTool(mcp.NewTool("reset",
		mcp.WithDescription("Reset everything, memory and modes included"),
	), s.handleReset)
}

func (s *Server) handleApplyFunction(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, _ := request.GetArguments()["function"].(string)

	fn, ok := engine.ParseFunction(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown function %q", name)), nil
	}

	return s.dispatch(engine.FunctionEvent{Function: fn})
}

func (s *Server) handleInputDigit(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	d, ok := request.GetArguments()["digit"].(float64)
	if !ok || d < 0 || d > float64(engine.MaxDigit) || d != math.Trunc(d) {
		return mcp.NewToolResultError("digit must be a whole number from 0 to 9"), nil
	}

	return s.dispatch(engine.DigitEvent{Digit: engine.Digit(d)})
}

func (s *Server) handleInsertConstant(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, _ := request.GetArguments()["constant"].(string)

	c, ok := engine.ParseConstant(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown constant %q", name)), nil
	}

	return s.dispatch(engine.ConstantEvent{Constant: c})
}

func (s *Server) handleMemory(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, _ := request.GetArguments()["action"].(string)

	action, ok := engine.ParseMemoryAction(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown memory action %q", name)), nil
	}

	return s.dispatch(engine.MemoryEvent{Action: action})
}

func (s *Server) handlePress(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	line, ok := request.GetArguments()["keys"].(string)
	if !ok {
		return mcp.NewToolResultError("keys is required"), nil
	}

	events, err := keys.ParseLine(line)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return s.dispatch(events...)
}

func (s *Server) handleReset(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.session.Reset()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return snapshotResult(st)
}

func (s *Server) handleSetMode(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	var events []engine.Event

	if raw, present := args["scientific"]; present {
		enabled, ok := raw.(bool)
		if !ok {
			return mcp.NewToolResultError("scientific must be a boolean"), nil
		}

		events = append(events, engine.ScientificEvent{Enabled: enabled})
	}

	if raw, present := args["angle_unit"]; present {
		name, _ := raw.(string)

		unit, ok := engine.ParseAngleUnit(name)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown angle unit %q", name)), nil
		}

		events = append(events, engine.AngleUnitEvent{Unit: unit})
	}

	return s.dispatch(events...)
}

func (s *Server) handleSetOperator(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, _ := request.GetArguments()["operator"].(string)

	op, ok := engine.ParseOperator(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown operator %q", name)), nil
	}

	return s.dispatch(engine.OperatorEvent{Operator: op})
}

// simple returns a handler for a tool that takes no arguments.
func (s *Server) simple(e engine.Event) toolHandler {
	return func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return s.dispatch(e)
	}
}

func names[T fmt.Stringer](values []T) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, v.String())
	}

	return out
}
