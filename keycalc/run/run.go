// Package run implements the keycalc command in a testable way.
package run

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/spf13/afero"

	"github.com/toejough/keycalc"
)

// Version is reported by --version and to MCP clients.
const Version = "0.1.0"

// ErrNoCommand is returned when no subcommand is given.
var ErrNoCommand = errors.New("no command given")

// Structs - Private

// cliArgs defines the command-line arguments.
type cliArgs struct {
	Debug      bool `arg:"--debug"      help:"log every transition to stderr [env: KEYCALC_DEBUG]"`
	Degrees    bool `arg:"--degrees"    help:"start with trig functions in degrees [env: KEYCALC_DEGREES]"`
	Scientific bool `arg:"--scientific" help:"start with the scientific keys enabled [env: KEYCALC_SCIENTIFIC]"`

	Eval *evalCmd `arg:"subcommand:eval" help:"press keys and print the display"`
	Run  *runCmd  `arg:"subcommand:run"  help:"replay a key script"`
	Repl *replCmd `arg:"subcommand:repl" help:"press keys interactively"`
	MCP  *mcpCmd  `arg:"subcommand:mcp"  help:"serve the calculator to MCP clients"`
}

func (cliArgs) Description() string {
	return "keycalc is a key-driven calculator."
}

func (cliArgs) Version() string {
	return "keycalc " + Version
}

type evalCmd struct {
	Keys []string `arg:"positional,required" help:"key tokens, e.g. 3 + 4 ="`
}

type mcpCmd struct {
	HTTP string `arg:"--http" help:"serve streamable HTTP on this address instead of stdio"`
}

type replCmd struct{}

type runCmd struct {
	File     string        `arg:"positional,required" help:"script of key tokens, # starts a comment"`
	Trace    bool          `arg:"--trace"             help:"print every key and the display it produced"`
	Watch    bool          `arg:"--watch"             help:"re-run whenever the script changes"`
	Debounce time.Duration `arg:"--debounce"          help:"quiet period before a re-run"      default:"200ms"`
}

// env is everything a subcommand needs from the outside world.
type env struct {
	fs     afero.Fs
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
	start  keycalc.State
}

// Functions - Public

// Run executes keycalc. It takes command-line arguments, an environment
// variable getter, the filesystem scripts are read from, and the standard
// streams. ctx bounds the long-running subcommands (run --watch, repl, mcp).
func Run(
	ctx context.Context,
	args []string,
	getEnv func(string) string,
	fs afero.Fs,
	stdin io.Reader,
	stdout, stderr io.Writer,
) error {
	parsed, parser, err := parseArgs(args, stdout)
	if err != nil || parser == nil {
		return err
	}

	applyEnv(&parsed, getEnv)

	e := env{
		fs:     fs,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: newLogger(stderr, parsed.Debug),
		start:  startState(parsed),
	}

	switch {
	case parsed.Eval != nil:
		return runEval(e, parsed.Eval)
	case parsed.Run != nil:
		return runScript(ctx, e, parsed.Run)
	case parsed.Repl != nil:
		return runRepl(ctx, e)
	case parsed.MCP != nil:
		return runMCP(ctx, e, parsed.MCP)
	}

	parser.WriteUsage(stderr)

	return ErrNoCommand
}

// Functions - Private

// applyEnv turns on each flag whose variable holds a true value.
func applyEnv(parsed *cliArgs, getEnv func(string) string) {
	for name, flag := range map[string]*bool{
		"KEYCALC_DEBUG":      &parsed.Debug,
		"KEYCALC_DEGREES":    &parsed.Degrees,
		"KEYCALC_SCIENTIFIC": &parsed.Scientific,
	} {
		if on, err := strconv.ParseBool(getEnv(name)); err == nil && on {
			*flag = true
		}
	}
}

// newLogger writes text records to w, at debug level when debug is set.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// parseArgs parses command-line arguments into cliArgs. A nil parser with a
// nil error means help or version was printed and there is nothing to run.
func parseArgs(args []string, stdout io.Writer) (cliArgs, *arg.Parser, error) {
	var parsed cliArgs

	parser, err := arg.NewParser(arg.Config{Program: "keycalc", IgnoreEnv: true}, &parsed)
	if err != nil {
		return cliArgs{}, nil, fmt.Errorf("failed to create argument parser: %w", err)
	}

	var cmdArgs []string
	if len(args) > 1 {
		cmdArgs = args[1:]
	}

	err = parser.Parse(cmdArgs)

	switch {
	case errors.Is(err, arg.ErrHelp):
		_ = parser.WriteHelpForSubcommand(stdout, parser.SubcommandNames()...)
		return cliArgs{}, nil, nil
	case errors.Is(err, arg.ErrVersion):
		fmt.Fprintln(stdout, parsed.Version())
		return cliArgs{}, nil, nil
	case err != nil:
		return cliArgs{}, nil, fmt.Errorf("failed to parse arguments: %w", err)
	}

	return parsed, parser, nil
}

func startState(parsed cliArgs) keycalc.State {
	s := keycalc.NewState().SetScientific(parsed.Scientific)
	if parsed.Degrees {
		s = s.SetAngleUnit(keycalc.Degrees)
	}

	return s
}
