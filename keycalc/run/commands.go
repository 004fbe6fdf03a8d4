package run

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gosuri/uilive"

	"github.com/toejough/keycalc"
	"github.com/toejough/keycalc/internal/keys"
	"github.com/toejough/keycalc/internal/mcpserver"
	"github.com/toejough/keycalc/internal/watch"
)

// Functions - Private

// press gates events against the session's current state and dispatches them.
func press(session *keycalc.Session, events []keycalc.Event) (keycalc.State, error) {
	err := keys.Gate(session.State(), events)
	if err != nil {
		return session.State(), err
	}

	return session.Dispatch(events...)
}

func runEval(e env, cmd *evalCmd) error {
	events, err := keys.ParseLine(strings.Join(cmd.Keys, " "))
	if err != nil {
		return err
	}

	session := keycalc.NewSession(keycalc.WithState(e.start), keycalc.WithLogger(e.logger))

	s, err := press(session, events)
	if err != nil {
		return err
	}

	fmt.Fprintln(e.stdout, s.Display())

	return nil
}

func runMCP(ctx context.Context, e env, cmd *mcpCmd) error {
	session := keycalc.NewSession(keycalc.WithState(e.start), keycalc.WithLogger(e.logger))
	srv := mcpserver.New(session, Version, e.logger)

	if cmd.HTTP != "" {
		return srv.ListenHTTP(ctx, cmd.HTTP)
	}

	return srv.ServeStdio(ctx, e.stdin, e.stdout)
}

// runRepl reads one line of keys at a time and shows the screen after each.
// Unknown or disabled keys are reported on stderr and skipped. "help" lists
// the named keys.
func runRepl(ctx context.Context, e env) error {
	out, stop := screenWriter(e.stdout)
	defer stop()

	session := keycalc.NewSession(keycalc.WithState(e.start), keycalc.WithLogger(e.logger))
	show(out, session.State())

	scanner := bufio.NewScanner(e.stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}

		line := strings.TrimSpace(scanner.Text())

		switch line {
		case "quit", "exit":
			return nil
		case "help":
			fmt.Fprintf(e.stderr, "keys: %s\n", strings.Join(keys.Names(), " "))
			continue
		}

		for _, token := range keys.Tokenize(line) {
			events, err := keys.Parse(token)
			if err == nil {
				_, err = press(session, events)
			}

			if err != nil {
				fmt.Fprintf(e.stderr, "ignored: %v\n", err)
			}
		}

		show(out, session.State())
	}

	err := scanner.Err()
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	return nil
}

// runScript replays cmd.File, then with --watch replays it again on every
// change until ctx is done.
func runScript(ctx context.Context, e env, cmd *runCmd) error {
	once := func() error {
		return replay(e, cmd)
	}

	err := once()
	if !cmd.Watch {
		return err
	}

	if err != nil {
		e.logger.Error("script failed", "file", cmd.File, "err", err)
	}

	return watch.Watch(ctx, cmd.File, cmd.Debounce, e.logger, once)
}

func replay(e env, cmd *runCmd) error {
	file, err := e.fs.Open(cmd.File)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", cmd.File, err)
	}

	defer func() { _ = file.Close() }()

	events, err := keys.ParseScript(file)
	if err != nil {
		return fmt.Errorf("%s: %w", cmd.File, err)
	}

	session := keycalc.NewSession(keycalc.WithState(e.start), keycalc.WithLogger(e.logger))

	err = keys.Gate(session.State(), events)
	if err != nil {
		return fmt.Errorf("%s: %w", cmd.File, err)
	}

	for _, event := range events {
		s, dispatchErr := session.Dispatch(event)
		if dispatchErr != nil {
			return dispatchErr
		}

		if cmd.Trace {
			fmt.Fprintf(e.stdout, "%-18s %s\n", event, screen(s))
		}
	}

	fmt.Fprintln(e.stdout, session.State().Display())

	return nil
}

// screen is the one-line calculator face: mode flags, pending operation and
// display.
func screen(s keycalc.State) string {
	var parts []string

	if s.Scientific() {
		parts = append(parts, "SCI")
	}

	if s.AngleUnit() == keycalc.Degrees {
		parts = append(parts, "DEG")
	}

	if s.Memory() != 0 {
		parts = append(parts, "M")
	}

	if first, op, ok := s.Pending(); ok && op != keycalc.OpNone {
		parts = append(parts, keycalc.FormatNumber(first)+" "+op.Symbol())
	}

	return strings.Join(append(parts, s.Display()), "  ")
}

// screenWriter redraws in place on a terminal and appends lines elsewhere.
func screenWriter(stdout io.Writer) (io.Writer, func()) {
	if !isTerminal(stdout) {
		return stdout, func() {}
	}

	live := uilive.New()
	live.Out = stdout
	live.Start()

	return &flushingWriter{live: live}, live.Stop
}

func show(w io.Writer, s keycalc.State) {
	fmt.Fprintln(w, screen(s))
}
