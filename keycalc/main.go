// keycalc is a key-driven calculator.
// Install it with `go install github.com/toejough/keycalc/keycalc@latest`, then:
//
//	keycalc eval 3 + 4 =
//	keycalc --scientific run --trace script.keys
//	keycalc repl
//	keycalc mcp --http :8080
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/afero"

	"github.com/toejough/keycalc/keycalc/run"
)

// main is the entry point of the keycalc tool.
func main() {
	if os.Args == nil {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := run.Run(ctx, os.Args, os.Getenv, afero.NewOsFs(), os.Stdin, os.Stdout, os.Stderr)

	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
