// Command curveprep prepares measurement curves for model training.
//
// Usage:
//
//	curveprep <command> [flags]
//
// Commands:
//
//	synth    write synthetic features and loading curves to a store
//	prep     smooth the curves of a store and extract their peak values
//	extend   append raw curves or peak values from a second store
//	inspect  print per-curve statistics and a peak value summary
//
// Stores are chosen by file extension: .db, .sqlite and .sqlite3 open a
// SQLite database, .xlsx an Excel workbook.
//
// Examples:
//
//	curveprep synth -out data.db -curves 8 -points 1000
//	curveprep prep -in data.db -config curveprep.yaml
//	curveprep extend -in data.db -from more.xlsx -maxima
//	curveprep inspect -in data.db
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
)

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: curveprep <command> [flags]\n\n")
	fmt.Fprintf(w, "Commands:\n")
	fmt.Fprintf(w, "  synth    write synthetic features and loading curves to a store\n")
	fmt.Fprintf(w, "  prep     smooth the curves of a store and extract their peak values\n")
	fmt.Fprintf(w, "  extend   append raw curves or peak values from a second store\n")
	fmt.Fprintf(w, "  inspect  print per-curve statistics and a peak value summary\n")
	fmt.Fprintf(w, "\nRun 'curveprep <command> -h' for command flags.\n")
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stderr)
		return errUsage
	}

	cmd, ok := commands[args[0]]
	if !ok {
		if args[0] == "-h" || args[0] == "-help" || args[0] == "help" {
			usage(stdout)
			return nil
		}
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		usage(stderr)
		return errUsage
	}
	return cmd(ctx, args[1:], stdout, stderr)
}
