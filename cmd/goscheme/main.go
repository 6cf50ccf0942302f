// Command goscheme is the embeddable scheme.Context's host CLI: run a
// file, evaluate a one-off expression, or drop into a REPL when no
// input is given.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/jbenes-go/goscheme/printer"
	"github.com/jbenes-go/goscheme/scheme"
	"github.com/jbenes-go/goscheme/value"
)

const (
	exitOK      = 0
	exitNoInput = 66
	exitIOError = 74
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var evalExpr string
	var showStats bool

	logger := log.New(os.Stderr, "", 0)

	root := &cobra.Command{
		Use:          "goscheme [file]",
		Short:        "a small tree-walking scheme interpreter",
		SilenceUsage: true,
	}
	exitCode := exitOK
	root.Args = cobra.MaximumNArgs(1)
	root.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := scheme.New(scheme.Config{
			Stdout: os.Stdout,
			ErrorFn: func(line, col int, msg string) {
				if line < 0 {
					logger.Printf("runtime error: %s", msg)
				} else {
					logger.Printf("parse error at %d:%d: %s", line, col, msg)
				}
			},
		})
		defer ctx.Close()
		env := ctx.InstallDefaultEnv()

		switch {
		case evalExpr != "":
			exitCode = evalAndPrint(ctx, env, evalExpr)
		case len(args) == 1:
			exitCode = runFile(ctx, env, args[0], logger)
		default:
			if showStats {
				logger.Printf("refusing --stats without -e or a file argument")
				showStats = false
			}
			exitCode = repl(ctx, env)
		}
		if showStats {
			s := ctx.Stats()
			logger.Printf("heap: %d bytes allocated, %d objects, %d gc runs", s.Allocated, s.Objects, s.GCRuns)
		}
		return nil
	}

	root.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate EXPR and print its result")
	root.Flags().BoolVar(&showStats, "stats", false, "print heap statistics on exit")

	if err := root.Execute(); err != nil {
		return exitIOError
	}
	return exitCode
}

func evalAndPrint(ctx *scheme.Context, env *value.Object, src string) int {
	datum := ctx.Read(src)
	if ctx.HadError() {
		return exitIOError
	}
	result := ctx.Eval(env, datum)
	if ctx.HadError() {
		return exitIOError
	}
	printer.Write(os.Stdout, result)
	fmt.Fprintln(os.Stdout)
	return exitOK
}

func runFile(ctx *scheme.Context, env *value.Object, path string, logger *log.Logger) int {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Printf("%v", err)
		return exitIOError
	}
	if len(data) == 0 {
		return exitNoInput
	}
	datums := ctx.ReadAll(string(data))
	for _, d := range datums {
		if ctx.HadError() {
			return exitIOError
		}
		ctx.Eval(env, d)
		if ctx.HadError() {
			return exitIOError
		}
	}
	return exitOK
}

// repl is a toy read-eval-print loop over stdin, running until EOF.
func repl(ctx *scheme.Context, env *value.Object) int {
	in := bufio.NewReader(os.Stdin)
	for {
		fmt.Fprint(os.Stdout, "> ")
		line, err := in.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				fmt.Fprintln(os.Stdout)
				return exitOK
			}
			return exitIOError
		}
		ctx.ClearError()
		datum := ctx.Read(line)
		if ctx.HadError() || datum.IsEOF() {
			continue
		}
		result := ctx.Eval(env, datum)
		if ctx.HadError() {
			continue
		}
		printer.Write(os.Stdout, result)
		fmt.Fprintln(os.Stdout)
	}
}
