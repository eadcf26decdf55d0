package main

// This is an interpreter for the Lox programming language written in Go.

import (
	"bufio"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/sanity-io/litter"
	"github.com/spf13/cobra"

	"github.com/lpham/golox/internal/lox"
)

var (
	dumpTokens bool
	dumpAst    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "golox [script]",
		Short: "A tree-walking interpreter for the Lox language",
		Long: `golox runs Lox programs. With a script argument the file is executed and
the process exits non-zero on errors (65 for syntax or resolution errors, 70
for runtime errors). Without arguments an interactive prompt is started.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			reporter := lox.NewSimpleReporter(os.Stderr)
			interpreter := lox.NewInterpreter(os.Stdout, reporter, len(args) == 0)
			if len(args) == 1 {
				runFile(args[0], interpreter, reporter)
				return nil
			}
			runPrompt(interpreter, reporter)
			return nil
		},
	}
	rootCmd.Flags().BoolVar(&dumpTokens, "tokens", false,
		"print the scanned token stream instead of executing")
	rootCmd.Flags().BoolVar(&dumpAst, "ast", false,
		"print the parsed syntax tree instead of executing")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(64)
	}
}

func run(script string, interpreter *lox.Interpreter, reporter lox.Reporter) {
	scanner := lox.NewScanner([]rune(script), reporter)
	tokens := scanner.Scan()
	if dumpTokens {
		for _, tok := range tokens {
			fmt.Println(tok)
		}
		return
	}

	parser := lox.NewParser(tokens, reporter)
	statements := parser.Parse()
	if reporter.HadError() {
		return
	}
	if dumpAst {
		litter.Dump(statements)
		return
	}

	resolver := lox.NewResolver(interpreter, reporter)
	resolver.Resolve(statements)
	if reporter.HadError() {
		return
	}
	interpreter.Interpret(statements)
}

// Run the interpreter in REPL mode
func runPrompt(interpreter *lox.Interpreter, reporter lox.Reporter) {
	s := bufio.NewScanner(os.Stdin)
	s.Split(bufio.ScanLines)
	for {
		fmt.Print("> ")
		if !s.Scan() {
			break
		}
		run(s.Text(), interpreter, reporter)
		reporter.Reset()
	}
	exitOnError(s.Err(), 1)
}

// Run the given file as a script
func runFile(fpath string, interpreter *lox.Interpreter, reporter lox.Reporter) {
	bytes, err := os.ReadFile(fpath)
	exitOnError(errors.Wrapf(err, "could not read script %q", fpath), 1)

	run(string(bytes), interpreter, reporter)
	exitIf(reporter.HadError(), 65)
	exitIf(reporter.HadRuntimeError(), 70)
}

func exitOnError(err error, status int) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(status)
	}
}

func exitIf(cond bool, status int) {
	if cond {
		os.Exit(status)
	}
}
