package lox

import "strings"

type mockReporter struct {
	errors        []error
	hadErr        bool
	hadRuntimeErr bool
}

func newMockReporter() *mockReporter {
	return &mockReporter{make([]error, 0), false, false}
}

func (reporter *mockReporter) Report(err error) {
	reporter.errors = append(reporter.errors, err)
	if _, isRuntimeErr := err.(*RuntimeError); isRuntimeErr {
		reporter.hadRuntimeErr = true
	} else {
		reporter.hadErr = true
	}
}

func (reporter *mockReporter) HadError() bool {
	return reporter.hadErr
}

func (reporter *mockReporter) HadRuntimeError() bool {
	return reporter.hadRuntimeErr
}

func (reporter *mockReporter) Reset() {
	reporter.hadErr = false
	reporter.hadRuntimeErr = false
}

func tokEOF(line int) *Token {
	return NewToken(EOF, "", nil, line)
}

// interpretSource runs a program through the full pipeline and returns
// whatever `print` wrote, together with the reporter holding any errors.
// Later phases are skipped when an earlier phase reported, mirroring the CLI.
func interpretSource(src string) (string, *mockReporter) {
	report := newMockReporter()
	var out strings.Builder
	interpreter := NewInterpreter(&out, report, false)

	tokens := NewScanner([]rune(src), report).Scan()
	statements := NewParser(tokens, report).Parse()
	if report.HadError() {
		return out.String(), report
	}
	NewResolver(interpreter, report).Resolve(statements)
	if report.HadError() {
		return out.String(), report
	}
	interpreter.Interpret(statements)
	return out.String(), report
}

// parseSource runs only the static front half and returns the statements.
func parseSource(src string) ([]Stmt, *mockReporter) {
	report := newMockReporter()
	tokens := NewScanner([]rune(src), report).Scan()
	statements := NewParser(tokens, report).Parse()
	return statements, report
}
