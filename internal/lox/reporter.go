package lox

import (
	"fmt"
	"io"
)

// Reporter defines the interface for structures that can display errors to the
// user. A reporter is defined to separate error recording code from error
// displaying code. Fully-featured languages have a complex setup for reporting
// errors to the user.
type Reporter interface {
	Report(err error)
	HadError() bool
	HadRuntimeError() bool
	Reset()
}

// SimpleReporter writes each error as-is to the inner writer. Runtime errors
// are tracked separately from the static phases so the CLI can pick the right
// exit status.
type SimpleReporter struct {
	writer        io.Writer
	hadErr        bool
	hadRuntimeErr bool
}

func NewSimpleReporter(writer io.Writer) Reporter {
	return &SimpleReporter{writer, false, false}
}

func (reporter *SimpleReporter) Report(err error) {
	if _, isRuntimeErr := err.(*RuntimeError); isRuntimeErr {
		reporter.hadRuntimeErr = true
	} else {
		reporter.hadErr = true
	}
	fmt.Fprintln(reporter.writer, err)
}

func (reporter *SimpleReporter) HadError() bool {
	return reporter.hadErr
}

func (reporter *SimpleReporter) HadRuntimeError() bool {
	return reporter.hadRuntimeErr
}

func (reporter *SimpleReporter) Reset() {
	reporter.hadErr = false
	reporter.hadRuntimeErr = false
}
