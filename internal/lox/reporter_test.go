package lox

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimpleReporterInit(t *testing.T) {
	assert := assert.New(t)

	r := NewSimpleReporter(io.Discard)

	assert.False(r.HadError())
	assert.False(r.HadRuntimeError())
}

func TestSimpleReporterSendAnyError(t *testing.T) {
	assert := assert.New(t)
	err := errors.New("Test error")

	var out strings.Builder
	r := NewSimpleReporter(&out)
	r.Report(err)

	assert.Equal(fmt.Sprintf("%v\n", err), out.String())
	assert.True(r.HadError())
	assert.False(r.HadRuntimeError())
}

func TestSimpleReporterSendRuntimeError(t *testing.T) {
	assert := assert.New(t)
	err := NewRuntimeError(NewToken(MINUS, "-", nil, 1), "Operands must be numbers.")

	var out strings.Builder
	r := NewSimpleReporter(&out)
	r.Report(err)

	assert.Equal(fmt.Sprintf("%v\n", err), out.String())
	assert.False(r.HadError())
	assert.True(r.HadRuntimeError())
}

func TestSimpleReporterSendErrors(t *testing.T) {
	assert := assert.New(t)
	err1 := errors.New("Test error")
	err2 := NewRuntimeError(NewToken(MINUS, "-", nil, 1), "Operands must be numbers.")

	var out strings.Builder
	r := NewSimpleReporter(&out)
	r.Report(err1)
	r.Report(err2)

	assert.Equal(fmt.Sprintf("%v\n%v\n", err1, err2), out.String())
	assert.True(r.HadError())
	assert.True(r.HadRuntimeError())
}

func TestSimpleReporterReset(t *testing.T) {
	assert := assert.New(t)
	err1 := errors.New("Test error")
	err2 := NewRuntimeError(NewToken(MINUS, "-", nil, 1), "Operands must be numbers.")

	var out strings.Builder
	r := NewSimpleReporter(&out)
	r.Report(err1)
	r.Report(err2)

	r.Reset()
	assert.False(r.HadError())
	assert.False(r.HadRuntimeError())
}

func TestErrorFormats(t *testing.T) {
	testCases := []struct {
		err  error
		want string
	}{
		{NewScanError(2, "Unexpected character."),
			"[line 2] Error: Unexpected character."},
		{NewParseError(NewToken(SEMICOLON, ";", nil, 3), "Expect expression."),
			"[line 3] Error at ';': Expect expression."},
		{NewParseError(tokEOF(4), "Expect ')' after expression."),
			"[line 4] Error at end: Expect ')' after expression."},
		{NewResolveError(NewToken(THIS, "this", nil, 5), "Can't use 'this' outside of a class."),
			"[line 5] Error at 'this': Can't use 'this' outside of a class."},
		{NewRuntimeError(NewToken(PLUS, "+", nil, 6), "Operands must be two numbers or two strings."),
			"Operands must be two numbers or two strings.\n[line 6]"},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		assert.Equal(tc.want, tc.err.Error())
	}
}
