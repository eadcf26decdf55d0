package lox

import (
	"fmt"
	"time"
)

// loxReturn carries the returned value while unwinding the interpreter out of
// arbitrarily nested blocks up to the enclosing function call. It travels
// along the error path but is not an error.
type loxReturn struct {
	val interface{}
}

func newLoxReturn(val interface{}) *loxReturn {
	r := new(loxReturn)
	r.val = val
	return r
}

func (r *loxReturn) Error() string {
	return fmt.Sprintf("return %v", stringify(r.val))
}

// loxCallable is implemented by Lox's objects that can be called.
type loxCallable interface {
	arity() int
	call(in *Interpreter, args []interface{}) (interface{}, error)
}

type loxNativeFnClock struct{}

func (fn *loxNativeFnClock) arity() int {
	return 0
}

func (fn *loxNativeFnClock) call(
	in *Interpreter,
	args []interface{},
) (interface{}, error) {
	return time.Since(time.Unix(0, 0)).Seconds(), nil
}

func (fn *loxNativeFnClock) String() string {
	return "<native fn>"
}

// loxFunction represents a lox function that can be called
type loxFunction struct {
	decl          *FunctionStmt
	closure       *Environment
	isInitializer bool
}

func newLoxFunction(decl *FunctionStmt, closure *Environment, isInitializer bool) *loxFunction {
	fn := new(loxFunction)
	fn.decl = decl
	fn.closure = closure
	fn.isInitializer = isInitializer
	return fn
}

func (fn *loxFunction) arity() int {
	return len(fn.decl.Params)
}

func (fn *loxFunction) call(
	in *Interpreter,
	args []interface{},
) (interface{}, error) {
	/*
		A function encapsulates its parameters, which means each function gets its
		own environment where it stores the encapsulated variables. Each function
		call dynamically creates a new environment, otherwise, recursion would break.
		If there are multiple calls to the same function in play at the same time,
		each needs its own environment, even though they are all calls to the same
		function.
	*/
	env := NewEnvironment(fn.closure)
	for i, param := range fn.decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	if err := in.execBlock(fn.decl.Body, env); err != nil {
		if ret, ok := err.(*loxReturn); ok {
			if fn.isInitializer {
				return fn.closure.GetAt(0, "this"), nil
			}
			return ret.val, nil
		}
		return nil, err
	}
	if fn.isInitializer {
		return fn.closure.GetAt(0, "this"), nil
	}
	return nil, nil
}

// bind wraps the function's closure in a new environment that defines `this`,
// so the returned method keeps referring to the given instance even when it
// is stored and called later.
func (fn *loxFunction) bind(instance *loxInstance) *loxFunction {
	env := NewEnvironment(fn.closure)
	env.Define("this", instance)
	return newLoxFunction(fn.decl, env, fn.isInitializer)
}

func (fn *loxFunction) String() string {
	return fmt.Sprintf("<fn %s>", fn.decl.Name.Lexeme)
}
