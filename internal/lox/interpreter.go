package lox

import (
	"fmt"
	"io"
)

// Interpreter exposes methods for evaluating the given Lox syntax tree. This
// struct implements ExprVisitor and StmtVisitor.
type Interpreter struct {
	globals     *Environment
	environment *Environment
	locals      map[Expr]int
	output      io.Writer
	reporter    Reporter
	isREPL      bool
}

func NewInterpreter(output io.Writer, reporter Reporter, isREPL bool) *Interpreter {
	globals := NewEnvironment(nil)
	globals.Define("clock", &loxNativeFnClock{})
	return &Interpreter{
		globals:     globals,
		environment: globals,
		locals:      make(map[Expr]int),
		output:      output,
		reporter:    reporter,
		isREPL:      isREPL,
	}
}

func (in *Interpreter) Interpret(statements []Stmt) {
	for _, stmt := range statements {
		if _, err := in.exec(stmt); err != nil {
			in.reporter.Report(err)
			break
		}
	}
}

// resolve records how many environments sit between a variable use and the
// scope declaring it. The resolver fills this table before execution starts
// and the interpreter only reads from it.
func (in *Interpreter) resolve(expr Expr, depth int) {
	in.locals[expr] = depth
}

func (in *Interpreter) VisitBlockStmt(stmt *BlockStmt) (interface{}, error) {
	return nil, in.execBlock(stmt.Statements, NewEnvironment(in.environment))
}

func (in *Interpreter) VisitClassStmt(stmt *ClassStmt) (interface{}, error) {
	var superclass *loxClass
	if stmt.Superclass != nil {
		superVal, err := in.eval(stmt.Superclass)
		if err != nil {
			return nil, err
		}
		var isClass bool
		superclass, isClass = superVal.(*loxClass)
		if !isClass {
			return nil, NewRuntimeError(stmt.Superclass.Name,
				"Superclass must be a class.")
		}
	}

	in.environment.Define(stmt.Name.Lexeme, nil)

	if stmt.Superclass != nil {
		in.environment = NewEnvironment(in.environment)
		in.environment.Define("super", superclass)
	}

	methods := make(map[string]*loxFunction)
	for _, method := range stmt.Methods {
		isInitializer := method.Name.Lexeme == "init"
		methods[method.Name.Lexeme] = newLoxFunction(method, in.environment, isInitializer)
	}
	class := newLoxClass(stmt.Name.Lexeme, superclass, methods)

	if stmt.Superclass != nil {
		in.environment = in.environment.enclosing
	}

	if err := in.environment.Assign(stmt.Name, class); err != nil {
		return nil, err
	}
	return nil, nil
}

func (in *Interpreter) VisitExpressionStmt(stmt *ExpressionStmt) (interface{}, error) {
	expr, err := in.eval(stmt.Expression)
	if err != nil {
		return nil, err
	}
	if in.isREPL {
		if _, ok := stmt.Expression.(*AssignExpr); !ok {
			fmt.Fprintln(in.output, stringify(expr))
		}
	}
	return nil, nil
}

func (in *Interpreter) VisitFunctionStmt(stmt *FunctionStmt) (interface{}, error) {
	fn := newLoxFunction(stmt, in.environment, false)
	in.environment.Define(stmt.Name.Lexeme, fn)
	return nil, nil
}

func (in *Interpreter) VisitIfStmt(stmt *IfStmt) (interface{}, error) {
	cond, err := in.eval(stmt.Cond)
	if err != nil {
		return nil, err
	}
	if isTruthy(cond) {
		return in.exec(stmt.ThenBranch)
	} else if stmt.ElseBranch != nil {
		return in.exec(stmt.ElseBranch)
	}
	return nil, nil
}

func (in *Interpreter) VisitPrintStmt(stmt *PrintStmt) (interface{}, error) {
	expr, err := in.eval(stmt.Expression)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(in.output, stringify(expr))
	return nil, nil
}

func (in *Interpreter) VisitReturnStmt(stmt *ReturnStmt) (interface{}, error) {
	var val interface{}
	if stmt.Val != nil {
		var err error
		val, err = in.eval(stmt.Val)
		if err != nil {
			return nil, err
		}
	}
	// travels up the call stack along the error path until the enclosing
	// function call catches it
	return nil, newLoxReturn(val)
}

func (in *Interpreter) VisitVarStmt(stmt *VarStmt) (interface{}, error) {
	var initVal interface{}
	if stmt.Initializer != nil {
		var err error
		initVal, err = in.eval(stmt.Initializer)
		if err != nil {
			return nil, err
		}
	}
	in.environment.Define(stmt.Name.Lexeme, initVal)
	return nil, nil
}

func (in *Interpreter) VisitWhileStmt(stmt *WhileStmt) (interface{}, error) {
	for {
		cond, err := in.eval(stmt.Cond)
		if err != nil {
			return nil, err
		}
		if !isTruthy(cond) {
			return nil, nil
		}
		_, err = in.exec(stmt.Body)
		if err != nil {
			return nil, err
		}
	}
}

func (in *Interpreter) VisitAssignExpr(expr *AssignExpr) (interface{}, error) {
	val, err := in.eval(expr.Val)
	if err != nil {
		return nil, err
	}
	if distance, ok := in.locals[expr]; ok {
		in.environment.AssignAt(distance, expr.Name, val)
	} else if err := in.globals.Assign(expr.Name, val); err != nil {
		return nil, err
	}
	return val, nil
}

func (in *Interpreter) VisitBinaryExpr(expr *BinaryExpr) (interface{}, error) {
	lhs, err := in.eval(expr.Left)
	if err != nil {
		return nil, err
	}
	rhs, err := in.eval(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Op.Typ {
	case BANG_EQUAL:
		return !isEqual(lhs, rhs), nil

	case EQUAL_EQUAL:
		return isEqual(lhs, rhs), nil

	case GREATER:
		leftNum, rightNum, err := checkNumberOperands(expr.Op, lhs, rhs)
		if err != nil {
			return nil, err
		}
		return leftNum > rightNum, nil

	case GREATER_EQUAL:
		leftNum, rightNum, err := checkNumberOperands(expr.Op, lhs, rhs)
		if err != nil {
			return nil, err
		}
		return leftNum >= rightNum, nil

	case LESS:
		leftNum, rightNum, err := checkNumberOperands(expr.Op, lhs, rhs)
		if err != nil {
			return nil, err
		}
		return leftNum < rightNum, nil

	case LESS_EQUAL:
		leftNum, rightNum, err := checkNumberOperands(expr.Op, lhs, rhs)
		if err != nil {
			return nil, err
		}
		return leftNum <= rightNum, nil

	case MINUS:
		leftNum, rightNum, err := checkNumberOperands(expr.Op, lhs, rhs)
		if err != nil {
			return nil, err
		}
		return leftNum - rightNum, nil

	case PLUS:
		leftStr, okLeftStr := lhs.(string)
		rightStr, okRightStr := rhs.(string)
		if okLeftStr && okRightStr {
			return leftStr + rightStr, nil
		}
		leftNum, okLeftNum := lhs.(float64)
		rightNum, okRightNum := rhs.(float64)
		if okLeftNum && okRightNum {
			return leftNum + rightNum, nil
		}
		return nil, NewRuntimeError(expr.Op,
			"Operands must be two numbers or two strings.")

	case SLASH:
		// division by zero follows IEEE-754, producing an infinity or NaN
		leftNum, rightNum, err := checkNumberOperands(expr.Op, lhs, rhs)
		if err != nil {
			return nil, err
		}
		return leftNum / rightNum, nil

	case STAR:
		leftNum, rightNum, err := checkNumberOperands(expr.Op, lhs, rhs)
		if err != nil {
			return nil, err
		}
		return leftNum * rightNum, nil
	}
	panic("Unreachable")
}

func (in *Interpreter) VisitCallExpr(expr *CallExpr) (interface{}, error) {
	callee, err := in.eval(expr.Callee)
	if err != nil {
		return nil, err
	}
	args := make([]interface{}, 0, len(expr.Args))
	for _, argExpr := range expr.Args {
		arg, err := in.eval(argExpr)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	fn, isCallable := callee.(loxCallable)
	if !isCallable {
		return nil, NewRuntimeError(expr.Paren,
			"Can only call functions and classes.")
	}
	if len(args) != fn.arity() {
		msg := fmt.Sprintf("Expected %d arguments but got %d.",
			fn.arity(), len(args))
		return nil, NewRuntimeError(expr.Paren, msg)
	}
	return fn.call(in, args)
}

func (in *Interpreter) VisitGetExpr(expr *GetExpr) (interface{}, error) {
	object, err := in.eval(expr.Object)
	if err != nil {
		return nil, err
	}
	if instance, ok := object.(*loxInstance); ok {
		return instance.get(expr.Name)
	}
	return nil, NewRuntimeError(expr.Name, "Only instances have properties.")
}

func (in *Interpreter) VisitGroupingExpr(expr *GroupingExpr) (interface{}, error) {
	return in.eval(expr.Expression)
}

func (in *Interpreter) VisitLiteralExpr(expr *LiteralExpr) (interface{}, error) {
	return expr.Value, nil
}

func (in *Interpreter) VisitLogicalExpr(expr *LogicalExpr) (interface{}, error) {
	lhs, err := in.eval(expr.Left)
	if err != nil {
		return nil, err
	}

	switch expr.Op.Typ {
	case OR:
		if isTruthy(lhs) {
			return lhs, nil
		}
	case AND:
		if !isTruthy(lhs) {
			return lhs, nil
		}
	default:
		panic("Unreachable")
	}

	return in.eval(expr.Right)
}

func (in *Interpreter) VisitSetExpr(expr *SetExpr) (interface{}, error) {
	object, err := in.eval(expr.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*loxInstance)
	if !ok {
		return nil, NewRuntimeError(expr.Name, "Only instances have fields.")
	}
	val, err := in.eval(expr.Val)
	if err != nil {
		return nil, err
	}
	instance.set(expr.Name, val)
	return val, nil
}

func (in *Interpreter) VisitSuperExpr(expr *SuperExpr) (interface{}, error) {
	distance := in.locals[expr]
	superclass := in.environment.GetAt(distance, "super").(*loxClass)
	// `this` always sits in the scope right inside the one holding `super`
	object := in.environment.GetAt(distance-1, "this").(*loxInstance)
	method := superclass.findMethod(expr.Method.Lexeme)
	if method == nil {
		msg := fmt.Sprintf("Undefined property '%s'.", expr.Method.Lexeme)
		return nil, NewRuntimeError(expr.Method, msg)
	}
	return method.bind(object), nil
}

func (in *Interpreter) VisitThisExpr(expr *ThisExpr) (interface{}, error) {
	return in.lookUpVariable(expr.Keyword, expr)
}

func (in *Interpreter) VisitUnaryExpr(expr *UnaryExpr) (interface{}, error) {
	exprVal, err := in.eval(expr.Expression)
	if err != nil {
		return nil, err
	}

	switch expr.Op.Typ {
	case BANG:
		return !isTruthy(exprVal), nil
	case MINUS:
		if exprNum, ok := exprVal.(float64); ok {
			return -exprNum, nil
		}
		return nil, NewRuntimeError(expr.Op, "Operand must be a number.")
	}
	panic("Unreachable")
}

func (in *Interpreter) VisitVariableExpr(expr *VariableExpr) (interface{}, error) {
	return in.lookUpVariable(expr.Name, expr)
}

// lookUpVariable reads the variable from the environment at the resolved
// distance. A variable with no recorded distance lives in globals, where
// reading an undefined name is a runtime error.
func (in *Interpreter) lookUpVariable(name *Token, expr Expr) (interface{}, error) {
	if distance, ok := in.locals[expr]; ok {
		return in.environment.GetAt(distance, name.Lexeme), nil
	}
	return in.globals.Get(name)
}

// execBlock runs the statements with the given environment installed as the
// current one. The previous environment is restored on every exit path, also
// when a runtime error or a return unwinds through the block.
func (in *Interpreter) execBlock(statements []Stmt, environment *Environment) error {
	prev := in.environment
	in.environment = environment
	defer func() {
		in.environment = prev
	}()
	for _, stmt := range statements {
		if _, err := in.exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) exec(stmt Stmt) (interface{}, error) {
	return stmt.Accept(in)
}

func (in *Interpreter) eval(expr Expr) (interface{}, error) {
	return expr.Accept(in)
}

func checkNumberOperands(op *Token, lhs, rhs interface{}) (float64, float64, error) {
	leftNum, okLeftNum := lhs.(float64)
	rightNum, okRightNum := rhs.(float64)
	if !okLeftNum || !okRightNum {
		return 0, 0, NewRuntimeError(op, "Operands must be numbers.")
	}
	return leftNum, rightNum, nil
}
