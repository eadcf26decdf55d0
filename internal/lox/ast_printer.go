package lox

import (
	"fmt"
	"strconv"
	"strings"
)

// AstPrinter renders an expression tree as a parenthesized string, mainly
// used to assert on parse shapes in tests and to eyeball precedence.
type AstPrinter struct{}

func (printer *AstPrinter) Print(expr Expr) string {
	s, _ := expr.Accept(printer)
	return fmt.Sprintf("%v", s)
}

func (printer *AstPrinter) VisitAssignExpr(expr *AssignExpr) (interface{}, error) {
	return printer.parenthesize("= "+expr.Name.Lexeme, expr.Val), nil
}

func (printer *AstPrinter) VisitBinaryExpr(expr *BinaryExpr) (interface{}, error) {
	return printer.parenthesize(expr.Op.Lexeme, expr.Left, expr.Right), nil
}

func (printer *AstPrinter) VisitCallExpr(expr *CallExpr) (interface{}, error) {
	exprs := append([]Expr{expr.Callee}, expr.Args...)
	return printer.parenthesize("call", exprs...), nil
}

func (printer *AstPrinter) VisitGetExpr(expr *GetExpr) (interface{}, error) {
	return printer.parenthesize("get "+expr.Name.Lexeme, expr.Object), nil
}

func (printer *AstPrinter) VisitGroupingExpr(expr *GroupingExpr) (interface{}, error) {
	return printer.parenthesize("group", expr.Expression), nil
}

func (printer *AstPrinter) VisitLiteralExpr(expr *LiteralExpr) (interface{}, error) {
	switch v := expr.Value.(type) {
	case nil:
		return "nil", nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}

func (printer *AstPrinter) VisitLogicalExpr(expr *LogicalExpr) (interface{}, error) {
	return printer.parenthesize(expr.Op.Lexeme, expr.Left, expr.Right), nil
}

func (printer *AstPrinter) VisitSetExpr(expr *SetExpr) (interface{}, error) {
	return printer.parenthesize("set "+expr.Name.Lexeme, expr.Object, expr.Val), nil
}

func (printer *AstPrinter) VisitSuperExpr(expr *SuperExpr) (interface{}, error) {
	return "(super " + expr.Method.Lexeme + ")", nil
}

func (printer *AstPrinter) VisitThisExpr(expr *ThisExpr) (interface{}, error) {
	return "this", nil
}

func (printer *AstPrinter) VisitUnaryExpr(expr *UnaryExpr) (interface{}, error) {
	return printer.parenthesize(expr.Op.Lexeme, expr.Expression), nil
}

func (printer *AstPrinter) VisitVariableExpr(expr *VariableExpr) (interface{}, error) {
	return expr.Name.Lexeme, nil
}

func (printer *AstPrinter) parenthesize(name string, exprs ...Expr) string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(name)
	for _, expr := range exprs {
		s, _ := expr.Accept(printer)
		sb.WriteByte(' ')
		fmt.Fprintf(&sb, "%v", s)
	}
	sb.WriteByte(')')
	return sb.String()
}
