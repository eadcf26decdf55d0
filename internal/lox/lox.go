package lox

import (
	"fmt"
	"strconv"
)

// stringify renders a runtime value the way `print` shows it. Integral
// numbers drop the trailing ".0"; everything else falls back to the value's
// own String method.
func stringify(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// isTruthy follows Ruby's rule, false and nil are falsey and everything else
// is truthy.
func isTruthy(value interface{}) bool {
	if value == nil {
		return false
	}
	if v, ok := value.(bool); ok {
		return v
	}
	return true
}

// isEqual compares primitives by value and functions, classes, and instances
// by reference. NaN stays unequal to itself since float64 comparison is used
// directly.
func isEqual(a, b interface{}) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil {
		return false
	}
	switch lhs := a.(type) {
	case bool:
		rhs, ok := b.(bool)
		return ok && lhs == rhs
	case float64:
		rhs, ok := b.(float64)
		return ok && lhs == rhs
	case string:
		rhs, ok := b.(string)
		return ok && lhs == rhs
	}
	return a == b
}
