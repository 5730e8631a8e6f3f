package ast

import (
	"strings"
)

// Operator precedence levels, following the ECMAScript operator table.
// Higher binds tighter. Used only to decide where Stringify must add
// parentheses; the output is display-only and never parsed back.
const (
	precSequence    = 1
	precAssignment  = 2
	precConditional = 3
	precUnary       = 14
	precPostfix     = 15
	precCall        = 17
	precMember      = 18
	precPrimary     = 20
)

// binaryPrecedence maps binary and logical operators to their precedence.
var binaryPrecedence = map[string]int{
	"??":         4,
	"||":         4,
	"&&":         5,
	"|":          6,
	"^":          7,
	"&":          8,
	"==":         9,
	"!=":         9,
	"===":        9,
	"!==":        9,
	"<":          10,
	">":          10,
	"<=":         10,
	">=":         10,
	"in":         10,
	"instanceof": 10,
	"<<":         11,
	">>":         11,
	">>>":        11,
	"+":          12,
	"-":          12,
	"*":          13,
	"/":          13,
	"%":          13,
	"**":         13,
}

// Stringify renders an expression as a human-readable label. Raw literal
// text is preserved; parentheses are inserted wherever the standard
// precedence rules would otherwise make the rendering ambiguous.
func Stringify(expr *Node) string {
	if expr == nil {
		return ""
	}
	var sb strings.Builder
	writeExpr(&sb, expr, 0)
	return sb.String()
}

// writeExpr renders expr into sb, wrapping it in parentheses when its own
// precedence is below minPrec.
func writeExpr(sb *strings.Builder, expr *Node, minPrec int) {
	if expr == nil {
		return
	}

	prec := exprPrecedence(expr)
	if prec < minPrec {
		sb.WriteByte('(')
		writeExprInner(sb, expr)
		sb.WriteByte(')')
		return
	}
	writeExprInner(sb, expr)
}

func writeExprInner(sb *strings.Builder, expr *Node) {
	switch expr.Type {
	case TypeIdentifier:
		sb.WriteString(expr.Name)

	case TypeLiteral:
		sb.WriteString(expr.Raw)

	case TypeUnaryExpression:
		sb.WriteString(expr.Operator)
		if isWordOperator(expr.Operator) {
			sb.WriteByte(' ')
		}
		writeExpr(sb, expr.Argument, precUnary)

	case TypeUpdateExpression:
		if expr.Prefix {
			sb.WriteString(expr.Operator)
			writeExpr(sb, expr.Argument, precUnary)
		} else {
			writeExpr(sb, expr.Argument, precPostfix)
			sb.WriteString(expr.Operator)
		}

	case TypeBinaryExpression, TypeLogicalExpression:
		prec := binaryPrecedence[expr.Operator]
		writeExpr(sb, expr.Left, prec)
		sb.WriteByte(' ')
		sb.WriteString(expr.Operator)
		sb.WriteByte(' ')
		writeExpr(sb, expr.Right, prec+1)

	case TypeAssignmentExpression:
		writeExpr(sb, expr.Left, precMember)
		sb.WriteByte(' ')
		sb.WriteString(expr.Operator)
		sb.WriteByte(' ')
		writeExpr(sb, expr.Right, precAssignment)

	case TypeConditionalExpression:
		writeExpr(sb, expr.Test, precConditional+1)
		sb.WriteString(" ? ")
		writeExpr(sb, expr.Consequent, precAssignment)
		sb.WriteString(" : ")
		writeExpr(sb, expr.Alternate, precAssignment)

	case TypeSequenceExpression:
		for i, e := range expr.Expressions {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeExpr(sb, e, precAssignment)
		}

	case TypeMemberExpression:
		writeExpr(sb, expr.Object, precMember)
		if expr.Computed {
			sb.WriteByte('[')
			writeExpr(sb, expr.Property, 0)
			sb.WriteByte(']')
		} else {
			sb.WriteByte('.')
			writeExpr(sb, expr.Property, 0)
		}

	case TypeCallExpression:
		writeExpr(sb, expr.Callee, precCall)
		writeArguments(sb, expr.Arguments)

	case TypeNewExpression:
		sb.WriteString("new ")
		writeExpr(sb, expr.Callee, precMember)
		writeArguments(sb, expr.Arguments)

	case TypeArrayExpression:
		sb.WriteByte('[')
		for i, e := range expr.Elements {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeExpr(sb, e, precAssignment)
		}
		sb.WriteByte(']')

	case TypeObjectExpression:
		if len(expr.Properties) == 0 {
			sb.WriteString("{}")
			return
		}
		sb.WriteString("{ ")
		for i, p := range expr.Properties {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeExprInner(sb, p)
		}
		sb.WriteString(" }")

	case TypeProperty:
		if expr.Shorthand {
			writeExpr(sb, expr.Key, 0)
			return
		}
		if expr.Computed {
			sb.WriteByte('[')
			writeExpr(sb, expr.Key, 0)
			sb.WriteByte(']')
		} else {
			writeExpr(sb, expr.Key, 0)
		}
		sb.WriteString(": ")
		writeExpr(sb, expr.Value, precAssignment)

	case TypeSpreadElement:
		sb.WriteString("...")
		writeExpr(sb, expr.Argument, precAssignment)

	case TypeFunctionExpression:
		sb.WriteString("function")
		if expr.Name != "" {
			sb.WriteByte(' ')
			sb.WriteString(expr.Name)
		}
		sb.WriteByte('(')
		for i, p := range expr.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeExpr(sb, p, 0)
		}
		sb.WriteString(") { ... }")

	default:
		// Fall back to the raw source slice when one was recorded.
		sb.WriteString(expr.Raw)
	}
}

func writeArguments(sb *strings.Builder, args []*Node) {
	sb.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeExpr(sb, a, precAssignment)
	}
	sb.WriteByte(')')
}

// exprPrecedence returns the precedence of the expression's outermost
// operator.
func exprPrecedence(expr *Node) int {
	switch expr.Type {
	case TypeSequenceExpression:
		return precSequence
	case TypeAssignmentExpression:
		return precAssignment
	case TypeConditionalExpression:
		return precConditional
	case TypeBinaryExpression, TypeLogicalExpression:
		if p, ok := binaryPrecedence[expr.Operator]; ok {
			return p
		}
		return precConditional
	case TypeUnaryExpression:
		return precUnary
	case TypeUpdateExpression:
		if expr.Prefix {
			return precUnary
		}
		return precPostfix
	case TypeCallExpression:
		return precCall
	case TypeNewExpression, TypeMemberExpression:
		return precMember
	case TypeFunctionExpression:
		return precConditional
	default:
		return precPrimary
	}
}

func isWordOperator(op string) bool {
	switch op {
	case "typeof", "void", "delete":
		return true
	}
	return false
}
