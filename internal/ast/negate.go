package ast

// negatedComparison maps comparison operators to their truthiness
// complement. The equality flips are exact; the relational flips (`<` to
// `>=` and so on) are not exact when an operand compares as NaN, where both
// forms are false. Everything else is negated by wrapping.
var negatedComparison = map[string]string{
	"==":  "!=",
	"!=":  "==",
	"===": "!==",
	"!==": "===",
	"<":   ">=",
	">=":  "<",
	">":   "<=",
	"<=":  ">",
}

// NegateTruthiness returns an expression whose truthiness is the complement
// of expr's. `!x` is unwrapped to `x`, comparisons are flipped to their
// complementary operator, and anything else is wrapped in a unary `!`.
// The returned node shares operand subtrees with expr; neither is mutated.
func NegateTruthiness(expr *Node) *Node {
	if expr == nil {
		return nil
	}

	if expr.Type == TypeUnaryExpression && expr.Operator == "!" {
		return expr.Argument
	}

	if expr.Type == TypeBinaryExpression {
		if flipped, ok := negatedComparison[expr.Operator]; ok {
			neg := NewNode(TypeBinaryExpression)
			neg.Operator = flipped
			neg.Left = expr.Left
			neg.Right = expr.Right
			neg.Location = expr.Location
			return neg
		}
	}

	neg := NewNode(TypeUnaryExpression)
	neg.Operator = "!"
	neg.Prefix = true
	neg.Argument = expr
	neg.Location = expr.Location
	return neg
}
