package ast

import (
	"testing"
)

func TestNormalizeNamedFunctionExpressionStatement(t *testing.T) {
	program := parseSource(t, "(function greet() { hello(); });")

	if program.Body[0].Type != TypeExpressionStatement {
		t.Fatalf("precondition: expected expression statement, got %s", program.Body[0].Type)
	}

	NormalizeFunctionExpressions(program)

	decl := program.Body[0]
	if decl.Type != TypeFunctionDeclaration {
		t.Fatalf("Expected FunctionDeclaration after normalization, got %s", decl.Type)
	}
	if decl.Name != "greet" {
		t.Errorf("declaration should keep the name greet, got %q", decl.Name)
	}
	if len(decl.Body) != 1 {
		t.Errorf("declaration should keep its body, got %d statements", len(decl.Body))
	}
}

func TestNormalizeLeavesAnonymousFunctions(t *testing.T) {
	program := parseSource(t, "(function () { hello(); });")

	NormalizeFunctionExpressions(program)

	stmt := program.Body[0]
	if stmt.Type != TypeExpressionStatement {
		t.Fatalf("anonymous function expression should stay a statement, got %s", stmt.Type)
	}
	if stmt.Expression.Type != TypeFunctionExpression {
		t.Errorf("anonymous function should stay an expression, got %s", stmt.Expression.Type)
	}
}

func TestNormalizeLeavesEmbeddedFunctions(t *testing.T) {
	program := parseSource(t, "var f = function named() { hello(); };")

	NormalizeFunctionExpressions(program)

	decl := program.Body[0]
	if decl.Type != TypeVariableDeclaration {
		t.Fatalf("declaration statement should be untouched, got %s", decl.Type)
	}
	init := decl.Declarations[0].Init
	if init == nil || init.Type != TypeFunctionExpression {
		t.Errorf("declarator init should stay a function expression, got %v", init)
	}
}

func TestNormalizeReachesNestedBodies(t *testing.T) {
	program := parseSource(t, "function outer() { (function inner() { x(); }); }")

	NormalizeFunctionExpressions(program)

	outer := program.Body[0]
	if outer.Type != TypeFunctionDeclaration {
		t.Fatalf("outer should be a declaration, got %s", outer.Type)
	}
	inner := outer.Body[0]
	if inner.Type != TypeFunctionDeclaration {
		t.Errorf("nested named function expression should be normalized, got %s", inner.Type)
	}
	if inner.Name != "inner" {
		t.Errorf("nested declaration should keep its name, got %q", inner.Name)
	}
}
