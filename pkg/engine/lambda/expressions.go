package lambda

import (
	"fmt"

	"github.com/vireodb/vireo/pkg/columnar"
)

// ExpressionType represents the kind of a node in a function body.
type ExpressionType uint32

const (
	_ ExpressionType = iota // zero-value is an invalid type

	ExprTypeUnary
	ExprTypeBinary
	ExprTypeLiteral
	ExprTypeParam
)

// String returns the string representation of the [ExpressionType].
func (t ExpressionType) String() string {
	switch t {
	case ExprTypeUnary:
		return "UnaryExpression"
	case ExprTypeBinary:
		return "BinaryExpression"
	case ExprTypeLiteral:
		return "LiteralExpression"
	case ExprTypeParam:
		return "ParamExpression"
	default:
		panic(fmt.Sprintf("unknown expression type %d", t))
	}
}

// Expression is the common interface for all nodes in a function body.
type Expression interface {
	fmt.Stringer
	Type() ExpressionType
	isExpr()
}

// UnaryExpr applies a unary operator to a subexpression.
type UnaryExpr struct {
	// Left is the expression being operated on
	Left Expression
	// Op is the unary operator to apply to the expression
	Op UnaryOpKind
}

func (*UnaryExpr) isExpr() {}

func (e *UnaryExpr) String() string {
	return fmt.Sprintf("%s(%s)", e.Op, e.Left)
}

// Type returns the type of the [UnaryExpr].
func (*UnaryExpr) Type() ExpressionType {
	return ExprTypeUnary
}

// BinaryExpr applies a binary operator to two subexpressions.
type BinaryExpr struct {
	Left, Right Expression
	Op          BinOpKind
}

func (*BinaryExpr) isExpr() {}

func (e *BinaryExpr) String() string {
	return fmt.Sprintf("%s(%s, %s)", e.Op, e.Left, e.Right)
}

// Type returns the type of the [BinaryExpr].
func (*BinaryExpr) Type() ExpressionType {
	return ExprTypeBinary
}

// LiteralExpr is a constant value in a function body.
type LiteralExpr struct {
	columnar.Literal
}

func (*LiteralExpr) isExpr() {}

// String returns the string representation of the literal value.
func (e *LiteralExpr) String() string {
	return e.Literal.String()
}

// Type returns the type of the [LiteralExpr].
func (*LiteralExpr) Type() ExpressionType {
	return ExprTypeLiteral
}

// ValueType returns the type of the value represented by the literal.
func (e *LiteralExpr) ValueType() columnar.DataType {
	return e.Literal.Type()
}

// NewLiteral creates a literal node holding value.
func NewLiteral[T columnar.LiteralType](value T) *LiteralExpr {
	return &LiteralExpr{Literal: columnar.NewLiteral(value)}
}

// NewNullLiteral creates a literal node holding the null value.
func NewNullLiteral() *LiteralExpr {
	return &LiteralExpr{Literal: columnar.NewNullLiteral()}
}

// ParamExpr references a named function parameter.
type ParamExpr struct {
	Name string
}

// NewParam references the parameter with the given name.
func NewParam(name string) *ParamExpr {
	return &ParamExpr{Name: name}
}

func (*ParamExpr) isExpr() {}

// String returns the name of the referenced parameter.
func (e *ParamExpr) String() string {
	return e.Name
}

// Type returns the type of the [ParamExpr].
func (*ParamExpr) Type() ExpressionType {
	return ExprTypeParam
}
