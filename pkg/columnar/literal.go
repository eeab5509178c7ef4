package columnar

import (
	"fmt"
	"strconv"
)

// LiteralType is the set of Go types a [Literal] can hold.
type LiteralType interface {
	bool | int64 | float64 | string
}

// Literal is a typed constant value.
type Literal struct {
	val any
	ty  DataType
}

// NewLiteral creates a new literal from a Go value. The data type is
// derived from the value's Go type.
func NewLiteral[T LiteralType](value T) Literal {
	switch v := any(value).(type) {
	case bool:
		return Literal{val: v, ty: Bool}
	case int64:
		return Literal{val: v, ty: Integer}
	case float64:
		return Literal{val: v, ty: Float}
	case string:
		return Literal{val: v, ty: String}
	}
	// Unreachable, the type set of T is closed.
	return Literal{ty: Null}
}

// NewNullLiteral creates a literal representing the absence of a value.
func NewNullLiteral() Literal {
	return Literal{ty: Null}
}

// Type returns the data type of the literal.
func (l Literal) Type() DataType { return l.ty }

// Any returns the literal's value as an untyped interface. Null
// literals return nil.
func (l Literal) Any() any { return l.val }

// IsNull reports whether the literal holds no value.
func (l Literal) IsNull() bool { return l.ty == Null }

// String returns a source-like representation of the literal.
func (l Literal) String() string {
	switch l.ty {
	case Null:
		return "null"
	case Bool:
		return strconv.FormatBool(l.val.(bool))
	case Integer:
		return strconv.FormatInt(l.val.(int64), 10)
	case Float:
		return strconv.FormatFloat(l.val.(float64), 'g', -1, 64)
	case String:
		return strconv.Quote(l.val.(string))
	}
	return fmt.Sprintf("Literal(%v)", l.val)
}
