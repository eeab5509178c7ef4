package lambda

import (
	"fmt"

	"github.com/vireodb/vireo/pkg/columnar"
)

// UnaryOpKind denotes the kind of unary operation to perform.
type UnaryOpKind int

// Recognized values of [UnaryOpKind].
const (
	// UnaryOpKindInvalid indicates an invalid unary operation.
	UnaryOpKindInvalid UnaryOpKind = iota

	UnaryOpKindNot // Logical NOT operation (!).
	UnaryOpKindNeg // Arithmetic negation (-).
	UnaryOpKindAbs // Absolute value.
)

var unaryOpKindStrings = map[UnaryOpKind]string{
	UnaryOpKindInvalid: "invalid",

	UnaryOpKindNot: "NOT",
	UnaryOpKindNeg: "NEG",
	UnaryOpKindAbs: "ABS",
}

// String returns the string representation of the UnaryOpKind.
func (k UnaryOpKind) String() string {
	if s, ok := unaryOpKindStrings[k]; ok {
		return s
	}
	return fmt.Sprintf("UnaryOpKind(%d)", k)
}

// resultType returns the type produced by applying k to an operand of
// the given type.
func (k UnaryOpKind) resultType(operand columnar.DataType) columnar.DataType {
	if k == UnaryOpKindNot {
		return columnar.Bool
	}
	return operand
}

// BinOpKind denotes the kind of binary operation to perform.
type BinOpKind int

// Recognized values of [BinOpKind].
const (
	// BinOpKindInvalid indicates an invalid binary operation.
	BinOpKindInvalid BinOpKind = iota

	BinOpKindEq  // Equality comparison (==).
	BinOpKindNeq // Inequality comparison (!=).
	BinOpKindGt  // Greater than comparison (>).
	BinOpKindGte // Greater than or equal comparison (>=).
	BinOpKindLt  // Less than comparison (<).
	BinOpKindLte // Less than or equal comparison (<=).
	BinOpKindAnd // Logical AND operation (&&).
	BinOpKindOr  // Logical OR operation (||).
	BinOpKindXor // Logical XOR operation (^).

	BinOpKindAdd // Addition operation (+).
	BinOpKindSub // Subtraction operation (-).
	BinOpKindMul // Multiplication operation (*).
	BinOpKindDiv // Division operation (/).
	BinOpKindMod // Modulo operation (%).
	BinOpKindMin // Element-wise minimum.
	BinOpKindMax // Element-wise maximum.

	BinOpKindMatchSubstr // Case-insensitive substring match.
)

var binOpKindStrings = map[BinOpKind]string{
	BinOpKindInvalid: "invalid",

	BinOpKindEq:  "EQ",
	BinOpKindNeq: "NEQ",
	BinOpKindGt:  "GT",
	BinOpKindGte: "GTE",
	BinOpKindLt:  "LT",
	BinOpKindLte: "LTE",
	BinOpKindAnd: "AND",
	BinOpKindOr:  "OR",
	BinOpKindXor: "XOR",

	BinOpKindAdd: "ADD",
	BinOpKindSub: "SUB",
	BinOpKindMul: "MUL",
	BinOpKindDiv: "DIV",
	BinOpKindMod: "MOD",
	BinOpKindMin: "MIN",
	BinOpKindMax: "MAX",

	BinOpKindMatchSubstr: "MATCH_SUBSTR",
}

// String returns a human-readable representation of the binary
// operation kind.
func (k BinOpKind) String() string {
	if s, ok := binOpKindStrings[k]; ok {
		return s
	}
	return fmt.Sprintf("BinOpKind(%d)", k)
}

// resultType returns the type produced by applying k to operands of the
// given type.
func (k BinOpKind) resultType(operand columnar.DataType) columnar.DataType {
	switch k {
	case BinOpKindEq, BinOpKindNeq, BinOpKindGt, BinOpKindGte, BinOpKindLt, BinOpKindLte,
		BinOpKindAnd, BinOpKindOr, BinOpKindXor, BinOpKindMatchSubstr:
		return columnar.Bool
	default:
		return operand
	}
}
