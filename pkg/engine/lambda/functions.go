package lambda

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/vireodb/vireo/pkg/columnar"
	"github.com/vireodb/vireo/pkg/compute"
)

func init() {
	unaryFunctions.register(UnaryOpKindNot, columnar.Bool, unaryFunc(compute.Not))
	unaryFunctions.register(UnaryOpKindNeg, columnar.Integer, unaryFunc(compute.Neg))
	unaryFunctions.register(UnaryOpKindNeg, columnar.Float, unaryFunc(compute.Neg))
	unaryFunctions.register(UnaryOpKindAbs, columnar.Integer, unaryFunc(compute.Abs))
	unaryFunctions.register(UnaryOpKindAbs, columnar.Float, unaryFunc(compute.Abs))

	// Equality is defined for every scalar type.
	binaryFunctions.register(BinOpKindEq, columnar.Bool, binaryFunc(compute.Eq))
	binaryFunctions.register(BinOpKindEq, columnar.Integer, binaryFunc(compute.Eq))
	binaryFunctions.register(BinOpKindEq, columnar.Float, binaryFunc(compute.Eq))
	binaryFunctions.register(BinOpKindEq, columnar.String, binaryFunc(compute.Eq))
	binaryFunctions.register(BinOpKindNeq, columnar.Bool, binaryFunc(compute.Neq))
	binaryFunctions.register(BinOpKindNeq, columnar.Integer, binaryFunc(compute.Neq))
	binaryFunctions.register(BinOpKindNeq, columnar.Float, binaryFunc(compute.Neq))
	binaryFunctions.register(BinOpKindNeq, columnar.String, binaryFunc(compute.Neq))

	// Ordering is defined for numbers and strings; booleans have none.
	binaryFunctions.register(BinOpKindGt, columnar.Integer, binaryFunc(compute.Gt))
	binaryFunctions.register(BinOpKindGt, columnar.Float, binaryFunc(compute.Gt))
	binaryFunctions.register(BinOpKindGt, columnar.String, binaryFunc(compute.Gt))
	binaryFunctions.register(BinOpKindGte, columnar.Integer, binaryFunc(compute.Gte))
	binaryFunctions.register(BinOpKindGte, columnar.Float, binaryFunc(compute.Gte))
	binaryFunctions.register(BinOpKindGte, columnar.String, binaryFunc(compute.Gte))
	binaryFunctions.register(BinOpKindLt, columnar.Integer, binaryFunc(compute.Lt))
	binaryFunctions.register(BinOpKindLt, columnar.Float, binaryFunc(compute.Lt))
	binaryFunctions.register(BinOpKindLt, columnar.String, binaryFunc(compute.Lt))
	binaryFunctions.register(BinOpKindLte, columnar.Integer, binaryFunc(compute.Lte))
	binaryFunctions.register(BinOpKindLte, columnar.Float, binaryFunc(compute.Lte))
	binaryFunctions.register(BinOpKindLte, columnar.String, binaryFunc(compute.Lte))

	binaryFunctions.register(BinOpKindAnd, columnar.Bool, binaryFunc(compute.And))
	binaryFunctions.register(BinOpKindOr, columnar.Bool, binaryFunc(compute.Or))
	binaryFunctions.register(BinOpKindXor, columnar.Bool, binaryFunc(compute.Xor))

	binaryFunctions.register(BinOpKindAdd, columnar.Integer, binaryFunc(compute.Add))
	binaryFunctions.register(BinOpKindAdd, columnar.Float, binaryFunc(compute.Add))
	binaryFunctions.register(BinOpKindSub, columnar.Integer, binaryFunc(compute.Sub))
	binaryFunctions.register(BinOpKindSub, columnar.Float, binaryFunc(compute.Sub))
	binaryFunctions.register(BinOpKindMul, columnar.Integer, binaryFunc(compute.Mul))
	binaryFunctions.register(BinOpKindMul, columnar.Float, binaryFunc(compute.Mul))
	binaryFunctions.register(BinOpKindDiv, columnar.Integer, binaryFunc(compute.Div))
	binaryFunctions.register(BinOpKindDiv, columnar.Float, binaryFunc(compute.Div))
	binaryFunctions.register(BinOpKindMod, columnar.Integer, binaryFunc(compute.Mod))
	binaryFunctions.register(BinOpKindMod, columnar.Float, binaryFunc(compute.Mod))
	binaryFunctions.register(BinOpKindMin, columnar.Integer, binaryFunc(compute.Min))
	binaryFunctions.register(BinOpKindMin, columnar.Float, binaryFunc(compute.Min))
	binaryFunctions.register(BinOpKindMax, columnar.Integer, binaryFunc(compute.Max))
	binaryFunctions.register(BinOpKindMax, columnar.Float, binaryFunc(compute.Max))

	binaryFunctions.register(BinOpKindMatchSubstr, columnar.String, binaryFunc(compute.SubstrInsensitive))
}

// UnaryFunction evaluates a unary operation over a single vector.
type UnaryFunction interface {
	Evaluate(mem memory.Allocator, input columnar.ColumnVector) (columnar.ColumnVector, error)
}

type unaryFunc func(memory.Allocator, columnar.ColumnVector) (columnar.ColumnVector, error)

// Evaluate implements UnaryFunction.
func (f unaryFunc) Evaluate(mem memory.Allocator, input columnar.ColumnVector) (columnar.ColumnVector, error) {
	return f(mem, input)
}

// BinaryFunction evaluates a binary operation over two vectors of the
// same type.
type BinaryFunction interface {
	Evaluate(mem memory.Allocator, left, right columnar.ColumnVector) (columnar.ColumnVector, error)
}

type binaryFunc func(memory.Allocator, columnar.ColumnVector, columnar.ColumnVector) (columnar.ColumnVector, error)

// Evaluate implements BinaryFunction.
func (f binaryFunc) Evaluate(mem memory.Allocator, left, right columnar.ColumnVector) (columnar.ColumnVector, error) {
	return f(mem, left, right)
}

// UnaryFunctionRegistry resolves unary implementations by operator and
// operand type.
type UnaryFunctionRegistry interface {
	register(UnaryOpKind, columnar.DataType, UnaryFunction)
	GetForSignature(UnaryOpKind, columnar.DataType) (UnaryFunction, error)
}

// BinaryFunctionRegistry resolves binary implementations by operator
// and operand type. Both operands share one type.
type BinaryFunctionRegistry interface {
	register(BinOpKind, columnar.DataType, BinaryFunction)
	GetForSignature(BinOpKind, columnar.DataType) (BinaryFunction, error)
}

var (
	unaryFunctions  UnaryFunctionRegistry  = &unaryFuncReg{}
	binaryFunctions BinaryFunctionRegistry = &binaryFuncReg{}
)

type unaryFuncReg struct {
	reg map[UnaryOpKind]map[columnar.TypeID]UnaryFunction
}

func (r *unaryFuncReg) register(op UnaryOpKind, ty columnar.DataType, f UnaryFunction) {
	if r.reg == nil {
		r.reg = make(map[UnaryOpKind]map[columnar.TypeID]UnaryFunction)
	}
	if _, ok := r.reg[op]; !ok {
		r.reg[op] = make(map[columnar.TypeID]UnaryFunction)
	}
	r.reg[op][ty.ID()] = f
}

// GetForSignature returns the implementation of op over an operand of
// the given type. The lookup fails with [columnar.ErrIllegalType] when
// the combination is not implemented.
func (r *unaryFuncReg) GetForSignature(op UnaryOpKind, ty columnar.DataType) (UnaryFunction, error) {
	fns, ok := r.reg[op]
	if !ok {
		return nil, fmt.Errorf("%w: no implementation for %s", columnar.ErrIllegalType, op)
	}
	fn, ok := fns[ty.ID()]
	if !ok {
		return nil, fmt.Errorf("%w: no implementation for %s over %s", columnar.ErrIllegalType, op, ty)
	}
	return fn, nil
}

type binaryFuncReg struct {
	reg map[BinOpKind]map[columnar.TypeID]BinaryFunction
}

func (r *binaryFuncReg) register(op BinOpKind, ty columnar.DataType, f BinaryFunction) {
	if r.reg == nil {
		r.reg = make(map[BinOpKind]map[columnar.TypeID]BinaryFunction)
	}
	if _, ok := r.reg[op]; !ok {
		r.reg[op] = make(map[columnar.TypeID]BinaryFunction)
	}
	r.reg[op][ty.ID()] = f
}

// GetForSignature returns the implementation of op over operands of the
// given type. The lookup fails with [columnar.ErrIllegalType] when the
// combination is not implemented.
func (r *binaryFuncReg) GetForSignature(op BinOpKind, ty columnar.DataType) (BinaryFunction, error) {
	fns, ok := r.reg[op]
	if !ok {
		return nil, fmt.Errorf("%w: no implementation for %s", columnar.ErrIllegalType, op)
	}
	fn, ok := fns[ty.ID()]
	if !ok {
		return nil, fmt.Errorf("%w: no implementation for %s over %s", columnar.ErrIllegalType, op, ty)
	}
	return fn, nil
}
