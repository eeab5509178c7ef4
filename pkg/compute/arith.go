// Package compute implements element-wise kernels over column vectors:
// arithmetic, comparisons, and boolean logic. Kernels dispatch on the
// scalar/array shape of both operands and propagate nulls. Callers
// resolve dictionary encoding before invoking a kernel.
package compute

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/vireodb/vireo/pkg/columnar"
)

// Add computes the element-wise sum of two numeric vectors. Add returns
// an error if the inputs are not numeric or their types do not match.
// If both inputs are arrays, they must be of the same length.
//
// Special cases:
//
//   - If either slot of an input array is null, the result slot is null.
func Add(mem memory.Allocator, left, right columnar.ColumnVector) (columnar.ColumnVector, error) {
	return dispatchArith(mem, int64AddKernel, float64AddKernel, left, right)
}

// Sub computes the element-wise difference of two numeric vectors.
//
// Special cases:
//
//   - If either slot of an input array is null, the result slot is null.
func Sub(mem memory.Allocator, left, right columnar.ColumnVector) (columnar.ColumnVector, error) {
	return dispatchArith(mem, int64SubKernel, float64SubKernel, left, right)
}

// Mul computes the element-wise product of two numeric vectors.
//
// Special cases:
//
//   - If either slot of an input array is null, the result slot is null.
func Mul(mem memory.Allocator, left, right columnar.ColumnVector) (columnar.ColumnVector, error) {
	return dispatchArith(mem, int64MulKernel, float64MulKernel, left, right)
}

// Div computes the element-wise quotient of two numeric vectors.
//
// Special cases:
//
//   - If either slot of an input array is null, the result slot is null.
//   - Integer division by zero at a valid slot is an error.
//   - Float division follows IEEE semantics and never fails.
func Div(mem memory.Allocator, left, right columnar.ColumnVector) (columnar.ColumnVector, error) {
	return dispatchArith(mem, int64DivKernel, float64DivKernel, left, right)
}

// Mod computes the element-wise remainder of two numeric vectors.
//
// Special cases:
//
//   - If either slot of an input array is null, the result slot is null.
//   - A zero integer modulus at a valid slot is an error.
//   - Float remainders follow math.Mod semantics and never fail.
func Mod(mem memory.Allocator, left, right columnar.ColumnVector) (columnar.ColumnVector, error) {
	return dispatchArith(mem, int64ModKernel, float64ModKernel, left, right)
}

// Min computes the element-wise minimum of two numeric vectors.
//
// Special cases:
//
//   - If either slot of an input array is null, the result slot is null.
func Min(mem memory.Allocator, left, right columnar.ColumnVector) (columnar.ColumnVector, error) {
	return dispatchArith(mem, int64MinKernel, float64MinKernel, left, right)
}

// Max computes the element-wise maximum of two numeric vectors.
//
// Special cases:
//
//   - If either slot of an input array is null, the result slot is null.
func Max(mem memory.Allocator, left, right columnar.ColumnVector) (columnar.ColumnVector, error) {
	return dispatchArith(mem, int64MaxKernel, float64MaxKernel, left, right)
}

func dispatchArith(mem memory.Allocator, ik numericArithKernel[int64], fk numericArithKernel[float64], left, right columnar.ColumnVector) (columnar.ColumnVector, error) {
	left, right, err := materializeConstants(left, right)
	if err != nil {
		return nil, err
	}
	if err := checkMatchingTypes(left, right); err != nil {
		return nil, err
	}

	switch left.Type() {
	case columnar.Integer:
		return arithTyped(mem, ik, left, right)
	case columnar.Float:
		return arithTyped(mem, fk, left, right)
	default:
		return nil, fmt.Errorf("invalid input type %s, expected %s or %s", left.Type(), columnar.Integer, columnar.Float)
	}
}

func arithTyped[T numeric](mem memory.Allocator, kernel numericArithKernel[T], left, right columnar.ColumnVector) (columnar.ColumnVector, error) {
	_, leftScalar := left.(*columnar.Scalar)
	_, rightScalar := right.(*columnar.Scalar)

	switch {
	case leftScalar && rightScalar:
		return arithSS(kernel, left.(*columnar.Scalar), right.(*columnar.Scalar))
	case leftScalar && !rightScalar:
		return arithSA(mem, kernel, left.(*columnar.Scalar), right)
	case !leftScalar && rightScalar:
		return arithAS(mem, kernel, left, right.(*columnar.Scalar))
	case !leftScalar && !rightScalar:
		return arithAA(mem, kernel, left, right)
	}

	panic("unreachable")
}

func arithSS[T numeric](kernel numericArithKernel[T], left, right *columnar.Scalar) (columnar.ColumnVector, error) {
	v, err := kernel.DoSS(left.Value(0).(T), right.Value(0).(T))
	if err != nil {
		return nil, err
	}
	return columnar.NewScalar(columnar.NewLiteral(v), left.Len()), nil
}

func arithSA[T numeric](mem memory.Allocator, kernel numericArithKernel[T], left *columnar.Scalar, right columnar.ColumnVector) (columnar.ColumnVector, error) {
	arr := right.ToArray()
	values := numericValues[T](arr)
	valid := validityOf(arr)

	out := make([]T, len(values))
	if err := kernel.DoSA(out, valid, left.Value(0).(T), values); err != nil {
		return nil, err
	}
	return columnar.NewArray(buildNumeric(mem, out, valid))
}

func arithAS[T numeric](mem memory.Allocator, kernel numericArithKernel[T], left columnar.ColumnVector, right *columnar.Scalar) (columnar.ColumnVector, error) {
	arr := left.ToArray()
	values := numericValues[T](arr)
	valid := validityOf(arr)

	out := make([]T, len(values))
	if err := kernel.DoAS(out, valid, values, right.Value(0).(T)); err != nil {
		return nil, err
	}
	return columnar.NewArray(buildNumeric(mem, out, valid))
}

func arithAA[T numeric](mem memory.Allocator, kernel numericArithKernel[T], left, right columnar.ColumnVector) (columnar.ColumnVector, error) {
	leftArr, rightArr := left.ToArray(), right.ToArray()

	valid, err := validityAnd(leftArr, rightArr)
	if err != nil {
		return nil, err
	}

	out := make([]T, leftArr.Len())
	if err := kernel.DoAA(out, valid, numericValues[T](leftArr), numericValues[T](rightArr)); err != nil {
		return nil, err
	}
	return columnar.NewArray(buildNumeric(mem, out, valid))
}

// materializeConstant resolves a Constant operand into a plain array so
// kernels only see scalars and arrays. Other vectors pass through.
func materializeConstant(v columnar.ColumnVector) (columnar.ColumnVector, error) {
	if _, ok := v.(*columnar.Constant); ok {
		return columnar.Materialize(v)
	}
	return v, nil
}

func materializeConstants(left, right columnar.ColumnVector) (columnar.ColumnVector, columnar.ColumnVector, error) {
	left, err := materializeConstant(left)
	if err != nil {
		return nil, nil, err
	}
	right, err = materializeConstant(right)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}
