package compute

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/vireodb/vireo/pkg/columnar"
)

// Eq computes the element-wise equality of two vectors. Eq returns an
// error if the input types do not match or are not comparable. If both
// inputs are arrays, they must be of the same length.
//
// Special cases:
//
//   - If either slot of an input array is null, the result slot is null.
func Eq(mem memory.Allocator, left, right columnar.ColumnVector) (columnar.ColumnVector, error) {
	left, right, err := materializeConstants(left, right)
	if err != nil {
		return nil, err
	}
	if err := checkMatchingTypes(left, right); err != nil {
		return nil, err
	}

	switch left.Type() {
	case columnar.Integer:
		return compareTyped(mem, int64EqualKernel, left, right)
	case columnar.Float:
		return compareTyped(mem, float64EqualKernel, left, right)
	case columnar.String:
		return compareTyped(mem, stringEqualKernel, left, right)
	case columnar.Bool:
		return compareBool(mem, false, left, right)
	default:
		return nil, fmt.Errorf("invalid input type %s for equality", left.Type())
	}
}

// Neq computes the element-wise inequality of two vectors.
//
// Special cases:
//
//   - If either slot of an input array is null, the result slot is null.
func Neq(mem memory.Allocator, left, right columnar.ColumnVector) (columnar.ColumnVector, error) {
	left, right, err := materializeConstants(left, right)
	if err != nil {
		return nil, err
	}
	if err := checkMatchingTypes(left, right); err != nil {
		return nil, err
	}

	switch left.Type() {
	case columnar.Integer:
		return compareTyped(mem, int64NotEqualKernel, left, right)
	case columnar.Float:
		return compareTyped(mem, float64NotEqualKernel, left, right)
	case columnar.String:
		return compareTyped(mem, stringNotEqualKernel, left, right)
	case columnar.Bool:
		return compareBool(mem, true, left, right)
	default:
		return nil, fmt.Errorf("invalid input type %s for equality", left.Type())
	}
}

// Gt computes the element-wise greater-than comparison of two vectors.
// Booleans have no ordering.
//
// Special cases:
//
//   - If either slot of an input array is null, the result slot is null.
func Gt(mem memory.Allocator, left, right columnar.ColumnVector) (columnar.ColumnVector, error) {
	return dispatchOrdering(mem, int64GTKernel, float64GTKernel, stringGTKernel, left, right)
}

// Gte computes the element-wise greater-or-equal comparison of two
// vectors.
//
// Special cases:
//
//   - If either slot of an input array is null, the result slot is null.
func Gte(mem memory.Allocator, left, right columnar.ColumnVector) (columnar.ColumnVector, error) {
	return dispatchOrdering(mem, int64GTEKernel, float64GTEKernel, stringGTEKernel, left, right)
}

// Lt computes the element-wise less-than comparison of two vectors.
//
// Special cases:
//
//   - If either slot of an input array is null, the result slot is null.
func Lt(mem memory.Allocator, left, right columnar.ColumnVector) (columnar.ColumnVector, error) {
	return dispatchOrdering(mem, int64LTKernel, float64LTKernel, stringLTKernel, left, right)
}

// Lte computes the element-wise less-or-equal comparison of two
// vectors.
//
// Special cases:
//
//   - If either slot of an input array is null, the result slot is null.
func Lte(mem memory.Allocator, left, right columnar.ColumnVector) (columnar.ColumnVector, error) {
	return dispatchOrdering(mem, int64LTEKernel, float64LTEKernel, stringLTEKernel, left, right)
}

func dispatchOrdering(mem memory.Allocator, ik comparisonKernel[int64], fk comparisonKernel[float64], sk comparisonKernel[string], left, right columnar.ColumnVector) (columnar.ColumnVector, error) {
	left, right, err := materializeConstants(left, right)
	if err != nil {
		return nil, err
	}
	if err := checkMatchingTypes(left, right); err != nil {
		return nil, err
	}

	switch left.Type() {
	case columnar.Integer:
		return compareTyped(mem, ik, left, right)
	case columnar.Float:
		return compareTyped(mem, fk, left, right)
	case columnar.String:
		return compareTyped(mem, sk, left, right)
	default:
		return nil, fmt.Errorf("invalid input type %s for ordering comparison", left.Type())
	}
}

func checkMatchingTypes(left, right columnar.ColumnVector) error {
	if left.Type() != right.Type() {
		return fmt.Errorf("both inputs must have matching types, got %s and %s", left.Type(), right.Type())
	}
	return nil
}

func compareTyped[T ordered](mem memory.Allocator, kernel comparisonKernel[T], left, right columnar.ColumnVector) (columnar.ColumnVector, error) {
	_, leftScalar := left.(*columnar.Scalar)
	_, rightScalar := right.(*columnar.Scalar)

	switch {
	case leftScalar && rightScalar:
		v := kernel.DoSS(left.Value(0).(T), right.Value(0).(T))
		return columnar.NewScalar(columnar.NewLiteral(v), left.Len()), nil

	case leftScalar && !rightScalar:
		arr := right.ToArray()
		values := orderedValues[T](arr)
		valid := validityOf(arr)

		out := make([]bool, len(values))
		kernel.DoSA(out, left.Value(0).(T), values)
		return columnar.NewArray(buildBools(mem, out, valid))

	case !leftScalar && rightScalar:
		arr := left.ToArray()
		values := orderedValues[T](arr)
		valid := validityOf(arr)

		out := make([]bool, len(values))
		kernel.DoAS(out, values, right.Value(0).(T))
		return columnar.NewArray(buildBools(mem, out, valid))

	case !leftScalar && !rightScalar:
		leftArr, rightArr := left.ToArray(), right.ToArray()
		valid, err := validityAnd(leftArr, rightArr)
		if err != nil {
			return nil, err
		}

		out := make([]bool, leftArr.Len())
		kernel.DoAA(out, orderedValues[T](leftArr), orderedValues[T](rightArr))
		return columnar.NewArray(buildBools(mem, out, valid))
	}

	panic("unreachable")
}

// compareBool computes boolean equality, negated for inequality.
func compareBool(mem memory.Allocator, negate bool, left, right columnar.ColumnVector) (columnar.ColumnVector, error) {
	_, leftScalar := left.(*columnar.Scalar)
	_, rightScalar := right.(*columnar.Scalar)

	switch {
	case leftScalar && rightScalar:
		v := left.Value(0).(bool) == right.Value(0).(bool)
		return columnar.NewScalar(columnar.NewLiteral(v != negate), left.Len()), nil

	case leftScalar && !rightScalar:
		arr := right.ToArray().(*array.Boolean)
		values := boolValues(arr)
		lv := left.Value(0).(bool)

		out := make([]bool, len(values))
		for i := range values {
			out[i] = (lv == values[i]) != negate
		}
		return columnar.NewArray(buildBools(mem, out, validityOf(arr)))

	case !leftScalar && rightScalar:
		return compareBool(mem, negate, right, left)

	case !leftScalar && !rightScalar:
		leftArr := left.ToArray().(*array.Boolean)
		rightArr := right.ToArray().(*array.Boolean)
		valid, err := validityAnd(leftArr, rightArr)
		if err != nil {
			return nil, err
		}

		out := make([]bool, leftArr.Len())
		for i := range out {
			out[i] = (leftArr.Value(i) == rightArr.Value(i)) != negate
		}
		return columnar.NewArray(buildBools(mem, out, valid))
	}

	panic("unreachable")
}
