package compute

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/vireodb/vireo/pkg/columnar"
)

// Not negates the input boolean vector. Not returns an error if the
// input type is not Bool.
//
// Special cases:
//
//   - The negation of a null slot is null.
func Not(mem memory.Allocator, input columnar.ColumnVector) (columnar.ColumnVector, error) {
	input, err := materializeConstant(input)
	if err != nil {
		return nil, err
	}
	if got, want := input.Type(), columnar.Bool; got != want {
		return nil, fmt.Errorf("invalid input type %s, expected %s", got, want)
	}

	if s, ok := input.(*columnar.Scalar); ok {
		return columnar.NewScalar(columnar.NewLiteral(!s.Value(0).(bool)), s.Len()), nil
	}

	arr := input.ToArray().(*array.Boolean)
	values := boolValues(arr)

	out := make([]bool, len(values))
	for i := range values {
		out[i] = !values[i]
	}
	return columnar.NewArray(buildBools(mem, out, validityOf(arr)))
}

// And computes the element-wise logical AND of two boolean vectors. And
// returns an error if the type of either input is not Bool. If both
// inputs are arrays, they must be of the same length.
//
// Special cases:
//
//   - If either slot of an input array is null, the result slot is null.
func And(mem memory.Allocator, left, right columnar.ColumnVector) (columnar.ColumnVector, error) {
	return dispatchLogical(mem, logicalAndKernel, left, right)
}

// Or computes the element-wise logical OR of two boolean vectors.
//
// Special cases:
//
//   - If either slot of an input array is null, the result slot is null.
func Or(mem memory.Allocator, left, right columnar.ColumnVector) (columnar.ColumnVector, error) {
	return dispatchLogical(mem, logicalOrKernel, left, right)
}

// Xor computes the element-wise logical XOR of two boolean vectors.
//
// Special cases:
//
//   - If either slot of an input array is null, the result slot is null.
func Xor(mem memory.Allocator, left, right columnar.ColumnVector) (columnar.ColumnVector, error) {
	return dispatchLogical(mem, logicalXorKernel, left, right)
}

func dispatchLogical(mem memory.Allocator, kernel logicalKernel, left, right columnar.ColumnVector) (columnar.ColumnVector, error) {
	left, right, err := materializeConstants(left, right)
	if err != nil {
		return nil, err
	}
	if got, want := left.Type(), columnar.Bool; got != want {
		return nil, fmt.Errorf("invalid input type %s, expected %s", got, want)
	}
	if err := checkMatchingTypes(left, right); err != nil {
		return nil, err
	}

	_, leftScalar := left.(*columnar.Scalar)
	_, rightScalar := right.(*columnar.Scalar)

	switch {
	case leftScalar && rightScalar:
		v := kernel.DoSS(left.Value(0).(bool), right.Value(0).(bool))
		return columnar.NewScalar(columnar.NewLiteral(v), left.Len()), nil

	case leftScalar && !rightScalar:
		arr := right.ToArray().(*array.Boolean)
		values := boolValues(arr)

		out := make([]bool, len(values))
		kernel.DoSA(out, left.Value(0).(bool), values)
		return columnar.NewArray(buildBools(mem, out, validityOf(arr)))

	case !leftScalar && rightScalar:
		arr := left.ToArray().(*array.Boolean)
		values := boolValues(arr)

		out := make([]bool, len(values))
		kernel.DoAS(out, values, right.Value(0).(bool))
		return columnar.NewArray(buildBools(mem, out, validityOf(arr)))

	case !leftScalar && !rightScalar:
		leftArr := left.ToArray().(*array.Boolean)
		rightArr := right.ToArray().(*array.Boolean)
		valid, err := validityAnd(leftArr, rightArr)
		if err != nil {
			return nil, err
		}

		out := make([]bool, leftArr.Len())
		kernel.DoAA(out, boolValues(leftArr), boolValues(rightArr))
		return columnar.NewArray(buildBools(mem, out, valid))
	}

	panic("unreachable")
}
