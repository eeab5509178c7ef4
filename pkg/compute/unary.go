package compute

import (
	"fmt"
	"math"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/vireodb/vireo/pkg/columnar"
)

// Neg computes the element-wise negation of a numeric vector. Neg
// returns an error if the input is not numeric.
//
// Special cases:
//
//   - If a slot of the input array is null, the result slot is null.
func Neg(mem memory.Allocator, input columnar.ColumnVector) (columnar.ColumnVector, error) {
	input, err := materializeConstant(input)
	if err != nil {
		return nil, err
	}

	switch input.Type() {
	case columnar.Integer:
		return unaryNumeric(mem, input, func(v int64) int64 { return -v })
	case columnar.Float:
		return unaryNumeric(mem, input, func(v float64) float64 { return -v })
	default:
		return nil, fmt.Errorf("invalid input type %s, expected %s or %s", input.Type(), columnar.Integer, columnar.Float)
	}
}

// Abs computes the element-wise absolute value of a numeric vector.
//
// Special cases:
//
//   - If a slot of the input array is null, the result slot is null.
func Abs(mem memory.Allocator, input columnar.ColumnVector) (columnar.ColumnVector, error) {
	input, err := materializeConstant(input)
	if err != nil {
		return nil, err
	}

	switch input.Type() {
	case columnar.Integer:
		return unaryNumeric(mem, input, func(v int64) int64 {
			if v < 0 {
				return -v
			}
			return v
		})
	case columnar.Float:
		return unaryNumeric(mem, input, math.Abs)
	default:
		return nil, fmt.Errorf("invalid input type %s, expected %s or %s", input.Type(), columnar.Integer, columnar.Float)
	}
}

func unaryNumeric[T numeric](mem memory.Allocator, input columnar.ColumnVector, f func(T) T) (columnar.ColumnVector, error) {
	if s, ok := input.(*columnar.Scalar); ok {
		return columnar.NewScalar(columnar.NewLiteral(f(s.Value(0).(T))), s.Len()), nil
	}

	arr := input.ToArray()
	values := numericValues[T](arr)

	out := make([]T, len(values))
	for i := range values {
		out[i] = f(values[i])
	}
	return columnar.NewArray(buildNumeric(mem, out, validityOf(arr)))
}
