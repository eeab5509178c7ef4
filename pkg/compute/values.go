package compute

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// numeric is the set of element types arithmetic kernels operate on.
type numeric interface {
	int64 | float64
}

// ordered is the set of element types comparison kernels operate on.
type ordered interface {
	int64 | float64 | string
}

// numericValues returns the raw value slice of a numeric array. Slots
// that are null hold garbage data and must be masked by validity.
func numericValues[T numeric](arr arrow.Array) []T {
	switch arr := arr.(type) {
	case *array.Int64:
		return any(arr.Int64Values()).([]T)
	case *array.Float64:
		return any(arr.Float64Values()).([]T)
	}
	panic("unexpected array type for numeric values")
}

// orderedValues returns the values of a comparable array as a slice.
func orderedValues[T ordered](arr arrow.Array) []T {
	switch arr := arr.(type) {
	case *array.Int64:
		return any(arr.Int64Values()).([]T)
	case *array.Float64:
		return any(arr.Float64Values()).([]T)
	case *array.String:
		out := make([]string, arr.Len())
		for i := range out {
			out[i] = arr.Value(i)
		}
		return any(out).([]T)
	}
	panic("unexpected array type for ordered values")
}

// boolValues returns the values of a boolean array as a slice. Boolean
// arrays are bitmap-packed, so this always copies.
func boolValues(arr *array.Boolean) []bool {
	out := make([]bool, arr.Len())
	for i := range out {
		out[i] = arr.Value(i)
	}
	return out
}

// buildNumeric builds a numeric array from values and a validity mask.
// A nil mask marks every slot valid.
func buildNumeric[T numeric](mem memory.Allocator, values []T, valid []bool) arrow.Array {
	switch values := any(values).(type) {
	case []int64:
		b := array.NewInt64Builder(mem)
		defer b.Release()
		b.AppendValues(values, valid)
		return b.NewArray()
	case []float64:
		b := array.NewFloat64Builder(mem)
		defer b.Release()
		b.AppendValues(values, valid)
		return b.NewArray()
	}
	panic("unexpected value type for numeric array")
}

// buildBools builds a boolean array from values and a validity mask.
func buildBools(mem memory.Allocator, values []bool, valid []bool) arrow.Array {
	b := array.NewBooleanBuilder(mem)
	defer b.Release()
	b.AppendValues(values, valid)
	return b.NewArray()
}
