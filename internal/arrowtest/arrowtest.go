// Package arrowtest provides utilities for building and reading Arrow
// arrays in tests.
package arrowtest

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// Array builds an array of typ from values, allocating from alloc. A
// nil value produces a null slot. Integer values may use any Go integer
// type.
func Array(alloc memory.Allocator, typ arrow.DataType, values ...any) arrow.Array {
	b := array.NewBuilder(alloc, typ)
	defer b.Release()

	for _, v := range values {
		appendValue(b, v)
	}
	return b.NewArray()
}

// List builds a list array holding elem-typed values, allocating from
// alloc. A nil row produces a null row; an empty row produces an empty
// array.
func List(alloc memory.Allocator, elem arrow.DataType, rows ...[]any) arrow.Array {
	b := array.NewListBuilder(alloc, elem)
	defer b.Release()

	vb := b.ValueBuilder()
	for _, row := range rows {
		if row == nil {
			b.AppendNull()
			continue
		}
		b.Append(true)
		for _, v := range row {
			appendValue(vb, v)
		}
	}
	return b.NewArray()
}

// Values returns the slots of arr as a slice, with nil for null slots.
func Values(arr arrow.Array) []any {
	out := make([]any, arr.Len())
	for i := range out {
		out[i] = valueAt(arr, i)
	}
	return out
}

// Rows returns the rows of a list array as element slices, with nil
// for null rows.
func Rows(arr arrow.Array) [][]any {
	la := arr.(*array.List)
	out := make([][]any, la.Len())
	for i := range out {
		if la.IsNull(i) {
			continue
		}
		start, end := la.ValueOffsets(i)
		row := make([]any, 0, end-start)
		for k := start; k < end; k++ {
			row = append(row, valueAt(la.ListValues(), int(k)))
		}
		out[i] = row
	}
	return out
}

func appendValue(b array.Builder, v any) {
	if v == nil {
		b.AppendNull()
		return
	}
	switch b := b.(type) {
	case *array.BooleanBuilder:
		b.Append(v.(bool))
	case *array.StringBuilder:
		b.Append(v.(string))
	case *array.Int64Builder:
		b.Append(asInt64(v))
	case *array.Float64Builder:
		b.Append(asFloat64(v))
	default:
		panic(fmt.Sprintf("arrowtest: unsupported builder type %T", b))
	}
}

func asInt64(v any) int64 {
	switch v := v.(type) {
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	default:
		panic(fmt.Sprintf("arrowtest: unsupported integer type %T", v))
	}
}

func asFloat64(v any) float64 {
	switch v := v.(type) {
	case int:
		return float64(v)
	case float64:
		return v
	default:
		panic(fmt.Sprintf("arrowtest: unsupported float type %T", v))
	}
}

func valueAt(arr arrow.Array, i int) any {
	if arr.IsNull(i) {
		return nil
	}
	switch arr := arr.(type) {
	case *array.Boolean:
		return arr.Value(i)
	case *array.String:
		return arr.Value(i)
	case *array.Int64:
		return arr.Value(i)
	case *array.Float64:
		return arr.Value(i)
	default:
		panic(fmt.Sprintf("arrowtest: unsupported array type %T", arr))
	}
}
