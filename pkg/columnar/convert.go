package columnar

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// valueAt reads a single position of an Arrow array as a Go value.
// Dictionary-encoded values resolve through their dictionary; list
// values come back as []any. Nulls come back as nil.
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
	case *array.Uint64:
		return arr.Value(i)
	case *array.Float64:
		return arr.Value(i)
	case *array.Dictionary:
		return valueAt(arr.Dictionary(), arr.GetValueIndex(i))
	case *array.List:
		start, end := arr.ValueOffsets(i)
		vals := arr.ListValues()
		row := make([]any, 0, end-start)
		for p := start; p < end; p++ {
			row = append(row, valueAt(vals, int(p)))
		}
		return row
	default:
		return nil
	}
}

// appendValue appends position i of src to the builder. The builder
// must be of src's decoded type; dictionary-encoded positions resolve
// through their dictionary.
func appendValue(b array.Builder, src arrow.Array, i int) {
	if src.IsNull(i) {
		b.AppendNull()
		return
	}

	switch src := src.(type) {
	case *array.Boolean:
		b.(*array.BooleanBuilder).Append(src.Value(i))
	case *array.String:
		b.(*array.StringBuilder).Append(src.Value(i))
	case *array.Int64:
		b.(*array.Int64Builder).Append(src.Value(i))
	case *array.Float64:
		b.(*array.Float64Builder).Append(src.Value(i))
	case *array.Dictionary:
		appendValue(b, src.Dictionary(), src.GetValueIndex(i))
	case *array.List:
		lb := b.(*array.ListBuilder)
		lb.Append(true)
		start, end := src.ValueOffsets(i)
		vals := src.ListValues()
		for p := start; p < end; p++ {
			appendValue(lb.ValueBuilder(), vals, int(p))
		}
	default:
		b.AppendNull()
	}
}

// AppendValue appends position i of src to the builder, preserving
// nulls. The builder must be of src's decoded type; dictionary-encoded
// positions resolve through their dictionary.
func AppendValue(b array.Builder, src arrow.Array, i int) {
	appendValue(b, src, i)
}

// Materialize resolves constant vectors into fully materialized ones.
// Array-backed vectors are returned unchanged.
func Materialize(v ColumnVector) (ColumnVector, error) {
	switch v := v.(type) {
	case *Scalar:
		return &Array{array: v.ToArray(), dt: v.Type()}, nil
	case *Constant:
		arr := v.ToArray()
		if la, ok := arr.(*array.List); ok {
			return newList(la, v.dt.(ListType)), nil
		}
		return &Array{array: arr, dt: v.dt}, nil
	default:
		return v, nil
	}
}

// DecodeDictionary resolves a dictionary-encoded array vector into a
// plain one. Other vectors are returned unchanged.
func DecodeDictionary(v ColumnVector) (ColumnVector, error) {
	a, ok := v.(*Array)
	if !ok {
		return v, nil
	}
	dict, ok := a.array.(*array.Dictionary)
	if !ok {
		return v, nil
	}

	mem := memory.NewGoAllocator()
	b := array.NewBuilder(mem, dict.Dictionary().DataType())
	defer b.Release()

	for i := 0; i < dict.Len(); i++ {
		appendValue(b, dict, i)
	}
	return &Array{array: b.NewArray(), dt: a.dt}, nil
}

// AsList resolves v into a list vector, materializing constants and
// decoding dictionary-encoded elements. It fails with ErrIllegalColumn
// when v does not hold list data.
func AsList(v ColumnVector) (*List, error) {
	switch v := v.(type) {
	case *List:
		return decodedElements(v), nil

	case *Array:
		la, ok := v.array.(*array.List)
		if !ok {
			return nil, fmt.Errorf("%w: expected array column, got %s", ErrIllegalColumn, v.array.DataType())
		}
		lt, ok := v.dt.(ListType)
		if !ok {
			return nil, fmt.Errorf("%w: expected array column, got %s", ErrIllegalColumn, v.dt)
		}
		return decodedElements(newList(la, lt)), nil

	case *Constant:
		la, ok := v.value.(*array.List)
		if !ok {
			return nil, fmt.Errorf("%w: expected constant array column, got %s", ErrIllegalColumn, v.value.DataType())
		}
		la = decodeListArray(la)

		mem := memory.NewGoAllocator()
		b := array.NewBuilder(mem, la.DataType())
		defer b.Release()
		for range v.rows {
			appendValue(b, la, 0)
		}
		return newList(b.NewArray().(*array.List), v.dt.(ListType)), nil

	default:
		return nil, fmt.Errorf("%w: expected array column, got %s", ErrIllegalColumn, v.Type())
	}
}

// decodedElements rewrites l with plain elements when its element array
// is dictionary-encoded.
func decodedElements(l *List) *List {
	if l.list.ListValues().DataType().ID() != arrow.DICTIONARY {
		return l
	}
	return newList(decodeListArray(l.list), l.dt)
}

// decodeListArray rebuilds a list array whose flat element array is
// dictionary-encoded into one with plain elements.
func decodeListArray(la *array.List) *array.List {
	dt, ok := la.DataType().(*arrow.ListType)
	if !ok {
		return la
	}
	elem, ok := dt.Elem().(*arrow.DictionaryType)
	if !ok {
		return la
	}

	mem := memory.NewGoAllocator()
	b := array.NewListBuilder(mem, elem.ValueType)
	defer b.Release()

	vals := la.ListValues()
	for r := 0; r < la.Len(); r++ {
		if la.IsNull(r) {
			b.AppendNull()
			continue
		}
		b.Append(true)
		start, end := la.ValueOffsets(r)
		for p := start; p < end; p++ {
			appendValue(b.ValueBuilder(), vals, int(p))
		}
	}
	return b.NewArray().(*array.List)
}

// Slice returns a view of rows [i, j) of v. For array-backed vectors
// the caller must release the returned vector's array.
func Slice(v ColumnVector, i, j int64) (ColumnVector, error) {
	switch v := v.(type) {
	case *Scalar:
		return NewScalar(v.value, j-i), nil
	case *Constant:
		return &Constant{value: v.value, rows: j - i, dt: v.dt}, nil
	case *Array:
		return &Array{array: array.NewSlice(v.array, i, j), dt: v.dt}, nil
	case *List:
		return v.Slice(i, j), nil
	default:
		return nil, fmt.Errorf("%w: cannot slice %T", ErrIllegalColumn, v)
	}
}
