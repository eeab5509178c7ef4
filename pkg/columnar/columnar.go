// Package columnar provides the in-memory column model of the engine.
//
// Columns are Arrow-backed. A [ColumnVector] is either fully
// materialized ([Array], [List]), a constant ([Scalar], [Constant]), or
// a deferred computation over other columns ([Closure]). Constant and
// dictionary-encoded vectors materialize lazily; the engine resolves
// them before elementwise work.
package columnar

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// ColumnVector represents columnar values from evaluated expressions.
type ColumnVector interface {
	// ToArray returns the underlying Arrow array representation of the
	// column vector. Constant vectors materialize a new array on every
	// call.
	ToArray() arrow.Array
	// Value returns the value at the specified index position in the
	// column vector.
	Value(i int) any
	// Type returns the engine data type of the column vector.
	Type() DataType
	// Len returns the length of the vector.
	Len() int64
}

// Scalar represents a single literal value repeated any number of times.
type Scalar struct {
	value Literal
	rows  int64
}

var _ ColumnVector = (*Scalar)(nil)

// NewScalar creates a scalar vector holding value repeated rows times.
func NewScalar(value Literal, rows int64) *Scalar {
	return &Scalar{value: value, rows: rows}
}

// ToArray implements ColumnVector.
func (v *Scalar) ToArray() arrow.Array {
	mem := memory.NewGoAllocator()
	builder := array.NewBuilder(mem, v.Type().ArrowType())
	defer builder.Release()

	switch builder := builder.(type) {
	case *array.NullBuilder:
		for range v.rows {
			builder.AppendNull()
		}
	case *array.BooleanBuilder:
		value := v.value.Any().(bool)
		for range v.rows {
			builder.Append(value)
		}
	case *array.StringBuilder:
		value := v.value.Any().(string)
		for range v.rows {
			builder.Append(value)
		}
	case *array.Int64Builder:
		value := v.value.Any().(int64)
		for range v.rows {
			builder.Append(value)
		}
	case *array.Float64Builder:
		value := v.value.Any().(float64)
		for range v.rows {
			builder.Append(value)
		}
	}
	return builder.NewArray()
}

// Value implements ColumnVector.
func (v *Scalar) Value(_ int) any {
	return v.value.Any()
}

// Type implements ColumnVector.
func (v *Scalar) Type() DataType {
	return v.value.Type()
}

// Len implements ColumnVector.
func (v *Scalar) Len() int64 {
	return v.rows
}

// Literal returns the scalar's value.
func (v *Scalar) Literal() Literal {
	return v.value
}

// Array represents a column of data, stored as an [arrow.Array].
type Array struct {
	array arrow.Array
	dt    DataType
}

var _ ColumnVector = (*Array)(nil)

// NewArray creates an array vector from an Arrow array. The engine type
// is derived from the array's Arrow type.
func NewArray(arr arrow.Array) (*Array, error) {
	dt, err := FromArrow(arr.DataType())
	if err != nil {
		return nil, err
	}
	return &Array{array: arr, dt: dt}, nil
}

// ToArray implements ColumnVector.
func (a *Array) ToArray() arrow.Array {
	return a.array
}

// Value implements ColumnVector.
func (a *Array) Value(i int) any {
	return valueAt(a.array, i)
}

// Type implements ColumnVector.
func (a *Array) Type() DataType {
	return a.dt
}

// Len implements ColumnVector.
func (a *Array) Len() int64 {
	return int64(a.array.Len())
}

// Constant represents a single row of any type repeated any number of
// times. Unlike [Scalar] it can hold nested values, such as a whole
// array-column row.
type Constant struct {
	value arrow.Array // holds exactly one row
	rows  int64
	dt    DataType
}

var _ ColumnVector = (*Constant)(nil)

// NewConstant creates a constant vector repeating the single row of
// value rows times.
func NewConstant(value arrow.Array, rows int64) (*Constant, error) {
	if value.Len() != 1 {
		return nil, fmt.Errorf("%w: constant value must hold exactly one row, got %d", ErrIllegalColumn, value.Len())
	}
	dt, err := FromArrow(value.DataType())
	if err != nil {
		return nil, err
	}
	return &Constant{value: value, rows: rows, dt: dt}, nil
}

// ToArray implements ColumnVector.
func (c *Constant) ToArray() arrow.Array {
	mem := memory.NewGoAllocator()
	builder := array.NewBuilder(mem, decodedType(c.value.DataType()))
	defer builder.Release()

	for range c.rows {
		appendValue(builder, c.value, 0)
	}
	return builder.NewArray()
}

// Value implements ColumnVector.
func (c *Constant) Value(_ int) any {
	return valueAt(c.value, 0)
}

// Type implements ColumnVector.
func (c *Constant) Type() DataType {
	return c.dt
}

// Len implements ColumnVector.
func (c *Constant) Len() int64 {
	return c.rows
}

// Release frees the Arrow array behind an array-backed vector. Scalar
// and constant vectors hold no materialized array and need no release.
func Release(v ColumnVector) {
	switch v := v.(type) {
	case *Array:
		v.array.Release()
	case *List:
		v.list.Release()
	}
}
