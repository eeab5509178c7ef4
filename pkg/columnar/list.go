package columnar

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// List represents an array column: one variable-length list of elements
// per row, stored as an [array.List] with a flat element array and row
// offsets.
type List struct {
	list *array.List
	dt   ListType

	// base is the position of the first row's first element in the
	// underlying flat array. It is non-zero for sliced arrays.
	base int64
	// offsets are the row offsets relative to base. offsets[0] is always
	// 0 and offsets[Rows()] is the total element count.
	offsets []int32
}

var _ ColumnVector = (*List)(nil)

// NewList creates a list vector from an Arrow list array.
func NewList(arr arrow.Array) (*List, error) {
	la, ok := arr.(*array.List)
	if !ok {
		return nil, fmt.Errorf("%w: expected list array, got %s", ErrIllegalColumn, arr.DataType())
	}
	dt, err := FromArrow(la.DataType())
	if err != nil {
		return nil, err
	}
	return newList(la, dt.(ListType)), nil
}

func newList(la *array.List, dt ListType) *List {
	rows := la.Len()
	offsets := make([]int32, rows+1)

	var base int64
	if rows > 0 {
		base, _ = la.ValueOffsets(0)
		for r := 0; r < rows; r++ {
			_, end := la.ValueOffsets(r)
			offsets[r+1] = int32(end - base)
		}
	}
	return &List{list: la, dt: dt, base: base, offsets: offsets}
}

// ToArray implements ColumnVector.
func (l *List) ToArray() arrow.Array {
	return l.list
}

// Value implements ColumnVector. It returns the row's elements as a
// []any, or nil for a null row.
func (l *List) Value(i int) any {
	if l.list.IsNull(i) {
		return nil
	}
	vals := l.list.ListValues()
	count := int(l.offsets[i+1] - l.offsets[i])
	row := make([]any, count)
	for k := 0; k < count; k++ {
		row[k] = valueAt(vals, int(l.base)+int(l.offsets[i])+k)
	}
	return row
}

// Type implements ColumnVector.
func (l *List) Type() DataType {
	return l.dt
}

// Len implements ColumnVector.
func (l *List) Len() int64 {
	return int64(l.list.Len())
}

// Rows returns the number of rows in the column.
func (l *List) Rows() int {
	return l.list.Len()
}

// IsNull reports whether row i is null. Null rows have no elements.
func (l *List) IsNull(i int) bool {
	return l.list.IsNull(i)
}

// ElementType returns the type of the column's elements.
func (l *List) ElementType() DataType {
	return l.dt.ElementType()
}

// Offsets returns the row offsets of the column. The slice has Rows()+1
// entries, starts at 0, and ends at the total element count. Offsets
// index into the array returned by Flat.
func (l *List) Offsets() []int32 {
	return l.offsets
}

// TotalElements returns the number of elements across all rows.
func (l *List) TotalElements() int64 {
	return int64(l.offsets[len(l.offsets)-1])
}

// Flat returns the elements of all rows as a single array, in row
// order. The caller must release the returned array.
func (l *List) Flat() arrow.Array {
	return array.NewSlice(l.list.ListValues(), l.base, l.base+l.TotalElements())
}

// Slice returns a view of rows [i, j). The caller must release the
// returned list's array.
func (l *List) Slice(i, j int64) *List {
	sliced := array.NewSlice(l.list, i, j).(*array.List)
	return newList(sliced, l.dt)
}
