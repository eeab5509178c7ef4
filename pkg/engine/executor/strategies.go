package executor

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/vireodb/vireo/pkg/columnar"
)

// predicateMask casts row-function results to the boolean mask that
// predicate strategies consume. Null slots count as no match.
func predicateMask(arr arrow.Array) (*array.Boolean, error) {
	mask, ok := arr.(*array.Boolean)
	if !ok {
		return nil, fmt.Errorf("%w: expected boolean predicate results, got %s", columnar.ErrIllegalColumn, arr.DataType())
	}
	return mask, nil
}

// mapStrategy replaces every element by its row-function result,
// keeping the row shape of the first array.
type mapStrategy struct{}

func (mapStrategy) NeedsExpression() bool    { return true }
func (mapStrategy) NeedsBooleanResult() bool { return false }
func (mapStrategy) NeedsOneArray() bool      { return false }
func (mapStrategy) IsFolding() bool          { return false }

func (mapStrategy) ReturnType(ret, _ columnar.DataType) (columnar.DataType, error) {
	return columnar.ListOf(ret), nil
}

func (mapStrategy) Execute(in Input) (columnar.ColumnVector, error) {
	b := array.NewListBuilder(in.Mem, in.Reduced.DataType())
	defer b.Release()

	vb := b.ValueBuilder()
	offsets := in.Source.Offsets()
	for r := 0; r < in.Source.Rows(); r++ {
		if in.Source.IsNull(r) {
			b.AppendNull()
			continue
		}
		b.Append(true)
		for k := offsets[r]; k < offsets[r+1]; k++ {
			columnar.AppendValue(vb, in.Reduced, int(k))
		}
	}
	return columnar.NewList(b.NewArray())
}

// filterStrategy keeps the elements of the first array whose predicate
// result is true.
type filterStrategy struct{}

func (filterStrategy) NeedsExpression() bool    { return true }
func (filterStrategy) NeedsBooleanResult() bool { return true }
func (filterStrategy) NeedsOneArray() bool      { return false }
func (filterStrategy) IsFolding() bool          { return false }

func (filterStrategy) ReturnType(_, elem columnar.DataType) (columnar.DataType, error) {
	return columnar.ListOf(elem), nil
}

func (filterStrategy) Execute(in Input) (columnar.ColumnVector, error) {
	mask, err := predicateMask(in.Reduced)
	if err != nil {
		return nil, err
	}

	flat := in.Source.Flat()
	defer flat.Release()

	b := array.NewListBuilder(in.Mem, flat.DataType())
	defer b.Release()

	vb := b.ValueBuilder()
	offsets := in.Source.Offsets()
	for r := 0; r < in.Source.Rows(); r++ {
		if in.Source.IsNull(r) {
			b.AppendNull()
			continue
		}
		b.Append(true)
		for k := offsets[r]; k < offsets[r+1]; k++ {
			if mask.IsValid(int(k)) && mask.Value(int(k)) {
				columnar.AppendValue(vb, flat, int(k))
			}
		}
	}
	return columnar.NewList(b.NewArray())
}

// existsStrategy reduces each row to whether any element satisfies the
// predicate. Rows without elements do not.
type existsStrategy struct{}

func (existsStrategy) NeedsExpression() bool    { return false }
func (existsStrategy) NeedsBooleanResult() bool { return true }
func (existsStrategy) NeedsOneArray() bool      { return false }
func (existsStrategy) IsFolding() bool          { return false }

func (existsStrategy) ReturnType(_, _ columnar.DataType) (columnar.DataType, error) {
	return columnar.Bool, nil
}

func (existsStrategy) Execute(in Input) (columnar.ColumnVector, error) {
	mask, err := predicateMask(in.Reduced)
	if err != nil {
		return nil, err
	}

	b := array.NewBooleanBuilder(in.Mem)
	defer b.Release()

	offsets := in.Source.Offsets()
	for r := 0; r < in.Source.Rows(); r++ {
		if in.Source.IsNull(r) {
			b.AppendNull()
			continue
		}
		found := false
		for k := offsets[r]; k < offsets[r+1] && !found; k++ {
			found = mask.IsValid(int(k)) && mask.Value(int(k))
		}
		b.Append(found)
	}
	return columnar.NewArray(b.NewArray())
}

// allStrategy reduces each row to whether every element satisfies the
// predicate. Rows without elements do, vacuously.
type allStrategy struct{}

func (allStrategy) NeedsExpression() bool    { return false }
func (allStrategy) NeedsBooleanResult() bool { return true }
func (allStrategy) NeedsOneArray() bool      { return false }
func (allStrategy) IsFolding() bool          { return false }

func (allStrategy) ReturnType(_, _ columnar.DataType) (columnar.DataType, error) {
	return columnar.Bool, nil
}

func (allStrategy) Execute(in Input) (columnar.ColumnVector, error) {
	mask, err := predicateMask(in.Reduced)
	if err != nil {
		return nil, err
	}

	b := array.NewBooleanBuilder(in.Mem)
	defer b.Release()

	offsets := in.Source.Offsets()
	for r := 0; r < in.Source.Rows(); r++ {
		if in.Source.IsNull(r) {
			b.AppendNull()
			continue
		}
		holds := true
		for k := offsets[r]; k < offsets[r+1] && holds; k++ {
			holds = mask.IsValid(int(k)) && mask.Value(int(k))
		}
		b.Append(holds)
	}
	return columnar.NewArray(b.NewArray())
}

// countStrategy reduces each row to the number of elements satisfying
// the predicate.
type countStrategy struct{}

func (countStrategy) NeedsExpression() bool    { return false }
func (countStrategy) NeedsBooleanResult() bool { return true }
func (countStrategy) NeedsOneArray() bool      { return false }
func (countStrategy) IsFolding() bool          { return false }

func (countStrategy) ReturnType(_, _ columnar.DataType) (columnar.DataType, error) {
	return columnar.Integer, nil
}

func (countStrategy) Execute(in Input) (columnar.ColumnVector, error) {
	mask, err := predicateMask(in.Reduced)
	if err != nil {
		return nil, err
	}

	b := array.NewInt64Builder(in.Mem)
	defer b.Release()

	offsets := in.Source.Offsets()
	for r := 0; r < in.Source.Rows(); r++ {
		if in.Source.IsNull(r) {
			b.AppendNull()
			continue
		}
		var n int64
		for k := offsets[r]; k < offsets[r+1]; k++ {
			if mask.IsValid(int(k)) && mask.Value(int(k)) {
				n++
			}
		}
		b.Append(n)
	}
	return columnar.NewArray(b.NewArray())
}

// firstStrategy picks each row's first element satisfying the
// predicate. Rows without a match get a null.
type firstStrategy struct{}

func (firstStrategy) NeedsExpression() bool    { return true }
func (firstStrategy) NeedsBooleanResult() bool { return true }
func (firstStrategy) NeedsOneArray() bool      { return false }
func (firstStrategy) IsFolding() bool          { return false }

func (firstStrategy) ReturnType(_, elem columnar.DataType) (columnar.DataType, error) {
	return elem, nil
}

func (firstStrategy) Execute(in Input) (columnar.ColumnVector, error) {
	mask, err := predicateMask(in.Reduced)
	if err != nil {
		return nil, err
	}

	flat := in.Source.Flat()
	defer flat.Release()

	b := array.NewBuilder(in.Mem, flat.DataType())
	defer b.Release()

	offsets := in.Source.Offsets()
	for r := 0; r < in.Source.Rows(); r++ {
		if in.Source.IsNull(r) {
			b.AppendNull()
			continue
		}
		match := -1
		for k := offsets[r]; k < offsets[r+1] && match < 0; k++ {
			if mask.IsValid(int(k)) && mask.Value(int(k)) {
				match = int(k)
			}
		}
		if match < 0 {
			b.AppendNull()
			continue
		}
		columnar.AppendValue(b, flat, match)
	}
	return columnar.NewArray(b.NewArray())
}

// firstIndexStrategy yields the 1-based position of each row's first
// predicate match, or 0 when no element matches.
type firstIndexStrategy struct{}

func (firstIndexStrategy) NeedsExpression() bool    { return true }
func (firstIndexStrategy) NeedsBooleanResult() bool { return true }
func (firstIndexStrategy) NeedsOneArray() bool      { return false }
func (firstIndexStrategy) IsFolding() bool          { return false }

func (firstIndexStrategy) ReturnType(_, _ columnar.DataType) (columnar.DataType, error) {
	return columnar.Integer, nil
}

func (firstIndexStrategy) Execute(in Input) (columnar.ColumnVector, error) {
	mask, err := predicateMask(in.Reduced)
	if err != nil {
		return nil, err
	}

	b := array.NewInt64Builder(in.Mem)
	defer b.Release()

	offsets := in.Source.Offsets()
	for r := 0; r < in.Source.Rows(); r++ {
		if in.Source.IsNull(r) {
			b.AppendNull()
			continue
		}
		var idx int64
		for k := offsets[r]; k < offsets[r+1] && idx == 0; k++ {
			if mask.IsValid(int(k)) && mask.Value(int(k)) {
				idx = int64(k-offsets[r]) + 1
			}
		}
		b.Append(idx)
	}
	return columnar.NewArray(b.NewArray())
}

// sumStrategy adds each row's results into one total. Null slots are
// skipped; rows without elements sum to zero.
type sumStrategy struct{}

func (sumStrategy) NeedsExpression() bool    { return false }
func (sumStrategy) NeedsBooleanResult() bool { return false }
func (sumStrategy) NeedsOneArray() bool      { return false }
func (sumStrategy) IsFolding() bool          { return false }

func (sumStrategy) ReturnType(ret, _ columnar.DataType) (columnar.DataType, error) {
	if !columnar.IsNumeric(ret) {
		return nil, fmt.Errorf("%w: cannot sum values of type %s", columnar.ErrIllegalType, ret)
	}
	return ret, nil
}

func (sumStrategy) Execute(in Input) (columnar.ColumnVector, error) {
	offsets := in.Source.Offsets()

	switch vals := in.Reduced.(type) {
	case *array.Int64:
		b := array.NewInt64Builder(in.Mem)
		defer b.Release()
		for r := 0; r < in.Source.Rows(); r++ {
			if in.Source.IsNull(r) {
				b.AppendNull()
				continue
			}
			var total int64
			for k := offsets[r]; k < offsets[r+1]; k++ {
				if vals.IsValid(int(k)) {
					total += vals.Value(int(k))
				}
			}
			b.Append(total)
		}
		return columnar.NewArray(b.NewArray())

	case *array.Float64:
		b := array.NewFloat64Builder(in.Mem)
		defer b.Release()
		for r := 0; r < in.Source.Rows(); r++ {
			if in.Source.IsNull(r) {
				b.AppendNull()
				continue
			}
			var total float64
			for k := offsets[r]; k < offsets[r+1]; k++ {
				if vals.IsValid(int(k)) {
					total += vals.Value(int(k))
				}
			}
			b.Append(total)
		}
		return columnar.NewArray(b.NewArray())

	default:
		return nil, fmt.Errorf("%w: cannot sum %s values", columnar.ErrIllegalColumn, in.Reduced.DataType())
	}
}

// cumSumStrategy turns each row into its running totals, one per
// element. Null slots stay null and leave the total unchanged.
type cumSumStrategy struct{}

func (cumSumStrategy) NeedsExpression() bool    { return false }
func (cumSumStrategy) NeedsBooleanResult() bool { return false }
func (cumSumStrategy) NeedsOneArray() bool      { return true }
func (cumSumStrategy) IsFolding() bool          { return false }

func (cumSumStrategy) ReturnType(ret, _ columnar.DataType) (columnar.DataType, error) {
	if !columnar.IsNumeric(ret) {
		return nil, fmt.Errorf("%w: cannot sum values of type %s", columnar.ErrIllegalType, ret)
	}
	return columnar.ListOf(ret), nil
}

func (cumSumStrategy) Execute(in Input) (columnar.ColumnVector, error) {
	offsets := in.Source.Offsets()

	switch vals := in.Reduced.(type) {
	case *array.Int64:
		b := array.NewListBuilder(in.Mem, arrow.PrimitiveTypes.Int64)
		defer b.Release()
		vb := b.ValueBuilder().(*array.Int64Builder)
		for r := 0; r < in.Source.Rows(); r++ {
			if in.Source.IsNull(r) {
				b.AppendNull()
				continue
			}
			b.Append(true)
			var total int64
			for k := offsets[r]; k < offsets[r+1]; k++ {
				if !vals.IsValid(int(k)) {
					vb.AppendNull()
					continue
				}
				total += vals.Value(int(k))
				vb.Append(total)
			}
		}
		return columnar.NewList(b.NewArray())

	case *array.Float64:
		b := array.NewListBuilder(in.Mem, arrow.PrimitiveTypes.Float64)
		defer b.Release()
		vb := b.ValueBuilder().(*array.Float64Builder)
		for r := 0; r < in.Source.Rows(); r++ {
			if in.Source.IsNull(r) {
				b.AppendNull()
				continue
			}
			b.Append(true)
			var total float64
			for k := offsets[r]; k < offsets[r+1]; k++ {
				if !vals.IsValid(int(k)) {
					vb.AppendNull()
					continue
				}
				total += vals.Value(int(k))
				vb.Append(total)
			}
		}
		return columnar.NewList(b.NewArray())

	default:
		return nil, fmt.Errorf("%w: cannot sum %s values", columnar.ErrIllegalColumn, in.Reduced.DataType())
	}
}

// foldStrategy carries an accumulator across a row's elements: each
// step's result becomes the next accumulator, and the last one is the
// row's output.
type foldStrategy struct{}

func (foldStrategy) NeedsExpression() bool    { return true }
func (foldStrategy) NeedsBooleanResult() bool { return false }
func (foldStrategy) NeedsOneArray() bool      { return false }
func (foldStrategy) IsFolding() bool          { return true }

func (foldStrategy) ReturnType(_, acc columnar.DataType) (columnar.DataType, error) {
	return acc, nil
}

func (foldStrategy) Execute(in Input) (columnar.ColumnVector, error) {
	b := array.NewBuilder(in.Mem, in.Reduced.DataType())
	defer b.Release()

	for i := 0; i < in.Reduced.Len(); i++ {
		columnar.AppendValue(b, in.Reduced, i)
	}
	return wrapOutput(b.NewArray())
}
