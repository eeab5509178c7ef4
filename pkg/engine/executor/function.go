package executor

import (
	"fmt"
	"slices"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/vireodb/vireo/pkg/columnar"
)

// Function is one named higher-order operation, bound to the strategy
// that shapes its results.
type Function struct {
	name     string
	strategy Strategy
}

// NewFunction binds a strategy to a name. Callers normally resolve
// functions through [Lookup] instead.
func NewFunction(name string, strategy Strategy) *Function {
	return &Function{name: name, strategy: strategy}
}

// Name returns the name the function is registered under.
func (f *Function) Name() string { return f.name }

// Strategy returns the strategy backing the function.
func (f *Function) Strategy() Strategy { return f.strategy }

// LambdaArgumentTypes derives the parameter types the row function must
// accept given the full call signature: one per array argument's
// element type, plus the accumulator type last for folding operations.
// args[0] must be a function type with matching arity.
func (f *Function) LambdaArgumentTypes(args []columnar.DataType) ([]columnar.DataType, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: function %s needs at least one argument", columnar.ErrArgumentCount, f.name)
	}
	if len(args) == 1 {
		return nil, fmt.Errorf("%w: function %s needs at least one array argument", columnar.ErrArgumentCount, f.name)
	}

	skip := 0
	if f.strategy.IsFolding() {
		skip = 1
	}

	nested := make([]columnar.DataType, len(args)-1)
	if len(nested)-skip < 1 {
		return nil, fmt.Errorf("%w: function %s needs at least one array argument", columnar.ErrArgumentCount, f.name)
	}
	for i := 0; i < len(nested)-skip; i++ {
		lt, ok := columnar.AsListType(args[i+1])
		if !ok {
			return nil, fmt.Errorf("%w: argument %d of function %s must be an array, found %s", columnar.ErrIllegalType, i+2, f.name, args[i+1])
		}
		nested[i] = lt.ElementType()
	}
	if skip == 1 {
		nested[len(nested)-1] = args[len(args)-1]
	}

	ft, ok := columnar.AsFunctionType(args[0])
	if !ok || len(ft.Parameters()) < len(nested) {
		return nil, fmt.Errorf("%w: first argument of function %s must be a function with %d arguments, found %s", columnar.ErrIllegalType, f.name, len(nested), args[0])
	}
	return nested, nil
}

// ReturnType derives the result type of a call with the given argument
// types. The one-argument form is accepted for operations that do not
// require an expression; every other call starts with a function type.
func (f *Function) ReturnType(args []columnar.DataType) (columnar.DataType, error) {
	minArgs := 1
	if f.strategy.NeedsExpression() {
		minArgs = 2
	}
	if len(args) < minArgs {
		return nil, fmt.Errorf("%w: function %s needs at least %d arguments, got %d", columnar.ErrArgumentCount, f.name, minArgs, len(args))
	}

	if len(args) == 1 {
		lt, ok := columnar.AsListType(args[0])
		if !ok {
			return nil, fmt.Errorf("%w: the only argument of function %s must be an array, found %s", columnar.ErrIllegalType, f.name, args[0])
		}
		if f.strategy.NeedsBooleanResult() && !typesEqual(lt.ElementType(), columnar.Bool) {
			return nil, fmt.Errorf("%w: the only argument of function %s must be an array of %s, found %s", columnar.ErrIllegalType, f.name, columnar.Bool, args[0])
		}
		return f.strategy.ReturnType(lt.ElementType(), lt.ElementType())
	}

	if f.strategy.NeedsOneArray() && len(args) > 2 {
		return nil, fmt.Errorf("%w: function %s needs exactly one array argument", columnar.ErrArgumentCount, f.name)
	}

	ft, ok := columnar.AsFunctionType(args[0])
	if !ok {
		return nil, fmt.Errorf("%w: first argument of function %s must be a function, found %s", columnar.ErrIllegalType, f.name, args[0])
	}
	ret := ft.ReturnType()
	if ret == nil {
		return nil, fmt.Errorf("%w: function argument of %s has no return type", columnar.ErrIllegalType, f.name)
	}
	if f.strategy.NeedsBooleanResult() && !typesEqual(ret, columnar.Bool) {
		return nil, fmt.Errorf("%w: expression of function %s must return %s, found %s", columnar.ErrIllegalType, f.name, columnar.Bool, ret)
	}

	if f.strategy.IsFolding() {
		return f.strategy.ReturnType(ret, args[len(args)-1])
	}

	lt, ok := columnar.AsListType(args[1])
	if !ok {
		return nil, fmt.Errorf("%w: argument 2 of function %s must be an array, found %s", columnar.ErrIllegalType, f.name, args[1])
	}
	return f.strategy.ReturnType(ret, lt.ElementType())
}

// Execute runs the function over one batch. Arguments follow the call
// shape: the closure first when present, then the array arguments, then
// the initial accumulator column for folding operations. Array-backed
// results are allocated from mem and owned by the caller.
func (f *Function) Execute(mem memory.Allocator, args []Argument) (columnar.ColumnVector, error) {
	minArgs := 1
	if f.strategy.NeedsExpression() {
		minArgs = 2
	}
	if len(args) < minArgs {
		return nil, fmt.Errorf("%w: function %s needs at least %d arguments, got %d", columnar.ErrArgumentCount, f.name, minArgs, len(args))
	}

	if len(args) == 1 {
		return f.executeSelf(mem, args[0])
	}

	cl := args[0].Closure
	if cl == nil {
		return nil, fmt.Errorf("%w: first argument of function %s must be a function", columnar.ErrIllegalType, f.name)
	}

	skip := 0
	if f.strategy.IsFolding() {
		skip = 1
	}

	nArrays := len(args) - 1 - skip
	if nArrays < 1 {
		return nil, fmt.Errorf("%w: function %s needs at least one array argument", columnar.ErrArgumentCount, f.name)
	}
	if f.strategy.NeedsOneArray() && nArrays > 1 {
		return nil, fmt.Errorf("%w: function %s needs exactly one array argument", columnar.ErrArgumentCount, f.name)
	}

	lists := make([]*columnar.List, 0, nArrays)
	for i := 1; i <= nArrays; i++ {
		if args[i].Vector == nil {
			return nil, fmt.Errorf("%w: argument %d of function %s must be an array, found function", columnar.ErrIllegalType, i+1, f.name)
		}
		l, err := columnar.AsList(args[i].Vector)
		if err != nil {
			return nil, fmt.Errorf("function %s: %w", f.name, err)
		}
		if len(lists) > 0 && !sameShape(lists[0], l) {
			return nil, fmt.Errorf("%w: arrays passed to function %s must have equal size", columnar.ErrSizeMismatch, f.name)
		}
		lists = append(lists, l)
	}
	source := lists[0]

	if cl.Rows() != source.Len() {
		return nil, fmt.Errorf("%w: function column of %s has %d rows, arrays have %d", columnar.ErrIllegalColumn, f.name, cl.Rows(), source.Len())
	}

	expected := make([]columnar.DataType, 0, nArrays+skip)
	for _, l := range lists {
		expected = append(expected, l.ElementType())
	}

	var seed columnar.ColumnVector
	if skip == 1 {
		last := args[len(args)-1]
		if last.Vector == nil {
			return nil, fmt.Errorf("%w: accumulator of function %s must be a column, found function", columnar.ErrIllegalType, f.name)
		}
		var err error
		seed, err = columnar.Materialize(last.Vector)
		if err != nil {
			return nil, fmt.Errorf("function %s: %w", f.name, err)
		}
		if seed.Len() != source.Len() {
			return nil, fmt.Errorf("%w: accumulator of function %s has %d rows, arrays have %d", columnar.ErrIllegalColumn, f.name, seed.Len(), source.Len())
		}
		expected = append(expected, seed.Type())
	}

	if cl.Arity() != len(expected) {
		return nil, fmt.Errorf("%w: function %s needs an expression with %d arguments, found %d", columnar.ErrIllegalType, f.name, len(expected), cl.Arity())
	}
	if tc, ok := cl.Callable().(TypedCallable); ok {
		params := tc.FunctionType().Parameters()
		bound := params[len(params)-cl.Arity():]
		for i, want := range expected {
			if !typesEqual(bound[i], want) {
				return nil, fmt.Errorf("%w: expression of function %s takes %s as argument %d, call provides %s", columnar.ErrIllegalType, f.name, bound[i], i+1, want)
			}
		}
	}

	ret := cl.ReturnType()
	if ret == nil {
		return nil, fmt.Errorf("%w: expression of function %s has no return type", columnar.ErrIllegalType, f.name)
	}
	if f.strategy.NeedsBooleanResult() && !typesEqual(ret, columnar.Bool) {
		return nil, fmt.Errorf("%w: expression of function %s must return %s, found %s", columnar.ErrIllegalType, f.name, columnar.Bool, ret)
	}
	if skip == 1 && !typesEqual(ret, seed.Type()) {
		return nil, fmt.Errorf("%w: expression of function %s must return the accumulator type %s, found %s", columnar.ErrIllegalType, f.name, seed.Type(), ret)
	}

	if f.strategy.IsFolding() {
		return f.executeFold(mem, cl, lists, seed)
	}
	return f.executeBroadcast(mem, cl, lists)
}

// executeSelf evaluates the one-array form f(array), where each element
// stands in as its own row-function result.
func (f *Function) executeSelf(mem memory.Allocator, arg Argument) (columnar.ColumnVector, error) {
	if arg.Closure != nil {
		return nil, fmt.Errorf("%w: function %s needs at least one array argument", columnar.ErrArgumentCount, f.name)
	}

	source, err := columnar.AsList(arg.Vector)
	if err != nil {
		return nil, fmt.Errorf("function %s: %w", f.name, err)
	}
	if f.strategy.NeedsBooleanResult() && !typesEqual(source.ElementType(), columnar.Bool) {
		return nil, fmt.Errorf("%w: the only argument of function %s must be an array of %s, found %s", columnar.ErrIllegalType, f.name, columnar.Bool, source.Type())
	}

	reduced := source.Flat()
	defer reduced.Release()

	out, err := f.strategy.Execute(Input{Mem: mem, Source: source, Reduced: reduced})
	if err != nil {
		return nil, fmt.Errorf("function %s: %w", f.name, err)
	}
	return out, nil
}

// executeBroadcast replicates the closure once per array element, binds
// the flattened element vectors, and evaluates the expression for the
// whole batch in one call.
func (f *Function) executeBroadcast(mem memory.Allocator, cl *columnar.Closure, lists []*columnar.List) (columnar.ColumnVector, error) {
	source := lists[0]

	replicated, err := cl.Replicate(source.Offsets())
	if err != nil {
		return nil, fmt.Errorf("function %s: %w", f.name, err)
	}
	defer replicated.Release()

	for _, l := range lists {
		flat := l.Flat()
		fv, err := columnar.NewArray(flat)
		if err != nil {
			flat.Release()
			return nil, fmt.Errorf("function %s: %w", f.name, err)
		}
		defer flat.Release()
		if err := replicated.AppendArguments(fv); err != nil {
			return nil, fmt.Errorf("function %s: %w", f.name, err)
		}
	}

	res, err := replicated.Reduce()
	if err != nil {
		return nil, fmt.Errorf("function %s: %w", f.name, err)
	}
	reduced, done, err := flatten(res)
	if err != nil {
		return nil, fmt.Errorf("function %s: %w", f.name, err)
	}
	defer done()

	out, err := f.strategy.Execute(Input{Mem: mem, Source: source, Reduced: reduced})
	if err != nil {
		return nil, fmt.Errorf("function %s: %w", f.name, err)
	}
	return out, nil
}

// executeFold threads an accumulator through each row: the expression
// runs once per element over that element and the accumulator so far,
// and the last result becomes the row's output. Rows without elements
// keep their initial accumulator.
func (f *Function) executeFold(mem memory.Allocator, cl *columnar.Closure, lists []*columnar.List, seed columnar.ColumnVector) (columnar.ColumnVector, error) {
	source := lists[0]

	b := array.NewBuilder(mem, seed.Type().ArrowType())
	defer b.Release()

	// No elements anywhere: every row keeps its initial accumulator,
	// and the expression never runs.
	if source.TotalElements() == 0 {
		seedArr := seed.ToArray()
		for r := 0; r < int(seed.Len()); r++ {
			columnar.AppendValue(b, seedArr, r)
		}
		return wrapOutput(b.NewArray())
	}

	flats := make([]arrow.Array, len(lists))
	for i, l := range lists {
		flats[i] = l.Flat()
		defer flats[i].Release()
	}

	offsets := source.Offsets()
	for r := 0; r < source.Rows(); r++ {
		if err := f.foldRow(mem, b, cl, source, flats, offsets, r, seed); err != nil {
			return nil, err
		}
	}
	return wrapOutput(b.NewArray())
}

// foldRow folds the elements of row r into b. The closure is sliced to
// the row so captures stay aligned with it.
func (f *Function) foldRow(mem memory.Allocator, b array.Builder, cl *columnar.Closure, source *columnar.List, flats []arrow.Array, offsets []int32, r int, seed columnar.ColumnVector) error {
	acc, err := columnar.Slice(seed, int64(r), int64(r)+1)
	if err != nil {
		return fmt.Errorf("function %s: %w", f.name, err)
	}

	rowCl, err := cl.Slice(int64(r), int64(r)+1)
	if err != nil {
		columnar.Release(acc)
		return fmt.Errorf("function %s: %w", f.name, err)
	}
	defer rowCl.Release()

	rowView := source.Slice(int64(r), int64(r)+1)
	defer columnar.Release(rowView)

	for k := int64(offsets[r]); k < int64(offsets[r+1]); k++ {
		next, err := f.foldStep(mem, rowCl, rowView, flats, k, acc)
		if err != nil {
			columnar.Release(acc)
			return err
		}
		columnar.Release(acc)
		acc = next
	}

	columnar.AppendValue(b, acc.ToArray(), 0)
	columnar.Release(acc)
	return nil
}

// foldStep evaluates the expression over element k of every array plus
// the current accumulator, producing the next accumulator.
func (f *Function) foldStep(mem memory.Allocator, rowCl *columnar.Closure, rowView *columnar.List, flats []arrow.Array, k int64, acc columnar.ColumnVector) (columnar.ColumnVector, error) {
	elemCl, err := rowCl.Replicate([]int32{0, 1})
	if err != nil {
		return nil, fmt.Errorf("function %s: %w", f.name, err)
	}
	defer elemCl.Release()

	for _, flat := range flats {
		elem := array.NewSlice(flat, k, k+1)
		ev, err := columnar.NewArray(elem)
		if err != nil {
			elem.Release()
			return nil, fmt.Errorf("function %s: %w", f.name, err)
		}
		defer elem.Release()
		if err := elemCl.AppendArguments(ev); err != nil {
			return nil, fmt.Errorf("function %s: %w", f.name, err)
		}
	}
	if err := elemCl.AppendArguments(acc); err != nil {
		return nil, fmt.Errorf("function %s: %w", f.name, err)
	}

	res, err := elemCl.Reduce()
	if err != nil {
		return nil, fmt.Errorf("function %s: %w", f.name, err)
	}
	reduced, done, err := flatten(res)
	if err != nil {
		return nil, fmt.Errorf("function %s: %w", f.name, err)
	}
	defer done()

	next, err := f.strategy.Execute(Input{Mem: mem, Source: rowView, Reduced: reduced})
	if err != nil {
		return nil, fmt.Errorf("function %s: %w", f.name, err)
	}
	return next, nil
}

// typesEqual compares two data types. Function types never compare
// equal; their parameter lists make them incomparable as map keys and
// they cannot describe an element or accumulator anyway.
func typesEqual(a, b columnar.DataType) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if _, ok := columnar.AsFunctionType(a); ok {
		return false
	}
	if _, ok := columnar.AsFunctionType(b); ok {
		return false
	}
	return a == b
}

// sameShape reports whether two array columns agree on row boundaries.
// Identical backing data short-circuits the offset comparison.
func sameShape(a, b *columnar.List) bool {
	if a.ToArray() == b.ToArray() {
		return true
	}
	return slices.Equal(a.Offsets(), b.Offsets())
}

// flatten turns an evaluation result into a flat array, resolving
// dictionary encoding. The caller must invoke done once the array is no
// longer needed; it settles ownership of the original result.
func flatten(v columnar.ColumnVector) (arrow.Array, func(), error) {
	decoded, err := columnar.DecodeDictionary(v)
	if err != nil {
		columnar.Release(v)
		return nil, nil, err
	}
	return decoded.ToArray(), func() { columnar.Release(v) }, nil
}

// wrapOutput wraps a freshly built result array in a column vector.
func wrapOutput(arr arrow.Array) (columnar.ColumnVector, error) {
	if _, ok := arr.(*array.List); ok {
		return columnar.NewList(arr)
	}
	return columnar.NewArray(arr)
}
