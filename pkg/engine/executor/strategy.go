// Package executor implements the higher-order array functions: named
// operations that evaluate a row function over the elements of parallel
// array columns and shape the results. [Lookup] resolves an operation
// by name; [Function.Execute] runs it over one batch of columns.
package executor

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/vireodb/vireo/pkg/columnar"
)

// Argument is one input to a [Function]. Exactly one field is set: a
// plain column vector or a closure column holding the row function.
type Argument struct {
	Vector  columnar.ColumnVector
	Closure *columnar.Closure
}

// Input carries one batch into a strategy.
type Input struct {
	// Mem allocates the strategy's output.
	Mem memory.Allocator

	// Source is the first array argument. Its offsets give the row
	// boundaries within Reduced. During folding steps Source is a
	// one-row view of the row being folded.
	Source *columnar.List

	// Reduced holds the row-function results, one slot per Source
	// element, in element order. During folding steps it holds the
	// single value produced for the current element.
	Reduced arrow.Array
}

// Strategy defines how one higher-order operation validates its
// arguments and consumes the row-function results. Implementations are
// stateless; one value serves all calls.
type Strategy interface {
	// NeedsExpression reports whether the operation requires an
	// explicit function argument. Operations without this requirement
	// also accept the one-array form f(array), which evaluates each
	// element as its own result.
	NeedsExpression() bool

	// NeedsBooleanResult reports whether the row function must return
	// booleans.
	NeedsBooleanResult() bool

	// NeedsOneArray reports whether the operation accepts exactly one
	// array argument.
	NeedsOneArray() bool

	// IsFolding reports whether the operation threads an accumulator
	// through each row's elements instead of evaluating the whole
	// batch at once. Folding operations take the initial accumulator
	// as their last argument.
	IsFolding() bool

	// ReturnType derives the operation's result type. ret is the row
	// function's return type. second is the first array's element
	// type, or the accumulator type for folding operations.
	ReturnType(ret, second columnar.DataType) (columnar.DataType, error)

	// Execute shapes one batch of row-function results into the
	// operation's output. Array-backed results are allocated from
	// in.Mem and owned by the caller.
	Execute(in Input) (columnar.ColumnVector, error)
}

// TypedCallable is implemented by callables that declare a full
// signature, letting the engine check argument types before any row
// function runs.
type TypedCallable interface {
	columnar.Callable

	// FunctionType returns the callable's parameter and return types.
	FunctionType() columnar.FunctionType
}
