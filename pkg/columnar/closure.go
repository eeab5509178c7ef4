package columnar

import (
	"fmt"
	"slices"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// Callable evaluates a compiled row function over equal-length argument
// vectors, producing one result value per position. Implementations
// receive captured vectors first, then the appended argument vectors,
// in declaration order.
type Callable interface {
	// Arity returns the total number of argument vectors Call expects,
	// captured vectors included.
	Arity() int
	// ReturnType returns the type of the vector produced by Call.
	ReturnType() DataType
	// Call evaluates the function over the given argument vectors. All
	// vectors must have the same length, and the result has that length
	// too.
	Call(args []ColumnVector) (ColumnVector, error)
}

// Closure is a column of per-row function values: a [Callable] plus the
// vectors it captured, one capture value per row. Broadcasting a
// closure with Replicate repeats each row's captures once per array
// element, AppendArguments binds the element vectors, and Reduce
// evaluates the function over captures and arguments together.
type Closure struct {
	mem memory.Allocator
	fn  Callable

	rows     int64
	captures []ColumnVector
	args     []ColumnVector

	// owned holds arrays materialized by Slice and Replicate, released
	// by Release.
	owned []arrow.Array
}

// NewClosure creates a closure column over rows rows. Each capture must
// have exactly rows values, and there must be at most fn.Arity()
// captures.
func NewClosure(mem memory.Allocator, fn Callable, rows int64, captures ...ColumnVector) (*Closure, error) {
	if len(captures) > fn.Arity() {
		return nil, fmt.Errorf("%w: function takes %d arguments, got %d captures", ErrArgumentCount, fn.Arity(), len(captures))
	}
	for i, capture := range captures {
		if capture.Len() != rows {
			return nil, fmt.Errorf("%w: capture %d has %d rows, closure has %d", ErrIllegalColumn, i, capture.Len(), rows)
		}
	}
	return &Closure{mem: mem, fn: fn, rows: rows, captures: captures}, nil
}

// Rows returns the current length of the closure column.
func (c *Closure) Rows() int64 {
	return c.rows
}

// Callable returns the function backing the closure.
func (c *Closure) Callable() Callable {
	return c.fn
}

// Arity returns the number of argument vectors that must be appended
// before Reduce can run.
func (c *Closure) Arity() int {
	return c.fn.Arity() - len(c.captures)
}

// ReturnType returns the type of the vector Reduce produces.
func (c *Closure) ReturnType() DataType {
	return c.fn.ReturnType()
}

// Slice returns a closure over rows [i, j) with the captures sliced
// accordingly. It must be called before any arguments are appended. The
// caller must release the returned closure.
func (c *Closure) Slice(i, j int64) (*Closure, error) {
	if len(c.args) > 0 {
		return nil, fmt.Errorf("%w: closure already has bound arguments", ErrIllegalColumn)
	}

	out := &Closure{mem: c.mem, fn: c.fn, rows: j - i}
	for _, capture := range c.captures {
		sliced, err := Slice(capture, i, j)
		if err != nil {
			return nil, err
		}
		out.captures = append(out.captures, sliced)
		out.track(sliced)
	}
	return out, nil
}

// Replicate broadcasts the closure's rows across array elements: row r
// is repeated offsets[r+1]-offsets[r] times. The offsets must cover
// exactly Rows() rows and start at 0. It must be called before any
// arguments are appended. The caller must release the returned closure.
func (c *Closure) Replicate(offsets []int32) (*Closure, error) {
	if len(c.args) > 0 {
		return nil, fmt.Errorf("%w: closure already has bound arguments", ErrIllegalColumn)
	}
	if int64(len(offsets))-1 != c.rows {
		return nil, fmt.Errorf("%w: replication offsets cover %d rows, closure has %d", ErrIllegalColumn, len(offsets)-1, c.rows)
	}

	out := &Closure{mem: c.mem, fn: c.fn, rows: int64(offsets[len(offsets)-1])}
	for _, capture := range c.captures {
		repl, err := c.replicateVector(capture, offsets, out.rows)
		if err != nil {
			return nil, err
		}
		out.captures = append(out.captures, repl)
		out.track(repl)
	}
	return out, nil
}

func (c *Closure) replicateVector(v ColumnVector, offsets []int32, total int64) (ColumnVector, error) {
	switch v := v.(type) {
	case *Scalar:
		return NewScalar(v.value, total), nil
	case *Constant:
		return &Constant{value: v.value, rows: total, dt: v.dt}, nil
	}

	src := v.ToArray()
	b := array.NewBuilder(c.mem, decodedType(src.DataType()))
	defer b.Release()

	for r := 0; r < len(offsets)-1; r++ {
		for range offsets[r+1] - offsets[r] {
			appendValue(b, src, r)
		}
	}

	arr := b.NewArray()
	if la, ok := arr.(*array.List); ok {
		return newList(la, v.Type().(ListType)), nil
	}
	return &Array{array: arr, dt: v.Type()}, nil
}

// decodedType strips dictionary encoding from an Arrow type, including
// the element type of lists.
func decodedType(at arrow.DataType) arrow.DataType {
	switch t := at.(type) {
	case *arrow.DictionaryType:
		return t.ValueType
	case *arrow.ListType:
		return arrow.ListOf(decodedType(t.Elem()))
	}
	return at
}

// AppendArguments binds argument vectors to the closure. Every vector
// must have exactly Rows() values.
func (c *Closure) AppendArguments(vecs ...ColumnVector) error {
	if len(c.args)+len(vecs) > c.fn.Arity()-len(c.captures) {
		return fmt.Errorf("%w: function takes %d arguments, got %d", ErrArgumentCount, c.fn.Arity(), len(c.captures)+len(c.args)+len(vecs))
	}
	for _, v := range vecs {
		if v.Len() != c.rows {
			return fmt.Errorf("%w: argument has %d rows, closure has %d", ErrIllegalColumn, v.Len(), c.rows)
		}
	}
	c.args = append(c.args, vecs...)
	return nil
}

// Reduce evaluates the closure over its captures and bound arguments,
// producing one value per row.
func (c *Closure) Reduce() (ColumnVector, error) {
	if got := len(c.captures) + len(c.args); got != c.fn.Arity() {
		return nil, fmt.Errorf("%w: function takes %d arguments, got %d", ErrArgumentCount, c.fn.Arity(), got)
	}
	all := slices.Clone(c.captures)
	all = append(all, c.args...)
	return c.fn.Call(all)
}

// Release frees the arrays materialized by Slice and Replicate.
func (c *Closure) Release() {
	for _, arr := range c.owned {
		arr.Release()
	}
	c.owned = nil
}

func (c *Closure) track(v ColumnVector) {
	switch v := v.(type) {
	case *Array:
		c.owned = append(c.owned, v.array)
	case *List:
		c.owned = append(c.owned, v.list)
	}
}
