// Package lambda compiles and evaluates row functions: typed
// expressions over named parameters, applied element-wise by the
// higher-order array engine. A compiled [Lambda] implements
// [columnar.Callable] and can back a closure column.
package lambda

import (
	"errors"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/vireodb/vireo/pkg/columnar"
)

// errNotCompiled is returned when an uncompiled lambda is called.
var errNotCompiled = errors.New("lambda is not compiled")

// Param declares a named, typed parameter of a [Lambda].
type Param struct {
	Name string
	Type columnar.DataType
}

// Lambda is a row function: named parameters and an expression body.
// Parameters bound as closure captures come first, in declaration
// order, followed by the element parameters.
type Lambda struct {
	mem    memory.Allocator
	params []Param
	body   Expression
	ret    columnar.DataType
}

// New creates an uncompiled lambda. Compile must be called before the
// lambda can be evaluated.
func New(params []Param, body Expression) *Lambda {
	return &Lambda{params: params, body: body}
}

// Compile type-checks the body against the declared parameters and
// infers the return type. Vectors produced by Call are allocated from
// mem.
func (l *Lambda) Compile(mem memory.Allocator) error {
	env := make(map[string]columnar.DataType, len(l.params))
	for _, p := range l.params {
		if p.Type == nil {
			return fmt.Errorf("%w: parameter %q has no type", columnar.ErrIllegalType, p.Name)
		}
		if _, ok := columnar.AsFunctionType(p.Type); ok {
			return fmt.Errorf("%w: parameter %q must not be function-typed", columnar.ErrIllegalType, p.Name)
		}
		if _, dup := env[p.Name]; dup {
			return fmt.Errorf("%w: duplicate parameter %q", columnar.ErrIllegalColumn, p.Name)
		}
		env[p.Name] = p.Type
	}

	ret, err := typeOfExpr(l.body, env)
	if err != nil {
		return err
	}

	l.mem = mem
	l.ret = ret
	return nil
}

// FunctionType returns the lambda's full signature. The return type is
// nil until the lambda has been compiled.
func (l *Lambda) FunctionType() columnar.FunctionType {
	params := make([]columnar.DataType, len(l.params))
	for i, p := range l.params {
		params[i] = p.Type
	}
	return columnar.FunctionOf(params, l.ret)
}

// Arity implements columnar.Callable.
func (l *Lambda) Arity() int {
	return len(l.params)
}

// ReturnType implements columnar.Callable. It returns nil until the
// lambda has been compiled.
func (l *Lambda) ReturnType() columnar.DataType {
	return l.ret
}

// Call implements columnar.Callable. Arguments bind to parameters in
// declaration order and must match their declared types. Array-backed
// results are allocated from the allocator given to Compile and must be
// released by the caller.
func (l *Lambda) Call(args []columnar.ColumnVector) (columnar.ColumnVector, error) {
	if l.ret == nil {
		return nil, errNotCompiled
	}
	if len(args) != len(l.params) {
		return nil, fmt.Errorf("%w: lambda takes %d arguments, got %d", columnar.ErrArgumentCount, len(l.params), len(args))
	}

	var rows int64
	if len(args) > 0 {
		rows = args[0].Len()
	}

	f := &frame{rows: rows, binds: make(map[string]columnar.ColumnVector, len(args))}
	for i, arg := range args {
		if arg.Type() != l.params[i].Type {
			return nil, fmt.Errorf("%w: argument %d has type %s, parameter %q expects %s",
				columnar.ErrIllegalType, i, arg.Type(), l.params[i].Name, l.params[i].Type)
		}
		if arg.Len() != rows {
			return nil, fmt.Errorf("%w: argument %d has %d rows, expected %d", columnar.ErrIllegalColumn, i, arg.Len(), rows)
		}

		decoded, err := columnar.DecodeDictionary(arg)
		if err != nil {
			return nil, err
		}
		f.binds[l.params[i].Name] = decoded
	}

	res, err := evalExpr(l.mem, l.body, f)
	if err != nil {
		f.finish(nil)
		return nil, err
	}
	f.finish(res)
	return res, nil
}

var _ columnar.Callable = (*Lambda)(nil)
