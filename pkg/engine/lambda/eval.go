package lambda

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/vireodb/vireo/pkg/columnar"
)

// frame holds the parameter bindings for one evaluation of a function
// body, along with the intermediate arrays built while walking it.
type frame struct {
	rows  int64
	binds map[string]columnar.ColumnVector
	owned []arrow.Array
}

// track records the array behind an intermediate result so finish can
// free it.
func (f *frame) track(v columnar.ColumnVector) columnar.ColumnVector {
	if a, ok := v.(*columnar.Array); ok {
		f.owned = append(f.owned, a.ToArray())
	}
	return v
}

// finish transfers ownership of res to the caller: intermediate arrays
// are freed, and a borrowed result is retained so the caller can
// release it unconditionally. A nil res frees everything.
func (f *frame) finish(res columnar.ColumnVector) {
	var resArr arrow.Array
	switch v := res.(type) {
	case *columnar.Array:
		resArr = v.ToArray()
	case *columnar.List:
		resArr = v.ToArray()
	}

	kept := false
	for _, arr := range f.owned {
		if arr == resArr {
			kept = true
			continue
		}
		arr.Release()
	}
	f.owned = nil

	if resArr != nil && !kept {
		resArr.Retain()
	}
}

func evalExpr(mem memory.Allocator, expr Expression, f *frame) (columnar.ColumnVector, error) {
	switch e := expr.(type) {
	case *LiteralExpr:
		return columnar.NewScalar(e.Literal, f.rows), nil

	case *ParamExpr:
		v, ok := f.binds[e.Name]
		if !ok {
			return nil, fmt.Errorf("%w: unbound parameter %q", columnar.ErrIllegalColumn, e.Name)
		}
		return v, nil

	case *UnaryExpr:
		input, err := evalExpr(mem, e.Left, f)
		if err != nil {
			return nil, err
		}

		fn, err := unaryFunctions.GetForSignature(e.Op, input.Type())
		if err != nil {
			return nil, err
		}
		res, err := fn.Evaluate(mem, input)
		if err != nil {
			return nil, err
		}
		return f.track(res), nil

	case *BinaryExpr:
		left, err := evalExpr(mem, e.Left, f)
		if err != nil {
			return nil, err
		}
		right, err := evalExpr(mem, e.Right, f)
		if err != nil {
			return nil, err
		}

		fn, err := binaryFunctions.GetForSignature(e.Op, left.Type())
		if err != nil {
			return nil, err
		}
		res, err := fn.Evaluate(mem, left, right)
		if err != nil {
			return nil, err
		}
		return f.track(res), nil

	default:
		panic(fmt.Sprintf("unexpected expression type %T", expr))
	}
}

// typeOfExpr infers the type of expr under the parameter environment
// env, failing when an operator has no implementation for its operand
// types.
func typeOfExpr(expr Expression, env map[string]columnar.DataType) (columnar.DataType, error) {
	switch e := expr.(type) {
	case *LiteralExpr:
		return e.ValueType(), nil

	case *ParamExpr:
		ty, ok := env[e.Name]
		if !ok {
			return nil, fmt.Errorf("%w: unbound parameter %q", columnar.ErrIllegalColumn, e.Name)
		}
		return ty, nil

	case *UnaryExpr:
		operand, err := typeOfExpr(e.Left, env)
		if err != nil {
			return nil, err
		}
		if _, err := unaryFunctions.GetForSignature(e.Op, operand); err != nil {
			return nil, err
		}
		return e.Op.resultType(operand), nil

	case *BinaryExpr:
		left, err := typeOfExpr(e.Left, env)
		if err != nil {
			return nil, err
		}
		right, err := typeOfExpr(e.Right, env)
		if err != nil {
			return nil, err
		}
		if left != right {
			return nil, fmt.Errorf("%w: operands of %s have types %s and %s", columnar.ErrIllegalType, e.Op, left, right)
		}
		if _, err := binaryFunctions.GetForSignature(e.Op, left); err != nil {
			return nil, err
		}
		return e.Op.resultType(left), nil

	default:
		panic(fmt.Sprintf("unexpected expression type %T", expr))
	}
}
