package columnar

import (
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
)

// TypeID identifies the kind of a [DataType].
type TypeID uint32

const (
	typeInvalid TypeID = iota // zero-value is an invalid type

	typeNull     // NULL type.
	typeBool     // Boolean type.
	typeInteger  // Signed 64bit integer type.
	typeFloat    // 64bit floating point type.
	typeString   // String type.
	typeList     // Variable-length list of a single element type.
	typeFunction // Row function (lambda) type.
)

// DataType is the engine-level type of a column or literal. Scalar types
// are singletons and can be compared with ==; list types compare equal
// when their element types do. Function types are not comparable.
type DataType interface {
	fmt.Stringer
	// ID returns the type's kind.
	ID() TypeID
	// ArrowType returns the Arrow physical type backing values of this
	// type. Function types have no physical representation and return nil.
	ArrowType() arrow.DataType
}

type scalarType struct {
	id   TypeID
	name string
}

func (t scalarType) ID() TypeID     { return t.id }
func (t scalarType) String() string { return t.name }

// ArrowType implements DataType.
func (t scalarType) ArrowType() arrow.DataType {
	switch t.id {
	case typeNull:
		return ArrowType.Null
	case typeBool:
		return ArrowType.Bool
	case typeInteger:
		return ArrowType.Integer
	case typeFloat:
		return ArrowType.Float
	case typeString:
		return ArrowType.String
	}
	return nil
}

var (
	Null    DataType = scalarType{typeNull, "null"}
	Bool    DataType = scalarType{typeBool, "bool"}
	Integer DataType = scalarType{typeInteger, "integer"}
	Float   DataType = scalarType{typeFloat, "float"}
	String  DataType = scalarType{typeString, "string"}
)

// ListType is the type of an array column: a list of elements that all
// share one element type.
type ListType struct {
	elem DataType
}

// ListOf returns the list type with the given element type.
func ListOf(elem DataType) ListType {
	return ListType{elem: elem}
}

func (t ListType) ID() TypeID { return typeList }

// ElementType returns the type of the list's elements.
func (t ListType) ElementType() DataType { return t.elem }

func (t ListType) String() string {
	return fmt.Sprintf("list<%s>", t.elem)
}

// ArrowType implements DataType.
func (t ListType) ArrowType() arrow.DataType {
	elem := t.elem.ArrowType()
	if elem == nil {
		return nil
	}
	return arrow.ListOf(elem)
}

// AsListType reports whether dt is a list type and returns it as such.
func AsListType(dt DataType) (ListType, bool) {
	lt, ok := dt.(ListType)
	return lt, ok
}

// FunctionType is the declared type of a row-function argument: the
// types of its parameters and the type of its result.
type FunctionType struct {
	params []DataType
	ret    DataType
}

// FunctionOf returns the function type with the given parameter and
// return types. A nil return type marks a function that has not been
// compiled against concrete parameter types yet.
func FunctionOf(params []DataType, ret DataType) FunctionType {
	return FunctionType{params: params, ret: ret}
}

func (t FunctionType) ID() TypeID { return typeFunction }

// Parameters returns the function's parameter types.
func (t FunctionType) Parameters() []DataType { return t.params }

// ReturnType returns the function's result type, or nil when unknown.
func (t FunctionType) ReturnType() DataType { return t.ret }

func (t FunctionType) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	for i, p := range t.params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString(") -> ")
	if t.ret == nil {
		sb.WriteString("?")
	} else {
		sb.WriteString(t.ret.String())
	}
	return sb.String()
}

// ArrowType implements DataType. Function columns are never
// materialized, so there is no physical type.
func (t FunctionType) ArrowType() arrow.DataType { return nil }

// AsFunctionType reports whether dt is a function type and returns it
// as such.
func AsFunctionType(dt DataType) (FunctionType, bool) {
	ft, ok := dt.(FunctionType)
	return ft, ok
}

// IsNumeric reports whether dt supports arithmetic.
func IsNumeric(dt DataType) bool {
	return dt == Integer || dt == Float
}

// ArrowType holds the Arrow physical types backing each scalar engine
// type.
var ArrowType = struct {
	Null    arrow.DataType
	Bool    arrow.DataType
	String  arrow.DataType
	Integer arrow.DataType
	Float   arrow.DataType
}{
	Null:    arrow.Null,
	Bool:    arrow.FixedWidthTypes.Boolean,
	String:  arrow.BinaryTypes.String,
	Integer: arrow.PrimitiveTypes.Int64,
	Float:   arrow.PrimitiveTypes.Float64,
}

// FromArrow returns the engine type for an Arrow type. Dictionary types
// decay to their value type; list types map recursively.
func FromArrow(at arrow.DataType) (DataType, error) {
	switch t := at.(type) {
	case *arrow.DictionaryType:
		return FromArrow(t.ValueType)
	case *arrow.ListType:
		elem, err := FromArrow(t.Elem())
		if err != nil {
			return nil, err
		}
		return ListOf(elem), nil
	}
	switch at.ID() {
	case arrow.NULL:
		return Null, nil
	case arrow.BOOL:
		return Bool, nil
	case arrow.INT64:
		return Integer, nil
	case arrow.FLOAT64:
		return Float, nil
	case arrow.STRING:
		return String, nil
	}
	return nil, fmt.Errorf("%w: no engine type for arrow type %s", ErrIllegalType, at)
}
