package columnar

import "errors"

var (
	// ErrArgumentCount reports a call with the wrong number of arguments.
	ErrArgumentCount = errors.New("wrong number of arguments")
	// ErrIllegalType reports an argument whose declared type is not
	// accepted by the operation.
	ErrIllegalType = errors.New("illegal argument type")
	// ErrIllegalColumn reports a column whose runtime representation does
	// not match its declared type.
	ErrIllegalColumn = errors.New("illegal column")
	// ErrSizeMismatch reports zipped array columns with unequal row
	// shapes.
	ErrSizeMismatch = errors.New("array size mismatch")
	// ErrNotImplemented reports an operation the engine does not
	// provide.
	ErrNotImplemented = errors.New("not implemented")
)
