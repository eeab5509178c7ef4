package lambda

import (
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/vireodb/vireo/pkg/columnar"
)

// NewClosure compiles l if needed and wraps it in a closure column
// spanning rows rows. Captures bind to the leading parameters, one
// value per row; the remaining parameters are filled per element by the
// higher-order functions.
func NewClosure(mem memory.Allocator, l *Lambda, rows int64, captures ...columnar.ColumnVector) (*columnar.Closure, error) {
	if l.ReturnType() == nil {
		if err := l.Compile(mem); err != nil {
			return nil, err
		}
	}
	return columnar.NewClosure(mem, l, rows, captures...)
}
