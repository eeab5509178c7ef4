package executor

import (
	"fmt"
	"slices"

	"github.com/vireodb/vireo/pkg/columnar"
)

// strategies maps operation names to the strategy shaping their
// results.
var strategies = map[string]Strategy{
	"array_map":            mapStrategy{},
	"array_filter":         filterStrategy{},
	"array_exists":         existsStrategy{},
	"array_all":            allStrategy{},
	"array_count":          countStrategy{},
	"array_first":          firstStrategy{},
	"array_first_index":    firstIndexStrategy{},
	"array_sum":            sumStrategy{},
	"array_cumulative_sum": cumSumStrategy{},
	"array_fold":           foldStrategy{},
}

// Lookup resolves a higher-order function by name.
func Lookup(name string) (*Function, error) {
	s, ok := strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: no function named %q", columnar.ErrNotImplemented, name)
	}
	return NewFunction(name, s), nil
}

// Names returns the names of all registered functions, sorted.
func Names() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
