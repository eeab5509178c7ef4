package compute

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
)

// validityOf returns the validity mask of arr. A nil mask means every
// slot is valid.
func validityOf(arr arrow.Array) []bool {
	if arr.NullN() == 0 {
		return nil
	}
	valid := make([]bool, arr.Len())
	for i := range valid {
		valid[i] = arr.IsValid(i)
	}
	return valid
}

// validityAnd determines an output validity mask from two input arrays.
// A slot is only valid if both inputs are valid at that slot.
func validityAnd(left, right arrow.Array) ([]bool, error) {
	if left.Len() != right.Len() {
		return nil, fmt.Errorf("array length mismatch: %d != %d", left.Len(), right.Len())
	}
	if left.NullN() == 0 && right.NullN() == 0 {
		return nil, nil
	}

	valid := make([]bool, left.Len())
	for i := range valid {
		valid[i] = left.IsValid(i) && right.IsValid(i)
	}
	return valid, nil
}
