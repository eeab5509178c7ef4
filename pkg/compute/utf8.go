package compute

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/vireodb/vireo/pkg/columnar"
)

// SubstrInsensitive computes the element-wise case-insensitive substring
// match of needle within haystack. Both inputs must be strings. If both
// inputs are arrays, they must be of the same length.
//
// Special cases:
//
//   - If either slot of an input array is null, the result slot is null.
func SubstrInsensitive(mem memory.Allocator, haystack, needle columnar.ColumnVector) (columnar.ColumnVector, error) {
	haystack, needle, err := materializeConstants(haystack, needle)
	if err != nil {
		return nil, err
	}
	if got, want := haystack.Type(), columnar.String; got != want {
		return nil, fmt.Errorf("invalid input type %s, expected %s", got, want)
	}
	if err := checkMatchingTypes(haystack, needle); err != nil {
		return nil, err
	}

	_, haystackScalar := haystack.(*columnar.Scalar)
	_, needleScalar := needle.(*columnar.Scalar)

	switch {
	case haystackScalar && needleScalar:
		h := upper([]byte(haystack.Value(0).(string)))
		n := upper([]byte(needle.Value(0).(string)))
		return columnar.NewScalar(columnar.NewLiteral(bytes.Contains(h, n)), haystack.Len()), nil

	case !haystackScalar && needleScalar:
		return substrInsensitiveAS(mem, haystack.ToArray().(*array.String), needle.Value(0).(string))

	case haystackScalar && !needleScalar:
		arr := needle.ToArray().(*array.String)
		h := upper([]byte(haystack.Value(0).(string)))

		out := make([]bool, arr.Len())
		for i := range out {
			out[i] = bytes.Contains(h, upper([]byte(arr.Value(i))))
		}
		return columnar.NewArray(buildBools(mem, out, validityOf(arr)))

	case !haystackScalar && !needleScalar:
		haystackArr := haystack.ToArray().(*array.String)
		needleArr := needle.ToArray().(*array.String)
		valid, err := validityAnd(haystackArr, needleArr)
		if err != nil {
			return nil, err
		}

		out := make([]bool, haystackArr.Len())
		for i := range out {
			out[i] = bytes.Contains(upper([]byte(haystackArr.Value(i))), upper([]byte(needleArr.Value(i))))
		}
		return columnar.NewArray(buildBools(mem, out, valid))
	}

	panic("unreachable")
}

// substrInsensitiveAS matches one needle against every haystack slot,
// uppercasing the needle once and reusing a single work buffer sized to
// the longest haystack value.
func substrInsensitiveAS(mem memory.Allocator, haystack *array.String, needle string) (columnar.ColumnVector, error) {
	longest := 0
	for i := 0; i < haystack.Len(); i++ {
		longest = max(longest, len(haystack.Value(i)))
	}

	needleUpper := upper([]byte(needle))
	work := make([]byte, longest)

	out := make([]bool, haystack.Len())
	for i := range out {
		value := haystack.Value(i)
		valueUpper := toUpper([]byte(value), work[:len(value)])
		out[i] = bytes.Contains(valueUpper, needleUpper)
	}
	return columnar.NewArray(buildBools(mem, out, validityOf(haystack)))
}

// upper uppercases b into a fresh buffer.
func upper(b []byte) []byte {
	return toUpper(b, make([]byte, len(b)))
}

// toUpper is an optimized version of bytes.ToUpper that uses a fast path
// for ASCII-only strings. For ASCII strings, it subtracts 32 from
// lowercase letters ('a'-'z') to convert to uppercase. For strings
// containing non-ASCII characters, it falls back to bytes.ToUpper. The
// result is written to the provided result buffer. This function panics
// if the buffer length does not match.
func toUpper(b []byte, result []byte) []byte {
	if len(b) == 0 {
		return b
	}
	if len(b) != len(result) {
		panic("buffer length mismatch")
	}

	for i := 0; i < len(b); i++ {
		c := b[i]
		// If we encounter a non-ASCII byte, fall back to standard library
		if c >= utf8.RuneSelf {
			return bytes.ToUpper(b)
		}
		// Fast ASCII path: subtract 32 from 'a'-'z' range
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A' // subtract 32
		}
		result[i] = c
	}
	return result
}
