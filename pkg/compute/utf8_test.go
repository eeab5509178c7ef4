package compute

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/require"

	"github.com/vireodb/vireo/internal/arrowtest"
	"github.com/vireodb/vireo/pkg/columnar"
)

func TestSubstrInsensitive(t *testing.T) {
	t.Run("scalar scalar", func(t *testing.T) {
		out, err := SubstrInsensitive(memory.DefaultAllocator, stringScalar("Hello", 2), stringScalar("ELL", 2))
		require.NoError(t, err)
		require.Equal(t, true, out.Value(0))
		require.Equal(t, int64(2), out.Len())
	})

	t.Run("array scalar", func(t *testing.T) {
		mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
		defer mem.AssertSize(t, 0)

		in := newVec(t, mem, arrow.BinaryTypes.String, "Hello", "grid", nil)
		defer columnar.Release(in)

		out, err := SubstrInsensitive(mem, in, stringScalar("o", 3))
		require.NoError(t, err)
		defer columnar.Release(out)

		require.Equal(t, []any{true, false, nil}, arrowtest.Values(out.ToArray()))
	})

	t.Run("scalar array", func(t *testing.T) {
		mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
		defer mem.AssertSize(t, 0)

		in := newVec(t, mem, arrow.BinaryTypes.String, "ell", "xyz", nil)
		defer columnar.Release(in)

		out, err := SubstrInsensitive(mem, stringScalar("Hello", 3), in)
		require.NoError(t, err)
		defer columnar.Release(out)

		require.Equal(t, []any{true, false, nil}, arrowtest.Values(out.ToArray()))
	})

	t.Run("array array", func(t *testing.T) {
		mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
		defer mem.AssertSize(t, 0)

		haystack := newVec(t, mem, arrow.BinaryTypes.String, "alpha", "BRAVO", "charlie")
		defer columnar.Release(haystack)
		needle := newVec(t, mem, arrow.BinaryTypes.String, "PH", "bravo", nil)
		defer columnar.Release(needle)

		out, err := SubstrInsensitive(mem, haystack, needle)
		require.NoError(t, err)
		defer columnar.Release(out)

		require.Equal(t, []any{true, true, nil}, arrowtest.Values(out.ToArray()))
	})

	t.Run("non-ascii falls back", func(t *testing.T) {
		mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
		defer mem.AssertSize(t, 0)

		in := newVec(t, mem, arrow.BinaryTypes.String, "münchen", "berlin")
		defer columnar.Release(in)

		out, err := SubstrInsensitive(mem, in, stringScalar("ÜNCH", 2))
		require.NoError(t, err)
		defer columnar.Release(out)

		require.Equal(t, []any{true, false}, arrowtest.Values(out.ToArray()))
	})

	t.Run("empty needle matches everything", func(t *testing.T) {
		out, err := SubstrInsensitive(memory.DefaultAllocator, stringScalar("x", 1), stringScalar("", 1))
		require.NoError(t, err)
		require.Equal(t, true, out.Value(0))
	})

	t.Run("non-string input", func(t *testing.T) {
		_, err := SubstrInsensitive(memory.DefaultAllocator, intScalar(1, 1), intScalar(2, 1))
		require.ErrorContains(t, err, "invalid input type integer, expected string")
	})

	t.Run("mismatched types", func(t *testing.T) {
		_, err := SubstrInsensitive(memory.DefaultAllocator, stringScalar("a", 1), intScalar(1, 1))
		require.ErrorContains(t, err, "matching types")
	})
}
