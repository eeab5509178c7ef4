package compute

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/require"

	"github.com/vireodb/vireo/internal/arrowtest"
	"github.com/vireodb/vireo/pkg/columnar"
)

func boolScalar(v bool, rows int64) *columnar.Scalar {
	return columnar.NewScalar(columnar.NewLiteral(v), rows)
}

func stringScalar(v string, rows int64) *columnar.Scalar {
	return columnar.NewScalar(columnar.NewLiteral(v), rows)
}

func TestEq(t *testing.T) {
	t.Run("scalar scalar", func(t *testing.T) {
		out, err := Eq(memory.DefaultAllocator, intScalar(2, 4), intScalar(2, 4))
		require.NoError(t, err)

		s, ok := out.(*columnar.Scalar)
		require.True(t, ok)
		require.Equal(t, int64(4), s.Len())
		require.Equal(t, true, s.Value(0))
	})

	t.Run("scalar array", func(t *testing.T) {
		mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
		defer mem.AssertSize(t, 0)

		in := newVec(t, mem, arrow.PrimitiveTypes.Int64, 1, 2, 3)
		defer columnar.Release(in)

		out, err := Eq(mem, intScalar(2, 3), in)
		require.NoError(t, err)
		defer columnar.Release(out)

		require.Equal(t, []any{false, true, false}, arrowtest.Values(out.ToArray()))
	})

	t.Run("string arrays propagate nulls", func(t *testing.T) {
		mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
		defer mem.AssertSize(t, 0)

		left := newVec(t, mem, arrow.BinaryTypes.String, "a", "b", nil)
		defer columnar.Release(left)
		right := newVec(t, mem, arrow.BinaryTypes.String, "a", "c", "d")
		defer columnar.Release(right)

		out, err := Eq(mem, left, right)
		require.NoError(t, err)
		defer columnar.Release(out)

		require.Equal(t, []any{true, false, nil}, arrowtest.Values(out.ToArray()))
	})

	t.Run("booleans", func(t *testing.T) {
		mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
		defer mem.AssertSize(t, 0)

		in := newVec(t, mem, arrow.FixedWidthTypes.Boolean, true, false, nil)
		defer columnar.Release(in)

		out, err := Eq(mem, in, boolScalar(true, 3))
		require.NoError(t, err)
		defer columnar.Release(out)

		require.Equal(t, []any{true, false, nil}, arrowtest.Values(out.ToArray()))
	})

	t.Run("unsupported type", func(t *testing.T) {
		s := columnar.NewScalar(columnar.NewNullLiteral(), 1)
		_, err := Eq(memory.DefaultAllocator, s, s)
		require.ErrorContains(t, err, "invalid input type")
	})
}

func TestNeq(t *testing.T) {
	t.Run("integers", func(t *testing.T) {
		mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
		defer mem.AssertSize(t, 0)

		in := newVec(t, mem, arrow.PrimitiveTypes.Int64, 1, 2)
		defer columnar.Release(in)

		out, err := Neq(mem, in, intScalar(2, 2))
		require.NoError(t, err)
		defer columnar.Release(out)

		require.Equal(t, []any{true, false}, arrowtest.Values(out.ToArray()))
	})

	t.Run("booleans negate equality", func(t *testing.T) {
		mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
		defer mem.AssertSize(t, 0)

		left := newVec(t, mem, arrow.FixedWidthTypes.Boolean, true, false)
		defer columnar.Release(left)
		right := newVec(t, mem, arrow.FixedWidthTypes.Boolean, true, true)
		defer columnar.Release(right)

		out, err := Neq(mem, left, right)
		require.NoError(t, err)
		defer columnar.Release(out)

		require.Equal(t, []any{false, true}, arrowtest.Values(out.ToArray()))
	})
}

func TestOrdering(t *testing.T) {
	t.Run("greater than", func(t *testing.T) {
		mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
		defer mem.AssertSize(t, 0)

		in := newVec(t, mem, arrow.PrimitiveTypes.Int64, 1, 5, nil)
		defer columnar.Release(in)

		out, err := Gt(mem, in, intScalar(3, 3))
		require.NoError(t, err)
		defer columnar.Release(out)

		require.Equal(t, []any{false, true, nil}, arrowtest.Values(out.ToArray()))
	})

	t.Run("greater or equal", func(t *testing.T) {
		out, err := Gte(memory.DefaultAllocator, floatScalar(2.5, 1), floatScalar(2.5, 1))
		require.NoError(t, err)
		require.Equal(t, true, out.Value(0))
	})

	t.Run("less than on strings", func(t *testing.T) {
		mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
		defer mem.AssertSize(t, 0)

		in := newVec(t, mem, arrow.BinaryTypes.String, "apple", "pear")
		defer columnar.Release(in)

		out, err := Lt(mem, in, stringScalar("banana", 2))
		require.NoError(t, err)
		defer columnar.Release(out)

		require.Equal(t, []any{true, false}, arrowtest.Values(out.ToArray()))
	})

	t.Run("less or equal arrays", func(t *testing.T) {
		mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
		defer mem.AssertSize(t, 0)

		left := newVec(t, mem, arrow.PrimitiveTypes.Int64, 1, 3, nil)
		defer columnar.Release(left)
		right := newVec(t, mem, arrow.PrimitiveTypes.Int64, 1, 2, 3)
		defer columnar.Release(right)

		out, err := Lte(mem, left, right)
		require.NoError(t, err)
		defer columnar.Release(out)

		require.Equal(t, []any{true, false, nil}, arrowtest.Values(out.ToArray()))
	})

	t.Run("booleans have no ordering", func(t *testing.T) {
		_, err := Gt(memory.DefaultAllocator, boolScalar(true, 1), boolScalar(false, 1))
		require.ErrorContains(t, err, "invalid input type bool for ordering comparison")
	})

	t.Run("mismatched types", func(t *testing.T) {
		_, err := Lt(memory.DefaultAllocator, intScalar(1, 1), stringScalar("a", 1))
		require.ErrorContains(t, err, "matching types")
	})
}
