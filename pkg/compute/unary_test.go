package compute

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/require"

	"github.com/vireodb/vireo/internal/arrowtest"
	"github.com/vireodb/vireo/pkg/columnar"
)

func TestNot(t *testing.T) {
	t.Run("scalar", func(t *testing.T) {
		out, err := Not(memory.DefaultAllocator, boolScalar(true, 3))
		require.NoError(t, err)
		require.Equal(t, false, out.Value(0))
		require.Equal(t, int64(3), out.Len())
	})

	t.Run("array", func(t *testing.T) {
		mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
		defer mem.AssertSize(t, 0)

		in := newVec(t, mem, arrow.FixedWidthTypes.Boolean, true, nil, false)
		defer columnar.Release(in)

		out, err := Not(mem, in)
		require.NoError(t, err)
		defer columnar.Release(out)

		require.Equal(t, []any{false, nil, true}, arrowtest.Values(out.ToArray()))
	})

	t.Run("non-boolean input", func(t *testing.T) {
		_, err := Not(memory.DefaultAllocator, intScalar(1, 1))
		require.ErrorContains(t, err, "invalid input type integer, expected bool")
	})
}

func TestNeg(t *testing.T) {
	t.Run("integers", func(t *testing.T) {
		mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
		defer mem.AssertSize(t, 0)

		in := newVec(t, mem, arrow.PrimitiveTypes.Int64, 1, -2, nil)
		defer columnar.Release(in)

		out, err := Neg(mem, in)
		require.NoError(t, err)
		defer columnar.Release(out)

		require.Equal(t, []any{int64(-1), int64(2), nil}, arrowtest.Values(out.ToArray()))
	})

	t.Run("float scalar", func(t *testing.T) {
		out, err := Neg(memory.DefaultAllocator, floatScalar(0.5, 1))
		require.NoError(t, err)
		require.Equal(t, -0.5, out.Value(0))
	})

	t.Run("non-numeric input", func(t *testing.T) {
		_, err := Neg(memory.DefaultAllocator, stringScalar("a", 1))
		require.ErrorContains(t, err, "invalid input type")
	})
}

func TestAbs(t *testing.T) {
	t.Run("integers", func(t *testing.T) {
		mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
		defer mem.AssertSize(t, 0)

		in := newVec(t, mem, arrow.PrimitiveTypes.Int64, -5, 3, nil)
		defer columnar.Release(in)

		out, err := Abs(mem, in)
		require.NoError(t, err)
		defer columnar.Release(out)

		require.Equal(t, []any{int64(5), int64(3), nil}, arrowtest.Values(out.ToArray()))
	})

	t.Run("float scalar", func(t *testing.T) {
		out, err := Abs(memory.DefaultAllocator, floatScalar(-2.5, 1))
		require.NoError(t, err)
		require.Equal(t, 2.5, out.Value(0))
	})

	t.Run("constant input materializes", func(t *testing.T) {
		mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
		defer mem.AssertSize(t, 0)

		one := arrowtest.Array(mem, arrow.PrimitiveTypes.Int64, -3)
		defer one.Release()
		c, err := columnar.NewConstant(one, 2)
		require.NoError(t, err)

		out, err := Abs(mem, c)
		require.NoError(t, err)
		defer columnar.Release(out)

		require.Equal(t, []any{int64(3), int64(3)}, arrowtest.Values(out.ToArray()))
	})

	t.Run("non-numeric input", func(t *testing.T) {
		_, err := Abs(memory.DefaultAllocator, boolScalar(true, 1))
		require.ErrorContains(t, err, "invalid input type")
	})
}
