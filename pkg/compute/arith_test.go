package compute

import (
	"math"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/require"

	"github.com/vireodb/vireo/internal/arrowtest"
	"github.com/vireodb/vireo/pkg/columnar"
)

// newVec builds an array vector for kernel tests. The caller releases
// it through columnar.Release.
func newVec(t *testing.T, mem memory.Allocator, dt arrow.DataType, values ...any) *columnar.Array {
	t.Helper()

	v, err := columnar.NewArray(arrowtest.Array(mem, dt, values...))
	require.NoError(t, err)
	return v
}

func intScalar(v int64, rows int64) *columnar.Scalar {
	return columnar.NewScalar(columnar.NewLiteral(v), rows)
}

func floatScalar(v float64, rows int64) *columnar.Scalar {
	return columnar.NewScalar(columnar.NewLiteral(v), rows)
}

func TestAdd(t *testing.T) {
	t.Run("scalar scalar", func(t *testing.T) {
		out, err := Add(memory.DefaultAllocator, intScalar(2, 3), intScalar(40, 3))
		require.NoError(t, err)

		s, ok := out.(*columnar.Scalar)
		require.True(t, ok)
		require.Equal(t, int64(3), s.Len())
		require.Equal(t, int64(42), s.Value(0))
	})

	t.Run("scalar array", func(t *testing.T) {
		mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
		defer mem.AssertSize(t, 0)

		in := newVec(t, mem, arrow.PrimitiveTypes.Int64, 1, nil, 3)
		defer columnar.Release(in)

		out, err := Add(mem, intScalar(10, 3), in)
		require.NoError(t, err)
		defer columnar.Release(out)

		require.Equal(t, []any{int64(11), nil, int64(13)}, arrowtest.Values(out.ToArray()))
	})

	t.Run("array scalar", func(t *testing.T) {
		mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
		defer mem.AssertSize(t, 0)

		in := newVec(t, mem, arrow.PrimitiveTypes.Float64, 0.5, 1.5)
		defer columnar.Release(in)

		out, err := Add(mem, in, floatScalar(1.0, 2))
		require.NoError(t, err)
		defer columnar.Release(out)

		require.Equal(t, []any{1.5, 2.5}, arrowtest.Values(out.ToArray()))
	})

	t.Run("array array propagates nulls", func(t *testing.T) {
		mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
		defer mem.AssertSize(t, 0)

		left := newVec(t, mem, arrow.PrimitiveTypes.Int64, 1, 2, nil)
		defer columnar.Release(left)
		right := newVec(t, mem, arrow.PrimitiveTypes.Int64, 10, nil, 30)
		defer columnar.Release(right)

		out, err := Add(mem, left, right)
		require.NoError(t, err)
		defer columnar.Release(out)

		require.Equal(t, []any{int64(11), nil, nil}, arrowtest.Values(out.ToArray()))
	})

	t.Run("constant operands materialize", func(t *testing.T) {
		mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
		defer mem.AssertSize(t, 0)

		one := arrowtest.Array(mem, arrow.PrimitiveTypes.Int64, 2)
		defer one.Release()
		c, err := columnar.NewConstant(one, 3)
		require.NoError(t, err)

		in := newVec(t, mem, arrow.PrimitiveTypes.Int64, 1, 2, 3)
		defer columnar.Release(in)

		out, err := Add(mem, c, in)
		require.NoError(t, err)
		defer columnar.Release(out)

		require.Equal(t, []any{int64(3), int64(4), int64(5)}, arrowtest.Values(out.ToArray()))
	})

	t.Run("mismatched types", func(t *testing.T) {
		_, err := Add(memory.DefaultAllocator, intScalar(1, 1), floatScalar(1, 1))
		require.ErrorContains(t, err, "matching types")
	})

	t.Run("non-numeric input", func(t *testing.T) {
		s := columnar.NewScalar(columnar.NewLiteral("a"), 1)
		_, err := Add(memory.DefaultAllocator, s, s)
		require.ErrorContains(t, err, "invalid input type")
	})

	t.Run("mismatched lengths", func(t *testing.T) {
		mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
		defer mem.AssertSize(t, 0)

		left := newVec(t, mem, arrow.PrimitiveTypes.Int64, 1, nil)
		defer columnar.Release(left)
		right := newVec(t, mem, arrow.PrimitiveTypes.Int64, 1, nil, 3)
		defer columnar.Release(right)

		_, err := Add(mem, left, right)
		require.ErrorContains(t, err, "length mismatch")
	})
}

func TestSubMul(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	in := newVec(t, mem, arrow.PrimitiveTypes.Int64, 5, 7)
	defer columnar.Release(in)

	diff, err := Sub(mem, in, intScalar(2, 2))
	require.NoError(t, err)
	defer columnar.Release(diff)
	require.Equal(t, []any{int64(3), int64(5)}, arrowtest.Values(diff.ToArray()))

	prod, err := Mul(mem, in, intScalar(3, 2))
	require.NoError(t, err)
	defer columnar.Release(prod)
	require.Equal(t, []any{int64(15), int64(21)}, arrowtest.Values(prod.ToArray()))
}

func TestDiv(t *testing.T) {
	t.Run("integer", func(t *testing.T) {
		mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
		defer mem.AssertSize(t, 0)

		left := newVec(t, mem, arrow.PrimitiveTypes.Int64, 10, 9)
		defer columnar.Release(left)
		right := newVec(t, mem, arrow.PrimitiveTypes.Int64, 2, 3)
		defer columnar.Release(right)

		out, err := Div(mem, left, right)
		require.NoError(t, err)
		defer columnar.Release(out)

		require.Equal(t, []any{int64(5), int64(3)}, arrowtest.Values(out.ToArray()))
	})

	t.Run("integer division by zero", func(t *testing.T) {
		mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
		defer mem.AssertSize(t, 0)

		in := newVec(t, mem, arrow.PrimitiveTypes.Int64, 10)
		defer columnar.Release(in)

		_, err := Div(mem, in, intScalar(0, 1))
		require.ErrorContains(t, err, "division by zero")

		_, err = Div(mem, intScalar(10, 1), intScalar(0, 1))
		require.ErrorContains(t, err, "division by zero")
	})

	t.Run("zero divisor at a null slot is skipped", func(t *testing.T) {
		mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
		defer mem.AssertSize(t, 0)

		left := newVec(t, mem, arrow.PrimitiveTypes.Int64, 10, nil)
		defer columnar.Release(left)
		right := newVec(t, mem, arrow.PrimitiveTypes.Int64, 2, 0)
		defer columnar.Release(right)

		out, err := Div(mem, left, right)
		require.NoError(t, err)
		defer columnar.Release(out)

		require.Equal(t, []any{int64(5), nil}, arrowtest.Values(out.ToArray()))
	})

	t.Run("float division by zero is IEEE", func(t *testing.T) {
		mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
		defer mem.AssertSize(t, 0)

		in := newVec(t, mem, arrow.PrimitiveTypes.Float64, 1.0, -1.0)
		defer columnar.Release(in)

		out, err := Div(mem, in, floatScalar(0, 2))
		require.NoError(t, err)
		defer columnar.Release(out)

		require.Equal(t, []any{math.Inf(1), math.Inf(-1)}, arrowtest.Values(out.ToArray()))
	})
}

func TestMod(t *testing.T) {
	t.Run("integer", func(t *testing.T) {
		mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
		defer mem.AssertSize(t, 0)

		in := newVec(t, mem, arrow.PrimitiveTypes.Int64, 10, 7)
		defer columnar.Release(in)

		out, err := Mod(mem, in, intScalar(3, 2))
		require.NoError(t, err)
		defer columnar.Release(out)

		require.Equal(t, []any{int64(1), int64(1)}, arrowtest.Values(out.ToArray()))
	})

	t.Run("zero modulus", func(t *testing.T) {
		_, err := Mod(memory.DefaultAllocator, intScalar(10, 1), intScalar(0, 1))
		require.ErrorContains(t, err, "division by zero")
	})

	t.Run("float", func(t *testing.T) {
		out, err := Mod(memory.DefaultAllocator, floatScalar(7.5, 1), floatScalar(2, 1))
		require.NoError(t, err)
		require.Equal(t, 1.5, out.Value(0))
	})
}

func TestMinMax(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	in := newVec(t, mem, arrow.PrimitiveTypes.Int64, 1, 5, nil)
	defer columnar.Release(in)

	lo, err := Min(mem, in, intScalar(3, 3))
	require.NoError(t, err)
	defer columnar.Release(lo)
	require.Equal(t, []any{int64(1), int64(3), nil}, arrowtest.Values(lo.ToArray()))

	hi, err := Max(mem, intScalar(3, 3), in)
	require.NoError(t, err)
	defer columnar.Release(hi)
	require.Equal(t, []any{int64(3), int64(5), nil}, arrowtest.Values(hi.ToArray()))
}
