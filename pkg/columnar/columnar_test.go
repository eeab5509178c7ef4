package columnar

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/require"

	"github.com/vireodb/vireo/internal/arrowtest"
)

func TestScalar(t *testing.T) {
	s := NewScalar(NewLiteral(int64(42)), 3)

	require.Equal(t, int64(3), s.Len())
	require.Equal(t, Integer, s.Type())
	require.Equal(t, int64(42), s.Value(0))
	require.Equal(t, int64(42), s.Value(2))

	arr := s.ToArray()
	defer arr.Release()
	require.Equal(t, []any{int64(42), int64(42), int64(42)}, arrowtest.Values(arr))
}

func TestScalarNull(t *testing.T) {
	s := NewScalar(NewNullLiteral(), 2)

	require.Equal(t, Null, s.Type())
	require.Nil(t, s.Value(0))

	arr := s.ToArray()
	defer arr.Release()
	require.Equal(t, 2, arr.Len())
	require.Equal(t, 2, arr.NullN())
}

func TestArray(t *testing.T) {
	alloc := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer alloc.AssertSize(t, 0)

	v, err := NewArray(arrowtest.Array(alloc, arrow.PrimitiveTypes.Int64, 1, nil, 3))
	require.NoError(t, err)
	defer Release(v)

	require.Equal(t, int64(3), v.Len())
	require.Equal(t, Integer, v.Type())
	require.Equal(t, int64(1), v.Value(0))
	require.Nil(t, v.Value(1))
	require.Equal(t, int64(3), v.Value(2))
}

func TestArrayOfLists(t *testing.T) {
	alloc := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer alloc.AssertSize(t, 0)

	v, err := NewArray(arrowtest.List(alloc, arrow.PrimitiveTypes.Int64, []any{1, 2}))
	require.NoError(t, err)
	defer Release(v)

	require.Equal(t, ListOf(Integer), v.Type())
	require.Equal(t, []any{int64(1), int64(2)}, v.Value(0))
}

func TestConstant(t *testing.T) {
	alloc := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer alloc.AssertSize(t, 0)

	one := arrowtest.Array(alloc, arrow.BinaryTypes.String, "v")
	defer one.Release()

	c, err := NewConstant(one, 4)
	require.NoError(t, err)
	require.Equal(t, int64(4), c.Len())
	require.Equal(t, String, c.Type())
	require.Equal(t, "v", c.Value(0))
	require.Equal(t, "v", c.Value(3))

	arr := c.ToArray()
	defer arr.Release()
	require.Equal(t, []any{"v", "v", "v", "v"}, arrowtest.Values(arr))
}

func TestConstantRejectsMultipleRows(t *testing.T) {
	alloc := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer alloc.AssertSize(t, 0)

	two := arrowtest.Array(alloc, arrow.PrimitiveTypes.Int64, 1, 2)
	defer two.Release()

	_, err := NewConstant(two, 4)
	require.ErrorIs(t, err, ErrIllegalColumn)
}

func TestConstantHoldsListRow(t *testing.T) {
	alloc := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer alloc.AssertSize(t, 0)

	row := arrowtest.List(alloc, arrow.PrimitiveTypes.Int64, []any{1, 2})
	defer row.Release()

	c, err := NewConstant(row, 3)
	require.NoError(t, err)
	require.Equal(t, ListOf(Integer), c.Type())
	require.Equal(t, []any{int64(1), int64(2)}, c.Value(1))

	arr := c.ToArray()
	defer arr.Release()
	require.IsType(t, (*array.List)(nil), arr)
	require.Equal(t, [][]any{
		{int64(1), int64(2)},
		{int64(1), int64(2)},
		{int64(1), int64(2)},
	}, arrowtest.Rows(arr))
}
