package columnar

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/require"

	"github.com/vireodb/vireo/internal/arrowtest"
)

func TestMaterialize(t *testing.T) {
	t.Run("scalar", func(t *testing.T) {
		v, err := Materialize(NewScalar(NewLiteral("x"), 2))
		require.NoError(t, err)

		a, ok := v.(*Array)
		require.True(t, ok)
		require.Equal(t, String, a.Type())
		require.Equal(t, []any{"x", "x"}, arrowtest.Values(a.ToArray()))
	})

	t.Run("constant of a list row", func(t *testing.T) {
		alloc := memory.NewCheckedAllocator(memory.DefaultAllocator)
		defer alloc.AssertSize(t, 0)

		row := arrowtest.List(alloc, arrow.PrimitiveTypes.Int64, []any{1, 2})
		defer row.Release()

		c, err := NewConstant(row, 2)
		require.NoError(t, err)

		v, err := Materialize(c)
		require.NoError(t, err)

		l, ok := v.(*List)
		require.True(t, ok)
		require.Equal(t, 2, l.Rows())
		require.Equal(t, []int32{0, 2, 4}, l.Offsets())
	})

	t.Run("arrays pass through", func(t *testing.T) {
		alloc := memory.NewCheckedAllocator(memory.DefaultAllocator)
		defer alloc.AssertSize(t, 0)

		a, err := NewArray(arrowtest.Array(alloc, arrow.PrimitiveTypes.Int64, 1))
		require.NoError(t, err)
		defer Release(a)

		v, err := Materialize(a)
		require.NoError(t, err)
		require.Same(t, a, v)
	})
}

func TestDecodeDictionary(t *testing.T) {
	alloc := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer alloc.AssertSize(t, 0)

	dt := &arrow.DictionaryType{IndexType: arrow.PrimitiveTypes.Int32, ValueType: arrow.BinaryTypes.String}
	b := array.NewDictionaryBuilder(alloc, dt).(*array.BinaryDictionaryBuilder)
	defer b.Release()
	require.NoError(t, b.AppendString("a"))
	require.NoError(t, b.AppendString("b"))
	require.NoError(t, b.AppendString("a"))

	dict := b.NewArray()
	defer dict.Release()

	v, err := NewArray(dict)
	require.NoError(t, err)
	require.Equal(t, String, v.Type())

	decoded, err := DecodeDictionary(v)
	require.NoError(t, err)
	require.NotSame(t, v, decoded)
	require.Equal(t, []any{"a", "b", "a"}, arrowtest.Values(decoded.ToArray()))
	require.Equal(t, String, decoded.Type())
}

func TestDecodeDictionaryPassesPlainVectorsThrough(t *testing.T) {
	alloc := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer alloc.AssertSize(t, 0)

	a, err := NewArray(arrowtest.Array(alloc, arrow.PrimitiveTypes.Int64, 1))
	require.NoError(t, err)
	defer Release(a)

	v, err := DecodeDictionary(a)
	require.NoError(t, err)
	require.Same(t, a, v)
}

func TestAsList(t *testing.T) {
	t.Run("list passes through", func(t *testing.T) {
		alloc := memory.NewCheckedAllocator(memory.DefaultAllocator)
		defer alloc.AssertSize(t, 0)

		l, err := NewList(arrowtest.List(alloc, arrow.PrimitiveTypes.Int64, []any{1}))
		require.NoError(t, err)
		defer Release(l)

		got, err := AsList(l)
		require.NoError(t, err)
		require.Same(t, l, got)
	})

	t.Run("array of lists converts", func(t *testing.T) {
		alloc := memory.NewCheckedAllocator(memory.DefaultAllocator)
		defer alloc.AssertSize(t, 0)

		a, err := NewArray(arrowtest.List(alloc, arrow.PrimitiveTypes.Int64, []any{1, 2}, []any{3}))
		require.NoError(t, err)
		defer Release(a)

		got, err := AsList(a)
		require.NoError(t, err)
		require.Equal(t, 2, got.Rows())
		require.Equal(t, []int32{0, 2, 3}, got.Offsets())
	})

	t.Run("constant list row repeats", func(t *testing.T) {
		alloc := memory.NewCheckedAllocator(memory.DefaultAllocator)
		defer alloc.AssertSize(t, 0)

		row := arrowtest.List(alloc, arrow.PrimitiveTypes.Int64, []any{1, 2})
		defer row.Release()

		c, err := NewConstant(row, 3)
		require.NoError(t, err)

		got, err := AsList(c)
		require.NoError(t, err)
		require.Equal(t, 3, got.Rows())
		require.Equal(t, []int32{0, 2, 4, 6}, got.Offsets())
		require.Equal(t, []any{int64(1), int64(2)}, got.Value(2))
	})

	t.Run("flat arrays fail", func(t *testing.T) {
		alloc := memory.NewCheckedAllocator(memory.DefaultAllocator)
		defer alloc.AssertSize(t, 0)

		a, err := NewArray(arrowtest.Array(alloc, arrow.PrimitiveTypes.Int64, 1))
		require.NoError(t, err)
		defer Release(a)

		_, err = AsList(a)
		require.ErrorIs(t, err, ErrIllegalColumn)
	})

	t.Run("scalars fail", func(t *testing.T) {
		_, err := AsList(NewScalar(NewLiteral(int64(1)), 1))
		require.ErrorIs(t, err, ErrIllegalColumn)
	})
}

func TestSliceVectors(t *testing.T) {
	t.Run("scalar", func(t *testing.T) {
		v, err := Slice(NewScalar(NewLiteral(int64(9)), 5), 1, 3)
		require.NoError(t, err)
		require.Equal(t, int64(2), v.Len())
		require.Equal(t, int64(9), v.Value(0))
	})

	t.Run("array", func(t *testing.T) {
		alloc := memory.NewCheckedAllocator(memory.DefaultAllocator)
		defer alloc.AssertSize(t, 0)

		a, err := NewArray(arrowtest.Array(alloc, arrow.PrimitiveTypes.Int64, 1, 2, 3, 4))
		require.NoError(t, err)
		defer Release(a)

		v, err := Slice(a, 1, 3)
		require.NoError(t, err)
		defer Release(v)

		require.Equal(t, int64(2), v.Len())
		require.Equal(t, int64(2), v.Value(0))
		require.Equal(t, int64(3), v.Value(1))
	})

	t.Run("constant", func(t *testing.T) {
		alloc := memory.NewCheckedAllocator(memory.DefaultAllocator)
		defer alloc.AssertSize(t, 0)

		one := arrowtest.Array(alloc, arrow.BinaryTypes.String, "v")
		defer one.Release()

		c, err := NewConstant(one, 5)
		require.NoError(t, err)

		v, err := Slice(c, 0, 2)
		require.NoError(t, err)
		require.Equal(t, int64(2), v.Len())
		require.Equal(t, "v", v.Value(1))
	})
}

func TestAppendValueResolvesDictionaries(t *testing.T) {
	alloc := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer alloc.AssertSize(t, 0)

	dt := &arrow.DictionaryType{IndexType: arrow.PrimitiveTypes.Int32, ValueType: arrow.BinaryTypes.String}
	db := array.NewDictionaryBuilder(alloc, dt).(*array.BinaryDictionaryBuilder)
	defer db.Release()
	require.NoError(t, db.AppendString("x"))
	db.AppendNull()

	dict := db.NewArray()
	defer dict.Release()

	b := array.NewStringBuilder(alloc)
	defer b.Release()
	AppendValue(b, dict, 0)
	AppendValue(b, dict, 1)

	out := b.NewArray()
	defer out.Release()
	require.Equal(t, []any{"x", nil}, arrowtest.Values(out))
}
