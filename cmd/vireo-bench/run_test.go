package main

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/require"

	"github.com/vireodb/vireo/internal/arrowtest"
	"github.com/vireodb/vireo/pkg/columnar"
)

func TestGenerateBlock(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	t.Run("integers", func(t *testing.T) {
		block, err := generateBlock(mem, 3, 4, columnar.Integer)
		require.NoError(t, err)
		defer columnar.Release(block)

		require.Equal(t, 3, block.Rows())
		require.Equal(t, int64(12), block.TotalElements())
		require.Equal(t, columnar.Integer, block.ElementType())
		require.Equal(t, []any{int64(0), int64(1), int64(2), int64(3)}, arrowtest.Rows(block.ToArray())[0])
	})

	t.Run("floats", func(t *testing.T) {
		block, err := generateBlock(mem, 1, 4, columnar.Float)
		require.NoError(t, err)
		defer columnar.Release(block)

		require.Equal(t, []any{0.0, 0.5, 1.0, 1.5}, arrowtest.Rows(block.ToArray())[0])
	})

	t.Run("strings", func(t *testing.T) {
		block, err := generateBlock(mem, 1, 2, columnar.String)
		require.NoError(t, err)
		defer columnar.Release(block)

		require.Equal(t, []any{"alpha", "bravo"}, arrowtest.Rows(block.ToArray())[0])
	})

	t.Run("unsupported element type", func(t *testing.T) {
		_, err := generateBlock(mem, 1, 1, columnar.Bool)
		require.ErrorContains(t, err, "unsupported element type")
	})
}

func TestArgumentsFor(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	block, err := generateBlock(mem, 2, 3, columnar.Integer)
	require.NoError(t, err)
	defer columnar.Release(block)

	t.Run("transform", func(t *testing.T) {
		args, err := argumentsFor(mem, "array_map", block, columnar.Integer)
		require.NoError(t, err)
		require.Len(t, args, 2)
		require.NotNil(t, args[0].Closure)
		require.Equal(t, 1, args[0].Closure.Arity())
		require.Equal(t, columnar.Integer, args[0].Closure.ReturnType())
		require.Same(t, block, args[1].Vector)
	})

	t.Run("predicate", func(t *testing.T) {
		args, err := argumentsFor(mem, "array_filter", block, columnar.Integer)
		require.NoError(t, err)
		require.Len(t, args, 2)
		require.Equal(t, columnar.Bool, args[0].Closure.ReturnType())
	})

	t.Run("fold", func(t *testing.T) {
		args, err := argumentsFor(mem, "array_fold", block, columnar.Integer)
		require.NoError(t, err)
		require.Len(t, args, 3)
		require.Equal(t, 2, args[0].Closure.Arity())
		require.Equal(t, block.Len(), args[2].Vector.Len())
		require.Equal(t, columnar.Integer, args[2].Vector.Type())
	})

	t.Run("aggregation without expression", func(t *testing.T) {
		args, err := argumentsFor(mem, "array_sum", block, columnar.Integer)
		require.NoError(t, err)
		require.Len(t, args, 1)
		require.Same(t, block, args[0].Vector)
	})

	t.Run("string predicates work", func(t *testing.T) {
		words, err := generateBlock(mem, 2, 2, columnar.String)
		require.NoError(t, err)
		defer columnar.Release(words)

		args, err := argumentsFor(mem, "array_exists", words, columnar.String)
		require.NoError(t, err)
		require.Equal(t, columnar.Bool, args[0].Closure.ReturnType())
	})

	t.Run("string folds are skipped", func(t *testing.T) {
		words, err := generateBlock(mem, 1, 1, columnar.String)
		require.NoError(t, err)
		defer columnar.Release(words)

		_, err = argumentsFor(mem, "array_fold", words, columnar.String)
		require.ErrorContains(t, err, "no canned expression")

		_, err = argumentsFor(mem, "array_sum", words, columnar.String)
		require.ErrorContains(t, err, "no canned aggregation")
	})

	t.Run("unknown operation", func(t *testing.T) {
		_, err := argumentsFor(mem, "array_join", block, columnar.Integer)
		require.ErrorIs(t, err, columnar.ErrNotImplemented)
	})
}
