package scope_test

import (
	"context"
	"errors"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/paidwork/internal/scope"
)

func even(n int) bool { return n%2 == 0 }

func TestSeq_LazyReloadsOnEveryIteration(t *testing.T) {
	ctx := context.Background()
	calls := 0
	rows := []int{1, 2}

	seq := scope.Lazy(func(context.Context) iter.Seq2[int, error] {
		calls++
		return scope.Values(rows...)
	})

	assert.Equal(t, 0, calls, "building a view must not touch storage")

	first, err := scope.Collect(seq.All(ctx))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, first)

	rows = append(rows, 3)

	second, err := scope.Collect(seq.All(ctx))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, second)
	assert.Equal(t, 2, calls)
}

func TestSeq_Where(t *testing.T) {
	type testCase struct {
		name string
		seq  scope.Seq[int]
		want []int
	}

	load := func(context.Context) iter.Seq2[int, error] { return scope.Values(1, 2, 3, 4, 6) }

	tests := []testCase{
		{name: "Lazy", seq: scope.Lazy(load).Where(even), want: []int{2, 4, 6}},
		{name: "List", seq: scope.List([]int{1, 2, 3, 4, 6}).Where(even), want: []int{2, 4, 6}},
		{
			name: "Chained",
			seq:  scope.List([]int{1, 2, 3, 4, 6}).Where(even).Where(func(n int) bool { return n > 2 }),
			want: []int{4, 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scope.Collect(tt.seq.All(context.Background()))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeq_ListMutationsWriteThroughDerivedViews(t *testing.T) {
	ctx := context.Background()

	parent := scope.List([]int{1, 2, 3})
	child := parent.Derive(nil, even)

	child.Append(4)
	parent.Replace(func(n int) bool { return n == 1 }, 10)
	child.Delete(func(n int) bool { return n == 2 })

	all, err := scope.Collect(parent.All(ctx))
	require.NoError(t, err)
	assert.Equal(t, []int{10, 3, 4}, all)

	evens, err := scope.Collect(child.All(ctx))
	require.NoError(t, err)
	assert.Equal(t, []int{10, 4}, evens)
}

func TestSeq_ListCopiesInput(t *testing.T) {
	items := []int{1, 2}
	seq := scope.List(items)
	seq.Append(3)

	assert.Equal(t, []int{1, 2}, items)
	assert.True(t, seq.Materialized())
	assert.False(t, scope.Lazy[int](nil).Materialized())
}

func TestSeq_LazyMutationsAreNoOps(t *testing.T) {
	seq := scope.Lazy(func(context.Context) iter.Seq2[int, error] { return scope.Values(1) })
	seq.Append(2)
	seq.Delete(func(int) bool { return true })

	got, err := scope.Collect(seq.All(context.Background()))
	require.NoError(t, err)
	assert.Equal(t, []int{1}, got)
}

func TestSeq_StorageErrorEndsIteration(t *testing.T) {
	boom := errors.New("boom")

	seq := scope.Lazy(func(context.Context) iter.Seq2[int, error] {
		return func(yield func(int, error) bool) {
			if !yield(1, nil) {
				return
			}

			yield(0, boom)
		}
	})

	_, err := scope.Collect(seq.All(context.Background()))
	assert.ErrorIs(t, err, boom)

	_, err = scope.Count(seq.All(context.Background()))
	assert.ErrorIs(t, err, boom)

	_, _, err = scope.Find(scope.Failed[int](boom), even)
	assert.ErrorIs(t, err, boom)
}

func TestFind(t *testing.T) {
	v, ok, err := scope.Find(scope.Values(1, 3, 4, 6), even)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 4, v)

	_, ok, err = scope.Find(scope.Values(1, 3), even)
	require.NoError(t, err)
	assert.False(t, ok)
}
