package scope

import (
	"context"
	"iter"
	"slices"
)

// Loader streams entities from storage. It is invoked once per iteration.
type Loader[T any] func(ctx context.Context) iter.Seq2[T, error]

// Seq is a restartable sequence backing a view. It is either lazy, re-reading
// storage through its Loader every time it is iterated, or list-backed, in
// which case views derived from it share the same list and mutations write
// through to it.
//
// A list-backed Seq must not be mutated concurrently.
type Seq[T any] struct {
	load  Loader[T]
	items *[]T
	keep  func(T) bool
}

// Lazy returns a sequence that calls load on every iteration.
func Lazy[T any](load Loader[T]) Seq[T] {
	return Seq[T]{load: load}
}

// List returns a sequence over a private copy of items.
func List[T any](items []T) Seq[T] {
	cp := slices.Clone(items)
	if cp == nil {
		cp = []T{}
	}

	return Seq[T]{items: &cp}
}

// Materialized reports whether the sequence is list-backed.
func (s Seq[T]) Materialized() bool {
	return s.items != nil
}

// Where returns a sequence over the same source that only yields elements
// accepted by keep. The predicate is applied during iteration.
func (s Seq[T]) Where(keep func(T) bool) Seq[T] {
	prev := s.keep
	if prev == nil {
		s.keep = keep
		return s
	}

	s.keep = func(v T) bool {
		return prev(v) && keep(v)
	}

	return s
}

// Derive narrows the sequence. List-backed sequences are filtered in place,
// lazy ones switch to load so the narrower query runs in storage.
func (s Seq[T]) Derive(load Loader[T], keep func(T) bool) Seq[T] {
	if s.items != nil || load == nil {
		return s.Where(keep)
	}

	return Seq[T]{load: load, keep: s.keep}.Where(keep)
}

// All returns a fresh iterator. Storage errors are yielded once and end the
// iteration.
func (s Seq[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		if s.items != nil {
			for _, v := range *s.items {
				if s.keep != nil && !s.keep(v) {
					continue
				}

				if !yield(v, nil) {
					return
				}
			}

			return
		}

		if s.load == nil {
			return
		}

		for v, err := range s.load(ctx) {
			if err != nil {
				var zero T

				yield(zero, err)

				return
			}

			if s.keep != nil && !s.keep(v) {
				continue
			}

			if !yield(v, nil) {
				return
			}
		}
	}
}

// Append adds v to a list-backed sequence. It is a no-op on lazy sequences.
func (s Seq[T]) Append(v T) {
	if s.items == nil {
		return
	}

	*s.items = append(*s.items, v)
}

// Replace swaps the first element matched by match with v, appending v when
// nothing matches. It is a no-op on lazy sequences.
func (s Seq[T]) Replace(match func(T) bool, v T) {
	if s.items == nil {
		return
	}

	if i := slices.IndexFunc(*s.items, match); i >= 0 {
		(*s.items)[i] = v
		return
	}

	*s.items = append(*s.items, v)
}

// Delete drops every element matched by match. It is a no-op on lazy sequences.
func (s Seq[T]) Delete(match func(T) bool) {
	if s.items == nil {
		return
	}

	*s.items = slices.DeleteFunc(*s.items, match)
}

// Find scans seq and returns the first element accepted by match.
func Find[T any](seq iter.Seq2[T, error], match func(T) bool) (T, bool, error) {
	for v, err := range seq {
		if err != nil {
			var zero T
			return zero, false, err
		}

		if match(v) {
			return v, true, nil
		}
	}

	var zero T

	return zero, false, nil
}

// Collect drains seq into a slice.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var out []T

	for v, err := range seq {
		if err != nil {
			return nil, err
		}

		out = append(out, v)
	}

	return out, nil
}

// Count drains seq and returns the number of elements.
func Count[T any](seq iter.Seq2[T, error]) (int, error) {
	n := 0

	for _, err := range seq {
		if err != nil {
			return 0, err
		}

		n++
	}

	return n, nil
}

// Values adapts a slice to the iterator shape returned by repositories.
func Values[T any](items ...T) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for _, v := range items {
			if !yield(v, nil) {
				return
			}
		}
	}
}

// Failed returns an iterator that yields err once.
func Failed[T any](err error) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T

		yield(zero, err)
	}
}
