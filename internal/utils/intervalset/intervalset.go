// Package intervalset provides an ordered set of disjoint half-open integer
// intervals. It is used for tracking acknowledged packet number ranges as
// well as acknowledged and lost byte ranges of a stream.
package intervalset

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/constraints"
)

// An Interval is the half-open range [Start, End).
type Interval[T constraints.Integer] struct {
	Start T
	End   T
}

// Len returns the number of elements covered by the interval.
func (i Interval[T]) Len() T {
	return i.End - i.Start
}

func (i Interval[T]) String() string {
	return fmt.Sprintf("[%d, %d)", i.Start, i.End)
}

// A Set is an ordered set of disjoint, non-adjacent half-open intervals.
// Adjacent and overlapping intervals are merged on Add.
// The zero value is an empty set ready for use.
type Set[T constraints.Integer] struct {
	intervals []Interval[T]
	size      T
}

// Add inserts the half-open interval [start, end), merging it with any
// overlapping or adjacent intervals. Empty intervals are ignored.
func (s *Set[T]) Add(start, end T) {
	if start >= end {
		return
	}
	// lo is the first interval that overlaps or touches [start, end),
	// hi is the first interval entirely above it.
	lo := sort.Search(len(s.intervals), func(i int) bool { return s.intervals[i].End >= start })
	hi := sort.Search(len(s.intervals), func(i int) bool { return s.intervals[i].Start > end })

	merged := Interval[T]{Start: start, End: end}
	var covered T
	for i := lo; i < hi; i++ {
		covered += s.intervals[i].Len()
		if s.intervals[i].Start < merged.Start {
			merged.Start = s.intervals[i].Start
		}
		if s.intervals[i].End > merged.End {
			merged.End = s.intervals[i].End
		}
	}
	s.size += merged.Len() - covered

	if lo == hi {
		s.intervals = append(s.intervals, Interval[T]{})
		copy(s.intervals[lo+1:], s.intervals[lo:])
		s.intervals[lo] = merged
		return
	}
	s.intervals[lo] = merged
	s.intervals = append(s.intervals[:lo+1], s.intervals[hi:]...)
}

// Contains reports whether the whole of [start, end) is covered.
// An empty interval is always contained.
func (s *Set[T]) Contains(start, end T) bool {
	if start >= end {
		return true
	}
	// since adjacent intervals are merged, full coverage means a single
	// stored interval covers the queried range
	i := sort.Search(len(s.intervals), func(i int) bool { return s.intervals[i].End > start })
	if i == len(s.intervals) {
		return false
	}
	return s.intervals[i].Start <= start && s.intervals[i].End >= end
}

// Difference removes [start, end) from the set, splitting intervals as needed.
func (s *Set[T]) Difference(start, end T) {
	if start >= end {
		return
	}
	lo := sort.Search(len(s.intervals), func(i int) bool { return s.intervals[i].End > start })
	hi := sort.Search(len(s.intervals), func(i int) bool { return s.intervals[i].Start >= end })
	if lo >= hi {
		return
	}

	var result []Interval[T]
	first := s.intervals[lo]
	last := s.intervals[hi-1]
	if first.Start < start {
		result = append(result, Interval[T]{Start: first.Start, End: start})
	}
	if last.End > end {
		result = append(result, Interval[T]{Start: end, End: last.End})
	}

	var removed T
	for i := lo; i < hi; i++ {
		removed += s.intervals[i].Len()
	}
	for _, in := range result {
		removed -= in.Len()
	}
	s.size -= removed

	s.intervals = append(s.intervals[:lo], append(result, s.intervals[hi:]...)...)
}

// CoveredSize returns the number of elements of [start, end) that are
// covered by the set.
func (s *Set[T]) CoveredSize(start, end T) T {
	if start >= end {
		return 0
	}
	lo := sort.Search(len(s.intervals), func(i int) bool { return s.intervals[i].End > start })
	var covered T
	for i := lo; i < len(s.intervals) && s.intervals[i].Start < end; i++ {
		in := s.intervals[i]
		if in.Start > start {
			start = in.Start
		}
		stop := in.End
		if stop > end {
			stop = end
		}
		covered += stop - start
	}
	return covered
}

// Empty says if the set contains no elements.
func (s *Set[T]) Empty() bool {
	return len(s.intervals) == 0
}

// Size returns the total number of elements covered by the set.
func (s *Set[T]) Size() T {
	return s.size
}

// Len returns the number of stored intervals.
func (s *Set[T]) Len() int {
	return len(s.intervals)
}

// Intervals returns the stored intervals in ascending order.
// The returned slice is owned by the set and must not be modified.
func (s *Set[T]) Intervals() []Interval[T] {
	return s.intervals
}

// First returns the lowest stored interval.
// It must not be called on an empty set.
func (s *Set[T]) First() Interval[T] {
	return s.intervals[0]
}

// Last returns the highest stored interval.
// It must not be called on an empty set.
func (s *Set[T]) Last() Interval[T] {
	return s.intervals[len(s.intervals)-1]
}

func (s *Set[T]) String() string {
	strs := make([]string, 0, len(s.intervals))
	for _, in := range s.intervals {
		strs = append(strs, in.String())
	}
	return "{" + strings.Join(strs, ", ") + "}"
}
