package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrInvalidInterval means the interval has a non-positive length
var ErrInvalidInterval = errors.New("invalid interval: end must be after start")

// Interval is a half-open time span [Start, End).
// The start instant belongs to the interval, the end instant does not,
// so back-to-back intervals do not overlap.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval creates a validated interval
func NewInterval(start, end time.Time) (Interval, error) {
	if !end.After(start) {
		return Interval{}, fmt.Errorf("%w: [%s, %s)",
			ErrInvalidInterval, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return Interval{Start: start, End: end}, nil
}

// Overlaps reports whether two half-open intervals share at least one instant.
// Touching boundaries ([a,b) and [b,c)) do not count as overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Duration returns the length of the interval
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// IntervalSet is a collection of half-open intervals kept ordered by start.
// Used to answer overlap queries against the booked spans of a day.
type IntervalSet struct {
	intervals []Interval
}

// NewIntervalSet creates an empty interval set
func NewIntervalSet() *IntervalSet {
	return &IntervalSet{}
}

// Add validates [start, end) and inserts it preserving the order by start.
// Intervals inside the set may overlap each other: the set describes
// occupied time, not a partition of it.
func (s *IntervalSet) Add(start, end time.Time) error {
	interval, err := NewInterval(start, end)
	if err != nil {
		return err
	}

	pos := sort.Search(len(s.intervals), func(i int) bool {
		return s.intervals[i].Start.After(interval.Start)
	})

	s.intervals = append(s.intervals, Interval{})
	copy(s.intervals[pos+1:], s.intervals[pos:])
	s.intervals[pos] = interval

	return nil
}

// Overlaps reports whether the candidate shares an instant with any member.
// Ordering by start lets the scan stop at the first member starting at or
// after the candidate's end.
func (s *IntervalSet) Overlaps(candidate Interval) bool {
	for _, interval := range s.intervals {
		if !interval.Start.Before(candidate.End) {
			break
		}
		if interval.Overlaps(candidate) {
			return true
		}
	}
	return false
}

// Len returns the number of intervals in the set
func (s *IntervalSet) Len() int {
	return len(s.intervals)
}

// Intervals returns a copy of the members in ascending order by start
func (s *IntervalSet) Intervals() []Interval {
	out := make([]Interval, len(s.intervals))
	copy(out, s.intervals)
	return out
}

// Merged returns the members coalesced into non-overlapping spans.
// Touching intervals are merged into one.
func (s *IntervalSet) Merged() []Interval {
	if len(s.intervals) == 0 {
		return nil
	}

	merged := make([]Interval, 0, len(s.intervals))
	current := s.intervals[0]

	for _, interval := range s.intervals[1:] {
		if interval.Start.After(current.End) {
			merged = append(merged, current)
			current = interval
			continue
		}
		if interval.End.After(current.End) {
			current.End = interval.End
		}
	}

	return append(merged, current)
}
