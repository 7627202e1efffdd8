// Package intervals models the mute intervals derived from a word-level
// transcript and provides the playback-time containment lookup used by the
// audio mute engine.
package intervals

import (
	"fmt"
	"sort"

	"hushplay/internal/lexicon"
)

// Interval is a time range during which audio must be suppressed, tagged
// with the triggering word and its severity tier. Times are seconds.
type Interval struct {
	Start    float64
	End      float64
	Word     string
	Severity lexicon.Severity
}

// Set is an ordered, non-overlapping interval list. Sets are immutable once
// produced for a given transcript and preference set; preference changes
// produce a fresh Set.
type Set []Interval

// Validate checks the end > start invariant, sort order, and
// non-overlapping.
func (s Set) Validate() error {
	prev := Interval{Start: -1, End: -1}
	for i, interval := range s {
		if interval.End <= interval.Start {
			return fmt.Errorf("interval %d (%q): end %.3f <= start %.3f", i, interval.Word, interval.End, interval.Start)
		}
		if interval.Start < prev.Start {
			return fmt.Errorf("interval %d (%q): out of order", i, interval.Word)
		}
		if interval.Start < prev.End {
			return fmt.Errorf("interval %d (%q): overlaps previous", i, interval.Word)
		}
		prev = interval
	}
	return nil
}

// ActiveAt returns the interval containing playback position t, if any. The
// predicate is start <= t < end. The lookup is a binary search over sorted
// starts and evaluates membership fresh each call, so arbitrary seeks are
// handled without cursor state.
func (s Set) ActiveAt(t float64) (Interval, bool) {
	// First interval whose start is strictly greater than t; the candidate
	// is the one before it.
	idx := sort.Search(len(s), func(i int) bool { return s[i].Start > t })
	if idx == 0 {
		return Interval{}, false
	}
	candidate := s[idx-1]
	if t < candidate.End {
		return candidate, true
	}
	return Interval{}, false
}

// NextAfter returns the first interval starting strictly after t, if any.
func (s Set) NextAfter(t float64) (Interval, bool) {
	idx := sort.Search(len(s), func(i int) bool { return s[i].Start > t })
	if idx == len(s) {
		return Interval{}, false
	}
	return s[idx], true
}

// TotalDuration returns the summed length of all intervals, in seconds.
func (s Set) TotalDuration() float64 {
	var total float64
	for _, interval := range s {
		total += interval.End - interval.Start
	}
	return total
}

var severityRank = map[lexicon.Severity]int{
	lexicon.SeverityMild:      1,
	lexicon.SeverityModerate:  2,
	lexicon.SeverityReligious: 3,
	lexicon.SeveritySevere:    4,
}

func moreSevere(a, b lexicon.Severity) lexicon.Severity {
	if severityRank[a] >= severityRank[b] {
		return a
	}
	return b
}
