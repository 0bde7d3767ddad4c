package charlm

import (
	"errors"
	"fmt"
	"strings"
)

// FallbackRune is returned by Sample when the list holds no entries at all.
const FallbackRune = ' '

var (
	// ErrIndexOutOfRange is returned by FrequencyList.At for an index outside [0, Len()).
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrFrozen is returned when updating a list that belongs to a trained model.
	ErrFrozen = errors.New("frequency list is frozen")
)

// CharEntry is a single rune observed after a window, together with its
// statistics. Probability and Cumulative are zero until the owning list has
// been finalized.
type CharEntry struct {
	Char        rune
	Count       int
	Probability float64
	Cumulative  float64
}

func (e CharEntry) String() string {
	return fmt.Sprintf("(%q %d %g %g)", e.Char, e.Count, e.Probability, e.Cumulative)
}

// FrequencyList is an ordered multiset of CharEntry values. A rune seen for
// the first time goes to the head of the list; updating an existing rune
// never moves it. Iteration order is therefore most-recently-first-seen
// first.
//
// Entries are kept in first-seen order internally and read back to front.
type FrequencyList struct {
	entries   []CharEntry
	slots     map[rune]int
	total     int
	finalized bool
	frozen    bool
}

// NewFrequencyList returns an empty list.
func NewFrequencyList() *FrequencyList {
	return &FrequencyList{slots: make(map[rune]int)}
}

// IncrementOrInsert bumps the count of ch, or inserts it at the head with a
// count of 1. Any previously computed probabilities become stale. Lists of a
// trained model are frozen and return ErrFrozen.
func (l *FrequencyList) IncrementOrInsert(ch rune) error {
	if l.frozen {
		return ErrFrozen
	}
	if slot, ok := l.slots[ch]; ok {
		l.entries[slot].Count++
	} else {
		l.slots[ch] = len(l.entries)
		l.entries = append(l.entries, CharEntry{Char: ch, Count: 1})
	}
	l.total++
	l.finalized = false
	return nil
}

// Finalize computes Probability and Cumulative for every entry in iteration
// order. The total is fixed before any entry is touched.
func (l *FrequencyList) Finalize() {
	total := float64(l.total)
	var cumulative float64
	for i := len(l.entries) - 1; i >= 0; i-- {
		e := &l.entries[i]
		e.Probability = float64(e.Count) / total
		cumulative += e.Probability
		e.Cumulative = cumulative
	}
	l.finalized = true
}

// Finalized reports whether the probabilities reflect the current counts.
func (l *FrequencyList) Finalized() bool {
	return l.finalized
}

// Frozen reports whether the list rejects further updates.
func (l *FrequencyList) Frozen() bool {
	return l.frozen
}

// freeze finalizes the list and makes it read-only.
func (l *FrequencyList) freeze() {
	l.Finalize()
	l.frozen = true
}

// Sample maps a uniform draw u in [0, 1) onto a rune: the first entry, in
// iteration order, whose cumulative probability is strictly greater than u.
//
// If no entry qualifies (rounding at the tail, or the list was never
// finalized) the last entry in iteration order is returned, and FallbackRune
// when the list is empty.
func (l *FrequencyList) Sample(u float64) rune {
	if len(l.entries) == 0 {
		return FallbackRune
	}
	if l.finalized {
		for i := len(l.entries) - 1; i >= 0; i-- {
			if l.entries[i].Cumulative > u {
				return l.entries[i].Char
			}
		}
	}
	return l.entries[0].Char
}

// Find returns the entry for ch, if present.
func (l *FrequencyList) Find(ch rune) (CharEntry, bool) {
	slot, ok := l.slots[ch]
	if !ok {
		return CharEntry{}, false
	}
	return l.entries[slot], true
}

// At returns the entry at position i in iteration order.
func (l *FrequencyList) At(i int) (CharEntry, error) {
	if i < 0 || i >= len(l.entries) {
		return CharEntry{}, fmt.Errorf("frequency list position %d of %d: %w", i, len(l.entries), ErrIndexOutOfRange)
	}
	return l.entries[len(l.entries)-1-i], nil
}

// Len returns the number of distinct runes in the list.
func (l *FrequencyList) Len() int {
	return len(l.entries)
}

// Total returns the sum of all counts.
func (l *FrequencyList) Total() int {
	return l.total
}

// Entries returns a copy of the entries in iteration order.
func (l *FrequencyList) Entries() []CharEntry {
	out := make([]CharEntry, len(l.entries))
	for i := range l.entries {
		out[i] = l.entries[len(l.entries)-1-i]
	}
	return out
}

func (l *FrequencyList) String() string {
	if len(l.entries) == 0 {
		return ""
	}
	var sb strings.Builder
	for i := len(l.entries) - 1; i >= 0; i-- {
		if i != len(l.entries)-1 {
			sb.WriteByte(' ')
		}
		sb.WriteString(l.entries[i].String())
	}
	return sb.String()
}
