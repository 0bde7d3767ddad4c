package charlm

import (
	"slices"
)

// WindowIndex maps every window seen during training to the runes that
// followed it.
type WindowIndex struct {
	lists map[string]*FrequencyList
}

func newWindowIndex() *WindowIndex {
	return &WindowIndex{lists: make(map[string]*FrequencyList)}
}

// Lookup returns the frequency list for a window key. Lists of a trained
// model are frozen.
func (w *WindowIndex) Lookup(key string) (*FrequencyList, bool) {
	l, ok := w.lists[key]
	return l, ok
}

// observe records that follower came after key, creating the list on first sight.
func (w *WindowIndex) observe(key string, follower rune) error {
	l, ok := w.lists[key]
	if !ok {
		l = NewFrequencyList()
		w.lists[key] = l
	}
	return l.IncrementOrInsert(follower)
}

// freeze finalizes every list. The index is read-only afterwards.
func (w *WindowIndex) freeze() {
	for _, l := range w.lists {
		l.freeze()
	}
}

// Len returns the number of distinct windows.
func (w *WindowIndex) Len() int {
	return len(w.lists)
}

// Keys returns every window key in sorted order.
func (w *WindowIndex) Keys() []string {
	keys := make([]string, 0, len(w.lists))
	for k := range w.lists {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Observations returns the number of (window, follower) pairs recorded.
func (w *WindowIndex) Observations() int {
	var n int
	for _, l := range w.lists {
		n += l.Total()
	}
	return n
}

// Entries returns the number of distinct (window, follower) pairs.
func (w *WindowIndex) Entries() int {
	var n int
	for _, l := range w.lists {
		n += l.Len()
	}
	return n
}
