package charlm

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

var (
	// ErrInvalidWindowLength is returned by New when the window length is not positive.
	ErrInvalidWindowLength = errors.New("window length must be positive")
	// ErrAlreadyTrained is returned when Train is called on a model that has already been trained.
	ErrAlreadyTrained = errors.New("model has already been trained")
)

// Model is a character-level n-gram model: a window length, the index learned
// from a corpus, and the random source used for generation.
type Model struct {
	windowLength int
	index        *WindowIndex
	rng          RandSource
	seeded       bool
	trained      bool
	logger       *slog.Logger
}

// Option configures a Model at construction time.
type Option func(*Model)

// WithSeed makes generation reproducible: two models built with the same
// seed and trained on the same corpus produce the same text for the same
// sequence of calls.
func WithSeed(seed int64) Option {
	return func(m *Model) {
		m.rng = newSeededSource(seed)
		m.seeded = true
	}
}

// WithRandSource installs a caller-provided random source.
func WithRandSource(src RandSource) Option {
	return func(m *Model) {
		if src != nil {
			m.rng = src
			m.seeded = true
		}
	}
}

// WithLogger sets the logger at construction time. See SetLogger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) { m.SetLogger(logger) }
}

// New creates an empty model for the given window length. Without WithSeed
// or WithRandSource the model draws from a freshly seeded source and its
// output differs from run to run.
func New(windowLength int, opts ...Option) (*Model, error) {
	if windowLength <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWindowLength, windowLength)
	}
	m := &Model{
		windowLength: windowLength,
		index:        newWindowIndex(),
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		m.rng = newEntropySource()
	}
	return m, nil
}

// SetLogger sets the logger for the Model. By default, all logs are discarded.
func (m *Model) SetLogger(logger *slog.Logger) {
	if logger != nil {
		m.logger = logger
	}
}

// WindowLength returns the number of runes in every window key.
func (m *Model) WindowLength() int {
	return m.windowLength
}

// Seeded reports whether the model was built with a deterministic source.
func (m *Model) Seeded() bool {
	return m.seeded
}

// Trained reports whether Train has completed.
func (m *Model) Trained() bool {
	return m.trained
}

// Index returns the learned window index. Its lists are frozen once the
// model is trained.
func (m *Model) Index() *WindowIndex {
	return m.index
}

// Dump writes one line per window, in sorted key order, listing the window's
// entries in iteration order.
func (m *Model) Dump(w io.Writer) error {
	for _, key := range m.index.Keys() {
		l, _ := m.index.Lookup(key)
		if _, err := fmt.Fprintf(w, "%s : %s\n", strconv.Quote(key), l); err != nil {
			return fmt.Errorf("failed to write window %q: %w", key, err)
		}
	}
	return nil
}

func (m *Model) String() string {
	var sb strings.Builder
	_ = m.Dump(&sb)
	return sb.String()
}
