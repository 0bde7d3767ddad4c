package charlm

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Train builds the model from corpus in a single pass. Carriage returns are
// removed first; every other rune, newlines included, is an ordinary window
// or follower rune. Each position i in [0, len-windowLength) contributes one
// observation: the window runes[i:i+windowLength] followed by
// runes[i+windowLength]. All frequency lists are finalized and frozen once
// the pass is done.
//
// A corpus of windowLength runes or fewer leaves the index empty; that is not
// an error. A model can only be trained once.
func (m *Model) Train(ctx context.Context, corpus string) error {
	if m.trained {
		return ErrAlreadyTrained
	}

	runes := []rune(strings.ReplaceAll(corpus, "\r", ""))
	var observations int
	for i := 0; i+m.windowLength < len(runes); i++ {
		if err := m.index.observe(string(runes[i:i+m.windowLength]), runes[i+m.windowLength]); err != nil {
			return fmt.Errorf("failed to record window at rune %d: %w", i, err)
		}
		observations++
	}
	m.index.freeze()
	m.trained = true

	m.logger.InfoContext(ctx, "Training completed",
		slog.Int("window_length", m.windowLength),
		slog.Int("corpus_runes", len(runes)),
		slog.Int("observations", observations),
		slog.Int("windows", m.index.Len()),
	)
	return nil
}

// TrainFrom reads r to the end and trains on its contents.
func (m *Model) TrainFrom(ctx context.Context, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read corpus: %w", err)
	}
	return m.Train(ctx, string(data))
}
