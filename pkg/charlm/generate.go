package charlm

import (
	"context"
	"log/slog"
)

// walk holds the state of one generation run: the runes produced so far and
// the offset of the window to look up next.
type walk struct {
	m      *Model
	output []rune
	offset int
	limit  int
	miss   string
}

// startWalk validates the seed text. It reports false when the text is shorter
// than a window or its leading window was never seen in training.
func (m *Model) startWalk(initialText string, targetLength int) (*walk, bool) {
	runes := []rune(initialText)
	if len(runes) < m.windowLength {
		return nil, false
	}
	if _, ok := m.index.Lookup(string(runes[:m.windowLength])); !ok {
		return nil, false
	}
	limit := targetLength + m.windowLength
	output := make([]rune, m.windowLength, max(limit, m.windowLength))
	copy(output, runes[:m.windowLength])
	return &walk{m: m, output: output, limit: limit}, true
}

// step samples one rune from the current window and advances the window by
// one position. It reports false once the target length is reached or the
// window has no entry in the index.
func (w *walk) step() (rune, bool) {
	if len(w.output) >= w.limit {
		return 0, false
	}
	key := string(w.output[w.offset : w.offset+w.m.windowLength])
	l, ok := w.m.index.Lookup(key)
	if !ok {
		w.miss = key
		return 0, false
	}
	r := l.Sample(w.m.rng.Float64())
	w.output = append(w.output, r)
	w.offset++
	return r, true
}

// Generate extends initialText one rune at a time until the output holds
// targetLength+WindowLength() runes or the trailing window is unknown.
//
// Only the first WindowLength() runes of initialText seed the output. If
// initialText is shorter than a window, or that leading window was never
// seen in training, initialText is returned unchanged.
func (m *Model) Generate(ctx context.Context, initialText string, targetLength int) string {
	w, ok := m.startWalk(initialText, targetLength)
	if !ok {
		m.logger.DebugContext(ctx, "Generation skipped, seed window unknown",
			slog.Int("window_length", m.windowLength),
			slog.Int("initial_runes", len([]rune(initialText))),
		)
		return initialText
	}

	for {
		if _, ok := w.step(); !ok {
			break
		}
	}
	w.logDone(ctx)
	return string(w.output)
}

func (w *walk) logDone(ctx context.Context) {
	if w.miss != "" {
		w.m.logger.DebugContext(ctx, "Generation terminated due to unknown window",
			slog.String("last_window", w.miss),
			slog.Int("generated_length", len(w.output)),
		)
		return
	}
	w.m.logger.DebugContext(ctx, "Generation terminated by reaching target length",
		slog.Int("target_length", w.limit-w.m.windowLength),
		slog.Int("generated_length", len(w.output)),
	)
}
