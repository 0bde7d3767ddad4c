package charlm

import (
	"context"
)

// GenerateStream runs the same procedure as Generate but delivers the output
// one rune at a time: first the seed window, then every sampled rune. The
// channel is closed once generation finishes or ctx is cancelled.
//
// Draws are taken from the model's source in the same order as Generate, so
// for a seeded model the collected stream equals Generate's result. The
// model must not be used by anything else until the channel is closed.
func (m *Model) GenerateStream(ctx context.Context, initialText string, targetLength int) <-chan rune {
	runeChan := make(chan rune)

	w, ok := m.startWalk(initialText, targetLength)

	go func() {
		defer close(runeChan)

		if !ok {
			for _, r := range initialText {
				select {
				case <-ctx.Done():
					return
				case runeChan <- r:
				}
			}
			return
		}

		for _, r := range w.output {
			select {
			case <-ctx.Done():
				return
			case runeChan <- r:
			}
		}

		for {
			select {
			case <-ctx.Done():
				m.logger.DebugContext(ctx, "Generation stream cancelled by context")
				return
			default:
			}

			r, ok := w.step()
			if !ok {
				break
			}
			select {
			case <-ctx.Done():
				return
			case runeChan <- r:
			}
		}
		w.logDone(ctx)
	}()

	return runeChan
}
