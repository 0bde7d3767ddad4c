package charlm

// ModelStats holds aggregated statistics for a trained model.
type ModelStats struct {
	WindowLength int  // The number of runes per window
	Windows      int  // The number of distinct windows seen in the corpus
	Entries      int  // The number of distinct window->rune links
	Observations int  // The number of training updates; corpus length minus window length
	Seeded       bool // Whether generation is reproducible
}

// Stats returns a snapshot of the model's statistics.
func (m *Model) Stats() ModelStats {
	return ModelStats{
		WindowLength: m.windowLength,
		Windows:      m.index.Len(),
		Entries:      m.index.Entries(),
		Observations: m.index.Observations(),
		Seeded:       m.seeded,
	}
}
