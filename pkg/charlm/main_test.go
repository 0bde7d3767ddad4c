package charlm

import (
	"context"
	"go/build"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// trainTestModel builds a seeded model over corpus and fails the test on any error.
func trainTestModel(t *testing.T, corpus string, windowLength int, opts ...Option) *Model {
	t.Helper()
	if len(opts) == 0 {
		opts = []Option{WithSeed(20)}
	}
	m, err := New(windowLength, opts...)
	if err != nil {
		t.Fatalf("New(%d) error = %v", windowLength, err)
	}
	if err := m.Train(context.Background(), corpus); err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	return m
}

// sequenceSource replays a fixed list of draws, cycling when exhausted.
type sequenceSource struct {
	draws []float64
	next  int
}

func (s *sequenceSource) Float64() float64 {
	v := s.draws[s.next%len(s.draws)]
	s.next++
	return v
}

const proseCorpus = `It was the best of times, it was the worst of times,
it was the age of wisdom, it was the age of foolishness,
it was the epoch of belief, it was the epoch of incredulity,
it was the season of Light, it was the season of Darkness.
`

var (
	benchmarkCorpus string
	corpusOnce      sync.Once
)

// createBenchmarkCorpus reads Go source files to create a corpus for benchmarking.
func createBenchmarkCorpus() string {
	corpusOnce.Do(func() {
		var sb strings.Builder
		goRoot := build.Default.GOROOT
		filesToRead := []string{
			filepath.Join(goRoot, "src/net/http/server.go"),
			filepath.Join(goRoot, "src/go/parser/parser.go"),
			filepath.Join(goRoot, "src/encoding/json/encode.go"),
		}

		for _, file := range filesToRead {
			content, err := os.ReadFile(file)
			if err != nil {
				benchmarkCorpus = strings.Repeat(proseCorpus, 64)
				return
			}
			sb.Write(content)
			sb.WriteString("\n")
		}
		benchmarkCorpus = sb.String()
	})
	return benchmarkCorpus
}
