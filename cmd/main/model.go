package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/CTAG07/lexigen/pkg/charlm"
	"github.com/spf13/cobra"
)

// positionalSeed is the seed used by the positional "fixed" mode.
const positionalSeed = 20

var errNoCorpus = errors.New("no corpus given: pass --corpus or set model_config.corpus_path")

// modelSettings is everything needed to build and train a model.
type modelSettings struct {
	CorpusPath   string
	WindowLength int
	Seed         *int64
}

// modelFlags are the flags shared by every command that trains a model.
type modelFlags struct {
	corpusPath   string
	windowLength int
	seed         int64
	random       bool
}

func (f *modelFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.corpusPath, "corpus", "", "path to the training corpus")
	cmd.Flags().IntVar(&f.windowLength, "window", 0, "window length in characters")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "seed for reproducible output")
	cmd.Flags().BoolVar(&f.random, "random", false, "ignore any configured seed and draw fresh entropy")
	cmd.MarkFlagsMutuallyExclusive("seed", "random")
}

// resolve starts from the config file and applies only the flags the user set.
func (f *modelFlags) resolve(cmd *cobra.Command, cfg *ModelConfig) modelSettings {
	s := modelSettings{
		CorpusPath:   cfg.CorpusPath,
		WindowLength: cfg.WindowLength,
		Seed:         cfg.Seed,
	}
	if cmd.Flags().Changed("corpus") {
		s.CorpusPath = f.corpusPath
	}
	if cmd.Flags().Changed("window") {
		s.WindowLength = f.windowLength
	}
	if cmd.Flags().Changed("seed") {
		seed := f.seed
		s.Seed = &seed
	}
	if f.random {
		s.Seed = nil
	}
	return s
}

// buildModel reads the corpus file and returns a trained model along with
// the first window of the corpus.
func (a *app) buildModel(ctx context.Context, s modelSettings) (*charlm.Model, string, error) {
	if s.CorpusPath == "" {
		return nil, "", errNoCorpus
	}

	opts := []charlm.Option{charlm.WithLogger(a.logger)}
	if s.Seed != nil {
		opts = append(opts, charlm.WithSeed(*s.Seed))
	}
	model, err := charlm.New(s.WindowLength, opts...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create model: %w", err)
	}

	data, err := os.ReadFile(s.CorpusPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read corpus: %w", err)
	}
	corpus := string(data)
	if err = model.Train(ctx, corpus); err != nil {
		return nil, "", fmt.Errorf("failed to train on %s: %w", s.CorpusPath, err)
	}
	return model, leadingWindow(corpus, s.WindowLength), nil
}

// leadingWindow returns the first n runes of corpus, ignoring carriage
// returns the same way training does.
func leadingWindow(corpus string, n int) string {
	runes := []rune(strings.ReplaceAll(corpus, "\r", ""))
	if len(runes) < n {
		return string(runes)
	}
	return string(runes[:n])
}
