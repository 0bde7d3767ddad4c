package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/CTAG07/lexigen/pkg/charlm"
	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
)

type generateFlags struct {
	modelFlags
	initialText string
	length      int
	stream      bool
	outPath     string
	noHistory   bool
}

func newGenerateCmd(a *app) *cobra.Command {
	f := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate [WINDOW INITIAL LENGTH random|fixed CORPUS]",
		Short: "Train on a corpus and generate text",
		Long: `Train a model on the corpus and extend the initial text one character at a time.

The five positional arguments are an alternative to the flags: "fixed" uses
seed 20, "random" draws fresh entropy.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 5 {
				return fmt.Errorf("accepts 0 or 5 args, received %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd, f, args)
		},
	}

	f.register(cmd)
	cmd.Flags().StringVar(&f.initialText, "initial", "", "text to start from; defaults to the corpus' first window")
	cmd.Flags().IntVar(&f.length, "length", 0, "number of characters to generate after the initial window")
	cmd.Flags().BoolVar(&f.stream, "stream", false, "print characters as they are generated")
	cmd.Flags().StringVar(&f.outPath, "out", "", "write the result to this file instead of stdout")
	cmd.Flags().BoolVar(&f.noHistory, "no-history", false, "do not record this run")
	cmd.MarkFlagsMutuallyExclusive("stream", "out")

	return cmd
}

// generateRequest is a fully resolved generate invocation.
type generateRequest struct {
	modelSettings
	InitialText string
	Length      int
}

func (a *app) resolveGenerate(cmd *cobra.Command, f *generateFlags, args []string) (generateRequest, error) {
	req := generateRequest{
		modelSettings: f.resolve(cmd, a.config.Model),
		InitialText:   a.config.Model.InitialText,
		Length:        a.config.Model.GenerateLength,
	}
	if cmd.Flags().Changed("initial") {
		req.InitialText = f.initialText
	}
	if cmd.Flags().Changed("length") {
		req.Length = f.length
	}

	if len(args) == 5 {
		window, err := strconv.Atoi(args[0])
		if err != nil {
			return req, fmt.Errorf("invalid window length %q: %w", args[0], err)
		}
		length, err := strconv.Atoi(args[2])
		if err != nil {
			return req, fmt.Errorf("invalid length %q: %w", args[2], err)
		}
		req.WindowLength = window
		req.InitialText = args[1]
		req.Length = length
		req.CorpusPath = args[4]
		if args[3] == "random" {
			req.Seed = nil
		} else {
			seed := int64(positionalSeed)
			req.Seed = &seed
		}
	}

	if req.Length < 0 {
		return req, fmt.Errorf("length must not be negative, got %d", req.Length)
	}
	return req, nil
}

func (a *app) runGenerate(cmd *cobra.Command, f *generateFlags, args []string) error {
	ctx := cmd.Context()

	req, err := a.resolveGenerate(cmd, f, args)
	if err != nil {
		return err
	}
	model, leading, err := a.buildModel(ctx, req.modelSettings)
	if err != nil {
		return err
	}

	if req.InitialText == "" {
		req.InitialText = leading
	}

	var text string
	if f.stream {
		text, err = streamTo(ctx, cmd, model, req)
		if err != nil {
			return err
		}
	} else {
		text = model.Generate(ctx, req.InitialText, req.Length)
		if f.outPath != "" {
			if err = atomic.WriteFile(f.outPath, strings.NewReader(text)); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			a.logger.InfoContext(ctx, "Output written", slog.String("path", f.outPath))
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), text)
		}
	}

	if a.config.App.RecordHistory && !f.noHistory {
		if err = a.recordRun(ctx, req, model, text); err != nil {
			// History is best effort.
			a.logger.WarnContext(ctx, "Failed to record run", slog.Any("error", err))
		}
	}
	return nil
}

// streamTo prints runes as the model produces them and returns the full text.
func streamTo(ctx context.Context, cmd *cobra.Command, model *charlm.Model, req generateRequest) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	out := bufio.NewWriter(cmd.OutOrStdout())
	var sb strings.Builder
	for r := range model.GenerateStream(ctx, req.InitialText, req.Length) {
		sb.WriteRune(r)
		if _, err := out.WriteRune(r); err != nil {
			return "", fmt.Errorf("failed to write output: %w", err)
		}
		if r == '\n' {
			if err := out.Flush(); err != nil {
				return "", fmt.Errorf("failed to write output: %w", err)
			}
		}
	}
	if err := ctx.Err(); err != nil {
		if flushErr := out.Flush(); flushErr != nil {
			return "", errors.Join(err, fmt.Errorf("failed to write output: %w", flushErr))
		}
		return "", err
	}
	if err := out.WriteByte('\n'); err != nil {
		return "", fmt.Errorf("failed to write output: %w", err)
	}
	if err := out.Flush(); err != nil {
		return "", fmt.Errorf("failed to write output: %w", err)
	}
	return sb.String(), nil
}

func (a *app) recordRun(ctx context.Context, req generateRequest, model *charlm.Model, text string) error {
	history, err := OpenHistory(a.config.App.HistoryDatabasePath, a.logger)
	if err != nil {
		return err
	}
	defer func(history *History) {
		_ = history.Close()
	}(history)

	stats := model.Stats()
	return history.RecordRun(ctx, &Run{
		CorpusPath:   req.CorpusPath,
		WindowLength: req.WindowLength,
		Seed:         req.Seed,
		InitialText:  req.InitialText,
		TargetLength: req.Length,
		OutputLength: len([]rune(text)),
		Windows:      stats.Windows,
		Observations: stats.Observations,
	})
}
