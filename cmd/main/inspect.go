package main

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newDumpCmd(a *app) *cobra.Command {
	f := &modelFlags{}
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Train on a corpus and print every window with its followers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			model, _, err := a.buildModel(cmd.Context(), f.resolve(cmd, a.config.Model))
			if err != nil {
				return err
			}
			return model.Dump(cmd.OutOrStdout())
		},
	}
	f.register(cmd)
	return cmd
}

func newStatsCmd(a *app) *cobra.Command {
	f := &modelFlags{}
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Train on a corpus and print model statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			model, _, err := a.buildModel(cmd.Context(), f.resolve(cmd, a.config.Model))
			if err != nil {
				return err
			}
			stats := model.Stats()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Window length: %d\n", stats.WindowLength)
			fmt.Fprintf(out, "Windows:       %s\n", humanize.Comma(int64(stats.Windows)))
			fmt.Fprintf(out, "Entries:       %s\n", humanize.Comma(int64(stats.Entries)))
			fmt.Fprintf(out, "Observations:  %s\n", humanize.Comma(int64(stats.Observations)))
			fmt.Fprintf(out, "Seeded:        %t\n", stats.Seeded)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newHistoryCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent generate runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			history, err := OpenHistory(a.config.App.HistoryDatabasePath, a.logger)
			if err != nil {
				return err
			}
			defer func(history *History) {
				_ = history.Close()
			}(history)

			runs, err := history.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded.")
				return nil
			}
			for _, run := range runs {
				seed := "random"
				if run.Seed != nil {
					seed = strconv.FormatInt(*run.Seed, 10)
				}
				fmt.Fprintf(out, "%s  %-14s window=%d seed=%s initial=%q length=%d/%d corpus=%s\n",
					shortID(run.ID),
					humanize.Time(run.CreatedAt),
					run.WindowLength,
					seed,
					run.InitialText,
					run.OutputLength,
					run.TargetLength+run.WindowLength,
					run.CorpusPath,
				)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "number of runs to show")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
