package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	mdwlog "github.com/msto63/khamseena/foundation/core/log"
	"github.com/msto63/khamseena/internal/history"
	"github.com/spf13/cobra"
)

var (
	historyPath   string
	historyFailed bool
	historyLimit  int
	historySince  time.Duration
	historyJSON   bool
	pruneOlder    time.Duration
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List and prune recorded runs",
	Long: `Works with the run history written by "khc analyze".

The database location is taken from [history].path in the config file.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest first",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a run with its diagnostics",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the recorded runs",
	RunE:  runHistoryStats,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old runs and compact the database",
	RunE:  runHistoryPrune,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyStatsCmd, historyPruneCmd)

	historyCmd.PersistentFlags().BoolVar(&historyJSON, "json", false, "Print JSON")

	historyListCmd.Flags().StringVar(&historyPath, "path", "", "Only runs of this source path")
	historyListCmd.Flags().BoolVar(&historyFailed, "failed", false, "Only failed runs")
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of runs")
	historyListCmd.Flags().DurationVar(&historySince, "since", 0, "Only runs newer than this (e.g. 24h)")

	historyPruneCmd.Flags().DurationVar(&pruneOlder, "older-than", 0, "Retention (default from config)")
}

func openHistory() (*history.SQLiteStore, error) {
	store, err := history.NewSQLiteStore(cfg.History.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	return store, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	filter := history.Filter{
		Path:       historyPath,
		FailedOnly: historyFailed,
		Limit:      historyLimit,
	}
	if historySince > 0 {
		filter.Since = time.Now().Add(-historySince)
	}

	runs, err := store.List(commandContext(cmd), filter)
	if err != nil {
		return err
	}
	if historyJSON {
		return printJSON(cmd, runs)
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tPATH\tSTAGE\tSTATUS\tERRORS\tWARNINGS")
	for _, run := range runs {
		status := "ok"
		if !run.Success {
			status = "failed"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%d\n",
			run.ID, run.Timestamp.Local().Format("2006-01-02 15:04:05"), run.Path, run.Stage,
			status, run.ParseErrors+run.Errors, run.Warnings)
	}
	return w.Flush()
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.Get(commandContext(cmd), args[0])
	if err != nil {
		return err
	}
	if historyJSON {
		return printJSON(cmd, run)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run:       %s\n", run.ID)
	fmt.Fprintf(out, "Time:      %s\n", run.Timestamp.Local().Format(time.RFC3339))
	fmt.Fprintf(out, "Path:      %s\n", run.Path)
	fmt.Fprintf(out, "SHA-256:   %s\n", run.SourceHash)
	fmt.Fprintf(out, "Stage:     %s\n", run.Stage)
	fmt.Fprintf(out, "Success:   %v\n", run.Success)
	fmt.Fprintf(out, "Tokens:    %d\n", run.Tokens)
	fmt.Fprintf(out, "Duration:  %s\n", run.Duration)
	for _, d := range run.Diagnostics {
		if d.Kind == history.KindFatal {
			fmt.Fprintf(out, "  fatal: %s\n", d.Message)
			continue
		}
		fmt.Fprintf(out, "  %d:%d: %s: %s\n", d.Line, d.Column, d.Kind, d.Message)
	}
	return nil
}

func runHistoryStats(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Stats(commandContext(cmd))
	if err != nil {
		return err
	}
	if historyJSON {
		return printJSON(cmd, stats)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Runs:   %d (%d failed)\n", stats.TotalRuns, stats.FailedRuns)
	for _, stage := range []string{"input", "lexical", "syntax", "semantic", "complete"} {
		if n := stats.ByStage[stage]; n > 0 {
			fmt.Fprintf(out, "  %-9s %d\n", stage, n)
		}
	}
	if !stats.LastRun.IsZero() {
		fmt.Fprintf(out, "Last:   %s\n", stats.LastRun.Local().Format(time.RFC3339))
	}
	return nil
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	retention := pruneOlder
	if retention <= 0 {
		retention = cfg.History.Retention.Duration
	}
	if retention <= 0 {
		return fmt.Errorf("no retention configured, pass --older-than")
	}

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := commandContext(cmd)
	deleted, err := store.Prune(ctx, retention)
	if err != nil {
		return err
	}
	if err := store.Vacuum(ctx); err != nil {
		printError(cmd, "vacuum failed", err)
	}

	logger.Info("History pruned", mdwlog.Fields{"deleted": deleted, "retention": retention.String()})
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d runs older than %s.\n", deleted, retention)
	return nil
}
