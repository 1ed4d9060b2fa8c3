package main

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/Veraticus/vocamatch/internal/config"
	"github.com/Veraticus/vocamatch/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded pipeline runs",
	}

	cmd.AddCommand(historyListCmd())
	return cmd
}

func historyListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent pipeline runs",
		RunE:  runHistoryList,
	}

	cmd.Flags().IntP("limit", "n", 20, "maximum number of runs to show")
	_ = viper.BindPFlag("history.limit", cmd.Flags().Lookup("limit"))

	return cmd
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	limit := viper.GetInt("history.limit")

	db, err := storage.NewSQLiteStorage(config.DBPath())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("Failed to close database", "error", closeErr)
		}
	}()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	runs, err := db.ListRuns(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No recorded runs.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tDOCUMENT\tCATALOG\tTOP SCORE\tACCEPTED/CANDIDATES\tID")
	for _, run := range runs {
		doc := run.DocumentLabel
		if doc == "" {
			doc = run.DocumentID
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%d/%d\t%s\n",
			run.CreatedAt.Format("2006-01-02 15:04"), doc, run.CatalogVersion,
			run.TopScore, run.Accepted, run.Candidates, run.ID)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}
