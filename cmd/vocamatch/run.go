package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/vocamatch/internal/catalog"
	"github.com/Veraticus/vocamatch/internal/config"
	"github.com/Veraticus/vocamatch/internal/model"
	"github.com/Veraticus/vocamatch/internal/pipeline"
	"github.com/Veraticus/vocamatch/internal/storage"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <document.json> [more documents...]",
		Short: "Run the full pipeline over documents",
		Long: `Match each document against the catalog, normalize accepted matches into
typed, namespaced properties, convert units to their canonical form, and
derive additional properties with confidence scores and calculation traces.

With a single document the normalized output is printed to stdout. With
several, each output is written next to its input as <name>.normalized.json.

Examples:
  vocamatch run --catalog catalog.json document.json
  vocamatch run --catalog catalog.json --threshold 0.6 document.json
  vocamatch run --catalog catalog.json --record docs/*.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: runPipeline,
	}

	cmd.Flags().Float64P("threshold", "t", config.DefaultThreshold, "minimum score to accept a match")
	cmd.Flags().Bool("record", false, "record run provenance in the history database")

	_ = viper.BindPFlag("pipeline.threshold", cmd.Flags().Lookup("threshold"))
	_ = viper.BindPFlag("pipeline.record", cmd.Flags().Lookup("record"))

	return cmd
}

func runPipeline(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	record := viper.GetBool("pipeline.record")

	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	pipe := pipeline.NewWithConfig(cat, pipeline.Config{Threshold: config.Threshold()})

	var db *storage.SQLiteStorage
	if record {
		db, err = storage.NewSQLiteStorage(config.DBPath())
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
	}

	single := len(args) == 1
	var bar *progressbar.ProgressBar
	if !single {
		bar = newProgressBar(len(args), "Running pipeline...")
	}

	for _, path := range args {
		if err := ctx.Err(); err != nil {
			return err
		}

		doc, err := catalog.LoadDocument(path)
		if err != nil {
			return err
		}

		normalized, result, err := pipe.Run(doc)
		if err != nil {
			if single {
				return fmt.Errorf("pipeline failed for %s: %w", path, err)
			}
			slog.Warn("Skipping document", "path", path, "error", err)
			_ = bar.Add(1)
			continue
		}

		if record {
			if err := recordRun(ctx, db, cat, doc, normalized, result); err != nil {
				return err
			}
		}

		if single {
			return printJSON(normalized)
		}
		out := strings.TrimSuffix(path, ".json") + ".normalized.json"
		if err := writeJSONFile(out, normalized); err != nil {
			return err
		}
		_ = bar.Add(1)
	}
	return nil
}

func recordRun(ctx context.Context, db *storage.SQLiteStorage, cat *model.Catalog, doc model.Document, normalized model.Normalized, result *model.MatchResult) error {
	blob, err := json.Marshal(normalized)
	if err != nil {
		return fmt.Errorf("failed to serialize result: %w", err)
	}

	var topScore float64
	if len(result.Matches) > 0 {
		topScore = result.Matches[0].Score
	}

	accepted := 0
	if info, ok := normalized[model.Key("normalization")].(model.NormalizationInfo); ok {
		accepted = info.AppliedMatches
	}

	label, _ := doc["label"].(string)
	run := &model.MatchRun{
		ID:             uuid.NewString(),
		DocumentID:     doc.ID(),
		DocumentLabel:  label,
		CatalogVersion: cat.Version,
		TopScore:       topScore,
		Candidates:     len(result.Matches),
		Accepted:       accepted,
		Result:         blob,
		CreatedAt:      time.Now().UTC(),
	}

	if err := db.SaveRun(ctx, run); err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	slog.Debug("Recorded run", "id", run.ID, "document", run.DocumentID)
	return nil
}
