package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/vocamatch/internal/catalog"
	"github.com/Veraticus/vocamatch/internal/matching"
	"github.com/spf13/cobra"
)

func matchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match <document.json> [more documents...]",
		Short: "Score catalog terms against documents",
		Long: `Run only the matching stage: score every catalog term against each
document and print the ranked candidates with score breakdowns and reasons.

With a single document the result is printed to stdout. With several, each
result is written next to its input as <name>.matches.json.

Examples:
  vocamatch match --catalog catalog.json document.json
  vocamatch match --catalog catalog.json docs/*.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: runMatch,
	}
}

func runMatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	engine := matching.NewEngine(cat)

	if len(args) == 1 {
		doc, err := catalog.LoadDocument(args[0])
		if err != nil {
			return err
		}
		result, err := engine.MatchDocument(doc)
		if err != nil {
			return fmt.Errorf("matching %s: %w", args[0], err)
		}
		return printJSON(result)
	}

	bar := newProgressBar(len(args), "Matching documents...")
	for _, path := range args {
		if err := ctx.Err(); err != nil {
			return err
		}

		doc, err := catalog.LoadDocument(path)
		if err != nil {
			return err
		}
		result, err := engine.MatchDocument(doc)
		if err != nil {
			slog.Warn("Skipping document", "path", path, "error", err)
			_ = bar.Add(1)
			continue
		}

		out := strings.TrimSuffix(path, ".json") + ".matches.json"
		if err := writeJSONFile(out, result); err != nil {
			return err
		}
		_ = bar.Add(1)
	}
	return nil
}
