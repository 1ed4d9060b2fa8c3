package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Veraticus/vocamatch/internal/catalog"
	"github.com/Veraticus/vocamatch/internal/common"
	"github.com/Veraticus/vocamatch/internal/config"
	"github.com/Veraticus/vocamatch/internal/model"
	"github.com/schollz/progressbar/v3"
)

// loadCatalog reads the configured vocabulary catalog.
func loadCatalog() (*model.Catalog, error) {
	path := config.CatalogPath()
	if path == "" {
		return nil, common.NewUserError("no catalog configured; pass --catalog or set catalog.path", nil)
	}

	cat, err := catalog.Load(path)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("failed to load catalog %s", path), err)
	}
	return cat, nil
}

// printJSON writes an indented JSON rendering of v to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

// writeJSONFile writes an indented JSON rendering of v to a file.
func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// newProgressBar builds the progress bar used when processing document
// batches. Output goes to stderr so result JSON on stdout stays clean.
func newProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription(description),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)
}
