// Package pipeline wires the matching, normalization, and derivation stages
// into a single context object constructed once and passed by reference,
// replacing hidden shared state with explicit dependencies.
package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/vocamatch/internal/derive"
	"github.com/Veraticus/vocamatch/internal/matching"
	"github.com/Veraticus/vocamatch/internal/model"
	"github.com/Veraticus/vocamatch/internal/normalize"
)

// Config holds configuration options for the pipeline.
type Config struct {
	Threshold float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Threshold: normalize.DefaultThreshold}
}

// Pipeline runs the full match -> normalize -> derive chain over documents.
// All stages are pure computations over the shared read-only catalog, so a
// single pipeline may be used concurrently against different documents.
type Pipeline struct {
	engine     *matching.Engine
	normalizer *normalize.Normalizer
	deriver    *derive.Engine
	threshold  float64
}

// New creates a pipeline over the catalog with the default configuration.
func New(catalog *model.Catalog) *Pipeline {
	return NewWithConfig(catalog, DefaultConfig())
}

// NewWithConfig creates a pipeline with custom configuration.
func NewWithConfig(catalog *model.Catalog, config Config) *Pipeline {
	return &Pipeline{
		engine:     matching.NewEngine(catalog),
		normalizer: normalize.New(catalog),
		deriver:    derive.NewEngine(),
		threshold:  config.Threshold,
	}
}

// Threshold returns the configured acceptance threshold.
func (p *Pipeline) Threshold() float64 {
	return p.threshold
}

// Match runs only the matching stage.
func (p *Pipeline) Match(doc model.Document) (*model.MatchResult, error) {
	return p.engine.MatchDocument(doc)
}

// Run executes the full pipeline: matching, normalization, canonical unit
// conversion, and derivation. The returned document carries the complete
// provenance trail of every stage.
func (p *Pipeline) Run(doc model.Document) (model.Normalized, *model.MatchResult, error) {
	result, err := p.engine.MatchDocument(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("matching failed: %w", err)
	}

	normalized := p.normalizer.Normalize(doc, result.Matches, p.threshold)
	normalized = p.normalizer.NormalizeUnits(normalized)

	var evidence []model.MappingEvidence
	if info, ok := normalized[model.Key("normalization")].(model.NormalizationInfo); ok {
		evidence = info.MappingEvidence
	}

	normalized = p.deriver.Apply(normalized, doc, evidence)

	slog.Info("pipeline complete",
		"document", doc.ID(),
		"candidates", len(result.Matches),
		"accepted", len(evidence),
		"threshold", p.threshold)

	return normalized, result, nil
}
