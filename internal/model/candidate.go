package model

import (
	"fmt"
	"sort"
	"time"
)

// ReasonType classifies the evidence behind a heuristic score increment.
type ReasonType string

// Reason types emitted by the heuristic scorer.
const (
	ReasonLexical  ReasonType = "lexical"
	ReasonInstance ReasonType = "instance"
	ReasonDatatype ReasonType = "datatype"
	ReasonUnit     ReasonType = "unitCompatibility"
	ReasonSemantic ReasonType = "semantic"
)

// Reason describes a single piece of evidence supporting a candidate.
type Reason struct {
	Type ReasonType `json:"type"`
	Text string     `json:"text"`
}

// ComponentScores is the breakdown of a candidate's combined score.
type ComponentScores struct {
	E float64 `json:"E"`
	R float64 `json:"R"`
	L float64 `json:"L"`
}

// CandidateProvenance records how a candidate's score was produced.
type CandidateProvenance struct {
	Timestamp      time.Time `json:"timestamp"`
	Method         string    `json:"method"`
	SimilarityScore float64  `json:"embeddingScore"`
	RuleScore      float64   `json:"ruleScore"`
	HeuristicScore float64   `json:"llmScore"`
}

// Candidate is one catalog term scored against a document. Candidates are
// created fresh per matching run and never mutated afterwards.
type Candidate struct {
	TermID      string              `json:"termId"`
	Label       string              `json:"label"`
	Score       float64             `json:"score"`
	Scores      ComponentScores     `json:"scores"`
	Reasons     []Reason            `json:"reasons"`
	Explanation string              `json:"explanation"`
	Provenance  CandidateProvenance `json:"provenance"`
}

// Validate ensures every score component is within bounds.
func (c *Candidate) Validate() error {
	if c.Label == "" {
		return fmt.Errorf("candidate label is required")
	}
	for name, s := range map[string]float64{
		"score": c.Score,
		"E":     c.Scores.E,
		"R":     c.Scores.R,
		"L":     c.Scores.L,
	} {
		if s < 0.0 || s > 1.0 {
			return fmt.Errorf("%s must be between 0.0 and 1.0, got %.2f", name, s)
		}
	}
	return nil
}

// Candidates supports score-ordered operations over a matching run's output.
type Candidates []Candidate

// Sort orders candidates by score descending. The sort is stable so ties
// keep catalog order.
func (c Candidates) Sort() {
	sort.SliceStable(c, func(i, j int) bool {
		return c[i].Score > c[j].Score
	})
}

// Above returns the candidates scoring strictly above the cutoff.
func (c Candidates) Above(cutoff float64) Candidates {
	kept := make(Candidates, 0, len(c))
	for _, cand := range c {
		if cand.Score > cutoff {
			kept = append(kept, cand)
		}
	}
	return kept
}

// MatchProvenance identifies the engine and catalog that produced a result.
type MatchProvenance struct {
	Engine         string `json:"matchingEngine"`
	CatalogVersion string `json:"catalogVersion"`
}

// MatchResult is the immutable output of one matching run.
type MatchResult struct {
	InputDescription string          `json:"inputDescription"`
	SampleValues     map[string]any  `json:"sampleValues"`
	Matches          Candidates      `json:"matches"`
	Timestamp        time.Time       `json:"timestamp"`
	Provenance       MatchProvenance `json:"provenance"`
}
