// Package matching scores every catalog term against an input document and
// returns ranked, provenance-tagged candidates.
package matching

import (
	"log/slog"
	"time"

	"github.com/Veraticus/vocamatch/internal/common"
	"github.com/Veraticus/vocamatch/internal/lexical"
	"github.com/Veraticus/vocamatch/internal/model"
)

// Engine identification recorded in result provenance.
const (
	engineVersion = "MatchingEngine-v1.0"
	scoreMethod   = "text-similarity + rules + heuristic"
)

// Scoring configuration. Weights are fixed, not learned.
const (
	weightSimilarity = 0.45
	weightRules      = 0.25
	weightHeuristic  = 0.30

	candidateCutoff = 0.3
	firstTokenBoost = 0.2
)

// Engine matches documents against a read-only catalog. Safe for concurrent
// use across documents.
type Engine struct {
	catalog *model.Catalog
}

// NewEngine creates a matching engine over the given catalog.
func NewEngine(catalog *model.Catalog) *Engine {
	return &Engine{catalog: catalog}
}

// MatchDocument scores every catalog term against the document and returns
// the candidates above the cutoff, ordered by score descending. Documents
// without a @context description are rejected before any scoring.
func (e *Engine) MatchDocument(doc model.Document) (*model.MatchResult, error) {
	description := doc.Description()
	if description == "" {
		return nil, common.ErrNoDescription
	}

	samples := doc.SampleValues()

	candidates := make(model.Candidates, 0, len(e.catalog.Terms))
	for i := range e.catalog.Terms {
		candidates = append(candidates, e.scoreCandidate(&e.catalog.Terms[i], description, samples, doc))
	}
	candidates.Sort()

	matches := candidates.Above(candidateCutoff)

	slog.Debug("matching complete",
		"catalog_version", e.catalog.Version,
		"terms", len(e.catalog.Terms),
		"matches", len(matches))

	return &model.MatchResult{
		InputDescription: description,
		SampleValues:     samples,
		Matches:          matches,
		Timestamp:        time.Now().UTC(),
		Provenance: model.MatchProvenance{
			Engine:         engineVersion,
			CatalogVersion: e.catalog.Version,
		},
	}, nil
}

// scoreCandidate combines the three independent signals for one term.
func (e *Engine) scoreCandidate(term *model.Term, description string, samples map[string]any, doc model.Document) model.Candidate {
	similarity := descriptionSimilarity(description, term.Description)
	rules := ruleScore(term, samples, doc)
	heuristic, reasons, explanation := heuristicScore(term, description, samples)

	score := clamp01(weightSimilarity*similarity + weightRules*rules + weightHeuristic*heuristic)

	return model.Candidate{
		TermID: term.ID,
		Label:  term.Label,
		Score:  score,
		Scores: model.ComponentScores{
			E: similarity,
			R: rules,
			L: heuristic,
		},
		Reasons:     reasons,
		Explanation: explanation,
		Provenance: model.CandidateProvenance{
			SimilarityScore: similarity,
			RuleScore:       rules,
			HeuristicScore:  heuristic,
			Timestamp:       time.Now().UTC(),
			Method:          scoreMethod,
		},
	}
}

// descriptionSimilarity is the Jaccard similarity of the two tokenized texts,
// boosted when the document tokens contain the first token of the term
// description. The first-token check is deliberately narrow; broadening it
// would shift scores downstream stages depend on.
func descriptionSimilarity(docText, termText string) float64 {
	docTokens := lexical.Tokenize(docText)
	termTokens := lexical.Tokenize(termText)

	score := lexical.Jaccard(docTokens, termTokens)
	if len(termTokens) > 0 && containsToken(docTokens, termTokens[0]) {
		score += firstTokenBoost
	}
	return min1(score)
}

func containsToken(tokens []string, want string) bool {
	for _, t := range tokens {
		if t == want {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	return min1(v)
}

func min1(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}
