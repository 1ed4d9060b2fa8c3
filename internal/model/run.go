package model

import "time"

// MatchRun is the provenance record persisted for one pipeline invocation.
// Only run metadata and the serialized result are stored; documents and
// catalogs themselves are never persisted.
type MatchRun struct {
	ID             string
	DocumentID     string
	DocumentLabel  string
	CatalogVersion string
	TopScore       float64
	Candidates     int
	Accepted       int
	Result         []byte
	CreatedAt      time.Time
}
