// Package catalog loads vocabulary catalogs and input documents from disk.
// Catalogs are loaded once per epoch and treated as immutable afterwards.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Veraticus/vocamatch/internal/common"
	"github.com/Veraticus/vocamatch/internal/model"
)

// catalogFile is the on-disk shape of a vocabulary catalog.
type catalogFile struct {
	Version string       `json:"version"`
	Terms   []model.Term `json:"terms"`
}

// Load reads and validates a vocabulary catalog from a JSON file.
func Load(path string) (*model.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidCatalog, err)
	}

	cat, err := model.NewCatalog(file.Version, file.Terms)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidCatalog, err)
	}
	return cat, nil
}

// LoadDocument reads an input document from a JSON file.
func LoadDocument(path string) (model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document file: %w", err)
	}

	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}
	return doc, nil
}
