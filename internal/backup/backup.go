// Package backup encodes the application state into a portable backup
// document and restores it, locally from a file or remotely through Google
// Drive.
package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"moneyflow/internal/flowerror"
	"moneyflow/internal/models"
)

// DocumentVersion is written into every exported backup.
const DocumentVersion = "1.0"

// Document is the exported backup payload. Transactions are mandatory;
// every other section is optional and, on restore, falls back to the value
// already in the target state.
type Document struct {
	Version             string                          `json:"version"`
	ExportDate          string                          `json:"exportDate"`
	Transactions        []models.Transaction            `json:"transactions"`
	Categories          models.CategorySet              `json:"categories,omitempty"`
	ImportProfiles      map[string]models.ImportProfile `json:"importProfiles,omitempty"`
	CategoryResolutions map[string]string               `json:"categoryResolutions,omitempty"`
}

// Export snapshots the given state as a backup document.
func Export(state *models.AppState) *Document {
	return &Document{
		Version:             DocumentVersion,
		ExportDate:          time.Now().UTC().Format(time.RFC3339),
		Transactions:        state.Transactions,
		Categories:          state.Categories,
		ImportProfiles:      state.ImportProfiles,
		CategoryResolutions: state.CategoryResolutions,
	}
}

// Decode validates and parses a backup document. The transactions section
// must be present and array-typed; anything else yields InvalidBackupError.
func Decode(data []byte) (*Document, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, &flowerror.InvalidBackupError{Reason: "not a JSON object"}
	}

	raw, ok := probe["transactions"]
	if !ok {
		return nil, &flowerror.InvalidBackupError{Reason: "missing transactions section"}
	}
	var transactions []models.Transaction
	if err := json.Unmarshal(raw, &transactions); err != nil {
		return nil, &flowerror.InvalidBackupError{Reason: "transactions section is not an array"}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &flowerror.InvalidBackupError{Reason: err.Error()}
	}
	return &doc, nil
}

// Apply restores a backup document over the given state. Transactions are
// always replaced; optional sections replace only when present in the
// document, otherwise the current value survives.
func Apply(state *models.AppState, doc *Document) {
	state.Transactions = doc.Transactions
	if state.Transactions == nil {
		state.Transactions = []models.Transaction{}
	}
	if doc.Categories != nil {
		state.Categories = doc.Categories
	}
	if doc.ImportProfiles != nil {
		state.ImportProfiles = doc.ImportProfiles
	}
	if doc.CategoryResolutions != nil {
		state.CategoryResolutions = doc.CategoryResolutions
	}
}

// WriteFile exports the state to a local JSON backup file.
func WriteFile(path string, state *models.AppState) error {
	data, err := json.MarshalIndent(Export(state), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding backup: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing backup: %w", err)
	}
	return nil
}

// ReadFile loads and validates a local JSON backup file.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading backup: %w", err)
	}
	return Decode(data)
}
