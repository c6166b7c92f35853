// Package store persists the whole application state as a single JSON
// document in the data directory, and loads optional category keyword rules
// from a YAML seed file.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"moneyflow/internal/logging"
	"moneyflow/internal/models"
)

const stateFilename = "state.json"

// StateStore loads and saves the application state document.
type StateStore struct {
	dir    string
	seed   models.CategorySet
	logger logging.Logger
}

// NewStateStore creates a store rooted at the given data directory.
func NewStateStore(dir string, logger logging.Logger) *StateStore {
	if logger == nil {
		logger = logging.NewMockLogger()
	}
	return &StateStore{dir: dir, logger: logger}
}

// SetSeed overrides the category rules a fresh state starts with. Existing
// persisted states are never touched by the seed.
func (s *StateStore) SetSeed(categories models.CategorySet) {
	s.seed = categories
}

// Path returns the state document location.
func (s *StateStore) Path() string {
	return filepath.Join(s.dir, stateFilename)
}

// Load reads the persisted state. A missing file is not an error: a fresh
// state seeded with the default categories is returned instead.
func (s *StateStore) Load() (*models.AppState, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("no persisted state, starting fresh",
				logging.Field{Key: "path", Value: s.Path()})
			state := models.NewAppState()
			if s.seed != nil {
				state.Categories = s.seed
			}
			return state, nil
		}
		return nil, fmt.Errorf("reading state: %w", err)
	}

	var state models.AppState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parsing state: %w", err)
	}
	normalize(&state)

	s.logger.Debug("loaded state",
		logging.Field{Key: "transactions", Value: len(state.Transactions)},
		logging.Field{Key: "categories", Value: len(state.Categories)})
	return &state, nil
}

// Save writes the full state document atomically enough for a single-session
// CLI: to a temp file in the same directory, then renamed over the target.
func (s *StateStore) Save(state *models.AppState) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	tmp := s.Path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	if err := os.Rename(tmp, s.Path()); err != nil {
		return fmt.Errorf("replacing state: %w", err)
	}

	s.logger.Debug("saved state",
		logging.Field{Key: "path", Value: s.Path()},
		logging.Field{Key: "bytes", Value: len(data)})
	return nil
}

// Reset removes the persisted state document.
func (s *StateStore) Reset() error {
	err := os.Remove(s.Path())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing state: %w", err)
	}
	return nil
}

// normalize fills nil collections so callers never nil-check.
func normalize(state *models.AppState) {
	if state.Transactions == nil {
		state.Transactions = []models.Transaction{}
	}
	if state.Categories == nil {
		state.Categories = models.DefaultCategories()
	}
	if state.ImportProfiles == nil {
		state.ImportProfiles = map[string]models.ImportProfile{}
	}
	if state.CategoryResolutions == nil {
		state.CategoryResolutions = map[string]string{}
	}
}
