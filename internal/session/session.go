// Package session ties the pipeline together: it owns the loaded application
// state, runs imports end to end and persists every mutation back through
// the store.
package session

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"moneyflow/internal/categorizer"
	"moneyflow/internal/flowerror"
	"moneyflow/internal/logging"
	"moneyflow/internal/models"
	"moneyflow/internal/paypal"
	"moneyflow/internal/profile"
	"moneyflow/internal/projector"
	"moneyflow/internal/reconcile"
	"moneyflow/internal/spreadsheet"
	"moneyflow/internal/store"
)

// Session is the single-owner handle over the application state. All methods
// that mutate state persist it before returning; there is no separate save
// step to forget.
type Session struct {
	state    *models.AppState
	store    *store.StateStore
	registry *profile.Registry
	engine   *reconcile.Engine
	logger   logging.Logger
}

// New loads the persisted state and builds the profile registry: built-ins
// first, then the user-defined profiles saved in the state.
func New(st *store.StateStore, logger logging.Logger) (*Session, error) {
	if logger == nil {
		logger = logging.NewMockLogger()
	}

	state, err := st.Load()
	if err != nil {
		return nil, err
	}

	registry := profile.NewRegistry()
	for _, key := range sortedKeys(state.ImportProfiles) {
		registry.Register(key, state.ImportProfiles[key])
	}

	return &Session{
		state:    state,
		store:    st,
		registry: registry,
		engine:   reconcile.NewEngine(logger),
		logger:   logger,
	}, nil
}

func sortedKeys(m map[string]models.ImportProfile) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// State exposes the loaded state read-only; mutations go through methods.
func (s *Session) State() *models.AppState {
	return s.state
}

// Registry exposes the profile registry.
func (s *Session) Registry() *profile.Registry {
	return s.registry
}

func (s *Session) matcher() *categorizer.Matcher {
	return categorizer.NewMatcher(s.state.Categories, s.state.CategoryResolutions, s.logger)
}

func (s *Session) save() error {
	reconcile.SortDescending(s.state.Transactions)
	return s.store.Save(s.state)
}

// ImportBatch is a classified import awaiting commitment. When
// Result.Conflicts is empty the caller can commit immediately; otherwise it
// must supply one decision per conflict.
type ImportBatch struct {
	Path       string
	Sheet      *spreadsheet.Sheet
	ProfileKey string
	Profile    models.ImportProfile
	Result     *reconcile.Result
}

// PrepareImport reads a statement file, auto-detects its profile and
// classifies the projected transactions against the current set. Nothing is
// persisted. A NoProfileError carries the detected columns so the caller can
// drive manual mapping.
func (s *Session) PrepareImport(path string) (*ImportBatch, error) {
	sheet, err := spreadsheet.ReadFile(path, s.logger)
	if err != nil {
		return nil, err
	}

	key, prof, ok := s.registry.Detect(sheet.Columns)
	if !ok {
		return nil, &flowerror.NoProfileError{Columns: sheet.Columns}
	}
	s.logger.Info("detected import profile",
		logging.Field{Key: "profile", Value: key},
		logging.Field{Key: "file", Value: path})

	return s.prepare(path, sheet, key, prof)
}

// PrepareImportWithProfile imports using an explicit profile, bypassing
// detection. When saveAs is non-empty the profile is also persisted under
// the slug of that name for future auto-detection.
func (s *Session) PrepareImportWithProfile(path string, prof models.ImportProfile, saveAs string) (*ImportBatch, error) {
	if err := prof.Validate(); err != nil {
		return nil, err
	}

	sheet, err := spreadsheet.ReadFile(path, s.logger)
	if err != nil {
		return nil, err
	}

	key := profile.Slug(prof.Name)
	if saveAs != "" {
		key = profile.Slug(saveAs)
		prof.Name = saveAs
		s.registry.Register(key, prof)
		s.state.ImportProfiles[key] = prof
		if err := s.save(); err != nil {
			return nil, err
		}
		s.logger.Info("saved custom import profile",
			logging.Field{Key: "profile", Value: key})
	}

	return s.prepare(path, sheet, key, prof)
}

func (s *Session) prepare(path string, sheet *spreadsheet.Sheet, key string, prof models.ImportProfile) (*ImportBatch, error) {
	proj := projector.New(s.matcher(), s.logger)
	candidates := proj.Project(sheet.Rows, prof)
	result := s.engine.Reconcile(s.state.Transactions, candidates)

	return &ImportBatch{
		Path:       path,
		Sheet:      sheet,
		ProfileKey: key,
		Profile:    prof,
		Result:     result,
	}, nil
}

// CommitImport merges a prepared batch into the state using the supplied
// conflict decisions and persists. It returns the number of transactions
// written.
func (s *Session) CommitImport(batch *ImportBatch, decisions []reconcile.Decision) (int, error) {
	merged, written := s.engine.Apply(s.state.Transactions, batch.Result, decisions)
	s.state.Transactions = merged
	if err := s.save(); err != nil {
		return 0, err
	}
	return written, nil
}

// AddTransaction records a manual entry. The category is auto-assigned
// unless an explicit one is given.
func (s *Session) AddTransaction(date time.Time, description string, amount float64, category, note string) (models.Transaction, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return models.Transaction{}, fmt.Errorf("description must not be empty")
	}
	if amount == 0 {
		return models.Transaction{}, fmt.Errorf("amount must not be zero")
	}
	if category == "" {
		category = s.matcher().Categorize(description)
	}

	tx := models.Transaction{
		ID:          uuid.NewString(),
		Date:        date.UTC().Format(time.RFC3339),
		Description: description,
		Amount:      amount,
		Category:    category,
		Note:        note,
	}
	s.state.Transactions = append(s.state.Transactions, tx)
	if err := s.save(); err != nil {
		return models.Transaction{}, err
	}
	return tx, nil
}

// DeleteTransaction removes a transaction by id.
func (s *Session) DeleteTransaction(id string) error {
	idx := s.state.FindTransaction(id)
	if idx < 0 {
		return fmt.Errorf("no transaction with id %s", id)
	}
	s.state.Transactions = append(s.state.Transactions[:idx], s.state.Transactions[idx+1:]...)
	return s.save()
}

// UpdateCategory sets a transaction's category. With remember set, the
// (description, category) pair is persisted as a resolution so future
// imports and recategorizations of the same description follow it.
func (s *Session) UpdateCategory(id, category string, remember bool) error {
	idx := s.state.FindTransaction(id)
	if idx < 0 {
		return fmt.Errorf("no transaction with id %s", id)
	}
	s.state.Transactions[idx].Category = category
	if remember {
		s.state.CategoryResolutions[s.state.Transactions[idx].Description] = category
	}
	return s.save()
}

// UpdateDescription rewrites a transaction's description.
func (s *Session) UpdateDescription(id, description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return fmt.Errorf("description must not be empty")
	}
	idx := s.state.FindTransaction(id)
	if idx < 0 {
		return fmt.Errorf("no transaction with id %s", id)
	}
	s.state.Transactions[idx].Description = description
	return s.save()
}

// UpdateNote sets or clears a transaction's note.
func (s *Session) UpdateNote(id, note string) error {
	idx := s.state.FindTransaction(id)
	if idx < 0 {
		return fmt.Errorf("no transaction with id %s", id)
	}
	s.state.Transactions[idx].Note = note
	return s.save()
}

// Recategorize reruns keyword categorization over every transaction and
// persists the result. Ambiguous descriptions keep the longest-keyword
// default and are reported for optional override.
func (s *Session) Recategorize() ([]categorizer.CategoryConflict, error) {
	result := s.matcher().Recategorize(s.state.Transactions)
	s.state.Transactions = result.Transactions
	if err := s.save(); err != nil {
		return nil, err
	}
	return result.Conflicts, nil
}

// ResolveCategory overrides a recategorization conflict: the transaction
// takes the chosen category and the resolution is persisted by description.
func (s *Session) ResolveCategory(description, category string) (int, error) {
	s.state.CategoryResolutions[description] = category
	changed := 0
	for i := range s.state.Transactions {
		if s.state.Transactions[i].Description == description {
			s.state.Transactions[i].Category = category
			changed++
		}
	}
	if err := s.save(); err != nil {
		return 0, err
	}
	return changed, nil
}

// UpsertCategory adds a category or replaces its keyword list.
func (s *Session) UpsertCategory(name string, keywords []string) error {
	s.state.Categories = s.state.Categories.Upsert(name, keywords)
	return s.save()
}

// RemoveCategory deletes a category rule. Transactions keep their assigned
// category until the next recategorization.
func (s *Session) RemoveCategory(name string) error {
	if _, ok := s.state.Categories.Get(name); !ok {
		return fmt.Errorf("no category named %s", name)
	}
	s.state.Categories = s.state.Categories.Remove(name)
	return s.save()
}

// EnrichFromPayPal matches a PayPal activity export against the current
// transactions. Nothing is applied yet; pass the accepted matches to
// ApplyPayPalMatches.
func (s *Session) EnrichFromPayPal(path string) ([]paypal.Match, error) {
	sheet, err := spreadsheet.ReadFile(path, s.logger)
	if err != nil {
		return nil, err
	}
	return paypal.MatchTransactions(s.state.Transactions, sheet.Rows, s.logger), nil
}

// ApplyPayPalMatches rewrites the matched transactions' descriptions and
// recategorizes each against the new text.
func (s *Session) ApplyPayPalMatches(matches []paypal.Match) (int, error) {
	matcher := s.matcher()
	applied := 0
	for _, m := range matches {
		idx := s.state.FindTransaction(m.TransactionID)
		if idx < 0 {
			continue
		}
		s.state.Transactions[idx].Description = m.NewDescription
		s.state.Transactions[idx].Category = matcher.Categorize(m.NewDescription)
		applied++
	}
	if err := s.save(); err != nil {
		return 0, err
	}
	return applied, nil
}

// Reset discards all state and reseeds the defaults.
func (s *Session) Reset() error {
	if err := s.store.Reset(); err != nil {
		return err
	}
	s.state = models.NewAppState()
	s.registry = profile.NewRegistry()
	return s.save()
}

// Restore replaces the state with a restored backup state and persists it.
func (s *Session) Restore(state *models.AppState) error {
	s.state = state
	s.registry = profile.NewRegistry()
	for _, key := range sortedKeys(state.ImportProfiles) {
		s.registry.Register(key, state.ImportProfiles[key])
	}
	return s.save()
}
