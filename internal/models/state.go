package models

// AppState is the whole persisted application state, stored as a single JSON
// document. All mutations replace whole collection values; the transaction
// slice is kept sorted descending by date after every write.
type AppState struct {
	Transactions        []Transaction            `json:"transactions"`
	Categories          CategorySet              `json:"categories"`
	ImportProfiles      map[string]ImportProfile `json:"importProfiles"`
	CategoryResolutions map[string]string        `json:"categoryResolutions"`
}

// NewAppState returns an empty state seeded with the default categories.
func NewAppState() *AppState {
	return &AppState{
		Transactions:        []Transaction{},
		Categories:          DefaultCategories(),
		ImportProfiles:      map[string]ImportProfile{},
		CategoryResolutions: map[string]string{},
	}
}

// FindTransaction returns the index of the transaction with the given id,
// or -1.
func (s *AppState) FindTransaction(id string) int {
	for i, t := range s.Transactions {
		if t.ID == id {
			return i
		}
	}
	return -1
}
