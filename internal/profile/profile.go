// Package profile holds the import-profile registry and the format detector
// that matches a spreadsheet's columns against registered column mappings.
package profile

import (
	"regexp"
	"strings"

	"moneyflow/internal/models"
)

// Built-in profile keys, registered before any user-defined profile. A
// custom profile that reuses one of these keys overrides the column mapping
// but keeps the built-in's position in detection order, so built-ins are
// always checked first.
const (
	KeyIllimity  = "illimity"
	KeyGenericIT = "generic-it"
	KeyGenericEN = "generic-en"
	KeyFineco    = "fineco"
)

// Builtins returns the well-known bank formats in registration order.
func Builtins() []struct {
	Key     string
	Profile models.ImportProfile
} {
	return []struct {
		Key     string
		Profile models.ImportProfile
	}{
		{KeyIllimity, models.ImportProfile{
			Name:              "Illimity Bank",
			HeaderRow:         17,
			DateColumn:        "Data operazione",
			DescriptionColumn: "Causale",
			AmountType:        models.AmountSplit,
			IncomeColumn:      "Entrate",
			ExpenseColumn:     "Uscite",
			IDColumn:          "Id Transazione",
		}},
		{KeyGenericIT, models.ImportProfile{
			Name:              "Generico Italiano",
			HeaderRow:         0,
			DateColumn:        "Data",
			DescriptionColumn: "Descrizione",
			AmountType:        models.AmountSingle,
			AmountColumn:      "Importo",
		}},
		{KeyGenericEN, models.ImportProfile{
			Name:              "Generic English",
			HeaderRow:         0,
			DateColumn:        "Date",
			DescriptionColumn: "Description",
			AmountType:        models.AmountSingle,
			AmountColumn:      "Amount",
		}},
		{KeyFineco, models.ImportProfile{
			Name:              "Fineco",
			HeaderRow:         0,
			DateColumn:        "Data",
			DescriptionColumn: "Descrizione Operazione",
			AmountType:        models.AmountSplit,
			IncomeColumn:      "Entrate",
			ExpenseColumn:     "Uscite",
			IDColumn:          "Numero Operazione",
		}},
	}
}

// Registry is an insertion-ordered map from profile key to column mapping.
type Registry struct {
	keys     []string
	profiles map[string]models.ImportProfile
}

// NewRegistry returns a registry seeded with the built-in profiles.
func NewRegistry() *Registry {
	r := &Registry{profiles: map[string]models.ImportProfile{}}
	for _, b := range Builtins() {
		r.Register(b.Key, b.Profile)
	}
	return r
}

// Register adds or replaces a profile. Replacing keeps the key's original
// position in detection order.
func (r *Registry) Register(key string, p models.ImportProfile) {
	if _, exists := r.profiles[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.profiles[key] = p
}

// Get looks up a profile by key.
func (r *Registry) Get(key string) (models.ImportProfile, bool) {
	p, ok := r.profiles[key]
	return p, ok
}

// Keys returns the registered keys in detection order.
func (r *Registry) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Detect returns the first registered profile whose required columns are all
// present. Registration order matters: built-ins are checked before user
// profiles. A false return means manual column mapping is needed.
func (r *Registry) Detect(columns []string) (string, models.ImportProfile, bool) {
	for _, key := range r.keys {
		p := r.profiles[key]
		if p.Matches(columns) {
			return key, p, true
		}
	}
	return "", models.ImportProfile{}, false
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slug derives the persistence key for a user-defined profile from its name.
func Slug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugStrip.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
