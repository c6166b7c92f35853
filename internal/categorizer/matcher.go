// Package categorizer maps free-text transaction descriptions to category
// names using keyword substring matching, with persisted per-description
// resolutions taking precedence over the automatic rule.
package categorizer

import (
	"strings"

	"moneyflow/internal/logging"
	"moneyflow/internal/models"
)

// Match pairs a candidate category with the keyword that hit.
type Match struct {
	Category string
	Keyword  string
}

// FindMatching scans every category in order and records at most one match
// per category: the first keyword whose upper-cased form is a substring of
// the upper-cased description. All categories are checked so ambiguities can
// be surfaced.
func FindMatching(description string, categories models.CategorySet) []Match {
	desc := strings.ToUpper(description)
	var matches []Match
	for _, category := range categories {
		for _, keyword := range category.Keywords {
			if keyword == "" {
				continue
			}
			if strings.Contains(desc, strings.ToUpper(keyword)) {
				matches = append(matches, Match{Category: category.Name, Keyword: keyword})
				break
			}
		}
	}
	return matches
}

// pickBest resolves a multi-match: the longest keyword wins, ties broken by
// match order. matches must be non-empty.
func pickBest(matches []Match) Match {
	best := matches[0]
	for _, m := range matches[1:] {
		if len(m.Keyword) > len(best.Keyword) {
			best = m
		}
	}
	return best
}

// Matcher categorizes descriptions against a category set, honoring
// persisted resolutions. It holds no mutable state of its own; sessions
// rebuild it whenever the rules or resolutions change.
type Matcher struct {
	categories  models.CategorySet
	resolutions map[string]string
	logger      logging.Logger
}

// NewMatcher creates a Matcher. resolutions may be nil.
func NewMatcher(categories models.CategorySet, resolutions map[string]string, logger logging.Logger) *Matcher {
	if logger == nil {
		logger = logging.NewMockLogger()
	}
	return &Matcher{categories: categories, resolutions: resolutions, logger: logger}
}

// Categories returns the category set the matcher was built with.
func (m *Matcher) Categories() models.CategorySet {
	return m.categories
}

// Categorize returns the category for a description. A persisted resolution
// for the exact description text preempts keyword matching entirely; with no
// resolution, zero matches fall back to the sentinel category, one match is
// used directly and multiple matches resolve to the longest keyword.
func (m *Matcher) Categorize(description string) string {
	if category, ok := m.resolutions[description]; ok {
		m.logger.Debug("categorized by persisted resolution",
			logging.Field{Key: "description", Value: description},
			logging.Field{Key: "category", Value: category})
		return category
	}

	matches := FindMatching(description, m.categories)
	switch len(matches) {
	case 0:
		return models.CategoryFallback
	case 1:
		return matches[0].Category
	default:
		best := pickBest(matches)
		m.logger.Debug("multi-match resolved by longest keyword",
			logging.Field{Key: "description", Value: description},
			logging.Field{Key: "keyword", Value: best.Keyword},
			logging.Field{Key: "category", Value: best.Category})
		return best.Category
	}
}
