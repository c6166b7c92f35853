package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"moneyflow/internal/models"
)

// categorySeed is the YAML layout of a category rules file:
//
//	categories:
//	  - name: Spesa alimentare
//	    keywords: [CONAD, COOP]
type categorySeed struct {
	Categories []models.Category `yaml:"categories"`
}

// LoadCategorySeed reads category keyword rules from a YAML file. A missing
// or empty path returns nil without error so the caller falls back to the
// defaults.
func LoadCategorySeed(path string) (models.CategorySet, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading category seed: %w", err)
	}

	var seed categorySeed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing category seed: %w", err)
	}
	if len(seed.Categories) == 0 {
		return nil, nil
	}

	return models.CategorySet(seed.Categories), nil
}

// SaveCategorySeed writes the current category rules to a YAML file, so a
// rule set tuned in one data directory can be shared.
func SaveCategorySeed(path string, categories models.CategorySet) error {
	data, err := yaml.Marshal(categorySeed{Categories: categories})
	if err != nil {
		return fmt.Errorf("encoding category seed: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing category seed: %w", err)
	}
	return nil
}
