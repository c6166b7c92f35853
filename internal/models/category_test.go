package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorySetJSONPreservesOrder(t *testing.T) {
	set := CategorySet{
		{Name: "Zeta", Keywords: []string{"Z"}},
		{Name: "Alpha", Keywords: []string{"A", "AA"}},
		{Name: "Middle", Keywords: nil},
	}

	data, err := json.Marshal(set)
	require.NoError(t, err)
	assert.Equal(t, `{"Zeta":["Z"],"Alpha":["A","AA"],"Middle":[]}`, string(data))

	var decoded CategorySet
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []string{"Zeta", "Alpha", "Middle"}, decoded.Names())
}

func TestCategorySetUnmarshalRejectsNonObject(t *testing.T) {
	var decoded CategorySet
	assert.Error(t, json.Unmarshal([]byte(`["not","an","object"]`), &decoded))
}

func TestCategorySetUpsert(t *testing.T) {
	set := CategorySet{{Name: "A", Keywords: []string{"X"}}}

	set = set.Upsert("A", []string{"Y"})
	keywords, ok := set.Get("A")
	require.True(t, ok)
	assert.Equal(t, []string{"Y"}, keywords)
	assert.Len(t, set, 1)

	set = set.Upsert("B", []string{"Z"})
	assert.Equal(t, []string{"A", "B"}, set.Names())
}

func TestCategorySetRemove(t *testing.T) {
	set := CategorySet{{Name: "A"}, {Name: "B"}, {Name: "C"}}
	set = set.Remove("B")
	assert.Equal(t, []string{"A", "C"}, set.Names())

	// Removing an unknown name is a no-op.
	set = set.Remove("missing")
	assert.Equal(t, []string{"A", "C"}, set.Names())
}

func TestDefaultCategoriesEndWithFallbackCandidates(t *testing.T) {
	defaults := DefaultCategories()
	require.NotEmpty(t, defaults)

	names := defaults.Names()
	assert.Contains(t, names, "Spesa alimentare")
	assert.Contains(t, names, "Commissioni")
	assert.NotContains(t, names, CategoryFallback, "the fallback is a sentinel, not a rule")
}
