package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneyflow/internal/models"
)

func TestBuiltinsAreValid(t *testing.T) {
	for _, b := range Builtins() {
		assert.NoError(t, b.Profile.Validate(), "profile %s", b.Key)
	}
}

func TestDetectIllimity(t *testing.T) {
	r := NewRegistry()
	columns := []string{"Data operazione", "Data contabile", "Causale", "Entrate", "Uscite", "Id Transazione"}

	key, p, ok := r.Detect(columns)
	require.True(t, ok)
	assert.Equal(t, KeyIllimity, key)
	assert.Equal(t, models.AmountSplit, p.AmountType)
}

func TestDetectFinecoBeforeGenericIT(t *testing.T) {
	// Fineco exports carry "Data" but pair it with "Descrizione Operazione",
	// so generic-it must not steal the match: generic-it needs plain
	// "Descrizione" which is absent here.
	r := NewRegistry()
	columns := []string{"Data", "Entrate", "Uscite", "Descrizione Operazione", "Numero Operazione"}

	key, _, ok := r.Detect(columns)
	require.True(t, ok)
	assert.Equal(t, KeyFineco, key)
}

func TestDetectGenericEnglish(t *testing.T) {
	r := NewRegistry()
	key, _, ok := r.Detect([]string{"Date", "Description", "Amount", "Balance"})
	require.True(t, ok)
	assert.Equal(t, KeyGenericEN, key)
}

func TestDetectNoMatch(t *testing.T) {
	r := NewRegistry()
	_, _, ok := r.Detect([]string{"Colonna1", "Colonna2"})
	assert.False(t, ok)
}

func TestRegisterKeepsDetectionOrder(t *testing.T) {
	r := NewRegistry()
	custom := models.ImportProfile{
		Name:              "My Bank",
		DateColumn:        "Giorno",
		DescriptionColumn: "Dettaglio",
		AmountType:        models.AmountSingle,
		AmountColumn:      "Valore",
	}
	r.Register("my-bank", custom)

	keys := r.Keys()
	require.NotEmpty(t, keys)
	assert.Equal(t, KeyIllimity, keys[0], "built-ins stay ahead of user profiles")
	assert.Equal(t, "my-bank", keys[len(keys)-1])

	// Replacing a built-in keeps its position.
	override := custom
	override.Name = "Illimity custom"
	r.Register(KeyIllimity, override)
	assert.Equal(t, KeyIllimity, r.Keys()[0])
	got, ok := r.Get(KeyIllimity)
	require.True(t, ok)
	assert.Equal(t, "Illimity custom", got.Name)
}

func TestSlug(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"My Bank", "my-bank"},
		{"  Banca  d'Italia  ", "banca-d-italia"},
		{"UPPER_case 123", "upper-case-123"},
		{"---", ""},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, Slug(tc.input), "input %q", tc.input)
	}
}
