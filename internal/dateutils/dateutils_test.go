package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneyflow/internal/flowerror"
)

func withFixedNow(t *testing.T, fixed time.Time) {
	t.Helper()
	previous := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = previous })
}

func TestParseCellStrict(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{name: "Slash triplet", input: "25/12/2023", expected: time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC)},
		{name: "Slash triplet with spaces", input: " 1/2/2024 ", expected: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{name: "Excel serial", input: "45000", expected: time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)},
		{name: "ISO date", input: "2023-06-30", expected: time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC)},
		{name: "Dotted European", input: "30.06.2023", expected: time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := ParseCellStrict(tc.input)
			require.NoError(t, err)
			assert.True(t, tc.expected.Equal(parsed), "expected %s, got %s", tc.expected, parsed)
		})
	}
}

func TestParseCellStrictMalformed(t *testing.T) {
	_, err := ParseCellStrict("not a date")
	require.Error(t, err)

	var parseErr *flowerror.DateParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "not a date", parseErr.Value)
}

func TestParseCellEmptyFallsBackToToday(t *testing.T) {
	fixed := time.Date(2024, 5, 17, 10, 0, 0, 0, time.UTC)
	withFixedNow(t, fixed)

	assert.True(t, fixed.Equal(ParseCell("")))
	assert.True(t, fixed.Equal(ParseCell("   ")))
}

func TestParseCellMalformedFallsBackToToday(t *testing.T) {
	fixed := time.Date(2024, 5, 17, 10, 0, 0, 0, time.UTC)
	withFixedNow(t, fixed)

	assert.True(t, fixed.Equal(ParseCell("garbage")))
}

func TestParseCellImpossibleTripletRejected(t *testing.T) {
	fixed := time.Date(2024, 5, 17, 10, 0, 0, 0, time.UTC)
	withFixedNow(t, fixed)

	// Month 13 cannot be a D/M/Y date and matches no generic layout.
	assert.True(t, fixed.Equal(ParseCell("05/13/2023")))
}

func TestToISO(t *testing.T) {
	instant := time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2023-12-25T00:00:00Z", ToISO(instant))
}
