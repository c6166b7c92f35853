// Package dateutils parses raw spreadsheet date cells. Bank exports carry
// dates either as Excel serial numbers or as D/M/Y strings in a handful of
// locale variants.
package dateutils

import (
	"strconv"
	"strings"
	"time"

	"moneyflow/internal/flowerror"
)

// excelEpochOffset is the Excel serial value of the Unix epoch (1970-01-01).
// Serial dates count days since 1899-12-30, the classic off-by-two 1900
// convention.
const excelEpochOffset = 25569

const secondsPerDay = 86400

// genericLayouts are tried in order for strings that are neither numeric nor
// a slash-separated D/M/Y triplet.
var genericLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02.01.2006",
	"02-01-2006",
	"2-Jan-2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// now is replaced in tests.
var now = time.Now

// ParseCell converts a spreadsheet cell value into a date. Empty input and
// input no layout understands fall back to the current date; this is the
// upstream policy, use ParseCellStrict to detect malformed dates instead.
func ParseCell(raw string) time.Time {
	parsed, err := ParseCellStrict(raw)
	if err != nil {
		return now()
	}
	return parsed
}

// ParseCellStrict behaves like ParseCell but surfaces a DateParseError
// instead of masking malformed input with the current date. Empty input is
// still the current date, matching the projection behavior for blank cells.
func ParseCellStrict(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return now(), nil
	}

	if serial, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return fromSerial(serial), nil
	}

	if parsed, ok := fromSlashTriplet(trimmed); ok {
		return parsed, nil
	}

	for _, layout := range genericLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.UTC(), nil
		}
	}

	return time.Time{}, &flowerror.DateParseError{Value: raw}
}

// fromSerial converts an Excel serial day count to an instant.
func fromSerial(serial float64) time.Time {
	seconds := (serial - excelEpochOffset) * secondsPerDay
	return time.Unix(int64(seconds), 0).UTC()
}

// fromSlashTriplet parses D/M/Y dates such as "25/12/2023".
func fromSlashTriplet(value string) (time.Time, bool) {
	parts := strings.Split(value, "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return time.Time{}, false
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// ToISO formats an instant the way transactions store their date.
func ToISO(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
