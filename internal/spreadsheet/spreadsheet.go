// Package spreadsheet reads tabular bank-statement files (XLSX and CSV) into
// rows of named fields, probing candidate header-row offsets because some
// bank exports prepend many lines of account metadata.
package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"moneyflow/internal/flowerror"
	"moneyflow/internal/logging"
)

// headerProbeOffsets are the candidate header-row positions, in probe order.
// Offset 17 covers the Illimity export, which carries 17 lines of account
// metadata before the real header.
var headerProbeOffsets = []int{0, 17}

// minHeaderColumns is the minimum number of non-empty, non-numeric cells a
// row must have to be accepted as a header.
const minHeaderColumns = 2

// Sheet is a parsed spreadsheet: the detected header columns and the data
// rows keyed by column name.
type Sheet struct {
	Columns   []string
	Rows      []map[string]string
	HeaderRow int
}

// SampleRows returns up to n data rows, for preview during manual mapping.
func (s *Sheet) SampleRows(n int) []map[string]string {
	if len(s.Rows) < n {
		n = len(s.Rows)
	}
	return s.Rows[:n]
}

// ReadFile reads a spreadsheet from disk, dispatching on the file extension.
// CSV is the default for unknown extensions.
func ReadFile(path string, logger logging.Logger) (*Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var sheet *Sheet
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		sheet, err = ReadXLSX(f, logger)
	default:
		sheet, err = ReadCSV(f, logger)
	}
	if err != nil {
		return nil, err
	}
	if sheet == nil {
		return nil, &flowerror.NoHeaderError{Path: path}
	}
	return sheet, nil
}

// ReadXLSX reads the first worksheet of an XLSX document. A nil sheet with a
// nil error means no valid header row was found.
func ReadXLSX(r io.Reader, logger logging.Logger) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading worksheet %s: %w", sheets[0], err)
	}

	return fromGrid(rows, logger), nil
}

// ReadCSV reads comma-separated data. A nil sheet with a nil error means no
// valid header row was found.
func ReadCSV(r io.Reader, logger logging.Logger) (*Sheet, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}

	return fromGrid(records, logger), nil
}

// fromGrid probes the candidate header offsets and materializes the first
// one that yields a usable header.
func fromGrid(grid [][]string, logger logging.Logger) *Sheet {
	for _, offset := range headerProbeOffsets {
		if offset >= len(grid) {
			continue
		}
		header := grid[offset]
		if !isHeaderRow(header) {
			continue
		}
		if logger != nil {
			logger.Debug("header row detected",
				logging.Field{Key: "offset", Value: offset},
				logging.Field{Key: "columns", Value: len(header)})
		}
		return materialize(grid, offset)
	}
	return nil
}

// isHeaderRow accepts a row with at least two non-empty, non-numeric cells.
// Metadata lines and data rows fail one of the two conditions.
func isHeaderRow(row []string) bool {
	usable := 0
	for _, cell := range row {
		trimmed := strings.TrimSpace(cell)
		if trimmed == "" {
			continue
		}
		if _, err := strconv.ParseFloat(trimmed, 64); err == nil {
			continue
		}
		usable++
	}
	return usable >= minHeaderColumns
}

func materialize(grid [][]string, headerOffset int) *Sheet {
	header := grid[headerOffset]
	columns := make([]string, 0, len(header))
	for _, cell := range header {
		name := strings.TrimSpace(cell)
		if name != "" {
			columns = append(columns, name)
		}
	}

	var rows []map[string]string
	for _, record := range grid[headerOffset+1:] {
		row := make(map[string]string, len(columns))
		empty := true
		for col, cell := range header {
			name := strings.TrimSpace(cell)
			if name == "" {
				continue
			}
			var value string
			if col < len(record) {
				value = strings.TrimSpace(record[col])
			}
			row[name] = value
			if value != "" {
				empty = false
			}
		}
		if !empty {
			rows = append(rows, row)
		}
	}

	return &Sheet{Columns: columns, Rows: rows, HeaderRow: headerOffset}
}
