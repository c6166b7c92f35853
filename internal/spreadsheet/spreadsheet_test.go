package spreadsheet

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"moneyflow/internal/flowerror"
)

func TestReadCSVHeaderAtTop(t *testing.T) {
	csvData := strings.Join([]string{
		"Data,Descrizione,Importo",
		"25/12/2023,CONAD,-23.99",
		"26/12/2023,STIPENDIO,1500",
		",,",
	}, "\n")

	sheet, err := ReadCSV(strings.NewReader(csvData), nil)
	require.NoError(t, err)
	require.NotNil(t, sheet)

	assert.Equal(t, 0, sheet.HeaderRow)
	assert.Equal(t, []string{"Data", "Descrizione", "Importo"}, sheet.Columns)
	require.Len(t, sheet.Rows, 2, "the all-empty trailing row is dropped")
	assert.Equal(t, "CONAD", sheet.Rows[0]["Descrizione"])
	assert.Equal(t, "-23.99", sheet.Rows[0]["Importo"])
}

func TestReadCSVRaggedRows(t *testing.T) {
	csvData := strings.Join([]string{
		"Data,Descrizione,Importo",
		"25/12/2023,CONAD",
	}, "\n")

	sheet, err := ReadCSV(strings.NewReader(csvData), nil)
	require.NoError(t, err)
	require.NotNil(t, sheet)
	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, "", sheet.Rows[0]["Importo"], "missing trailing cells read as empty")
}

func TestReadCSVNoHeader(t *testing.T) {
	// Numbers only: no row qualifies as a header.
	csvData := "1,2,3\n4,5,6\n"
	sheet, err := ReadCSV(strings.NewReader(csvData), nil)
	require.NoError(t, err)
	assert.Nil(t, sheet)
}

func TestReadXLSXHeaderAtOffset17(t *testing.T) {
	f := excelize.NewFile()
	sheetName := f.GetSheetName(0)

	// 17 metadata lines, then the real header.
	for i := 0; i < 17; i++ {
		require.NoError(t, f.SetCellValue(sheetName, cell(0, i), "Conto: IT00 0000"))
	}
	header := []string{"Data operazione", "Causale", "Entrate", "Uscite", "Id Transazione"}
	for col, name := range header {
		require.NoError(t, f.SetCellValue(sheetName, cell(col, 17), name))
	}
	row := []string{"25/12/2023", "PAGAMENTO CONAD", "", "23,99", "TX1"}
	for col, value := range row {
		require.NoError(t, f.SetCellValue(sheetName, cell(col, 18), value))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	sheet, err := ReadXLSX(&buf, nil)
	require.NoError(t, err)
	require.NotNil(t, sheet)

	assert.Equal(t, 17, sheet.HeaderRow)
	assert.Equal(t, header, sheet.Columns)
	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, "PAGAMENTO CONAD", sheet.Rows[0]["Causale"])
	assert.Equal(t, "23,99", sheet.Rows[0]["Uscite"])
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col+1, row+1)
	return name
}

func TestReadFileDispatchAndNoHeaderError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "numbers.csv")
	require.NoError(t, os.WriteFile(path, []byte("1,2\n3,4\n"), 0o644))

	_, err := ReadFile(path, nil)
	require.Error(t, err)

	var noHeader *flowerror.NoHeaderError
	require.True(t, errors.As(err, &noHeader))
	assert.Contains(t, noHeader.Error(), "no valid data")
}

func TestSampleRows(t *testing.T) {
	sheet := &Sheet{Rows: []map[string]string{{"a": "1"}, {"a": "2"}, {"a": "3"}}}
	assert.Len(t, sheet.SampleRows(2), 2)
	assert.Len(t, sheet.SampleRows(10), 3)
}

func TestIsHeaderRow(t *testing.T) {
	assert.True(t, isHeaderRow([]string{"Data", "Importo"}))
	assert.False(t, isHeaderRow([]string{"Data"}), "one usable cell is not enough")
	assert.False(t, isHeaderRow([]string{"123", "45.6", "Data"}), "numeric cells do not count")
	assert.False(t, isHeaderRow([]string{"", "", ""}))
}
