package dataprocessing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"idxcli/internal/errors"
)

func TestReadSourceCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sp500.csv")
	content := "Date,Open,Close\n2024-01-02,100,100.5\n2024-01-03,101,101.5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	rows, err := ReadSource(path)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Date", "Open", "Close"}, rows[0])
	assert.Equal(t, []string{"2024-01-03", "101", "101.5"}, rows[2])
}

func TestReadSourceCSVWithBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "with_bom.csv")
	content := "\uFEFFDate,Open,Close\n2024-01-02,100,100.5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	rows, err := ReadSource(path)
	require.NoError(t, err)
	assert.Equal(t, "Date", rows[0][0])
}

func TestReadSourceCSVXExtension(t *testing.T) {
	// The CSI site hands out CSV content under a .csvx name.
	dir := t.TempDir()
	path := filepath.Join(dir, "930955perf.csvx")
	content := "日期Date,指数代码Index Code,开盘Open,收盘Close\n20100104,930955,1000.0,1010.0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	rows, err := ReadSource(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "20100104", rows[1][0])
}

func TestReadSourceRaggedRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ragged.csv")
	content := "Date,Open,Close\n2024-01-02,100,100.5\n2024-01-03\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	rows, err := ReadSource(path)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Len(t, rows[2], 1)
}

func TestReadSourceEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := ReadSource(path)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeEmptySource))
}

func TestReadSourceMissingFile(t *testing.T) {
	_, err := ReadSource(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeFileNotFound))
}

func TestReadSourceXLSX(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "930955perf.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1",
		&[]interface{}{"日期Date", "指数代码Index Code", "开盘Open", "收盘Close"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2",
		&[]interface{}{"20100104", "930955", "1000.26", "1011.16"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3",
		&[]interface{}{"20100105", "930955", "1011.16", "1016.66"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	rows, err := ReadSource(path)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "日期Date", rows[0][0])
	assert.Equal(t, "1011.16", rows[1][3])
}

func TestReadSourceXLSXPicksDataSheet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.xlsx")

	f := excelize.NewFile()
	// A cover sheet without price data comes first.
	require.NoError(t, f.SetSheetName("Sheet1", "Notes"))
	require.NoError(t, f.SetSheetRow("Notes", "A1", &[]interface{}{"Downloaded manually"}))
	_, err := f.NewSheet("Data")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Data", "A1", &[]interface{}{"日期", "开盘价", "收盘价"}))
	require.NoError(t, f.SetSheetRow("Data", "A2", &[]interface{}{"2012-12-31", "1000", "1005.5"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	rows, err := ReadSource(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "日期", rows[0][0])
}
