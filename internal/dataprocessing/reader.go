package dataprocessing

import (
	"encoding/csv"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"idxcli/internal/errors"
	"idxcli/internal/files"
)

// ReadSource loads every row of a source file as raw cell strings.
// CSV (including the CSI site's ".csvx" files) is read with encoding/csv;
// Excel workbooks are read with excelize.
func ReadSource(path string) ([][]string, error) {
	if files.IsExcel(path) {
		return readExcel(path)
	}
	return readCSV(path)
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.FileNotFound(path, err)
		}
		return nil, errors.Wrap(errors.CodeParseError, "failed to open "+path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // source files have ragged rows

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.CodeParseError, "malformed CSV in "+path, err)
	}
	if len(rows) == 0 {
		return nil, errors.EmptySource(path)
	}

	// Strip a UTF-8 BOM if the file carries one.
	if len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\uFEFF")
	}

	return rows, nil
}

// readExcel reads the first sheet whose header matches a known source
// dialect, falling back to the first non-empty sheet.
func readExcel(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.CodeParseError, "failed to open workbook "+path, err)
	}
	defer f.Close()

	var fallback [][]string
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) == 0 {
			continue
		}
		if fallback == nil {
			fallback = rows
		}
		if _, _, err := detectDialect(rows); err == nil {
			return rows, nil
		}
	}

	if fallback == nil {
		return nil, errors.EmptySource(path)
	}
	return fallback, nil
}
