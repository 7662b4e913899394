package dataprocessing

import (
	"strings"

	"idxcli/internal/errors"
	"idxcli/pkg/contracts/domain"
)

// dialect identifies the layout of a raw source file.
type dialect int

const (
	dialectUnknown dialect = iota
	// dialectNormalized is this tool's own Date,Open,Close output;
	// accepting it makes re-running the normalizer idempotent.
	dialectNormalized
	// dialectYFinance is the yfinance CSV export: Open/Close named
	// columns, date in the first column, and up to two banner rows
	// (Ticker and Date labels) directly below the header.
	dialectYFinance
	// dialectCSIBilingual is the CSI official download with bilingual
	// headers (日期Date, 开盘Open, 收盘Close), yyyymmdd dates, and an
	// optional index-code column mixing several codes per file.
	dialectCSIBilingual
	// dialectCSIChinese is the CSI download with plain Chinese headers
	// (日期, 开盘价, 收盘价); some series lack the open column entirely.
	dialectCSIChinese
)

func (d dialect) String() string {
	switch d {
	case dialectNormalized:
		return "normalized"
	case dialectYFinance:
		return "yfinance"
	case dialectCSIBilingual:
		return "csi-bilingual"
	case dialectCSIChinese:
		return "csi-chinese"
	default:
		return "unknown"
	}
}

// family returns the config-level format name this dialect belongs to,
// matching the values accepted by config.IndexSource.Format.
func (d dialect) family() string {
	switch d {
	case dialectNormalized:
		return "normalized"
	case dialectYFinance:
		return "yfinance"
	case dialectCSIBilingual, dialectCSIChinese:
		return "csi"
	default:
		return ""
	}
}

// columnMap records where the fields of interest live in a source file.
// Absent columns are -1.
type columnMap struct {
	headerRow int
	date      int
	open      int
	close     int
	code      int
}

// detectDialect inspects the header row and maps column positions.
// The header is the first row containing any non-empty cell.
func detectDialect(rows [][]string) (dialect, columnMap, error) {
	headerRow := -1
	var header []string
	for i, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				headerRow = i
				header = row
				break
			}
		}
		if headerRow >= 0 {
			break
		}
	}
	if headerRow < 0 {
		return dialectUnknown, columnMap{}, errors.EmptySource("source")
	}

	cm := columnMap{headerRow: headerRow, date: -1, open: -1, close: -1, code: -1}

	// Already-normalized output: exactly Date,Open,Close.
	if len(header) == 3 &&
		headerEquals(header[0], "Date") && headerEquals(header[1], "Open") && headerEquals(header[2], "Close") {
		cm.date, cm.open, cm.close = 0, 1, 2
		return dialectNormalized, cm, nil
	}

	// CSI bilingual headers. Checked before the plain Chinese form since
	// 日期Date contains 日期.
	for j, cell := range header {
		c := strings.TrimSpace(cell)
		switch {
		case strings.Contains(c, "日期Date"):
			cm.date = j
		case strings.Contains(c, "开盘Open"):
			cm.open = j
		case strings.Contains(c, "收盘Close"):
			cm.close = j
		case strings.Contains(c, "指数代码"):
			cm.code = j
		}
	}
	if cm.date >= 0 && cm.close >= 0 {
		return dialectCSIBilingual, cm, nil
	}

	// CSI plain Chinese headers. The open column is optional; when it is
	// missing the close price stands in for the open.
	cm = columnMap{headerRow: headerRow, date: -1, open: -1, close: -1, code: -1}
	for j, cell := range header {
		switch strings.TrimSpace(cell) {
		case "日期":
			cm.date = j
		case "开盘价":
			cm.open = j
		case "收盘价":
			cm.close = j
		}
	}
	if cm.date >= 0 && cm.close >= 0 {
		return dialectCSIChinese, cm, nil
	}

	// yfinance export: named Open/Close columns, date first. Newer
	// exports label the header's first cell "Price", older ones "Date".
	cm = columnMap{headerRow: headerRow, date: 0, open: -1, close: -1, code: -1}
	for j, cell := range header {
		switch {
		case headerEquals(cell, "Open"):
			cm.open = j
		case headerEquals(cell, "Close"):
			cm.close = j
		}
	}
	first := strings.TrimSpace(header[0])
	if cm.close >= 0 && (first == "" || headerEquals(first, "Date") || headerEquals(first, "Price")) {
		return dialectYFinance, cm, nil
	}

	return dialectUnknown, columnMap{}, errors.UnknownDialect(header)
}

func headerEquals(cell, name string) bool {
	return strings.EqualFold(strings.TrimSpace(cell), name)
}

// extractRecords pulls raw date/open/close strings out of the data rows.
// Banner rows below a yfinance header and rows belonging to secondary
// index codes in CSI files are dropped here.
func extractRecords(rows [][]string, d dialect, cm columnMap) []domain.RawRecord {
	mainCode := ""
	if cm.code >= 0 {
		mainCode = mainIndexCode(rows, cm)
	}

	records := make([]domain.RawRecord, 0, len(rows))
	for i := cm.headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		if cm.date >= len(row) {
			continue
		}
		date := strings.TrimSpace(row[cm.date])
		if date == "" {
			continue
		}
		// yfinance banner rows carry the ticker symbol and a bare
		// "Date" label where dates belong.
		if d == dialectYFinance && (date == "Ticker" || date == "Date") {
			continue
		}
		if mainCode != "" && cm.code < len(row) && strings.TrimSpace(row[cm.code]) != mainCode {
			continue
		}

		rec := domain.RawRecord{Line: i + 1, Date: date}
		if cm.open >= 0 && cm.open < len(row) {
			rec.Open = strings.TrimSpace(row[cm.open])
		}
		if cm.close >= 0 && cm.close < len(row) {
			rec.Close = strings.TrimSpace(row[cm.close])
		}
		records = append(records, rec)
	}
	return records
}

// mainIndexCode picks the index code to keep when a CSI file mixes
// several (e.g. 930955 alongside H20955): the first code starting with a
// digit, else the most frequent one.
func mainIndexCode(rows [][]string, cm columnMap) string {
	counts := make(map[string]int)
	var order []string
	for i := cm.headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		if cm.code >= len(row) {
			continue
		}
		code := strings.TrimSpace(row[cm.code])
		if code == "" {
			continue
		}
		if counts[code] == 0 {
			order = append(order, code)
		}
		counts[code]++
	}

	for _, code := range order {
		if code[0] >= '0' && code[0] <= '9' {
			return code
		}
	}

	best := ""
	for _, code := range order {
		if counts[code] > counts[best] {
			best = code
		}
	}
	return best
}
