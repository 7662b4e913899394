package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idxcli/internal/errors"
)

func TestDetectDialect(t *testing.T) {
	tests := []struct {
		name        string
		rows        [][]string
		want        dialect
		wantOpen    bool
		expectError bool
	}{
		{
			name: "normalized output",
			rows: [][]string{{"Date", "Open", "Close"}},
			want: dialectNormalized, wantOpen: true,
		},
		{
			name: "yfinance with price banner",
			rows: [][]string{{"Price", "Open", "High", "Low", "Close", "Volume"}},
			want: dialectYFinance, wantOpen: true,
		},
		{
			name: "yfinance classic",
			rows: [][]string{{"Date", "Open", "High", "Low", "Close", "Volume", "Adj Close"}},
			want: dialectYFinance, wantOpen: true,
		},
		{
			name: "csi bilingual",
			rows: [][]string{{"日期Date", "指数代码Index Code", "指数名称Index Name", "开盘Open", "最高High", "最低Low", "收盘Close"}},
			want: dialectCSIBilingual, wantOpen: true,
		},
		{
			name: "csi chinese",
			rows: [][]string{{"日期", "开盘价", "最高价", "最低价", "收盘价"}},
			want: dialectCSIChinese, wantOpen: true,
		},
		{
			name: "csi chinese close only",
			rows: [][]string{{"日期", "收盘价", "涨跌幅"}},
			want: dialectCSIChinese, wantOpen: false,
		},
		{
			name: "leading empty rows before header",
			rows: [][]string{{"", ""}, {}, {"Date", "Open", "Close"}},
			want: dialectNormalized, wantOpen: true,
		},
		{
			name:        "unknown header",
			rows:        [][]string{{"Timestamp", "Bid", "Ask"}},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, cm, err := detectDialect(tt.rows)
			if tt.expectError {
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, errors.CodeUnknownDialect))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d)
			assert.GreaterOrEqual(t, cm.date, 0)
			assert.GreaterOrEqual(t, cm.close, 0)
			if tt.wantOpen {
				assert.GreaterOrEqual(t, cm.open, 0)
			} else {
				assert.Equal(t, -1, cm.open)
			}
		})
	}
}

func TestExtractRecordsSkipsBannerRows(t *testing.T) {
	rows := [][]string{
		{"Price", "Open", "High", "Low", "Close", "Volume"},
		{"Ticker", "^NDX", "^NDX", "^NDX", "^NDX", "^NDX"},
		{"Date", "", "", "", "", ""},
		{"2010-01-04", "1879.06", "1892.56", "1879.06", "1892.55", "0"},
	}

	d, cm, err := detectDialect(rows)
	require.NoError(t, err)
	require.Equal(t, dialectYFinance, d)

	records := extractRecords(rows, d, cm)
	require.Len(t, records, 1)
	assert.Equal(t, "2010-01-04", records[0].Date)
	assert.Equal(t, "1879.06", records[0].Open)
	assert.Equal(t, "1892.55", records[0].Close)
}

func TestExtractRecordsFiltersSecondaryIndexCodes(t *testing.T) {
	rows := [][]string{
		{"日期Date", "指数代码Index Code", "开盘Open", "收盘Close"},
		{"20100104", "H20955", "3000.0", "3010.0"},
		{"20100104", "930955", "1000.0", "1010.0"},
		{"20100105", "930955", "1010.0", "1020.0"},
		{"20100105", "H20955", "3010.0", "3020.0"},
	}

	d, cm, err := detectDialect(rows)
	require.NoError(t, err)
	require.Equal(t, dialectCSIBilingual, d)

	records := extractRecords(rows, d, cm)
	require.Len(t, records, 2)
	assert.Equal(t, "1000.0", records[0].Open)
	assert.Equal(t, "1020.0", records[1].Close)
}

func TestMainIndexCode(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		want string
	}{
		{
			name: "prefers digit-leading code",
			rows: [][]string{
				{"日期Date", "指数代码Index Code", "收盘Close"},
				{"20100104", "H20955", "1"},
				{"20100105", "930955", "2"},
				{"20100106", "H20955", "3"},
			},
			want: "930955",
		},
		{
			name: "single code",
			rows: [][]string{
				{"日期Date", "指数代码Index Code", "收盘Close"},
				{"20100104", "980092", "1"},
			},
			want: "980092",
		},
		{
			name: "most frequent when none digit-leading",
			rows: [][]string{
				{"日期Date", "指数代码Index Code", "收盘Close"},
				{"20100104", "HAA", "1"},
				{"20100105", "HBB", "2"},
				{"20100106", "HBB", "3"},
			},
			want: "HBB",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cm, err := detectDialect(tt.rows)
			require.NoError(t, err)
			assert.Equal(t, tt.want, mainIndexCode(tt.rows, cm))
		})
	}
}
