package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idxcli/internal/errors"
)

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	return path
}

func TestResolveSourceExactName(t *testing.T) {
	dir := t.TempDir()
	want := writeFile(t, dir, "sp500_daily_data.csv")

	got, err := NewDiscovery(dir).ResolveSource("sp500_daily_data.csv")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestResolveSourceAlternateExtensions(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		onDisk     string
	}{
		{name: "csv configured, csvx on disk", configured: "930955perf.csv", onDisk: "930955perf.csvx"},
		{name: "csvx configured, xlsx on disk", configured: "930955perf.csvx", onDisk: "930955perf.xlsx"},
		{name: "csv configured, xls on disk", configured: "980092.csv", onDisk: "980092.xls"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			want := writeFile(t, dir, tt.onDisk)

			got, err := NewDiscovery(dir).ResolveSource(tt.configured)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestResolveSourceMissing(t *testing.T) {
	_, err := NewDiscovery(t.TempDir()).ResolveSource("nope.csv")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeFileNotFound))
}

func TestResolveSourceAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	want := writeFile(t, dir, "abs.csv")

	got, err := NewDiscovery(t.TempDir()).ResolveSource(want)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFindSourceFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv")
	writeFile(t, dir, "b.xlsx")
	writeFile(t, dir, "c.csvx")
	writeFile(t, dir, "notes.txt")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "processed"), 0755))

	found, err := NewDiscovery(dir).FindSourceFiles()
	require.NoError(t, err)

	names := make([]string, 0, len(found))
	for _, f := range found {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"a.csv", "b.xlsx", "c.csvx"}, names)
}

func TestIsExcel(t *testing.T) {
	assert.True(t, IsExcel("930955perf.xlsx"))
	assert.True(t, IsExcel("OLD.XLS"))
	assert.False(t, IsExcel("sp500.csv"))
	assert.False(t, IsExcel("930955perf.csvx"))
}
