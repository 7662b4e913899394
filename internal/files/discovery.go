package files

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"idxcli/internal/errors"
)

// FileInfo represents information about a discovered file.
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides source file discovery against a data directory.
type Discovery struct {
	dataDir string
}

// NewDiscovery creates a new file discovery instance.
func NewDiscovery(dataDir string) *Discovery {
	return &Discovery{dataDir: dataDir}
}

// alternate extensions tried when the configured source name is missing.
// Manually downloaded CSI files show up with any of these, including the
// odd ".csvx" the official site produces.
var sourceExtensions = []string{".csv", ".csvx", ".xlsx", ".xls"}

// ResolveSource resolves a configured source file name to an existing path.
// When the exact name is missing it retries the same base name under each
// known extension. Returns a FILE_NOT_FOUND processing error when nothing
// exists.
func (d *Discovery) ResolveSource(name string) (string, error) {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(d.dataDir, name)
	}
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	base := strings.TrimSuffix(path, filepath.Ext(path))
	for _, ext := range sourceExtensions {
		candidate := base + ext
		if candidate == path {
			continue
		}
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", errors.FileNotFound(path, os.ErrNotExist)
}

// FindSourceFiles lists every CSV or Excel file in the data directory,
// oldest first by modification time.
func (d *Discovery) FindSourceFiles() ([]FileInfo, error) {
	entries, err := os.ReadDir(d.dataDir)
	if err != nil {
		return nil, errors.Wrap(errors.CodeFileNotFound, "failed to read data directory "+d.dataDir, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !hasSourceExtension(name) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(d.dataDir, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].ModTime.Before(files[j].ModTime)
	})

	return files, nil
}

// IsExcel reports whether the path names an Excel workbook rather than a
// delimited text file.
func IsExcel(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return true
	}
	return false
}

func hasSourceExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, known := range sourceExtensions {
		if ext == known {
			return true
		}
	}
	return false
}
