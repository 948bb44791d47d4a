package pipeline

import (
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/order-line-cleaner/internal/config"
	"github.com/ginjaninja78/order-line-cleaner/internal/csvparser"
	"github.com/ginjaninja78/order-line-cleaner/internal/types"
	"github.com/ginjaninja78/order-line-cleaner/internal/xlsxparser"
)

// FileReader reads an input file, choosing the parser by extension: .xlsx
// files are read as workbooks, everything else as CSV.
type FileReader struct {
	Path  string
	Input config.InputSettings
}

// Read implements Reader.
func (r FileReader) Read() (*types.Dataset, error) {
	if IsWorkbook(r.Path) {
		return xlsxparser.Parse(r.Path, r.Input.Sheet)
	}
	return csvparser.Parse(r.Path, r.Input)
}

// IsWorkbook reports whether path names an XLSX file.
func IsWorkbook(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}
