// =============================================================================
// Order Line Cleaner - CSV Parser Module
// =============================================================================
//
// This module reads an order line export into memory. It handles:
//   - Different delimiters (comma, pipe, tab, etc.)
//   - Source encodings (UTF-8 with or without BOM, ISO-8859-1, Windows-1252)
//   - Quoted fields with embedded delimiters and newlines
//
// ROW SEMANTICS:
//   - The first record is the header; every required column must be present
//   - Empty cells are null, so "" never reaches a validator as text
//   - Lines with no characters at all are skipped by the CSV reader; rows made
//     only of delimiters are kept as all-null records
//   - Rows shorter than the header are padded with nulls
//   - Rows longer than the header are an error
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/ginjaninja78/order-line-cleaner/internal/config"
	"github.com/ginjaninja78/order-line-cleaner/internal/types"
)

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a CSV file and returns the dataset.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - settings: Delimiter and encoding of the file.
//
// RETURNS:
//   - The dataset with one record per data row.
//   - A *types.SchemaError if required columns are missing, or another error
//     if the file cannot be read or parsed.
func Parse(filePath string, settings config.InputSettings) (*types.Dataset, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	ds, err := ParseReader(bufio.NewReader(file), settings)
	if err != nil {
		return nil, err
	}
	ds.Source = filePath

	if err := types.CheckHeader(filePath, ds.Header); err != nil {
		return nil, err
	}

	return ds, nil
}

// ParseReader reads CSV data from r. The header is not checked against the
// order line schema.
func ParseReader(r io.Reader, settings config.InputSettings) (*types.Dataset, error) {
	decoded, err := decode(r, settings.Encoding)
	if err != nil {
		return nil, err
	}

	csvReader := csv.NewReader(decoded)
	if err := configureReader(csvReader, settings); err != nil {
		return nil, err
	}

	// Read the header row.
	headerRow, err := csvReader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("CSV file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	headers, err := types.NormalizeHeader(headerRow)
	if err != nil {
		return nil, err
	}

	ds := &types.Dataset{Header: headers}

	for {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}

		line, _ := csvReader.FieldPos(0)
		if len(row) > len(headers) {
			return nil, fmt.Errorf("line %d: expected at most %d fields, saw %d", line, len(headers), len(row))
		}

		ds.Records = append(ds.Records, toRecord(headers, row))
		ds.RowNumbers = append(ds.RowNumbers, line)
	}

	return ds, nil
}

// decode wraps r so that it yields UTF-8.
//
// CUSTOMIZATION:
//   - Add further charmap entries here and to the config validation tag.
func decode(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(encoding) {
	case "", "utf-8", "utf8":
		// Strip a leading byte order mark; spreadsheet exports often add one.
		return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())), nil
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1.NewDecoder().Reader(r), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder().Reader(r), nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.InputSettings) error {
	comma, err := settings.Comma()
	if err != nil {
		return err
	}
	reader.Comma = comma

	// Row width is checked against the header instead.
	reader.FieldsPerRecord = -1

	// Allow lazy quotes (quotes that don't follow strict CSV rules).
	reader.LazyQuotes = true

	// Leading spaces are data: " Shirt" is not a valid title.
	reader.TrimLeadingSpace = false

	return nil
}

// toRecord maps a row onto the header. Empty cells and missing trailing cells
// are left out of the record (null).
func toRecord(headers, row []string) types.Record {
	rec := make(types.Record, len(row))
	for i, value := range row {
		if value == "" {
			continue
		}
		rec[headers[i]] = value
	}
	return rec
}
