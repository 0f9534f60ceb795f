// Package loader reads the apartment-listings CSV dataset and hands the
// analysis pipeline raw string records. The UCI export of this dataset uses
// semicolon delimiters and Windows-1252 encoding, so that format is tried
// first, with a fallback to standard comma-separated UTF-8.
package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"rental-miner/models"
	"rental-miner/utils"
)

// RequiredColumns are the dataset columns the analysis needs. A header
// missing any of them is a fatal schema violation.
var RequiredColumns = []string{"price", "square_feet", "bedrooms", "bathrooms", "state", "amenities"}

// SchemaError reports required columns absent from the dataset header.
// The pipeline refuses to run when it occurs.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("loader: required columns missing from dataset: %s",
		strings.Join(e.Missing, ", "))
}

// Loader reads the listings dataset from disk.
type Loader struct {
	logger *utils.Logger
}

// New creates a Loader with the given logger.
func New(logger *utils.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads the CSV file at path. It first attempts the dataset's native
// format (semicolon-delimited, Windows-1252); if that fails to parse or
// yields an invalid header, it retries as standard comma-separated UTF-8.
// A *SchemaError is returned when both attempts find the header incomplete.
func (l *Loader) Load(path string) ([]models.RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: read %q: %w", path, err)
	}

	records, width, err := l.parse(decodeWindows1252(bytes.NewReader(data)), ';')
	if err == nil {
		l.logger.Info("[loader] Loaded %d rows (semicolon-delimited, cp1252)", len(records))
		return records, nil
	}

	// A header that split into several columns means the delimiter was
	// right, so a schema error there is authoritative, not a format mismatch.
	var schemaErr *SchemaError
	if errors.As(err, &schemaErr) && width > 1 {
		return nil, err
	}
	l.logger.Warn("[loader] Native format failed (%v) — retrying as standard CSV", err)

	records, _, err = l.parse(bytes.NewReader(data), ',')
	if err != nil {
		return nil, err
	}
	l.logger.Info("[loader] Loaded %d rows (comma-delimited)", len(records))
	return records, nil
}

// parse reads the full CSV stream with the given delimiter, validates the
// header against RequiredColumns, and maps each row to a RawRecord holding
// only the required columns. Rows with a malformed field count are skipped.
// The header width is returned alongside so the caller can tell a wrong
// delimiter (single wide column) from a genuinely incomplete schema.
func (l *Loader) parse(r io.Reader, delim rune) ([]models.RawRecord, int, error) {
	reader := csv.NewReader(r)
	reader.Comma = delim
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("loader: read header: %w", err)
	}

	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := colIndex[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, len(header), &SchemaError{Missing: missing}
	}

	var records []models.RawRecord
	skipped := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if errors.Is(err, csv.ErrFieldCount) {
				skipped++
				continue
			}
			return nil, len(header), fmt.Errorf("loader: read row: %w", err)
		}

		rec := make(models.RawRecord, len(RequiredColumns))
		for _, col := range RequiredColumns {
			idx := colIndex[col]
			if idx < len(row) {
				rec[col] = row[idx]
			}
		}
		records = append(records, rec)
	}

	if skipped > 0 {
		l.logger.Warn("[loader] Skipped %d malformed rows", skipped)
	}
	return records, len(header), nil
}

func decodeWindows1252(r io.Reader) io.Reader {
	return transform.NewReader(r, charmap.Windows1252.NewDecoder())
}
