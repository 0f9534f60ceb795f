package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"rental-miner/models"
)

// CSVWriter exports ranked association rules to a CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)

	if err := w.Write([]string{
		"rank", "antecedent", "consequent", "support", "confidence", "lift",
	}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// WriteRules appends the full ranked rule list in order.
func (c *CSVWriter) WriteRules(rules []*models.AssociationRule) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, r := range rules {
		row := []string{
			strconv.Itoa(i + 1),
			strings.Join(r.Antecedent, " + "),
			strings.Join(r.Consequent, " + "),
			strconv.FormatFloat(r.Support, 'f', 6, 64),
			strconv.FormatFloat(r.Confidence, 'f', 6, 64),
			strconv.FormatFloat(r.Lift, 'f', 6, 64),
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}
