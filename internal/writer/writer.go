package writer

import (
	"encoding/csv"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/scottlepich-lz/enrichment-test-suite/internal/domain"
)

// Output CSV header, in column order.
var header = []string{"EVENT_ID", "TEST_RESULT", "FULL_EVENT_PAYLOAD", "ENRICHED_RESPONSE"}

// ResultWriter appends result rows to the output CSV, flushing after every
// row so an interrupted run keeps every completed event.
type ResultWriter struct {
	file *os.File
	csv  *csv.Writer
	path string
	log  *zap.Logger
}

// NewResultWriter creates the output file and writes the header row
func NewResultWriter(path string, log *zap.Logger) (*ResultWriter, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %s: %w", path, err)
	}

	w := &ResultWriter{
		file: file,
		csv:  csv.NewWriter(file),
		path: path,
		log:  log,
	}

	if err := w.csv.Write(header); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to write output header: %w", err)
	}
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to flush output header: %w", err)
	}

	return w, nil
}

// Append writes one result row and flushes it to the file
func (w *ResultWriter) Append(row *domain.ResultRow) error {
	record := []string{row.EventID, string(row.Outcome), row.Payload, row.Enriched}
	if err := w.csv.Write(record); err != nil {
		return fmt.Errorf("failed to write result row for event %s: %w", row.EventID, err)
	}

	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("failed to flush result row for event %s: %w", row.EventID, err)
	}

	return nil
}

// Path returns the output file path
func (w *ResultWriter) Path() string {
	return w.path
}

// Close flushes any buffered output and closes the file
func (w *ResultWriter) Close() error {
	w.csv.Flush()
	flushErr := w.csv.Error()

	if err := w.file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	if flushErr != nil {
		return fmt.Errorf("failed to flush output file: %w", flushErr)
	}

	w.log.Info("Output file closed", zap.String("path", w.path))
	return nil
}
