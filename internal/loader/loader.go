package loader

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/scottlepich-lz/enrichment-test-suite/internal/domain"
)

// Input CSV column names, matching the analytics export format.
const (
	ColumnEventID = "EVENT_ID"
	ColumnPayload = "FULL_EVENT_PAYLOAD"
)

// Loader reads exported events from a CSV file into memory
type Loader struct {
	log *zap.Logger
}

// NewLoader creates a new event loader
func NewLoader(log *zap.Logger) *Loader {
	return &Loader{log: log}
}

// Load reads every event row from r. The header row must contain the
// EVENT_ID and FULL_EVENT_PAYLOAD columns; their position does not matter.
// Rows whose payload is not valid JSON are logged and skipped so one bad
// export row never aborts the run; the returned skip count covers them.
// Multi-line JSON inside a quoted field is handled by the CSV reader.
func (l *Loader) Load(r io.Reader) ([]domain.EventRecord, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read CSV header: %w", err)
	}

	idCol, payloadCol := -1, -1
	for i, name := range header {
		switch name {
		case ColumnEventID:
			idCol = i
		case ColumnPayload:
			payloadCol = i
		}
	}
	if payloadCol == -1 {
		return nil, 0, fmt.Errorf("input CSV is missing required column %q", ColumnPayload)
	}

	var records []domain.EventRecord
	skipped := 0

	for row := 1; ; row++ {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A malformed CSV row is a per-row failure, same as bad JSON.
			l.log.Warn("Skipping unreadable CSV row",
				zap.Int("row", row),
				zap.Error(err))
			skipped++
			continue
		}

		if payloadCol >= len(fields) {
			l.log.Warn("Skipping row with missing payload column",
				zap.Int("row", row))
			skipped++
			continue
		}

		id := ""
		if idCol != -1 && idCol < len(fields) {
			id = fields[idCol]
		}
		if id == "" {
			id = fmt.Sprintf("unknown_%d", row)
		}

		payload := fields[payloadCol]
		if !json.Valid([]byte(payload)) {
			l.log.Warn("Skipping row with malformed event JSON",
				zap.Int("row", row),
				zap.String("event_id", id))
			skipped++
			continue
		}

		records = append(records, domain.EventRecord{
			ID:      id,
			Payload: json.RawMessage(payload),
			Row:     row,
		})
	}

	l.log.Info("Loaded events from input",
		zap.Int("events", len(records)),
		zap.Int("skipped", skipped))

	return records, skipped, nil
}
