package runner

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/scottlepich-lz/enrichment-test-suite/internal/domain"
	"github.com/scottlepich-lz/enrichment-test-suite/internal/enrichment"
	"github.com/scottlepich-lz/enrichment-test-suite/internal/reporter"
	"github.com/scottlepich-lz/enrichment-test-suite/internal/stripper"
	"github.com/scottlepich-lz/enrichment-test-suite/internal/validator"
)

// Enricher sends one stripped payload to the enrichment endpoint
type Enricher interface {
	Enrich(ctx context.Context, payload []byte) ([]byte, error)
}

// ResultSink appends one result row to the output
type ResultSink interface {
	Append(row *domain.ResultRow) error
}

// Runner drives the sequential validate loop: strip, enrich, check, write,
// one event fully finished before the next begins
type Runner struct {
	enricher Enricher
	sink     ResultSink
	reporter *reporter.Reporter
	log      *zap.Logger
}

// NewRunner creates a new runner
func NewRunner(enricher Enricher, sink ResultSink, rep *reporter.Reporter, log *zap.Logger) *Runner {
	return &Runner{
		enricher: enricher,
		sink:     sink,
		reporter: rep,
		log:      log,
	}
}

// Run processes every record in order, updating stats as it goes. It stops
// between events when ctx is cancelled, returning ctx.Err() so the caller
// can tell an interrupt from completion. A sink write failure is fatal;
// every per-event enrichment or validation failure just marks the row FAIL
// and the run continues.
func (r *Runner) Run(ctx context.Context, records []domain.EventRecord, stats *reporter.RunStats) error {
	for i := range records {
		select {
		case <-ctx.Done():
			r.log.Info("Run cancelled",
				zap.Int("processed", stats.Processed),
				zap.Int("remaining", len(records)-i))
			return ctx.Err()
		default:
		}

		row, verdict := r.processEvent(ctx, &records[i])

		if err := r.sink.Append(row); err != nil {
			return fmt.Errorf("failed to append result for event %s: %w", row.EventID, err)
		}

		if verdict.Pass() {
			stats.RecordPass()
		} else {
			stats.RecordFail()
			r.log.Warn("Event failed validation",
				zap.String("event_id", row.EventID),
				zap.String("reason", string(verdict.Reason)),
				zap.Strings("fields", verdict.Fields))
		}

		r.reporter.Progress(stats)
	}

	return nil
}

// processEvent runs one event through strip, enrich and validate
func (r *Runner) processEvent(ctx context.Context, record *domain.EventRecord) (*domain.ResultRow, *domain.Verdict) {
	row := &domain.ResultRow{
		EventID: record.ID,
		Payload: string(record.Payload),
	}

	stripped, err := stripper.Strip(record.Payload)
	if err != nil {
		// The loader only admits valid JSON, so this is unexpected.
		r.log.Error("Failed to strip payload",
			zap.String("event_id", record.ID),
			zap.Error(err))
		row.Outcome = domain.OutcomeFail
		return row, &domain.Verdict{
			Outcome: domain.OutcomeFail,
			Reason:  domain.ReasonParseError,
		}
	}

	body, err := r.enricher.Enrich(ctx, stripped)
	if err != nil {
		verdict := &domain.Verdict{
			Outcome: domain.OutcomeFail,
			Reason:  transportReason(err),
		}
		row.Outcome = domain.OutcomeFail
		return row, verdict
	}

	verdict := validator.Validate(body)
	row.Outcome = verdict.Outcome

	// Keep the response in the output whenever one was parseable, so failed
	// rows can be inspected without rerunning.
	if verdict.Reason != domain.ReasonParseError {
		row.Enriched = string(body)
	}

	return row, verdict
}

// transportReason maps a client error onto the failure taxonomy
func transportReason(err error) domain.FailureReason {
	var reqErr *enrichment.RequestError
	if errors.As(err, &reqErr) {
		switch reqErr.Kind {
		case enrichment.KindTimeout:
			return domain.ReasonTimeout
		case enrichment.KindStatus:
			return domain.ReasonHTTPStatus
		}
	}
	return domain.ReasonConnectionError
}
