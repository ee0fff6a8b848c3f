package reporter

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/scottlepich-lz/enrichment-test-suite/internal/domain"
)

// Reporter emits periodic progress lines and the final run summary
type Reporter struct {
	interval int
	out      io.Writer
	log      *zap.Logger
}

// NewReporter creates a reporter that logs progress every interval events
// and writes the human-readable summary to out
func NewReporter(interval int, out io.Writer, log *zap.Logger) *Reporter {
	if interval <= 0 {
		interval = 100
	}
	return &Reporter{
		interval: interval,
		out:      out,
		log:      log,
	}
}

// Progress logs a progress line when the processed count hits the interval
func (r *Reporter) Progress(stats *RunStats) {
	if stats.Processed == 0 || stats.Processed%r.interval != 0 {
		return
	}

	r.log.Info("Progress",
		zap.Int("processed", stats.Processed),
		zap.Int("passed", stats.Passed),
		zap.Int("failed", stats.Failed),
		zap.String("pass_rate", fmt.Sprintf("%.1f%%", stats.PassRate())),
		zap.String("rate", fmt.Sprintf("%.1f events/sec", stats.Rate())))
}

// Verdict returns the overall run outcome: PASS only when nothing failed
func (r *Reporter) Verdict(stats *RunStats) domain.Outcome {
	if stats.Failed == 0 {
		return domain.OutcomePass
	}
	return domain.OutcomeFail
}

// Summary writes the final run report
func (r *Reporter) Summary(stats *RunStats, outputPath string, interrupted bool) {
	elapsed := stats.Elapsed()

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "================================================================================")
	if interrupted {
		fmt.Fprintln(r.out, "ENRICHMENT VALIDATION INTERRUPTED")
	} else {
		fmt.Fprintln(r.out, "ENRICHMENT VALIDATION COMPLETE")
	}
	fmt.Fprintln(r.out, "================================================================================")
	fmt.Fprintf(r.out, "Total Events:     %d\n", stats.Processed)
	fmt.Fprintf(r.out, "Passed:           %d (%.1f%%)\n", stats.Passed, stats.PassRate())
	fmt.Fprintf(r.out, "Failed:           %d (%.1f%%)\n", stats.Failed, failRate(stats))
	if stats.Skipped > 0 {
		fmt.Fprintf(r.out, "Skipped Rows:     %d (input parse errors)\n", stats.Skipped)
	}
	fmt.Fprintf(r.out, "\nTime Elapsed:     %.1f seconds\n", elapsed.Seconds())
	fmt.Fprintf(r.out, "Average Rate:     %.1f events/sec\n", stats.Rate())
	fmt.Fprintf(r.out, "\nOutput saved to:  %s\n", outputPath)
	fmt.Fprintf(r.out, "Overall Result:   %s\n", r.Verdict(stats))
	fmt.Fprintln(r.out, "================================================================================")
}

func failRate(stats *RunStats) float64 {
	if stats.Processed == 0 {
		return 0
	}
	return float64(stats.Failed) / float64(stats.Processed) * 100
}
