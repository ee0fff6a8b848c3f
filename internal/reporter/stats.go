package reporter

import "time"

// RunStats holds the running totals for one validation run. It is plain
// state owned by the caller and passed to the Reporter, not a global.
type RunStats struct {
	Processed int
	Passed    int
	Failed    int
	Skipped   int
	StartedAt time.Time
}

// NewRunStats creates run stats anchored at the given start time
func NewRunStats(start time.Time) *RunStats {
	return &RunStats{StartedAt: start}
}

// RecordPass counts one passed event
func (s *RunStats) RecordPass() {
	s.Processed++
	s.Passed++
}

// RecordFail counts one failed event
func (s *RunStats) RecordFail() {
	s.Processed++
	s.Failed++
}

// PassRate returns the percentage of processed events that passed
func (s *RunStats) PassRate() float64 {
	if s.Processed == 0 {
		return 0
	}
	return float64(s.Passed) / float64(s.Processed) * 100
}

// Elapsed returns wall time since the run started
func (s *RunStats) Elapsed() time.Duration {
	return time.Since(s.StartedAt)
}

// Rate returns average throughput in events per second
func (s *RunStats) Rate() float64 {
	elapsed := s.Elapsed().Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(s.Processed) / elapsed
}
