package domain

import "encoding/json"

// EventRecord represents a single event loaded from the input CSV
type EventRecord struct {
	// ID is the EVENT_ID column value, opaque and assumed unique per row
	ID string
	// Payload is the original event JSON exactly as it appeared in the input.
	// Never mutated after loading.
	Payload json.RawMessage
	// Row is the 1-based data row number in the input file, used for logging
	Row int
}

// Outcome is the per-event test result
type Outcome string

const (
	OutcomePass Outcome = "PASS"
	OutcomeFail Outcome = "FAIL"
)

// FailureReason classifies why an event failed
type FailureReason string

const (
	ReasonConnectionError FailureReason = "CONNECTION_ERROR"
	ReasonTimeout         FailureReason = "TIMEOUT"
	ReasonHTTPStatus      FailureReason = "NON_2XX_STATUS"
	ReasonParseError      FailureReason = "RESPONSE_PARSE_ERROR"
	ReasonValidation      FailureReason = "VALIDATION_FAILURE"
)

// Verdict is the result of checking one enriched response
type Verdict struct {
	Outcome Outcome
	Reason  FailureReason
	// Fields lists every missing or non-numeric field path when
	// Reason is VALIDATION_FAILURE
	Fields []string
}

// Pass reports whether the verdict is a pass
func (v *Verdict) Pass() bool {
	return v.Outcome == OutcomePass
}
