package domain

// ResultRow is one line of the output CSV. Created once per processed event,
// appended immediately, never mutated after write.
type ResultRow struct {
	EventID string
	Outcome Outcome
	// Payload is the original event JSON, serialized exactly as loaded
	Payload string
	// Enriched is the serialized enrichment response. Empty on hard failures
	// (transport errors, non-2xx, unparseable body) where no usable response
	// exists.
	Enriched string
}
