package stripper

import (
	"encoding/json"
	"fmt"
)

// Financial fields the enrichment service is expected to recompute.
var (
	orderFields   = []string{"ltv", "cogs", "ltv_net"}
	productFields = []string{"ltv", "cogs"}
)

// Strip returns a new JSON document with the pre-computed financial fields
// removed: ltv, cogs and ltv_net on the properties object, and ltv and cogs
// on every element of properties.products. The input bytes are never mutated
// and nothing from the input is aliased into the result. Fields that are
// already absent are a no-op, so Strip is idempotent.
func Strip(payload []byte) ([]byte, error) {
	var doc map[string]interface{}
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event payload: %w", err)
	}

	props, ok := doc["properties"].(map[string]interface{})
	if !ok {
		// Nothing to strip; still return an independent copy.
		return json.Marshal(doc)
	}

	for _, field := range orderFields {
		delete(props, field)
	}

	if products, ok := props["products"].([]interface{}); ok {
		for _, p := range products {
			product, ok := p.(map[string]interface{})
			if !ok {
				continue
			}
			for _, field := range productFields {
				delete(product, field)
			}
		}
	}

	stripped, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal stripped payload: %w", err)
	}

	return stripped, nil
}
