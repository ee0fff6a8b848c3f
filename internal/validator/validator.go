package validator

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/scottlepich-lz/enrichment-test-suite/internal/domain"
)

// Validate checks that an enrichment response recomputed every stripped
// financial field. The body must parse as a JSON object containing a
// properties object with numeric ltv, cogs and ltv_net, and numeric ltv and
// cogs on every element of properties.products. Every missing or non-numeric
// field path is accumulated into the verdict, not just the first.
func Validate(body []byte) *domain.Verdict {
	var doc map[string]interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return &domain.Verdict{
			Outcome: domain.OutcomeFail,
			Reason:  domain.ReasonParseError,
		}
	}

	// The enrichment service reports its own failures as an error key
	// in an otherwise 200 response.
	if errMsg, ok := doc["error"]; ok {
		return &domain.Verdict{
			Outcome: domain.OutcomeFail,
			Reason:  domain.ReasonValidation,
			Fields:  []string{fmt.Sprintf("error: %v", errMsg)},
		}
	}

	props, _ := doc["properties"].(map[string]interface{})

	var bad []string
	for _, field := range []string{"ltv", "cogs", "ltv_net"} {
		if path, ok := checkNumeric(props, field, "properties."+field); !ok {
			bad = append(bad, path)
		}
	}

	if products, ok := props["products"].([]interface{}); ok {
		for i, p := range products {
			product, _ := p.(map[string]interface{})
			for _, field := range []string{"ltv", "cogs"} {
				path := fmt.Sprintf("properties.products[%d].%s", i, field)
				if path, ok := checkNumeric(product, field, path); !ok {
					bad = append(bad, path)
				}
			}
		}
	}

	if len(bad) > 0 {
		return &domain.Verdict{
			Outcome: domain.OutcomeFail,
			Reason:  domain.ReasonValidation,
			Fields:  bad,
		}
	}

	return &domain.Verdict{Outcome: domain.OutcomePass}
}

// checkNumeric reports whether obj[field] is present with a numeric value.
// Numeric strings are accepted; the enrichment service has historically
// returned amounts both ways.
func checkNumeric(obj map[string]interface{}, field, path string) (string, bool) {
	if obj == nil {
		return path, false
	}
	val, ok := obj[field]
	if !ok {
		return path, false
	}
	if !isNumeric(val) {
		return path + " (non-numeric)", false
	}
	return path, true
}

func isNumeric(val interface{}) bool {
	switch v := val.(type) {
	case float64:
		return true
	case json.Number:
		return true
	case string:
		_, err := strconv.ParseFloat(v, 64)
		return err == nil
	default:
		return false
	}
}
