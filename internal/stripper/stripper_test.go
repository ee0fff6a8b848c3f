package stripper

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullEvent = `{
	"event": "Order Completed",
	"userId": "user-1",
	"properties": {
		"order_id": "ORD-1",
		"revenue": 100.0,
		"ltv": 120.5,
		"cogs": 48.2,
		"ltv_net": 72.3,
		"products": [
			{"sku": "SKU-1", "price": 50.0, "quantity": 2, "ltv": 100.0, "cogs": 40.0},
			{"sku": "SKU-2", "price": 20.5, "quantity": 1, "ltv": 20.5, "cogs": 8.2}
		]
	}
}`

func TestStrip_RemovesFinancialFields(t *testing.T) {
	stripped, err := Strip([]byte(fullEvent))
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(stripped, &doc))

	props, ok := doc["properties"].(map[string]interface{})
	require.True(t, ok)

	assert.NotContains(t, props, "ltv")
	assert.NotContains(t, props, "cogs")
	assert.NotContains(t, props, "ltv_net")

	// Non-financial fields survive
	assert.Equal(t, "ORD-1", props["order_id"])
	assert.Equal(t, 100.0, props["revenue"])

	products, ok := props["products"].([]interface{})
	require.True(t, ok)
	require.Len(t, products, 2)

	for _, p := range products {
		product := p.(map[string]interface{})
		assert.NotContains(t, product, "ltv")
		assert.NotContains(t, product, "cogs")
		assert.Contains(t, product, "sku")
		assert.Contains(t, product, "price")
	}
}

func TestStrip_InputNeverMutated(t *testing.T) {
	original := []byte(fullEvent)
	before := string(original)

	stripped, err := Strip(original)
	require.NoError(t, err)

	assert.Equal(t, before, string(original))

	// The original still carries every financial field
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(original, &doc))
	props := doc["properties"].(map[string]interface{})
	assert.Contains(t, props, "ltv")
	assert.Contains(t, props, "cogs")
	assert.Contains(t, props, "ltv_net")

	assert.NotEqual(t, string(original), string(stripped))
}

func TestStrip_Idempotent(t *testing.T) {
	once, err := Strip([]byte(fullEvent))
	require.NoError(t, err)

	twice, err := Strip(once)
	require.NoError(t, err)

	assert.JSONEq(t, string(once), string(twice))
}

func TestStrip_NoPropertiesIsNoOp(t *testing.T) {
	payload := `{"event": "Order Completed", "userId": "user-1"}`

	stripped, err := Strip([]byte(payload))
	require.NoError(t, err)
	assert.JSONEq(t, payload, string(stripped))
}

func TestStrip_FieldsAlreadyAbsent(t *testing.T) {
	payload := `{"properties": {"order_id": "ORD-2", "products": [{"sku": "SKU-1"}]}}`

	stripped, err := Strip([]byte(payload))
	require.NoError(t, err)
	assert.JSONEq(t, payload, string(stripped))
}

func TestStrip_NonObjectProductElements(t *testing.T) {
	payload := `{"properties": {"ltv": 1, "products": ["oops", {"ltv": 2, "sku": "SKU-1"}]}}`

	stripped, err := Strip([]byte(payload))
	require.NoError(t, err)
	assert.JSONEq(t, `{"properties": {"products": ["oops", {"sku": "SKU-1"}]}}`, string(stripped))
}

func TestStrip_InvalidJSON(t *testing.T) {
	_, err := Strip([]byte(`{"properties": `))
	assert.Error(t, err)
}
