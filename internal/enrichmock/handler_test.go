package enrichmock

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scottlepich-lz/enrichment-test-suite/internal/domain"
	"github.com/scottlepich-lz/enrichment-test-suite/internal/stripper"
	"github.com/scottlepich-lz/enrichment-test-suite/internal/validator"
)

const orderEvent = `{
	"event": "Order Completed",
	"userId": "user-1",
	"properties": {
		"order_id": "ORD-1",
		"revenue": 120.5,
		"products": [
			{"sku": "SKU-1", "price": 50.0, "quantity": 2},
			{"sku": "SKU-2", "price": 20.5, "quantity": 1}
		]
	}
}`

func postEvent(t *testing.T, h *Handler, body []byte) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/marketing-feed/enrich-ltv", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)
	return w
}

func TestHandler_HealthCheck(t *testing.T) {
	h := NewHandler(Options{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "ok", response["status"])
}

func TestHandler_Enrich_ComputesFinancialFields(t *testing.T) {
	h := NewHandler(Options{COGSRatio: 0.4}, zap.NewNop())

	w := postEvent(t, h, []byte(orderEvent))
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	props := response["properties"].(map[string]interface{})
	assert.InDelta(t, 120.5, props["ltv"], 0.001)
	assert.InDelta(t, 48.2, props["cogs"], 0.001)
	assert.InDelta(t, 72.3, props["ltv_net"], 0.001)

	products := props["products"].([]interface{})
	require.Len(t, products, 2)
	first := products[0].(map[string]interface{})
	assert.InDelta(t, 100.0, first["ltv"], 0.001)
	assert.InDelta(t, 40.0, first["cogs"], 0.001)

	// Untouched fields are echoed back
	assert.Equal(t, "user-1", response["userId"])
	assert.Equal(t, "ORD-1", props["order_id"])
}

func TestHandler_Enrich_PassesRealValidator(t *testing.T) {
	h := NewHandler(Options{}, zap.NewNop())

	// The round trip the validator binary performs: strip then enrich.
	stripped, err := stripper.Strip([]byte(orderEvent))
	require.NoError(t, err)

	w := postEvent(t, h, stripped)
	require.Equal(t, http.StatusOK, w.Code)

	verdict := validator.Validate(w.Body.Bytes())
	assert.Equal(t, domain.OutcomePass, verdict.Outcome, "fields: %v", verdict.Fields)
}

func TestHandler_Enrich_OmittedFieldsFailValidation(t *testing.T) {
	h := NewHandler(Options{OmitFields: []string{"cogs", "products.ltv"}}, zap.NewNop())

	w := postEvent(t, h, []byte(orderEvent))
	require.Equal(t, http.StatusOK, w.Code)

	verdict := validator.Validate(w.Body.Bytes())
	assert.Equal(t, domain.OutcomeFail, verdict.Outcome)
	assert.Equal(t, domain.ReasonValidation, verdict.Reason)
	assert.Equal(t, []string{
		"properties.cogs",
		"properties.products[0].ltv",
		"properties.products[1].ltv",
	}, verdict.Fields)
}

func TestHandler_Enrich_NoProductsFallsBackToRevenue(t *testing.T) {
	h := NewHandler(Options{COGSRatio: 0.4}, zap.NewNop())

	w := postEvent(t, h, []byte(`{"properties": {"revenue": 100.0}}`))
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	props := response["properties"].(map[string]interface{})
	assert.InDelta(t, 100.0, props["ltv"], 0.001)
	assert.InDelta(t, 40.0, props["cogs"], 0.001)
	assert.InDelta(t, 60.0, props["ltv_net"], 0.001)
}

func TestHandler_Enrich_MissingProperties(t *testing.T) {
	h := NewHandler(Options{}, zap.NewNop())

	w := postEvent(t, h, []byte(`{"event": "Order Completed"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "validation_error", response.Error)
}

func TestHandler_Enrich_InvalidJSON(t *testing.T) {
	h := NewHandler(Options{}, zap.NewNop())

	w := postEvent(t, h, []byte(`{"event": `))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "validation_error", response.Error)
}
