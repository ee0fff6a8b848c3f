package enrichmock

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Options configures the mock enrichment behavior
type Options struct {
	// COGSRatio is the fraction of LTV treated as cost of goods sold
	COGSRatio float64
	// OmitFields suppresses computed fields so validator failure paths can
	// be exercised locally. Recognized values: ltv, cogs, ltv_net,
	// products.ltv, products.cogs.
	OmitFields []string
}

// Handler imitates the marketing-feed LTV enrichment API: it recomputes
// order and product level ltv/cogs from product price and quantity and
// echoes the event back with those fields filled in.
type Handler struct {
	opts   Options
	omit   map[string]bool
	router *gin.Engine
	log    *zap.Logger
}

// NewHandler creates a new mock enrichment handler
func NewHandler(opts Options, log *zap.Logger) *Handler {
	if opts.COGSRatio <= 0 {
		opts.COGSRatio = 0.4
	}

	omit := make(map[string]bool, len(opts.OmitFields))
	for _, f := range opts.OmitFields {
		omit[f] = true
	}

	h := &Handler{
		opts:   opts,
		omit:   omit,
		router: gin.Default(),
		log:    log,
	}

	h.registerRoutes()

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.GET("/health", h.healthCheck)
	h.router.POST("/marketing-feed/enrich-ltv", h.enrich)
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// enrich handles POST /marketing-feed/enrich-ltv
func (h *Handler) enrich(c *gin.Context) {
	var event map[string]interface{}

	if err := c.ShouldBindJSON(&event); err != nil {
		h.log.Warn("Invalid enrichment request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	props, ok := event["properties"].(map[string]interface{})
	if !ok {
		h.log.Warn("Enrichment request without properties object")
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "event has no properties object",
		})
		return
	}

	orderLTV, orderCOGS := h.enrichProducts(props)

	if orderLTV == 0 {
		// No products carried a price; fall back to the order revenue.
		orderLTV = numberField(props, "revenue")
		orderCOGS = round2(orderLTV * h.opts.COGSRatio)
	}

	if !h.omit["ltv"] {
		props["ltv"] = orderLTV
	}
	if !h.omit["cogs"] {
		props["cogs"] = orderCOGS
	}
	if !h.omit["ltv_net"] {
		props["ltv_net"] = round2(orderLTV - orderCOGS)
	}

	h.log.Info("Event enriched",
		zap.Float64("ltv", orderLTV),
		zap.Float64("cogs", orderCOGS))

	c.JSON(http.StatusOK, event)
}

// enrichProducts fills per-product ltv/cogs and returns the order totals
func (h *Handler) enrichProducts(props map[string]interface{}) (float64, float64) {
	products, ok := props["products"].([]interface{})
	if !ok {
		return 0, 0
	}

	var totalLTV, totalCOGS float64
	for _, p := range products {
		product, ok := p.(map[string]interface{})
		if !ok {
			continue
		}

		price := numberField(product, "price")
		quantity := numberField(product, "quantity")
		if quantity == 0 {
			quantity = 1
		}

		ltv := round2(price * quantity)
		cogs := round2(ltv * h.opts.COGSRatio)

		if !h.omit["products.ltv"] {
			product["ltv"] = ltv
		}
		if !h.omit["products.cogs"] {
			product["cogs"] = cogs
		}

		totalLTV += ltv
		totalCOGS += cogs
	}

	return round2(totalLTV), round2(totalCOGS)
}

func numberField(m map[string]interface{}, key string) float64 {
	if val, ok := m[key].(float64); ok {
		return val
	}
	return 0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
