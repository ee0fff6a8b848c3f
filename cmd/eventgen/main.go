package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

var (
	count     = flag.Int("count", 250, "Number of events to generate")
	output    = flag.String("output", "order-complete.csv", "Output CSV path")
	malformed = flag.Int("malformed", 0, "Number of malformed payload rows to mix in")
	seed      = flag.Int64("seed", 0, "Random seed (0 for time-based)")
)

const cogsRatio = 0.4

func main() {
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	gofakeit.Seed(*seed)

	log.Printf("Generating sample order-complete events:")
	log.Printf("  Count: %d", *count)
	log.Printf("  Malformed rows: %d", *malformed)
	log.Printf("  Output: %s", *output)

	file, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create output: %v", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"EVENT_ID", "FULL_EVENT_PAYLOAD"}); err != nil {
		log.Fatalf("Failed to write header: %v", err)
	}

	// Spread malformed rows evenly through the file so loader skip handling
	// gets exercised mid-run, not just at the edges.
	step := 0
	if *malformed > 0 {
		step = *count / *malformed
		if step == 0 {
			step = 1
		}
	}

	badLeft := *malformed
	for i := 0; i < *count; i++ {
		if badLeft > 0 && step > 0 && i%step == 0 {
			if err := w.Write([]string{uuid.NewString(), `{"event": "Order Completed", "properties": `}); err != nil {
				log.Fatalf("Failed to write row: %v", err)
			}
			badLeft--
		}

		payload, err := json.Marshal(generateOrderEvent())
		if err != nil {
			log.Fatalf("Failed to marshal event: %v", err)
		}
		if err := w.Write([]string{uuid.NewString(), string(payload)}); err != nil {
			log.Fatalf("Failed to write row: %v", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatalf("Failed to flush output: %v", err)
	}

	log.Printf("Done: %d events (%d malformed) written to %s", *count, *malformed - badLeft, *output)
}

// generateOrderEvent builds one order-complete analytics event with the
// pre-computed financial fields the validator strips before resubmission
func generateOrderEvent() map[string]interface{} {
	productCount := gofakeit.Number(1, 3)
	products := make([]map[string]interface{}, 0, productCount)

	var revenue, orderLTV, orderCOGS float64
	for i := 0; i < productCount; i++ {
		price := round2(gofakeit.Price(5, 500))
		quantity := float64(gofakeit.Number(1, 3))
		ltv := round2(price * quantity)
		cogs := round2(ltv * cogsRatio)

		products = append(products, map[string]interface{}{
			"product_id": gofakeit.UUID(),
			"sku":        fmt.Sprintf("SKU-%06d", gofakeit.Number(1, 999999)),
			"name":       gofakeit.ProductName(),
			"price":      price,
			"quantity":   quantity,
			"ltv":        ltv,
			"cogs":       cogs,
		})

		revenue += price * quantity
		orderLTV += ltv
		orderCOGS += cogs
	}

	return map[string]interface{}{
		"event":     "Order Completed",
		"userId":    gofakeit.UUID(),
		"timestamp": gofakeit.DateRange(time.Now().AddDate(0, -3, 0), time.Now()).Format(time.RFC3339),
		"channel":   gofakeit.RandomString([]string{"web", "mobile", "partner"}),
		"properties": map[string]interface{}{
			"order_id": fmt.Sprintf("ORD-%08d", gofakeit.Number(1, 99999999)),
			"revenue":  round2(revenue),
			"currency": "USD",
			"ltv":      round2(orderLTV),
			"cogs":     round2(orderCOGS),
			"ltv_net":  round2(orderLTV - orderCOGS),
			"products": products,
		},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
