package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ServiceEnvironment string  `envconfig:"SERVICE_ENVIRONMENT" default:"development"`
	EnrichEndpoint     string  `envconfig:"ENRICH_ENDPOINT" default:"https://experimentation.dev.apigw.legalzoom.com/marketing-feed/enrich-ltv"`
	InputCSV           string  `envconfig:"INPUT_CSV" default:"order-complete.csv"`
	OutputCSV          string  `envconfig:"OUTPUT_CSV" default:""`
	ProgressInterval   int     `envconfig:"PROGRESS_INTERVAL" default:"100"`
	RequestTimeoutSec  int     `envconfig:"REQUEST_TIMEOUT_SEC" default:"30"`
	MockPort           string  `envconfig:"MOCKENRICH_PORT" default:"8090"`
	MockOmitFields     string  `envconfig:"MOCKENRICH_OMIT_FIELDS" default:""`
	MockCOGSRatio      float64 `envconfig:"MOCKENRICH_COGS_RATIO" default:"0.4"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

// RequestTimeout returns the per-event HTTP timeout
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSec) * time.Second
}

// MockOmitFieldList parses the comma-separated MOCKENRICH_OMIT_FIELDS value
func (c *Config) MockOmitFieldList() []string {
	var fields []string
	for _, f := range strings.Split(c.MockOmitFields, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

// OutputPath returns the configured output path, or a timestamped default
// derived at the given start time so reruns never clobber a previous report.
func (c *Config) OutputPath(now time.Time) string {
	if c.OutputCSV != "" {
		return c.OutputCSV
	}
	return fmt.Sprintf("order-complete-enriched-%s.csv", now.Format("20060102_150405"))
}
