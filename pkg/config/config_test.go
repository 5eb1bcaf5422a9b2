package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const validYAML = `
environment: test
log:
  level: debug
  format: console
  output: stdout
server:
  port: 8080
scheduler:
  enabled: true
  interval: 10m
classifier:
  name: lexicon
aggregation:
  interval_minutes: 10
prediction:
  symbol: AAPL
  analysis_days: 3
  sentiment_threshold: 0.05
  up_factor: 1.01
  down_factor: 0.99
  trade_end_hour: 20
  utc_offset_hours: -6
elasticsearch:
  addresses: ["http://localhost:9200"]
  document_index: documents
  sentiment_index: sentiments
  prediction_index: predictions
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	c, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Environment != "test" {
		t.Fatalf("environment = %q", c.Environment)
	}
	if c.Scheduler.Interval != 10*time.Minute {
		t.Fatalf("scheduler interval = %v", c.Scheduler.Interval)
	}
	if c.Prediction.Symbol != "AAPL" {
		t.Fatalf("prediction symbol = %q", c.Prediction.Symbol)
	}
	if c.AggregationInterval() != 10*time.Minute {
		t.Fatalf("aggregation interval = %v", c.AggregationInterval())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestValidateRejectsUnknownClassifier(t *testing.T) {
	body := validYAML + "\n"
	c, err := Load(writeConfig(t, body))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	c.Classifier.Name = "markov"
	if err := c.Validate(); err == nil {
		t.Fatalf("expected classifier validation error")
	}
}

func TestValidateRejectsBadFeedBackend(t *testing.T) {
	c, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	c.Feed.Enabled = true
	c.Feed.Symbols = []string{"AAPL"}
	c.Feed.Backend = "postgres"
	if err := c.Validate(); err == nil {
		t.Fatalf("expected feed backend validation error")
	}
}

func TestValidateRejectsZeroAggregation(t *testing.T) {
	c, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	c.Aggregation.IntervalMinutes = 0
	if err := c.Validate(); err == nil {
		t.Fatalf("expected aggregation validation error")
	}
}

func TestValidateRejectsBadTradeEndHour(t *testing.T) {
	c, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	c.Prediction.TradeEndHour = 25
	if err := c.Validate(); err == nil {
		t.Fatalf("expected trade_end_hour validation error")
	}
	c.Prediction.TradeEndHour = -1
	if err := c.Validate(); err == nil {
		t.Fatalf("expected trade_end_hour validation error")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("CLASSIFIER", "naive_bayes")
	t.Setenv("LOG_LEVEL", "warn")
	c, err := LoadWithEnv(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Classifier.Name != "naive_bayes" {
		t.Fatalf("classifier = %q", c.Classifier.Name)
	}
	if c.Log.Level != "warn" {
		t.Fatalf("log level = %q", c.Log.Level)
	}
}
