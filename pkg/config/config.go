package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Log         struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	Server struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Scheduler struct {
		Enabled  bool          `yaml:"enabled"`
		Interval time.Duration `yaml:"interval"`
	} `yaml:"scheduler"`
	Classifier struct {
		Name           string `yaml:"name"`
		CorpusDir      string `yaml:"corpus_dir"`
		StopWordsFile  string `yaml:"stop_words_file"`
		SpamFilterFile string `yaml:"spam_filter_file"`
		ModelPath      string `yaml:"model_path"`
		VocabularySize int    `yaml:"vocabulary_size"`
		Evaluate       bool   `yaml:"evaluate"`
		HoldoutSize    int    `yaml:"holdout_size"`
	} `yaml:"classifier"`
	Aggregation struct {
		IntervalMinutes int `yaml:"interval_minutes"`
	} `yaml:"aggregation"`
	Prediction struct {
		Symbol             string  `yaml:"symbol"`
		AnalysisDays       int     `yaml:"analysis_days"`
		SentimentThreshold float64 `yaml:"sentiment_threshold"`
		UpFactor           float64 `yaml:"up_factor"`
		DownFactor         float64 `yaml:"down_factor"`
		TradeEndHour       int     `yaml:"trade_end_hour"`
		UTCOffsetHours     int     `yaml:"utc_offset_hours"`
	} `yaml:"prediction"`
	Elasticsearch struct {
		Addresses       []string      `yaml:"addresses"`
		Username        string        `yaml:"username"`
		Password        string        `yaml:"password"`
		DocumentIndex   string        `yaml:"document_index"`
		SentimentIndex  string        `yaml:"sentiment_index"`
		PredictionIndex string        `yaml:"prediction_index"`
		SearchFilter    string        `yaml:"search_filter"`
		ScrollBatchSize int           `yaml:"scroll_batch_size"`
		ScrollKeepAlive time.Duration `yaml:"scroll_keep_alive"`
		BulkChunkSize   int           `yaml:"bulk_chunk_size"`
		MaxDocuments    int           `yaml:"max_documents"`
		RequestTimeout  time.Duration `yaml:"request_timeout"`
	} `yaml:"elasticsearch"`
	ClickHouse struct {
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	Kafka struct {
		Enabled      bool     `yaml:"enabled"`
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Consumer     struct {
			GroupID    string        `yaml:"group_id"`
			Workers    int           `yaml:"workers"`
			BufferSize int           `yaml:"buffer_size"`
			RetryMax   int           `yaml:"retry_max"`
			BackoffMin time.Duration `yaml:"backoff_min"`
			BackoffMax time.Duration `yaml:"backoff_max"`
		} `yaml:"consumer"`
	} `yaml:"kafka"`
	Feed struct {
		Enabled        bool          `yaml:"enabled"`
		Backend        string        `yaml:"backend"`
		WebSocketURL   string        `yaml:"websocket_url"`
		APIKey         string        `yaml:"api_key"`
		Symbols        []string      `yaml:"symbols"`
		ReconnectDelay time.Duration `yaml:"reconnect_delay"`
		PingInterval   time.Duration `yaml:"ping_interval"`
	} `yaml:"feed"`
	Cache struct {
		Enabled  bool          `yaml:"enabled"`
		Addr     string        `yaml:"addr"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db"`
		TTL      time.Duration `yaml:"ttl"`
	} `yaml:"cache"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("ES_ADDRESSES"); v != "" {
		c.Elasticsearch.Addresses = strings.Split(v, ",")
	}
	if v := os.Getenv("CLASSIFIER"); v != "" {
		c.Classifier.Name = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("FEED_API_KEY"); v != "" {
		c.Feed.APIKey = v
	}
	if v := os.Getenv("SYMBOLS"); v != "" {
		c.Feed.Symbols = strings.Split(v, ",")
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Classifier.Name == "" {
		return fmt.Errorf("classifier.name is required")
	}
	if c.Classifier.Name != "naive_bayes" && c.Classifier.Name != "lexicon" {
		return fmt.Errorf("classifier.name must be 'naive_bayes' or 'lexicon', got '%s'", c.Classifier.Name)
	}
	if len(c.Elasticsearch.Addresses) == 0 {
		return fmt.Errorf("elasticsearch.addresses cannot be empty")
	}
	if c.Aggregation.IntervalMinutes <= 0 {
		return fmt.Errorf("aggregation.interval_minutes must be positive")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	if c.Feed.Enabled && len(c.Feed.Symbols) == 0 {
		return fmt.Errorf("feed.symbols cannot be empty when the feed is enabled")
	}
	if c.Feed.Enabled && c.Feed.Backend != "kafka" && c.Feed.Backend != "clickhouse" {
		return fmt.Errorf("feed.backend must be 'kafka' or 'clickhouse', got '%s'", c.Feed.Backend)
	}
	if c.Prediction.TradeEndHour < 0 || c.Prediction.TradeEndHour > 23 {
		return fmt.Errorf("prediction.trade_end_hour must be between 0 and 23, got %d", c.Prediction.TradeEndHour)
	}
	return nil
}

// AggregationInterval returns the bucket width as a duration.
func (c *Config) AggregationInterval() time.Duration {
	return time.Duration(c.Aggregation.IntervalMinutes) * time.Minute
}
