package elastic

import (
	"context"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

// Client wraps the Elasticsearch connection.
type Client struct {
	es *elasticsearch.Client
}

// NewClient creates an Elasticsearch client and verifies connectivity.
func NewClient(opts ...ClientOption) (*Client, error) {
	cfg := &ClientConfig{
		Addresses: []string{"http://localhost:9200"},
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if len(cfg.Addresses) == 0 {
		return nil, fmt.Errorf("addresses are required")
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c := &Client{es: es}
	if err := c.Health(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// ES returns the underlying client for direct API use.
func (c *Client) ES() *elasticsearch.Client {
	return c.es
}

// Health performs a ping against the cluster.
func (c *Client) Health(ctx context.Context) error {
	res, err := c.es.Ping(c.es.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch ping: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch ping: %s", res.Status())
	}
	return nil
}
