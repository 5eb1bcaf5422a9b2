package kafka

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// MessageHandler handles messages from a specific topic.
type MessageHandler interface {
	Topic() string
	Handle(ctx context.Context, data []byte) error
}

// Consumer reads one topic through a consumer group and dispatches to a
// worker pool. A message that still fails after the retry budget is
// committed anyway so a poison record cannot wedge the partition.
type Consumer struct {
	cfg      *ConsumerConfig
	handler  MessageHandler
	reader   *kafka.Reader
	msgChan  chan kafka.Message
	wg       sync.WaitGroup
	cancel   context.CancelFunc
	stopOnce sync.Once
}

// NewConsumer creates a new Kafka consumer.
func NewConsumer(opts ...ConsumerOption) (*Consumer, error) {
	cfg := &ConsumerConfig{
		GroupID:     "default",
		WorkerCount: 1,
		BufferSize:  64,
		RetryMax:    3,
		BackoffMin:  50 * time.Millisecond,
		BackoffMax:  2 * time.Second,
		MinBytes:    10e3,
		MaxBytes:    10e6,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("brokers are required")
	}

	return &Consumer{cfg: cfg, msgChan: make(chan kafka.Message, cfg.BufferSize)}, nil
}

// RegisterHandler sets the handler; its topic decides what gets consumed.
func (c *Consumer) RegisterHandler(h MessageHandler) {
	c.handler = h
}

// Start begins consuming. Blocks until Stop is called or the reader fails.
func (c *Consumer) Start() error {
	if c.handler == nil {
		return fmt.Errorf("no handler registered")
	}

	c.reader = kafka.NewReader(kafka.ReaderConfig{
		Brokers:  c.cfg.Brokers,
		GroupID:  c.cfg.GroupID,
		Topic:    c.handler.Topic(),
		MinBytes: c.cfg.MinBytes,
		MaxBytes: c.cfg.MaxBytes,
	})

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	for i := 0; i < c.cfg.WorkerCount; i++ {
		c.wg.Add(1)
		go c.worker(ctx)
	}

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			close(c.msgChan)
			c.wg.Wait()
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("fetch message: %w", err)
		}
		select {
		case c.msgChan <- msg:
		case <-ctx.Done():
			close(c.msgChan)
			c.wg.Wait()
			return nil
		}
	}
}

func (c *Consumer) worker(ctx context.Context) {
	defer c.wg.Done()
	for msg := range c.msgChan {
		c.handleWithRetry(ctx, msg)
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			log.Printf("kafka: commit failed: %v", err)
		}
	}
}

func (c *Consumer) handleWithRetry(ctx context.Context, msg kafka.Message) {
	backoff := c.cfg.BackoffMin
	for attempt := 0; ; attempt++ {
		err := c.handler.Handle(ctx, msg.Value)
		if err == nil {
			return
		}
		if attempt >= c.cfg.RetryMax {
			log.Printf("kafka: dropping message after %d attempts: %v", attempt+1, err)
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > c.cfg.BackoffMax {
			backoff = c.cfg.BackoffMax
		}
	}
}

// Stop shuts down the consumer.
func (c *Consumer) Stop() {
	c.stopOnce.Do(func() {
		if c.cancel != nil {
			c.cancel()
		}
		if c.reader != nil {
			_ = c.reader.Close()
		}
	})
}
