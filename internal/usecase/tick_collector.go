package usecase

import (
	"context"
	"time"

	"TrendPulse/internal/domain/models"
	drepo "TrendPulse/internal/domain/repository"
)

const (
	collectorBatchSize    = 200
	collectorFlushTimeout = time.Second
)

// TickCollector reads the market stream and hands ticks to the processor in
// batches, flushing on size or on a timer so quiet symbols still land.
type TickCollector struct {
	stream  drepo.MarketStream
	proc    *TickProcessor
	metrics drepo.Metrics
}

// NewTickCollector creates a new TickCollector instance.
func NewTickCollector(stream drepo.MarketStream, proc *TickProcessor, metrics drepo.Metrics) *TickCollector {
	return &TickCollector{stream: stream, proc: proc, metrics: metrics}
}

// IsConnected returns true if the market stream is connected.
func (c *TickCollector) IsConnected() bool {
	return c.stream.IsConnected()
}

func (c *TickCollector) Start(ctx context.Context) error {
	if err := c.stream.Connect(ctx); err != nil {
		return err
	}
	if err := c.stream.Subscribe(ctx); err != nil {
		return err
	}
	tickCh, errCh := c.stream.Read(ctx)
	go c.consume(ctx, tickCh, errCh)
	return nil
}

func (c *TickCollector) consume(ctx context.Context, tickCh <-chan *models.PriceTick, errCh <-chan error) {
	batch := make([]*models.PriceTick, 0, collectorBatchSize)
	timer := time.NewTicker(collectorFlushTimeout)
	defer timer.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		_ = c.proc.ProcessBatch(ctx, batch)
		batch = batch[:0]
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			return
		case err := <-errCh:
			if err != nil {
				c.metrics.RecordError("stream")
				flush()
				_ = c.stream.Reconnect(ctx)
				tickCh, errCh = c.stream.Read(ctx)
			}
		case t := <-tickCh:
			if t == nil {
				continue
			}
			batch = append(batch, t)
			c.metrics.RecordLastPrice(t.Symbol, t.Price)
			if len(batch) >= collectorBatchSize {
				flush()
			}
		case <-timer.C:
			flush()
		}
	}
}

// Stop closes the market stream.
func (c *TickCollector) Stop() error { return c.stream.Close() }

// Processor returns the underlying TickProcessor for lifecycle management.
func (c *TickCollector) Processor() *TickProcessor { return c.proc }
