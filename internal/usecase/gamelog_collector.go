package usecase

import (
	"context"

	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/domain/models"
	drepo "github.com/jasonbowman97/HeatCheckHQ-sub005/internal/domain/repository"
	mid "github.com/jasonbowman97/HeatCheckHQ-sub005/internal/middleware"
)

// GameLogCollector consumes the live stat feed and hands events to the
// ingest pipeline.
type GameLogCollector struct {
	stream  drepo.StatStream
	proc    *GameLogProcessor
	metrics drepo.Metrics
	pipe    *mid.IngestPipeline
}

// NewGameLogCollector creates a new GameLogCollector instance.
func NewGameLogCollector(stream drepo.StatStream, proc *GameLogProcessor, metrics drepo.Metrics, pipe *mid.IngestPipeline) *GameLogCollector {
	return &GameLogCollector{stream: stream, proc: proc, metrics: metrics, pipe: pipe}
}

// IsConnected returns true if the stat feed is connected.
func (c *GameLogCollector) IsConnected() bool {
	return c.stream.IsConnected()
}

func (c *GameLogCollector) Start(ctx context.Context) error {
	if err := c.stream.Connect(ctx); err != nil {
		return err
	}
	if err := c.stream.Subscribe(ctx); err != nil {
		return err
	}
	if c.pipe != nil {
		c.pipe.Start(ctx)
	}
	evCh, errCh := c.stream.Read(ctx)
	go c.consume(ctx, evCh, errCh)
	return nil
}

func (c *GameLogCollector) consume(ctx context.Context, evCh <-chan *models.GameEvent, errCh <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case err := <-errCh:
			if err != nil {
				c.metrics.RecordError("stream")
				_ = c.stream.Reconnect(ctx)
			}
		case ev := <-evCh:
			if ev == nil {
				continue
			}
			if c.pipe != nil {
				_ = c.pipe.Process(ctx, ev)
			} else {
				_ = c.proc.Process(ctx, ev)
			}
		}
	}
}

func (c *GameLogCollector) Stop() error { return c.stream.Close() }

// Processor returns the underlying GameLogProcessor for lifecycle management.
func (c *GameLogCollector) Processor() *GameLogProcessor { return c.proc }

// Shutdown stops the pipeline and closes the stream.
func (c *GameLogCollector) Shutdown(ctx context.Context) error {
	if c.pipe != nil {
		c.pipe.Stop()
	}
	return c.stream.Close()
}
