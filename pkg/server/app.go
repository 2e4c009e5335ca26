package server

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/usecase"
	pkgch "github.com/jasonbowman97/HeatCheckHQ-sub005/pkg/clickhouse"
	"github.com/jasonbowman97/HeatCheckHQ-sub005/pkg/config"
	xhttp "github.com/jasonbowman97/HeatCheckHQ-sub005/pkg/http"
	pkgkafka "github.com/jasonbowman97/HeatCheckHQ-sub005/pkg/kafka"
	applogger "github.com/jasonbowman97/HeatCheckHQ-sub005/pkg/logger"
	pkgqueue "github.com/jasonbowman97/HeatCheckHQ-sub005/pkg/queue"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg         *config.Config
	collector   *usecase.GameLogCollector
	slates      *usecase.SlateSyncUseCase
	chClient    *pkgch.Client
	producer    *pkgkafka.Producer
	scanQueue   *pkgqueue.RedisQueue
	httpServer  *xhttp.Server
	httpHandler xhttp.Handler
	Proc        *usecase.GameLogProcessor
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	collector *usecase.GameLogCollector,
	slates *usecase.SlateSyncUseCase,
	chClient *pkgch.Client,
	producer *pkgkafka.Producer,
	scanQueue *pkgqueue.RedisQueue,
) *App {
	return &App{
		cfg:       cfg,
		collector: collector,
		slates:    slates,
		chClient:  chClient,
		producer:  producer,
		scanQueue: scanQueue,
	}
}

// SetHTTPHandler allows DI to inject an HTTP handler.
func (a *App) SetHTTPHandler(h xhttp.Handler) { a.httpHandler = h }

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// init app logger (console info by default)
	l, _ := applogger.New(&applogger.Config{Level: "info", Format: "console", Output: "stdout"})

	// Aggregate repeated error logs onto the ops topic when Kafka is wired.
	if a.producer != nil && a.cfg.Kafka.AlertsTopic != "" {
		l.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   30 * time.Second,
			CountThreshold: 100,
			Topic:          a.cfg.Kafka.AlertsTopic + ".logs",
			Publisher:      a.producer,
		})
	}

	a.httpServer = xhttp.NewServer(a.httpHandler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	// Start collector
	go func() {
		if err := a.collector.Start(ctx); err != nil {
			l.Error("collector error", applogger.Error(err))
		}
	}()
	l.Info("collector started", applogger.Strings("sports", a.cfg.StatFeed.Sports))

	// Start daily slate sync if a slate feed is configured
	if a.slates != nil {
		go a.slates.Run(ctx)
		l.Info("slate sync started")
	}

	// Start scan queue workers if configured
	if a.scanQueue != nil {
		if err := a.scanQueue.Start(); err != nil {
			l.Error("scan queue start error", applogger.Error(err))
		} else {
			l.Info("scan queue started")
		}
	}

	// Start HTTP server
	if err := a.httpServer.Start(); err != nil {
		l.Error("http server start error", applogger.Error(err))
		return err
	}

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	l.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	l, err := applogger.New(&applogger.Config{Level: "info", Format: "console", Output: "stdout"})
	if err != nil {
		log.Printf("failed to create logger: %v", err)
		return err
	}
	l.Info("shutting down...")

	// Stop collector (pipeline + stream)
	if err := a.collector.Shutdown(ctx); err != nil {
		l.Warn("collector stop error", applogger.Error(err))
	}

	// Shutdown HTTP server
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		l.Error("http shutdown error", applogger.Error(err))
	}

	// Stop scan queue workers
	if a.scanQueue != nil {
		if err := a.scanQueue.Stop(shutdownCtx); err != nil {
			l.Warn("scan queue stop error", applogger.Error(err))
		}
	}

	// Close infrastructure clients
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			l.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	// Close processor resources (storage)
	if a.Proc != nil {
		a.Proc.Close()
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			l.Warn("kafka producer close error", applogger.Error(err))
		}
	}

	l.Info("shutdown complete")
	return nil
}
