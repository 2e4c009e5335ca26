package di

import (
	"context"
	"fmt"
	"net"
	"runtime"
	"strconv"
	"time"

	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/criteria"
	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/domain/repository"
	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/handler/api"
	mid "github.com/jasonbowman97/HeatCheckHQ-sub005/internal/middleware"
	internalrepo "github.com/jasonbowman97/HeatCheckHQ-sub005/internal/repository"
	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/service/statfeed"
	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/usecase"
	pkgcache "github.com/jasonbowman97/HeatCheckHQ-sub005/pkg/cache"
	pkgch "github.com/jasonbowman97/HeatCheckHQ-sub005/pkg/clickhouse"
	"github.com/jasonbowman97/HeatCheckHQ-sub005/pkg/config"
	pkgkafka "github.com/jasonbowman97/HeatCheckHQ-sub005/pkg/kafka"
	applogger "github.com/jasonbowman97/HeatCheckHQ-sub005/pkg/logger"
	"github.com/jasonbowman97/HeatCheckHQ-sub005/pkg/metrics"
	pkgqueue "github.com/jasonbowman97/HeatCheckHQ-sub005/pkg/queue"
	"github.com/jasonbowman97/HeatCheckHQ-sub005/pkg/server"

	"github.com/redis/go-redis/v9"
)

// ProvideClickHouseClient creates a ClickHouse client.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	// Initialize schema
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, []string{
		"CREATE DATABASE IF NOT EXISTS heatcheck",
		`CREATE TABLE IF NOT EXISTS heatcheck.game_logs (
            game_date Date,
            sport LowCardinality(String),
            game_id String,
            player_id String,
            stat LowCardinality(String),
            opponent LowCardinality(String),
            team LowCardinality(String),
            is_home UInt8,
            is_back_to_back UInt8,
            rest_days Int32,
            opp_def_rank Int32,
            value Float64,
            event_id String
        ) ENGINE=ReplacingMergeTree ORDER BY (player_id, stat, game_date)`,
		`CREATE TABLE IF NOT EXISTS heatcheck.slate_props (
            slate_date Date,
            sport LowCardinality(String),
            player_id String,
            stat LowCardinality(String),
            line Float64,
            team LowCardinality(String),
            direction LowCardinality(String)
        ) ENGINE=MergeTree ORDER BY (slate_date, sport, team, player_id, stat)`,
	}); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}

	return producer, nil
}

// ProvideLogger creates the application logger used by handlers and queue.
func ProvideLogger() (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{Level: "info", Format: "console", Output: "stdout"})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCHStorage creates the ClickHouse write-side repository, shared by
// the Storage and SlateStore interfaces.
func ProvideCHStorage(chClient *pkgch.Client, cfg *config.Config) *internalrepo.ClickHouseStorage {
	return internalrepo.NewClickHouseStorage(
		chClient.DB(),
		cfg.ClickHouse.Database+".game_logs",
		cfg.ClickHouse.Database+".slate_props",
	)
}

// ProvideGameLogStorage exposes the game-log write interface.
func ProvideGameLogStorage(s *internalrepo.ClickHouseStorage) repository.Storage { return s }

// ProvideSlateStore exposes the slate write interface.
func ProvideSlateStore(s *internalrepo.ClickHouseStorage) repository.SlateStore { return s }

// ProvideGameLogStore creates the analytics read repository.
func ProvideGameLogStore(chClient *pkgch.Client, lgr *applogger.Logger) repository.GameLogStore {
	store := internalrepo.NewCHGameLogStore(chClient)
	store.SetLogger(lgr)
	return store
}

// ProvideAlertPublisher creates the Kafka alert publisher.
func ProvideAlertPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.AlertPublisher {
	return internalrepo.NewKafkaAlertPublisher(producer, cfg.Kafka.AlertsTopic)
}

// ProvideCriteriaSource creates the criteria source.
func ProvideCriteriaSource() repository.CriteriaSource {
	return internalrepo.NewMemoryCriteriaSource(nil)
}

// ProvideStatFeed creates the live stat feed stream.
func ProvideStatFeed(cfg *config.Config) repository.StatStream {
	return statfeed.New(
		cfg.StatFeed.APIKey,
		cfg.StatFeed.WebSocketURL,
		cfg.StatFeed.Sports,
		cfg.StatFeed.ReconnectDelay,
		cfg.StatFeed.PingInterval,
	)
}

// ProvideSlateFeed creates the REST slate client. Nil when no REST endpoint
// is configured; the slate must then be loaded out of band.
func ProvideSlateFeed(cfg *config.Config) repository.SlateFeed {
	if cfg.StatFeed.RestURL == "" {
		return nil
	}
	return statfeed.NewSlateClient(cfg.StatFeed.APIKey, cfg.StatFeed.RestURL)
}

// ProvideCriteriaEngine creates the rule engine with bounded parallelism.
func ProvideCriteriaEngine(cfg *config.Config) *criteria.Engine {
	workers := cfg.Analytics.CriteriaWorkers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return criteria.NewEngine(criteria.WithWorkers(workers))
}

// ProvidePropReportUseCase creates the analytics read-side use case.
func ProvidePropReportUseCase(store repository.GameLogStore) *usecase.PropReportUseCase {
	return usecase.NewPropReportUseCase(store)
}

// ProvideAlertScanUseCase creates the criteria scan use case.
func ProvideAlertScanUseCase(
	store repository.GameLogStore,
	rules repository.CriteriaSource,
	engine *criteria.Engine,
	reports *usecase.PropReportUseCase,
	pub repository.AlertPublisher,
	m repository.Metrics,
) *usecase.AlertScanUseCase {
	return usecase.NewAlertScanUseCase(store, rules, engine, reports, pub, m)
}

// ProvideScanQueue creates the Redis-backed scan queue when enabled. A nil
// queue means scans run only on demand over HTTP.
func ProvideScanQueue(cfg *config.Config, lgr *applogger.Logger, scans *usecase.AlertScanUseCase) *pkgqueue.RedisQueue {
	if !cfg.Analytics.Redis.Enabled {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Analytics.Redis.Addr,
		Password: cfg.Analytics.Redis.Password,
		DB:       cfg.Analytics.Redis.DB,
	})
	q := pkgqueue.NewRedisQueue(lgr,
		&pkgqueue.QueueConfig{Workers: 2, RetryLimit: 3, RetryDelay: 10 * time.Second},
		client,
		pkgqueue.ModeProducerConsumer,
	)
	q.RegisterJob(usecase.NewScanJob(scans, lgr))
	return q
}

// ProvideSlateSync creates the daily slate sync use case. Nil when no slate
// feed is available.
func ProvideSlateSync(
	feed repository.SlateFeed,
	store repository.SlateStore,
	scanQueue *pkgqueue.RedisQueue,
	m repository.Metrics,
	lgr *applogger.Logger,
	cfg *config.Config,
) *usecase.SlateSyncUseCase {
	if feed == nil {
		return nil
	}
	var enqueuer usecase.ScanEnqueuer
	if scanQueue != nil {
		enqueuer = scanQueue
	}
	hour := cfg.StatFeed.SlateRefreshHour
	if hour == 0 {
		hour = 10 // default to 10:00 UTC, before US slates lock
	}
	return usecase.NewSlateSyncUseCase(feed, store, enqueuer, m, lgr, cfg.StatFeed.Sports, hour)
}

// ProvideGameLogProcessor creates the ingest processor use case.
func ProvideGameLogProcessor(
	store repository.Storage,
	m repository.Metrics,
	scanQueue *pkgqueue.RedisQueue,
	cfg *config.Config,
) *usecase.GameLogProcessor {
	var enqueuer usecase.ScanEnqueuer
	if scanQueue != nil {
		enqueuer = scanQueue
	}
	return usecase.NewGameLogProcessor(
		store,
		m,
		enqueuer,
		cfg.Ingest.BatchSize,
		cfg.Ingest.BatchTimeout,
	)
}

// ProvideGameLogCollector creates the collector use case with the ingest
// pipeline between the feed and storage.
func ProvideGameLogCollector(
	stream repository.StatStream,
	processor *usecase.GameLogProcessor,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.GameLogCollector {
	maxRPS := int(cfg.Ingest.MaxRPS)
	if maxRPS <= 0 {
		maxRPS = 50
	}
	bufSize := cfg.Ingest.BufferSize
	if bufSize <= 0 {
		bufSize = 2000
	}
	pipe := mid.NewIngestPipeline(processor, m,
		mid.WithMaxRPS(maxRPS),
		mid.WithBufferSize(bufSize),
	)
	return usecase.NewGameLogCollector(stream, processor, m, pipe)
}

// ProvideHTTPHandler creates the Echo API handler with caching. With Redis
// enabled the result cache is layered (memory in front of Redis); otherwise
// it is memory only.
func ProvideHTTPHandler(
	lgr *applogger.Logger,
	reports *usecase.PropReportUseCase,
	scans *usecase.AlertScanUseCase,
	rules repository.CriteriaSource,
	cfg *config.Config,
) *api.PropsEchoHandler {
	h := api.NewPropsEchoHandler(lgr, reports, scans, rules)

	var svc pkgcache.Service = pkgcache.NewMemoryCache()
	if cfg.Analytics.Redis.Enabled {
		host, port := splitHostPort(cfg.Analytics.Redis.Addr)
		rc, err := pkgcache.NewRedisCache(
			pkgcache.WithRedisHost(host),
			pkgcache.WithRedisPort(port),
			pkgcache.WithRedisPassword(cfg.Analytics.Redis.Password),
			pkgcache.WithRedisDB(cfg.Analytics.Redis.DB),
			pkgcache.WithRedisPrefix("heatcheck:api"),
		)
		if err != nil {
			lgr.Warn("redis cache unavailable, falling back to memory", applogger.Error(err))
		} else {
			svc = pkgcache.NewLayeredCache(rc)
		}
	}
	h.SetCache(svc)

	h.SetTTL("distribution", cfg.Analytics.CacheTTL.Distribution)
	h.SetTTL("streaks", cfg.Analytics.CacheTTL.Streaks)
	h.SetTTL("convergence", cfg.Analytics.CacheTTL.Convergence)
	return h
}

func splitHostPort(addr string) (string, int) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return addr, 6379
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return host, 6379
	}
	return host, port
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	collector *usecase.GameLogCollector,
	slates *usecase.SlateSyncUseCase,
	chClient *pkgch.Client,
	producer *pkgkafka.Producer,
	scanQueue *pkgqueue.RedisQueue,
	handler *api.PropsEchoHandler,
) *server.App {
	app := server.New(cfg, collector, slates, chClient, producer, scanQueue)
	app.SetHTTPHandler(handler)
	// attach processor to app for closing resources via collector
	if collector != nil {
		app.Proc = collector.Processor()
	}
	return app
}
