package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jasonbowman97/HeatCheckHQ-sub005/pkg/util"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Ingest struct {
		BatchSize    int           `yaml:"batch_size"`
		BatchTimeout time.Duration `yaml:"batch_timeout"`
		BufferSize   int           `yaml:"buffer_size"`
		MaxRPS       float64       `yaml:"max_rps"`
	} `yaml:"ingest"`
	Kafka struct {
		Brokers      []string `yaml:"brokers"`
		AlertsTopic  string   `yaml:"alerts_topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			BatchBytes   int           `yaml:"batch_bytes"`
			BatchSize    int           `yaml:"batch_size"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		AsyncInsert      bool          `yaml:"async_insert"`
		WaitForAsync     bool          `yaml:"wait_for_async_insert"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	StatFeed struct {
		APIKey           string        `yaml:"api_key"`
		WebSocketURL     string        `yaml:"websocket_url"`
		RestURL          string        `yaml:"rest_url"`
		Sports           []string      `yaml:"sports"`
		ReconnectDelay   time.Duration `yaml:"reconnect_delay"`
		PingInterval     time.Duration `yaml:"ping_interval"`
		SlateRefreshHour int           `yaml:"slate_refresh_hour"`
	} `yaml:"statfeed"`
	Analytics struct {
		CriteriaWorkers int `yaml:"criteria_workers"`
		CacheTTL        struct {
			Distribution time.Duration `yaml:"distribution"`
			Correlation  time.Duration `yaml:"correlation"`
			Streaks      time.Duration `yaml:"streaks"`
			Convergence  time.Duration `yaml:"convergence"`
		} `yaml:"cache_ttl"`
		Redis struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"analytics"`
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

	// Validate required fields
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

	// Override with environment variables
	if v := os.Getenv("STATFEED_API_KEY"); v != "" {
		c.StatFeed.APIKey = v
	}
	if v := os.Getenv("SPORTS"); v != "" {
		c.StatFeed.Sports = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_ALERTS_TOPIC"); v != "" {
		c.Kafka.AlertsTopic = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Analytics.Redis.Addr = v
	}
	c.Server.Port = util.ParseIntDefault(os.Getenv("PORT"), c.Server.Port)

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.StatFeed.APIKey == "" {
		return fmt.Errorf("statfeed.api_key is required")
	}
	if len(c.StatFeed.Sports) == 0 {
		return fmt.Errorf("statfeed.sports cannot be empty")
	}
	if c.ClickHouse.Host == "" {
		return fmt.Errorf("clickhouse.host is required")
	}
	if c.StatFeed.SlateRefreshHour < 0 || c.StatFeed.SlateRefreshHour > 23 {
		return fmt.Errorf("statfeed.slate_refresh_hour must be 0-23")
	}
	return nil
}
