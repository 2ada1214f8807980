package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the service configuration, read from the environment.
type Config struct {
	ServiceName     string        `env:"OTEL_SERVICE_NAME" envDefault:"calculator-api"`
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	APIBasePath     string        `env:"API_BASE_PATH" envDefault:"/api/v1/calculator"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
	OTLPLogs        bool          `env:"OTEL_LOGS_ENABLED" envDefault:"false"`
	Kafka           Kafka         `envPrefix:"KAFKA_"`
}

// Kafka configures the calculation event publisher and consumer.
type Kafka struct {
	Brokers          []string      `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic            string        `env:"TOPIC" envDefault:"calculator-events"`
	GroupID          string        `env:"GROUP_ID" envDefault:"calculator-group"`
	PublisherEnabled bool          `env:"PUBLISHER_ENABLED" envDefault:"true"`
	ConsumerEnabled  bool          `env:"CONSUMER_ENABLED" envDefault:"true"`
	QueueSize        int           `env:"PUBLISH_QUEUE_SIZE" envDefault:"256"`
	BatchTimeout     time.Duration `env:"BATCH_TIMEOUT" envDefault:"10ms"`
}

// Load reads .env when present, then parses the environment. Existing
// process environment variables are not overridden by .env.
func Load() (Config, error) {
	if err := loadDotEnv(); err != nil {
		return Config{}, err
	}
	return Parse()
}

// Parse reads the configuration from the process environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if len(c.APIBasePath) == 0 || c.APIBasePath[0] != '/' {
		return fmt.Errorf("API_BASE_PATH must start with '/', got %q", c.APIBasePath)
	}
	if (c.Kafka.PublisherEnabled || c.Kafka.ConsumerEnabled) && len(c.Kafka.Brokers) == 0 {
		return errors.New("KAFKA_BROKERS is required when the publisher or consumer is enabled")
	}
	if c.Kafka.QueueSize < 1 {
		return fmt.Errorf("KAFKA_PUBLISH_QUEUE_SIZE must be positive, got %d", c.Kafka.QueueSize)
	}
	return nil
}

func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil {
		return nil
	}

	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load .env: %w", err)
}
