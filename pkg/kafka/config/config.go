package kafka_config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"roombook/pkg/logger"
)

// Config describes where booking events go and how the service talks to the
// brokers. Topic and DLQTopic are used by the producer; Consumer.Group is the
// group the events command joins.
type Config struct {
	Brokers  []string
	Topic    string
	DLQTopic string

	Producer ProducerConfig
	Consumer ConsumerConfig

	EnableMiddleware bool
}

type ProducerConfig struct {
	MaxAttempts  int
	BatchTimeout time.Duration
	RequireAcks  int // -1 all replicas, 0 none, 1 leader
	Compression  string
}

type ConsumerConfig struct {
	Group             string
	StartOffset       int64 // -1 newest, -2 oldest
	MinBytes          int
	MaxBytes          int
	MaxWait           time.Duration
	CommitInterval    time.Duration // 0 commits synchronously
	HeartbeatInterval time.Duration
	SessionTimeout    time.Duration
	RebalanceTimeout  time.Duration
	MaxRetries        int
}

// Load reads the Kafka settings from the environment and validates them.
func Load() (*Config, error) {
	cfg := &Config{
		Brokers:  splitBrokers(getEnvStr(EnvKafkaBrokers, DefaultKafkaBrokers)),
		Topic:    getEnvStr(EnvEventsTopic, DefaultEventsTopic),
		DLQTopic: getEnvStr(EnvEventsDLQTopic, DefaultEventsDLQTopic),

		Producer: ProducerConfig{
			MaxAttempts:  getEnvInt(EnvProducerMaxAttempts, DefaultProducerMaxAttempts),
			BatchTimeout: getEnvDuration(EnvProducerBatchTimeout, DefaultProducerBatchTimeout),
			RequireAcks:  getEnvInt(EnvProducerRequireAcks, DefaultProducerRequireAcks),
			Compression:  getEnvStr(EnvProducerCompression, DefaultProducerCompression),
		},
		Consumer: ConsumerConfig{
			Group:             getEnvStr(EnvEventsConsumerGroup, DefaultEventsConsumerGroup),
			StartOffset:       int64(getEnvInt(EnvConsumerStartOffset, DefaultConsumerStartOffset)),
			MinBytes:          getEnvInt(EnvConsumerMinBytes, DefaultConsumerMinBytes),
			MaxBytes:          getEnvInt(EnvConsumerMaxBytes, DefaultConsumerMaxBytes),
			MaxWait:           getEnvDuration(EnvConsumerMaxWait, DefaultConsumerMaxWait),
			CommitInterval:    getEnvDuration(EnvConsumerCommitInterval, DefaultConsumerCommitInterval),
			HeartbeatInterval: getEnvDuration(EnvConsumerHeartbeatInterval, DefaultConsumerHeartbeatInterval),
			SessionTimeout:    getEnvDuration(EnvConsumerSessionTimeout, DefaultConsumerSessionTimeout),
			RebalanceTimeout:  getEnvDuration(EnvConsumerRebalanceTimeout, DefaultConsumerRebalanceTimeout),
			MaxRetries:        getEnvInt(EnvConsumerMaxRetries, DefaultConsumerMaxRetries),
		},

		EnableMiddleware: getEnvBool(EnvEnableMiddleware, DefaultEnableMiddleware),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func splitBrokers(list string) []string {
	brokers := strings.Split(list, ",")
	for i, broker := range brokers {
		brokers[i] = strings.TrimSpace(broker)
	}
	return brokers
}

var (
	validCompressions = map[string]bool{"none": true, "gzip": true, "snappy": true, "lz4": true, "zstd": true}
	validAcks         = map[int]bool{-1: true, 0: true, 1: true}
)

func (cfg *Config) Validate() error {
	var errors []string
	positive := func(name string, d time.Duration) {
		if d <= 0 {
			errors = append(errors, fmt.Sprintf("%s must be positive, got: %s", name, d))
		}
	}

	for i, broker := range cfg.Brokers {
		if broker == "" {
			errors = append(errors, fmt.Sprintf("Broker %d cannot be empty", i))
		}
	}
	if cfg.Topic == "" {
		errors = append(errors, "Topic cannot be empty")
	}
	if cfg.DLQTopic != "" && cfg.DLQTopic == cfg.Topic {
		errors = append(errors, fmt.Sprintf("DLQTopic must differ from Topic, both are: %s", cfg.Topic))
	}

	p := cfg.Producer
	if p.MaxAttempts <= 0 {
		errors = append(errors, fmt.Sprintf("Producer.MaxAttempts must be positive, got: %d", p.MaxAttempts))
	}
	positive("Producer.BatchTimeout", p.BatchTimeout)
	if !validAcks[p.RequireAcks] {
		errors = append(errors, fmt.Sprintf("Producer.RequireAcks must be -1, 0, or 1, got: %d", p.RequireAcks))
	}
	if !validCompressions[p.Compression] {
		errors = append(errors, fmt.Sprintf("Producer.Compression must be one of [none, gzip, snappy, lz4, zstd], got: %s", p.Compression))
	}

	c := cfg.Consumer
	if c.Group == "" {
		errors = append(errors, "Consumer.Group cannot be empty")
	}
	if c.StartOffset != -1 && c.StartOffset != -2 {
		errors = append(errors, fmt.Sprintf("Consumer.StartOffset must be -1 (newest) or -2 (oldest), got: %d", c.StartOffset))
	}
	if c.MinBytes <= 0 || c.MaxBytes < c.MinBytes {
		errors = append(errors, fmt.Sprintf("Consumer byte limits must satisfy 0 < MinBytes <= MaxBytes, got: %d..%d", c.MinBytes, c.MaxBytes))
	}
	positive("Consumer.MaxWait", c.MaxWait)
	if c.CommitInterval < 0 {
		errors = append(errors, fmt.Sprintf("Consumer.CommitInterval cannot be negative, got: %s", c.CommitInterval))
	}
	positive("Consumer.HeartbeatInterval", c.HeartbeatInterval)
	positive("Consumer.SessionTimeout", c.SessionTimeout)
	positive("Consumer.RebalanceTimeout", c.RebalanceTimeout)
	if c.MaxRetries < 0 {
		errors = append(errors, fmt.Sprintf("Consumer.MaxRetries cannot be negative, got: %d", c.MaxRetries))
	}

	if len(errors) > 0 {
		errMsg := "Kafka configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}
	return nil
}

func (cfg *Config) LogConfiguration(log *logger.Logger) {
	log.Info("Kafka configuration loaded successfully",
		"brokers", cfg.Brokers,
		"topic", cfg.Topic,
		"dlq_topic", cfg.DLQTopic,
		"consumer_group", cfg.Consumer.Group,
		"producer_require_acks", cfg.Producer.RequireAcks,
		"producer_compression", cfg.Producer.Compression,
		"consumer_start_offset", cfg.Consumer.StartOffset,
		"consumer_max_retries", cfg.Consumer.MaxRetries,
		"enable_middleware", cfg.EnableMiddleware,
	)
}

func getEnvStr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return fallback
}
