package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the service configuration read from the environment.
type Config struct {
	Addr        string `env:"KYC_ADDR" envDefault:":8080"`
	Environment string `env:"KYC_ENV" envDefault:"local"`
	LogLevel    string `env:"KYC_LOG_LEVEL" envDefault:"info"`
	AdminToken  string `env:"ADMIN_API_TOKEN"`

	RequestTimeout time.Duration `env:"KYC_REQUEST_TIMEOUT" envDefault:"90s"`
	// EvidenceTimeout bounds the concurrent evidence stages of one submission.
	EvidenceTimeout time.Duration `env:"KYC_EVIDENCE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"KYC_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// TracingEndpoint enables OTLP/HTTP trace export when set.
	TracingEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	// RequiredTypes is the set of verification types that must all be
	// verified for a user to be KYC verified.
	RequiredTypes []string `env:"KYC_REQUIRED_TYPES" envDefault:"national_id,selfie,address" envSeparator:","`

	Evidence EvidenceConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
}

// EvidenceConfig configures image fetching and the external engines.
type EvidenceConfig struct {
	FetchTimeout     time.Duration `env:"KYC_FETCH_TIMEOUT" envDefault:"30s"`
	MaxImageBytes    int64         `env:"KYC_MAX_IMAGE_BYTES" envDefault:"15728640"`
	MaxImagePixels   int64         `env:"KYC_MAX_IMAGE_PIXELS" envDefault:"40000000"`
	OCREngineURL     string        `env:"KYC_OCR_ENGINE_URL"`
	InferenceURL     string        `env:"KYC_INFERENCE_URL"`
	SimilarityMin    float64       `env:"KYC_SIMILARITY_MIN" envDefault:"0"`
	SimilarityMax    float64       `env:"KYC_SIMILARITY_MAX" envDefault:"1"`
	BreakerFailures  int           `env:"KYC_SIMILARITY_BREAKER_FAILURES" envDefault:"5"`
	BreakerCoolDown  time.Duration `env:"KYC_SIMILARITY_BREAKER_COOLDOWN" envDefault:"30s"`
	EvidenceCacheTTL time.Duration `env:"KYC_EVIDENCE_CACHE_TTL" envDefault:"10m"`
}

// DatabaseConfig configures the PostgreSQL record store. An empty URL selects the in-memory store.
type DatabaseConfig struct {
	URL             string        `env:"DATABASE_URL"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
	Migrate         bool          `env:"DB_MIGRATE" envDefault:"true"`
}

// RedisConfig configures the evidence cache. An empty URL disables caching.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

// KafkaConfig configures the notification producer. Empty brokers select the log notifier.
type KafkaConfig struct {
	Brokers           string        `env:"KAFKA_BROKERS"`
	Acks              string        `env:"KAFKA_ACKS" envDefault:"all"`
	Retries           int           `env:"KAFKA_RETRIES" envDefault:"3"`
	DeliveryTimeout   time.Duration `env:"KAFKA_DELIVERY_TIMEOUT" envDefault:"30s"`
	NotificationTopic string        `env:"KYC_NOTIFICATION_TOPIC" envDefault:"kyc.status.changed"`
}

// FromEnv parses the environment so main stays lean.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	cleaned := make([]string, 0, len(c.RequiredTypes))
	for _, t := range c.RequiredTypes {
		if t = strings.TrimSpace(t); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	if len(cleaned) == 0 {
		return fmt.Errorf("KYC_REQUIRED_TYPES must name at least one verification type")
	}
	c.RequiredTypes = cleaned

	if c.Evidence.SimilarityMax <= c.Evidence.SimilarityMin {
		return fmt.Errorf("KYC_SIMILARITY_MAX must be greater than KYC_SIMILARITY_MIN")
	}
	if c.Evidence.MaxImagePixels <= 0 {
		return fmt.Errorf("KYC_MAX_IMAGE_PIXELS must be positive")
	}
	if c.Evidence.FetchTimeout <= 0 {
		return fmt.Errorf("KYC_FETCH_TIMEOUT must be positive")
	}
	return nil
}
