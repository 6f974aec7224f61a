package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config captures process level configuration, read from ROSTER_* variables.
type Config struct {
	Server   Server
	Log      Log
	Kafka    Kafka
	Redis    RedisConfig
	Pipeline Pipeline
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`
}

// Log selects the slog handler.
type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// Kafka configures the record consumer. An empty broker list disables it.
type Kafka struct {
	Brokers       []string `env:"KAFKA_BROKERS" envSeparator:","`
	ConsumerGroup string   `env:"KAFKA_GROUP" envDefault:"roster-normalizer"`
	ClassTopic    string   `env:"KAFKA_CLASS_TOPIC" envDefault:"roster.wire.classes"`
	DemoTopic     string   `env:"KAFKA_DEMOGRAPHIC_TOPIC" envDefault:"roster.wire.demographics"`
	SessionTopic  string   `env:"KAFKA_SESSION_TOPIC" envDefault:"roster.wire.sessions"`
	// OutputTopic receives canonical re-serialized records.
	OutputTopic string `env:"KAFKA_OUTPUT_TOPIC" envDefault:"roster.normalized"`
}

// RedisConfig configures the watermark store. An empty URL disables it.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
	// WatermarkTTL bounds how long a record's last-modified mark is kept.
	WatermarkTTL time.Duration `env:"WATERMARK_TTL" envDefault:"720h"`
}

// Pipeline tunes batch normalization.
type Pipeline struct {
	Workers int `env:"WORKERS" envDefault:"8"`
}

// Load builds a Config from the process environment so main stays lean.
func Load() (Config, error) {
	return load(env.Options{Prefix: "ROSTER_"})
}

// LoadFrom builds a Config from the given variables instead of the process
// environment.
func LoadFrom(vars map[string]string) (Config, error) {
	return load(env.Options{Prefix: "ROSTER_", Environment: vars})
}

func load(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	cfg.Kafka.Brokers = cleanList(cfg.Kafka.Brokers)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the process cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Pipeline.Workers < 1 {
		errs = append(errs, fmt.Errorf("ROSTER_WORKERS must be at least 1, got %d", c.Pipeline.Workers))
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("ROSTER_LOG_FORMAT must be json or text, got %q", c.Log.Format))
	}
	if c.KafkaEnabled() && c.Kafka.OutputTopic == "" {
		errs = append(errs, errors.New("ROSTER_KAFKA_OUTPUT_TOPIC is required when brokers are set"))
	}
	return errors.Join(errs...)
}

// KafkaEnabled reports whether brokers were configured.
func (c Config) KafkaEnabled() bool {
	return len(c.Kafka.Brokers) > 0
}

// cleanList trims entries and drops blanks and repeats, keeping order, so
// "a:9092, ,a:9092" yields one broker.
func cleanList(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
