package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config is read from the environment. Values in .env files are loaded first
// and never override variables that are already set.
type Config struct {
	Env      string `env:"ENV" envDefault:"development"`
	GrpcPort string `env:"GRPC_PORT" envDefault:"4020" validate:"required,numeric"`
	HTTPPort string `env:"HTTP_PORT" envDefault:"4021" validate:"required,numeric"`

	DB    DatabaseOptions `envPrefix:"DB_"`
	Redis RedisOptions    `envPrefix:"REDIS_"`
	Kafka KafkaOptions    `envPrefix:"KAFKA_"`
	Cache CacheOptions    `envPrefix:"CACHE_"`
	Jobs  JobOptions      `envPrefix:"JOBS_"`
	Log   LogOptions      `envPrefix:"LOG_"`

	LockTTL time.Duration `env:"LOCK_TTL" envDefault:"30m" validate:"gt=0"`
}

type DatabaseOptions struct {
	Driver   string `env:"DRIVER" envDefault:"postgres" validate:"oneof=postgres sqlite"`
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"5432"`
	User     string `env:"USER" envDefault:"postgres"`
	Password string `env:"PASSWORD" envDefault:"postgres"`
	Name     string `env:"NAME" envDefault:"ptv"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"`
	// Path is the sqlite database file.
	Path  string `env:"PATH" envDefault:"ptv.db"`
	Debug bool   `env:"DEBUG"`
}

type RedisOptions struct {
	// Addr enables the redis view cache. Views are cached in memory when empty.
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" validate:"gte=0"`
}

type KafkaOptions struct {
	// Brokers enables publishing change events to kafka.
	Brokers string `env:"BROKERS"`
	Topic   string `env:"TOPIC" envDefault:"ptv.catalog.changes" validate:"required"`
}

type CacheOptions struct {
	TTL   time.Duration `env:"TTL" envDefault:"10m" validate:"gt=0"`
	Codec string        `env:"CODEC" envDefault:"gzip" validate:"oneof=nop none gzip brotli lz4"`
}

type JobOptions struct {
	Enabled bool `env:"ENABLED" envDefault:"true"`
	// Schedules and LockReaper are robfig/cron specs.
	Schedules  string `env:"SCHEDULES" envDefault:"@every 1m" validate:"required"`
	LockReaper string `env:"LOCK_REAPER" envDefault:"@every 5m" validate:"required"`
}

type LogOptions struct {
	Level  string `env:"LEVEL" envDefault:"info" validate:"oneof=trace debug info warn warning error fatal panic"`
	Format string `env:"FORMAT" envDefault:"text" validate:"oneof=text json"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadConfig reads the configuration from .env files and the environment.
func LoadConfig() (*Config, error) {
	if err := loadEnvFiles(".env", ".env.local"); err != nil {
		return nil, err
	}

	cnf := &Config{}
	if err := env.Parse(cnf); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cnf.Validate(); err != nil {
		return nil, err
	}

	return cnf, nil
}

func loadEnvFiles(names ...string) error {
	existing := make([]string, 0, len(names))
	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			existing = append(existing, name)
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	if len(existing) == 0 {
		return nil
	}

	return godotenv.Load(existing...)
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c *Config) Production() bool {
	return c.Env == "production"
}

// ConnectionString returns the postgres url of the database.
func (o DatabaseOptions) ConnectionString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(o.User, o.Password),
		Host:     o.Host + ":" + o.Port,
		Path:     o.Name,
		RawQuery: "sslmode=" + url.QueryEscape(o.SSLMode),
	}
	return u.String()
}

// SetupLogging configures the logrus standard logger.
func SetupLogging(o LogOptions) error {
	level, err := logrus.ParseLevel(strings.ToLower(o.Level))
	if err != nil {
		return err
	}
	logrus.SetLevel(level)

	if o.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return nil
}
