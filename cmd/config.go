package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER,required"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME,required"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	KafkaHost               string `env:"KAFKA_HOST,required"`
	KafkaNotificationsTopic string `env:"KAFKA_NOTIFICATIONS_TOPIC" envDefault:"loadboard.notifications"`

	AuthJWTSecret string `env:"AUTH_JWT_SECRET,required"`
	AuthJWTIssuer string `env:"AUTH_JWT_ISSUER"`

	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile      string `env:"LOG_FILE"`
	LogMaxSizeMB int    `env:"LOG_MAX_SIZE_MB" envDefault:"100"`

	NotificationRelayBatch int           `env:"NOTIFICATION_RELAY_BATCH" envDefault:"100"`
	StoreTimeout           time.Duration `env:"STORE_TIMEOUT" envDefault:"5s"`
}

// LoadConfig reads .env when present and parses the process environment.
// Variables already set in the environment win over the file.
func LoadConfig(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errList []error
	if c.NotificationRelayBatch < 1 || c.NotificationRelayBatch > 1000 {
		errList = append(errList, fmt.Errorf("NOTIFICATION_RELAY_BATCH must be in [1, 1000], got %d", c.NotificationRelayBatch))
	}
	if c.StoreTimeout <= 0 {
		errList = append(errList, fmt.Errorf("STORE_TIMEOUT must be positive, got %s", c.StoreTimeout))
	}
	if c.LogMaxSizeMB < 1 {
		errList = append(errList, fmt.Errorf("LOG_MAX_SIZE_MB must be positive, got %d", c.LogMaxSizeMB))
	}
	return errors.Join(errList...)
}
