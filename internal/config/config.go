package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	ScreenshotStoreInline = "inline"
	ScreenshotStoreS3     = "s3"
)

type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	Log      LogConfig
	Database DatabaseConfig
	Payment  PaymentConfig
	Storage  StorageConfig

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	AdminJWTSecret     string   `env:"ADMIN_JWT_SECRET"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type DatabaseConfig struct {
	URL      string `env:"DATABASE_URL"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName   string `env:"DB_NAME" envDefault:"team_registration"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"25"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
	ConnectTimeout  time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"5s"`
}

type PaymentConfig struct {
	// RegistrationFee в целых рупиях; 0 отключает проверку точной суммы
	RegistrationFee    int64 `env:"REGISTRATION_FEE" envDefault:"349"`
	ScreenshotMaxBytes int64 `env:"SCREENSHOT_MAX_BYTES" envDefault:"5242880"`
}

type StorageConfig struct {
	Backend         string `env:"SCREENSHOT_STORE" envDefault:"inline"`
	Endpoint        string `env:"S3_ENDPOINT"`
	Region          string `env:"S3_REGION" envDefault:"auto"`
	AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	Bucket          string `env:"S3_BUCKET"`
	PublicBaseURL   string `env:"S3_PUBLIC_BASE_URL"`
}

// Load читает .env (если он есть) и переменные окружения
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Payment.RegistrationFee < 0 {
		return errors.New("REGISTRATION_FEE must not be negative")
	}
	if c.Payment.ScreenshotMaxBytes <= 0 {
		return errors.New("SCREENSHOT_MAX_BYTES must be positive")
	}

	switch c.Storage.Backend {
	case ScreenshotStoreInline:
	case ScreenshotStoreS3:
		var missing []string
		if c.Storage.Bucket == "" {
			missing = append(missing, "S3_BUCKET")
		}
		if c.Storage.AccessKeyID == "" {
			missing = append(missing, "S3_ACCESS_KEY_ID")
		}
		if c.Storage.SecretAccessKey == "" {
			missing = append(missing, "S3_SECRET_ACCESS_KEY")
		}
		if len(missing) > 0 {
			return fmt.Errorf("SCREENSHOT_STORE=s3 requires %s", strings.Join(missing, ", "))
		}
	default:
		return fmt.Errorf("unknown SCREENSHOT_STORE %q", c.Storage.Backend)
	}

	return nil
}

// DSN отдает DATABASE_URL, если он задан, иначе собирает строку подключения из DB_*
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.DBName,
		d.SSLMode,
	)
}
