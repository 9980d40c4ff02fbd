// Package config holds process configuration loaded from the environment.
package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is parsed once at startup and held for the process lifetime.
type Config struct {
	HTTPPort int    `env:"PORT" envDefault:"3000"`
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	BaseURL  string `env:"BASE_URL" envDefault:"http://localhost:3000"`

	DBPath    string `env:"ENOMA_DB_PATH" envDefault:"enoma.db"`
	JWTSecret string `env:"JWT_SECRET"`

	RedisAddr   string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	CacheTTL    time.Duration `env:"CACHE_TTL" envDefault:"5m"`
	CachePrefix string        `env:"CACHE_PREFIX" envDefault:"enoma:"`

	NATSURL      string `env:"NATS_URL" envDefault:"nats://localhost:4222"`
	UploadBucket string `env:"UPLOAD_BUCKET" envDefault:"enoma-uploads"`

	SMTPHost string `env:"SMTP_HOST"`
	SMTPPort int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser string `env:"SMTP_USER"`
	SMTPPass string `env:"SMTP_PASS"`
	MailFrom string `env:"MAIL_FROM" envDefault:"Enoma <no-reply@enoma.local>"`
}

// ErrMissingJWTSecret aborts startup; a session-signing key cannot be defaulted.
var ErrMissingJWTSecret = errors.New("JWT_SECRET environment variable is required")

// Load parses configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	return &cfg, nil
}

// IsProduction reports whether the process runs with production settings.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// IsDevelopment reports whether the process runs with development settings.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}
