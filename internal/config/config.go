package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	SessionBackendDatabase = "database"
	SessionBackendMemory   = "memory"
	SessionBackendRedis    = "redis"
)

// Config holds every runtime setting of the service. It is built once at
// startup and handed to the components that need it.
type Config struct {
	Port        string `env:"PORT" envDefault:"5050"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"20"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"20"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
	DBSlowThreshold   time.Duration `env:"DB_SLOW_THRESHOLD" envDefault:"100ms"`

	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"6h"`
	SessionBackend string        `env:"SESSION_BACKEND" envDefault:"database"`
	CookieSecure   bool          `env:"COOKIE_SECURE" envDefault:"false"`
	RedisURL       string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`

	AllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://localhost:5174"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`

	LoginRateLimit float64 `env:"LOGIN_RATE_LIMIT" envDefault:"1"`
	LoginRateBurst int     `env:"LOGIN_RATE_BURST" envDefault:"5"`

	// TrustProxyHeaders takes the client address from X-Forwarded-For and
	// X-Real-IP. Only enable it behind a proxy that overwrites those headers.
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`

	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load reads .env.local when present and parses the environment.
func Load() (*Config, error) {
	if _, err := os.Stat(".env.local"); err == nil {
		if err := godotenv.Load(".env.local"); err != nil {
			return nil, fmt.Errorf("load .env.local: %w", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is empty")
	}
	switch c.SessionBackend {
	case SessionBackendDatabase, SessionBackendMemory, SessionBackendRedis:
	default:
		return fmt.Errorf("unknown SESSION_BACKEND %q", c.SessionBackend)
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.LoginRateLimit <= 0 || c.LoginRateBurst <= 0 {
		return errors.New("LOGIN_RATE_LIMIT and LOGIN_RATE_BURST must be positive")
	}
	return nil
}

func (c *Config) Addr() string {
	return "0.0.0.0:" + c.Port
}
