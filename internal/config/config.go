package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	Server    ServerConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Documents DocumentsConfig
	Pricing   PricingConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Host            string        `env:"SERVER_HOST" envDefault:"localhost"`
	Port            int           `env:"SERVER_PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6380"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type PostgresConfig struct {
	User     string `env:"POSTGRES_USER,required,notEmpty"`
	Password string `env:"POSTGRES_PASSWORD,required,notEmpty"`
	Name     string `env:"POSTGRES_DB,required,notEmpty"`
	Host     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	SSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
	MaxConns int32  `env:"POSTGRES_MAX_CONNS" envDefault:"10"`
}

// DSN builds a postgres:// connection URL.
func (p PostgresConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:     "/" + p.Name,
		RawQuery: url.Values{"sslmode": {p.SSLMode}}.Encode(),
	}
	return u.String()
}

type AuthConfig struct {
	// JWTSecret verifies HS256 bearer tokens; empty disables authentication.
	JWTSecret string `env:"AUTH_JWT_SECRET"`
}

type DocumentsConfig struct {
	ImageTimeout  time.Duration `env:"IMAGE_TIMEOUT" envDefault:"5s"`
	ImageMaxBytes int64         `env:"IMAGE_MAX_BYTES" envDefault:"5242880"`
	ImageCacheTTL time.Duration `env:"IMAGE_CACHE_TTL" envDefault:"1h"`
	EventCacheTTL time.Duration `env:"EVENT_CACHE_TTL" envDefault:"60s"`
	// UseFontMetrics measures text with the PDF font tables instead of the
	// fixed-advance approximation.
	UseFontMetrics bool `env:"DOCUMENTS_FONT_METRICS" envDefault:"true"`
}

type PricingConfig struct {
	// CatalogPath points at a YAML plan catalog; empty uses the built-in one.
	CatalogPath string `env:"PRICING_CATALOG"`
	Currency    string `env:"PRICING_CURRENCY" envDefault:"CHF"`
	Locale      string `env:"PRICING_LOCALE" envDefault:"fr-CH"`
}

type RateLimitConfig struct {
	Documents int           `env:"RATE_LIMIT_DOCUMENTS" envDefault:"30"`
	Window    time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
}

// New loads .env when present and parses the environment.
func New() (*Config, error) {
	const op = "config.New"

	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("%s: invalid SERVER_PORT %d", op, cfg.Server.Port)
	}

	if cfg.RateLimit.Documents < 0 {
		return nil, fmt.Errorf("%s: invalid RATE_LIMIT_DOCUMENTS %d", op, cfg.RateLimit.Documents)
	}

	return &cfg, nil
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
