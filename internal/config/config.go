package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Store drivers accepted in STORE_DRIVER
const (
	StoreSurrealDB = "surrealdb"
	StorePostgres  = "postgres"
	StoreSQLite    = "sqlite"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	AMQP      AMQPConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           string        `env:"SERVER_PORT" envDefault:"8080"`
	Env            string        `env:"SERVER_ENV" envDefault:"development"`
	ReadTimeout    time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout   time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"15s"`
	AllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000"`
}

// StoreConfig selects the goal store backend
type StoreConfig struct {
	Driver string `env:"STORE_DRIVER" envDefault:"surrealdb"`
	// URL is the DSN for the postgres and sqlite drivers
	URL string `env:"DATABASE_URL"`
}

// DatabaseConfig holds SurrealDB connection settings
type DatabaseConfig struct {
	Host      string `env:"DB_HOST" envDefault:"localhost"`
	Port      string `env:"DB_PORT" envDefault:"8000"`
	Namespace string `env:"DB_NAMESPACE" envDefault:"goals"`
	Database  string `env:"DB_DATABASE" envDefault:"main"`
	User      string `env:"DB_USER" envDefault:"root"`
	Password  string `env:"DB_PASSWORD" envDefault:"root"`
}

// JWTConfig holds token verification settings.
// A non-empty Secret switches verification from RS256 key files to HS256.
type JWTConfig struct {
	PrivateKeyPath string `env:"JWT_PRIVATE_KEY_PATH" envDefault:"./keys/private.pem"`
	PublicKeyPath  string `env:"JWT_PUBLIC_KEY_PATH" envDefault:"./keys/public.pem"`
	Secret         string `env:"JWT_SECRET"`
	Issuer         string `env:"JWT_ISSUER" envDefault:"goals.forgo.software"`
	ExpirationMins int    `env:"JWT_EXPIRATION_MINS" envDefault:"43200"`
}

// RateLimitConfig holds per-client rate limit settings
type RateLimitConfig struct {
	Rate   int           `env:"RATE_LIMIT_RATE" envDefault:"100"`
	Window time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
	Burst  int           `env:"RATE_LIMIT_BURST" envDefault:"20"`
}

// AMQPConfig holds event publishing settings. Publishing is off when URL is empty.
type AMQPConfig struct {
	URL      string `env:"AMQP_URL"`
	Exchange string `env:"AMQP_EXCHANGE" envDefault:"goals.events"`
}

// Load reads a .env file when one exists in the working directory, then
// parses configuration from the environment with defaults
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}
	return parse(env.Options{})
}

// LoadFrom parses configuration from the given variables only
func LoadFrom(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	// Server validation
	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("SERVER_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}
	if len(c.Server.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must have at least one origin"))
	}

	// Store validation
	switch c.Store.Driver {
	case StoreSurrealDB:
		if c.Database.Host == "" {
			errs = append(errs, errors.New("DB_HOST is required"))
		}
		if c.Database.Port == "" {
			errs = append(errs, errors.New("DB_PORT is required"))
		}
		if c.Database.Namespace == "" {
			errs = append(errs, errors.New("DB_NAMESPACE is required"))
		}
		if c.Database.Database == "" {
			errs = append(errs, errors.New("DB_DATABASE is required"))
		}
	case StorePostgres, StoreSQLite:
		if c.Store.URL == "" {
			errs = append(errs, fmt.Errorf("DATABASE_URL is required for STORE_DRIVER=%s", c.Store.Driver))
		}
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER must be '%s', '%s', or '%s', got '%s'",
			StoreSurrealDB, StorePostgres, StoreSQLite, c.Store.Driver))
	}

	// JWT validation - critical for production
	if c.IsProduction() && c.JWT.Secret == "" && c.JWT.PublicKeyPath == "" {
		errs = append(errs, errors.New("JWT_PUBLIC_KEY_PATH or JWT_SECRET is required in production"))
	}
	if c.IsProduction() && c.JWT.Secret != "" && len(c.JWT.Secret) < 32 {
		errs = append(errs, errors.New("JWT_SECRET must be at least 32 bytes in production"))
	}
	if c.JWT.ExpirationMins <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRATION_MINS must be positive"))
	}

	// Rate limit validation
	if c.RateLimit.Rate <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RATE must be positive"))
	}
	if c.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_WINDOW must be positive"))
	}
	if c.RateLimit.Burst < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_BURST must not be negative"))
	}

	// Event publishing validation
	if c.AMQP.URL != "" && c.AMQP.Exchange == "" {
		errs = append(errs, errors.New("AMQP_EXCHANGE is required when AMQP_URL is set"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
