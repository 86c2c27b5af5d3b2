package config

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	apperr "github.com/techpro/techpromanager/domain/error"
)

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	DatabaseTypePostgres = "postgres"
	DatabaseTypeMemory   = "memory"

	// MinProductionSecretLength is the shortest HS256 secret accepted in production
	MinProductionSecretLength = 32
)

type Config struct {
	Environment string `env:"ENV" envDefault:"development"`
	ServerHost  string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	ServerPort  string `env:"SERVER_PORT" envDefault:"3001"`

	DatabaseType        string `env:"DATABASE_TYPE" envDefault:"memory"`
	DatabaseURL         string `env:"DATABASE_URL"`
	DatabaseAutoMigrate bool   `env:"DATABASE_AUTO_MIGRATE" envDefault:"false"`

	JWTSecret      string        `env:"JWT_SECRET"`
	JWTIssuer      string        `env:"JWT_ISSUER" envDefault:"techpromanager"`
	AccessTokenTTL time.Duration `env:"JWT_ACCESS_TOKEN_TTL" envDefault:"1h"`

	PasswordIterations int `env:"PASSWORD_ITERATIONS" envDefault:"210000"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	CORSEnabled          bool     `env:"CORS_ENABLED" envDefault:"true"`
	CORSAllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:5173" envSeparator:","`
	CORSAllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS" envDefault:"true"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

var (
	ErrMissingDatabaseURL  = errors.New("DATABASE_URL is required when DATABASE_TYPE=postgres")
	ErrInvalidDatabaseType = errors.New("DATABASE_TYPE must be postgres or memory")
	ErrMissingJWTSecret    = errors.New("JWT_SECRET is required")
	ErrWeakJWTSecret       = fmt.Errorf("JWT_SECRET must be at least %d bytes in production", MinProductionSecretLength)
	ErrInvalidTokenTTL     = errors.New("JWT_ACCESS_TOKEN_TTL must be positive")
	ErrInvalidEnvironment  = errors.New("ENV must be development, test or production")
)

// Load reads .env (if present) and the process environment. Every failure is
// returned as a configuration AppError; the caller is expected to exit.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, apperr.ErrConfigurationError("environment", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field rules that struct tags cannot express
func (c *Config) Validate() error {
	switch c.Environment {
	case EnvDevelopment, EnvTest, EnvProduction:
	default:
		return apperr.ErrConfigurationError("ENV", ErrInvalidEnvironment)
	}

	if c.JWTSecret == "" {
		return apperr.ErrConfigurationError("JWT_SECRET", ErrMissingJWTSecret)
	}
	if c.IsProduction() && len(c.JWTSecret) < MinProductionSecretLength {
		return apperr.ErrConfigurationError("JWT_SECRET", ErrWeakJWTSecret)
	}
	if c.AccessTokenTTL <= 0 {
		return apperr.ErrConfigurationError("JWT_ACCESS_TOKEN_TTL", ErrInvalidTokenTTL)
	}

	switch c.DatabaseType {
	case DatabaseTypeMemory:
	case DatabaseTypePostgres:
		if c.DatabaseURL == "" {
			return apperr.ErrConfigurationError("DATABASE_URL", ErrMissingDatabaseURL)
		}
	default:
		return apperr.ErrConfigurationError("DATABASE_TYPE", ErrInvalidDatabaseType)
	}

	if len(c.CORSAllowedOrigins) == 0 {
		c.CORSAllowedOrigins = []string{"http://localhost:5173"}
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

func (c *Config) Address() string {
	return c.ServerHost + ":" + c.ServerPort
}

var dsnPassword = regexp.MustCompile(`(?i)(password\s*=\s*)('(?:[^'\\]|\\.)*'|\S+)`)

// RedactedDatabaseURL returns the DSN with any password masked. Both the URL
// form and the lib/pq key=value form are handled.
func (c *Config) RedactedDatabaseURL() string {
	if c.DatabaseURL == "" {
		return ""
	}
	if !strings.Contains(c.DatabaseURL, "://") {
		return dsnPassword.ReplaceAllString(c.DatabaseURL, "${1}xxxxx")
	}
	u, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return "<unparseable>"
	}
	return u.Redacted()
}

// LogFields is what the server logs about its configuration at startup.
// The signing secret is never included.
func (c *Config) LogFields() map[string]interface{} {
	return map[string]interface{}{
		"env":              c.Environment,
		"address":          c.Address(),
		"database_type":    c.DatabaseType,
		"database_url":     c.RedactedDatabaseURL(),
		"auto_migrate":     c.DatabaseAutoMigrate,
		"access_token_ttl": c.AccessTokenTTL.String(),
		"cors_enabled":     c.CORSEnabled,
		"cors_origins":     c.CORSAllowedOrigins,
	}
}
