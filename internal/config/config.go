package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	App      AppConfig      `yaml:"app"`
	CORS     CORSConfig     `yaml:"cors"`
	Cron     CronConfig     `yaml:"cron"`
	// Branches is scanned in this order wherever a lookup spans branches.
	Branches []string `yaml:"branches" env:"BRANCHES" env-separator:"," env-default:"TELOK,AMOY"`
}

type DatabaseConfig struct {
	Host            string        `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port            int           `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User            string        `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password        string        `yaml:"password" env:"DB_PASSWORD"`
	Name            string        `yaml:"name" env:"DB_NAME" env-default:"branchops"`
	SSLMode         string        `yaml:"ssl_mode" env:"DB_SSL_MODE" env-default:"disable"`
	MaxConns        int32         `yaml:"max_conns" env:"DB_MAX_CONNS" env-default:"25"`
	MinConns        int32         `yaml:"min_conns" env:"DB_MIN_CONNS" env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"DB_MAX_CONN_LIFETIME" env-default:"1h"`
	AutoMigrate     bool          `yaml:"auto_migrate" env:"DB_AUTO_MIGRATE" env-default:"true"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string `yaml:"secret" env:"JWT_SECRET_KEY"`
	RefreshExpiration string `yaml:"refresh_expiration" env:"JWT_REFRESH_EXPIRATION_TIME" env-default:"168h"`
	AccessExpiration  string `yaml:"access_expiration" env:"JWT_ACCESS_EXPIRATION_TIME" env-default:"1h"`
}

// AppConfig holds application configuration
type AppConfig struct {
	Port            int           `yaml:"port" env:"APP_PORT" env-default:"8080"`
	Env             string        `yaml:"env" env:"APP_ENV" env-default:"development"`
	LogLevel        string        `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"APP_SHUTDOWN_TIMEOUT" env-default:"30s"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:3000"`
}

type CronConfig struct {
	Enabled bool `yaml:"enabled" env:"CRON_ENABLED" env-default:"true"`
	// PayrollRefreshHour is the UTC hour at which the previous day's payroll is recomputed.
	PayrollRefreshHour int `yaml:"payroll_refresh_hour" env:"CRON_PAYROLL_REFRESH_HOUR" env-default:"1"`
}

// Load reads an optional .env file, then CONFIG_PATH (YAML) when set, and
// finally the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var config Config
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &config); err != nil {
			return nil, fmt.Errorf("cannot read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&config); err != nil {
		return nil, fmt.Errorf("cannot read environment: %w", err)
	}

	config.Branches = normalizeBranches(config.Branches)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	slog.Info("Configuration loaded", "env", config.App.Env, "branches", config.Branches)
	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if _, err := time.ParseDuration(c.JWT.RefreshExpiration); err != nil {
		return fmt.Errorf("invalid JWT_REFRESH_EXPIRATION_TIME: %w", err)
	}
	if len(c.Branches) == 0 {
		return fmt.Errorf("BRANCHES is required")
	}
	if c.Cron.PayrollRefreshHour < 0 || c.Cron.PayrollRefreshHour > 23 {
		return fmt.Errorf("CRON_PAYROLL_REFRESH_HOUR must be between 0 and 23")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// IsProduction reports whether cookies should be marked secure.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// normalizeBranches trims and upper-cases branch codes, dropping blanks and
// repeats while keeping the configured order.
func normalizeBranches(branches []string) []string {
	out := make([]string, 0, len(branches))
	for _, b := range branches {
		b = strings.ToUpper(strings.TrimSpace(b))
		if b == "" || slices.Contains(out, b) {
			continue
		}
		out = append(out, b)
	}
	return out
}
