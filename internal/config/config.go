// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// MaxTrackedRepos is the size of the GitHub search page the tracker ranks.
const MaxTrackedRepos = 100

// Config holds all configuration for the application.
type Config struct {
	LogLevel         string        `mapstructure:"LOG_LEVEL"`
	DBHost           string        `mapstructure:"DB_HOST"`
	DBPort           int           `mapstructure:"DB_PORT"`
	DBUser           string        `mapstructure:"DB_USER"`
	DBPassword       string        `mapstructure:"DB_PASSWORD"`
	DBName           string        `mapstructure:"DB_NAME"`
	DBSSLMode        string        `mapstructure:"DB_SSLMODE"`
	DBPoolMaxConns   int32         `mapstructure:"DB_POOL_MAX_CONNS"`
	MigrationsURL    string        `mapstructure:"MIGRATIONS_URL"`
	GithubToken      string        `mapstructure:"GITHUB_TOKEN"`
	GithubAPIURL     string        `mapstructure:"GITHUB_API_URL"`
	HTTPAddr         string        `mapstructure:"HTTP_ADDR"`
	FetchConcurrency int           `mapstructure:"FETCH_CONCURRENCY"`
	TrackedRepos     int           `mapstructure:"TRACKED_REPOS"`
	IngestInterval   time.Duration `mapstructure:"INGEST_INTERVAL"`
}

// LoadConfig reads configuration from a .env file in the working directory
// and/or environment variables. Environment variables win.
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Every key needs a default so that Unmarshal sees environment overrides.
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_POOL_MAX_CONNS", 0)
	v.SetDefault("MIGRATIONS_URL", "file://migrations")
	v.SetDefault("GITHUB_TOKEN", "")
	v.SetDefault("GITHUB_API_URL", "")
	v.SetDefault("HTTP_ADDR", ":8000")
	v.SetDefault("FETCH_CONCURRENCY", 4)
	v.SetDefault("TRACKED_REPOS", MaxTrackedRepos)
	v.SetDefault("INGEST_INTERVAL", "0s")

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // Ignore error if file not found

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.DBUser == "" {
		return errors.New("DB_USER is a required configuration field")
	}
	if c.DBName == "" {
		return errors.New("DB_NAME is a required configuration field")
	}
	if c.DBPort <= 0 || c.DBPort > 65535 {
		return fmt.Errorf("DB_PORT must be a valid TCP port, got %d", c.DBPort)
	}
	if c.FetchConcurrency < 1 {
		return errors.New("FETCH_CONCURRENCY must be at least 1")
	}
	if c.TrackedRepos < 1 || c.TrackedRepos > MaxTrackedRepos {
		return fmt.Errorf("TRACKED_REPOS must be between 1 and %d", MaxTrackedRepos)
	}
	if c.IngestInterval < 0 {
		return errors.New("INGEST_INTERVAL must not be negative")
	}
	return nil
}

// RequireGithubToken reports an error when the ingestion job has no token to call GitHub with.
func (c *Config) RequireGithubToken() error {
	if c.GithubToken == "" {
		return errors.New("GITHUB_TOKEN is a required configuration field")
	}
	return nil
}

// DBURL builds a postgres connection URL usable by both pgx and golang-migrate.
func (c *Config) DBURL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   net.JoinHostPort(c.DBHost, fmt.Sprint(c.DBPort)),
		Path:   "/" + c.DBName,
	}
	q := url.Values{}
	q.Set("sslmode", c.DBSSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
