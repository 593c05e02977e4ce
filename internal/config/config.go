package config

import (
	"os"
	"strconv"

	"edahub/internal/errors"
)

// Config is the complete application configuration, loaded from the environment.
type Config struct {
	Server ServerConfig
	Upload UploadConfig
	Query  QueryConfig
}

// ServerConfig holds web server settings.
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

// UploadConfig holds dataset upload limits.
type UploadConfig struct {
	MaxFileBytes int64
	MaxColumns   int
}

// QueryConfig holds SQL console settings.
type QueryConfig struct {
	MaxResultRows int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: []string{getEnv("ALLOWED_ORIGIN", "*")},
		},
		Upload: UploadConfig{
			MaxFileBytes: getEnvInt64("UPLOAD_MAX_BYTES", 32<<20),
			MaxColumns:   getEnvInt("UPLOAD_MAX_COLUMNS", 256),
		},
		Query: QueryConfig{
			MaxResultRows: getEnvInt("QUERY_MAX_ROWS", 1000),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port == "" {
		return errors.New(errors.CodeValidation, "server port must not be empty")
	}
	if c.Upload.MaxFileBytes <= 0 {
		return errors.New(errors.CodeValidation, "upload size limit must be positive")
	}
	if c.Query.MaxResultRows <= 0 {
		return errors.New(errors.CodeValidation, "query row limit must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
