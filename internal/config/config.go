// Package config handles application configuration loading from a .env file,
// an optional TOML file and environment variables. It provides a centralized
// Config struct used across the application.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all application configuration values.
type Config struct {
	// Server settings
	Host string `toml:"app_host"`
	Port string `toml:"app_port"`
	Env  string `toml:"app_env"` // "development", "production", "testing"

	// Database selection: "postgres" or "sqlite".
	DBDriver string `toml:"db_driver"`

	// PostgreSQL connection
	DBHost     string `toml:"postgres_host"`
	DBPort     string `toml:"postgres_port"`
	DBUser     string `toml:"postgres_user"`
	DBPassword string `toml:"postgres_password"`
	DBName     string `toml:"postgres_db"`

	// SQLite database file, used when DBDriver is "sqlite".
	SQLitePath string `toml:"sqlite_path"`

	// Valkey (Redis-compatible) session backend. An empty host selects the
	// in-process session store.
	ValkeyHost     string `toml:"valkey_host"`
	ValkeyPort     string `toml:"valkey_port"`
	ValkeyPassword string `toml:"valkey_password"`

	// Project images written to a local directory and served from ImageBaseURL.
	ImageDir     string `toml:"image_dir"`
	ImageBaseURL string `toml:"image_base_url"`

	// S3-compatible object storage. When S3Bucket is set, images go to the
	// bucket instead of ImageDir.
	S3Endpoint  string `toml:"s3_endpoint"`
	S3Region    string `toml:"s3_region"`
	S3AccessKey string `toml:"s3_access_key"`
	S3SecretKey string `toml:"s3_secret_key"`
	S3Bucket    string `toml:"s3_bucket"`
	S3PublicURL string `toml:"s3_public_url"`

	// Allowed CORS origins for the admin API.
	CORSOrigins []string `toml:"cors_origins"`

	// DevSeed creates the default admin account on an empty users table.
	DevSeed bool `toml:"dev_seed"`
}

// defaults returns the development defaults every other source overrides.
func defaults() *Config {
	return &Config{
		Host: "0.0.0.0",
		Port: "8080",
		Env:  "development",

		DBDriver:   "postgres",
		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "folioadmin",
		DBPassword: "changeme",
		DBName:     "folioadmin",
		SQLitePath: "folioadmin.db",

		ValkeyPort: "6379",

		ImageDir:     "uploads/projects",
		ImageBaseURL: "http://localhost:8080/uploads/projects/",

		S3Region: "us-east-1",
	}
}

// Load reads configuration from a .env file (if present), then the TOML file
// at path (if non-empty), then environment variables. Later sources win.
// Returns an error if critical values are unsafe in production mode.
func Load(path string) (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := defaults()

	if path == "" {
		path = os.Getenv("FOLIO_CONFIG")
	}
	if path != "" {
		if err := readFile(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.Host = envOrDefault("APP_HOST", cfg.Host)
	cfg.Port = envOrDefault("APP_PORT", cfg.Port)
	cfg.Env = envOrDefault("APP_ENV", cfg.Env)

	cfg.DBDriver = envOrDefault("DB_DRIVER", cfg.DBDriver)
	cfg.DBHost = envOrDefault("POSTGRES_HOST", cfg.DBHost)
	cfg.DBPort = envOrDefault("POSTGRES_PORT", cfg.DBPort)
	cfg.DBUser = envOrDefault("POSTGRES_USER", cfg.DBUser)
	cfg.DBPassword = envOrDefault("POSTGRES_PASSWORD", cfg.DBPassword)
	cfg.DBName = envOrDefault("POSTGRES_DB", cfg.DBName)
	cfg.SQLitePath = envOrDefault("SQLITE_PATH", cfg.SQLitePath)

	cfg.ValkeyHost = envOrDefault("VALKEY_HOST", cfg.ValkeyHost)
	cfg.ValkeyPort = envOrDefault("VALKEY_PORT", cfg.ValkeyPort)
	cfg.ValkeyPassword = envOrDefault("VALKEY_PASSWORD", cfg.ValkeyPassword)

	cfg.ImageDir = envOrDefault("IMAGE_DIR", cfg.ImageDir)
	cfg.ImageBaseURL = envOrDefault("IMAGE_BASE_URL", cfg.ImageBaseURL)

	cfg.S3Endpoint = envOrDefault("S3_ENDPOINT", cfg.S3Endpoint)
	cfg.S3Region = envOrDefault("S3_REGION", cfg.S3Region)
	cfg.S3AccessKey = envOrDefault("S3_ACCESS_KEY", cfg.S3AccessKey)
	cfg.S3SecretKey = envOrDefault("S3_SECRET_KEY", cfg.S3SecretKey)
	cfg.S3Bucket = envOrDefault("S3_BUCKET", cfg.S3Bucket)
	cfg.S3PublicURL = envOrDefault("S3_PUBLIC_URL", cfg.S3PublicURL)

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("FOLIO_DEV_SEED"); v != "" {
		cfg.DevSeed = v == "true" || v == "1"
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func readFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	if _, err := toml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", c.DBDriver)
	}

	if c.Env == "production" {
		if c.DBDriver == "postgres" && c.DBPassword == "changeme" {
			return errors.New("POSTGRES_PASSWORD must be set in production")
		}
		if c.DevSeed {
			return errors.New("FOLIO_DEV_SEED must not be enabled in production")
		}
	}
	return nil
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == "sqlite" {
		return c.SQLitePath
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// UsesS3 reports whether project images are stored in object storage.
func (c *Config) UsesS3() bool {
	return c.S3Bucket != ""
}

// UsesValkey reports whether sessions are stored in Valkey.
func (c *Config) UsesValkey() bool {
	return c.ValkeyHost != ""
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
