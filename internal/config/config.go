package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cardnews/cardnews-backend/pkg/logger"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config application configuration
type Config struct {
	Env       string          `yaml:"-"`
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	JWT       JWTConfig       `yaml:"jwt"`
	CORS      CORSConfig      `yaml:"cors"`
	Autosave  AutosaveConfig  `yaml:"autosave"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Storage   StorageConfig   `yaml:"storage"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	Port            int `yaml:"port"`
	ShutdownTimeout int `yaml:"shutdown_timeout"` // seconds
}

// DatabaseConfig relational store settings
type DatabaseConfig struct {
	Driver          string `yaml:"driver"` // mysql | sqlite
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	User            string `yaml:"user"`
	Password        string `yaml:"password"`
	DBName          string `yaml:"dbname"`
	Path            string `yaml:"path"` // sqlite file
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // seconds
}

// RedisConfig cache settings
type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// JWTConfig token settings
type JWTConfig struct {
	Secret    string `yaml:"secret"`
	ExpiresIn int    `yaml:"expires_in"` // seconds
	RefreshIn int    `yaml:"refresh_in"` // seconds
}

// CORSConfig allowed origins, comma separated
type CORSConfig struct {
	AllowOrigins string `yaml:"allow_origins"`
}

// AutosaveConfig debounce window and retention of drafts
type AutosaveConfig struct {
	WindowMS   int `yaml:"window_ms"`
	TTLSeconds int `yaml:"ttl_seconds"`
}

// RateLimitConfig per-client request budget
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requests_per_minute"`
}

// StorageConfig S3-compatible object storage used for export archives
type StorageConfig struct {
	Enabled         bool   `yaml:"enabled"`
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Bucket          string `yaml:"bucket"`
	CDNURL          string `yaml:"cdn_url"`
	BasePath        string `yaml:"base_path"`
	ForcePathStyle  bool   `yaml:"force_path_style"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Env:    "local",
		Server: ServerConfig{Port: 8080, ShutdownTimeout: 10},
		Database: DatabaseConfig{
			Driver:          "mysql",
			Host:            "localhost",
			Port:            3306,
			User:            "cardnews",
			DBName:          "cardnews",
			Path:            "cardnews.db",
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: 3600,
		},
		Redis:     RedisConfig{Host: "localhost", Port: 6379, PoolSize: 10},
		JWT:       JWTConfig{ExpiresIn: 3600, RefreshIn: 7 * 24 * 3600},
		CORS:      CORSConfig{AllowOrigins: "http://localhost:3000"},
		Autosave:  AutosaveConfig{WindowMS: 1000, TTLSeconds: 24 * 3600},
		RateLimit: RateLimitConfig{Enabled: true, RequestsPerMinute: 120},
	}
}

// Path returns the config file for an environment
func Path(env string) string {
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

// LoadDotEnv loads .env files with priority: .env.local > .env
// godotenv.Load does NOT overwrite already-set env vars,
// so OS env vars always win, .env.local wins over .env.
// Returns list of files actually loaded.
func LoadDotEnv() []string {
	var loaded []string
	for _, f := range []string{".env.local", ".env"} {
		if _, err := os.Stat(f); err == nil {
			loaded = append(loaded, f)
		}
	}
	if len(loaded) > 0 {
		_ = godotenv.Load(loaded...) //nolint:errcheck // files were stat'ed above
	}
	return loaded
}

// Load reads the YAML file at path (missing file → defaults) and applies env overrides
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		logger.Warn("config file %s not found, using defaults", path)
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg.Env = os.Getenv("APP_ENV")
	if cfg.Env == "" {
		cfg.Env = "local"
	}
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot start with
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		if !c.IsDevelopment() {
			return fmt.Errorf("jwt.secret is required outside development")
		}
		c.JWT.Secret = "dev-secret-change-me"
	}
	switch c.Database.Driver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Autosave.WindowMS <= 0 {
		return fmt.Errorf("autosave.window_ms must be positive")
	}
	if c.Autosave.TTLSeconds <= 0 {
		return fmt.Errorf("autosave.ttl_seconds must be positive")
	}
	return nil
}

// IsDevelopment reports whether the server runs locally
func (c *Config) IsDevelopment() bool {
	return logger.IsDevelopment(c.Env)
}

// GetDSN builds the MySQL DSN
func (d DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User, d.Password, d.Host, d.Port, d.DBName)
}

// AutosaveWindow debounce window
func (c *Config) AutosaveWindow() time.Duration {
	return time.Duration(c.Autosave.WindowMS) * time.Millisecond
}

// AutosaveTTL draft retention
func (c *Config) AutosaveTTL() time.Duration {
	return time.Duration(c.Autosave.TTLSeconds) * time.Second
}

// AllowOrigins splits the comma-separated CORS origins
func (c *Config) AllowOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORS.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// LogResolved logs the effective configuration with secrets masked
func LogResolved(c *Config) {
	logger.GetLogger().Info().
		Str("env", c.Env).
		Int("port", c.Server.Port).
		Str("db_driver", c.Database.Driver).
		Str("db_host", c.Database.Host).
		Str("db_name", c.Database.DBName).
		Str("redis", fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)).
		Bool("jwt_secret_set", c.JWT.Secret != "").
		Int("autosave_window_ms", c.Autosave.WindowMS).
		Bool("storage_enabled", c.Storage.Enabled).
		Msg("config resolved")
}

func applyEnv(c *Config) {
	setString(&c.Database.Driver, "DB_DRIVER")
	setString(&c.Database.Host, "DB_HOST")
	setInt(&c.Database.Port, "DB_PORT")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.DBName, "DB_NAME")
	setString(&c.Database.Path, "DB_PATH")
	setString(&c.Redis.Host, "REDIS_HOST")
	setInt(&c.Redis.Port, "REDIS_PORT")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.JWT.Secret, "JWT_SECRET")
	setInt(&c.Server.Port, "PORT")
	setString(&c.CORS.AllowOrigins, "CORS_ALLOW_ORIGINS")
	setString(&c.Storage.Bucket, "STORAGE_BUCKET")
	setString(&c.Storage.Endpoint, "STORAGE_ENDPOINT")
	setString(&c.Storage.AccessKeyID, "STORAGE_ACCESS_KEY_ID")
	setString(&c.Storage.SecretAccessKey, "STORAGE_SECRET_ACCESS_KEY")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
