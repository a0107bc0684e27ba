// Package config loads server configuration from defaults, an optional
// instance TOML file, a .env file and the environment, in that order.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Session store kinds
const (
	SessionStoreCookie = "cookie"
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// DevSecretKey is the fallback secret used when none is configured
const DevSecretKey = "dev"

// Config holds everything needed to run the server
type Config struct {
	SecretKey      string
	DatabasePath   string
	Host           string
	Port           int
	SessionStore   string
	SessionTTL     time.Duration
	RedisURL       string
	GameTimezone   string
	LogLevel       string
	DBMaxOpenConns int
}

// Default returns the development configuration
func Default() Config {
	return Config{
		SecretKey:      DevSecretKey,
		DatabasePath:   "instance/lateguess.sqlite",
		Host:           "0.0.0.0",
		Port:           8080,
		SessionStore:   SessionStoreCookie,
		SessionTTL:     7 * 24 * time.Hour,
		RedisURL:       "redis://localhost:6379",
		GameTimezone:   "UTC",
		LogLevel:       "info",
		DBMaxOpenConns: 4,
	}
}

// Load builds a Config from defaults, the instance file named by
// INSTANCE_CONFIG, a .env file in the working directory and the environment
func Load() (Config, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	path := getEnv("INSTANCE_CONFIG", "instance/config.toml")
	if err := cfg.decodeFile(path); err != nil {
		return Config{}, err
	}

	if err := cfg.overrideByEnv(); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

func (c *Config) decodeFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var file fileConfig
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}
	return file.apply(c)
}

// fileConfig mirrors Config with durations as strings, since TOML has no
// duration type
type fileConfig struct {
	SecretKey      *string `toml:"secret_key"`
	DatabasePath   *string `toml:"database_path"`
	Host           *string `toml:"host"`
	Port           *int    `toml:"port"`
	SessionStore   *string `toml:"session_store"`
	SessionTTL     *string `toml:"session_ttl"`
	RedisURL       *string `toml:"redis_url"`
	GameTimezone   *string `toml:"game_timezone"`
	LogLevel       *string `toml:"log_level"`
	DBMaxOpenConns *int    `toml:"db_max_open_conns"`
}

func (f fileConfig) apply(c *Config) error {
	setString(&c.SecretKey, f.SecretKey)
	setString(&c.DatabasePath, f.DatabasePath)
	setString(&c.Host, f.Host)
	setString(&c.SessionStore, f.SessionStore)
	setString(&c.RedisURL, f.RedisURL)
	setString(&c.GameTimezone, f.GameTimezone)
	setString(&c.LogLevel, f.LogLevel)
	if f.Port != nil {
		c.Port = *f.Port
	}
	if f.DBMaxOpenConns != nil {
		c.DBMaxOpenConns = *f.DBMaxOpenConns
	}
	if f.SessionTTL != nil {
		d, err := time.ParseDuration(*f.SessionTTL)
		if err != nil {
			return fmt.Errorf("session_ttl: %w", err)
		}
		c.SessionTTL = d
	}
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func (c *Config) overrideByEnv() error {
	c.SecretKey = getEnv("SECRET_KEY", c.SecretKey)
	c.DatabasePath = getEnv("DATABASE_PATH", c.DatabasePath)
	c.Host = getEnv("HOST", c.Host)
	c.SessionStore = getEnv("SESSION_STORE", c.SessionStore)
	c.RedisURL = getEnv("REDIS_URL", c.RedisURL)
	c.GameTimezone = getEnv("GAME_TIMEZONE", c.GameTimezone)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)

	var err error
	if c.Port, err = getEnvAsInt("PORT", c.Port); err != nil {
		return err
	}
	if c.DBMaxOpenConns, err = getEnvAsInt("DB_MAX_OPEN_CONNS", c.DBMaxOpenConns); err != nil {
		return err
	}
	if raw, ok := os.LookupEnv("SESSION_TTL"); ok && raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("SESSION_TTL: %w", err)
		}
		c.SessionTTL = d
	}
	return nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	var errs []error

	switch c.SessionStore {
	case SessionStoreCookie, SessionStoreMemory, SessionStoreRedis:
	default:
		errs = append(errs, fmt.Errorf("invalid session store %q: must be cookie, memory or redis", c.SessionStore))
	}
	if c.SessionStore == SessionStoreRedis && c.RedisURL == "" {
		errs = append(errs, errors.New("REDIS_URL required when SESSION_STORE=redis"))
	}
	if c.SecretKey == "" {
		errs = append(errs, errors.New("SECRET_KEY must not be empty"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("session TTL must be positive"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d", c.Port))
	}
	if c.DBMaxOpenConns <= 0 {
		errs = append(errs, fmt.Errorf("invalid DB_MAX_OPEN_CONNS %d", c.DBMaxOpenConns))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Location resolves GameTimezone
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.GameTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid game timezone %q: %w", c.GameTimezone, err)
	}
	return loc, nil
}

// Level returns the parsed log level, falling back to info
func (c *Config) Level() slog.Level {
	level, err := ParseLogLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// ParseLogLevel parses debug, info, warn or error
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return parsed, nil
}
