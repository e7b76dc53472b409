package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config contains runtime configuration required by the service.
// It is built once at startup and never mutated afterwards.
type Config struct {
	AppName   string
	Debug     bool
	LogLevel  string
	HTTPHost  string
	HTTPPort  int
	APIPrefix string

	DB Database

	Region         string
	RequestTimeout time.Duration
	HealthTimeout  time.Duration
}

// Database holds the settings used to reach the workout store.
type Database struct {
	URL            string // overrides the assembled DSN when set
	Host           string
	Port           int
	Username       string
	Password       string
	Name           string
	SSLMode        string
	ConnectTimeout time.Duration
	AutoMigrate    bool
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return net.JoinHostPort(c.HTTPHost, strconv.Itoa(c.HTTPPort))
}

// DSN returns the connection string for the database.
func (d Database) DSN() string {
	if d.URL != "" {
		return d.URL
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.Username, d.Password),
		Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:   "/" + d.Name,
	}
	q := url.Values{}
	q.Set("sslmode", d.SSLMode)
	if d.ConnectTimeout > 0 {
		q.Set("connect_timeout", strconv.Itoa(int(d.ConnectTimeout.Seconds())))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Load reads configuration from environment variables.
// A .env file in the working directory is applied first when present;
// variables already set in the environment take precedence over it.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var errs []error
	p := parser{errs: &errs}

	cfg := Config{
		AppName:   p.str("APP_NAME", "F3RVA Workout Service"),
		Debug:     p.boolean("DEBUG", false),
		LogLevel:  strings.ToUpper(p.str("LOG_LEVEL", "INFO")),
		HTTPHost:  p.str("HTTP_HOST", "0.0.0.0"),
		HTTPPort:  p.integer("HTTP_PORT", 8000),
		APIPrefix: strings.TrimRight(p.str("API_PREFIX", "/api/v1"), "/"),
		DB: Database{
			URL:            p.str("DB_URL", ""),
			Host:           p.str("DB_HOST", "localhost"),
			Port:           p.integer("DB_PORT", 5432),
			Username:       p.str("DB_USERNAME", "workout_user"),
			Password:       p.str("DB_PASSWORD", "workout_password"),
			Name:           p.str("DB_NAME", "f3rva_workouts"),
			SSLMode:        p.str("DB_SSLMODE", "disable"),
			ConnectTimeout: p.duration("DB_CONNECT_TIMEOUT", 5*time.Second),
			AutoMigrate:    p.boolean("DB_AUTO_MIGRATE", false),
		},
		Region:         p.str("AWS_REGION", "us-east-1"),
		RequestTimeout: p.duration("REQUEST_TIMEOUT", 30*time.Second),
		HealthTimeout:  p.duration("HEALTH_TIMEOUT", 2*time.Second),
	}

	if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("HTTP_PORT out of range: %d", cfg.HTTPPort))
	}
	if cfg.DB.URL == "" && cfg.DB.Host == "" {
		errs = append(errs, errors.New("DB_HOST or DB_URL required"))
	}
	if cfg.APIPrefix != "" && !strings.HasPrefix(cfg.APIPrefix, "/") {
		errs = append(errs, errors.New(`API_PREFIX must start with "/"`))
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// parser collects conversion errors so every malformed variable is reported at once.
type parser struct {
	errs *[]error
}

func (p parser) str(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return fallback
}

func (p parser) integer(key string, fallback int) int {
	raw := p.str(key, "")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		*p.errs = append(*p.errs, fmt.Errorf("%s must be an integer: %q", key, raw))
		return fallback
	}
	return n
}

func (p parser) boolean(key string, fallback bool) bool {
	raw := p.str(key, "")
	if raw == "" {
		return fallback
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		*p.errs = append(*p.errs, fmt.Errorf("%s must be a boolean: %q", key, raw))
		return fallback
	}
	return b
}

// duration accepts Go duration strings ("30s") or a bare number of seconds.
func (p parser) duration(key string, fallback time.Duration) time.Duration {
	raw := p.str(key, "")
	if raw == "" {
		return fallback
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		*p.errs = append(*p.errs, fmt.Errorf("%s must be a duration: %q", key, raw))
		return fallback
	}
	return d
}
