// Package config loads and validates application configuration from environment
// variables. A .env file in the working directory is read first when present.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the web server and manage CLI.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// Debug enables serving uploaded media from the application itself.
	Debug bool

	// CORSOrigins lists the origins allowed to fetch /static and /media assets.
	CORSOrigins []string

	// MigrateOnStart runs goose up before the server accepts traffic.
	MigrateOnStart bool

	ShutdownTimeout time.Duration

	Log       LogConfig
	Media     MediaConfig
	Session   SessionConfig
	RateLimit RateLimitConfig
	Tracing   TracingConfig
	Profiling ProfilingConfig
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level      string // debug, info, warn, error
	Format     string // json or console
	Output     string // stdout or file
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// MediaConfig controls where uploaded profile pictures live.
type MediaConfig struct {
	Root           string
	URL            string
	MaxUploadBytes int64
}

// SessionConfig controls the session cookie.
type SessionConfig struct {
	CookieName string
	Secure     bool
	Lifetime   time.Duration
}

// RateLimitConfig bounds credential submissions per client address.
type RateLimitConfig struct {
	PerMinute int
	Burst     int
}

// TracingConfig controls the OpenTelemetry exporter.
type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	SampleRate  float64
	ServiceName string
}

// ProfilingConfig controls continuous profiling via Pyroscope.
type ProfilingConfig struct {
	Enabled  bool
	Endpoint string
}

// Load reads configuration from the environment (after .env, if any) and
// validates it. Every problem found is reported in the returned error.
func Load() (Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	var errs []error

	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		Debug:           getEnvBool("DEBUG", false, &errs),
		CORSOrigins:     splitCSV(getEnv("CORS_ORIGINS", "http://localhost:8080")),
		MigrateOnStart:  getEnvBool("MIGRATE_ON_START", true, &errs),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second, &errs),
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			Output:     getEnv("LOG_OUTPUT", "stdout"),
			FilePath:   getEnv("LOG_FILE_PATH", "logs/travelxplore.log"),
			MaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 100, &errs),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3, &errs),
			MaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28, &errs),
		},
		Media: MediaConfig{
			Root:           getEnv("MEDIA_ROOT", "media"),
			URL:            getEnv("MEDIA_URL", "/media/"),
			MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", 5<<20, &errs)),
		},
		Session: SessionConfig{
			CookieName: getEnv("SESSION_COOKIE_NAME", "travelxplore_session"),
			Secure:     getEnvBool("SESSION_COOKIE_SECURE", false, &errs),
			Lifetime:   getEnvDuration("SESSION_LIFETIME", 14*24*time.Hour, &errs),
		},
		RateLimit: RateLimitConfig{
			PerMinute: getEnvInt("LOGIN_RATE_PER_MINUTE", 20, &errs),
			Burst:     getEnvInt("LOGIN_RATE_BURST", 5, &errs),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvBool("TRACING_ENABLED", false, &errs),
			Endpoint:    getEnv("OTEL_COLLECTOR_ENDPOINT", "localhost:4318"),
			SampleRate:  getEnvFloat("OTEL_SAMPLE_RATE", 1.0, &errs),
			ServiceName: getEnv("SERVICE_NAME", "travelxplore"),
		},
		Profiling: ProfilingConfig{
			Enabled:  getEnvBool("PROFILING_ENABLED", false, &errs),
			Endpoint: getEnv("PYROSCOPE_ENDPOINT", "http://localhost:4040"),
		},
	}

	if cfg.DatabaseURL == "" {
		errs = append(errs, errors.New("required environment variables not set: DATABASE_URL"))
	}
	if err := cfg.Validate(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return cfg, nil
}

// Validate checks values that parse correctly but are out of range.
func (c Config) Validate() error {
	var errs []error

	if n, err := strconv.Atoi(c.Port); err != nil || n < 1 || n > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be a number between 1 and 65535, got %q", c.Port))
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Log.Format))
	}
	switch c.Log.Output {
	case "stdout", "file":
	default:
		errs = append(errs, fmt.Errorf("LOG_OUTPUT must be stdout or file, got %q", c.Log.Output))
	}
	if c.Media.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_BYTES must be positive"))
	}
	if c.RateLimit.PerMinute <= 0 || c.RateLimit.Burst <= 0 {
		errs = append(errs, errors.New("LOGIN_RATE_PER_MINUTE and LOGIN_RATE_BURST must be positive"))
	}
	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		errs = append(errs, fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %.2f", c.Tracing.SampleRate))
	}
	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		errs = append(errs, errors.New("OTEL_COLLECTOR_ENDPOINT is required when tracing is enabled"))
	}

	return errors.Join(errs...)
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool, errs *[]error) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s must be a boolean, got %q", key, v))
		return fallback
	}
	return b
}

func getEnvInt(key string, fallback int, errs *[]error) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s must be an integer, got %q", key, v))
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64, errs *[]error) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s must be a number, got %q", key, v))
		return fallback
	}
	return f
}

func getEnvDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s must be a duration like 15s, got %q", key, v))
		return fallback
	}
	return d
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
