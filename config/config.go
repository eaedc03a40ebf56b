package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment represents the application environment.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
)

// Config holds all application configuration.
type Config struct {
	// Application
	App AppConfig

	// HTTP Server
	HTTP HTTPConfig

	// Journal behavior
	Journal JournalConfig

	// Feature Flags
	Features *FeatureFlags
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string
	Environment Environment
	Debug       bool
	Version     string

	// LogLevel - minimum log level (DEBUG/INFO/WARN/ERROR).
	LogLevel string

	// Graceful shutdown timeout
	ShutdownTimeout time.Duration
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Host string
	Port int

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	EnableCORS bool
}

// JournalConfig holds journal behavior settings.
type JournalConfig struct {
	// LessonsPerPage - page size of the lesson window (default 6).
	LessonsPerPage int

	// QuickToggleType - the one lesson category eligible for the one-click
	// attendance toggle.
	QuickToggleType string

	// Author - fixed author label for student notes and grade history.
	Author string

	// SeedFile - path to a JSON fixture; empty uses the built-in demo group.
	SeedFile string

	// NotificationFeedSize - capacity of the in-memory notification feed.
	NotificationFeedSize int
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:            getEnv("APP_NAME", "teacher-journal-hub"),
			Environment:     Environment(getEnv("APP_ENV", string(EnvDevelopment))),
			Debug:           getEnvBool("APP_DEBUG", false),
			Version:         getEnv("APP_VERSION", "dev"),
			LogLevel:        getEnv("LOG_LEVEL", "INFO"),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		},
		HTTP: HTTPConfig{
			Host:         getEnv("HTTP_HOST", "0.0.0.0"),
			Port:         getEnvInt("HTTP_PORT", 8080),
			ReadTimeout:  getEnvDuration("HTTP_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvDuration("HTTP_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:  getEnvDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
			EnableCORS:   getEnvBool("HTTP_ENABLE_CORS", true),
		},
		Journal: JournalConfig{
			LessonsPerPage:       getEnvInt("JOURNAL_LESSONS_PER_PAGE", 6),
			QuickToggleType:      getEnv("JOURNAL_QUICK_TOGGLE_TYPE", "lecture"),
			Author:               getEnv("JOURNAL_AUTHOR", "Преподаватель"),
			SeedFile:             getEnv("JOURNAL_SEED_FILE", ""),
			NotificationFeedSize: getEnvInt("JOURNAL_NOTIFICATION_FEED_SIZE", 100),
		},
		Features: LoadFeatureFlags(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	switch c.App.Environment {
	case EnvDevelopment, EnvStaging, EnvProduction:
	default:
		return fmt.Errorf("config: unknown environment %q", c.App.Environment)
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("config: invalid HTTP port %d", c.HTTP.Port)
	}
	if c.Journal.LessonsPerPage <= 0 {
		return fmt.Errorf("config: lessons per page must be positive, got %d", c.Journal.LessonsPerPage)
	}
	switch c.Journal.QuickToggleType {
	case "lecture", "practical", "laboratory":
	default:
		return fmt.Errorf("config: invalid quick toggle type %q", c.Journal.QuickToggleType)
	}
	return nil
}

// IsDevelopment reports whether the app runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == EnvDevelopment
}

// Environment helpers.

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			return d
		}
	}
	return fallback
}
