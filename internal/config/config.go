// Package config loads server settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mmynk/households/internal/storage/sqlstore"
)

const minSecretLength = 16

type Config struct {
	// HTTP Server
	Port            string
	ShutdownTimeout time.Duration

	// Database
	DBDriver string
	DBPath   string // sqlite only
	DBDSN    string // postgres and mysql

	// Auth
	JWTSecret string

	// AMQP (optional; empty URL disables events)
	AMQPURL      string
	AMQPExchange string

	// Ledger
	StrictCustomShares bool
	strictCustomShares string // raw STRICT_CUSTOM_SHARES, checked by Validate

	LogLevel string
}

// Load reads .env (if present) and then the process environment. Variables
// already set in the environment win over .env.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", "8080"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),

		DBDriver: getEnv("DB_DRIVER", string(sqlstore.SQLite)),
		DBPath:   getEnv("DB_PATH", "./data/households.db"),
		DBDSN:    getEnv("DB_DSN", ""),

		JWTSecret: getEnv("JWT_SECRET", ""),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "households"),

		StrictCustomShares: getEnvBool("STRICT_CUSTOM_SHARES", false),
		strictCustomShares: os.Getenv("STRICT_CUSTOM_SHARES"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate validates the configuration and returns an error listing every problem.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("invalid shutdown timeout %v: must be positive", c.ShutdownTimeout))
	}

	dialect, err := sqlstore.ParseDialect(c.DBDriver)
	if err != nil {
		errors = append(errors, err.Error())
	} else if dialect == sqlstore.SQLite {
		if c.DBPath == "" {
			errors = append(errors, "DB_PATH cannot be empty when using the sqlite driver")
		}
	} else if c.DBDSN == "" {
		errors = append(errors, fmt.Sprintf("DB_DSN is required when using the %s driver", dialect))
	}

	if c.JWTSecret == "" {
		errors = append(errors, "JWT_SECRET is required")
	} else if len(c.JWTSecret) < minSecretLength {
		errors = append(errors, fmt.Sprintf("JWT_SECRET must be at least %d bytes", minSecretLength))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
	}

	if c.strictCustomShares != "" {
		if _, err := strconv.ParseBool(c.strictCustomShares); err != nil {
			errors = append(errors, fmt.Sprintf("invalid STRICT_CUSTOM_SHARES '%s': must be true or false", c.strictCustomShares))
		}
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// Dialect returns the parsed DB_DRIVER. Call Validate first.
func (c *Config) Dialect() sqlstore.Dialect {
	d, _ := sqlstore.ParseDialect(c.DBDriver)
	return d
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
