package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Session cookies
	SessionSecret string

	// Credential check
	SignInLatency time.Duration

	// Database
	SQLiteDBPath string

	// AMQP (audit event pipeline)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Rate limiting for sign-in attempts
	SignInRatePerMinute int

	// Backend selection
	DataBackend string
}

func Load() *Config {
	cfg := &Config{
		Port:          getEnv("PORT", "8082"),
		SessionSecret: getEnv("SESSION_SECRET", "tddbank-dev-secret"),
		SignInLatency: getEnvDuration("SIGN_IN_LATENCY", 1200*time.Millisecond),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/tddbank.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "tddbank"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "audit_events"),

		SignInRatePerMinute: getEnvInt("SIGN_IN_RATE_PER_MINUTE", 30),

		DataBackend: getEnv("DATA_BACKEND", "memory"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate data backend
	validBackends := []string{"memory", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	// Validate SQLite configuration if backend is sqlite
	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}

		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.SessionSecret == "" {
		errors = append(errors, "session secret cannot be empty")
	}

	if c.SignInLatency < 0 {
		errors = append(errors, fmt.Sprintf("invalid sign-in latency %v: must not be negative", c.SignInLatency))
	} else if c.SignInLatency > 30*time.Second {
		errors = append(errors, fmt.Sprintf("invalid sign-in latency %v: must be at most 30 seconds", c.SignInLatency))
	}

	if c.SignInRatePerMinute < 1 {
		errors = append(errors, fmt.Sprintf("invalid sign-in rate %d: must be at least 1 per minute", c.SignInRatePerMinute))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
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
