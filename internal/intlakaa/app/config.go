package app

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: json)
	Port      int    // HTTP server port (default: 5001)

	DatabaseDriver string // Storage backend (sqlite, mongo) (default: sqlite)
	DatabaseFile   string // SQLite database file (default: ./intlakaa.db)
	MongoURI       string // Required for mongo: connection string
	MongoDatabase  string // Mongo database name (default: intlakaa)

	PepperFile     string        // Path to the password pepper (default: ./pepper)
	SigningKeyFile string        // Path to the Ed25519 PEM signing key (default: ./signing.pem)
	Issuer         string        // Issuer claim for admin tokens (default: intlakaa-api)
	AdminTokenTTL  time.Duration // Admin token lifetime (default: 24h)

	InviteTTL         time.Duration // Invite lifetime (default: 48h)
	PasswordMinLength int           // Minimum admin password length (default: 8)
	FrontendURL       string        // Base URL invite links point at (default: http://localhost:5173)
	AllowedOrigins    []string      // CORS origins (default: httpx.DefaultAllowedOrigins)
	TrustedProxies    []string      // Proxy IPs/CIDRs whose forwarding headers are believed (default: none)
	BootstrapToken    string        // Optional: enables POST /api/auth/bootstrap

	Mailer       string // Invite delivery (log, amqp) (default: log)
	AMQPURL      string // Required for amqp: broker URL
	AMQPExchange string // Topic exchange invites are published to (default: intlakaa.mail)

	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired invite cleanup interval (default: 1h)
}

// LoadConfig reads configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment variables
// win over it.
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err)
	}

	return Config{
		Env:       getEnvOrDefault("ENV", "dev"),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),
		Port:      getEnvIntOrDefault("PORT", 5001),

		DatabaseDriver: strings.ToLower(getEnvOrDefault("DATABASE_DRIVER", "sqlite")),
		DatabaseFile:   getEnvOrDefault("DATABASE_FILE", "intlakaa.db"),
		MongoURI:       os.Getenv("MONGO_URI"),
		MongoDatabase:  getEnvOrDefault("MONGO_DATABASE", "intlakaa"),

		PepperFile:     getEnvOrDefault("PEPPER_FILE", "pepper"),
		SigningKeyFile: getEnvOrDefault("SIGNING_KEY_FILE", "signing.pem"),
		Issuer:         getEnvOrDefault("TOKEN_ISSUER", "intlakaa-api"),
		AdminTokenTTL:  getEnvDurationOrDefault("ADMIN_TOKEN_TTL", 24*time.Hour),

		InviteTTL:         getEnvDurationOrDefault("INVITE_TTL", 48*time.Hour),
		PasswordMinLength: getEnvIntOrDefault("PASSWORD_MIN_LENGTH", 8),
		FrontendURL:       getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
		AllowedOrigins:    getEnvListOrDefault("CORS_ALLOWED_ORIGINS", nil),
		TrustedProxies:    getEnvListOrDefault("TRUSTED_PROXIES", nil),
		BootstrapToken:    os.Getenv("BOOTSTRAP_TOKEN"),

		Mailer:       strings.ToLower(getEnvOrDefault("MAILER", "log")),
		AMQPURL:      os.Getenv("AMQP_URL"),
		AMQPExchange: getEnvOrDefault("AMQP_EXCHANGE", "intlakaa.mail"),

		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

// getEnvListOrDefault splits a comma separated value, dropping blanks.
func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
