package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	IdPServerURL    string // Required: base URL of the identity provider
	IdPRealm        string // Required: realm the gateway authenticates against
	IdPClientID     string // Required: OAuth2 client ID for the password grant
	IdPClientSecret string // Optional: client secret (empty for public clients)

	FederationMode        string // Optional: federation backend (directory, remote) (default: directory)
	FederationValidateURL string // Required when FederationMode=remote: credential validation endpoint

	MFAIssuer string // Optional: issuer label shown in authenticator apps (default: AuthGate)

	StoreDriver  string // Optional: store driver (sqlite, memory) (default: sqlite)
	DatabaseFile string // Optional: path to SQLite database file (default: ./authgate.db)
	PepperFile   string // Optional: path to file containing pepper for password hashing (default: ./pepper)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		IdPServerURL:    os.Getenv("GATEWAY_IDP_SERVER_URL"),
		IdPRealm:        getEnvOrDefault("GATEWAY_IDP_REALM", "internal"),
		IdPClientID:     getEnvOrDefault("GATEWAY_IDP_CLIENT_ID", "authgate"),
		IdPClientSecret: os.Getenv("GATEWAY_IDP_CLIENT_SECRET"),

		FederationMode:        getEnvOrDefault("GATEWAY_FEDERATION_MODE", "directory"),
		FederationValidateURL: os.Getenv("GATEWAY_FEDERATION_VALIDATE_URL"),

		MFAIssuer: getEnvOrDefault("GATEWAY_MFA_ISSUER", "AuthGate"),

		StoreDriver:  getEnvOrDefault("GATEWAY_STORE_DRIVER", "sqlite"),
		DatabaseFile: getEnvOrDefault("GATEWAY_DATABASE_FILE", "authgate.db"),
		PepperFile:   getEnvOrDefault("GATEWAY_PEPPER_FILE", "pepper"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	return cfg
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

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
