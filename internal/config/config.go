package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string

	// Storage
	StorageDriver string // memory, sqlite or postgres
	DatabaseURL   string
	SQLitePath    string
	BunDebug      bool
	SeedFile      string // empty means the embedded seed

	// Editor auth for mutating routes
	AuthEnabled       bool
	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTIssuer         string
	AccessTokenTTL    time.Duration

	AllowedOrigins  []string
	ShutdownTimeout time.Duration
	MetricsEnabled  bool
}

// Load loads environment variables and returns a Config struct
func Load() *Config {
	_ = godotenv.Load()

	accessTTLMin, err := strconv.Atoi(getEnv("ACCESS_TOKEN_MINUTES", "60"))
	if err != nil || accessTTLMin <= 0 {
		log.Printf("invalid ACCESS_TOKEN_MINUTES, defaulting to 60\n")
		accessTTLMin = 60
	}

	allowedOrigins := strings.Split(
		getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"),
		",",
	)
	for i := range allowedOrigins {
		allowedOrigins[i] = strings.TrimSpace(allowedOrigins[i])
	}

	return &Config{
		Port:              getEnv("APP_PORT", "8780"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		LogLevel:          strings.ToLower(getEnv("LOG_LEVEL", "info")),
		StorageDriver:     strings.ToLower(getEnv("STORAGE_DRIVER", StorageMemory)),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		SQLitePath:        getEnv("SQLITE_PATH", "bloomviewer.db"),
		BunDebug:          getEnvAsBool("BUNDEBUG", false),
		SeedFile:          getEnv("SEED_FILE", ""),
		AuthEnabled:       getEnvAsBool("AUTH_ENABLED", false),
		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "keys/jwt_private.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "keys/jwt_public.pem"),
		JWTIssuer:         getEnv("JWT_ISSUER", "bloomviewer"),
		AccessTokenTTL:    time.Duration(accessTTLMin) * time.Minute,
		AllowedOrigins:    allowedOrigins,
		ShutdownTimeout:   getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		MetricsEnabled:    getEnvAsBool("METRICS_ENABLED", true),
	}
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageMemory, StorageSQLite:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required when STORAGE_DRIVER is postgres")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.AuthEnabled && c.JWTPublicKeyPath == "" {
		return errors.New("AUTH_ENABLED is true but JWT_PUBLIC_KEY_PATH is not set")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown LOG_LEVEL %q", c.LogLevel)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valStr := os.Getenv(key)
	if valStr == "" {
		return fallback
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("invalid bool for %s, defaulting to %v\n", key, fallback)
		return fallback
	}
	return val
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valStr := os.Getenv(key)
	if valStr == "" {
		return fallback
	}
	val, err := time.ParseDuration(valStr)
	if err != nil || val <= 0 {
		log.Printf("invalid duration for %s, defaulting to %v\n", key, fallback)
		return fallback
	}
	return val
}
