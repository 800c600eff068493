package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort       = "3000"
	defaultSessionTTL = 8 * time.Hour
	minSecretLength   = 32
)

type Config struct {
	AppPort string

	CookieSecret string
	CookieSecure bool
	SessionTTL   time.Duration

	RedisAddr     string
	RedisPassword string

	DatabaseDSN string

	FrontendURL string
	StaticDir   string

	LogLevel  string
	LogFormat string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present; real environment
// variables take precedence over it.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{

		AppPort: getEnv("APP_PORT", defaultPort),

		CookieSecret: os.Getenv("COOKIE_SECRET"),
		CookieSecure: getBool("COOKIE_SECURE", false),
		SessionTTL:   getDuration("SESSION_TTL", defaultSessionTTL),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		DatabaseDSN: os.Getenv("DATABASE_DSN"),

		FrontendURL: os.Getenv("FRONTEND_URL"),
		StaticDir:   os.Getenv("STATIC_DIR"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	return cfg

}

// Validate reports settings the service cannot start without.
// DATABASE_DSN and REDIS_ADDR are optional; without them the service
// falls back to in-memory stores.
func (c Config) Validate() error {
	var errs []error

	if c.CookieSecret == "" {
		errs = append(errs, errors.New("COOKIE_SECRET is required"))
	} else if len(c.CookieSecret) < minSecretLength {
		errs = append(errs, errors.New("COOKIE_SECRET must be at least 32 bytes"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}

	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return d
}
