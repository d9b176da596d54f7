// Package config reads the server configuration from BIO_* environment
// variables, after loading .env files for local development.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DotenvFiles are loaded, when present, before the environment is read.
// Variables already set in the environment win.
var DotenvFiles = []string{".env", ".env.local"}

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request deadline

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // dial timeout
	RedisRT               time.Duration // read timeout
	RedisWT               time.Duration // write timeout
	RedisMaxWait          time.Duration // max wait between retries
	RedisPingTimeout      time.Duration // timeout for each ping attempt
	RedisPoolSize         int           // connection pool size
	RedisConnectTimeout   time.Duration // total time to retry connecting
	RedisRetryInterval    time.Duration // initial wait between retries, doubled each time
	RedisWarnThreshold    int           // failed attempts logged as warnings

	// Sessions
	JWTSecret string        // HS256 signing secret
	TokenTTL  time.Duration // lifetime of issued tokens

	// Access
	AllowedHosts   []string // optional, restrict Host headers
	AllowedCIDRS   []string // optional, restrict readyz and metrics to these ips/CIDRs
	TrustProxy     bool     // true => trust X-Forwarded-For and friends
	CORSOrigins    []string // browser origins allowed to call the API, "*" for any
	AuthRateBurst  int      // register/login burst per client ip
	AuthRatePerMin int      // register/login refill per minute per client ip
}

func Load() *Config {
	loadDotenv(DotenvFiles...)

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("BIO_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("BIO_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("BIO_REQUEST_TIMEOUT", 10*time.Second),

		// Logging
		LogLevel:  getenv("BIO_LOG_LEVEL", "info"),
		PrettyLog: mustBool("BIO_PRETTY_LOG", false),

		// Redis settings
		RedisAddr:             requireEnv("BIO_REDIS_ADDR"),
		RedisUser:             getenv("BIO_REDIS_USERNAME", ""),
		RedisPasswordRequired: mustBool("BIO_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("BIO_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("BIO_REDIS_DB", 0),
		RedisDT:               mustDuration("BIO_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("BIO_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("BIO_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("BIO_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("BIO_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("BIO_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("BIO_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("BIO_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("BIO_REDIS_WARN_THRESHOLD", 3),

		// Sessions
		JWTSecret: requireEnv("BIO_JWT_SECRET"),
		TokenTTL:  mustDuration("BIO_TOKEN_TTL", 24*time.Hour),

		// Access restrictions
		AllowedHosts:   splitAndTrim(getenv("BIO_ALLOWED_HOSTS", "")),
		AllowedCIDRS:   splitAndTrim(getenv("BIO_ALLOWED_CIDRS", "")),
		TrustProxy:     mustBool("BIO_TRUST_PROXY", false),
		CORSOrigins:    splitAndTrim(getenv("BIO_CORS_ORIGINS", "")),
		AuthRateBurst:  getenvInt("BIO_AUTH_RATE_BURST", 10),
		AuthRatePerMin: getenvInt("BIO_AUTH_RATE_PER_MIN", 5),
	}

	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: BIO_REDIS_PASSWORD is required when BIO_REDIS_PASSWORD_REQUIRED=true")
	}
	if len(cfg.JWTSecret) < 16 {
		panic("❌ FATAL: BIO_JWT_SECRET must be at least 16 characters long")
	}

	if cfg.LogLevel == "debug" {
		redacted := *cfg
		redacted.RedisPassword = "***REDACTED***"
		redacted.JWTSecret = "***REDACTED***"
		log.Printf("[DEBUG] cfg: %+v\n", redacted)
	}

	return cfg
}

// loadDotenv loads the files that exist, without overriding variables
// already present in the environment.
func loadDotenv(files ...string) {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", f, err)
		}
	}
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid integer value for %s: %s", key, v))
	}
	return i
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.Trim(strings.TrimSpace(part), `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
