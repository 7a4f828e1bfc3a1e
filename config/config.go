package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Version is reported by /health and in the default User-Agent.
const Version = "0.1.0"

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Fetch     FetchConfig
	Extract   ExtractConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 3000
	Mode string // "debug", "release", "test"; default: "release"
}

// FetchConfig controls the outbound HTTP client.
type FetchConfig struct {
	// UserAgent identifies sift to origin servers.
	UserAgent string

	// Timeout bounds one whole fetch. Zero disables it.
	Timeout time.Duration // default: 0

	// MaxBodyBytes caps how much of a body is read. Zero means unlimited.
	MaxBodyBytes int64 // default: 0

	// TLSFingerprint presents a Chrome ClientHello on HTTPS connections.
	TLSFingerprint bool // default: true

	// Proxy is an optional http(s) proxy URL for all fetches.
	Proxy string
}

// ExtractConfig selects how HTML bodies are turned into content.
type ExtractConfig struct {
	// Format is "text" or "markdown".
	Format string // default: "text"

	// Mode is "heuristic" or "readability".
	Mode string // default: "heuristic"
}

// RateLimitConfig controls per-client rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per client IP.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per client IP.
	Burst int // default: 10
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// DefaultUserAgent is sent when SIFT_USER_AGENT is unset.
var DefaultUserAgent = fmt.Sprintf("sift/%s (+https://github.com/use-agent/sift)", Version)

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("SIFT_HOST", "0.0.0.0"),
			Port: envIntOr("SIFT_PORT", 3000),
			Mode: envOr("SIFT_MODE", "release"),
		},
		Fetch: FetchConfig{
			UserAgent:      envOr("SIFT_USER_AGENT", DefaultUserAgent),
			Timeout:        envDurationOr("SIFT_FETCH_TIMEOUT", 0),
			MaxBodyBytes:   envInt64Or("SIFT_MAX_BODY_BYTES", 0),
			TLSFingerprint: envBoolOr("SIFT_TLS_FINGERPRINT", true),
			Proxy:          os.Getenv("SIFT_PROXY"),
		},
		Extract: ExtractConfig{
			Format: envChoiceOr("SIFT_CONTENT_FORMAT", "text", "text", "markdown"),
			Mode:   envChoiceOr("SIFT_EXTRACT_MODE", "heuristic", "heuristic", "readability"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("SIFT_RATE_RPS", 5.0),
			Burst:             envIntOr("SIFT_RATE_BURST", 10),
		},
		Log: LogConfig{
			Level:  envOr("SIFT_LOG_LEVEL", "info"),
			Format: envOr("SIFT_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envChoiceOr returns the lower-cased value of key when it is one of
// allowed, and fallback otherwise.
func envChoiceOr(key, fallback string, allowed ...string) string {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envInt64Or(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
