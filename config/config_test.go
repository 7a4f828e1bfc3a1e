package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"SIFT_HOST", "SIFT_PORT", "SIFT_MODE", "SIFT_USER_AGENT", "SIFT_FETCH_TIMEOUT",
		"SIFT_MAX_BODY_BYTES", "SIFT_TLS_FINGERPRINT", "SIFT_PROXY", "SIFT_CONTENT_FORMAT",
		"SIFT_EXTRACT_MODE", "SIFT_RATE_RPS", "SIFT_RATE_BURST", "SIFT_LOG_LEVEL", "SIFT_LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Server.Port != 3000 || cfg.Server.Host != "0.0.0.0" || cfg.Server.Mode != "release" {
		t.Errorf("server defaults: %+v", cfg.Server)
	}
	if cfg.Fetch.UserAgent != DefaultUserAgent {
		t.Errorf("user agent = %q", cfg.Fetch.UserAgent)
	}
	if cfg.Fetch.Timeout != 0 || cfg.Fetch.MaxBodyBytes != 0 {
		t.Errorf("fetch limits should default to none: %+v", cfg.Fetch)
	}
	if !cfg.Fetch.TLSFingerprint {
		t.Error("TLS fingerprint should default to on")
	}
	if cfg.Extract.Format != "text" || cfg.Extract.Mode != "heuristic" {
		t.Errorf("extract defaults: %+v", cfg.Extract)
	}
	if cfg.RateLimit.RequestsPerSecond != 5 || cfg.RateLimit.Burst != 10 {
		t.Errorf("rate limit defaults: %+v", cfg.RateLimit)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("log defaults: %+v", cfg.Log)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SIFT_PORT", "8081")
	t.Setenv("SIFT_FETCH_TIMEOUT", "15s")
	t.Setenv("SIFT_MAX_BODY_BYTES", "1048576")
	t.Setenv("SIFT_TLS_FINGERPRINT", "false")
	t.Setenv("SIFT_CONTENT_FORMAT", "Markdown")
	t.Setenv("SIFT_EXTRACT_MODE", "readability")
	t.Setenv("SIFT_RATE_RPS", "0.5")

	cfg := Load()

	if cfg.Server.Port != 8081 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Fetch.Timeout != 15*time.Second {
		t.Errorf("timeout = %v", cfg.Fetch.Timeout)
	}
	if cfg.Fetch.MaxBodyBytes != 1<<20 {
		t.Errorf("max body bytes = %d", cfg.Fetch.MaxBodyBytes)
	}
	if cfg.Fetch.TLSFingerprint {
		t.Error("TLS fingerprint should be off")
	}
	if cfg.Extract.Format != "markdown" || cfg.Extract.Mode != "readability" {
		t.Errorf("extract = %+v", cfg.Extract)
	}
	if cfg.RateLimit.RequestsPerSecond != 0.5 {
		t.Errorf("rps = %v", cfg.RateLimit.RequestsPerSecond)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SIFT_PORT", "not-a-number")
	t.Setenv("SIFT_FETCH_TIMEOUT", "soon")
	t.Setenv("SIFT_CONTENT_FORMAT", "pdf")

	cfg := Load()

	if cfg.Server.Port != 3000 {
		t.Errorf("port = %d, want default", cfg.Server.Port)
	}
	if cfg.Fetch.Timeout != 0 {
		t.Errorf("timeout = %v, want default", cfg.Fetch.Timeout)
	}
	if cfg.Extract.Format != "text" {
		t.Errorf("format = %q, want default", cfg.Extract.Format)
	}
}
