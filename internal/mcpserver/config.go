package mcpserver

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
)

// serverConfig is read once from JOLT_* environment variables when the
// package loads. MCP clients set these in their server definition.
type serverConfig struct {
	MaxInputSize    int64
	AllowPrivateIPs bool

	// OutputFormat is used when a transform call does not name one.
	OutputFormat string
	// StepTimeout bounds each chain step; zero disables the limit.
	StepTimeout time.Duration

	LogLevel zapcore.Level

	// Built chains are cached per source. TTLs differ by source kind since a
	// file's mtime is part of its key while a URL's content can change freely.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheURLTTL        time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration
}

var cfg = loadConfig()

func loadConfig() *serverConfig {
	return &serverConfig{
		MaxInputSize:       envValue("JOLT_MAX_INPUT_SIZE", int64(10*1024*1024), parsePositive[int64]),
		AllowPrivateIPs:    envValue("JOLT_ALLOW_PRIVATE_IPS", false, strconv.ParseBool),
		OutputFormat:       envValue("JOLT_OUTPUT_FORMAT", formatJSON, parseFormat),
		StepTimeout:        envValue("JOLT_STEP_TIMEOUT", time.Duration(0), parseDuration),
		LogLevel:           envValue("JOLT_LOG_LEVEL", zapcore.InfoLevel, zapcore.ParseLevel),
		CacheEnabled:       envValue("JOLT_CACHE_ENABLED", true, strconv.ParseBool),
		CacheMaxSize:       envValue("JOLT_CACHE_MAX_SIZE", 32, parsePositive[int]),
		CacheFileTTL:       envValue("JOLT_CACHE_FILE_TTL", 15*time.Minute, parseDuration),
		CacheURLTTL:        envValue("JOLT_CACHE_URL_TTL", 5*time.Minute, parseDuration),
		CacheContentTTL:    envValue("JOLT_CACHE_CONTENT_TTL", 15*time.Minute, parseDuration),
		CacheSweepInterval: envValue("JOLT_CACHE_SWEEP_INTERVAL", 60*time.Second, parseDuration),
	}
}

// envValue parses the variable key with parse. An unset variable yields
// fallback; an unparsable one logs a warning and also yields fallback.
func envValue[T any](key string, fallback T, parse func(string) (T, error)) T {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	v, err := parse(raw)
	if err != nil {
		slog.Warn("ignoring invalid environment variable", "key", key, "value", raw, "error", err, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return v
}

func parsePositive[T int | int64](s string) (T, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, errors.New("must be positive")
	}
	return T(n), nil
}

// parseDuration accepts zero, which disables whatever the setting controls.
func parseDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, errors.New("must not be negative")
	}
	return d, nil
}

func parseFormat(s string) (string, error) {
	switch f := strings.ToLower(s); f {
	case formatJSON, formatYAML:
		return f, nil
	default:
		return "", errors.New("must be json or yaml")
	}
}
