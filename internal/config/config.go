package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Metadata  MetadataConfig
	Download  DownloadConfig
	FileCache FileCacheConfig
	Search    SearchConfig
	API       APIConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port string
	Host string
}

type MetadataConfig struct {
	// FallbackTTL is used when a stream-URL expiry cannot be read from the
	// extractor response.
	FallbackTTL time.Duration
}

type DownloadConfig struct {
	FFmpegPath string
	// MaxDuration rejects non-audio-only downloads of longer videos.
	MaxDuration time.Duration
}

type FileCacheConfig struct {
	Enabled       bool
	Dir           string
	MaxAge        time.Duration
	SweepInterval time.Duration
}

type SearchConfig struct {
	SessionTTL   time.Duration
	DefaultLimit int
}

type APIConfig struct {
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

type CORSConfig struct {
	Enabled        bool
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using environment variables")
	}

	cfg := &Config{}

	cfg.Server.Port = getEnv("SERVER_PORT", "8080")
	cfg.Server.Host = getEnv("SERVER_HOST", "0.0.0.0")

	metadataTTL, err := time.ParseDuration(getEnv("METADATA_TTL_FALLBACK", "5h"))
	if err != nil {
		return nil, fmt.Errorf("invalid METADATA_TTL_FALLBACK: %w", err)
	}
	cfg.Metadata.FallbackTTL = metadataTTL

	cfg.Download.FFmpegPath = getEnv("FFMPEG_PATH", "ffmpeg")
	maxDuration, err := time.ParseDuration(getEnv("MAX_DURATION", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_DURATION: %w", err)
	}
	cfg.Download.MaxDuration = maxDuration

	cfg.FileCache.Enabled = getEnvBool("FILE_CACHE_ENABLED", true)
	cfg.FileCache.Dir = getEnv("FILE_CACHE_DIR", "/tmp/ytgate")
	cacheMaxAge, err := time.ParseDuration(getEnv("FILE_CACHE_MAX_AGE", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid FILE_CACHE_MAX_AGE: %w", err)
	}
	cfg.FileCache.MaxAge = cacheMaxAge
	sweepInterval, err := time.ParseDuration(getEnv("FILE_CACHE_SWEEP_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid FILE_CACHE_SWEEP_INTERVAL: %w", err)
	}
	cfg.FileCache.SweepInterval = sweepInterval

	sessionTTL, err := time.ParseDuration(getEnv("SEARCH_SESSION_TTL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEARCH_SESSION_TTL: %w", err)
	}
	cfg.Search.SessionTTL = sessionTTL
	cfg.Search.DefaultLimit = getEnvInt("SEARCH_DEFAULT_LIMIT", 20)

	cfg.API.RateLimitRequests = getEnvInt("RATE_LIMIT_REQUESTS", 100)
	if cfg.API.RateLimitRequests <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", cfg.API.RateLimitRequests)
	}
	rateLimitWindow, err := time.ParseDuration(getEnv("RATE_LIMIT_WINDOW", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_WINDOW: %w", err)
	}
	cfg.API.RateLimitWindow = rateLimitWindow

	cfg.CORS.Enabled = getEnvBool("CORS_ENABLED", true)
	cfg.CORS.AllowedOrigins = getEnvStringSlice("CORS_ALLOWED_ORIGINS", []string{"*"})
	cfg.CORS.AllowedMethods = getEnvStringSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "OPTIONS"})
	cfg.CORS.AllowedHeaders = getEnvStringSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept"})
	corsMaxAge, err := time.ParseDuration(getEnv("CORS_MAX_AGE", "12h"))
	if err != nil {
		return nil, fmt.Errorf("invalid CORS_MAX_AGE: %w", err)
	}
	cfg.CORS.MaxAge = corsMaxAge

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(strings.TrimSpace(value), ",")
	}
	return defaultValue
}
