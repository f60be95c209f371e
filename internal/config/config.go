// ABOUTME: Centralized configuration for the chatter bot
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Storage backends
const (
	StorageSQLite = "sqlite"
	StorageCharm  = "charm"
	StorageMemory = "memory"
)

// Matchers
const (
	MatcherClosest   = "closest"
	MatcherEmbedding = "embedding"
)

// Default thresholds per matcher when CHATTER_MATCH_THRESHOLD is unset
const (
	DefaultClosestThreshold   = 0.0
	DefaultEmbeddingThreshold = 0.5
)

// Config holds all configuration for the bot
type Config struct {
	// Bot settings
	BotName        string
	RecentWindow   int
	TrainCarryOver bool
	LogLevel       string
	LogFormat      string

	// Storage settings
	Storage string
	DBPath  string

	// Charm settings
	CharmHost   string
	CharmDBName string
	AutoSync    bool

	// Matcher settings
	Matcher        string
	MatchThreshold float64

	// OpenAI settings
	OpenAIKey      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	matcher := strings.ToLower(getEnv("CHATTER_MATCHER", MatcherClosest))
	defaultThreshold := DefaultClosestThreshold
	if matcher == MatcherEmbedding {
		defaultThreshold = DefaultEmbeddingThreshold
	}

	cfg := &Config{
		BotName:        getEnv("CHATTER_BOT_NAME", "chatter"),
		RecentWindow:   getEnvInt("CHATTER_RECENT_WINDOW", 10),
		TrainCarryOver: getEnvBool("CHATTER_TRAIN_CARRY_OVER", true),
		LogLevel:       strings.ToLower(getEnv("CHATTER_LOG_LEVEL", "info")),
		LogFormat:      strings.ToLower(getEnv("CHATTER_LOG_FORMAT", "text")),
		Storage:        strings.ToLower(getEnv("CHATTER_STORAGE", StorageSQLite)),
		DBPath:         os.Getenv("CHATTER_DB_PATH"),
		CharmHost:      getEnv("CHARM_HOST", "charm.2389.dev"),
		CharmDBName:    getEnv("CHARM_DB", "chatter"),
		AutoSync:       getEnvBool("CHARM_AUTO_SYNC", true),
		Matcher:        matcher,
		MatchThreshold: getEnvFloat("CHATTER_MATCH_THRESHOLD", defaultThreshold),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		EmbeddingModel: getEnv("CHATTER_EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:        getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:     getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:     getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
	}

	return cfg, cfg.Validate()
}

// Validate checks value ranges and backend names
func (c *Config) Validate() error {
	if !slices.Contains([]string{StorageSQLite, StorageCharm, StorageMemory}, c.Storage) {
		return fmt.Errorf("CHATTER_STORAGE must be sqlite, charm or memory, got %q", c.Storage)
	}
	if !slices.Contains([]string{MatcherClosest, MatcherEmbedding}, c.Matcher) {
		return fmt.Errorf("CHATTER_MATCHER must be closest or embedding, got %q", c.Matcher)
	}
	if c.Matcher == MatcherEmbedding && c.OpenAIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required for the embedding matcher")
	}
	if c.MatchThreshold < 0 || c.MatchThreshold > 1 {
		return fmt.Errorf("CHATTER_MATCH_THRESHOLD must be 0-1, got %f", c.MatchThreshold)
	}
	if c.RecentWindow < 1 {
		return fmt.Errorf("CHATTER_RECENT_WINDOW must be at least 1, got %d", c.RecentWindow)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.LogLevel) {
		return fmt.Errorf("CHATTER_LOG_LEVEL must be debug, info, warn or error, got %q", c.LogLevel)
	}
	if !slices.Contains([]string{"text", "json", "logfmt"}, c.LogFormat) {
		return fmt.Errorf("CHATTER_LOG_FORMAT must be text, json or logfmt, got %q", c.LogFormat)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
