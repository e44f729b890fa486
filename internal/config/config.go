// Package config provides configuration loading and validation for the
// server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds all runtime settings. Values can come from a JSON file, from
// environment variables, or from CLI flags; flags win over file values, file
// values win over environment.
type Config struct {
	// Credentials
	GeminiAPIKey   string `json:"gemini_api_key,omitempty"`   // Gemini API key
	SearchAPIKey   string `json:"search_api_key,omitempty"`   // Google Custom Search API key
	SearchEngineID string `json:"search_engine_id,omitempty"` // Google Custom Search engine id (cx)
	DatabaseURL    string `json:"database_url,omitempty"`     // PostgreSQL connection URL

	// Models
	PrimaryModel  string `json:"primary_model,omitempty"`  // Override for the primary model
	FallbackModel string `json:"fallback_model,omitempty"` // Override for the fallback model

	// Limits
	MaxAgentTurns        int `json:"max_agent_turns,omitempty"`        // Tool-calling turn ceiling per coaching request
	CacheMaxEntries      int `json:"cache_max_entries,omitempty"`      // Bound on the market-intelligence result cache
	CacheTTLHours        int `json:"cache_ttl_hours,omitempty"`        // TTL for cached market-intelligence lookups
	SearchTimeoutSeconds int `json:"search_timeout_seconds,omitempty"` // Per-lookup timeout for external search

	// Server
	ListenAddr string `json:"listen_addr,omitempty"` // HTTP listen address
	Verbose    bool   `json:"verbose,omitempty"`     // Print detailed debug information
}

// FromEnv builds a Config from environment variables. Call after godotenv
// has loaded any .env file.
func FromEnv() (*Config, error) {
	cfg := &Config{
		GeminiAPIKey:   os.Getenv("GOOGLE_API_KEY"),
		SearchAPIKey:   os.Getenv("GOOGLE_SEARCH_API_KEY"),
		SearchEngineID: os.Getenv("GOOGLE_SEARCH_ENGINE_ID"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		PrimaryModel:   os.Getenv("PRIMARY_MODEL"),
		FallbackModel:  os.Getenv("FALLBACK_MODEL"),
		ListenAddr:     os.Getenv("LISTEN_ADDR"),
	}

	for _, field := range []struct {
		env  string
		dest *int
	}{
		{"MAX_AGENT_TURNS", &cfg.MaxAgentTurns},
		{"CACHE_MAX_ENTRIES", &cfg.CacheMaxEntries},
		{"CACHE_TTL_HOURS", &cfg.CacheTTLHours},
		{"SEARCH_TIMEOUT_SECONDS", &cfg.SearchTimeoutSeconds},
	} {
		raw := os.Getenv(field.env)
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %v", field.env, err)
		}
		*field.dest = value
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig loads configuration from a JSON file
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks numeric ranges. Required credentials are checked at the
// point of use so read-only commands can run without them.
func (c *Config) Validate() error {
	if c.MaxAgentTurns < 0 {
		return fmt.Errorf("config error: 'max_agent_turns' must be non-negative")
	}
	if c.CacheMaxEntries < 0 {
		return fmt.Errorf("config error: 'cache_max_entries' must be non-negative")
	}
	if c.CacheTTLHours < 0 {
		return fmt.Errorf("config error: 'cache_ttl_hours' must be non-negative")
	}
	if c.SearchTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'search_timeout_seconds' must be non-negative")
	}
	return nil
}

// Merge returns a copy of c with empty fields filled from other
func (c *Config) Merge(other Config) Config {
	result := *c

	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = other.GeminiAPIKey
	}
	if result.SearchAPIKey == "" {
		result.SearchAPIKey = other.SearchAPIKey
	}
	if result.SearchEngineID == "" {
		result.SearchEngineID = other.SearchEngineID
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = other.DatabaseURL
	}
	if result.PrimaryModel == "" {
		result.PrimaryModel = other.PrimaryModel
	}
	if result.FallbackModel == "" {
		result.FallbackModel = other.FallbackModel
	}
	if result.ListenAddr == "" {
		result.ListenAddr = other.ListenAddr
	}
	if result.MaxAgentTurns == 0 {
		result.MaxAgentTurns = other.MaxAgentTurns
	}
	if result.CacheMaxEntries == 0 {
		result.CacheMaxEntries = other.CacheMaxEntries
	}
	if result.CacheTTLHours == 0 {
		result.CacheTTLHours = other.CacheTTLHours
	}
	if result.SearchTimeoutSeconds == 0 {
		result.SearchTimeoutSeconds = other.SearchTimeoutSeconds
	}
	if !result.Verbose {
		result.Verbose = other.Verbose
	}
	return result
}
