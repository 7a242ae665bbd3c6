package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ClientsPort string
	ReportsPort string

	// Google Cloud
	CredentialsFile    string
	FirestoreProjectID string // detected from the credentials when empty
	ClientsCollection  string

	// Auth for report routes; empty disables it.
	ReportAPIKey string

	// Model
	GeneratorProvider string
	GeminiAPIKey      string
	GeminiBaseURL     string
	OpenAIAPIKey      string
	OpenAIBaseURL     string
	GeneratorModel    string
	GenerateTimeout   time.Duration
	GenerateAttempts  int
	// ReportTimeout bounds one report request end to end, including the
	// wait for a compile slot.
	ReportTimeout time.Duration

	// Compiler
	CompilerBin           string
	CompileTimeout        time.Duration
	MaxConcurrentCompiles int
	ScratchDir            string

	// Sanitation
	BraceMode    string
	UnwrapFences bool

	// Archive
	ArchiveBucket string

	// Limits
	MaxBodyBytes int64
	StatsWindow  time.Duration
}

func Load() Config {
	provider := strings.ToLower(envOr("GENERATOR_PROVIDER", "gemini"))

	cfg := Config{
		ClientsPort: envOr("CLIENTS_PORT", "5000"),
		ReportsPort: envOr("REPORTS_PORT", "8090"),

		CredentialsFile:    os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		FirestoreProjectID: os.Getenv("FIRESTORE_PROJECT_ID"),
		ClientsCollection:  envOr("CLIENTS_COLLECTION", "clients"),

		ReportAPIKey: os.Getenv("REPORT_API_KEY"),

		GeneratorProvider: provider,
		GeminiAPIKey:      envOr("GEMINI_API_KEY", os.Getenv("GOOGLE_API_KEY")),
		GeminiBaseURL:     os.Getenv("GEMINI_BASE_URL"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:     os.Getenv("OPENAI_BASE_URL"),
		GeneratorModel:    envOr("GENERATOR_MODEL", defaultModel(provider)),
		GenerateTimeout:   envDuration("GENERATE_TIMEOUT", 90*time.Second),
		GenerateAttempts:  envInt("GENERATE_ATTEMPTS", 3),
		ReportTimeout:     envDuration("REPORT_TIMEOUT", 0),

		CompilerBin:           envOr("COMPILER_BIN", "tectonic"),
		CompileTimeout:        envDuration("COMPILE_TIMEOUT", 2*time.Minute),
		MaxConcurrentCompiles: envInt("MAX_CONCURRENT_COMPILES", 2),
		ScratchDir:            os.Getenv("SCRATCH_DIR"),

		BraceMode:    strings.ToLower(envOr("BRACE_MODE", "legacy")),
		UnwrapFences: envBool("UNWRAP_FENCES", true),

		ArchiveBucket: os.Getenv("REPORT_ARCHIVE_BUCKET"),

		MaxBodyBytes: envInt64("MAX_BODY_BYTES", 1048576), // 1MB
		StatsWindow:  envDuration("STATS_WINDOW", time.Hour),
	}

	if cfg.GenerateTimeout <= 0 {
		cfg.GenerateTimeout = 90 * time.Second
	}
	if cfg.GenerateAttempts <= 0 {
		cfg.GenerateAttempts = 3
	}
	if cfg.CompileTimeout <= 0 {
		cfg.CompileTimeout = 2 * time.Minute
	}
	if cfg.MaxConcurrentCompiles <= 0 {
		cfg.MaxConcurrentCompiles = 2
	}
	if cfg.ReportTimeout <= 0 {
		cfg.ReportTimeout = cfg.GenerateTimeout + cfg.CompileTimeout + 30*time.Second
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1048576
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = time.Hour
	}

	return cfg
}

// Validate checks everything the server needs at startup.
func (c Config) Validate() error {
	if c.CredentialsFile == "" {
		return fmt.Errorf("GOOGLE_APPLICATION_CREDENTIALS is required")
	}
	return c.ValidateGenerator()
}

// ValidateGenerator checks only the settings report generation needs, so
// offline tooling can run without document-store credentials.
func (c Config) ValidateGenerator() error {
	switch c.GeneratorProvider {
	case "gemini":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required")
		}
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required")
		}
	default:
		return fmt.Errorf("unknown GENERATOR_PROVIDER %q", c.GeneratorProvider)
	}
	switch c.BraceMode {
	case "legacy", "depth":
	default:
		return fmt.Errorf("unknown BRACE_MODE %q", c.BraceMode)
	}
	return nil
}

// GeneratorAPIKey returns the key for the selected provider.
func (c Config) GeneratorAPIKey() string {
	if c.GeneratorProvider == "openai" {
		return c.OpenAIAPIKey
	}
	return c.GeminiAPIKey
}

// GeneratorBaseURL returns the endpoint override for the selected provider.
// Empty means the provider's public endpoint.
func (c Config) GeneratorBaseURL() string {
	if c.GeneratorProvider == "openai" {
		return c.OpenAIBaseURL
	}
	return c.GeminiBaseURL
}

func defaultModel(provider string) string {
	if provider == "openai" {
		return "gpt-4o-mini"
	}
	return "gemini-2.0-flash"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
