package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"CLIENTS_PORT", "REPORTS_PORT", "GENERATOR_PROVIDER", "GENERATOR_MODEL",
		"COMPILE_TIMEOUT", "MAX_CONCURRENT_COMPILES", "GENERATE_ATTEMPTS", "BRACE_MODE", "UNWRAP_FENCES",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.ClientsPort != "5000" {
		t.Errorf("expected clients port 5000, got %q", cfg.ClientsPort)
	}
	if cfg.ReportsPort != "8090" {
		t.Errorf("expected reports port 8090, got %q", cfg.ReportsPort)
	}
	if cfg.GeneratorModel != "gemini-2.0-flash" {
		t.Errorf("expected gemini-2.0-flash, got %q", cfg.GeneratorModel)
	}
	if cfg.CompileTimeout != 2*time.Minute {
		t.Errorf("expected 2m compile timeout, got %s", cfg.CompileTimeout)
	}
	if cfg.BraceMode != "legacy" {
		t.Errorf("expected legacy brace mode, got %q", cfg.BraceMode)
	}
	if cfg.GenerateAttempts != 3 {
		t.Errorf("expected 3 generate attempts, got %d", cfg.GenerateAttempts)
	}
	if !cfg.UnwrapFences {
		t.Error("expected fence unwrapping on by default")
	}
}

func TestLoadClampsNonPositive(t *testing.T) {
	t.Setenv("MAX_CONCURRENT_COMPILES", "0")
	t.Setenv("COMPILE_TIMEOUT", "-5s")
	t.Setenv("MAX_BODY_BYTES", "-1")

	cfg := Load()
	if cfg.MaxConcurrentCompiles != 2 {
		t.Errorf("expected clamped 2, got %d", cfg.MaxConcurrentCompiles)
	}
	if cfg.CompileTimeout != 2*time.Minute {
		t.Errorf("expected clamped 2m, got %s", cfg.CompileTimeout)
	}
	if cfg.MaxBodyBytes != 1048576 {
		t.Errorf("expected clamped 1MB, got %d", cfg.MaxBodyBytes)
	}
}

func TestGeminiKeyFallsBackToGoogleKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "g-key")

	cfg := Load()
	if cfg.GeminiAPIKey != "g-key" {
		t.Fatalf("expected g-key, got %q", cfg.GeminiAPIKey)
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		CredentialsFile:   "/secrets/sa.json",
		GeneratorProvider: "gemini",
		GeminiAPIKey:      "k",
		BraceMode:         "legacy",
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing credentials", func(c *Config) { c.CredentialsFile = "" }, "GOOGLE_APPLICATION_CREDENTIALS is required"},
		{"missing gemini key", func(c *Config) { c.GeminiAPIKey = "" }, "GEMINI_API_KEY is required"},
		{"openai without key", func(c *Config) { c.GeneratorProvider = "openai" }, "OPENAI_API_KEY is required"},
		{"unknown provider", func(c *Config) { c.GeneratorProvider = "bard" }, `unknown GENERATOR_PROVIDER "bard"`},
		{"unknown brace mode", func(c *Config) { c.BraceMode = "exact" }, `unknown BRACE_MODE "exact"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Fatalf("expected %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateGeneratorSkipsCredentials(t *testing.T) {
	cfg := Config{GeneratorProvider: "gemini", GeminiAPIKey: "k", BraceMode: "depth"}
	if err := cfg.ValidateGenerator(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestGeneratorAPIKey(t *testing.T) {
	cfg := Config{GeneratorProvider: "gemini", GeminiAPIKey: "g", OpenAIAPIKey: "o"}
	if got := cfg.GeneratorAPIKey(); got != "g" {
		t.Errorf("expected gemini key, got %q", got)
	}
	cfg.GeneratorProvider = "openai"
	if got := cfg.GeneratorAPIKey(); got != "o" {
		t.Errorf("expected openai key, got %q", got)
	}
}

func TestGeneratorBaseURLFollowsProvider(t *testing.T) {
	t.Setenv("GENERATOR_PROVIDER", "gemini")
	t.Setenv("GEMINI_BASE_URL", "")
	t.Setenv("OPENAI_BASE_URL", "https://api.cerebras.ai/v1")

	cfg := Load()
	if got := cfg.GeneratorBaseURL(); got != "" {
		t.Fatalf("expected gemini to ignore OPENAI_BASE_URL, got %q", got)
	}

	t.Setenv("GEMINI_BASE_URL", "http://localhost:9999")
	cfg = Load()
	if got := cfg.GeneratorBaseURL(); got != "http://localhost:9999" {
		t.Fatalf("expected gemini base url, got %q", got)
	}

	t.Setenv("GENERATOR_PROVIDER", "openai")
	cfg = Load()
	if got := cfg.GeneratorBaseURL(); got != "https://api.cerebras.ai/v1" {
		t.Fatalf("expected openai base url, got %q", got)
	}
}

func TestReportTimeoutDefaultsToStageBudgets(t *testing.T) {
	t.Setenv("REPORT_TIMEOUT", "")
	t.Setenv("GENERATE_TIMEOUT", "10s")
	t.Setenv("COMPILE_TIMEOUT", "20s")

	cfg := Load()
	if cfg.ReportTimeout != 60*time.Second {
		t.Fatalf("expected 60s report timeout, got %s", cfg.ReportTimeout)
	}

	t.Setenv("REPORT_TIMEOUT", "5m")
	cfg = Load()
	if cfg.ReportTimeout != 5*time.Minute {
		t.Fatalf("expected 5m report timeout, got %s", cfg.ReportTimeout)
	}
}
