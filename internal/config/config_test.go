package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("QUIZ_LLM_PROVIDER", "")
	t.Setenv("OPENAI_API_KEY", "sk-env")

	cfg, err := Load(writeConfig(t, "redis:\n  addr: localhost:6379\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("expected default port, got %q", cfg.Server.Port)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("expected redis addr from file, got %q", cfg.Redis.Addr)
	}
	if cfg.Quiz.TotalQuestions != 5 || !cfg.Quiz.AllowRepeats {
		t.Fatalf("unexpected quiz defaults: %+v", cfg.Quiz)
	}
	if cfg.LLM.Provider != "openai" || cfg.LLM.APIKey != "sk-env" {
		t.Fatalf("unexpected llm config: %+v", cfg.LLM)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("QUIZ_LLM_PROVIDER", "mock")

	body := `
server:
  port: "9090"
llm:
  provider: anthropic
  model: claude-haiku
  max_tokens: 2048
quiz:
  total_questions: 8
  allow_repeats: false
  seed: 42
`
	cfg, err := Load(writeConfig(t, body))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Fatalf("expected port 9090, got %q", cfg.Server.Port)
	}
	if cfg.LLM.Provider != "mock" {
		t.Fatalf("expected env provider override, got %q", cfg.LLM.Provider)
	}
	if cfg.LLM.Model != "claude-haiku" || cfg.LLM.MaxTokens != 2048 || cfg.LLM.Timeout != "30s" {
		t.Fatalf("unexpected llm config: %+v", cfg.LLM)
	}
	if cfg.Quiz.TotalQuestions != 8 || cfg.Quiz.AllowRepeats || cfg.Quiz.Seed != 42 {
		t.Fatalf("unexpected quiz config: %+v", cfg.Quiz)
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := Load(writeConfig(t, "server: [")); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := Load(writeConfig(t, "quiz:\n  total_questions: 0\n")); err == nil {
		t.Fatalf("expected error for zero quiz length")
	}
}

func TestTTLDuration(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Duration
	}{
		{"", time.Minute},
		{"5s", 5 * time.Second},
		{"nonsense", time.Minute},
	}
	for _, tc := range cases {
		if got := TTLDuration(tc.raw, time.Minute); got != tc.want {
			t.Fatalf("TTLDuration(%q) = %s, want %s", tc.raw, got, tc.want)
		}
	}
}
