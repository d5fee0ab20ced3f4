package config

import (
	"fmt"
	"os"
	"time"

	"adaptive-quiz-service/internal/domain"
	"adaptive-quiz-service/internal/llm"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	LLM  llm.Config `yaml:"llm"`
	Quiz struct {
		TotalQuestions int   `yaml:"total_questions"`
		AllowRepeats   bool  `yaml:"allow_repeats"`
		Seed           int64 `yaml:"seed"`
	} `yaml:"quiz"`
}

// Default returns the configuration used when a key is absent from the file.
func Default() Config {
	cfg := Config{LLM: llm.DefaultConfig()}
	cfg.Server.Port = "8080"
	cfg.Quiz.TotalQuestions = domain.DefaultQuizLength
	cfg.Quiz.AllowRepeats = true
	return cfg
}

// Load reads YAML config from path on top of the defaults, then applies
// LLM environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.LLM.ApplyEnv()
	if cfg.Quiz.TotalQuestions <= 0 {
		return cfg, fmt.Errorf("quiz.total_questions must be positive, got %d", cfg.Quiz.TotalQuestions)
	}
	return cfg, nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
