package cli

import (
	"context"
	"log"

	"adaptive-quiz-service/internal/config"
	"adaptive-quiz-service/internal/llm"
	"adaptive-quiz-service/internal/pool"
	"adaptive-quiz-service/internal/pool/pooltest"
)

// newPoolGenerator builds the configured provider and the generator on top
// of it. The mock provider answers every topic with a canned pool so the
// service runs without API keys.
func newPoolGenerator(ctx context.Context, cfg config.Config, logger *log.Logger) (*pool.Generator, error) {
	provider, err := llm.NewProvider(ctx, cfg.LLM, logger)
	if err != nil {
		return nil, err
	}
	if mock, ok := provider.(*llm.MockProvider); ok {
		mock.Always(llm.MockResponse{Text: pooltest.Response("offline demo")})
		provider = llm.WithLogging(mock, logger)
	}

	genCfg := pool.DefaultConfig()
	genCfg.Timeout = cfg.LLM.TimeoutDuration()
	if cfg.LLM.MaxTokens > 0 {
		genCfg.MaxTokens = cfg.LLM.MaxTokens
	}
	genCfg.Temperature = cfg.LLM.Temperature

	logger.Printf("question pools generated by %s", provider.ModelID())
	return pool.NewGenerator(provider, pool.NewRandSource(cfg.Quiz.Seed), genCfg), nil
}
