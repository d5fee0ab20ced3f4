package pool

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"adaptive-quiz-service/internal/domain"
	"adaptive-quiz-service/internal/llm"
)

// Config tunes the completion request.
type Config struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// DefaultConfig returns the settings used when none are configured.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4096,
		Temperature: 0.7,
		Timeout:     30 * time.Second,
	}
}

// Generator builds question pools from a completion provider.
type Generator struct {
	provider llm.Provider
	rnd      RandSource
	config   Config
}

// NewGenerator creates a Generator. A nil rnd uses a time-seeded source.
func NewGenerator(provider llm.Provider, rnd RandSource, cfg Config) *Generator {
	if rnd == nil {
		rnd = NewRandSource(0)
	}
	return &Generator{provider: provider, rnd: rnd, config: cfg}
}

// rawQuestion is one entry as the model writes it.
type rawQuestion struct {
	ID            looseID  `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
}

type rawPool struct {
	Easy   []rawQuestion `json:"easy"`
	Medium []rawQuestion `json:"medium"`
	Hard   []rawQuestion `json:"hard"`
}

func (p rawPool) tier(d domain.Difficulty) []rawQuestion {
	switch d {
	case domain.DifficultyMedium:
		return p.Medium
	case domain.DifficultyHard:
		return p.Hard
	}
	return p.Easy
}

// looseID accepts ids written as strings or numbers.
type looseID string

func (id *looseID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = looseID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = looseID(n.String())
	return nil
}

// Generate issues one completion request for the topic and returns a
// validated, shuffled pool. Every failure is a *domain.GenerationError.
func (g *Generator) Generate(ctx context.Context, topic string) (domain.QuestionPool, error) {
	if g.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.config.Timeout)
		defer cancel()
	}

	req := llm.UserPrompt(systemPrompt, buildUserPrompt(topic))
	req.JSON = true
	req.MaxTokens = g.config.MaxTokens
	req.Temperature = g.config.Temperature

	resp, err := g.provider.Complete(ctx, req)
	if err != nil {
		return domain.QuestionPool{}, &domain.GenerationError{Topic: topic, Err: err}
	}

	pool, err := g.Parse(resp.Text)
	if err != nil {
		return domain.QuestionPool{}, &domain.GenerationError{Topic: topic, Err: err}
	}
	return pool, nil
}

// Parse turns completion text into a pool: strip code fences, validate the
// shape, decode, repair ids, shuffle each tier.
func (g *Generator) Parse(text string) (domain.QuestionPool, error) {
	body := stripCodeFence(text)
	if body == "" {
		return domain.QuestionPool{}, errors.New("empty completion")
	}

	var doc any
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return domain.QuestionPool{}, fmt.Errorf("invalid JSON: %w", err)
	}
	schema, err := compiledSchema()
	if err != nil {
		return domain.QuestionPool{}, err
	}
	if err := schema.Validate(doc); err != nil {
		return domain.QuestionPool{}, fmt.Errorf("unexpected pool shape: %w", err)
	}

	var raw rawPool
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return domain.QuestionPool{}, fmt.Errorf("decode pool: %w", err)
	}

	seen := make(map[string]bool, domain.EasyCount+domain.MediumCount+domain.HardCount)
	tiers := make(map[domain.Difficulty][]domain.Question, len(domain.Tiers))
	for _, tier := range domain.Tiers {
		entries := raw.tier(tier)
		questions := make([]domain.Question, len(entries))
		for i, entry := range entries {
			id := strings.TrimSpace(string(entry.ID))
			if id == "" || seen[id] {
				id = g.freshID(tier, i, seen)
			}
			seen[id] = true

			questions[i] = domain.Question{
				ID:                 id,
				Text:               strings.TrimSpace(entry.Question),
				Options:            entry.Options,
				CorrectAnswerIndex: entry.CorrectAnswer,
				Explanation:        strings.TrimSpace(entry.Explanation),
				Difficulty:         tier,
			}
		}
		tiers[tier] = questions
	}

	for _, tier := range domain.Tiers {
		shuffle(g.rnd, tiers[tier])
	}

	return domain.QuestionPool{
		Easy:   tiers[domain.DifficultyEasy],
		Medium: tiers[domain.DifficultyMedium],
		Hard:   tiers[domain.DifficultyHard],
	}, nil
}

// freshID returns an id of the form tier-index-random not yet in seen.
func (g *Generator) freshID(tier domain.Difficulty, index int, seen map[string]bool) string {
	for {
		suffix := strconv.FormatInt(g.rnd.Int63(), 36)
		if len(suffix) > 6 {
			suffix = suffix[:6]
		}
		id := fmt.Sprintf("%s-%d-%s", tier, index, suffix)
		if !seen[id] {
			return id
		}
	}
}

// stripCodeFence removes a surrounding markdown code fence, if any.
func stripCodeFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.ContainsAny(s[:nl], "{[") {
		// Drop the info string, e.g. "json".
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
