package pool_test

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"adaptive-quiz-service/internal/domain"
	"adaptive-quiz-service/internal/llm"
	"adaptive-quiz-service/internal/pool"
	"adaptive-quiz-service/internal/pool/pooltest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGenerator(responses ...llm.MockResponse) (*pool.Generator, *llm.MockProvider) {
	provider := llm.NewMockProvider(responses...)
	return pool.NewGenerator(provider, &pooltest.Identity{}, pool.DefaultConfig()), provider
}

func TestGenerate_ValidPool(t *testing.T) {
	gen, provider := newGenerator(llm.MockResponse{Text: pooltest.Response("Part III")})

	p, err := gen.Generate(context.Background(), "Part III")
	require.NoError(t, err)

	assert.Len(t, p.Easy, domain.EasyCount)
	assert.Len(t, p.Medium, domain.MediumCount)
	assert.Len(t, p.Hard, domain.HardCount)

	ids := map[string]bool{}
	for _, tier := range domain.Tiers {
		for _, q := range p.Tier(tier) {
			assert.False(t, ids[q.ID], "duplicate id %s", q.ID)
			ids[q.ID] = true
			assert.Equal(t, tier, q.Difficulty)
			assert.Len(t, q.Options, domain.OptionCount)
		}
	}
	assert.Equal(t, []string{"e0", "e1", "e2", "e3", "e4"}, tierIDs(p.Easy))

	require.Equal(t, 1, provider.CallCount())
	call := provider.Calls[0]
	assert.True(t, call.JSON)
	require.Len(t, call.Messages, 1)
	assert.Contains(t, call.Messages[0].Content, `"Part III"`)
}

func TestGenerate_StripsCodeFence(t *testing.T) {
	body := pooltest.Response("Part III")
	for name, text := range map[string]string{
		"json fence": "```json\n" + body + "\n```",
		"bare fence": "```\n" + body + "\n```",
		"inline":     "```json" + body + "```",
		"padded":     "\n\n  " + body + "  \n",
	} {
		t.Run(name, func(t *testing.T) {
			gen, _ := newGenerator(llm.MockResponse{Text: text})
			p, err := gen.Generate(context.Background(), "Part III")
			require.NoError(t, err)
			assert.Equal(t, 10, p.Size())
		})
	}
}

func TestGenerate_RejectsBadShapes(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *pooltest.Document)
		text   string
	}{
		{name: "malformed json", text: `{"easy": [`},
		{name: "empty", text: "   "},
		{name: "missing hard", text: `{"easy": [], "medium": []}`},
		{name: "four easy", mutate: func(d *pooltest.Document) { d.Easy = d.Easy[:4] }},
		{name: "three medium", mutate: func(d *pooltest.Document) { d.Medium = append(d.Medium, d.Medium[0]) }},
		{name: "three options", mutate: func(d *pooltest.Document) { d.Hard[1].Options = d.Hard[1].Options[:3] }},
		{name: "answer out of range", mutate: func(d *pooltest.Document) { d.Easy[2].CorrectAnswer = 4 }},
		{name: "negative answer", mutate: func(d *pooltest.Document) { d.Medium[0].CorrectAnswer = -1 }},
		{name: "blank question", mutate: func(d *pooltest.Document) { d.Easy[0].Question = "" }},
		{name: "array instead of object", text: `[1, 2, 3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := tt.text
			if tt.mutate != nil {
				doc := pooltest.NewDocument("Part III")
				tt.mutate(&doc)
				text = doc.JSON()
			}
			gen, _ := newGenerator(llm.MockResponse{Text: text})

			_, err := gen.Generate(context.Background(), "Part III")
			var genErr *domain.GenerationError
			require.ErrorAs(t, err, &genErr)
			assert.Equal(t, "Part III", genErr.Topic)
		})
	}
}

func TestGenerate_ProviderFailure(t *testing.T) {
	gen, _ := newGenerator(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("dial tcp: refused")}})

	_, err := gen.Generate(context.Background(), "Part III")
	var genErr *domain.GenerationError
	require.ErrorAs(t, err, &genErr)
	var unavail *llm.ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)
}

func TestGenerate_ReassignsMissingAndDuplicateIDs(t *testing.T) {
	doc := pooltest.NewDocument("Part III")
	doc.Easy[1].ID = ""
	doc.Easy[3].ID = "e0"
	doc.Hard[2].ID = "m1"
	gen, _ := newGenerator(llm.MockResponse{Text: doc.JSON()})

	p, err := gen.Generate(context.Background(), "Part III")
	require.NoError(t, err)

	assert.Equal(t, "e0", p.Easy[0].ID)
	assert.True(t, strings.HasPrefix(p.Easy[1].ID, "easy-1-"), p.Easy[1].ID)
	assert.True(t, strings.HasPrefix(p.Easy[3].ID, "easy-3-"), p.Easy[3].ID)
	assert.Equal(t, "m1", p.Medium[1].ID)
	assert.True(t, strings.HasPrefix(p.Hard[2].ID, "hard-2-"), p.Hard[2].ID)

	ids := map[string]bool{}
	for _, tier := range domain.Tiers {
		for _, q := range p.Tier(tier) {
			require.False(t, ids[q.ID], "duplicate id %s", q.ID)
			ids[q.ID] = true
		}
	}
}

func TestGenerate_NumericIDs(t *testing.T) {
	text := strings.Replace(pooltest.Response("Part III"), `"id":"e0"`, `"id":7`, 1)
	gen, _ := newGenerator(llm.MockResponse{Text: text})

	p, err := gen.Generate(context.Background(), "Part III")
	require.NoError(t, err)
	assert.Equal(t, "7", p.Easy[0].ID)
}

func TestGenerate_DifficultyFollowsTierKey(t *testing.T) {
	doc := pooltest.NewDocument("Part III")
	doc.Hard[0].Difficulty = "easy"
	gen, _ := newGenerator(llm.MockResponse{Text: doc.JSON()})

	p, err := gen.Generate(context.Background(), "Part III")
	require.NoError(t, err)
	assert.Equal(t, domain.DifficultyHard, p.Hard[0].Difficulty)
}

func TestGenerate_SeededShuffleIsReproducible(t *testing.T) {
	text := pooltest.Response("Part III")
	run := func() domain.QuestionPool {
		provider := llm.NewMockProvider(llm.MockResponse{Text: text})
		gen := pool.NewGenerator(provider, rand.New(rand.NewSource(42)), pool.DefaultConfig())
		p, err := gen.Generate(context.Background(), "Part III")
		require.NoError(t, err)
		return p
	}

	first, second := run(), run()
	assert.Equal(t, tierIDs(first.Easy), tierIDs(second.Easy))
	assert.Equal(t, tierIDs(first.Hard), tierIDs(second.Hard))
	assert.ElementsMatch(t, []string{"e0", "e1", "e2", "e3", "e4"}, tierIDs(first.Easy))
	assert.ElementsMatch(t, []string{"h0", "h1", "h2"}, tierIDs(first.Hard))
}

func TestGenerate_ShuffleKeepsAnswersAttached(t *testing.T) {
	provider := llm.NewMockProvider(llm.MockResponse{Text: pooltest.Response("Part III")})
	gen := pool.NewGenerator(provider, rand.New(rand.NewSource(7)), pool.DefaultConfig())

	p, err := gen.Generate(context.Background(), "Part III")
	require.NoError(t, err)
	for _, q := range p.Easy {
		// Option text encodes the owning id, so a shuffle must move them together.
		assert.Equal(t, q.ID+"-a", q.Options[0])
	}
}

func tierIDs(questions []domain.Question) []string {
	ids := make([]string, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	return ids
}
