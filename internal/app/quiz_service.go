package app

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log"
	"strings"
	"sync"
	"time"

	"adaptive-quiz-service/internal/domain"
)

// SessionRepository abstracts how quiz sessions are stored (in-memory, Redis, etc).
// Implementations hand out copies; callers re-fetch on every request.
type SessionRepository interface {
	Create(ctx context.Context, session QuizSession) (string, error)
	Get(ctx context.Context, id string) (QuizSession, error)
	Replace(ctx context.Context, id string, session QuizSession) error
	Delete(ctx context.Context, id string) error
}

// PoolGenerator produces the question pool for a new session.
type PoolGenerator interface {
	Generate(ctx context.Context, topic string) (domain.QuestionPool, error)
}

// ResultRecorder keeps the history of finished quizzes.
type ResultRecorder interface {
	Record(ctx context.Context, result domain.QuizResult) error
	Recent(ctx context.Context, limit int) ([]domain.QuizResult, error)
}

// Options tunes a QuizService. Zero values select the defaults.
type Options struct {
	TotalQuestions int
	AllowRepeats   bool
	Clock          func() time.Time
	Logger         *log.Logger
}

// DefaultOptions keeps the five-question quiz and allows the easy tier to
// wrap around once it runs out.
func DefaultOptions() Options {
	return Options{
		TotalQuestions: domain.DefaultQuizLength,
		AllowRepeats:   true,
	}
}

const (
	defaultResultsLimit = 20
	maxResultsLimit     = 100
	lockStripes         = 64
)

// QuizService contains the core quiz use cases.
type QuizService struct {
	sessions  SessionRepository
	generator PoolGenerator
	results   ResultRecorder
	opts      Options

	locks [lockStripes]sync.Mutex
}

func NewQuizService(store SessionRepository, generator PoolGenerator, results ResultRecorder, opts Options) *QuizService {
	if opts.TotalQuestions <= 0 {
		opts.TotalQuestions = domain.DefaultQuizLength
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &QuizService{
		sessions:  store,
		generator: generator,
		results:   results,
		opts:      opts,
	}
}

// TotalQuestions is the number of questions per quiz.
func (s *QuizService) TotalQuestions() int {
	return s.opts.TotalQuestions
}

// Start generates a pool for topic and opens a session on its first easy
// question. Nothing is stored when generation fails.
func (s *QuizService) Start(ctx context.Context, topic string) (domain.StartResponse, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return domain.StartResponse{}, domain.Invalid("topic is required")
	}

	pool, err := s.generator.Generate(ctx, topic)
	if err != nil {
		var genErr *domain.GenerationError
		if !errors.As(err, &genErr) {
			err = &domain.GenerationError{Topic: topic, Err: err}
		}
		return domain.StartResponse{}, err
	}
	if len(pool.Easy) == 0 {
		return domain.StartResponse{}, &domain.GenerationError{Topic: topic, Err: errors.New("pool has no easy questions")}
	}

	session := NewQuizSession(topic, pool, s.opts.TotalQuestions, s.opts.Clock())
	id, err := s.sessions.Create(ctx, session)
	if err != nil {
		return domain.StartResponse{}, fmt.Errorf("store session: %w", err)
	}

	return domain.StartResponse{
		SessionID:      id,
		Question:       session.PendingQuestion.Sanitize(),
		QuestionNumber: session.QuestionsAnswered,
		TotalQuestions: session.TotalQuestions,
	}, nil
}

// SubmitAnswer scores the answer to the pending question and either delivers
// the next question or finishes the quiz and removes the session.
func (s *QuizService) SubmitAnswer(ctx context.Context, sessionID, questionID string, answerIndex int) (domain.AnswerResponse, error) {
	switch {
	case sessionID == "":
		return domain.AnswerResponse{}, domain.Invalid("sessionId is required")
	case questionID == "":
		return domain.AnswerResponse{}, domain.Invalid("questionId is required")
	case answerIndex < 0 || answerIndex >= domain.OptionCount:
		return domain.AnswerResponse{}, domain.Invalid("answerIndex must be between 0 and %d", domain.OptionCount-1)
	}

	mu := s.lockFor(sessionID)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.AnswerResponse{}, err
	}

	next, outcome, err := ApplyAnswer(session, questionID, answerIndex, s.opts.AllowRepeats)
	if err != nil {
		return domain.AnswerResponse{}, err
	}

	if outcome.QuizOver {
		if err := s.sessions.Delete(ctx, sessionID); err != nil {
			return domain.AnswerResponse{}, fmt.Errorf("delete session: %w", err)
		}
		s.record(ctx, next)
		finalScore := next.Score
		return domain.AnswerResponse{
			QuizOver:       true,
			Result:         outcome.Result,
			FinalScore:     &finalScore,
			TotalQuestions: next.TotalQuestions,
		}, nil
	}

	if err := s.sessions.Replace(ctx, sessionID, next); err != nil {
		return domain.AnswerResponse{}, fmt.Errorf("store session: %w", err)
	}
	question := outcome.Next.Sanitize()
	return domain.AnswerResponse{
		QuizOver:       false,
		Result:         outcome.Result,
		Question:       &question,
		QuestionNumber: next.QuestionsAnswered,
		TotalQuestions: next.TotalQuestions,
	}, nil
}

// RecentResults lists finished quizzes, newest first.
func (s *QuizService) RecentResults(ctx context.Context, limit int) ([]domain.QuizResult, error) {
	if limit <= 0 {
		limit = defaultResultsLimit
	}
	if limit > maxResultsLimit {
		limit = maxResultsLimit
	}
	if s.results == nil {
		return []domain.QuizResult{}, nil
	}
	results, err := s.results.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	if results == nil {
		results = []domain.QuizResult{}
	}
	return results, nil
}

// record stores the finished quiz. Failures are logged, not returned.
func (s *QuizService) record(ctx context.Context, session QuizSession) {
	if s.results == nil {
		return
	}
	result := domain.QuizResult{
		SessionID:      session.ID,
		Topic:          session.Topic,
		Score:          session.Score,
		TotalQuestions: session.TotalQuestions,
		CompletedAt:    s.opts.Clock(),
	}
	if err := s.results.Record(ctx, result); err != nil {
		s.opts.Logger.Printf("record quiz result for session %s: %v", session.ID, err)
	}
}

// lockFor serializes submissions for the same session id within this process.
func (s *QuizService) lockFor(sessionID string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	return &s.locks[h.Sum32()%lockStripes]
}
