package app

import (
	"time"

	"adaptive-quiz-service/internal/domain"
)

// QuizSession is the full state of one player's quiz. It is a value: the
// transition functions return a new session instead of mutating the old one.
type QuizSession struct {
	ID                string                    `json:"id"`
	Topic             string                    `json:"topic"`
	Pool              domain.QuestionPool       `json:"pool"`
	CurrentTier       domain.Difficulty         `json:"currentTier"`
	TierCursor        map[domain.Difficulty]int `json:"tierCursor"`
	Score             int                       `json:"score"`
	QuestionsAnswered int                       `json:"questionsAnswered"`
	TotalQuestions    int                       `json:"totalQuestions"`
	PendingQuestion   domain.Question           `json:"pendingQuestion"`
	CreatedAt         time.Time                 `json:"createdAt"`
}

// NewQuizSession builds the initial state for a freshly generated pool: the
// first easy question is pending and counts as question number one.
func NewQuizSession(topic string, pool domain.QuestionPool, totalQuestions int, now time.Time) QuizSession {
	s := QuizSession{
		Topic:          topic,
		Pool:           pool,
		CurrentTier:    domain.DifficultyEasy,
		TierCursor:     make(map[domain.Difficulty]int, len(domain.Tiers)),
		TotalQuestions: totalQuestions,
		CreatedAt:      now,
	}
	for _, tier := range domain.Tiers {
		s.TierCursor[tier] = 0
	}
	if len(pool.Easy) > 0 {
		s.PendingQuestion = pool.Easy[0]
		s.TierCursor[domain.DifficultyEasy] = 1
		s.QuestionsAnswered = 1
	}
	return s
}

// Clone returns a copy that shares no mutable state with s. The pool is
// immutable after generation and is shared.
func (s QuizSession) Clone() QuizSession {
	cursor := make(map[domain.Difficulty]int, len(s.TierCursor))
	for tier, idx := range s.TierCursor {
		cursor[tier] = idx
	}
	s.TierCursor = cursor
	return s
}

// IsLastQuestion reports whether the pending question is the final one.
func (s QuizSession) IsLastQuestion() bool {
	return s.QuestionsAnswered >= s.TotalQuestions
}
