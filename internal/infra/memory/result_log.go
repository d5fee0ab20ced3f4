package memory

import (
	"context"
	"sync"

	"adaptive-quiz-service/internal/domain"
)

// ResultLog keeps finished quiz results in memory, capped at capacity.
type ResultLog struct {
	mu       sync.RWMutex
	results  []domain.QuizResult
	capacity int
}

func NewResultLog(capacity int) *ResultLog {
	if capacity <= 0 {
		capacity = 1000
	}
	return &ResultLog{capacity: capacity}
}

func (l *ResultLog) Record(_ context.Context, result domain.QuizResult) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.results = append(l.results, result)
	if over := len(l.results) - l.capacity; over > 0 {
		l.results = append([]domain.QuizResult(nil), l.results[over:]...)
	}
	return nil
}

// Recent returns up to limit results, newest first.
func (l *ResultLog) Recent(_ context.Context, limit int) ([]domain.QuizResult, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if limit <= 0 || limit > len(l.results) {
		limit = len(l.results)
	}
	out := make([]domain.QuizResult, 0, limit)
	for i := len(l.results) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, l.results[i])
	}
	return out, nil
}
