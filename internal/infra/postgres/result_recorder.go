package postgres

import (
	"context"
	"fmt"

	"adaptive-quiz-service/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ResultRecorder stores finished quizzes in the quiz_results table.
type ResultRecorder struct {
	pool *pgxpool.Pool
}

func NewResultRecorder(pool *pgxpool.Pool) *ResultRecorder {
	return &ResultRecorder{pool: pool}
}

func (r *ResultRecorder) Record(ctx context.Context, result domain.QuizResult) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO quiz_results (session_id, topic, score, total_questions, completed_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (session_id) DO NOTHING`,
		result.SessionID, result.Topic, result.Score, result.TotalQuestions, result.CompletedAt)
	if err != nil {
		return fmt.Errorf("insert quiz result: %w", err)
	}
	return nil
}

// Recent returns up to limit results, newest first.
func (r *ResultRecorder) Recent(ctx context.Context, limit int) ([]domain.QuizResult, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT session_id, topic, score, total_questions, completed_at
		 FROM quiz_results ORDER BY completed_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query quiz results: %w", err)
	}
	defer rows.Close()

	results := make([]domain.QuizResult, 0, limit)
	for rows.Next() {
		var res domain.QuizResult
		if err := rows.Scan(&res.SessionID, &res.Topic, &res.Score, &res.TotalQuestions, &res.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan quiz result: %w", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read quiz results: %w", err)
	}
	return results, nil
}
