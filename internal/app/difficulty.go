package app

import "adaptive-quiz-service/internal/domain"

// NextTier is the difficulty targeted after an answer: a correct answer
// climbs one tier (capped at hard), a wrong one resets to easy.
func NextTier(current domain.Difficulty, correct bool) domain.Difficulty {
	if !correct {
		return domain.DifficultyEasy
	}
	switch current {
	case domain.DifficultyEasy:
		return domain.DifficultyMedium
	default:
		return domain.DifficultyHard
	}
}

// selectNext takes the next unused question of the target tier. An exhausted
// tier falls back to easy; an exhausted easy tier wraps to its first question
// when repeats are allowed.
func selectNext(s QuizSession, target domain.Difficulty, allowRepeats bool) (QuizSession, domain.Question, error) {
	next := s.Clone()

	if q, ok := take(&next, target); ok {
		return next, q, nil
	}
	if target != domain.DifficultyEasy {
		if q, ok := take(&next, domain.DifficultyEasy); ok {
			return next, q, nil
		}
	}

	if !allowRepeats || len(s.Pool.Easy) == 0 {
		return s, domain.Question{}, domain.ErrPoolExhausted
	}
	next.TierCursor[domain.DifficultyEasy] = 0
	q, _ := take(&next, domain.DifficultyEasy)
	return next, q, nil
}

func take(s *QuizSession, tier domain.Difficulty) (domain.Question, bool) {
	questions := s.Pool.Tier(tier)
	idx := s.TierCursor[tier]
	if idx >= len(questions) {
		return domain.Question{}, false
	}
	s.TierCursor[tier] = idx + 1
	s.CurrentTier = tier
	return questions[idx], true
}

// AnswerOutcome is what ApplyAnswer decided.
type AnswerOutcome struct {
	Result   domain.AnswerResult
	QuizOver bool

	// Next is the newly pending question while the quiz continues.
	Next *domain.Question
}

// ApplyAnswer scores an answer to the pending question and advances the
// session. On error the input session is returned unchanged.
func ApplyAnswer(s QuizSession, questionID string, answerIndex int, allowRepeats bool) (QuizSession, AnswerOutcome, error) {
	pending := s.PendingQuestion
	if questionID != pending.ID {
		return s, AnswerOutcome{}, domain.ErrQuestionMismatch
	}

	correct := answerIndex == pending.CorrectAnswerIndex
	outcome := AnswerOutcome{
		Result: domain.AnswerResult{
			IsCorrect:          correct,
			CorrectAnswerIndex: pending.CorrectAnswerIndex,
			Explanation:        pending.Explanation,
		},
	}

	if s.IsLastQuestion() {
		next := s.Clone()
		if correct {
			next.Score++
		}
		outcome.QuizOver = true
		return next, outcome, nil
	}

	next, question, err := selectNext(s, NextTier(s.CurrentTier, correct), allowRepeats)
	if err != nil {
		return s, AnswerOutcome{}, err
	}
	if correct {
		next.Score++
	}
	next.QuestionsAnswered++
	next.PendingQuestion = question
	outcome.Next = &question
	return next, outcome, nil
}
