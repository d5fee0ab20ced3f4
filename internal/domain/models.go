package domain

import "time"

// Difficulty is the tier a question belongs to.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Tiers lists the difficulties in ascending order.
var Tiers = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Valid reports whether d is one of the known tiers.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Pool sizes per tier.
const (
	EasyCount   = 5
	MediumCount = 2
	HardCount   = 3
	OptionCount = 4
)

// DefaultQuizLength is the number of questions asked per session.
const DefaultQuizLength = 5

// TierSize returns how many questions a pool holds for the tier.
func TierSize(d Difficulty) int {
	switch d {
	case DifficultyEasy:
		return EasyCount
	case DifficultyMedium:
		return MediumCount
	case DifficultyHard:
		return HardCount
	}
	return 0
}

// Question is a generated multiple choice question. It carries the answer and
// must never be sent to a client before the answer is submitted.
type Question struct {
	ID                 string     `json:"id"`
	Text               string     `json:"question"`
	Options            []string   `json:"options"`
	CorrectAnswerIndex int        `json:"correctAnswerIndex"`
	Explanation        string     `json:"explanation"`
	Difficulty         Difficulty `json:"difficulty"`
}

// PublicQuestion is the client-safe view of a Question.
type PublicQuestion struct {
	ID         string     `json:"id"`
	Text       string     `json:"question"`
	Options    []string   `json:"options"`
	Difficulty Difficulty `json:"difficulty"`
}

// Sanitize strips the answer-revealing fields.
func (q Question) Sanitize() PublicQuestion {
	options := make([]string, len(q.Options))
	copy(options, q.Options)
	return PublicQuestion{
		ID:         q.ID,
		Text:       q.Text,
		Options:    options,
		Difficulty: q.Difficulty,
	}
}

// QuestionPool is the fixed set of questions backing one quiz session.
type QuestionPool struct {
	Easy   []Question `json:"easy"`
	Medium []Question `json:"medium"`
	Hard   []Question `json:"hard"`
}

// Tier returns the questions of one difficulty.
func (p QuestionPool) Tier(d Difficulty) []Question {
	switch d {
	case DifficultyEasy:
		return p.Easy
	case DifficultyMedium:
		return p.Medium
	case DifficultyHard:
		return p.Hard
	}
	return nil
}

// Size is the total number of questions across tiers.
func (p QuestionPool) Size() int {
	return len(p.Easy) + len(p.Medium) + len(p.Hard)
}

// AnswerResult is revealed to the client once an answer has been submitted.
type AnswerResult struct {
	IsCorrect          bool   `json:"isCorrect"`
	CorrectAnswerIndex int    `json:"correctAnswerIndex"`
	Explanation        string `json:"explanation"`
}

// StartResponse is returned when a quiz begins.
type StartResponse struct {
	SessionID      string         `json:"sessionId"`
	Question       PublicQuestion `json:"question"`
	QuestionNumber int            `json:"questionNumber"`
	TotalQuestions int            `json:"totalQuestions"`
}

// AnswerResponse is returned for every submitted answer. Question and
// QuestionNumber are set while the quiz continues, FinalScore once it is over.
type AnswerResponse struct {
	QuizOver       bool            `json:"quizOver"`
	Result         AnswerResult    `json:"result"`
	Question       *PublicQuestion `json:"question,omitempty"`
	QuestionNumber int             `json:"questionNumber,omitempty"`
	FinalScore     *int            `json:"finalScore,omitempty"`
	TotalQuestions int             `json:"totalQuestions"`
}

// QuizResult is the record of a finished quiz.
type QuizResult struct {
	SessionID      string    `json:"sessionId"`
	Topic          string    `json:"topic"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	CompletedAt    time.Time `json:"completedAt"`
}
