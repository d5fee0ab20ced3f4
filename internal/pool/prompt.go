package pool

import "fmt"

const systemPrompt = `You write multiple choice trivia questions for an educational quiz.
Respond with a single JSON object and nothing else.`

const userPromptTemplate = `Create trivia questions about the topic: %q.

Return a JSON object with exactly these keys:
  "easy":   an array of exactly 5 questions
  "medium": an array of exactly 2 questions
  "hard":   an array of exactly 3 questions

Every question is an object:
  {
    "id": "a short unique identifier",
    "question": "the question text",
    "options": ["option A", "option B", "option C", "option D"],
    "correctAnswer": 0,
    "explanation": "why the correct option is right",
    "difficulty": "easy" | "medium" | "hard"
  }

"options" always has exactly 4 entries and "correctAnswer" is the zero-based
index of the correct option.`

func buildUserPrompt(topic string) string {
	return fmt.Sprintf(userPromptTemplate, topic)
}
