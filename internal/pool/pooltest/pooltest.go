// Package pooltest provides canned completion output and deterministic
// randomness for tests and offline runs.
package pooltest

import (
	"encoding/json"
	"fmt"

	"adaptive-quiz-service/internal/domain"
)

// Entry mirrors one question as the model writes it.
type Entry struct {
	ID            string   `json:"id,omitempty"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
}

// Document is a full completion payload.
type Document struct {
	Easy   []Entry `json:"easy"`
	Medium []Entry `json:"medium"`
	Hard   []Entry `json:"hard"`
}

// NewDocument builds a valid payload for topic. Ids are e0..e4, m0..m1,
// h0..h2 and the correct answer of entry i is i%4.
func NewDocument(topic string) Document {
	build := func(prefix string, tier domain.Difficulty, n int) []Entry {
		entries := make([]Entry, n)
		for i := range entries {
			entries[i] = Entry{
				ID:       fmt.Sprintf("%s%d", prefix, i),
				Question: fmt.Sprintf("%s question %d about %s?", tier, i, topic),
				Options: []string{
					fmt.Sprintf("%s%d-a", prefix, i),
					fmt.Sprintf("%s%d-b", prefix, i),
					fmt.Sprintf("%s%d-c", prefix, i),
					fmt.Sprintf("%s%d-d", prefix, i),
				},
				CorrectAnswer: i % domain.OptionCount,
				Explanation:   fmt.Sprintf("Because %s%d.", prefix, i),
				Difficulty:    string(tier),
			}
		}
		return entries
	}
	return Document{
		Easy:   build("e", domain.DifficultyEasy, domain.EasyCount),
		Medium: build("m", domain.DifficultyMedium, domain.MediumCount),
		Hard:   build("h", domain.DifficultyHard, domain.HardCount),
	}
}

// JSON encodes the document.
func (d Document) JSON() string {
	data, err := json.Marshal(d)
	if err != nil {
		panic(err)
	}
	return string(data)
}

// Response is a valid payload for topic.
func Response(topic string) string {
	return NewDocument(topic).JSON()
}

// Identity is a RandSource under which Fisher–Yates leaves every tier in
// its original order.
type Identity struct {
	n int64
}

func (i *Identity) Intn(n int) int { return n - 1 }

func (i *Identity) Int63() int64 {
	i.n++
	return i.n
}
