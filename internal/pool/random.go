package pool

import (
	"math/rand"
	"sync"
	"time"

	"adaptive-quiz-service/internal/domain"
)

// RandSource is the randomness used for shuffling and id suffixes.
// *rand.Rand satisfies it; tests pass a fixed seed to get exact orderings.
type RandSource interface {
	Intn(n int) int
	Int63() int64
}

// lockedRand makes a *rand.Rand safe for concurrent generators.
type lockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandSource returns a concurrency-safe source. A zero seed is replaced
// by the current time.
func NewRandSource(seed int64) RandSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedRand{rnd: rand.New(rand.NewSource(seed))}
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Intn(n)
}

func (r *lockedRand) Int63() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Int63()
}

// shuffle is an in-place Fisher–Yates permutation.
func shuffle(rnd RandSource, questions []domain.Question) {
	for i := len(questions) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		questions[i], questions[j] = questions[j], questions[i]
	}
}
