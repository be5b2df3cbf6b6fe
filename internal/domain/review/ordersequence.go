package review

import (
	"math/rand/v2"
	"sync"
)

// OrderSequence tracks an order-sequence question. Submissions are
// permutations of indexes into Question.Sequence. A wrong submission can be
// retried; the verdict is "the first submission was already right", delivered
// once the right order has been submitted.
type OrderSequence struct {
	mu       sync.Mutex
	question Question
	attempts int
	v        verdict
}

func NewOrderSequence(q Question, onAnswer AnswerFunc) *OrderSequence {
	return &OrderSequence{question: q, v: verdict{onAnswer: onAnswer}}
}

// Submit checks order. Items with identical text are interchangeable.
func (o *OrderSequence) Submit(order []int) (bool, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.v.answered {
		return false, ErrAlreadyAnswered
	}
	if !isPermutation(order, len(o.question.Sequence)) {
		return false, ErrInvalidMove
	}

	o.attempts++
	for pos, idx := range order {
		if o.question.Sequence[idx] != o.question.Sequence[pos] {
			return false, nil
		}
	}

	o.v.deliver(o.attempts == 1)
	return true, nil
}

// Attempts returns the number of valid submissions so far.
func (o *OrderSequence) Attempts() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.attempts
}

func isPermutation(order []int, n int) bool {
	if len(order) != n {
		return false
	}
	seen := make([]bool, n)
	for _, idx := range order {
		if idx < 0 || idx >= n || seen[idx] {
			return false
		}
		seen[idx] = true
	}
	return true
}

// Shuffle returns a random permutation of 0..n-1 that differs from the
// identity whenever n > 1, so a sequence is never presented already solved.
func Shuffle(n int, rng *rand.Rand) []int {
	perm := rng.Perm(n)
	if n < 2 {
		return perm
	}
	for i, v := range perm {
		if v != i {
			return perm
		}
	}
	perm[0], perm[1] = perm[1], perm[0]
	return perm
}
