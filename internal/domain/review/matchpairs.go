package review

import "sync"

// MatchOutcome reports the effect of one match attempt.
type MatchOutcome struct {
	Correct  bool
	Complete bool
}

// MatchPairs tracks a match-pairs question. Wrong matches can be retried
// without penalty to the learner, but the question then no longer counts as
// correct: the verdict is "every pair matched without a single mistake".
type MatchPairs struct {
	mu          sync.Mutex
	question    Question
	matchedLeft map[int]bool
	usedRight   map[int]bool
	mistakes    int
	v           verdict
}

func NewMatchPairs(q Question, onAnswer AnswerFunc) *MatchPairs {
	return &MatchPairs{
		question:    q,
		matchedLeft: make(map[int]bool, len(q.Pairs)),
		usedRight:   make(map[int]bool, len(q.Pairs)),
		v:           verdict{onAnswer: onAnswer},
	}
}

// Match pairs the left text of Pairs[left] with the right text of
// Pairs[right]. Identical right texts are interchangeable.
func (m *MatchPairs) Match(left, right int) (MatchOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.v.answered {
		return MatchOutcome{}, ErrAlreadyAnswered
	}
	n := len(m.question.Pairs)
	if left < 0 || left >= n || right < 0 || right >= n || m.matchedLeft[left] || m.usedRight[right] {
		return MatchOutcome{}, ErrInvalidMove
	}

	if m.question.Pairs[left].Right != m.question.Pairs[right].Right {
		m.mistakes++
		return MatchOutcome{}, nil
	}

	m.matchedLeft[left] = true
	m.usedRight[right] = true

	complete := len(m.matchedLeft) == n
	if complete {
		m.v.deliver(m.mistakes == 0)
	}
	return MatchOutcome{Correct: true, Complete: complete}, nil
}

// Remaining returns how many pairs are still unmatched.
func (m *MatchPairs) Remaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.question.Pairs) - len(m.matchedLeft)
}

// Mistakes returns the number of wrong matches so far.
func (m *MatchPairs) Mistakes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mistakes
}
