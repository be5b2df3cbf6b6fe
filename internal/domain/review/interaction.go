package review

import (
	"errors"
	"sync"
)

var (
	ErrAlreadyAnswered = errors.New("question already answered")
	ErrNotRevealed     = errors.New("flashcard must be revealed before grading")
	ErrInvalidMove     = errors.New("invalid move")
)

// AnswerFunc receives the single verdict for a question.
type AnswerFunc func(isCorrect bool)

// verdict calls onAnswer at most once.
type verdict struct {
	once     sync.Once
	answered bool
	onAnswer AnswerFunc
}

func (v *verdict) deliver(isCorrect bool) {
	v.once.Do(func() {
		v.answered = true
		if v.onAnswer != nil {
			v.onAnswer(isCorrect)
		}
	})
}

// Choice drives mcq and true-false questions: the first choice decides.
type Choice struct {
	mu       sync.Mutex
	question Question
	selected int
	v        verdict
}

func NewChoice(q Question, onAnswer AnswerFunc) *Choice {
	return &Choice{question: q, selected: -1, v: verdict{onAnswer: onAnswer}}
}

// Choose selects option index. Only the first call counts.
func (c *Choice) Choose(option int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.v.answered {
		return false, ErrAlreadyAnswered
	}
	if option < 0 || option >= len(c.question.Options) {
		return false, ErrInvalidMove
	}

	c.selected = option
	correct := option == c.question.CorrectOption
	c.v.deliver(correct)
	return correct, nil
}

// Selected returns the chosen option, or -1.
func (c *Choice) Selected() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// Flashcard is self-graded after the back has been revealed.
type Flashcard struct {
	mu       sync.Mutex
	revealed bool
	v        verdict
}

func NewFlashcard(onAnswer AnswerFunc) *Flashcard {
	return &Flashcard{v: verdict{onAnswer: onAnswer}}
}

func (f *Flashcard) Reveal() {
	f.mu.Lock()
	f.revealed = true
	f.mu.Unlock()
}

// Grade records whether the learner knew the answer.
func (f *Flashcard) Grade(knewIt bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.v.answered {
		return ErrAlreadyAnswered
	}
	if !f.revealed {
		return ErrNotRevealed
	}
	f.v.deliver(knewIt)
	return nil
}
