package review

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/masterly-ai/masterly/internal/application/review/session"
	"github.com/masterly-ai/masterly/internal/domain/review"
)

// runner drives a session from a terminal.
type runner struct {
	in      input
	out     io.Writer
	shuffle func(n int) []int
}

func newRunner(in input, out io.Writer) *runner {
	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	return &runner{
		in:  in,
		out: out,
		shuffle: func(n int) []int {
			return review.Shuffle(n, rng)
		},
	}
}

// Run starts s and presents every question until the session is over.
func (r *runner) Run(ctx context.Context, s *session.Session) error {
	changed := make(chan struct{}, 1)
	s.OnChange(func(session.Snapshot) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer s.Close()

	if err := s.Start(ctx); err != nil {
		r.printf("Could not load questions: %s\n", s.Snapshot().Error)
		return err
	}

	for {
		snap := s.Snapshot()
		switch snap.State {
		case session.StateEmpty:
			r.printf("Nothing to review right now.\n")
			r.printf("Next: %s\n", snap.Destination)
			return nil
		case session.StateFailed:
			r.printf("Review failed: %s\n", snap.Error)
			return errors.New(snap.Error)
		case session.StateComplete:
			r.printf("\nSession complete: %d/%d correct.\n", snap.CorrectCount, snap.Total)
			r.printf("Next: %s\n", snap.Destination)
			return nil
		case session.StatePresenting:
			q, ok := s.Current()
			if !ok {
				continue
			}
			r.printf("\n[%d/%d] ", snap.Index+1, snap.Total)
			var correct bool
			answer := s.AnswerFunc(ctx)
			if err := r.ask(q, func(isCorrect bool) {
				correct = isCorrect
				answer(isCorrect)
			}); err != nil {
				return err
			}
			r.feedback(q, correct)
		}

		if err := waitAdvance(ctx, s, changed); err != nil {
			return err
		}
	}
}

// waitAdvance blocks while the current question is still showing feedback.
func waitAdvance(ctx context.Context, s *session.Session, changed <-chan struct{}) error {
	for s.Snapshot().State == session.StateAnswered {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.Done():
		case <-changed:
		}
	}
	return nil
}

func (r *runner) ask(q review.Question, answer review.AnswerFunc) error {
	switch q.Type {
	case review.TypeMCQ, review.TypeTrueFalse:
		return r.askChoice(q, answer)
	case review.TypeFlashcard:
		return r.askFlashcard(q, answer)
	case review.TypeMatchPairs:
		return r.askMatchPairs(q, answer)
	case review.TypeOrderSequence:
		return r.askOrderSequence(q, answer)
	default:
		return fmt.Errorf("unsupported question type %q", q.Type)
	}
}

func (r *runner) askChoice(q review.Question, answer review.AnswerFunc) error {
	r.printf("%s\n", q.Prompt)
	for i, opt := range q.Options {
		r.printf("  %d) %s\n", i+1, opt)
	}
	choice := review.NewChoice(q, answer)
	for {
		r.printf("> ")
		key, err := r.in.ReadKey()
		if err != nil {
			return err
		}
		r.printf("%c\n", key)
		idx, ok := optionIndex(key)
		if !ok {
			r.printf("Pick a number between 1 and %d.\n", len(q.Options))
			continue
		}
		if _, err := choice.Choose(idx); err != nil {
			if errors.Is(err, review.ErrInvalidMove) {
				r.printf("Pick a number between 1 and %d.\n", len(q.Options))
				continue
			}
			return err
		}
		return nil
	}
}

func (r *runner) askFlashcard(q review.Question, answer review.AnswerFunc) error {
	r.printf("%s\n", q.Front)
	r.printf("(press any key to reveal)\n")
	if _, err := r.in.ReadKey(); err != nil {
		return err
	}
	card := review.NewFlashcard(answer)
	card.Reveal()
	r.printf("%s\n", q.Back)
	for {
		r.printf("Did you know it? [y/n] ")
		key, err := r.in.ReadKey()
		if err != nil {
			return err
		}
		r.printf("%c\n", key)
		switch key {
		case 'y':
			return card.Grade(true)
		case 'n':
			return card.Grade(false)
		}
	}
}

func (r *runner) askMatchPairs(q review.Question, answer review.AnswerFunc) error {
	perm := r.shuffle(len(q.Pairs))
	r.printf("%s\n", q.Prompt)
	for i, p := range q.Pairs {
		r.printf("  %d) %-30s %c) %s\n", i+1, p.Left, 'a'+i, q.Pairs[perm[i]].Right)
	}
	match := review.NewMatchPairs(q, answer)
	for {
		r.printf("Match (e.g. 1a): ")
		line, err := r.in.ReadLine()
		if err != nil {
			return err
		}
		left, right, ok := parseMatch(line, len(q.Pairs))
		if !ok {
			r.printf("Enter a number followed by a letter.\n")
			continue
		}
		outcome, err := match.Match(left, perm[right])
		if err != nil {
			if errors.Is(err, review.ErrInvalidMove) {
				r.printf("That pair is not available.\n")
				continue
			}
			return err
		}
		if !outcome.Correct {
			r.printf("Not a match.\n")
			continue
		}
		if outcome.Complete {
			return nil
		}
		r.printf("Matched. %d left.\n", match.Remaining())
	}
}

func (r *runner) askOrderSequence(q review.Question, answer review.AnswerFunc) error {
	perm := r.shuffle(len(q.Sequence))
	r.printf("%s\n", q.Prompt)
	for i, idx := range perm {
		r.printf("  %d) %s\n", i+1, q.Sequence[idx])
	}
	seq := review.NewOrderSequence(q, answer)
	for {
		r.printf("Order (e.g. 2 1 3): ")
		line, err := r.in.ReadLine()
		if err != nil {
			return err
		}
		order, ok := parseOrder(line, perm)
		if !ok {
			r.printf("List every item number once.\n")
			continue
		}
		correct, err := seq.Submit(order)
		if err != nil {
			if errors.Is(err, review.ErrInvalidMove) {
				r.printf("List every item number once.\n")
				continue
			}
			return err
		}
		if correct {
			return nil
		}
		r.printf("Not quite, try again.\n")
	}
}

func (r *runner) feedback(q review.Question, correct bool) {
	if correct {
		r.printf("Correct!\n")
	} else {
		r.printf("Incorrect.")
		if q.Type == review.TypeMCQ || q.Type == review.TypeTrueFalse {
			r.printf(" Answer: %s", q.Options[q.CorrectOption])
		}
		r.printf("\n")
	}
	if q.Explanation != "" {
		r.printf("%s\n", q.Explanation)
	}
}

func (r *runner) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// optionIndex maps keys '1'..'9' to option indexes.
func optionIndex(key rune) (int, bool) {
	if key < '1' || key > '9' {
		return 0, false
	}
	return int(key - '1'), true
}

// parseMatch reads "1a" or "1 a" into a left index and a displayed right
// column.
func parseMatch(line string, n int) (left, right int, ok bool) {
	line = strings.ToLower(strings.ReplaceAll(line, " ", ""))
	if len(line) < 2 {
		return 0, 0, false
	}
	letter := rune(line[len(line)-1])
	num, err := strconv.Atoi(line[:len(line)-1])
	if err != nil || num < 1 || num > n || letter < 'a' || int(letter-'a') >= n {
		return 0, 0, false
	}
	return num - 1, int(letter - 'a'), true
}

// parseOrder reads displayed item numbers and maps them back to indexes into
// the question's sequence through perm.
func parseOrder(line string, perm []int) ([]int, bool) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == ','
	})
	if len(fields) != len(perm) {
		return nil, false
	}
	order := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 1 || n > len(perm) {
			return nil, false
		}
		order = append(order, perm[n-1])
	}
	return order, true
}
