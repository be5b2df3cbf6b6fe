// Package session runs one question review session: load a batch, present
// each question, score the first answer, advance after a fixed delay.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/masterly-ai/masterly/internal/application/review/questionstore"
	"github.com/masterly-ai/masterly/internal/domain/review"
	apperrors "github.com/masterly-ai/masterly/internal/shared/errors"
	"github.com/masterly-ai/masterly/internal/shared/goroutine"
	"github.com/masterly-ai/masterly/internal/shared/id"
	"github.com/masterly-ai/masterly/internal/shared/logger"
)

// State is the session's position in its lifecycle.
type State string

const (
	StateLoading    State = "loading"
	StatePresenting State = "presenting"
	StateAnswered   State = "answered"
	StateComplete   State = "complete"
	StateEmpty      State = "empty"
	StateFailed     State = "failed"
)

var ErrNotPresenting = errors.New("no question is being presented")

// Snapshot is a copy of the session's observable state.
type Snapshot struct {
	ID           string
	State        State
	Index        int
	Total        int
	ShowFeedback bool
	IsCorrect    bool
	CorrectCount int
	Destination  Destination
	Error        string
}

// Timer schedules f after d. The returned function cancels it. f must not
// run before Timer returns.
type Timer func(d time.Duration, f func()) (stop func() bool)

func realTimer(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// Session is safe for concurrent use. Answers are accepted once per question;
// later answers for the same question are ignored.
type Session struct {
	mu sync.Mutex

	id     string
	userID string
	flow   Flow
	store  questionstore.Store
	logger logger.Interface
	clock  func() time.Time
	timer  Timer

	state         State
	questions     []review.Question
	index         int
	showFeedback  bool
	isCorrect     bool
	correctCount  int
	questionStart time.Time
	loadErr       string
	stopAdvance   func() bool

	listeners []func(Snapshot)
	done      chan struct{}
}

// Option customizes a Session.
type Option func(*Session)

// WithClock replaces the wall clock used for response times.
func WithClock(clock func() time.Time) Option {
	return func(s *Session) {
		s.clock = clock
	}
}

// WithTimer replaces the timer used to schedule automatic advances.
func WithTimer(t Timer) Option {
	return func(s *Session) {
		s.timer = t
	}
}

func New(userID string, flow Flow, store questionstore.Store, log logger.Interface, opts ...Option) *Session {
	s := &Session{
		id:     id.NewReviewSessionID(),
		userID: userID,
		flow:   flow,
		store:  store,
		clock:  time.Now,
		timer:  realTimer,
		state:  StateLoading,
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = log.With("session_id", s.id, "flow", flow.Name)
	return s
}

// OnChange registers fn to receive a snapshot after every transition. It is
// called without the session lock held.
func (s *Session) OnChange(fn func(Snapshot)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Done is closed when the session reaches a terminal state.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Start loads the question batch. Rows that cannot be decoded are skipped.
func (s *Session) Start(ctx context.Context) error {
	rows, err := s.flow.Load(ctx, s.store)
	if err != nil {
		s.logger.Errorw("failed to load review questions", "user_id", s.userID, "error", err)
		s.mu.Lock()
		s.state = StateFailed
		s.loadErr = apperrors.FriendlyMessage(err)
		s.finishLocked()
		snap := s.snapshotLocked()
		s.mu.Unlock()
		s.notify(snap)
		return err
	}

	questions := make([]review.Question, 0, len(rows))
	for _, row := range rows {
		q, err := row.Decode()
		if err != nil {
			s.logger.Warnw("skipping undecodable question", "question_id", row.IndividualQuestionID, "error", err)
			continue
		}
		questions = append(questions, q)
	}

	s.mu.Lock()
	s.questions = questions
	if len(questions) == 0 {
		s.state = StateEmpty
		s.finishLocked()
	} else {
		s.present(0)
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Infow("review session started", "user_id", s.userID, "questions", len(questions))
	s.notify(snap)
	return nil
}

// Current returns the question being presented or answered.
func (s *Session) Current() (review.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePresenting && s.state != StateAnswered {
		return review.Question{}, false
	}
	return s.questions[s.index], true
}

// Answer scores the current question. Only the first call per question is
// recorded; it returns false for any later call. The answer is reported to
// the scheduler and the session advances after the flow's delay, even when
// reporting fails.
func (s *Session) Answer(ctx context.Context, isCorrect bool) (bool, error) {
	s.mu.Lock()
	if s.state != StatePresenting {
		answered := s.state == StateAnswered
		s.mu.Unlock()
		if answered {
			return false, nil
		}
		return false, ErrNotPresenting
	}
	if s.showFeedback {
		s.mu.Unlock()
		return false, nil
	}

	q := s.questions[s.index]
	responseTime := s.clock().Sub(s.questionStart)
	s.state = StateAnswered
	s.showFeedback = true
	s.isCorrect = isCorrect
	if isCorrect {
		s.correctCount++
	}
	index := s.index
	s.stopAdvance = s.timer(s.flow.AdvanceDelay, func() { s.advance(index) })
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)

	rec := questionstore.AnswerRecord{
		UserID:         s.userID,
		QuestionID:     q.IndividualQuestionID,
		IsCorrect:      isCorrect,
		ResponseTimeMs: responseTime.Milliseconds(),
		UpdateFSRS:     s.flow.UpdateFSRS,
	}
	if err := s.store.RecordAnswer(ctx, rec); err != nil {
		s.logger.Errorw("failed to record answer",
			"question_id", q.IndividualQuestionID,
			"error", err,
		)
	}
	return true, nil
}

// AnswerFunc adapts the session to the per-question interaction objects.
func (s *Session) AnswerFunc(ctx context.Context) review.AnswerFunc {
	return func(isCorrect bool) {
		if _, err := s.Answer(ctx, isCorrect); err != nil {
			s.logger.Warnw("answer ignored", "error", err)
		}
	}
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Close stops a pending advance. The session stays in its current state.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopAdvance != nil {
		s.stopAdvance()
		s.stopAdvance = nil
	}
}

func (s *Session) advance(from int) {
	defer goroutine.Recover(s.logger, "review-session-advance")

	s.mu.Lock()
	if s.state != StateAnswered || s.index != from {
		s.mu.Unlock()
		return
	}
	s.stopAdvance = nil
	if s.index+1 >= len(s.questions) {
		s.state = StateComplete
		s.showFeedback = false
		s.finishLocked()
		s.logger.Infow("review session complete",
			"user_id", s.userID,
			"correct", s.correctCount,
			"total", len(s.questions),
		)
	} else {
		s.present(s.index + 1)
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
}

// present must be called with the lock held.
func (s *Session) present(index int) {
	s.index = index
	s.state = StatePresenting
	s.showFeedback = false
	s.isCorrect = false
	s.questionStart = s.clock()
}

func (s *Session) finishLocked() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		ID:           s.id,
		State:        s.state,
		Index:        s.index,
		Total:        len(s.questions),
		ShowFeedback: s.showFeedback,
		IsCorrect:    s.isCorrect,
		CorrectCount: s.correctCount,
		Error:        s.loadErr,
	}
	if s.state == StateComplete || s.state == StateEmpty {
		snap.Destination = s.flow.Destination
	}
	return snap
}

func (s *Session) notify(snap Snapshot) {
	s.mu.Lock()
	listeners := make([]func(Snapshot), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}
