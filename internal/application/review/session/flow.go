package session

import (
	"context"
	"time"

	"github.com/masterly-ai/masterly/internal/application/review/questionstore"
)

// Destination is where the learner goes once a session is complete.
type Destination string

const (
	DestinationDashboard Destination = "dashboard"
	DestinationMaterials Destination = "materials"
)

const (
	DefaultPlayAdvanceDelay     = 1200 * time.Millisecond
	DefaultPracticeAdvanceDelay = 400 * time.Millisecond
	DefaultBatchSize            = 20
)

// Flow describes one way of running a review session. The two flows differ
// in where questions come from and in whether answers move the schedule.
type Flow struct {
	Name         string
	UpdateFSRS   bool
	AdvanceDelay time.Duration
	Destination  Destination
	load         func(ctx context.Context, store questionstore.Store) ([]questionstore.QuestionRow, error)
}

// Load fetches the session's questions.
func (f Flow) Load(ctx context.Context, store questionstore.Store) ([]questionstore.QuestionRow, error) {
	return f.load(ctx, store)
}

// PlayFlow reviews the user's due questions. Answers update the schedule.
func PlayFlow(userID string, limit int, delay time.Duration) Flow {
	if limit <= 0 {
		limit = DefaultBatchSize
	}
	if delay <= 0 {
		delay = DefaultPlayAdvanceDelay
	}
	return Flow{
		Name:         "play",
		UpdateFSRS:   true,
		AdvanceDelay: delay,
		Destination:  DestinationDashboard,
		load: func(ctx context.Context, store questionstore.Store) ([]questionstore.QuestionRow, error) {
			return store.DueQuestionsForPlay(ctx, userID, limit)
		},
	}
}

// PracticeFlow quizzes the user on one material without touching the
// schedule.
func PracticeFlow(userID, materialID string, delay time.Duration) Flow {
	if delay <= 0 {
		delay = DefaultPracticeAdvanceDelay
	}
	return Flow{
		Name:         "practice",
		UpdateFSRS:   false,
		AdvanceDelay: delay,
		Destination:  DestinationMaterials,
		load: func(ctx context.Context, store questionstore.Store) ([]questionstore.QuestionRow, error) {
			return store.QuestionsForMaterial(ctx, materialID, userID)
		},
	}
}
