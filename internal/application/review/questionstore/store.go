// Package questionstore declares the scheduler-backed question store. The
// spaced-repetition scheduling runs inside the database; this port only names
// the calls the application makes.
package questionstore

import (
	"context"
	"encoding/json"

	"github.com/masterly-ai/masterly/internal/domain/review"
)

// QuestionRow is one question as returned by the scheduler functions.
type QuestionRow struct {
	IndividualQuestionID string
	MaterialID           string
	QuestionType         string
	QuestionData         json.RawMessage
}

// Decode parses the row's question_data for its question type.
func (r QuestionRow) Decode() (review.Question, error) {
	return review.DecodeQuestion(r.IndividualQuestionID, r.MaterialID, review.QuestionType(r.QuestionType), r.QuestionData)
}

// AnswerRecord reports one answered question. UpdateFSRS decides whether the
// answer moves the question's review schedule.
type AnswerRecord struct {
	UserID         string
	QuestionID     string
	IsCorrect      bool
	ResponseTimeMs int64
	UpdateFSRS     bool
}

// NewQuestion is one generated question to be saved for a material.
type NewQuestion struct {
	QuestionType string          `json:"question_type"`
	QuestionData json.RawMessage `json:"question_data"`
}

// UserStats is the learner's progress summary.
type UserStats struct {
	TotalQuestions  int     `json:"total_questions"`
	DueCount        int     `json:"due_count"`
	ReviewedToday   int     `json:"reviewed_today"`
	CorrectToday    int     `json:"correct_today"`
	StreakDays      int     `json:"streak_days"`
	AccuracyPercent float64 `json:"accuracy_percent"`
}

// Store is the question scheduler.
type Store interface {
	DueQuestionCount(ctx context.Context, userID string) (int, error)
	DueQuestionsForPlay(ctx context.Context, userID string, limit int) ([]QuestionRow, error)
	DueQuestions(ctx context.Context, userID string, limit int) ([]QuestionRow, error)
	QuestionsForMaterial(ctx context.Context, materialID, userID string) ([]QuestionRow, error)
	RecordAnswer(ctx context.Context, rec AnswerRecord) error
	SaveQuestions(ctx context.Context, materialID, userID string, questions []NewQuestion) (int, error)
	DeleteMaterial(ctx context.Context, materialID, userID string) error
	UserStats(ctx context.Context, userID string) (*UserStats, error)
}
