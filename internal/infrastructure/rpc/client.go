package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/masterly-ai/masterly/internal/application/review/questionstore"
	"github.com/masterly-ai/masterly/internal/shared/logger"
)

// Client implements questionstore.Store on top of the scheduler functions.
type Client struct {
	db     *gorm.DB
	logger logger.Interface
}

// Ensure Client implements Store
var _ questionstore.Store = (*Client)(nil)

func NewClient(db *gorm.DB, logger logger.Interface) *Client {
	return &Client{
		db:     db,
		logger: logger.Named("rpc"),
	}
}

func (c *Client) DueQuestionCount(ctx context.Context, userID string) (int, error) {
	var count int
	if err := c.scalar(ctx, DueQuestionCountRequest{UserID: userID}.Call(), &count); err != nil {
		return 0, err
	}
	return count, nil
}

func (c *Client) DueQuestionsForPlay(ctx context.Context, userID string, limit int) ([]questionstore.QuestionRow, error) {
	return c.questions(ctx, DueQuestionsRequest{UserID: userID, Limit: limit, ForPlay: true}.Call())
}

func (c *Client) DueQuestions(ctx context.Context, userID string, limit int) ([]questionstore.QuestionRow, error) {
	return c.questions(ctx, DueQuestionsRequest{UserID: userID, Limit: limit}.Call())
}

func (c *Client) QuestionsForMaterial(ctx context.Context, materialID, userID string) ([]questionstore.QuestionRow, error) {
	return c.questions(ctx, MaterialQuestionsRequest{MaterialID: materialID, UserID: userID}.Call())
}

func (c *Client) RecordAnswer(ctx context.Context, rec questionstore.AnswerRecord) error {
	return c.exec(ctx, RecordAnswerRequest{
		UserID:         rec.UserID,
		QuestionID:     rec.QuestionID,
		IsCorrect:      rec.IsCorrect,
		ResponseTimeMs: rec.ResponseTimeMs,
		UpdateFSRS:     rec.UpdateFSRS,
	}.Call())
}

func (c *Client) SaveQuestions(ctx context.Context, materialID, userID string, questions []questionstore.NewQuestion) (int, error) {
	payload, err := json.Marshal(questions)
	if err != nil {
		return 0, fmt.Errorf("failed to encode questions: %w", err)
	}

	var saved int
	call := SaveQuestionsRequest{
		MaterialID: materialID,
		UserID:     userID,
		Questions:  datatypes.JSON(payload),
	}.Call()
	if err := c.scalar(ctx, call, &saved); err != nil {
		return 0, err
	}
	return saved, nil
}

func (c *Client) DeleteMaterial(ctx context.Context, materialID, userID string) error {
	return c.exec(ctx, DeleteMaterialRequest{MaterialID: materialID, UserID: userID}.Call())
}

func (c *Client) UserStats(ctx context.Context, userID string) (*questionstore.UserStats, error) {
	call := UserStatsRequest{UserID: userID}.Call()
	query, args := call.SetSQL()

	var rows []userStatsResult
	if err := c.db.WithContext(ctx).Raw(query, args).Scan(&rows).Error; err != nil {
		c.logger.Errorw("rpc call failed", "function", call.Function, "error", err)
		return nil, fmt.Errorf("failed to call %s: %w", call.Function, err)
	}
	if len(rows) == 0 {
		return &questionstore.UserStats{}, nil
	}

	r := rows[0]
	return &questionstore.UserStats{
		TotalQuestions:  r.TotalQuestions,
		DueCount:        r.DueCount,
		ReviewedToday:   r.ReviewedToday,
		CorrectToday:    r.CorrectToday,
		StreakDays:      r.StreakDays,
		AccuracyPercent: r.AccuracyPercent,
	}, nil
}

func (c *Client) questions(ctx context.Context, call Call) ([]questionstore.QuestionRow, error) {
	query, args := call.SetSQL()

	var rows []questionRowResult
	if err := c.db.WithContext(ctx).Raw(query, args).Scan(&rows).Error; err != nil {
		c.logger.Errorw("rpc call failed", "function", call.Function, "error", err)
		return nil, fmt.Errorf("failed to call %s: %w", call.Function, err)
	}

	out := make([]questionstore.QuestionRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, questionstore.QuestionRow{
			IndividualQuestionID: r.IndividualQuestionID,
			MaterialID:           r.MaterialID,
			QuestionType:         r.QuestionType,
			QuestionData:         json.RawMessage(r.QuestionData),
		})
	}
	return out, nil
}

func (c *Client) scalar(ctx context.Context, call Call, dest any) error {
	query, args := call.ScalarSQL()
	if err := c.db.WithContext(ctx).Raw(query, args).Row().Scan(dest); err != nil {
		c.logger.Errorw("rpc call failed", "function", call.Function, "error", err)
		return fmt.Errorf("failed to call %s: %w", call.Function, err)
	}
	return nil
}

func (c *Client) exec(ctx context.Context, call Call) error {
	query, args := call.ScalarSQL()
	if err := c.db.WithContext(ctx).Exec(query, args).Error; err != nil {
		c.logger.Errorw("rpc call failed", "function", call.Function, "error", err)
		return fmt.Errorf("failed to call %s: %w", call.Function, err)
	}
	return nil
}
