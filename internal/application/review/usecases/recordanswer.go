package usecases

import (
	"context"

	"github.com/masterly-ai/masterly/internal/application/review/questionstore"
	apperrors "github.com/masterly-ai/masterly/internal/shared/errors"
	"github.com/masterly-ai/masterly/internal/shared/logger"
	"github.com/masterly-ai/masterly/internal/shared/utils"
)

type RecordAnswerCommand struct {
	UserID         string `validate:"required"`
	QuestionID     string `validate:"required"`
	IsCorrect      bool
	ResponseTimeMs int64 `validate:"gte=0"`
	UpdateFSRS     bool
}

// RecordAnswerUseCase reports an answer given outside a server-side session,
// for clients that run the session themselves.
type RecordAnswerUseCase struct {
	store  questionstore.Store
	logger logger.Interface
}

func NewRecordAnswerUseCase(store questionstore.Store, logger logger.Interface) *RecordAnswerUseCase {
	return &RecordAnswerUseCase{store: store, logger: logger}
}

func (uc *RecordAnswerUseCase) Execute(ctx context.Context, cmd RecordAnswerCommand) error {
	if err := utils.ValidateStruct(cmd); err != nil {
		return err
	}

	err := uc.store.RecordAnswer(ctx, questionstore.AnswerRecord{
		UserID:         cmd.UserID,
		QuestionID:     cmd.QuestionID,
		IsCorrect:      cmd.IsCorrect,
		ResponseTimeMs: cmd.ResponseTimeMs,
		UpdateFSRS:     cmd.UpdateFSRS,
	})
	if err != nil {
		uc.logger.Errorw("failed to record answer",
			"user_id", cmd.UserID,
			"question_id", cmd.QuestionID,
			"error", err,
		)
		return apperrors.NewInternalError("failed to record answer")
	}
	return nil
}
