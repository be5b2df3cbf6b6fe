package usecases

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/masterly-ai/masterly/internal/application/review/dto"
	"github.com/masterly-ai/masterly/internal/application/review/questionstore"
	"github.com/masterly-ai/masterly/internal/domain/review"
	apperrors "github.com/masterly-ai/masterly/internal/shared/errors"
	"github.com/masterly-ai/masterly/internal/shared/logger"
)

// probeQuestionID stands in for the id the database assigns on save, so
// submitted questions can be validated before they are stored.
const probeQuestionID = "unsaved"

// Material errors are shown to the learner, so they go through the friendly
// message filter.
func materialError(err error, fallback string) error {
	return apperrors.NewInternalError(fallback, apperrors.FriendlyMessage(err))
}

type GetMaterialQuestionsUseCase struct {
	store  questionstore.Store
	logger logger.Interface
}

func NewGetMaterialQuestionsUseCase(store questionstore.Store, logger logger.Interface) *GetMaterialQuestionsUseCase {
	return &GetMaterialQuestionsUseCase{store: store, logger: logger}
}

func (uc *GetMaterialQuestionsUseCase) Execute(ctx context.Context, materialID, userID string) ([]*dto.QuestionDTO, error) {
	rows, err := uc.store.QuestionsForMaterial(ctx, materialID, userID)
	if err != nil {
		uc.logger.Errorw("failed to load material questions", "material_id", materialID, "error", err)
		return nil, materialError(err, "failed to load questions")
	}
	return dto.ToQuestionDTOList(decodeRows(rows, uc.logger)), nil
}

type SaveQuestionsCommand struct {
	MaterialID string
	UserID     string
	Questions  []questionstore.NewQuestion
}

// SaveQuestionsUseCase stores generated questions for a material. Every
// question must decode; a partial save would leave the material half
// populated.
type SaveQuestionsUseCase struct {
	store  questionstore.Store
	logger logger.Interface
}

func NewSaveQuestionsUseCase(store questionstore.Store, logger logger.Interface) *SaveQuestionsUseCase {
	return &SaveQuestionsUseCase{store: store, logger: logger}
}

func (uc *SaveQuestionsUseCase) Execute(ctx context.Context, cmd SaveQuestionsCommand) (*dto.SaveQuestionsDTO, error) {
	if len(cmd.Questions) == 0 {
		return nil, apperrors.NewValidationError("at least one question is required")
	}
	for i, q := range cmd.Questions {
		if !json.Valid(q.QuestionData) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("question %d is invalid", i), "question_data is not valid JSON")
		}
		if _, err := review.DecodeQuestion(probeQuestionID, cmd.MaterialID, review.QuestionType(q.QuestionType), q.QuestionData); err != nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("question %d is invalid", i), err.Error())
		}
	}

	saved, err := uc.store.SaveQuestions(ctx, cmd.MaterialID, cmd.UserID, cmd.Questions)
	if err != nil {
		uc.logger.Errorw("failed to save questions", "material_id", cmd.MaterialID, "error", err)
		return nil, materialError(err, "failed to save questions")
	}

	uc.logger.Infow("questions saved", "material_id", cmd.MaterialID, "user_id", cmd.UserID, "saved", saved)
	return &dto.SaveQuestionsDTO{MaterialID: cmd.MaterialID, Saved: saved}, nil
}

type DeleteMaterialUseCase struct {
	store  questionstore.Store
	logger logger.Interface
}

func NewDeleteMaterialUseCase(store questionstore.Store, logger logger.Interface) *DeleteMaterialUseCase {
	return &DeleteMaterialUseCase{store: store, logger: logger}
}

func (uc *DeleteMaterialUseCase) Execute(ctx context.Context, materialID, userID string) error {
	if err := uc.store.DeleteMaterial(ctx, materialID, userID); err != nil {
		uc.logger.Errorw("failed to delete material", "material_id", materialID, "error", err)
		return materialError(err, "failed to delete material")
	}
	uc.logger.Infow("material deleted", "material_id", materialID, "user_id", userID)
	return nil
}
