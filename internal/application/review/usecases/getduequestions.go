package usecases

import (
	"context"

	"github.com/masterly-ai/masterly/internal/application/review/dto"
	"github.com/masterly-ai/masterly/internal/application/review/questionstore"
	apperrors "github.com/masterly-ai/masterly/internal/shared/errors"
	"github.com/masterly-ai/masterly/internal/shared/logger"
)

const maxDueLimit = 100

// DueMode selects which scheduler call serves the due list.
type DueMode string

const (
	// DueModePlay returns the batch used by the review game.
	DueModePlay DueMode = "play"
	// DueModeAll returns every due question up to the limit.
	DueModeAll DueMode = "all"
)

type GetDueCountQuery struct {
	UserID string
}

type GetDueCountUseCase struct {
	store  questionstore.Store
	logger logger.Interface
}

func NewGetDueCountUseCase(store questionstore.Store, logger logger.Interface) *GetDueCountUseCase {
	return &GetDueCountUseCase{store: store, logger: logger}
}

func (uc *GetDueCountUseCase) Execute(ctx context.Context, query GetDueCountQuery) (*dto.DueCountDTO, error) {
	count, err := uc.store.DueQuestionCount(ctx, query.UserID)
	if err != nil {
		uc.logger.Errorw("failed to count due questions", "user_id", query.UserID, "error", err)
		return nil, apperrors.NewInternalError("failed to count due questions")
	}
	return &dto.DueCountDTO{Count: count}, nil
}

type GetDueQuestionsQuery struct {
	UserID string
	Mode   DueMode
	Limit  int
}

type GetDueQuestionsUseCase struct {
	store        questionstore.Store
	defaultLimit int
	logger       logger.Interface
}

func NewGetDueQuestionsUseCase(store questionstore.Store, defaultLimit int, logger logger.Interface) *GetDueQuestionsUseCase {
	if defaultLimit <= 0 {
		defaultLimit = 20
	}
	return &GetDueQuestionsUseCase{store: store, defaultLimit: defaultLimit, logger: logger}
}

func (uc *GetDueQuestionsUseCase) Execute(ctx context.Context, query GetDueQuestionsQuery) ([]*dto.QuestionDTO, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = uc.defaultLimit
	}
	if limit > maxDueLimit {
		limit = maxDueLimit
	}

	var (
		rows []questionstore.QuestionRow
		err  error
	)
	switch query.Mode {
	case DueModePlay, "":
		rows, err = uc.store.DueQuestionsForPlay(ctx, query.UserID, limit)
	case DueModeAll:
		rows, err = uc.store.DueQuestions(ctx, query.UserID, limit)
	default:
		return nil, apperrors.NewValidationError("invalid mode", "mode must be play or all")
	}
	if err != nil {
		uc.logger.Errorw("failed to load due questions", "user_id", query.UserID, "mode", query.Mode, "error", err)
		return nil, apperrors.NewInternalError("failed to load due questions")
	}

	return dto.ToQuestionDTOList(decodeRows(rows, uc.logger)), nil
}
