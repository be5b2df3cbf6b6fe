package usecases

import (
	"context"

	"github.com/masterly-ai/masterly/internal/application/review/questionstore"
	apperrors "github.com/masterly-ai/masterly/internal/shared/errors"
	"github.com/masterly-ai/masterly/internal/shared/logger"
)

type GetUserStatsUseCase struct {
	store  questionstore.Store
	logger logger.Interface
}

func NewGetUserStatsUseCase(store questionstore.Store, logger logger.Interface) *GetUserStatsUseCase {
	return &GetUserStatsUseCase{store: store, logger: logger}
}

func (uc *GetUserStatsUseCase) Execute(ctx context.Context, userID string) (*questionstore.UserStats, error) {
	stats, err := uc.store.UserStats(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to load user stats", "user_id", userID, "error", err)
		return nil, apperrors.NewInternalError("failed to load stats")
	}
	if stats == nil {
		stats = &questionstore.UserStats{}
	}
	return stats, nil
}
