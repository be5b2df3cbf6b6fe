package review

import (
	"context"

	"github.com/masterly-ai/masterly/internal/application/review/dto"
	"github.com/masterly-ai/masterly/internal/application/review/questionstore"
	"github.com/masterly-ai/masterly/internal/application/review/usecases"
)

// Use case interfaces for Handler - enables unit testing with mocks.

type getDueCountUseCase interface {
	Execute(ctx context.Context, query usecases.GetDueCountQuery) (*dto.DueCountDTO, error)
}

type getDueQuestionsUseCase interface {
	Execute(ctx context.Context, query usecases.GetDueQuestionsQuery) ([]*dto.QuestionDTO, error)
}

type recordAnswerUseCase interface {
	Execute(ctx context.Context, cmd usecases.RecordAnswerCommand) error
}

type getUserStatsUseCase interface {
	Execute(ctx context.Context, userID string) (*questionstore.UserStats, error)
}

type getMaterialQuestionsUseCase interface {
	Execute(ctx context.Context, materialID, userID string) ([]*dto.QuestionDTO, error)
}

type saveQuestionsUseCase interface {
	Execute(ctx context.Context, cmd usecases.SaveQuestionsCommand) (*dto.SaveQuestionsDTO, error)
}

type deleteMaterialUseCase interface {
	Execute(ctx context.Context, materialID, userID string) error
}
