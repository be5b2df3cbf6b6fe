package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masterly-ai/masterly/internal/application/review/questionstore"
	apperrors "github.com/masterly-ai/masterly/internal/shared/errors"
	"github.com/masterly-ai/masterly/internal/shared/logger"
)

type mockStore struct {
	DueQuestionCountFunc     func(ctx context.Context, userID string) (int, error)
	DueQuestionsForPlayFunc  func(ctx context.Context, userID string, limit int) ([]questionstore.QuestionRow, error)
	DueQuestionsFunc         func(ctx context.Context, userID string, limit int) ([]questionstore.QuestionRow, error)
	QuestionsForMaterialFunc func(ctx context.Context, materialID, userID string) ([]questionstore.QuestionRow, error)
	RecordAnswerFunc         func(ctx context.Context, rec questionstore.AnswerRecord) error
	SaveQuestionsFunc        func(ctx context.Context, materialID, userID string, questions []questionstore.NewQuestion) (int, error)
	DeleteMaterialFunc       func(ctx context.Context, materialID, userID string) error
	UserStatsFunc            func(ctx context.Context, userID string) (*questionstore.UserStats, error)
}

func (m *mockStore) DueQuestionCount(ctx context.Context, userID string) (int, error) {
	if m.DueQuestionCountFunc != nil {
		return m.DueQuestionCountFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockStore) DueQuestionsForPlay(ctx context.Context, userID string, limit int) ([]questionstore.QuestionRow, error) {
	if m.DueQuestionsForPlayFunc != nil {
		return m.DueQuestionsForPlayFunc(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockStore) DueQuestions(ctx context.Context, userID string, limit int) ([]questionstore.QuestionRow, error) {
	if m.DueQuestionsFunc != nil {
		return m.DueQuestionsFunc(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockStore) QuestionsForMaterial(ctx context.Context, materialID, userID string) ([]questionstore.QuestionRow, error) {
	if m.QuestionsForMaterialFunc != nil {
		return m.QuestionsForMaterialFunc(ctx, materialID, userID)
	}
	return nil, nil
}

func (m *mockStore) RecordAnswer(ctx context.Context, rec questionstore.AnswerRecord) error {
	if m.RecordAnswerFunc != nil {
		return m.RecordAnswerFunc(ctx, rec)
	}
	return nil
}

func (m *mockStore) SaveQuestions(ctx context.Context, materialID, userID string, questions []questionstore.NewQuestion) (int, error) {
	if m.SaveQuestionsFunc != nil {
		return m.SaveQuestionsFunc(ctx, materialID, userID, questions)
	}
	return len(questions), nil
}

func (m *mockStore) DeleteMaterial(ctx context.Context, materialID, userID string) error {
	if m.DeleteMaterialFunc != nil {
		return m.DeleteMaterialFunc(ctx, materialID, userID)
	}
	return nil
}

func (m *mockStore) UserStats(ctx context.Context, userID string) (*questionstore.UserStats, error) {
	if m.UserStatsFunc != nil {
		return m.UserStatsFunc(ctx, userID)
	}
	return nil, nil
}

func flashcardData(front string) json.RawMessage {
	data, _ := json.Marshal(map[string]string{"front": front, "back": "answer"})
	return data
}

func TestGetDueQuestionsUseCase_Modes(t *testing.T) {
	row := questionstore.QuestionRow{IndividualQuestionID: "q1", QuestionType: "flashcard", QuestionData: flashcardData("Term")}

	tests := []struct {
		name      string
		mode      DueMode
		limit     int
		wantCall  string
		wantLimit int
		wantErr   bool
	}{
		{name: "default mode is play", mode: "", wantCall: "play", wantLimit: 20},
		{name: "play", mode: DueModePlay, limit: 5, wantCall: "play", wantLimit: 5},
		{name: "all", mode: DueModeAll, limit: 500, wantCall: "all", wantLimit: maxDueLimit},
		{name: "invalid mode", mode: "random", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotCall string
			var gotLimit int
			store := &mockStore{
				DueQuestionsForPlayFunc: func(ctx context.Context, userID string, limit int) ([]questionstore.QuestionRow, error) {
					gotCall, gotLimit = "play", limit
					return []questionstore.QuestionRow{row}, nil
				},
				DueQuestionsFunc: func(ctx context.Context, userID string, limit int) ([]questionstore.QuestionRow, error) {
					gotCall, gotLimit = "all", limit
					return []questionstore.QuestionRow{row}, nil
				},
			}
			uc := NewGetDueQuestionsUseCase(store, 0, logger.NewNopLogger())

			got, err := uc.Execute(context.Background(), GetDueQuestionsQuery{UserID: "user-1", Mode: tt.mode, Limit: tt.limit})

			if tt.wantErr {
				assert.True(t, apperrors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCall, gotCall)
			assert.Equal(t, tt.wantLimit, gotLimit)
			require.Len(t, got, 1)
			assert.Equal(t, "Term", got[0].Front)
		})
	}
}

func TestRecordAnswerUseCase_PassesScheduleFlag(t *testing.T) {
	var got questionstore.AnswerRecord
	store := &mockStore{
		RecordAnswerFunc: func(ctx context.Context, rec questionstore.AnswerRecord) error {
			got = rec
			return nil
		},
	}
	uc := NewRecordAnswerUseCase(store, logger.NewNopLogger())

	err := uc.Execute(context.Background(), RecordAnswerCommand{
		UserID: "user-1", QuestionID: "q1", IsCorrect: true, ResponseTimeMs: 850, UpdateFSRS: false,
	})

	require.NoError(t, err)
	assert.Equal(t, questionstore.AnswerRecord{
		UserID: "user-1", QuestionID: "q1", IsCorrect: true, ResponseTimeMs: 850, UpdateFSRS: false,
	}, got)

	err = uc.Execute(context.Background(), RecordAnswerCommand{UserID: "user-1"})
	assert.True(t, apperrors.IsValidationError(err))
}

func TestSaveQuestionsUseCase(t *testing.T) {
	t.Run("rejects invalid questions before saving", func(t *testing.T) {
		called := false
		store := &mockStore{
			SaveQuestionsFunc: func(ctx context.Context, materialID, userID string, questions []questionstore.NewQuestion) (int, error) {
				called = true
				return 0, nil
			},
		}
		uc := NewSaveQuestionsUseCase(store, logger.NewNopLogger())

		_, err := uc.Execute(context.Background(), SaveQuestionsCommand{
			MaterialID: "mat-1",
			UserID:     "user-1",
			Questions: []questionstore.NewQuestion{
				{QuestionType: "flashcard", QuestionData: flashcardData("ok")},
				{QuestionType: "mcq", QuestionData: json.RawMessage(`{"question":"?","options":["a"]}`)},
			},
		})

		assert.True(t, apperrors.IsValidationError(err))
		assert.False(t, called)
	})

	t.Run("saves valid questions", func(t *testing.T) {
		uc := NewSaveQuestionsUseCase(&mockStore{}, logger.NewNopLogger())

		got, err := uc.Execute(context.Background(), SaveQuestionsCommand{
			MaterialID: "mat-1",
			UserID:     "user-1",
			Questions:  []questionstore.NewQuestion{{QuestionType: "flashcard", QuestionData: flashcardData("ok")}},
		})

		require.NoError(t, err)
		assert.Equal(t, 1, got.Saved)
	})
}

func TestDeleteMaterialUseCase_FriendlyError(t *testing.T) {
	store := &mockStore{
		DeleteMaterialFunc: func(ctx context.Context, materialID, userID string) error {
			return errors.New("context deadline exceeded (Client.Timeout exceeded while awaiting headers)")
		},
	}
	uc := NewDeleteMaterialUseCase(store, logger.NewNopLogger())

	err := uc.Execute(context.Background(), "mat-1", "user-1")

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.Equal(t, apperrors.FriendlyText("timeout"), appErr.Details)
}

func TestGetUserStatsUseCase_NilStatsBecomesZero(t *testing.T) {
	uc := NewGetUserStatsUseCase(&mockStore{}, logger.NewNopLogger())

	stats, err := uc.Execute(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, &questionstore.UserStats{}, stats)
}
