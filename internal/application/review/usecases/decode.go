package usecases

import (
	"github.com/masterly-ai/masterly/internal/application/review/questionstore"
	"github.com/masterly-ai/masterly/internal/domain/review"
	"github.com/masterly-ai/masterly/internal/shared/logger"
)

// decodeRows turns scheduler rows into questions, skipping rows that do not
// decode. A bad row should not hide the rest of the batch.
func decodeRows(rows []questionstore.QuestionRow, log logger.Interface) []review.Question {
	questions := make([]review.Question, 0, len(rows))
	for _, row := range rows {
		q, err := row.Decode()
		if err != nil {
			log.Warnw("skipping undecodable question", "question_id", row.IndividualQuestionID, "error", err)
			continue
		}
		questions = append(questions, q)
	}
	return questions
}
