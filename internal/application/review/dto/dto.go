package dto

import (
	"github.com/masterly-ai/masterly/internal/domain/review"
)

type PairDTO struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// QuestionDTO is a question ready for presentation. Answers are included
// because scoring happens on the client.
type QuestionDTO struct {
	IndividualQuestionID string    `json:"individual_question_id"`
	MaterialID           string    `json:"material_id,omitempty"`
	Type                 string    `json:"type"`
	Prompt               string    `json:"prompt"`
	Explanation          string    `json:"explanation,omitempty"`
	Options              []string  `json:"options,omitempty"`
	CorrectOption        *int      `json:"correct_option,omitempty"`
	Pairs                []PairDTO `json:"pairs,omitempty"`
	Sequence             []string  `json:"sequence,omitempty"`
	Front                string    `json:"front,omitempty"`
	Back                 string    `json:"back,omitempty"`
}

func ToQuestionDTO(q review.Question) *QuestionDTO {
	d := &QuestionDTO{
		IndividualQuestionID: q.IndividualQuestionID,
		MaterialID:           q.MaterialID,
		Type:                 string(q.Type),
		Prompt:               q.Prompt,
		Explanation:          q.Explanation,
		Sequence:             q.Sequence,
		Front:                q.Front,
		Back:                 q.Back,
	}
	if len(q.Options) > 0 {
		d.Options = q.Options
		correct := q.CorrectOption
		d.CorrectOption = &correct
	}
	for _, p := range q.Pairs {
		d.Pairs = append(d.Pairs, PairDTO{Left: p.Left, Right: p.Right})
	}
	return d
}

func ToQuestionDTOList(questions []review.Question) []*QuestionDTO {
	out := make([]*QuestionDTO, 0, len(questions))
	for _, q := range questions {
		out = append(out, ToQuestionDTO(q))
	}
	return out
}

type DueCountDTO struct {
	Count int `json:"count"`
}

type SaveQuestionsDTO struct {
	MaterialID string `json:"material_id"`
	Saved      int    `json:"saved"`
}
