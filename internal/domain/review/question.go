package review

import (
	"encoding/json"
	"errors"
	"fmt"
)

// QuestionType identifies how a question is presented and answered.
type QuestionType string

const (
	TypeMCQ           QuestionType = "mcq"
	TypeTrueFalse     QuestionType = "true-false"
	TypeMatchPairs    QuestionType = "match-pairs"
	TypeOrderSequence QuestionType = "order-sequence"
	TypeFlashcard     QuestionType = "flashcard"
)

var ErrInvalidQuestion = errors.New("invalid question")

// Pair is one left/right association of a match-pairs question.
type Pair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// Question is one reviewable item. Only the fields of its Type are set.
// IndividualQuestionID is the key the scheduler knows the item by.
type Question struct {
	IndividualQuestionID string
	MaterialID           string
	Type                 QuestionType
	Prompt               string
	Explanation          string

	// mcq and true-false; true-false uses Options {"True", "False"}
	Options       []string
	CorrectOption int

	// match-pairs
	Pairs []Pair

	// order-sequence, in the correct order
	Sequence []string

	// flashcard
	Front string
	Back  string
}

type questionData struct {
	Question      string          `json:"question"`
	Statement     string          `json:"statement"`
	Explanation   string          `json:"explanation"`
	Options       []string        `json:"options"`
	CorrectAnswer json.RawMessage `json:"correct_answer"`
	Pairs         []Pair          `json:"pairs"`
	Items         []string        `json:"items"`
	Front         string          `json:"front"`
	Back          string          `json:"back"`
}

// DecodeQuestion builds a Question from the stored question_data document.
func DecodeQuestion(questionID, materialID string, qType QuestionType, data []byte) (Question, error) {
	if questionID == "" {
		return Question{}, fmt.Errorf("%w: missing question id", ErrInvalidQuestion)
	}

	var raw questionData
	if len(data) > 0 {
		if err := json.Unmarshal(data, &raw); err != nil {
			return Question{}, fmt.Errorf("%w: %s: %v", ErrInvalidQuestion, questionID, err)
		}
	}

	q := Question{
		IndividualQuestionID: questionID,
		MaterialID:           materialID,
		Type:                 qType,
		Prompt:               raw.Question,
		Explanation:          raw.Explanation,
	}

	switch qType {
	case TypeMCQ:
		idx, err := correctOptionIndex(raw.CorrectAnswer, raw.Options)
		if err != nil {
			return Question{}, fmt.Errorf("%w: %s: %v", ErrInvalidQuestion, questionID, err)
		}
		q.Options = raw.Options
		q.CorrectOption = idx
	case TypeTrueFalse:
		if q.Prompt == "" {
			q.Prompt = raw.Statement
		}
		var answer bool
		if err := json.Unmarshal(raw.CorrectAnswer, &answer); err != nil {
			return Question{}, fmt.Errorf("%w: %s: true-false answer must be a boolean", ErrInvalidQuestion, questionID)
		}
		q.Options = []string{"True", "False"}
		q.CorrectOption = 1
		if answer {
			q.CorrectOption = 0
		}
	case TypeMatchPairs:
		if len(raw.Pairs) < 2 {
			return Question{}, fmt.Errorf("%w: %s: match-pairs needs at least two pairs", ErrInvalidQuestion, questionID)
		}
		q.Pairs = raw.Pairs
	case TypeOrderSequence:
		if len(raw.Items) < 2 {
			return Question{}, fmt.Errorf("%w: %s: order-sequence needs at least two items", ErrInvalidQuestion, questionID)
		}
		q.Sequence = raw.Items
	case TypeFlashcard:
		if raw.Front == "" {
			return Question{}, fmt.Errorf("%w: %s: flashcard front is empty", ErrInvalidQuestion, questionID)
		}
		q.Front = raw.Front
		q.Back = raw.Back
		if q.Prompt == "" {
			q.Prompt = raw.Front
		}
	default:
		return Question{}, fmt.Errorf("%w: %s: unknown type %q", ErrInvalidQuestion, questionID, qType)
	}

	return q, nil
}

// correctOptionIndex accepts either an index or the text of the correct option.
func correctOptionIndex(answer json.RawMessage, options []string) (int, error) {
	if len(options) < 2 {
		return 0, fmt.Errorf("mcq needs at least two options")
	}

	var idx int
	if err := json.Unmarshal(answer, &idx); err == nil {
		if idx < 0 || idx >= len(options) {
			return 0, fmt.Errorf("correct option %d out of range", idx)
		}
		return idx, nil
	}

	var text string
	if err := json.Unmarshal(answer, &text); err != nil {
		return 0, fmt.Errorf("correct answer must be an index or option text")
	}
	for i, opt := range options {
		if opt == text {
			return i, nil
		}
	}
	return 0, fmt.Errorf("correct answer %q is not one of the options", text)
}
