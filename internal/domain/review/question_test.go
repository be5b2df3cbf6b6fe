package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeQuestion(t *testing.T) {
	tests := []struct {
		name    string
		qType   QuestionType
		data    string
		check   func(t *testing.T, q Question)
		wantErr bool
	}{
		{
			name:  "mcq with index answer",
			qType: TypeMCQ,
			data:  `{"question":"2+2?","options":["3","4","5"],"correct_answer":1}`,
			check: func(t *testing.T, q Question) {
				assert.Equal(t, "2+2?", q.Prompt)
				assert.Equal(t, 1, q.CorrectOption)
			},
		},
		{
			name:  "mcq with text answer",
			qType: TypeMCQ,
			data:  `{"question":"Capital of France?","options":["Lyon","Paris"],"correct_answer":"Paris"}`,
			check: func(t *testing.T, q Question) {
				assert.Equal(t, 1, q.CorrectOption)
			},
		},
		{name: "mcq answer not in options", qType: TypeMCQ, data: `{"options":["a","b"],"correct_answer":"c"}`, wantErr: true},
		{name: "mcq index out of range", qType: TypeMCQ, data: `{"options":["a","b"],"correct_answer":2}`, wantErr: true},
		{
			name:  "true-false uses statement",
			qType: TypeTrueFalse,
			data:  `{"statement":"The sky is green","correct_answer":false}`,
			check: func(t *testing.T, q Question) {
				assert.Equal(t, "The sky is green", q.Prompt)
				assert.Equal(t, []string{"True", "False"}, q.Options)
				assert.Equal(t, 1, q.CorrectOption)
			},
		},
		{name: "true-false needs boolean", qType: TypeTrueFalse, data: `{"statement":"x","correct_answer":"yes"}`, wantErr: true},
		{
			name:  "match pairs",
			qType: TypeMatchPairs,
			data:  `{"pairs":[{"left":"H2O","right":"water"},{"left":"NaCl","right":"salt"}]}`,
			check: func(t *testing.T, q Question) {
				assert.Len(t, q.Pairs, 2)
			},
		},
		{name: "match pairs needs two", qType: TypeMatchPairs, data: `{"pairs":[{"left":"a","right":"b"}]}`, wantErr: true},
		{
			name:  "order sequence",
			qType: TypeOrderSequence,
			data:  `{"question":"Order the phases","items":["prophase","metaphase","anaphase"]}`,
			check: func(t *testing.T, q Question) {
				assert.Equal(t, []string{"prophase", "metaphase", "anaphase"}, q.Sequence)
			},
		},
		{
			name:  "flashcard prompt defaults to front",
			qType: TypeFlashcard,
			data:  `{"front":"Mitochondria","back":"Powerhouse of the cell"}`,
			check: func(t *testing.T, q Question) {
				assert.Equal(t, "Mitochondria", q.Prompt)
				assert.Equal(t, "Powerhouse of the cell", q.Back)
			},
		},
		{name: "unknown type", qType: "essay", data: `{}`, wantErr: true},
		{name: "malformed json", qType: TypeMCQ, data: `{"options":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := DecodeQuestion("q-1", "m-1", tt.qType, []byte(tt.data))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidQuestion)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "q-1", q.IndividualQuestionID)
			assert.Equal(t, tt.qType, q.Type)
			tt.check(t, q)
		})
	}
}

func TestDecodeQuestion_RequiresID(t *testing.T) {
	_, err := DecodeQuestion("", "m-1", TypeFlashcard, []byte(`{"front":"a"}`))
	assert.ErrorIs(t, err, ErrInvalidQuestion)
}
