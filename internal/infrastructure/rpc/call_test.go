package rpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestCall_SQL(t *testing.T) {
	tests := []struct {
		name       string
		call       Call
		wantSet    string
		wantScalar string
		wantArgs   map[string]any
	}{
		{
			name:       "due questions for play",
			call:       DueQuestionsRequest{UserID: "u1", Limit: 20, ForPlay: true}.Call(),
			wantSet:    "SELECT * FROM get_due_questions_for_play(p_user_id => @p_user_id, p_limit => @p_limit)",
			wantScalar: "SELECT get_due_questions_for_play(p_user_id => @p_user_id, p_limit => @p_limit) AS result",
			wantArgs:   map[string]any{"p_user_id": "u1", "p_limit": 20},
		},
		{
			name:     "due questions",
			call:     DueQuestionsRequest{UserID: "u1", Limit: 5}.Call(),
			wantSet:  "SELECT * FROM get_due_questions(p_user_id => @p_user_id, p_limit => @p_limit)",
			wantArgs: map[string]any{"p_user_id": "u1", "p_limit": 5},
		},
		{
			name:       "due count",
			call:       DueQuestionCountRequest{UserID: "u1"}.Call(),
			wantScalar: "SELECT get_due_question_count(p_user_id => @p_user_id) AS result",
			wantArgs:   map[string]any{"p_user_id": "u1"},
		},
		{
			name:     "questions for material",
			call:     MaterialQuestionsRequest{MaterialID: "m1", UserID: "u1"}.Call(),
			wantSet:  "SELECT * FROM get_questions_for_material(p_material_id => @p_material_id, p_user_id => @p_user_id)",
			wantArgs: map[string]any{"p_material_id": "m1", "p_user_id": "u1"},
		},
		{
			name: "record answer",
			call: RecordAnswerRequest{
				UserID: "u1", QuestionID: "q1", IsCorrect: true, ResponseTimeMs: 3500, UpdateFSRS: false,
			}.Call(),
			wantScalar: "SELECT record_answer(p_user_id => @p_user_id, p_question_id => @p_question_id, " +
				"p_is_correct => @p_is_correct, p_response_time_ms => @p_response_time_ms, p_update_fsrs => @p_update_fsrs) AS result",
			wantArgs: map[string]any{
				"p_user_id":          "u1",
				"p_question_id":      "q1",
				"p_is_correct":       true,
				"p_response_time_ms": int64(3500),
				"p_update_fsrs":      false,
			},
		},
		{
			name:       "save questions casts to jsonb",
			call:       SaveQuestionsRequest{MaterialID: "m1", UserID: "u1", Questions: datatypes.JSON(`[]`)}.Call(),
			wantScalar: "SELECT save_questions(p_material_id => @p_material_id, p_user_id => @p_user_id, p_questions => CAST(@p_questions AS jsonb)) AS result",
			wantArgs: map[string]any{
				"p_material_id": "m1",
				"p_user_id":     "u1",
				"p_questions":   datatypes.JSON(`[]`),
			},
		},
		{
			name:       "delete material",
			call:       DeleteMaterialRequest{MaterialID: "m1", UserID: "u1"}.Call(),
			wantScalar: "SELECT delete_material(p_material_id => @p_material_id, p_user_id => @p_user_id) AS result",
			wantArgs:   map[string]any{"p_material_id": "m1", "p_user_id": "u1"},
		},
		{
			name:     "user stats",
			call:     UserStatsRequest{UserID: "u1"}.Call(),
			wantSet:  "SELECT * FROM get_user_stats(p_user_id => @p_user_id)",
			wantArgs: map[string]any{"p_user_id": "u1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantSet != "" {
				query, args := tt.call.SetSQL()
				assert.Equal(t, tt.wantSet, query)
				assert.Equal(t, tt.wantArgs, args)
			}
			if tt.wantScalar != "" {
				query, args := tt.call.ScalarSQL()
				assert.Equal(t, tt.wantScalar, query)
				assert.Equal(t, tt.wantArgs, args)
			}
		})
	}
}

func TestCall_NamedArgsBindInOrder(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{DryRun: true})
	require.NoError(t, err)

	query, args := DueQuestionsRequest{UserID: "u1", Limit: 20, ForPlay: true}.Call().SetSQL()
	stmt := db.Raw(query, args).Statement

	assert.Equal(t, "SELECT * FROM get_due_questions_for_play(p_user_id => ?, p_limit => ?)", stmt.SQL.String())
	assert.Equal(t, []interface{}{"u1", 20}, stmt.Vars)
}

func TestCall_EveryRequestBindsAllArgs(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{DryRun: true})
	require.NoError(t, err)

	tests := []struct {
		name     string
		call     Call
		wantVars []interface{}
	}{
		{"due questions for play", DueQuestionsRequest{UserID: "u1", Limit: 20, ForPlay: true}.Call(), []interface{}{"u1", 20}},
		{"due questions", DueQuestionsRequest{UserID: "u1", Limit: 5}.Call(), []interface{}{"u1", 5}},
		{"due count", DueQuestionCountRequest{UserID: "u1"}.Call(), []interface{}{"u1"}},
		{"questions for material", MaterialQuestionsRequest{MaterialID: "m1", UserID: "u1"}.Call(), []interface{}{"m1", "u1"}},
		{
			"record answer",
			RecordAnswerRequest{UserID: "u1", QuestionID: "q1", IsCorrect: true, ResponseTimeMs: 3500, UpdateFSRS: true}.Call(),
			[]interface{}{"u1", "q1", true, int64(3500), true},
		},
		{
			"save questions",
			SaveQuestionsRequest{MaterialID: "m1", UserID: "u1", Questions: datatypes.JSON(`[]`)}.Call(),
			[]interface{}{"m1", "u1", datatypes.JSON(`[]`)},
		},
		{"delete material", DeleteMaterialRequest{MaterialID: "m1", UserID: "u1"}.Call(), []interface{}{"m1", "u1"}},
		{"user stats", UserStatsRequest{UserID: "u1"}.Call(), []interface{}{"u1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, render := range []func() (string, map[string]any){tt.call.SetSQL, tt.call.ScalarSQL} {
				query, args := render()
				stmt := db.Raw(query, args).Statement

				assert.NotContains(t, stmt.SQL.String(), "@")
				assert.Len(t, stmt.Vars, len(tt.call.Args))
				assert.Equal(t, tt.wantVars, stmt.Vars)
			}
		})
	}
}

func TestCall_CastWrapsPlaceholder(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{DryRun: true})
	require.NoError(t, err)

	query, args := SaveQuestionsRequest{MaterialID: "m1", UserID: "u1", Questions: datatypes.JSON(`[]`)}.Call().ScalarSQL()
	stmt := db.Raw(query, args).Statement

	assert.Equal(t,
		"SELECT save_questions(p_material_id => ?, p_user_id => ?, p_questions => CAST(? AS jsonb)) AS result",
		stmt.SQL.String())
}
