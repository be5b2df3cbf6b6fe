package rpc

import "gorm.io/datatypes"

// Function names exposed by the scheduler schema.
const (
	FnGetDueQuestionCount     = "get_due_question_count"
	FnGetDueQuestionsForPlay  = "get_due_questions_for_play"
	FnGetDueQuestions         = "get_due_questions"
	FnGetQuestionsForMaterial = "get_questions_for_material"
	FnRecordAnswer            = "record_answer"
	FnSaveQuestions           = "save_questions"
	FnDeleteMaterial          = "delete_material"
	FnGetUserStats            = "get_user_stats"
)

type DueQuestionCountRequest struct {
	UserID string
}

func (r DueQuestionCountRequest) Call() Call {
	return Call{Function: FnGetDueQuestionCount, Args: []Arg{
		{Name: "p_user_id", Value: r.UserID},
	}}
}

// DueQuestionsRequest serves both get_due_questions_for_play and
// get_due_questions; ForPlay selects the former.
type DueQuestionsRequest struct {
	UserID  string
	Limit   int
	ForPlay bool
}

func (r DueQuestionsRequest) Call() Call {
	fn := FnGetDueQuestions
	if r.ForPlay {
		fn = FnGetDueQuestionsForPlay
	}
	return Call{Function: fn, Args: []Arg{
		{Name: "p_user_id", Value: r.UserID},
		{Name: "p_limit", Value: r.Limit},
	}}
}

type MaterialQuestionsRequest struct {
	MaterialID string
	UserID     string
}

func (r MaterialQuestionsRequest) Call() Call {
	return Call{Function: FnGetQuestionsForMaterial, Args: []Arg{
		{Name: "p_material_id", Value: r.MaterialID},
		{Name: "p_user_id", Value: r.UserID},
	}}
}

type RecordAnswerRequest struct {
	UserID         string
	QuestionID     string
	IsCorrect      bool
	ResponseTimeMs int64
	UpdateFSRS     bool
}

func (r RecordAnswerRequest) Call() Call {
	return Call{Function: FnRecordAnswer, Args: []Arg{
		{Name: "p_user_id", Value: r.UserID},
		{Name: "p_question_id", Value: r.QuestionID},
		{Name: "p_is_correct", Value: r.IsCorrect},
		{Name: "p_response_time_ms", Value: r.ResponseTimeMs},
		{Name: "p_update_fsrs", Value: r.UpdateFSRS},
	}}
}

type SaveQuestionsRequest struct {
	MaterialID string
	UserID     string
	Questions  datatypes.JSON
}

func (r SaveQuestionsRequest) Call() Call {
	return Call{Function: FnSaveQuestions, Args: []Arg{
		{Name: "p_material_id", Value: r.MaterialID},
		{Name: "p_user_id", Value: r.UserID},
		{Name: "p_questions", Value: r.Questions, Cast: "jsonb"},
	}}
}

type DeleteMaterialRequest struct {
	MaterialID string
	UserID     string
}

func (r DeleteMaterialRequest) Call() Call {
	return Call{Function: FnDeleteMaterial, Args: []Arg{
		{Name: "p_material_id", Value: r.MaterialID},
		{Name: "p_user_id", Value: r.UserID},
	}}
}

type UserStatsRequest struct {
	UserID string
}

func (r UserStatsRequest) Call() Call {
	return Call{Function: FnGetUserStats, Args: []Arg{
		{Name: "p_user_id", Value: r.UserID},
	}}
}

// questionRowResult is the row shape shared by the question-returning functions.
type questionRowResult struct {
	IndividualQuestionID string         `gorm:"column:individual_question_id"`
	MaterialID           string         `gorm:"column:material_id"`
	QuestionType         string         `gorm:"column:question_type"`
	QuestionData         datatypes.JSON `gorm:"column:question_data"`
}

type userStatsResult struct {
	TotalQuestions  int     `gorm:"column:total_questions"`
	DueCount        int     `gorm:"column:due_count"`
	ReviewedToday   int     `gorm:"column:reviewed_today"`
	CorrectToday    int     `gorm:"column:correct_today"`
	StreakDays      int     `gorm:"column:streak_days"`
	AccuracyPercent float64 `gorm:"column:accuracy_percent"`
}
