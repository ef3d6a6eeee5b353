package dto

// OptionRequest is one choice of a question being created.
type OptionRequest struct {
	Text string `json:"text" binding:"required,max=500"`
}

// QuestionRequest is used when creating questions as part of a new session.
type QuestionRequest struct {
	Prompt        string          `json:"prompt" binding:"required"`
	Options       []OptionRequest `json:"options" binding:"required,dive"`
	CorrectOption int             `json:"correct_option" binding:"min=0"`
}

type CreateSessionRequest struct {
	Title         string            `json:"title" binding:"required,max=120"`
	TimeBudgetSec int               `json:"time_budget_sec" binding:"required"`
	Capacity      int               `json:"capacity" binding:"required"`
	Questions     []QuestionRequest `json:"questions" binding:"required,dive"`
}

type EnrollRequest struct {
	JoinCode    string `json:"join_code" binding:"required,len=6"`
	DisplayName string `json:"display_name" binding:"required,max=50"`
}

type SubmitAnswerRequest struct {
	ParticipantID string  `json:"participant_id" binding:"required"`
	QuestionID    string  `json:"question_id" binding:"required"`
	OptionIndex   int     `json:"option_index" binding:"min=0"`
	ElapsedSec    float64 `json:"elapsed_sec" binding:"min=0"`
}
