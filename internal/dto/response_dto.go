package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type OptionResponse struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	OrderIndex int    `json:"order_index"`
}

// QuestionResponse carries the current question to hosts and
// participants. CorrectOption is only populated once the question has
// closed, so clients never see the answer while it is still open.
type QuestionResponse struct {
	ID            string           `json:"id"`
	Prompt        string           `json:"prompt"`
	OrderIndex    int              `json:"order_index"`
	Options       []OptionResponse `json:"options"`
	CorrectOption *int             `json:"correct_option,omitempty"`
}

type SessionResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	JoinCode      string    `json:"join_code"`
	Status        string    `json:"status"`
	CurrentIndex  int       `json:"current_index"`
	TimeBudgetSec int       `json:"time_budget_sec"`
	Capacity      int       `json:"capacity"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// SessionStateResponse is the read surface for rendering: lifecycle
// state, cursor position, counts, and the current question payload.
type SessionStateResponse struct {
	ID               string            `json:"id"`
	Title            string            `json:"title"`
	Status           string            `json:"status"`
	CurrentIndex     int               `json:"current_index"`
	TimeBudgetSec    int               `json:"time_budget_sec"`
	QuestionCount    int               `json:"question_count"`
	AnsweredCount    int               `json:"answered_count"`
	ParticipantCount int               `json:"participant_count"`
	CurrentQuestion  *QuestionResponse `json:"current_question,omitempty"`
}

type LeaderboardEntry struct {
	ParticipantID string `json:"participant_id"`
	DisplayName   string `json:"display_name"`
	Score         int    `json:"score"`
	Rank          int    `json:"rank"`
}

type EnrollResponse struct {
	SessionID     string `json:"session_id"`
	ParticipantID string `json:"participant_id"`
	DisplayName   string `json:"display_name"`
	Score         int    `json:"score"`
}

// ParticipantResultResponse is a participant's view of their own
// standing for the current question. Correctness and points are only
// revealed once the question has closed.
type ParticipantResultResponse struct {
	QuestionID  string `json:"question_id,omitempty"`
	OptionIndex *int   `json:"option_index,omitempty"`
	IsCorrect   *bool  `json:"is_correct,omitempty"`
	Points      *int   `json:"points,omitempty"`
	TotalScore  int    `json:"total_score"`
	Answered    bool   `json:"answered"`
}
