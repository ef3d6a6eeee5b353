package model

import "time"

// Answer holds the single scored answer for a (participant, question)
// pair. Resubmission before the question closes overwrites this record,
// it never creates a second one.
type Answer struct {
	ID            string    `gorm:"primarykey;size:36" json:"id"`
	SessionID     string    `json:"session_id" gorm:"size:36;not null;index"`
	ParticipantID string    `json:"participant_id" gorm:"size:36;not null;uniqueIndex:idx_answer_unique"`
	QuestionID    string    `json:"question_id" gorm:"size:36;not null;uniqueIndex:idx_answer_unique;index"`
	OptionIndex   int       `json:"option_index" gorm:"not null"`
	ElapsedSec    float64   `json:"elapsed_sec" gorm:"not null"`
	Points        int       `json:"points" gorm:"not null;default:0"`
	SubmittedAt   time.Time `json:"submitted_at"`
}
