package model

import "time"

type Participant struct {
	ID          string    `gorm:"primarykey;size:36" json:"id"`
	SessionID   string    `json:"session_id" gorm:"size:36;not null;index"`
	DisplayName string    `json:"display_name" gorm:"size:50;not null"`
	Score       int       `json:"score" gorm:"not null;default:0"`
	// JoinedMidQuestion is the index of the question that was open when the
	// participant enrolled, or -1. A participant cannot answer that question
	// and is excluded from its all-answered count.
	JoinedMidQuestion int       `json:"joined_mid_question" gorm:"not null;default:-1"`
	EnrolledAt        time.Time `json:"enrolled_at"`
}

// EligibleFor reports whether the participant may answer the question at
// the given index.
func (p *Participant) EligibleFor(questionIndex int) bool {
	return p.JoinedMidQuestion != questionIndex
}
