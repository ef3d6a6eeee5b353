package model

import (
	"time"
)

// Session lifecycle states. A session is created in StatusLobby and is
// terminal once it reaches StatusFinished.
const (
	StatusLobby          = "lobby"
	StatusQuestionOpen   = "question_open"
	StatusQuestionClosed = "question_closed"
	StatusFinished       = "finished"
)

type Session struct {
	ID            string        `gorm:"primarykey;size:36" json:"id"`
	Title         string        `json:"title" gorm:"not null"`
	JoinCode      string        `json:"join_code" gorm:"size:6;index"`
	Status        string        `json:"status" gorm:"size:20;not null;default:'lobby'"`
	CurrentIndex  int           `json:"current_index" gorm:"not null;default:-1"` // -1 before start
	TimeBudgetSec int           `json:"time_budget_sec" gorm:"not null"`
	Capacity      int           `json:"capacity" gorm:"not null"`
	OptionCount   int           `json:"option_count" gorm:"not null"`
	Questions     []Question    `json:"questions,omitempty" gorm:"foreignKey:SessionID"`
	Participants  []Participant `json:"participants,omitempty" gorm:"foreignKey:SessionID"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (s *Session) IsFinished() bool {
	return s.Status == StatusFinished
}
