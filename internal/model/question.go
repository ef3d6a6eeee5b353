package model

type Question struct {
	ID            string   `gorm:"primarykey;size:36" json:"id"`
	SessionID     string   `json:"session_id" gorm:"size:36;not null;index"`
	Prompt        string   `json:"prompt" gorm:"type:text;not null"`
	OrderIndex    int      `json:"order_index" gorm:"not null"`
	CorrectOption int      `json:"correct_option" gorm:"not null"`
	Options       []Option `json:"options,omitempty" gorm:"foreignKey:QuestionID"`
}
