package model

type Option struct {
	ID         string `gorm:"primarykey;size:36" json:"id"`
	QuestionID string `json:"question_id" gorm:"size:36;not null;index"`
	Text       string `json:"text" gorm:"size:500;not null"`
	OrderIndex int    `json:"order_index" gorm:"not null"`
}
