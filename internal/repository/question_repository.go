package repository

import (
	"github.com/tuanng-dev/quizhive/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	FindBySessionID(sessionID string) ([]model.Question, error)
	FindByIndex(sessionID string, orderIndex int) (*model.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) FindBySessionID(sessionID string) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.Where("session_id = ?", sessionID).
		Order("order_index ASC").
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("options.order_index ASC")
		}).
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) FindByIndex(sessionID string, orderIndex int) (*model.Question, error) {
	var question model.Question
	err := r.db.Where("session_id = ? AND order_index = ?", sessionID, orderIndex).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("options.order_index ASC")
		}).
		First(&question).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}
