package repository

import (
	"github.com/tuanng-dev/quizhive/internal/model"
	"gorm.io/gorm"
)

type AnswerRepository interface {
	Create(answer *model.Answer) error
	Update(answer *model.Answer) error
	FindByParticipantAndQuestion(participantID, questionID string) (*model.Answer, error)
	CountByQuestionID(questionID string) (int64, error)
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) Create(answer *model.Answer) error {
	return r.db.Create(answer).Error
}

func (r *answerRepository) Update(answer *model.Answer) error {
	return r.db.Save(answer).Error
}

func (r *answerRepository) FindByParticipantAndQuestion(participantID, questionID string) (*model.Answer, error) {
	var answer model.Answer
	err := r.db.Where("participant_id = ? AND question_id = ?", participantID, questionID).
		First(&answer).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *answerRepository) CountByQuestionID(questionID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Answer{}).
		Where("question_id = ?", questionID).
		Count(&count).Error
	return count, err
}
