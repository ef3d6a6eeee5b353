package repository

import (
	"github.com/tuanng-dev/quizhive/internal/model"
	"gorm.io/gorm"
)

type ParticipantRepository interface {
	Create(participant *model.Participant) error
	FindByID(id string) (*model.Participant, error)
	FindBySessionID(sessionID string) ([]model.Participant, error)
	CountBySessionID(sessionID string) (int64, error)
	AddToScore(id string, delta int) error
}

type participantRepository struct {
	db *gorm.DB
}

func NewParticipantRepository(db *gorm.DB) ParticipantRepository {
	return &participantRepository{db: db}
}

func (r *participantRepository) Create(participant *model.Participant) error {
	return r.db.Create(participant).Error
}

func (r *participantRepository) FindByID(id string) (*model.Participant, error) {
	var participant model.Participant
	if err := r.db.First(&participant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &participant, nil
}

func (r *participantRepository) FindBySessionID(sessionID string) ([]model.Participant, error) {
	var participants []model.Participant
	err := r.db.Where("session_id = ?", sessionID).
		Order("enrolled_at ASC").
		Find(&participants).Error
	if err != nil {
		return nil, err
	}
	return participants, nil
}

func (r *participantRepository) CountBySessionID(sessionID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Participant{}).
		Where("session_id = ?", sessionID).
		Count(&count).Error
	return count, err
}

func (r *participantRepository) AddToScore(id string, delta int) error {
	return r.db.Model(&model.Participant{}).Where("id = ?", id).
		Update("score", gorm.Expr("score + ?", delta)).Error
}
