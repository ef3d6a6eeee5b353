package repository

import (
	"errors"

	"github.com/tuanng-dev/quizhive/internal/model"
	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(session *model.Session) error
	Update(session *model.Session) error
	FindByID(id string) (*model.Session, error)
	FindByJoinCode(code string) (*model.Session, error)
	CountActiveByJoinCode(code string) (int64, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *model.Session) error {
	// GORM creates the associated Questions and Options in the same insert
	// when they are populated on the model.
	return r.db.Create(session).Error
}

func (r *sessionRepository) Update(session *model.Session) error {
	return r.db.Model(&model.Session{}).Where("id = ?", session.ID).
		Updates(map[string]interface{}{
			"status":        session.Status,
			"current_index": session.CurrentIndex,
		}).Error
}

func (r *sessionRepository) FindByID(id string) (*model.Session, error) {
	var session model.Session
	if err := r.db.First(&session, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindByJoinCode(code string) (*model.Session, error) {
	var session model.Session
	err := r.db.Where("join_code = ? AND status != ?", code, model.StatusFinished).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) CountActiveByJoinCode(code string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Session{}).
		Where("join_code = ? AND status != ?", code, model.StatusFinished).
		Count(&count).Error
	return count, err
}

// IsNotFound reports whether err is the storage layer's not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
