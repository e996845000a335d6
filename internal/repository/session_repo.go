package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/studioflow/tutorly-api/internal/models"
)

// SessionRepository exposes persistence helpers for tutoring sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id uint) (models.Session, error)
	// Update applies a single-row patch. Only the supplied columns change;
	// it returns gorm.ErrRecordNotFound when no session matches.
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Session, error)
}

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository constructs the session repository.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) GetByID(ctx context.Context, id uint) (models.Session, error) {
	var session models.Session
	if err := r.db.WithContext(ctx).Preload("Student").First(&session, id).Error; err != nil {
		return models.Session{}, err
	}

	return session, nil
}

func (r *sessionRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Session, error) {
	tx := r.db.WithContext(ctx).Model(&models.Session{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return models.Session{}, tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.Session{}, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}
