package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/studioflow/tutorly-api/internal/models"
)

// LessonRepository exposes persistence helpers for curriculum lessons.
type LessonRepository interface {
	GetByID(ctx context.Context, id uint) (models.Lesson, error)
}

type lessonRepository struct {
	db *gorm.DB
}

// NewLessonRepository constructs the lesson repository.
func NewLessonRepository(db *gorm.DB) LessonRepository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) GetByID(ctx context.Context, id uint) (models.Lesson, error) {
	var lesson models.Lesson
	if err := r.db.WithContext(ctx).First(&lesson, id).Error; err != nil {
		return models.Lesson{}, err
	}

	return lesson, nil
}
