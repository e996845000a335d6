package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/studioflow/tutorly-api/internal/models"
)

// StudentSessionAggregate summarises one student's session history.
type StudentSessionAggregate struct {
	Student       models.Student
	TotalSessions int64
	OpenSessions  int64
	LastSessionAt *time.Time
}

// StudentRepository exposes persistence helpers for learners.
type StudentRepository interface {
	GetByID(ctx context.Context, id uint) (models.Student, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Student, error)
	// AggregateByUser builds the roster view for an owning account.
	AggregateByUser(ctx context.Context, userID uint) ([]StudentSessionAggregate, error)
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository constructs the student repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) GetByID(ctx context.Context, id uint) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).First(&student, id).Error; err != nil {
		return models.Student{}, err
	}

	return student, nil
}

func (r *studentRepository) ListByUser(ctx context.Context, userID uint) ([]models.Student, error) {
	var students []models.Student
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("name ASC").Find(&students).Error; err != nil {
		return nil, err
	}

	return students, nil
}

func (r *studentRepository) AggregateByUser(ctx context.Context, userID uint) ([]StudentSessionAggregate, error) {
	students, err := r.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return []StudentSessionAggregate{}, nil
	}

	ids := make([]uint, 0, len(students))
	for _, student := range students {
		ids = append(ids, student.ID)
	}

	type sessionStats struct {
		StudentID     uint
		TotalSessions int64
		OpenSessions  int64
		LastStartedAt *time.Time
	}

	var stats []sessionStats
	err = r.db.WithContext(ctx).Model(&models.Session{}).
		Select("student_id",
			"COUNT(*) AS total_sessions",
			"SUM(CASE WHEN ended_at IS NULL THEN 1 ELSE 0 END) AS open_sessions",
			"MAX(started_at) AS last_started_at").
		Where("student_id IN ?", ids).
		Group("student_id").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}

	statsByStudent := make(map[uint]sessionStats, len(stats))
	for _, stat := range stats {
		statsByStudent[stat.StudentID] = stat
	}

	aggregates := make([]StudentSessionAggregate, 0, len(students))
	for _, student := range students {
		aggregate := StudentSessionAggregate{Student: student}
		if stat, ok := statsByStudent[student.ID]; ok {
			aggregate.TotalSessions = stat.TotalSessions
			aggregate.OpenSessions = stat.OpenSessions
			aggregate.LastSessionAt = stat.LastStartedAt
		}
		aggregates = append(aggregates, aggregate)
	}

	return aggregates, nil
}
