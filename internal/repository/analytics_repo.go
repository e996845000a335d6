package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/studioflow/tutorly-api/internal/models"
)

// AnalyticsSnapshot carries platform-wide aggregate counters.
type AnalyticsSnapshot struct {
	TotalUsers          int64
	TotalStudents       int64
	OpenSessions        int64
	ClosedSessions      int64
	MinutesTutored      int64
	ActiveSubscriptions int64
	DocumentsReady      int64
}

// AnalyticsRepository computes aggregate metrics for the admin dashboard.
type AnalyticsRepository interface {
	Snapshot(ctx context.Context) (AnalyticsSnapshot, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository constructs the analytics repository.
func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) Snapshot(ctx context.Context) (AnalyticsSnapshot, error) {
	var snapshot AnalyticsSnapshot
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.User{}).Count(&snapshot.TotalUsers).Error; err != nil {
		return AnalyticsSnapshot{}, err
	}

	if err := db.Model(&models.Student{}).Count(&snapshot.TotalStudents).Error; err != nil {
		return AnalyticsSnapshot{}, err
	}

	if err := db.Model(&models.Session{}).Where("ended_at IS NULL").Count(&snapshot.OpenSessions).Error; err != nil {
		return AnalyticsSnapshot{}, err
	}

	if err := db.Model(&models.Session{}).Where("ended_at IS NOT NULL").Count(&snapshot.ClosedSessions).Error; err != nil {
		return AnalyticsSnapshot{}, err
	}

	// Duration arithmetic differs per dialect; sqlite is only used in tests.
	durationExpr := "SUM(EXTRACT(EPOCH FROM (ended_at - started_at)) / 60)"
	if r.db.Dialector.Name() == "sqlite" {
		durationExpr = "SUM((JULIANDAY(ended_at) - JULIANDAY(started_at)) * 24 * 60)"
	}

	type minutesRow struct {
		Minutes *float64
	}
	var minutes minutesRow
	err := db.Model(&models.Session{}).
		Select(durationExpr + " AS minutes").
		Where("ended_at IS NOT NULL").
		Scan(&minutes).Error
	if err != nil {
		return AnalyticsSnapshot{}, err
	}
	if minutes.Minutes != nil {
		snapshot.MinutesTutored = int64(*minutes.Minutes)
	}

	if err := db.Model(&models.Subscription{}).Where("status = ?", models.SubscriptionStatusActive).Count(&snapshot.ActiveSubscriptions).Error; err != nil {
		return AnalyticsSnapshot{}, err
	}

	if err := db.Model(&models.Document{}).Where("status = ?", models.DocumentStatusReady).Count(&snapshot.DocumentsReady).Error; err != nil {
		return AnalyticsSnapshot{}, err
	}

	return snapshot, nil
}
