package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/studioflow/tutorly-api/internal/models"
)

func TestAnalyticsRepositorySnapshot(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAnalyticsRepository(db)

	owner := models.User{Name: "Parent", Email: "parent@example.com"}
	require.NoError(t, db.Create(&owner).Error)
	admin := models.User{Name: "Admin", Email: "admin@example.com", Role: models.UserRoleAdmin}
	require.NoError(t, db.Create(&admin).Error)

	student := models.Student{UserID: owner.ID, Name: "Ada"}
	require.NoError(t, db.Create(&student).Error)

	now := time.Now().UTC()
	closedEnd := now.Add(-time.Hour)
	require.NoError(t, db.Create(&models.Session{StudentID: student.ID, StartedAt: closedEnd.Add(-90 * time.Minute), EndedAt: &closedEnd}).Error)
	require.NoError(t, db.Create(&models.Session{StudentID: student.ID, StartedAt: now.Add(-10 * time.Minute)}).Error)

	require.NoError(t, db.Create(&models.Subscription{UserID: owner.ID, Plan: "family", Status: models.SubscriptionStatusActive, MinutesPerMonth: 300, RenewsAt: now.AddDate(0, 1, 0)}).Error)
	require.NoError(t, db.Create(&models.Subscription{UserID: owner.ID, Plan: "family", Status: models.SubscriptionStatusCanceled, MinutesPerMonth: 300, RenewsAt: now}).Error)

	require.NoError(t, db.Create(&models.Document{Title: "Workbook", Status: models.DocumentStatusReady}).Error)
	require.NoError(t, db.Create(&models.Document{Title: "Pending", Status: models.DocumentStatusProcessing}).Error)

	snapshot, err := repo.Snapshot(context.Background())
	require.NoError(t, err)

	require.EqualValues(t, 2, snapshot.TotalUsers)
	require.EqualValues(t, 1, snapshot.TotalStudents)
	require.EqualValues(t, 1, snapshot.OpenSessions)
	require.EqualValues(t, 1, snapshot.ClosedSessions)
	require.EqualValues(t, 1, snapshot.ActiveSubscriptions)
	require.EqualValues(t, 1, snapshot.DocumentsReady)
	// One closed 90 minute session; allow slack for date arithmetic rounding.
	require.InDelta(t, 90, snapshot.MinutesTutored, 1)
}
