package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/studioflow/tutorly-api/internal/models"
)

func TestStudentRepositoryAggregateByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)

	owner := models.User{Name: "Parent", Email: "parent@example.com"}
	require.NoError(t, db.Create(&owner).Error)
	other := models.User{Name: "Other", Email: "other@example.com"}
	require.NoError(t, db.Create(&other).Error)

	ada := models.Student{UserID: owner.ID, Name: "Ada", GradeLevel: "7"}
	ben := models.Student{UserID: owner.ID, Name: "Ben", GradeLevel: "5"}
	stranger := models.Student{UserID: other.ID, Name: "Stranger"}
	require.NoError(t, db.Create(&ada).Error)
	require.NoError(t, db.Create(&ben).Error)
	require.NoError(t, db.Create(&stranger).Error)

	now := time.Now().UTC()
	earlier := now.Add(-2 * time.Hour)
	require.NoError(t, db.Create(&models.Session{StudentID: ada.ID, StartedAt: earlier.Add(-time.Hour), EndedAt: &earlier}).Error)
	require.NoError(t, db.Create(&models.Session{StudentID: ada.ID, StartedAt: now.Add(-30 * time.Minute)}).Error)
	require.NoError(t, db.Create(&models.Session{StudentID: stranger.ID, StartedAt: now}).Error)

	aggregates, err := repo.AggregateByUser(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Len(t, aggregates, 2)

	byName := map[string]StudentSessionAggregate{}
	for _, aggregate := range aggregates {
		byName[aggregate.Student.Name] = aggregate
	}

	require.EqualValues(t, 2, byName["Ada"].TotalSessions)
	require.EqualValues(t, 1, byName["Ada"].OpenSessions)
	require.NotNil(t, byName["Ada"].LastSessionAt)

	require.EqualValues(t, 0, byName["Ben"].TotalSessions)
	require.EqualValues(t, 0, byName["Ben"].OpenSessions)
	require.Nil(t, byName["Ben"].LastSessionAt)
}
