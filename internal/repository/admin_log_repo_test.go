package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/studioflow/tutorly-api/internal/models"
)

func TestAdminLogRepositoryCreateAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAdminLogRepository(db)

	targetID := "42"
	entries := []models.AdminLog{
		{AdminID: 1, Action: models.AdminActionAddMinutes, TargetType: models.AuditTargetUser, TargetID: &targetID, Details: datatypes.JSONMap{"minutes": 30}},
		{AdminID: 1, Action: models.AdminActionViewUsers, TargetType: models.AuditTargetUser},
		{AdminID: 2, Action: models.AdminActionExportData, TargetType: models.AuditTargetSystem},
	}
	for i := range entries {
		require.NoError(t, repo.Create(context.Background(), &entries[i]))
		require.NotZero(t, entries[i].ID)
	}

	all, total, err := repo.List(context.Background(), AdminLogFilter{PageSize: 10})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, all, 3)

	adminID := uint(1)
	byAdmin, total, err := repo.List(context.Background(), AdminLogFilter{AdminID: &adminID, PageSize: 10})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, byAdmin, 2)

	byAction, total, err := repo.List(context.Background(), AdminLogFilter{Action: models.AdminActionAddMinutes, PageSize: 10})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "42", *byAction[0].TargetID)
	require.EqualValues(t, 30, byAction[0].Details["minutes"])
}

func TestAdminLogRepositoryListPagination(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAdminLogRepository(db)

	for i := 0; i < 5; i++ {
		entry := models.AdminLog{AdminID: 1, Action: models.AdminActionViewLogs, TargetType: models.AuditTargetSystem}
		require.NoError(t, repo.Create(context.Background(), &entry))
	}

	page, total, err := repo.List(context.Background(), AdminLogFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.EqualValues(t, 5, total)
	require.Len(t, page, 2)
}
