package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/studioflow/tutorly-api/internal/models"
)

func TestUserRepositoryAddMinutes(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user := models.User{Name: "Parent", Email: "parent@example.com", MinutesBalance: 90}
	require.NoError(t, db.Create(&user).Error)

	updated, err := repo.AddMinutes(context.Background(), user.ID, 60)
	require.NoError(t, err)
	require.Equal(t, 150, updated.MinutesBalance)

	_, err = repo.AddMinutes(context.Background(), 404, 60)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepositoryListSearch(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	require.NoError(t, db.Create(&models.User{Name: "Grace Hopper", Email: "grace@example.com"}).Error)
	require.NoError(t, db.Create(&models.User{Name: "Linus", Email: "linus@example.com"}).Error)

	users, total, err := repo.List(context.Background(), UserFilter{Search: "GRACE", PageSize: 10})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, users, 1)
	require.Equal(t, "Grace Hopper", users[0].Name)

	users, total, err = repo.List(context.Background(), UserFilter{PageSize: 1, Page: 2})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, users, 1)
}
