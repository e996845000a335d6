package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/studioflow/tutorly-api/internal/models"
	"github.com/studioflow/tutorly-api/internal/repository"
)

type aggregateRepoStub struct {
	aggregates []repository.StudentSessionAggregate
	calls      int
}

func (r *aggregateRepoStub) GetByID(_ context.Context, _ uint) (models.Student, error) {
	return models.Student{}, nil
}

func (r *aggregateRepoStub) ListByUser(_ context.Context, _ uint) ([]models.Student, error) {
	return nil, nil
}

func (r *aggregateRepoStub) AggregateByUser(_ context.Context, _ uint) ([]repository.StudentSessionAggregate, error) {
	r.calls++
	return r.aggregates, nil
}

func newTestRosterService(t *testing.T) (RosterService, *aggregateRepoStub, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})

	lastSession := time.Date(2026, 8, 20, 15, 0, 0, 0, time.UTC)
	repo := &aggregateRepoStub{aggregates: []repository.StudentSessionAggregate{
		{
			Student:       models.Student{ID: 1, UserID: 10, Name: "Ada", GradeLevel: "7"},
			TotalSessions: 12,
			OpenSessions:  1,
			LastSessionAt: &lastSession,
		},
	}}

	return NewRosterService(repo, client, time.Minute, zerolog.Nop()), repo, server
}

func TestRosterCacheMissThenHit(t *testing.T) {
	svc, repo, _ := newTestRosterService(t)

	roster, cacheHit, err := svc.GetRoster(context.Background(), 10)
	require.NoError(t, err)
	require.False(t, cacheHit)
	require.Len(t, roster.Students, 1)
	require.Equal(t, "Ada", roster.Students[0].Name)
	require.EqualValues(t, 12, roster.Students[0].TotalSessions)
	require.Equal(t, 1, repo.calls)

	cached, cacheHit, err := svc.GetRoster(context.Background(), 10)
	require.NoError(t, err)
	require.True(t, cacheHit)
	require.Equal(t, roster, cached)
	require.Equal(t, 1, repo.calls)
}

func TestRosterInvalidateForcesRefresh(t *testing.T) {
	svc, repo, _ := newTestRosterService(t)

	_, _, err := svc.GetRoster(context.Background(), 10)
	require.NoError(t, err)

	require.NoError(t, svc.Invalidate(context.Background(), 10))

	_, cacheHit, err := svc.GetRoster(context.Background(), 10)
	require.NoError(t, err)
	require.False(t, cacheHit)
	require.Equal(t, 2, repo.calls)
}

func TestRosterCacheExpires(t *testing.T) {
	svc, repo, server := newTestRosterService(t)

	_, _, err := svc.GetRoster(context.Background(), 10)
	require.NoError(t, err)

	server.FastForward(2 * time.Minute)

	_, cacheHit, err := svc.GetRoster(context.Background(), 10)
	require.NoError(t, err)
	require.False(t, cacheHit)
	require.Equal(t, 2, repo.calls)
}

func TestRosterWithoutCache(t *testing.T) {
	repo := &aggregateRepoStub{}
	svc := NewRosterService(repo, nil, time.Minute, zerolog.Nop())

	roster, cacheHit, err := svc.GetRoster(context.Background(), 10)
	require.NoError(t, err)
	require.False(t, cacheHit)
	require.Empty(t, roster.Students)
}
