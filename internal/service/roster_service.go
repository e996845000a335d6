package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/studioflow/tutorly-api/internal/dto"
	"github.com/studioflow/tutorly-api/internal/repository"
)

// RosterService produces the per-account student/session aggregate view,
// served through a Redis cache that session closes invalidate.
type RosterService interface {
	RosterInvalidator
	GetRoster(ctx context.Context, userID uint) (dto.RosterResponse, bool, error)
}

type rosterService struct {
	students repository.StudentRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewRosterService builds the roster aggregator.
func NewRosterService(students repository.StudentRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) RosterService {
	return &rosterService{
		students: students,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "roster_service").Logger(),
	}
}

func rosterCacheKey(userID uint) string {
	return fmt.Sprintf("roster:user:%d", userID)
}

// GetRoster returns the roster and whether it was served from cache.
func (s *rosterService) GetRoster(ctx context.Context, userID uint) (dto.RosterResponse, bool, error) {
	cacheKey := rosterCacheKey(userID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.RosterResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("user_id", userID).Msg("roster cache hit")
				return response, true, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read roster cache")
		}
	}

	aggregates, err := s.students.AggregateByUser(ctx, userID)
	if err != nil {
		return dto.RosterResponse{}, false, err
	}

	response := dto.RosterResponse{Students: make([]dto.RosterStudent, 0, len(aggregates))}
	for _, aggregate := range aggregates {
		response.Students = append(response.Students, dto.RosterStudent{
			StudentID:     aggregate.Student.ID,
			Name:          aggregate.Student.Name,
			GradeLevel:    aggregate.Student.GradeLevel,
			TotalSessions: aggregate.TotalSessions,
			OpenSessions:  aggregate.OpenSessions,
			LastSessionAt: aggregate.LastSessionAt,
		})
	}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store roster cache")
			}
		}
	}

	return response, false, nil
}

// Invalidate drops the cached roster so the next read reflects fresh state.
func (s *rosterService) Invalidate(ctx context.Context, userID uint) error {
	if s.cache == nil {
		return nil
	}

	return s.cache.Del(ctx, rosterCacheKey(userID)).Err()
}
