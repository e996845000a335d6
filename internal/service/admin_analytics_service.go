package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/studioflow/tutorly-api/internal/dto"
	"github.com/studioflow/tutorly-api/internal/repository"
)

const analyticsCacheKey = "analytics:overview"

// AdminAnalyticsService aggregates platform-wide metrics for the admin dashboard.
type AdminAnalyticsService interface {
	Overview(ctx context.Context) (dto.AdminAnalyticsResponse, error)
}

type adminAnalyticsService struct {
	repo     repository.AnalyticsRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewAdminAnalyticsService constructs the analytics service. The cache client
// may be nil, in which case every call hits the database.
func NewAdminAnalyticsService(repo repository.AnalyticsRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) AdminAnalyticsService {
	return &adminAnalyticsService{
		repo:     repo,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "admin_analytics_service").Logger(),
	}
}

func (s *adminAnalyticsService) Overview(ctx context.Context) (dto.AdminAnalyticsResponse, error) {
	if s.cache != nil && s.cacheTTL > 0 {
		if cached, err := s.cache.Get(ctx, analyticsCacheKey).Result(); err == nil {
			var response dto.AdminAnalyticsResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read analytics cache")
		}
	}

	snapshot, err := s.repo.Snapshot(ctx)
	if err != nil {
		return dto.AdminAnalyticsResponse{}, err
	}

	response := dto.AdminAnalyticsResponse{
		TotalUsers:          snapshot.TotalUsers,
		TotalStudents:       snapshot.TotalStudents,
		OpenSessions:        snapshot.OpenSessions,
		ClosedSessions:      snapshot.ClosedSessions,
		MinutesTutored:      snapshot.MinutesTutored,
		ActiveSubscriptions: snapshot.ActiveSubscriptions,
		DocumentsReady:      snapshot.DocumentsReady,
	}

	if s.cache != nil && s.cacheTTL > 0 {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, analyticsCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store analytics cache")
			}
		}
	}

	return response, nil
}
