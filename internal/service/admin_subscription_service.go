package service

import (
	"context"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/studioflow/tutorly-api/internal/dto"
	"github.com/studioflow/tutorly-api/internal/repository"
)

// AdminSubscriptionService serves the read-only billing mirror for the admin panel.
type AdminSubscriptionService interface {
	List(ctx context.Context, req dto.AdminSubscriptionListRequest) (dto.AdminSubscriptionListResponse, error)
}

type adminSubscriptionService struct {
	repo   repository.SubscriptionRepository
	logger zerolog.Logger
}

// NewAdminSubscriptionService constructs the admin subscription service.
func NewAdminSubscriptionService(repo repository.SubscriptionRepository, logger zerolog.Logger) AdminSubscriptionService {
	return &adminSubscriptionService{
		repo:   repo,
		logger: logger.With().Str("component", "admin_subscription_service").Logger(),
	}
}

func (s *adminSubscriptionService) List(ctx context.Context, req dto.AdminSubscriptionListRequest) (dto.AdminSubscriptionListResponse, error) {
	filter := repository.SubscriptionFilter{
		Status:   strings.ToLower(strings.TrimSpace(req.Status)),
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	subscriptions, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.AdminSubscriptionListResponse{}, err
	}

	responses := make([]dto.AdminSubscriptionResponse, 0, len(subscriptions))
	for _, subscription := range subscriptions {
		responses = append(responses, dto.NewAdminSubscriptionResponse(subscription))
	}

	pagination := dto.PaginationMeta{
		Page:       maxInt(req.Page, 1),
		PageSize:   req.PageSize,
		TotalItems: total,
	}
	if req.PageSize > 0 {
		pagination.TotalPages = int(math.Ceil(float64(total) / float64(req.PageSize)))
	} else {
		pagination.TotalPages = 1
	}

	return dto.AdminSubscriptionListResponse{Items: responses, Pagination: pagination}, nil
}
