package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/studioflow/tutorly-api/internal/dto"
	"github.com/studioflow/tutorly-api/internal/models"
	"github.com/studioflow/tutorly-api/internal/repository"
)

var auditTargetTypes = map[string]struct{}{
	models.AuditTargetUser:         {},
	models.AuditTargetSubscription: {},
	models.AuditTargetDocument:     {},
	models.AuditTargetAgent:        {},
	models.AuditTargetSystem:       {},
}

// AuditEntry captures the details required to persist one audit record.
type AuditEntry struct {
	AdminID    uint
	Action     string
	TargetType string
	TargetID   *string
	Details    map[string]interface{}
}

// AuditRecorder defines behaviour for recording audit entries.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry) (dto.AdminLogResponse, error)
}

// AuditService exposes methods to persist and query the audit trail.
type AuditService interface {
	AuditRecorder
	List(ctx context.Context, req dto.AdminLogListRequest) (dto.AdminLogListResponse, error)
}

type auditService struct {
	repo   repository.AdminLogRepository
	logger zerolog.Logger
}

// NewAuditService constructs the audit trail service.
func NewAuditService(repo repository.AdminLogRepository, logger zerolog.Logger) AuditService {
	return &auditService{
		repo:   repo,
		logger: logger.With().Str("component", "audit_service").Logger(),
	}
}

func (s *auditService) Record(ctx context.Context, entry AuditEntry) (dto.AdminLogResponse, error) {
	if entry.AdminID == 0 {
		return dto.AdminLogResponse{}, fmt.Errorf("admin id is required")
	}

	action := strings.ToLower(strings.TrimSpace(entry.Action))
	if action == "" {
		return dto.AdminLogResponse{}, fmt.Errorf("action is required")
	}

	targetType := strings.ToLower(strings.TrimSpace(entry.TargetType))
	if _, ok := auditTargetTypes[targetType]; !ok {
		return dto.AdminLogResponse{}, fmt.Errorf("unknown target type %q", entry.TargetType)
	}

	model := models.AdminLog{
		AdminID:    entry.AdminID,
		Action:     action,
		TargetType: targetType,
		TargetID:   entry.TargetID,
		Details:    sanitizeDetails(entry.Details),
	}

	if err := s.repo.Create(ctx, &model); err != nil {
		s.logger.Error().Err(err).Str("action", action).Msg("failed to persist audit entry")
		return dto.AdminLogResponse{}, err
	}

	return dto.NewAdminLogResponse(model), nil
}

func (s *auditService) List(ctx context.Context, req dto.AdminLogListRequest) (dto.AdminLogListResponse, error) {
	filter := repository.AdminLogFilter{
		Page:       req.Page,
		PageSize:   req.PageSize,
		Action:     strings.TrimSpace(req.Action),
		TargetType: strings.TrimSpace(req.TargetType),
	}
	if req.AdminID > 0 {
		filter.AdminID = &req.AdminID
	}

	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.AdminLogListResponse{}, err
	}

	responses := make([]dto.AdminLogResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, dto.NewAdminLogResponse(entry))
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

	return dto.AdminLogListResponse{Items: responses, Pagination: pagination}, nil
}

func sanitizeDetails(details map[string]interface{}) datatypes.JSONMap {
	if details == nil {
		return datatypes.JSONMap{}
	}

	sanitized := datatypes.JSONMap{}
	for key, value := range details {
		lower := strings.ToLower(key)
		if strings.Contains(lower, "email") || strings.Contains(lower, "token") {
			sanitized[key] = "***"
			continue
		}
		sanitized[key] = value
	}
	return sanitized
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
