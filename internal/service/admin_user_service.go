package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/studioflow/tutorly-api/internal/dto"
	"github.com/studioflow/tutorly-api/internal/repository"
)

// ErrUserNotFound indicates the account was not found for admin operations.
var ErrUserNotFound = errors.New("user not found")

// AdminUserService orchestrates admin account management use cases.
type AdminUserService interface {
	List(ctx context.Context, req dto.AdminUserListRequest) (dto.AdminUserListResponse, error)
	AddMinutes(ctx context.Context, id uint, payload dto.AddMinutesRequest) (dto.AdminUserResponse, error)
	ExportCSV(ctx context.Context) ([]byte, error)
}

type adminUserService struct {
	repo      repository.UserRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAdminUserService constructs the admin user service.
func NewAdminUserService(repo repository.UserRepository, validate *validator.Validate, logger zerolog.Logger) AdminUserService {
	return &adminUserService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "admin_user_service").Logger(),
	}
}

func (s *adminUserService) List(ctx context.Context, req dto.AdminUserListRequest) (dto.AdminUserListResponse, error) {
	filter := repository.UserFilter{
		Search:   strings.TrimSpace(req.Search),
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.AdminUserListResponse{}, err
	}

	responses := make([]dto.AdminUserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, dto.NewAdminUserResponse(user))
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

	return dto.AdminUserListResponse{Items: responses, Pagination: pagination}, nil
}

func (s *adminUserService) AddMinutes(ctx context.Context, id uint, payload dto.AddMinutesRequest) (dto.AdminUserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AdminUserResponse{}, err
	}

	user, err := s.repo.AddMinutes(ctx, id, payload.Minutes)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AdminUserResponse{}, ErrUserNotFound
		}
		s.logger.Error().Err(err).Uint("user_id", id).Msg("failed to credit minutes")
		return dto.AdminUserResponse{}, err
	}

	return dto.NewAdminUserResponse(user), nil
}

func (s *adminUserService) ExportCSV(ctx context.Context) ([]byte, error) {
	users, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)

	if err := writer.Write([]string{"id", "name", "email", "role", "minutes_balance", "created_at"}); err != nil {
		return nil, err
	}

	for _, user := range users {
		record := []string{
			strconv.FormatUint(uint64(user.ID), 10),
			user.Name,
			user.Email,
			user.Role,
			strconv.Itoa(user.MinutesBalance),
			user.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
