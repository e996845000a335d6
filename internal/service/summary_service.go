package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/studioflow/tutorly-api/internal/dto"
	"github.com/studioflow/tutorly-api/internal/repository"
	"github.com/studioflow/tutorly-api/pkg/ai"
)

// ErrDrafterUnavailable indicates no AI drafter is configured.
var ErrDrafterUnavailable = errors.New("summary drafting is not configured")

// SummaryService turns a session transcript into suggested close-out notes.
type SummaryService interface {
	Draft(ctx context.Context, sessionID uint, payload dto.SummaryDraftRequest) (dto.SummaryDraftResponse, error)
}

type summaryService struct {
	sessions  repository.SessionRepository
	lessons   repository.LessonRepository
	drafter   ai.SummaryDrafter
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewSummaryService constructs the summary drafting service. The drafter may
// be nil when no AI provider is configured.
func NewSummaryService(sessions repository.SessionRepository, lessons repository.LessonRepository, drafter ai.SummaryDrafter, validate *validator.Validate, logger zerolog.Logger) SummaryService {
	return &summaryService{
		sessions:  sessions,
		lessons:   lessons,
		drafter:   drafter,
		validator: validate,
		logger:    logger.With().Str("component", "summary_service").Logger(),
	}
}

func (s *summaryService) Draft(ctx context.Context, sessionID uint, payload dto.SummaryDraftRequest) (dto.SummaryDraftResponse, error) {
	if s.drafter == nil {
		return dto.SummaryDraftResponse{}, ErrDrafterUnavailable
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.SummaryDraftResponse{}, err
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SummaryDraftResponse{}, ErrSessionNotFound
		}
		return dto.SummaryDraftResponse{}, err
	}

	input := ai.SummaryInput{
		StudentName: session.Student.Name,
		Transcript:  payload.Transcript,
	}
	if session.LessonID != nil && s.lessons != nil {
		if lesson, err := s.lessons.GetByID(ctx, *session.LessonID); err == nil {
			input.LessonTitle = lesson.Title
		}
	}

	draft, err := s.drafter.Draft(ctx, input)
	if err != nil {
		s.logger.Error().Err(err).Uint("session_id", sessionID).Msg("summary drafting failed")
		return dto.SummaryDraftResponse{}, err
	}

	return dto.SummaryDraftResponse{
		Summary:        draft.Summary,
		Misconceptions: draft.Misconceptions,
		NextSteps:      draft.NextSteps,
	}, nil
}
