package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/studioflow/tutorly-api/internal/dto"
	"github.com/studioflow/tutorly-api/internal/models"
	"github.com/studioflow/tutorly-api/internal/repository"
)

// ErrSessionNotFound indicates the referenced session does not exist.
var ErrSessionNotFound = errors.New("session not found")

// ErrStudentNotFound indicates the referenced student does not exist.
var ErrStudentNotFound = errors.New("student not found")

// RosterInvalidator drops the cached roster view for an owning account.
type RosterInvalidator interface {
	Invalidate(ctx context.Context, userID uint) error
}

// SessionEventPublisher emits best-effort lifecycle events for downstream consumers.
type SessionEventPublisher interface {
	SessionEnded(ctx context.Context, session dto.SessionResponse)
}

// SessionService manages the tutoring session lifecycle.
type SessionService interface {
	Start(ctx context.Context, payload dto.SessionStartRequest) (dto.SessionResponse, error)
	Close(ctx context.Context, sessionID uint, payload dto.SessionCloseRequest) (dto.SessionResponse, error)
}

type sessionService struct {
	sessions  repository.SessionRepository
	students  repository.StudentRepository
	roster    RosterInvalidator
	events    SessionEventPublisher
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	now       func() time.Time
}

// NewSessionService constructs the session lifecycle service.
func NewSessionService(sessions repository.SessionRepository, students repository.StudentRepository, roster RosterInvalidator, events SessionEventPublisher, validate *validator.Validate, logger zerolog.Logger) SessionService {
	return &sessionService{
		sessions:  sessions,
		students:  students,
		roster:    roster,
		events:    events,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "session_service").Logger(),
		now:       time.Now,
	}
}

func (s *sessionService) Start(ctx context.Context, payload dto.SessionStartRequest) (dto.SessionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SessionResponse{}, err
	}

	if _, err := s.students.GetByID(ctx, payload.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SessionResponse{}, ErrStudentNotFound
		}
		return dto.SessionResponse{}, err
	}

	session := models.Session{
		StudentID: payload.StudentID,
		LessonID:  payload.LessonID,
		StartedAt: s.now().UTC(),
	}

	if err := s.sessions.Create(ctx, &session); err != nil {
		s.logger.Error().Err(err).Uint("student_id", payload.StudentID).Msg("failed to create session")
		return dto.SessionResponse{}, err
	}

	return dto.NewSessionResponse(session), nil
}

// Close patches the session with whichever summary fields the request carries
// and always refreshes ended_at. Re-closing is allowed: the patch is
// last-writer-wins per field, and callers needing single-close semantics must
// enforce them upstream. The persisted write is awaited; its failure is the
// caller's to see.
func (s *sessionService) Close(ctx context.Context, sessionID uint, payload dto.SessionCloseRequest) (dto.SessionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SessionResponse{}, err
	}

	updates := map[string]interface{}{
		"ended_at": s.now().UTC(),
	}
	if payload.Summary != nil {
		updates["summary"] = s.cleanText(*payload.Summary)
	}
	if payload.Misconceptions != nil {
		updates["misconceptions"] = s.cleanText(*payload.Misconceptions)
	}
	if payload.NextSteps != nil {
		updates["next_steps"] = s.cleanText(*payload.NextSteps)
	}

	session, err := s.sessions.Update(ctx, sessionID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SessionResponse{}, ErrSessionNotFound
		}
		s.logger.Error().Err(err).Uint("session_id", sessionID).Msg("failed to close session")
		return dto.SessionResponse{}, err
	}

	response := dto.NewSessionResponse(session)

	if s.roster != nil {
		if err := s.roster.Invalidate(ctx, session.Student.UserID); err != nil {
			s.logger.Warn().Err(err).Uint("user_id", session.Student.UserID).Msg("failed to invalidate roster cache")
		}
	}

	if s.events != nil {
		s.events.SessionEnded(ctx, response)
	}

	return response, nil
}

func (s *sessionService) cleanText(input string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(input))
}
