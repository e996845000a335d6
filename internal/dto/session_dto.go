package dto

import (
	"time"

	"github.com/studioflow/tutorly-api/internal/models"
)

// SessionStartRequest opens a new tutoring session for a student.
type SessionStartRequest struct {
	StudentID uint  `json:"student_id" validate:"required"`
	LessonID  *uint `json:"lesson_id"`
}

// SessionCloseRequest carries the optional human-authored summary fields for a
// close. Only keys present in the request overwrite stored values; an empty
// body is the "skip" variant and sets ended_at alone.
type SessionCloseRequest struct {
	Summary        *string `json:"summary" validate:"omitempty,max=8000"`
	Misconceptions *string `json:"misconceptions" validate:"omitempty,max=8000"`
	NextSteps      *string `json:"next_steps" validate:"omitempty,max=8000"`
}

// SessionResponse serializes a tutoring session.
type SessionResponse struct {
	ID             uint       `json:"id"`
	StudentID      uint       `json:"student_id"`
	LessonID       *uint      `json:"lesson_id,omitempty"`
	Summary        string     `json:"summary"`
	Misconceptions string     `json:"misconceptions"`
	NextSteps      string     `json:"next_steps"`
	StartedAt      time.Time  `json:"started_at"`
	EndedAt        *time.Time `json:"ended_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewSessionResponse converts a session model into a DTO.
func NewSessionResponse(session models.Session) SessionResponse {
	return SessionResponse{
		ID:             session.ID,
		StudentID:      session.StudentID,
		LessonID:       session.LessonID,
		Summary:        session.Summary,
		Misconceptions: session.Misconceptions,
		NextSteps:      session.NextSteps,
		StartedAt:      session.StartedAt,
		EndedAt:        session.EndedAt,
		CreatedAt:      session.CreatedAt,
		UpdatedAt:      session.UpdatedAt,
	}
}

// SummaryDraftRequest asks the AI drafter to suggest close-out notes from a transcript.
type SummaryDraftRequest struct {
	Transcript string `json:"transcript" validate:"required,min=20"`
}

// SummaryDraftResponse carries the suggested close-out fields. Nothing is persisted.
type SummaryDraftResponse struct {
	Summary        string `json:"summary"`
	Misconceptions string `json:"misconceptions"`
	NextSteps      string `json:"next_steps"`
}
