package dto

import "time"

// RosterStudent aggregates one student's session history for the account roster.
type RosterStudent struct {
	StudentID     uint       `json:"student_id"`
	Name          string     `json:"name"`
	GradeLevel    string     `json:"grade_level"`
	TotalSessions int64      `json:"total_sessions"`
	OpenSessions  int64      `json:"open_sessions"`
	LastSessionAt *time.Time `json:"last_session_at,omitempty"`
}

// RosterResponse is the cached per-account student/session aggregate view.
type RosterResponse struct {
	Students []RosterStudent `json:"students"`
}
