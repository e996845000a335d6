package models

import "time"

// Session is a bounded interval of tutoring activity for one student,
// optionally anchored to a lesson. The summary fields are human-authored and
// independently omittable; EndedAt is nil while the session is open.
type Session struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	StudentID      uint       `gorm:"not null;index" json:"student_id"`
	LessonID       *uint      `gorm:"index" json:"lesson_id"`
	Summary        string     `gorm:"type:text" json:"summary"`
	Misconceptions string     `gorm:"type:text" json:"misconceptions"`
	NextSteps      string     `gorm:"type:text" json:"next_steps"`
	StartedAt      time.Time  `gorm:"not null" json:"started_at"`
	EndedAt        *time.Time `json:"ended_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	Student Student `gorm:"foreignKey:StudentID" json:"-"`
}

// Open reports whether the session has not been closed yet.
func (s Session) Open() bool {
	return s.EndedAt == nil
}
