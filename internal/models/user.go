package models

import "time"

// User roles recognised by the API.
const (
	UserRoleAdmin  = "admin"
	UserRoleMember = "member"
)

// User represents an account holder: a parent or independent learner who owns
// students, a subscription and a tutoring-minutes balance.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	Email          string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Role           string    `gorm:"size:32;not null;default:member" json:"role"`
	MinutesBalance int       `gorm:"not null;default:0" json:"minutes_balance"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user carries the administrator capability.
func (u User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
