package dto

import (
	"time"

	"github.com/studioflow/tutorly-api/internal/models"
)

// PaginationMeta captures pagination metadata for list responses.
type PaginationMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// AdminUserListRequest defines filters for listing users.
type AdminUserListRequest struct {
	Page     int
	PageSize int
	Search   string
}

// AdminUserResponse serializes account data for admin endpoints.
type AdminUserResponse struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	MinutesBalance int       `json:"minutes_balance"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AdminUserListResponse wraps a paginated user listing.
type AdminUserListResponse struct {
	Items      []AdminUserResponse `json:"items"`
	Pagination PaginationMeta      `json:"pagination"`
}

// NewAdminUserResponse converts a user model into a DTO.
func NewAdminUserResponse(user models.User) AdminUserResponse {
	return AdminUserResponse{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Role:           user.Role,
		MinutesBalance: user.MinutesBalance,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

// AddMinutesRequest credits tutoring minutes to an account.
type AddMinutesRequest struct {
	Minutes int `json:"minutes" validate:"required,gt=0,lte=600"`
}

// AdminSubscriptionListRequest defines filters for listing subscriptions.
type AdminSubscriptionListRequest struct {
	Page     int
	PageSize int
	Status   string
}

// AdminSubscriptionResponse serializes subscription data for admin clients.
type AdminSubscriptionResponse struct {
	ID              uint      `json:"id"`
	UserID          uint      `json:"user_id"`
	Plan            string    `json:"plan"`
	Status          string    `json:"status"`
	MinutesPerMonth int       `json:"minutes_per_month"`
	RenewsAt        time.Time `json:"renews_at"`
	CreatedAt       time.Time `json:"created_at"`
}

// AdminSubscriptionListResponse wraps a paginated subscription listing.
type AdminSubscriptionListResponse struct {
	Items      []AdminSubscriptionResponse `json:"items"`
	Pagination PaginationMeta              `json:"pagination"`
}

// NewAdminSubscriptionResponse converts a subscription model into a DTO.
func NewAdminSubscriptionResponse(sub models.Subscription) AdminSubscriptionResponse {
	return AdminSubscriptionResponse{
		ID:              sub.ID,
		UserID:          sub.UserID,
		Plan:            sub.Plan,
		Status:          sub.Status,
		MinutesPerMonth: sub.MinutesPerMonth,
		RenewsAt:        sub.RenewsAt,
		CreatedAt:       sub.CreatedAt,
	}
}

// AdminLogListRequest defines filters for listing audit entries.
type AdminLogListRequest struct {
	Page       int
	PageSize   int
	AdminID    uint
	Action     string
	TargetType string
}

// AdminLogResponse serializes a single audit entry.
type AdminLogResponse struct {
	ID         uint                   `json:"id"`
	AdminID    uint                   `json:"admin_id"`
	Action     string                 `json:"action"`
	TargetType string                 `json:"target_type"`
	TargetID   *string                `json:"target_id,omitempty"`
	Details    map[string]interface{} `json:"details"`
	CreatedAt  time.Time              `json:"created_at"`
}

// AdminLogListResponse wraps a paginated audit-trail listing.
type AdminLogListResponse struct {
	Items      []AdminLogResponse `json:"items"`
	Pagination PaginationMeta     `json:"pagination"`
}

// NewAdminLogResponse converts an audit entry model into a DTO.
func NewAdminLogResponse(entry models.AdminLog) AdminLogResponse {
	details := map[string]interface{}{}
	for key, value := range entry.Details {
		details[key] = value
	}

	return AdminLogResponse{
		ID:         entry.ID,
		AdminID:    entry.AdminID,
		Action:     entry.Action,
		TargetType: entry.TargetType,
		TargetID:   entry.TargetID,
		Details:    details,
		CreatedAt:  entry.CreatedAt,
	}
}

// AdminAnalyticsResponse aggregates platform-wide counters for the admin dashboard.
type AdminAnalyticsResponse struct {
	TotalUsers          int64 `json:"total_users"`
	TotalStudents       int64 `json:"total_students"`
	OpenSessions        int64 `json:"open_sessions"`
	ClosedSessions      int64 `json:"closed_sessions"`
	MinutesTutored      int64 `json:"minutes_tutored"`
	ActiveSubscriptions int64 `json:"active_subscriptions"`
	DocumentsReady      int64 `json:"documents_ready"`
}
