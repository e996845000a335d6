package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/studioflow/tutorly-api/internal/models"
)

// AdminLogFilter narrows audit trail queries.
type AdminLogFilter struct {
	Page       int
	PageSize   int
	AdminID    *uint
	Action     string
	TargetType string
}

// AdminLogRepository persists the append-only audit trail. Entries are
// write-once: there is intentionally no update or delete.
type AdminLogRepository interface {
	Create(ctx context.Context, entry *models.AdminLog) error
	List(ctx context.Context, filter AdminLogFilter) ([]models.AdminLog, int64, error)
}

type adminLogRepository struct {
	db *gorm.DB
}

// NewAdminLogRepository constructs the audit trail repository.
func NewAdminLogRepository(db *gorm.DB) AdminLogRepository {
	return &adminLogRepository{db: db}
}

func (r *adminLogRepository) Create(ctx context.Context, entry *models.AdminLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *adminLogRepository) List(ctx context.Context, filter AdminLogFilter) ([]models.AdminLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.AdminLog{})

	if filter.AdminID != nil {
		query = query.Where("admin_id = ?", *filter.AdminID)
	}

	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}

	if filter.TargetType != "" {
		query = query.Where("target_type = ?", filter.TargetType)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		offset := (page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var entries []models.AdminLog
	if err := query.Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
