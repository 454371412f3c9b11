package postgres

import (
	"github.com/frahmantamala/gym-management/internal/audit"
	"gorm.io/gorm"
)

// Repository reads the activity log trail. Writes go through the audit
// pipeline only.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns recent activity logs, newest first, optionally filtered by
// actor and action verb. The result is capped to keep the staff-logs screen
// bounded.
func (r *Repository) List(userID, action string, limit int) ([]*audit.ActivityLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 500
	}

	query := r.db.Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "email", "role", "is_active", "created_at", "updated_at")
	})

	if userID != "" && userID != "all" {
		query = query.Where("user_id = ?", userID)
	}
	if action != "" && action != "all" {
		query = query.Where("action = ?", action)
	}

	var logs []*audit.ActivityLog
	err := query.Order("timestamp DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
