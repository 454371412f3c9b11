package campaign

import (
	"time"

	"github.com/frahmantamala/gym-management/internal/auth"
)

const (
	TypeDigital     = "DIGITAL"
	TypePrint       = "PRINT"
	TypeEvent       = "EVENT"
	TypeSocialMedia = "SOCIAL_MEDIA"
	TypeEmail       = "EMAIL"
	TypeOther       = "OTHER"

	StatusDraft     = "DRAFT"
	StatusActive    = "ACTIVE"
	StatusPaused    = "PAUSED"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

func ValidType(t string) bool {
	switch t {
	case TypeDigital, TypePrint, TypeEvent, TypeSocialMedia, TypeEmail, TypeOther:
		return true
	}
	return false
}

func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusActive, StatusPaused, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Campaign is a marketing initiative. EndDate is open-ended while nil.
type Campaign struct {
	ID             string     `json:"id" gorm:"primaryKey"`
	Name           string     `json:"name" gorm:"not null"`
	Description    *string    `json:"description,omitempty"`
	Type           string     `json:"type" gorm:"not null"`
	Status         string     `json:"status" gorm:"default:DRAFT"`
	Budget         *float64   `json:"budget,omitempty"`
	StartDate      time.Time  `json:"start_date" gorm:"column:start_date;not null"`
	EndDate        *time.Time `json:"end_date,omitempty" gorm:"column:end_date"`
	TargetAudience *string    `json:"target_audience,omitempty" gorm:"column:target_audience"`
	Goals          *string    `json:"goals,omitempty"`
	CreatedByID    string     `json:"created_by_id" gorm:"column:created_by_id"`
	CreatedAt      time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"column:updated_at"`

	CreatedBy *auth.User `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
}

func (Campaign) TableName() string {
	return "campaigns"
}
