package member

import (
	"time"

	"github.com/frahmantamala/gym-management/internal/auth"
)

const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
)

// Member is a gym member identity record. MemberCode is generated once at
// creation and never changes.
type Member struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	MemberCode  string     `json:"member_code" gorm:"column:member_code;uniqueIndex;not null"`
	Name        string     `json:"name" gorm:"not null"`
	Email       *string    `json:"email,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	Address     *string    `json:"address,omitempty"`
	BirthDate   *time.Time `json:"birth_date,omitempty" gorm:"column:birth_date;type:date"`
	Gender      *string    `json:"gender,omitempty"`
	IsActive    bool       `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedByID string     `json:"created_by_id" gorm:"column:created_by_id"`
	CreatedAt   time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"column:updated_at"`

	CreatedBy *auth.User `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
}

func (Member) TableName() string {
	return "members"
}
