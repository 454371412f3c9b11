package absence

import (
	"time"

	"github.com/frahmantamala/gym-management/internal/auth"
	"github.com/frahmantamala/gym-management/internal/member"
)

const (
	TypeSick     = "SICK"
	TypeVacation = "VACATION"
	TypePersonal = "PERSONAL"
	TypeOther    = "OTHER"
)

func ValidType(t string) bool {
	switch t {
	case TypeSick, TypeVacation, TypePersonal, TypeOther:
		return true
	}
	return false
}

// Absence records a member being away on a given date.
type Absence struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	MemberID    string    `json:"member_id" gorm:"column:member_id;not null;index"`
	Date        time.Time `json:"date" gorm:"not null"`
	Type        string    `json:"type" gorm:"not null"`
	Reason      *string   `json:"reason,omitempty"`
	CreatedByID string    `json:"created_by_id" gorm:"column:created_by_id"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`

	Member    *member.Member `json:"member,omitempty" gorm:"foreignKey:MemberID"`
	CreatedBy *auth.User     `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
}

func (Absence) TableName() string {
	return "member_absences"
}
