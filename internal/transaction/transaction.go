package transaction

import (
	"time"

	"github.com/frahmantamala/gym-management/internal/auth"
	"github.com/frahmantamala/gym-management/internal/member"
)

const (
	StatusPending   = "PENDING"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
	StatusOverdue   = "OVERDUE"

	TypeMembershipFee    = "MEMBERSHIP_FEE"
	TypePersonalTraining = "PERSONAL_TRAINING"
	TypeSupplements      = "SUPPLEMENTS"
	TypeEquipmentRental  = "EQUIPMENT_RENTAL"
	TypeOther            = "OTHER"
)

func ValidType(t string) bool {
	switch t {
	case TypeMembershipFee, TypePersonalTraining, TypeSupplements, TypeEquipmentRental, TypeOther:
		return true
	}
	return false
}

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled, StatusOverdue:
		return true
	}
	return false
}

// Transaction is a billing event against a member. TransactionCode is
// generated at creation and unique.
type Transaction struct {
	ID              string     `json:"id" gorm:"primaryKey"`
	TransactionCode string     `json:"transaction_code" gorm:"column:transaction_code;uniqueIndex;not null"`
	MemberID        string     `json:"member_id" gorm:"column:member_id;not null;index"`
	Type            string     `json:"type" gorm:"not null"`
	Amount          float64    `json:"amount" gorm:"not null"`
	Description     *string    `json:"description,omitempty"`
	PaymentMethod   *string    `json:"payment_method,omitempty" gorm:"column:payment_method"`
	Status          string     `json:"status" gorm:"default:PENDING"`
	DueDate         time.Time  `json:"due_date" gorm:"column:due_date;not null"`
	PaidDate        *time.Time `json:"paid_date,omitempty" gorm:"column:paid_date"`
	CreatedByID     string     `json:"created_by_id" gorm:"column:created_by_id"`
	CreatedAt       time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt       time.Time  `json:"updated_at" gorm:"column:updated_at"`

	Member    *member.Member `json:"member,omitempty" gorm:"foreignKey:MemberID"`
	CreatedBy *auth.User     `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
}

func (Transaction) TableName() string {
	return "member_transactions"
}
