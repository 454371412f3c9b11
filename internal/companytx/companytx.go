package companytx

import (
	"time"

	"github.com/frahmantamala/gym-management/internal/auth"
)

const (
	TypeIncome  = "INCOME"
	TypeExpense = "EXPENSE"

	StatusPending   = "PENDING"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

func ValidType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CompanyTransaction records gym-level income and expenses that are not
// tied to an individual member.
type CompanyTransaction struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	TransactionCode string    `json:"transaction_code" gorm:"column:transaction_code;uniqueIndex;not null"`
	Type            string    `json:"type" gorm:"not null"`
	Category        string    `json:"category" gorm:"not null"`
	Amount          float64   `json:"amount" gorm:"not null"`
	Description     *string   `json:"description,omitempty"`
	Status          string    `json:"status" gorm:"default:COMPLETED"`
	TransactionDate time.Time `json:"transaction_date" gorm:"column:transaction_date;not null"`
	CreatedByID     string    `json:"created_by_id" gorm:"column:created_by_id"`
	CreatedAt       time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"column:updated_at"`

	CreatedBy *auth.User `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
}

func (CompanyTransaction) TableName() string {
	return "company_transactions"
}
