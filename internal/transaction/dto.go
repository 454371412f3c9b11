package transaction

import (
	"time"

	"github.com/frahmantamala/gym-management/internal"
)

type CreateTransactionDTO struct {
	MemberID      string  `json:"member_id"`
	Type          string  `json:"type"`
	Amount        float64 `json:"amount"`
	Description   *string `json:"description"`
	PaymentMethod *string `json:"payment_method"`
	Status        *string `json:"status"`
	DueDate       string  `json:"due_date"`
	PaidDate      *string `json:"paid_date"`
}

func (d *CreateTransactionDTO) Validate() *internal.AppError {
	details := map[string]any{}
	if d.MemberID == "" {
		details["member_id"] = "member_id is required"
	}
	if d.Type == "" {
		details["type"] = "type is required"
	} else if !ValidType(d.Type) {
		details["type"] = "unknown transaction type"
	}
	if d.Amount <= 0 {
		details["amount"] = "amount must be greater than zero"
	}
	if d.DueDate == "" {
		details["due_date"] = "due_date is required"
	} else if _, err := parseDate(d.DueDate); err != nil {
		details["due_date"] = "due_date must be a valid date"
	}
	if d.Status != nil && !ValidStatus(*d.Status) {
		details["status"] = "unknown transaction status"
	}
	if d.PaidDate != nil {
		if _, err := parseDate(*d.PaidDate); err != nil {
			details["paid_date"] = "paid_date must be a valid date"
		}
	}
	if len(details) > 0 {
		return internal.NewValidationDetailsError("invalid transaction payload", details)
	}
	return nil
}

func (d *CreateTransactionDTO) dueDate() time.Time {
	t, _ := parseDate(d.DueDate)
	return t
}

func (d *CreateTransactionDTO) paidDate() *time.Time {
	if d.PaidDate == nil {
		return nil
	}
	t, _ := parseDate(*d.PaidDate)
	return &t
}

func (d *CreateTransactionDTO) status() string {
	if d.Status != nil {
		return *d.Status
	}
	return StatusPending
}

type UpdateTransactionDTO struct {
	Type          *string  `json:"type"`
	Amount        *float64 `json:"amount"`
	Description   *string  `json:"description"`
	PaymentMethod *string  `json:"payment_method"`
	Status        *string  `json:"status"`
	DueDate       *string  `json:"due_date"`
	PaidDate      *string  `json:"paid_date"`
}

func (d *UpdateTransactionDTO) Validate() *internal.AppError {
	details := map[string]any{}
	if d.Type != nil && !ValidType(*d.Type) {
		details["type"] = "unknown transaction type"
	}
	if d.Amount != nil && *d.Amount <= 0 {
		details["amount"] = "amount must be greater than zero"
	}
	if d.Status != nil && !ValidStatus(*d.Status) {
		details["status"] = "unknown transaction status"
	}
	if d.DueDate != nil {
		if _, err := parseDate(*d.DueDate); err != nil {
			details["due_date"] = "due_date must be a valid date"
		}
	}
	if d.PaidDate != nil && *d.PaidDate != "" {
		if _, err := parseDate(*d.PaidDate); err != nil {
			details["paid_date"] = "paid_date must be a valid date"
		}
	}
	if len(details) > 0 {
		return internal.NewValidationDetailsError("invalid transaction payload", details)
	}
	return nil
}

// updates builds the column map applied in the update statement. Only
// fields present in the payload are touched.
func (d *UpdateTransactionDTO) updates() map[string]any {
	updates := map[string]any{}
	if d.Type != nil {
		updates["type"] = *d.Type
	}
	if d.Amount != nil {
		updates["amount"] = *d.Amount
	}
	if d.Description != nil {
		updates["description"] = *d.Description
	}
	if d.PaymentMethod != nil {
		updates["payment_method"] = *d.PaymentMethod
	}
	if d.Status != nil {
		updates["status"] = *d.Status
	}
	if d.DueDate != nil {
		t, _ := parseDate(*d.DueDate)
		updates["due_date"] = t
	}
	if d.PaidDate != nil {
		if *d.PaidDate == "" {
			updates["paid_date"] = nil
		} else {
			t, _ := parseDate(*d.PaidDate)
			updates["paid_date"] = t
		}
	}
	return updates
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
