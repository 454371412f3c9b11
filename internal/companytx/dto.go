package companytx

import (
	"time"

	"github.com/frahmantamala/gym-management/internal"
)

type CreateCompanyTransactionDTO struct {
	Type            string  `json:"type"`
	Category        string  `json:"category"`
	Amount          float64 `json:"amount"`
	Description     *string `json:"description"`
	Status          *string `json:"status"`
	TransactionDate *string `json:"transaction_date"`
}

func (d *CreateCompanyTransactionDTO) Validate() *internal.AppError {
	details := map[string]any{}
	if d.Type == "" {
		details["type"] = "type is required"
	} else if !ValidType(d.Type) {
		details["type"] = "type must be INCOME or EXPENSE"
	}
	if d.Category == "" {
		details["category"] = "category is required"
	}
	if d.Amount <= 0 {
		details["amount"] = "amount must be greater than zero"
	}
	if d.Status != nil && !ValidStatus(*d.Status) {
		details["status"] = "unknown transaction status"
	}
	if d.TransactionDate != nil {
		if _, err := parseDate(*d.TransactionDate); err != nil {
			details["transaction_date"] = "transaction_date must be a valid date"
		}
	}
	if len(details) > 0 {
		return internal.NewValidationDetailsError("invalid company transaction payload", details)
	}
	return nil
}

func (d *CreateCompanyTransactionDTO) status() string {
	if d.Status != nil {
		return *d.Status
	}
	return StatusCompleted
}

// transactionDate defaults to the current time when the payload omits it.
func (d *CreateCompanyTransactionDTO) transactionDate() time.Time {
	if d.TransactionDate == nil {
		return time.Now()
	}
	t, _ := parseDate(*d.TransactionDate)
	return t
}

type UpdateCompanyTransactionDTO struct {
	Type            *string  `json:"type"`
	Category        *string  `json:"category"`
	Amount          *float64 `json:"amount"`
	Description     *string  `json:"description"`
	Status          *string  `json:"status"`
	TransactionDate *string  `json:"transaction_date"`
}

func (d *UpdateCompanyTransactionDTO) Validate() *internal.AppError {
	details := map[string]any{}
	if d.Type != nil && !ValidType(*d.Type) {
		details["type"] = "type must be INCOME or EXPENSE"
	}
	if d.Category != nil && *d.Category == "" {
		details["category"] = "category cannot be empty"
	}
	if d.Amount != nil && *d.Amount <= 0 {
		details["amount"] = "amount must be greater than zero"
	}
	if d.Status != nil && !ValidStatus(*d.Status) {
		details["status"] = "unknown transaction status"
	}
	if d.TransactionDate != nil {
		if _, err := parseDate(*d.TransactionDate); err != nil {
			details["transaction_date"] = "transaction_date must be a valid date"
		}
	}
	if len(details) > 0 {
		return internal.NewValidationDetailsError("invalid company transaction payload", details)
	}
	return nil
}

func (d *UpdateCompanyTransactionDTO) updates() map[string]any {
	updates := map[string]any{}
	if d.Type != nil {
		updates["type"] = *d.Type
	}
	if d.Category != nil {
		updates["category"] = *d.Category
	}
	if d.Amount != nil {
		updates["amount"] = *d.Amount
	}
	if d.Description != nil {
		updates["description"] = *d.Description
	}
	if d.Status != nil {
		updates["status"] = *d.Status
	}
	if d.TransactionDate != nil {
		t, _ := parseDate(*d.TransactionDate)
		updates["transaction_date"] = t
	}
	return updates
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
