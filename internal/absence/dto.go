package absence

import (
	"time"

	"github.com/frahmantamala/gym-management/internal"
)

type CreateAbsenceDTO struct {
	MemberID string  `json:"member_id"`
	Date     string  `json:"date"`
	Type     string  `json:"type"`
	Reason   *string `json:"reason"`
}

func (d *CreateAbsenceDTO) Validate() *internal.AppError {
	details := map[string]any{}
	if d.MemberID == "" {
		details["member_id"] = "member_id is required"
	}
	if d.Date == "" {
		details["date"] = "date is required"
	} else if _, err := parseDate(d.Date); err != nil {
		details["date"] = "date must be a valid date"
	}
	if d.Type == "" {
		details["type"] = "type is required"
	} else if !ValidType(d.Type) {
		details["type"] = "unknown absence type"
	}
	if len(details) > 0 {
		return internal.NewValidationDetailsError("invalid absence payload", details)
	}
	return nil
}

func (d *CreateAbsenceDTO) date() time.Time {
	t, _ := parseDate(d.Date)
	return t
}

type UpdateAbsenceDTO struct {
	Date   *string `json:"date"`
	Type   *string `json:"type"`
	Reason *string `json:"reason"`
}

func (d *UpdateAbsenceDTO) Validate() *internal.AppError {
	details := map[string]any{}
	if d.Date != nil {
		if _, err := parseDate(*d.Date); err != nil {
			details["date"] = "date must be a valid date"
		}
	}
	if d.Type != nil && !ValidType(*d.Type) {
		details["type"] = "unknown absence type"
	}
	if len(details) > 0 {
		return internal.NewValidationDetailsError("invalid absence payload", details)
	}
	return nil
}

func (d *UpdateAbsenceDTO) updates() map[string]any {
	updates := map[string]any{}
	if d.Date != nil {
		t, _ := parseDate(*d.Date)
		updates["date"] = t
	}
	if d.Type != nil {
		updates["type"] = *d.Type
	}
	if d.Reason != nil {
		updates["reason"] = *d.Reason
	}
	return updates
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
