package campaign

import (
	"time"

	"github.com/frahmantamala/gym-management/internal"
)

type CreateCampaignDTO struct {
	Name           string   `json:"name"`
	Description    *string  `json:"description"`
	Type           string   `json:"type"`
	Status         *string  `json:"status"`
	Budget         *float64 `json:"budget"`
	StartDate      string   `json:"start_date"`
	EndDate        *string  `json:"end_date"`
	TargetAudience *string  `json:"target_audience"`
	Goals          *string  `json:"goals"`
}

func (d *CreateCampaignDTO) Validate() *internal.AppError {
	details := map[string]any{}
	if d.Name == "" {
		details["name"] = "name is required"
	}
	if d.Type == "" {
		details["type"] = "type is required"
	} else if !ValidType(d.Type) {
		details["type"] = "unknown campaign type"
	}
	if d.Status != nil && !ValidStatus(*d.Status) {
		details["status"] = "unknown campaign status"
	}
	if d.Budget != nil && *d.Budget < 0 {
		details["budget"] = "budget cannot be negative"
	}
	if d.StartDate == "" {
		details["start_date"] = "start_date is required"
	} else if _, err := parseDate(d.StartDate); err != nil {
		details["start_date"] = "start_date must be a valid date"
	}
	if d.EndDate != nil && *d.EndDate != "" {
		if _, err := parseDate(*d.EndDate); err != nil {
			details["end_date"] = "end_date must be a valid date"
		}
	}
	if len(details) > 0 {
		return internal.NewValidationDetailsError("invalid campaign payload", details)
	}
	return nil
}

func (d *CreateCampaignDTO) startDate() time.Time {
	t, _ := parseDate(d.StartDate)
	return t
}

func (d *CreateCampaignDTO) endDate() *time.Time {
	if d.EndDate == nil || *d.EndDate == "" {
		return nil
	}
	t, _ := parseDate(*d.EndDate)
	return &t
}

func (d *CreateCampaignDTO) status() string {
	if d.Status != nil {
		return *d.Status
	}
	return StatusDraft
}

type UpdateCampaignDTO struct {
	Name           *string  `json:"name"`
	Description    *string  `json:"description"`
	Type           *string  `json:"type"`
	Status         *string  `json:"status"`
	Budget         *float64 `json:"budget"`
	StartDate      *string  `json:"start_date"`
	EndDate        *string  `json:"end_date"`
	TargetAudience *string  `json:"target_audience"`
	Goals          *string  `json:"goals"`
}

func (d *UpdateCampaignDTO) Validate() *internal.AppError {
	details := map[string]any{}
	if d.Name != nil && *d.Name == "" {
		details["name"] = "name cannot be empty"
	}
	if d.Type != nil && !ValidType(*d.Type) {
		details["type"] = "unknown campaign type"
	}
	if d.Status != nil && !ValidStatus(*d.Status) {
		details["status"] = "unknown campaign status"
	}
	if d.Budget != nil && *d.Budget < 0 {
		details["budget"] = "budget cannot be negative"
	}
	if d.StartDate != nil {
		if _, err := parseDate(*d.StartDate); err != nil {
			details["start_date"] = "start_date must be a valid date"
		}
	}
	if d.EndDate != nil && *d.EndDate != "" {
		if _, err := parseDate(*d.EndDate); err != nil {
			details["end_date"] = "end_date must be a valid date"
		}
	}
	if len(details) > 0 {
		return internal.NewValidationDetailsError("invalid campaign payload", details)
	}
	return nil
}

func (d *UpdateCampaignDTO) updates() map[string]any {
	updates := map[string]any{}
	if d.Name != nil {
		updates["name"] = *d.Name
	}
	if d.Description != nil {
		updates["description"] = *d.Description
	}
	if d.Type != nil {
		updates["type"] = *d.Type
	}
	if d.Status != nil {
		updates["status"] = *d.Status
	}
	if d.Budget != nil {
		updates["budget"] = *d.Budget
	}
	if d.StartDate != nil {
		t, _ := parseDate(*d.StartDate)
		updates["start_date"] = t
	}
	if d.EndDate != nil {
		if *d.EndDate == "" {
			updates["end_date"] = nil
		} else {
			t, _ := parseDate(*d.EndDate)
			updates["end_date"] = t
		}
	}
	if d.TargetAudience != nil {
		updates["target_audience"] = *d.TargetAudience
	}
	if d.Goals != nil {
		updates["goals"] = *d.Goals
	}
	return updates
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
