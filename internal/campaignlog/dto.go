package campaignlog

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/frahmantamala/gym-management/internal"
)

type CreateCampaignLogDTO struct {
	CampaignID  string          `json:"campaign_id"`
	Activity    string          `json:"activity"`
	Description *string         `json:"description"`
	Metrics     json.RawMessage `json:"metrics"`
	LogDate     *string         `json:"log_date"`
}

func (d *CreateCampaignLogDTO) Validate() *internal.AppError {
	details := map[string]any{}
	if d.CampaignID == "" {
		details["campaign_id"] = "campaign_id is required"
	}
	if d.Activity == "" {
		details["activity"] = "activity is required"
	}
	if len(d.Metrics) > 0 && !json.Valid(d.Metrics) {
		details["metrics"] = "metrics must be valid JSON"
	}
	if d.LogDate != nil {
		if _, err := parseDate(*d.LogDate); err != nil {
			details["log_date"] = "log_date must be a valid date"
		}
	}
	if len(details) > 0 {
		return internal.NewValidationDetailsError("invalid campaign log payload", details)
	}
	return nil
}

func (d *CreateCampaignLogDTO) logDate() time.Time {
	if d.LogDate == nil {
		return time.Now()
	}
	t, _ := parseDate(*d.LogDate)
	return t
}

func (d *CreateCampaignLogDTO) metrics() datatypes.JSON {
	if len(d.Metrics) == 0 {
		return nil
	}
	return datatypes.JSON(d.Metrics)
}

type UpdateCampaignLogDTO struct {
	Activity    *string         `json:"activity"`
	Description *string         `json:"description"`
	Metrics     json.RawMessage `json:"metrics"`
	LogDate     *string         `json:"log_date"`
}

func (d *UpdateCampaignLogDTO) Validate() *internal.AppError {
	details := map[string]any{}
	if d.Activity != nil && *d.Activity == "" {
		details["activity"] = "activity cannot be empty"
	}
	if len(d.Metrics) > 0 && !json.Valid(d.Metrics) {
		details["metrics"] = "metrics must be valid JSON"
	}
	if d.LogDate != nil {
		if _, err := parseDate(*d.LogDate); err != nil {
			details["log_date"] = "log_date must be a valid date"
		}
	}
	if len(details) > 0 {
		return internal.NewValidationDetailsError("invalid campaign log payload", details)
	}
	return nil
}

func (d *UpdateCampaignLogDTO) updates() map[string]any {
	updates := map[string]any{}
	if d.Activity != nil {
		updates["activity"] = *d.Activity
	}
	if d.Description != nil {
		updates["description"] = *d.Description
	}
	if len(d.Metrics) > 0 {
		updates["metrics"] = datatypes.JSON(d.Metrics)
	}
	if d.LogDate != nil {
		t, _ := parseDate(*d.LogDate)
		updates["log_date"] = t
	}
	return updates
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
