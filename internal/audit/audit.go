package audit

import (
	"encoding/json"
	"time"

	"github.com/frahmantamala/gym-management/internal/auth"
	"gorm.io/datatypes"
)

// Action is the verb recorded for a successful mutation.
type Action string

const (
	ActionCreateMember Action = "CREATE_MEMBER"
	ActionUpdateMember Action = "UPDATE_MEMBER"
	ActionDeleteMember Action = "DELETE_MEMBER"

	ActionCreateTransaction Action = "CREATE_TRANSACTION"
	ActionUpdateTransaction Action = "UPDATE_TRANSACTION"
	ActionDeleteTransaction Action = "DELETE_TRANSACTION"

	ActionCreateAbsence Action = "CREATE_ABSENCE"
	ActionUpdateAbsence Action = "UPDATE_ABSENCE"
	ActionDeleteAbsence Action = "DELETE_ABSENCE"

	ActionCreateCampaign Action = "CREATE_CAMPAIGN"
	ActionUpdateCampaign Action = "UPDATE_CAMPAIGN"
	ActionDeleteCampaign Action = "DELETE_CAMPAIGN"

	ActionCreateCampaignLog Action = "CREATE_MK_LOG"
	ActionUpdateCampaignLog Action = "UPDATE_MK_LOG"
	ActionDeleteCampaignLog Action = "DELETE_MK_LOG"
)

// ActivityLog is the append-only audit trail: one row per successful
// mutating API call. Rows are never updated or deleted by the system.
type ActivityLog struct {
	ID        string         `json:"id" gorm:"primaryKey"`
	UserID    string         `json:"user_id" gorm:"column:user_id;not null;index"`
	Role      auth.Role      `json:"role" gorm:"type:varchar(20);not null"`
	Action    Action         `json:"action" gorm:"type:varchar(40);not null;index"`
	Entity    string         `json:"entity" gorm:"not null"`
	EntityID  string         `json:"entity_id" gorm:"column:entity_id;not null"`
	Details   datatypes.JSON `json:"details"`
	Timestamp time.Time      `json:"timestamp" gorm:"not null;index"`

	User *auth.User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}

// Entry is what a mutation hands the pipeline: actor, verb, target and a
// typed details payload. The details type is keyed by the action verb so the
// blob stays queryable.
type Entry struct {
	UserID   string
	Role     auth.Role
	Action   Action
	Entity   string
	EntityID string
	Details  interface{}
}

// Typed detail payloads. Each action verb writes a known field set.

// RecordDetails identifies the target of a create or delete.
type RecordDetails struct {
	Code string `json:"code,omitempty"`
	Name string `json:"name,omitempty"`
}

// ChangeDetails carries the request fields of an update.
type ChangeDetails struct {
	Changes map[string]interface{} `json:"changes"`
}

// TransactionDetails identifies a financial event.
type TransactionDetails struct {
	TransactionCode string  `json:"transaction_code"`
	Amount          float64 `json:"amount,omitempty"`
	Type            string  `json:"type,omitempty"`
}

// MarkPaidDetails records the dedicated mark-paid transition.
type MarkPaidDetails struct {
	Action          string `json:"action"`
	TransactionCode string `json:"transaction_code"`
}

// AbsenceDetails identifies an attendance record. Date carries the
// day portion only.
type AbsenceDetails struct {
	MemberID string `json:"member_id"`
	Date     string `json:"date"`
	Type     string `json:"type"`
}

// CampaignDetails identifies a marketing campaign.
type CampaignDetails struct {
	Name   string `json:"name"`
	Type   string `json:"type,omitempty"`
	Status string `json:"status,omitempty"`
}

// CampaignLogDetails identifies a campaign activity entry.
type CampaignLogDetails struct {
	CampaignID string `json:"campaign_id"`
	Activity   string `json:"activity"`
}

func (e *Entry) marshalDetails() (datatypes.JSON, error) {
	if e.Details == nil {
		return nil, nil
	}
	raw, err := json.Marshal(e.Details)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
