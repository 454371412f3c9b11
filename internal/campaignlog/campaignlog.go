package campaignlog

import (
	"time"

	"gorm.io/datatypes"

	"github.com/frahmantamala/gym-management/internal/auth"
	"github.com/frahmantamala/gym-management/internal/campaign"
)

// CampaignLog is a dated activity entry under a campaign. Metrics holds
// free-form counters (reach, engagement, conversions) as JSON.
type CampaignLog struct {
	ID          string         `json:"id" gorm:"primaryKey"`
	CampaignID  string         `json:"campaign_id" gorm:"column:campaign_id;not null;index"`
	Activity    string         `json:"activity" gorm:"not null"`
	Description *string        `json:"description,omitempty"`
	Metrics     datatypes.JSON `json:"metrics,omitempty"`
	LogDate     time.Time      `json:"log_date" gorm:"column:log_date;not null"`
	CreatedByID string         `json:"created_by_id" gorm:"column:created_by_id"`
	CreatedAt   time.Time      `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time      `json:"updated_at" gorm:"column:updated_at"`

	Campaign  *campaign.Campaign `json:"campaign,omitempty" gorm:"foreignKey:CampaignID"`
	CreatedBy *auth.User         `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
}

func (CampaignLog) TableName() string {
	return "campaign_logs"
}
