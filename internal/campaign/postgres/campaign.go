package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/frahmantamala/gym-management/internal/campaign"
)

type CampaignRepository struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

func (r *CampaignRepository) List(ctx context.Context, status string) ([]campaign.Campaign, error) {
	var campaigns []campaign.Campaign
	query := r.db.WithContext(ctx).
		Preload("CreatedBy", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Order("created_at DESC")

	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Find(&campaigns).Error; err != nil {
		return nil, err
	}
	return campaigns, nil
}

func (r *CampaignRepository) GetByID(ctx context.Context, id string) (*campaign.Campaign, error) {
	var c campaign.Campaign
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepository) Create(tx *gorm.DB, c *campaign.Campaign) error {
	return tx.Create(c).Error
}

func (r *CampaignRepository) Update(tx *gorm.DB, id string, updates map[string]any) error {
	return tx.Model(&campaign.Campaign{}).Where("id = ?", id).Updates(updates).Error
}

func (r *CampaignRepository) Delete(tx *gorm.DB, id string) error {
	return tx.Where("id = ?", id).Delete(&campaign.Campaign{}).Error
}
