package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/frahmantamala/gym-management/internal/campaignlog"
)

type CampaignLogRepository struct {
	db *gorm.DB
}

func NewCampaignLogRepository(db *gorm.DB) *CampaignLogRepository {
	return &CampaignLogRepository{db: db}
}

func (r *CampaignLogRepository) List(ctx context.Context, campaignID string) ([]campaignlog.CampaignLog, error) {
	var logs []campaignlog.CampaignLog
	query := r.db.WithContext(ctx).
		Preload("Campaign", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "type", "status")
		}).
		Order("log_date DESC")

	if campaignID != "" {
		query = query.Where("campaign_id = ?", campaignID)
	}

	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *CampaignLogRepository) GetByID(ctx context.Context, id string) (*campaignlog.CampaignLog, error) {
	var l campaignlog.CampaignLog
	err := r.db.WithContext(ctx).
		Preload("Campaign", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "type", "status")
		}).
		Where("id = ?", id).
		First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *CampaignLogRepository) Create(tx *gorm.DB, l *campaignlog.CampaignLog) error {
	return tx.Create(l).Error
}

func (r *CampaignLogRepository) Update(tx *gorm.DB, id string, updates map[string]any) error {
	return tx.Model(&campaignlog.CampaignLog{}).Where("id = ?", id).Updates(updates).Error
}

func (r *CampaignLogRepository) Delete(tx *gorm.DB, id string) error {
	return tx.Where("id = ?", id).Delete(&campaignlog.CampaignLog{}).Error
}
