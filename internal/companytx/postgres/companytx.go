package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/frahmantamala/gym-management/internal/companytx"
)

type CompanyTransactionRepository struct {
	db *gorm.DB
}

func NewCompanyTransactionRepository(db *gorm.DB) *CompanyTransactionRepository {
	return &CompanyTransactionRepository{db: db}
}

func (r *CompanyTransactionRepository) List(ctx context.Context, txType string) ([]companytx.CompanyTransaction, error) {
	var txs []companytx.CompanyTransaction
	query := r.db.WithContext(ctx).
		Preload("CreatedBy", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Order("transaction_date DESC")

	if txType != "" {
		query = query.Where("type = ?", txType)
	}

	if err := query.Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

func (r *CompanyTransactionRepository) GetByID(ctx context.Context, id string) (*companytx.CompanyTransaction, error) {
	var t companytx.CompanyTransaction
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *CompanyTransactionRepository) Create(tx *gorm.DB, t *companytx.CompanyTransaction) error {
	return tx.Create(t).Error
}

func (r *CompanyTransactionRepository) Update(tx *gorm.DB, id string, updates map[string]any) error {
	return tx.Model(&companytx.CompanyTransaction{}).Where("id = ?", id).Updates(updates).Error
}

func (r *CompanyTransactionRepository) Delete(tx *gorm.DB, id string) error {
	return tx.Where("id = ?", id).Delete(&companytx.CompanyTransaction{}).Error
}
