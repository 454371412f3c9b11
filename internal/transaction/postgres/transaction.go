package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/frahmantamala/gym-management/internal/transaction"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) List(ctx context.Context, memberID string) ([]transaction.Transaction, error) {
	var txs []transaction.Transaction
	query := r.db.WithContext(ctx).
		Preload("Member", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "member_code", "name")
		}).
		Preload("CreatedBy", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Order("created_at DESC")

	if memberID != "" {
		query = query.Where("member_id = ?", memberID)
	}

	if err := query.Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*transaction.Transaction, error) {
	var t transaction.Transaction
	err := r.db.WithContext(ctx).
		Preload("Member", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "member_code", "name")
		}).
		Where("id = ?", id).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepository) Create(tx *gorm.DB, t *transaction.Transaction) error {
	return tx.Create(t).Error
}

func (r *TransactionRepository) Update(tx *gorm.DB, id string, updates map[string]any) error {
	return tx.Model(&transaction.Transaction{}).Where("id = ?", id).Updates(updates).Error
}

func (r *TransactionRepository) Delete(tx *gorm.DB, id string) error {
	return tx.Where("id = ?", id).Delete(&transaction.Transaction{}).Error
}
