package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/frahmantamala/gym-management/internal/absence"
)

type AbsenceRepository struct {
	db *gorm.DB
}

func NewAbsenceRepository(db *gorm.DB) *AbsenceRepository {
	return &AbsenceRepository{db: db}
}

func (r *AbsenceRepository) List(ctx context.Context, memberID string) ([]absence.Absence, error) {
	var absences []absence.Absence
	query := r.db.WithContext(ctx).
		Preload("Member", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "member_code", "name")
		}).
		Order("date DESC")

	if memberID != "" {
		query = query.Where("member_id = ?", memberID)
	}

	if err := query.Find(&absences).Error; err != nil {
		return nil, err
	}
	return absences, nil
}

func (r *AbsenceRepository) GetByID(ctx context.Context, id string) (*absence.Absence, error) {
	var a absence.Absence
	err := r.db.WithContext(ctx).
		Preload("Member", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "member_code", "name")
		}).
		Where("id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AbsenceRepository) Create(tx *gorm.DB, a *absence.Absence) error {
	return tx.Create(a).Error
}

func (r *AbsenceRepository) Update(tx *gorm.DB, id string, updates map[string]any) error {
	return tx.Model(&absence.Absence{}).Where("id = ?", id).Updates(updates).Error
}

func (r *AbsenceRepository) Delete(tx *gorm.DB, id string) error {
	return tx.Where("id = ?", id).Delete(&absence.Absence{}).Error
}
