package postgres

import (
	"github.com/frahmantamala/gym-management/internal/member"
	"gorm.io/gorm"
)

// MemberRepository implements member.Repository using GORM.
type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) member.Repository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) List(activeOnly bool) ([]*member.Member, error) {
	query := r.db.Preload("CreatedBy", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name")
	})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var members []*member.Member
	err := query.Order("created_at DESC").Find(&members).Error
	return members, err
}

func (r *MemberRepository) GetByID(id string) (*member.Member, error) {
	var m member.Member
	err := r.db.Preload("CreatedBy", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name")
	}).Where("id = ?", id).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// LastCodeWithPrefix returns the highest member code under the prefix, or ""
// when no member exists for it yet. Read immediately before the insert so
// the generated sequence continues from the current maximum.
func (r *MemberRepository) LastCodeWithPrefix(prefix string) (string, error) {
	var code string
	err := r.db.Model(&member.Member{}).
		Select("member_code").
		Where("member_code LIKE ?", prefix+"%").
		Order("member_code DESC").
		Limit(1).
		Scan(&code).Error
	if err != nil {
		return "", err
	}
	return code, nil
}

func (r *MemberRepository) Create(tx *gorm.DB, m *member.Member) error {
	return tx.Create(m).Error
}

func (r *MemberRepository) Update(tx *gorm.DB, id string, updates map[string]interface{}) error {
	return tx.Model(&member.Member{}).Where("id = ?", id).Updates(updates).Error
}

func (r *MemberRepository) Delete(tx *gorm.DB, id string) error {
	return tx.Where("id = ?", id).Delete(&member.Member{}).Error
}
