package member

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/frahmantamala/gym-management/internal"
	"github.com/frahmantamala/gym-management/internal/audit"
	"github.com/frahmantamala/gym-management/internal/auth"
	"github.com/frahmantamala/gym-management/internal/core/codegen"
)

// Repository defines data access for members. Write methods take the
// transaction handle so the audit pipeline can commit member and audit row
// together.
type Repository interface {
	List(activeOnly bool) ([]*Member, error)
	GetByID(id string) (*Member, error)
	LastCodeWithPrefix(prefix string) (string, error)
	Create(tx *gorm.DB, m *Member) error
	Update(tx *gorm.DB, id string, updates map[string]interface{}) error
	Delete(tx *gorm.DB, id string) error
}

type Service struct {
	repo     Repository
	pipeline *audit.Pipeline
	codes    *codegen.Generator
	logger   *slog.Logger
}

func NewService(repo Repository, pipeline *audit.Pipeline, codes *codegen.Generator, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		pipeline: pipeline,
		codes:    codes,
		logger:   logger,
	}
}

func (s *Service) ListMembers(activeOnly bool) ([]*Member, error) {
	members, err := s.repo.List(activeOnly)
	if err != nil {
		s.logger.Error("failed to list members", "error", err)
		return nil, internal.NewInternalError("failed to list members", err)
	}
	return members, nil
}

func (s *Service) GetMember(id string) (*Member, error) {
	m, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrMemberNotFound
	}
	return m, nil
}

// CreateMember registers a member with a generated member code. Code
// generation reads the current maximum and increments, so a concurrent
// create can collide on the unique constraint; one retry regenerates before
// giving up with a conflict.
func (s *Service) CreateMember(ctx context.Context, actor *auth.Session, dto CreateMemberDTO) (*Member, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	m, err := s.createOnce(ctx, actor, dto)
	if codegen.IsDuplicate(err) {
		s.logger.Warn("member code collision, regenerating", "actor", actor.UserID)
		m, err = s.createOnce(ctx, actor, dto)
		if codegen.IsDuplicate(err) {
			return nil, internal.ErrDuplicateCode
		}
	}
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to create member", "error", err, "actor", actor.UserID)
		return nil, internal.NewInternalError("failed to create member", err)
	}

	s.logger.Info("member created",
		"member_id", m.ID,
		"member_code", m.MemberCode,
		"actor", actor.UserID)

	return m, nil
}

func (s *Service) createOnce(ctx context.Context, actor *auth.Session, dto CreateMemberDTO) (*Member, error) {
	last, err := s.repo.LastCodeWithPrefix(s.codes.MemberCodePrefix())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	m := &Member{
		ID:          uuid.NewString(),
		MemberCode:  s.codes.NextMemberCode(last),
		Name:        dto.Name,
		Email:       dto.Email,
		Phone:       dto.Phone,
		Address:     dto.Address,
		BirthDate:   dto.birthDate(),
		Gender:      dto.Gender,
		IsActive:    true,
		CreatedByID: actor.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.pipeline.Execute(ctx, func(tx *gorm.DB) (*audit.Entry, error) {
		if err := s.repo.Create(tx, m); err != nil {
			return nil, err
		}
		return &audit.Entry{
			UserID:   actor.UserID,
			Role:     actor.Role,
			Action:   audit.ActionCreateMember,
			Entity:   "Member",
			EntityID: m.ID,
			Details:  audit.RecordDetails{Code: m.MemberCode, Name: m.Name},
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) UpdateMember(ctx context.Context, actor *auth.Session, id string, dto UpdateMemberDTO) (*Member, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByID(id); err != nil {
		return nil, internal.ErrMemberNotFound
	}

	updates := dto.updates()
	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
		err := s.pipeline.Execute(ctx, func(tx *gorm.DB) (*audit.Entry, error) {
			if err := s.repo.Update(tx, id, updates); err != nil {
				return nil, err
			}
			return &audit.Entry{
				UserID:   actor.UserID,
				Role:     actor.Role,
				Action:   audit.ActionUpdateMember,
				Entity:   "Member",
				EntityID: id,
				Details:  audit.ChangeDetails{Changes: updates},
			}, nil
		})
		if err != nil {
			s.logger.Error("failed to update member", "error", err, "member_id", id)
			return nil, internal.NewInternalError("failed to update member", err)
		}
	}

	return s.GetMember(id)
}

func (s *Service) DeleteMember(ctx context.Context, actor *auth.Session, id string) error {
	m, err := s.repo.GetByID(id)
	if err != nil {
		return internal.ErrMemberNotFound
	}

	err = s.pipeline.Execute(ctx, func(tx *gorm.DB) (*audit.Entry, error) {
		if err := s.repo.Delete(tx, id); err != nil {
			return nil, err
		}
		return &audit.Entry{
			UserID:   actor.UserID,
			Role:     actor.Role,
			Action:   audit.ActionDeleteMember,
			Entity:   "Member",
			EntityID: id,
			Details:  audit.RecordDetails{Code: m.MemberCode, Name: m.Name},
		}, nil
	})
	if err != nil {
		s.logger.Error("failed to delete member", "error", err, "member_id", id)
		return internal.NewInternalError("failed to delete member", err)
	}

	s.logger.Info("member deleted", "member_id", id, "member_code", m.MemberCode, "actor", actor.UserID)
	return nil
}
