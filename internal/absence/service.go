package absence

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/frahmantamala/gym-management/internal"
	"github.com/frahmantamala/gym-management/internal/audit"
	"github.com/frahmantamala/gym-management/internal/auth"
)

type Repository interface {
	List(ctx context.Context, memberID string) ([]Absence, error)
	GetByID(ctx context.Context, id string) (*Absence, error)
	Create(tx *gorm.DB, a *Absence) error
	Update(tx *gorm.DB, id string, updates map[string]any) error
	Delete(tx *gorm.DB, id string) error
}

type Service struct {
	repo     Repository
	pipeline *audit.Pipeline
	logger   *slog.Logger
}

func NewService(repo Repository, pipeline *audit.Pipeline, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		pipeline: pipeline,
		logger:   logger,
	}
}

func (s *Service) ListAbsences(ctx context.Context, memberID string) ([]Absence, error) {
	return s.repo.List(ctx, memberID)
}

func (s *Service) GetAbsence(ctx context.Context, id string) (*Absence, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.ErrAbsenceNotFound
	}
	return a, nil
}

func (s *Service) CreateAbsence(ctx context.Context, session *auth.Session, dto CreateAbsenceDTO) (*Absence, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	a := &Absence{
		ID:          uuid.NewString(),
		MemberID:    dto.MemberID,
		Date:        dto.date(),
		Type:        dto.Type,
		Reason:      dto.Reason,
		CreatedByID: session.UserID,
	}

	err := s.pipeline.Execute(ctx, func(tx *gorm.DB) (*audit.Entry, error) {
		if err := s.repo.Create(tx, a); err != nil {
			return nil, err
		}
		return &audit.Entry{
			UserID:   session.UserID,
			Role:     session.Role,
			Action:   audit.ActionCreateAbsence,
			Entity:   "MemberAbsence",
			EntityID: a.ID,
			Details: audit.AbsenceDetails{
				MemberID: a.MemberID,
				Date:     a.Date.Format("2006-01-02"),
				Type:     a.Type,
			},
		}, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("absence recorded", "member_id", a.MemberID, "type", a.Type)
	return a, nil
}

func (s *Service) UpdateAbsence(ctx context.Context, session *auth.Session, id string, dto UpdateAbsenceDTO) (*Absence, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.ErrAbsenceNotFound
	}

	updates := dto.updates()
	if len(updates) == 0 {
		return existing, nil
	}
	updates["updated_at"] = time.Now()

	err = s.pipeline.Execute(ctx, func(tx *gorm.DB) (*audit.Entry, error) {
		if err := s.repo.Update(tx, id, updates); err != nil {
			return nil, err
		}
		return &audit.Entry{
			UserID:   session.UserID,
			Role:     session.Role,
			Action:   audit.ActionUpdateAbsence,
			Entity:   "MemberAbsence",
			EntityID: id,
			Details:  audit.ChangeDetails{Changes: updates},
		}, nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetAbsence(ctx, id)
}

func (s *Service) DeleteAbsence(ctx context.Context, session *auth.Session, id string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return internal.ErrAbsenceNotFound
	}

	err = s.pipeline.Execute(ctx, func(tx *gorm.DB) (*audit.Entry, error) {
		if err := s.repo.Delete(tx, id); err != nil {
			return nil, err
		}
		return &audit.Entry{
			UserID:   session.UserID,
			Role:     session.Role,
			Action:   audit.ActionDeleteAbsence,
			Entity:   "MemberAbsence",
			EntityID: id,
			Details: audit.AbsenceDetails{
				MemberID: existing.MemberID,
				Date:     existing.Date.Format("2006-01-02"),
				Type:     existing.Type,
			},
		}, nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("absence deleted", "member_id", existing.MemberID)
	return nil
}
