package campaign

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
	List(ctx context.Context, status string) ([]Campaign, error)
	GetByID(ctx context.Context, id string) (*Campaign, error)
	Create(tx *gorm.DB, c *Campaign) error
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

func (s *Service) ListCampaigns(ctx context.Context, status string) ([]Campaign, error) {
	return s.repo.List(ctx, status)
}

func (s *Service) GetCampaign(ctx context.Context, id string) (*Campaign, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.ErrCampaignNotFound
	}
	return c, nil
}

func (s *Service) CreateCampaign(ctx context.Context, session *auth.Session, dto CreateCampaignDTO) (*Campaign, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	c := &Campaign{
		ID:             uuid.NewString(),
		Name:           dto.Name,
		Description:    dto.Description,
		Type:           dto.Type,
		Status:         dto.status(),
		Budget:         dto.Budget,
		StartDate:      dto.startDate(),
		EndDate:        dto.endDate(),
		TargetAudience: dto.TargetAudience,
		Goals:          dto.Goals,
		CreatedByID:    session.UserID,
	}

	err := s.pipeline.Execute(ctx, func(tx *gorm.DB) (*audit.Entry, error) {
		if err := s.repo.Create(tx, c); err != nil {
			return nil, err
		}
		return &audit.Entry{
			UserID:   session.UserID,
			Role:     session.Role,
			Action:   audit.ActionCreateCampaign,
			Entity:   "Campaign",
			EntityID: c.ID,
			Details: audit.CampaignDetails{
				Name:   c.Name,
				Type:   c.Type,
				Status: c.Status,
			},
		}, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("campaign created", "name", c.Name, "type", c.Type)
	return c, nil
}

func (s *Service) UpdateCampaign(ctx context.Context, session *auth.Session, id string, dto UpdateCampaignDTO) (*Campaign, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.ErrCampaignNotFound
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
			Action:   audit.ActionUpdateCampaign,
			Entity:   "Campaign",
			EntityID: id,
			Details:  audit.ChangeDetails{Changes: updates},
		}, nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetCampaign(ctx, id)
}

func (s *Service) DeleteCampaign(ctx context.Context, session *auth.Session, id string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return internal.ErrCampaignNotFound
	}

	err = s.pipeline.Execute(ctx, func(tx *gorm.DB) (*audit.Entry, error) {
		if err := s.repo.Delete(tx, id); err != nil {
			return nil, err
		}
		return &audit.Entry{
			UserID:   session.UserID,
			Role:     session.Role,
			Action:   audit.ActionDeleteCampaign,
			Entity:   "Campaign",
			EntityID: id,
			Details: audit.CampaignDetails{
				Name:   existing.Name,
				Type:   existing.Type,
				Status: existing.Status,
			},
		}, nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("campaign deleted", "name", existing.Name)
	return nil
}
