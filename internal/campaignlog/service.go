package campaignlog

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
	List(ctx context.Context, campaignID string) ([]CampaignLog, error)
	GetByID(ctx context.Context, id string) (*CampaignLog, error)
	Create(tx *gorm.DB, l *CampaignLog) error
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

func (s *Service) ListCampaignLogs(ctx context.Context, campaignID string) ([]CampaignLog, error) {
	return s.repo.List(ctx, campaignID)
}

func (s *Service) GetCampaignLog(ctx context.Context, id string) (*CampaignLog, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.ErrCampaignLogNotFound
	}
	return l, nil
}

func (s *Service) CreateCampaignLog(ctx context.Context, session *auth.Session, dto CreateCampaignLogDTO) (*CampaignLog, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	l := &CampaignLog{
		ID:          uuid.NewString(),
		CampaignID:  dto.CampaignID,
		Activity:    dto.Activity,
		Description: dto.Description,
		Metrics:     dto.metrics(),
		LogDate:     dto.logDate(),
		CreatedByID: session.UserID,
	}

	err := s.pipeline.Execute(ctx, func(tx *gorm.DB) (*audit.Entry, error) {
		if err := s.repo.Create(tx, l); err != nil {
			return nil, err
		}
		return &audit.Entry{
			UserID:   session.UserID,
			Role:     session.Role,
			Action:   audit.ActionCreateCampaignLog,
			Entity:   "CampaignLog",
			EntityID: l.ID,
			Details: audit.CampaignLogDetails{
				CampaignID: l.CampaignID,
				Activity:   l.Activity,
			},
		}, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("campaign log created", "campaign_id", l.CampaignID, "activity", l.Activity)
	return l, nil
}

func (s *Service) UpdateCampaignLog(ctx context.Context, session *auth.Session, id string, dto UpdateCampaignLogDTO) (*CampaignLog, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.ErrCampaignLogNotFound
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
			Action:   audit.ActionUpdateCampaignLog,
			Entity:   "CampaignLog",
			EntityID: id,
			Details:  audit.ChangeDetails{Changes: updates},
		}, nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetCampaignLog(ctx, id)
}

func (s *Service) DeleteCampaignLog(ctx context.Context, session *auth.Session, id string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return internal.ErrCampaignLogNotFound
	}

	err = s.pipeline.Execute(ctx, func(tx *gorm.DB) (*audit.Entry, error) {
		if err := s.repo.Delete(tx, id); err != nil {
			return nil, err
		}
		return &audit.Entry{
			UserID:   session.UserID,
			Role:     session.Role,
			Action:   audit.ActionDeleteCampaignLog,
			Entity:   "CampaignLog",
			EntityID: id,
			Details: audit.CampaignLogDetails{
				CampaignID: existing.CampaignID,
				Activity:   existing.Activity,
			},
		}, nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("campaign log deleted", "campaign_id", existing.CampaignID)
	return nil
}
