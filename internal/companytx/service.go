package companytx

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

type Repository interface {
	List(ctx context.Context, txType string) ([]CompanyTransaction, error)
	GetByID(ctx context.Context, id string) (*CompanyTransaction, error)
	Create(tx *gorm.DB, t *CompanyTransaction) error
	Update(tx *gorm.DB, id string, updates map[string]any) error
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

func (s *Service) ListCompanyTransactions(ctx context.Context, txType string) ([]CompanyTransaction, error) {
	return s.repo.List(ctx, txType)
}

func (s *Service) GetCompanyTransaction(ctx context.Context, id string) (*CompanyTransaction, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.ErrTransactionNotFound
	}
	return t, nil
}

func (s *Service) CreateCompanyTransaction(ctx context.Context, session *auth.Session, dto CreateCompanyTransactionDTO) (*CompanyTransaction, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	t, err := s.createOnce(ctx, session, dto)
	if err != nil && codegen.IsDuplicate(err) {
		s.logger.Warn("company transaction code collision, regenerating")
		t, err = s.createOnce(ctx, session, dto)
		if err != nil && codegen.IsDuplicate(err) {
			return nil, internal.ErrDuplicateCode
		}
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("company transaction created", "transaction_code", t.TransactionCode, "type", t.Type)
	return t, nil
}

func (s *Service) createOnce(ctx context.Context, session *auth.Session, dto CreateCompanyTransactionDTO) (*CompanyTransaction, error) {
	t := &CompanyTransaction{
		ID:              uuid.NewString(),
		TransactionCode: s.codes.CompanyTransactionCode(),
		Type:            dto.Type,
		Category:        dto.Category,
		Amount:          dto.Amount,
		Description:     dto.Description,
		Status:          dto.status(),
		TransactionDate: dto.transactionDate(),
		CreatedByID:     session.UserID,
	}

	err := s.pipeline.Execute(ctx, func(tx *gorm.DB) (*audit.Entry, error) {
		if err := s.repo.Create(tx, t); err != nil {
			return nil, err
		}
		return &audit.Entry{
			UserID:   session.UserID,
			Role:     session.Role,
			Action:   audit.ActionCreateTransaction,
			Entity:   "CompanyTransaction",
			EntityID: t.ID,
			Details: audit.TransactionDetails{
				TransactionCode: t.TransactionCode,
				Amount:          t.Amount,
				Type:            t.Type,
			},
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) UpdateCompanyTransaction(ctx context.Context, session *auth.Session, id string, dto UpdateCompanyTransactionDTO) (*CompanyTransaction, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.ErrTransactionNotFound
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
			Action:   audit.ActionUpdateTransaction,
			Entity:   "CompanyTransaction",
			EntityID: id,
			Details:  audit.ChangeDetails{Changes: updates},
		}, nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetCompanyTransaction(ctx, id)
}

func (s *Service) DeleteCompanyTransaction(ctx context.Context, session *auth.Session, id string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return internal.ErrTransactionNotFound
	}

	err = s.pipeline.Execute(ctx, func(tx *gorm.DB) (*audit.Entry, error) {
		if err := s.repo.Delete(tx, id); err != nil {
			return nil, err
		}
		return &audit.Entry{
			UserID:   session.UserID,
			Role:     session.Role,
			Action:   audit.ActionDeleteTransaction,
			Entity:   "CompanyTransaction",
			EntityID: id,
			Details: audit.TransactionDetails{
				TransactionCode: existing.TransactionCode,
				Amount:          existing.Amount,
				Type:            existing.Type,
			},
		}, nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("company transaction deleted", "transaction_code", existing.TransactionCode)
	return nil
}
