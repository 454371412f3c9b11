package transaction

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
	List(ctx context.Context, memberID string) ([]Transaction, error)
	GetByID(ctx context.Context, id string) (*Transaction, error)
	Create(tx *gorm.DB, t *Transaction) error
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

func (s *Service) ListTransactions(ctx context.Context, memberID string) ([]Transaction, error) {
	return s.repo.List(ctx, memberID)
}

func (s *Service) GetTransaction(ctx context.Context, id string) (*Transaction, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.ErrTransactionNotFound
	}
	return t, nil
}

func (s *Service) CreateTransaction(ctx context.Context, session *auth.Session, dto CreateTransactionDTO) (*Transaction, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	t, err := s.createOnce(ctx, session, dto)
	if err != nil && codegen.IsDuplicate(err) {
		s.logger.Warn("transaction code collision, regenerating", "member_id", dto.MemberID)
		t, err = s.createOnce(ctx, session, dto)
		if err != nil && codegen.IsDuplicate(err) {
			return nil, internal.ErrDuplicateCode
		}
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("transaction created", "transaction_code", t.TransactionCode, "member_id", t.MemberID)
	return t, nil
}

func (s *Service) createOnce(ctx context.Context, session *auth.Session, dto CreateTransactionDTO) (*Transaction, error) {
	t := &Transaction{
		ID:              uuid.NewString(),
		TransactionCode: s.codes.TransactionCode(),
		MemberID:        dto.MemberID,
		Type:            dto.Type,
		Amount:          dto.Amount,
		Description:     dto.Description,
		PaymentMethod:   dto.PaymentMethod,
		Status:          dto.status(),
		DueDate:         dto.dueDate(),
		PaidDate:        dto.paidDate(),
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
			Entity:   "MemberTransaction",
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

func (s *Service) UpdateTransaction(ctx context.Context, session *auth.Session, id string, dto UpdateTransactionDTO) (*Transaction, error) {
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
			Entity:   "MemberTransaction",
			EntityID: id,
			Details:  audit.ChangeDetails{Changes: updates},
		}, nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetTransaction(ctx, id)
}

// MarkPaid transitions a pending or overdue transaction to COMPLETED and
// stamps the payment date. Calling it on an already completed transaction
// is a no-op: the original paid date is preserved.
func (s *Service) MarkPaid(ctx context.Context, session *auth.Session, id string) (*Transaction, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.ErrTransactionNotFound
	}

	if existing.Status == StatusCompleted {
		return existing, nil
	}
	if existing.Status == StatusCancelled {
		return nil, internal.NewValidationError("cancelled transactions cannot be marked as paid", internal.ErrCodeInvalidStatus)
	}

	now := time.Now()
	updates := map[string]any{
		"status":     StatusCompleted,
		"paid_date":  now,
		"updated_at": now,
	}

	err = s.pipeline.Execute(ctx, func(tx *gorm.DB) (*audit.Entry, error) {
		if err := s.repo.Update(tx, id, updates); err != nil {
			return nil, err
		}
		return &audit.Entry{
			UserID:   session.UserID,
			Role:     session.Role,
			Action:   audit.ActionUpdateTransaction,
			Entity:   "MemberTransaction",
			EntityID: id,
			Details: audit.MarkPaidDetails{
				Action:          "marked_as_paid",
				TransactionCode: existing.TransactionCode,
			},
		}, nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetTransaction(ctx, id)
}

func (s *Service) DeleteTransaction(ctx context.Context, session *auth.Session, id string) error {
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
			Entity:   "MemberTransaction",
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

	s.logger.Info("transaction deleted", "transaction_code", existing.TransactionCode)
	return nil
}
