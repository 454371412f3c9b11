package transaction_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/frahmantamala/gym-management/internal"
	"github.com/frahmantamala/gym-management/internal/audit"
	"github.com/frahmantamala/gym-management/internal/auth"
	"github.com/frahmantamala/gym-management/internal/core/codegen"
	"github.com/frahmantamala/gym-management/internal/transaction"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestTransactionService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Transaction Service Suite")
}

type MockRepository struct {
	transactions map[string]*transaction.Transaction
	shouldFail   bool
	failError    error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{transactions: make(map[string]*transaction.Transaction)}
}

func (m *MockRepository) SetShouldFail(shouldFail bool, err error) {
	m.shouldFail = shouldFail
	m.failError = err
}

func (m *MockRepository) List(_ context.Context, memberID string) ([]transaction.Transaction, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var out []transaction.Transaction
	for _, t := range m.transactions {
		if memberID != "" && t.MemberID != memberID {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (m *MockRepository) GetByID(_ context.Context, id string) (*transaction.Transaction, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	t, ok := m.transactions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *t
	return &copied, nil
}

func (m *MockRepository) Create(_ *gorm.DB, t *transaction.Transaction) error {
	if m.shouldFail {
		return m.failError
	}
	m.transactions[t.ID] = t
	return nil
}

func (m *MockRepository) Update(_ *gorm.DB, id string, updates map[string]any) error {
	if m.shouldFail {
		return m.failError
	}
	t, ok := m.transactions[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if status, ok := updates["status"].(string); ok {
		t.Status = status
	}
	if paid, ok := updates["paid_date"].(time.Time); ok {
		t.PaidDate = &paid
	}
	if amount, ok := updates["amount"].(float64); ok {
		t.Amount = amount
	}
	return nil
}

func (m *MockRepository) Delete(_ *gorm.DB, id string) error {
	if m.shouldFail {
		return m.failError
	}
	delete(m.transactions, id)
	return nil
}

var _ = Describe("Transaction Service", func() {
	var (
		db      *gorm.DB
		repo    *MockRepository
		service *transaction.Service
		session *auth.Session
		ctx     context.Context
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&auth.User{}, &audit.ActivityLog{})).To(Succeed())

		testLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelError,
		}))
		repo = NewMockRepository()
		pipeline := audit.NewPipeline(db, testLogger)
		service = transaction.NewService(repo, pipeline, codegen.New(), testLogger)
		session = &auth.Session{UserID: "staff-1", Role: auth.RoleFrontOffice}
		ctx = context.Background()
	})

	activityLogs := func() []audit.ActivityLog {
		var logs []audit.ActivityLog
		Expect(db.Order("timestamp").Find(&logs).Error).NotTo(HaveOccurred())
		return logs
	}

	validCreate := func() transaction.CreateTransactionDTO {
		return transaction.CreateTransactionDTO{
			MemberID: "member-1",
			Type:     transaction.TypeMembershipFee,
			Amount:   50,
			DueDate:  "2025-07-01",
		}
	}

	Describe("CreateTransaction", func() {
		It("creates a pending transaction with a TRX code", func() {
			t, err := service.CreateTransaction(ctx, session, validCreate())

			Expect(err).NotTo(HaveOccurred())
			Expect(t.TransactionCode).To(HavePrefix("TRX"))
			Expect(t.Status).To(Equal(transaction.StatusPending))
			Expect(t.CreatedByID).To(Equal("staff-1"))

			logs := activityLogs()
			Expect(logs).To(HaveLen(1))
			Expect(logs[0].Action).To(Equal(audit.ActionCreateTransaction))
			Expect(logs[0].Entity).To(Equal("MemberTransaction"))
		})

		It("honors an explicit status", func() {
			dto := validCreate()
			status := transaction.StatusCompleted
			paid := "2025-06-20"
			dto.Status = &status
			dto.PaidDate = &paid

			t, err := service.CreateTransaction(ctx, session, dto)

			Expect(err).NotTo(HaveOccurred())
			Expect(t.Status).To(Equal(transaction.StatusCompleted))
			Expect(t.PaidDate).NotTo(BeNil())
		})

		It("rejects a payload without member, type, amount or due date", func() {
			_, err := service.CreateTransaction(ctx, session, transaction.CreateTransactionDTO{})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
			details, ok := appErr.Details.(map[string]any)
			Expect(ok).To(BeTrue())
			Expect(details).To(HaveKey("member_id"))
			Expect(details).To(HaveKey("type"))
			Expect(details).To(HaveKey("amount"))
			Expect(details).To(HaveKey("due_date"))
		})

		It("rejects an unknown type", func() {
			dto := validCreate()
			dto.Type = "LOCKER_RENTAL"

			_, err := service.CreateTransaction(ctx, session, dto)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})
	})

	Describe("MarkPaid", func() {
		It("completes a pending transaction and stamps the paid date", func() {
			created, err := service.CreateTransaction(ctx, session, validCreate())
			Expect(err).NotTo(HaveOccurred())

			t, err := service.MarkPaid(ctx, session, created.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(t.Status).To(Equal(transaction.StatusCompleted))
			Expect(t.PaidDate).NotTo(BeNil())

			logs := activityLogs()
			Expect(logs).To(HaveLen(2))
			Expect(logs[1].Action).To(Equal(audit.ActionUpdateTransaction))
			Expect(string(logs[1].Details)).To(ContainSubstring("marked_as_paid"))
		})

		It("completes an overdue transaction", func() {
			repo.transactions["t-1"] = &transaction.Transaction{
				ID:              "t-1",
				TransactionCode: "TRX12345678001",
				MemberID:        "member-1",
				Type:            transaction.TypeMembershipFee,
				Amount:          50,
				Status:          transaction.StatusOverdue,
			}

			t, err := service.MarkPaid(ctx, session, "t-1")

			Expect(err).NotTo(HaveOccurred())
			Expect(t.Status).To(Equal(transaction.StatusCompleted))
		})

		It("is a no-op on an already completed transaction", func() {
			paidAt := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
			repo.transactions["t-1"] = &transaction.Transaction{
				ID:       "t-1",
				Status:   transaction.StatusCompleted,
				PaidDate: &paidAt,
			}

			t, err := service.MarkPaid(ctx, session, "t-1")

			Expect(err).NotTo(HaveOccurred())
			Expect(t.Status).To(Equal(transaction.StatusCompleted))
			Expect(t.PaidDate).To(Equal(&paidAt))
			Expect(activityLogs()).To(BeEmpty())
		})

		It("refuses to pay a cancelled transaction", func() {
			repo.transactions["t-1"] = &transaction.Transaction{
				ID:     "t-1",
				Status: transaction.StatusCancelled,
			}

			_, err := service.MarkPaid(ctx, session, "t-1")

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
			Expect(activityLogs()).To(BeEmpty())
		})

		It("returns not found for an unknown id", func() {
			_, err := service.MarkPaid(ctx, session, "nope")
			Expect(err).To(Equal(internal.ErrTransactionNotFound))
		})
	})

	Describe("UpdateTransaction", func() {
		It("applies the update and records the changed fields", func() {
			created, err := service.CreateTransaction(ctx, session, validCreate())
			Expect(err).NotTo(HaveOccurred())

			amount := 75.0
			t, err := service.UpdateTransaction(ctx, session, created.ID, transaction.UpdateTransactionDTO{Amount: &amount})

			Expect(err).NotTo(HaveOccurred())
			Expect(t.Amount).To(Equal(75.0))

			logs := activityLogs()
			Expect(logs).To(HaveLen(2))
			Expect(logs[1].Action).To(Equal(audit.ActionUpdateTransaction))
		})

		It("returns the transaction unchanged when the payload is empty", func() {
			created, err := service.CreateTransaction(ctx, session, validCreate())
			Expect(err).NotTo(HaveOccurred())

			t, err := service.UpdateTransaction(ctx, session, created.ID, transaction.UpdateTransactionDTO{})

			Expect(err).NotTo(HaveOccurred())
			Expect(t.Amount).To(Equal(50.0))
			Expect(activityLogs()).To(HaveLen(1))
		})

		It("rejects a non-positive amount", func() {
			amount := -1.0
			_, err := service.UpdateTransaction(ctx, session, "t-1", transaction.UpdateTransactionDTO{Amount: &amount})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})
	})

	Describe("DeleteTransaction", func() {
		It("removes the transaction and records its code", func() {
			created, err := service.CreateTransaction(ctx, session, validCreate())
			Expect(err).NotTo(HaveOccurred())

			Expect(service.DeleteTransaction(ctx, session, created.ID)).To(Succeed())

			_, err = service.GetTransaction(ctx, created.ID)
			Expect(err).To(Equal(internal.ErrTransactionNotFound))

			logs := activityLogs()
			Expect(logs).To(HaveLen(2))
			Expect(logs[1].Action).To(Equal(audit.ActionDeleteTransaction))
			Expect(string(logs[1].Details)).To(ContainSubstring(created.TransactionCode))
		})

		It("returns not found for an unknown id", func() {
			Expect(service.DeleteTransaction(ctx, session, "nope")).To(Equal(internal.ErrTransactionNotFound))
		})
	})

	Describe("ListTransactions", func() {
		It("filters by member when requested", func() {
			dto := validCreate()
			_, err := service.CreateTransaction(ctx, session, dto)
			Expect(err).NotTo(HaveOccurred())

			dto.MemberID = "member-2"
			_, err = service.CreateTransaction(ctx, session, dto)
			Expect(err).NotTo(HaveOccurred())

			all, err := service.ListTransactions(ctx, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(2))

			filtered, err := service.ListTransactions(ctx, "member-2")
			Expect(err).NotTo(HaveOccurred())
			Expect(filtered).To(HaveLen(1))
			Expect(filtered[0].MemberID).To(Equal("member-2"))
		})
	})
})
