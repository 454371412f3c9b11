package audit_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/frahmantamala/gym-management/internal/audit"
	"github.com/frahmantamala/gym-management/internal/auth"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestAudit(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Audit Suite")
}

// testRecord stands in for a domain row written by the wrapped operation.
type testRecord struct {
	ID   string `gorm:"primaryKey"`
	Name string
}

func (testRecord) TableName() string {
	return "test_records"
}

var _ = Describe("Pipeline", func() {
	var (
		db       *gorm.DB
		pipeline *audit.Pipeline
		ctx      context.Context
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&auth.User{}, &audit.ActivityLog{}, &testRecord{})
		Expect(err).NotTo(HaveOccurred())

		testLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelError,
		}))
		pipeline = audit.NewPipeline(db, testLogger)
		ctx = context.Background()
	})

	countRows := func(model interface{}) int64 {
		var n int64
		Expect(db.Model(model).Count(&n).Error).NotTo(HaveOccurred())
		return n
	}

	Describe("Execute", func() {
		It("commits the primary write together with its activity log row", func() {
			err := pipeline.Execute(ctx, func(tx *gorm.DB) (*audit.Entry, error) {
				if err := tx.Create(&testRecord{ID: "rec-1", Name: "first"}).Error; err != nil {
					return nil, err
				}
				return &audit.Entry{
					UserID:   "user-1",
					Role:     auth.RoleFrontOffice,
					Action:   audit.ActionCreateMember,
					Entity:   "Member",
					EntityID: "rec-1",
					Details:  audit.RecordDetails{Code: "MEM250001", Name: "first"},
				}, nil
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(countRows(&testRecord{})).To(Equal(int64(1)))

			var logRow audit.ActivityLog
			Expect(db.First(&logRow).Error).NotTo(HaveOccurred())
			Expect(logRow.UserID).To(Equal("user-1"))
			Expect(logRow.Role).To(Equal(auth.RoleFrontOffice))
			Expect(logRow.Action).To(Equal(audit.ActionCreateMember))
			Expect(logRow.Entity).To(Equal("Member"))
			Expect(logRow.EntityID).To(Equal("rec-1"))
			Expect(logRow.ID).NotTo(BeEmpty())
			Expect(logRow.Timestamp).NotTo(BeZero())
			Expect(string(logRow.Details)).To(ContainSubstring("MEM250001"))
		})

		It("rolls back the primary write when the operation fails", func() {
			opErr := errors.New("validation failed downstream")

			err := pipeline.Execute(ctx, func(tx *gorm.DB) (*audit.Entry, error) {
				if err := tx.Create(&testRecord{ID: "rec-2", Name: "doomed"}).Error; err != nil {
					return nil, err
				}
				return nil, opErr
			})

			Expect(err).To(MatchError(opErr))
			Expect(countRows(&testRecord{})).To(BeZero())
			Expect(countRows(&audit.ActivityLog{})).To(BeZero())
		})

		It("commits without an audit row when the operation returns a nil entry", func() {
			err := pipeline.Execute(ctx, func(tx *gorm.DB) (*audit.Entry, error) {
				if err := tx.Create(&testRecord{ID: "rec-3", Name: "silent"}).Error; err != nil {
					return nil, err
				}
				return nil, nil
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(countRows(&testRecord{})).To(Equal(int64(1)))
			Expect(countRows(&audit.ActivityLog{})).To(BeZero())
		})

		It("records one row per executed mutation", func() {
			for i, id := range []string{"a", "b", "c"} {
				action := audit.ActionCreateMember
				if i > 0 {
					action = audit.ActionUpdateMember
				}
				err := pipeline.Execute(ctx, func(tx *gorm.DB) (*audit.Entry, error) {
					return &audit.Entry{
						UserID:   "user-1",
						Role:     auth.RoleOwner,
						Action:   action,
						Entity:   "Member",
						EntityID: id,
					}, nil
				})
				Expect(err).NotTo(HaveOccurred())
			}

			Expect(countRows(&audit.ActivityLog{})).To(Equal(int64(3)))
		})
	})
})
