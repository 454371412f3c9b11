package campaignlog_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/frahmantamala/gym-management/internal"
	"github.com/frahmantamala/gym-management/internal/audit"
	"github.com/frahmantamala/gym-management/internal/auth"
	"github.com/frahmantamala/gym-management/internal/campaignlog"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestCampaignLogService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Campaign Log Service Suite")
}

type MockRepository struct {
	logs       map[string]*campaignlog.CampaignLog
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{logs: make(map[string]*campaignlog.CampaignLog)}
}

func (m *MockRepository) SetShouldFail(shouldFail bool, err error) {
	m.shouldFail = shouldFail
	m.failError = err
}

func (m *MockRepository) List(_ context.Context, campaignID string) ([]campaignlog.CampaignLog, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var out []campaignlog.CampaignLog
	for _, l := range m.logs {
		if campaignID != "" && l.CampaignID != campaignID {
			continue
		}
		out = append(out, *l)
	}
	return out, nil
}

func (m *MockRepository) GetByID(_ context.Context, id string) (*campaignlog.CampaignLog, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	l, ok := m.logs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *l
	return &copied, nil
}

func (m *MockRepository) Create(_ *gorm.DB, l *campaignlog.CampaignLog) error {
	if m.shouldFail {
		return m.failError
	}
	m.logs[l.ID] = l
	return nil
}

func (m *MockRepository) Update(_ *gorm.DB, id string, updates map[string]any) error {
	if m.shouldFail {
		return m.failError
	}
	l, ok := m.logs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if activity, ok := updates["activity"].(string); ok {
		l.Activity = activity
	}
	return nil
}

func (m *MockRepository) Delete(_ *gorm.DB, id string) error {
	if m.shouldFail {
		return m.failError
	}
	delete(m.logs, id)
	return nil
}

var _ = Describe("Campaign Log Service", func() {
	var (
		db      *gorm.DB
		repo    *MockRepository
		service *campaignlog.Service
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
		service = campaignlog.NewService(repo, pipeline, testLogger)
		session = &auth.Session{UserID: "mkt-1", Role: auth.RoleMarketing}
		ctx = context.Background()
	})

	activityLogs := func() []audit.ActivityLog {
		var logs []audit.ActivityLog
		Expect(db.Order("timestamp").Find(&logs).Error).NotTo(HaveOccurred())
		return logs
	}

	Describe("CreateCampaignLog", func() {
		It("records the entry with its metrics blob", func() {
			l, err := service.CreateCampaignLog(ctx, session, campaignlog.CreateCampaignLogDTO{
				CampaignID: "c-1",
				Activity:   "Campaign Launch",
				Metrics:    json.RawMessage(`{"reach": 500, "engagement": 50}`),
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(l.CampaignID).To(Equal("c-1"))
			Expect(l.LogDate).NotTo(BeZero())
			Expect(string(l.Metrics)).To(ContainSubstring("500"))

			logs := activityLogs()
			Expect(logs).To(HaveLen(1))
			Expect(logs[0].Action).To(BeEquivalentTo("CREATE_MK_LOG"))
		})

		It("rejects invalid metrics JSON", func() {
			_, err := service.CreateCampaignLog(ctx, session, campaignlog.CreateCampaignLogDTO{
				CampaignID: "c-1",
				Activity:   "Launch",
				Metrics:    json.RawMessage(`{reach: 500}`),
			})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("rejects a payload without campaign or activity", func() {
			_, err := service.CreateCampaignLog(ctx, session, campaignlog.CreateCampaignLogDTO{})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			details, isMap := appErr.Details.(map[string]any)
			Expect(isMap).To(BeTrue())
			Expect(details).To(HaveKey("campaign_id"))
			Expect(details).To(HaveKey("activity"))
		})
	})

	Describe("UpdateCampaignLog", func() {
		It("applies the change and records UPDATE_MK_LOG", func() {
			created, err := service.CreateCampaignLog(ctx, session, campaignlog.CreateCampaignLogDTO{
				CampaignID: "c-1",
				Activity:   "Campaign Launch",
			})
			Expect(err).NotTo(HaveOccurred())

			activity := "Mid-campaign Review"
			l, err := service.UpdateCampaignLog(ctx, session, created.ID, campaignlog.UpdateCampaignLogDTO{Activity: &activity})

			Expect(err).NotTo(HaveOccurred())
			Expect(l.Activity).To(Equal("Mid-campaign Review"))

			logs := activityLogs()
			Expect(logs).To(HaveLen(2))
			Expect(logs[1].Action).To(Equal(audit.ActionUpdateCampaignLog))
		})

		It("returns not found for an unknown id", func() {
			activity := "Anything"
			_, err := service.UpdateCampaignLog(ctx, session, "nope", campaignlog.UpdateCampaignLogDTO{Activity: &activity})
			Expect(err).To(Equal(internal.ErrCampaignLogNotFound))
		})
	})

	Describe("DeleteCampaignLog", func() {
		It("removes the entry and records DELETE_MK_LOG", func() {
			created, err := service.CreateCampaignLog(ctx, session, campaignlog.CreateCampaignLogDTO{
				CampaignID: "c-1",
				Activity:   "Campaign Launch",
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.DeleteCampaignLog(ctx, session, created.ID)).To(Succeed())

			logs := activityLogs()
			Expect(logs).To(HaveLen(2))
			Expect(logs[1].Action).To(Equal(audit.ActionDeleteCampaignLog))
		})
	})

	Describe("ListCampaignLogs", func() {
		It("filters by campaign when requested", func() {
			for _, campaignID := range []string{"c-1", "c-1", "c-2"} {
				_, err := service.CreateCampaignLog(ctx, session, campaignlog.CreateCampaignLogDTO{
					CampaignID: campaignID,
					Activity:   "Post",
				})
				Expect(err).NotTo(HaveOccurred())
			}

			filtered, err := service.ListCampaignLogs(ctx, "c-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(filtered).To(HaveLen(2))
		})
	})
})
