package analytics

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"time"

	"github.com/frahmantamala/gym-management/internal/analytics/postgres"
	"github.com/frahmantamala/gym-management/internal/auth"
	"github.com/frahmantamala/gym-management/internal/companytx"
)

const (
	RangeLast7Days    = "last7days"
	RangeLast30Days   = "last30days"
	RangeLast90Days   = "last90days"
	RangeLast12Months = "last12months"
)

type Repository interface {
	CountMembers(ctx context.Context) (total, active int64, err error)
	CountMembersCreated(ctx context.Context, start, end time.Time) (int64, error)
	CountMembersCreatedBefore(ctx context.Context, start, end time.Time) (int64, error)
	CountMembersCreatedUpTo(ctx context.Context, end time.Time) (int64, error)
	CountInactiveMembersUpdated(ctx context.Context, start, end time.Time) (int64, error)
	SumCompanyTransactions(ctx context.Context, txType string, start, end time.Time) (float64, error)
	SumCompanyTransactionsBefore(ctx context.Context, txType string, start, end time.Time) (float64, error)
	IncomeByCategory(ctx context.Context, start, end time.Time) ([]postgres.CategorySum, error)
	ActiveCampaignsOverlapping(ctx context.Context, start, end time.Time) ([]postgres.CampaignRow, error)
	CampaignLogMetrics(ctx context.Context, campaignID string, start, end time.Time) ([]json.RawMessage, error)
	CountCheckInsOn(ctx context.Context, dayStart time.Time) (int64, error)
	CountPendingPaymentsDueBefore(ctx context.Context, cutoff time.Time) (int64, error)
	CountActiveCampaigns(ctx context.Context, today time.Time) (int64, error)
}

type Service struct {
	repo   Repository
	now    func() time.Time
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		now:    time.Now,
		logger: logger,
	}
}

func NewServiceWithClock(repo Repository, logger *slog.Logger, now func() time.Time) *Service {
	s := NewService(repo, logger)
	if now != nil {
		s.now = now
	}
	return s
}

// DateRange resolves a range preset to an inclusive [start, end] window
// ending now. Unknown presets fall back to the last 30 days.
func DateRange(preset string, now time.Time) (start, end time.Time) {
	end = now
	switch preset {
	case RangeLast7Days:
		start = now.AddDate(0, 0, -7)
	case RangeLast90Days:
		start = now.AddDate(0, 0, -90)
	case RangeLast12Months:
		start = now.AddDate(0, -12, 0)
	default:
		start = now.AddDate(0, 0, -30)
	}
	return start, end
}

// GrowthPercent compares the current period against the previous one.
// A zero previous period reports 0 rather than infinite growth.
func GrowthPercent(current, previous float64) float64 {
	if previous <= 0 {
		return 0
	}
	return math.Round((current-previous)/previous*1000) / 10
}

func trendMonths(preset string) int {
	switch preset {
	case RangeLast12Months:
		return 12
	case RangeLast90Days:
		return 3
	default:
		return 1
	}
}

func (s *Service) Analytics(ctx context.Context, preset string) (*AnalyticsResponse, error) {
	now := s.now()
	start, end := DateRange(preset, now)
	prevStart := start.Add(-end.Sub(start))

	memberStats, err := s.memberStats(ctx, start, end, prevStart)
	if err != nil {
		return nil, err
	}

	revenueStats, err := s.revenueStats(ctx, start, end, prevStart)
	if err != nil {
		return nil, err
	}

	trends, err := s.membershipTrends(ctx, now, trendMonths(preset))
	if err != nil {
		return nil, err
	}

	breakdown, err := s.revenueBreakdown(ctx, start, end)
	if err != nil {
		return nil, err
	}

	performance, err := s.campaignPerformance(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return &AnalyticsResponse{
		MemberStats:         *memberStats,
		RevenueStats:        *revenueStats,
		MembershipTrends:    trends,
		RevenueBreakdown:    breakdown,
		CampaignPerformance: performance,
	}, nil
}

func (s *Service) memberStats(ctx context.Context, start, end, prevStart time.Time) (*MemberStats, error) {
	total, active, err := s.repo.CountMembers(ctx)
	if err != nil {
		return nil, err
	}

	newMembers, err := s.repo.CountMembersCreated(ctx, start, end)
	if err != nil {
		return nil, err
	}

	previousNew, err := s.repo.CountMembersCreatedBefore(ctx, prevStart, start)
	if err != nil {
		return nil, err
	}

	return &MemberStats{
		Total:            total,
		Active:           active,
		Inactive:         total - active,
		NewThisPeriod:    newMembers,
		GrowthPercentage: GrowthPercent(float64(newMembers), float64(previousNew)),
	}, nil
}

func (s *Service) revenueStats(ctx context.Context, start, end, prevStart time.Time) (*RevenueStats, error) {
	revenue, err := s.repo.SumCompanyTransactions(ctx, companytx.TypeIncome, start, end)
	if err != nil {
		return nil, err
	}

	expenses, err := s.repo.SumCompanyTransactions(ctx, companytx.TypeExpense, start, end)
	if err != nil {
		return nil, err
	}

	previousRevenue, err := s.repo.SumCompanyTransactionsBefore(ctx, companytx.TypeIncome, prevStart, start)
	if err != nil {
		return nil, err
	}

	categories, err := s.repo.IncomeByCategory(ctx, start, end)
	if err != nil {
		return nil, err
	}

	top := make([]CategoryValue, 0, 5)
	for i, cat := range categories {
		if i == 5 {
			break
		}
		top = append(top, CategoryValue{Name: cat.Category, Value: cat.Total})
	}

	return &RevenueStats{
		TotalRevenue:  revenue,
		TotalExpenses: expenses,
		NetProfit:     revenue - expenses,
		RevenueGrowth: GrowthPercent(revenue, previousRevenue),
		TopCategories: top,
	}, nil
}

// membershipTrends buckets by calendar month, newest month last.
func (s *Service) membershipTrends(ctx context.Context, now time.Time, months int) ([]TrendPoint, error) {
	trends := make([]TrendPoint, 0, months)
	for i := months - 1; i >= 0; i-- {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Millisecond)

		newMembers, err := s.repo.CountMembersCreated(ctx, monthStart, monthEnd)
		if err != nil {
			return nil, err
		}

		cancelled, err := s.repo.CountInactiveMembersUpdated(ctx, monthStart, monthEnd)
		if err != nil {
			return nil, err
		}

		totalAtEnd, err := s.repo.CountMembersCreatedUpTo(ctx, monthEnd)
		if err != nil {
			return nil, err
		}

		trends = append(trends, TrendPoint{
			Month:            monthStart.Format("Jan 2006"),
			NewMembers:       newMembers,
			CancelledMembers: cancelled,
			TotalMembers:     totalAtEnd,
		})
	}
	return trends, nil
}

func (s *Service) revenueBreakdown(ctx context.Context, start, end time.Time) ([]BreakdownItem, error) {
	categories, err := s.repo.IncomeByCategory(ctx, start, end)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, cat := range categories {
		total += cat.Total
	}

	breakdown := make([]BreakdownItem, 0, len(categories))
	for _, cat := range categories {
		pct := 0
		if total > 0 {
			pct = int(math.Round(cat.Total / total * 100))
		}
		breakdown = append(breakdown, BreakdownItem{
			Category:   cat.Category,
			Amount:     cat.Total,
			Percentage: pct,
		})
	}
	return breakdown, nil
}

// campaignMetrics is the shape expected inside a campaign log's metrics
// JSON; unknown keys are ignored.
type campaignMetrics struct {
	Reach       int64 `json:"reach"`
	Engagement  int64 `json:"engagement"`
	Conversions int64 `json:"conversions"`
}

func (s *Service) campaignPerformance(ctx context.Context, start, end time.Time) ([]CampaignPerformance, error) {
	campaigns, err := s.repo.ActiveCampaignsOverlapping(ctx, start, end)
	if err != nil {
		return nil, err
	}

	performance := make([]CampaignPerformance, 0, len(campaigns))
	for _, c := range campaigns {
		rawMetrics, err := s.repo.CampaignLogMetrics(ctx, c.ID, start, end)
		if err != nil {
			return nil, err
		}

		var sum campaignMetrics
		for _, raw := range rawMetrics {
			var m campaignMetrics
			if err := json.Unmarshal(raw, &m); err != nil {
				s.logger.Warn("skipping unparseable campaign metrics", "campaign_id", c.ID, "error", err)
				continue
			}
			sum.Reach += m.Reach
			sum.Engagement += m.Engagement
			sum.Conversions += m.Conversions
		}

		performance = append(performance, CampaignPerformance{
			Name:        c.Name,
			Reach:       sum.Reach,
			Engagement:  sum.Engagement,
			Conversions: sum.Conversions,
		})
	}
	return performance, nil
}

// Dashboard assembles only the sections the caller's role is entitled to.
func (s *Service) Dashboard(ctx context.Context, role auth.Role) (*DashboardStats, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	stats := &DashboardStats{}

	if role == auth.RoleFrontOffice || role == auth.RoleSupervisor || role == auth.RoleOwner {
		total, active, err := s.repo.CountMembers(ctx)
		if err != nil {
			return nil, err
		}
		checkIns, err := s.repo.CountCheckInsOn(ctx, today)
		if err != nil {
			return nil, err
		}
		stats.TotalMembers = &total
		stats.ActiveMembers = &active
		stats.TodayCheckIns = &checkIns
	}

	if role == auth.RoleAccounting || role == auth.RoleSupervisor || role == auth.RoleOwner {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Millisecond)

		revenue, err := s.repo.SumCompanyTransactions(ctx, companytx.TypeIncome, monthStart, monthEnd)
		if err != nil {
			return nil, err
		}
		pending, err := s.repo.CountPendingPaymentsDueBefore(ctx, today.AddDate(0, 0, 7))
		if err != nil {
			return nil, err
		}
		stats.MonthlyRevenue = &revenue
		stats.PendingPayments = &pending
	}

	if role == auth.RoleMarketing || role == auth.RoleSupervisor || role == auth.RoleOwner {
		activeCampaigns, err := s.repo.CountActiveCampaigns(ctx, today)
		if err != nil {
			return nil, err
		}
		stats.ActiveCampaigns = &activeCampaigns
	}

	return stats, nil
}
