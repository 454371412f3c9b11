package analytics

// MemberStats summarizes the member base for the selected range.
type MemberStats struct {
	Total            int64   `json:"total"`
	Active           int64   `json:"active"`
	Inactive         int64   `json:"inactive"`
	NewThisPeriod    int64   `json:"new_this_period"`
	GrowthPercentage float64 `json:"growth_percentage"`
}

type CategoryValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type RevenueStats struct {
	TotalRevenue  float64         `json:"total_revenue"`
	TotalExpenses float64         `json:"total_expenses"`
	NetProfit     float64         `json:"net_profit"`
	RevenueGrowth float64         `json:"revenue_growth"`
	TopCategories []CategoryValue `json:"top_categories"`
}

// TrendPoint is one calendar-month bucket of the membership trend.
type TrendPoint struct {
	Month            string `json:"month"`
	NewMembers       int64  `json:"new_members"`
	CancelledMembers int64  `json:"cancelled_members"`
	TotalMembers     int64  `json:"total_members"`
}

type BreakdownItem struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage int     `json:"percentage"`
}

type CampaignPerformance struct {
	Name        string `json:"name"`
	Reach       int64  `json:"reach"`
	Engagement  int64  `json:"engagement"`
	Conversions int64  `json:"conversions"`
}

type AnalyticsResponse struct {
	MemberStats         MemberStats           `json:"member_stats"`
	RevenueStats        RevenueStats          `json:"revenue_stats"`
	MembershipTrends    []TrendPoint          `json:"membership_trends"`
	RevenueBreakdown    []BreakdownItem       `json:"revenue_breakdown"`
	CampaignPerformance []CampaignPerformance `json:"campaign_performance"`
}

// DashboardStats carries only the sections the caller's role may see;
// omitted sections marshal as absent.
type DashboardStats struct {
	TotalMembers    *int64   `json:"total_members,omitempty"`
	ActiveMembers   *int64   `json:"active_members,omitempty"`
	TodayCheckIns   *int64   `json:"today_check_ins,omitempty"`
	MonthlyRevenue  *float64 `json:"monthly_revenue,omitempty"`
	PendingPayments *int64   `json:"pending_payments,omitempty"`
	ActiveCampaigns *int64   `json:"active_campaigns,omitempty"`
}
