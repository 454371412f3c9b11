package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
)

// Repository runs the read-side aggregate queries. It shares the
// database handle with the GORM stack but speaks raw SQL via sqlx.
type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CountMembers(ctx context.Context) (total, active int64, err error) {
	err = r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM members`)
	if err != nil {
		return 0, 0, err
	}
	err = r.db.GetContext(ctx, &active, `SELECT COUNT(*) FROM members WHERE is_active = true`)
	if err != nil {
		return 0, 0, err
	}
	return total, active, nil
}

// CountMembersCreated counts members created in the inclusive window.
func (r *Repository) CountMembersCreated(ctx context.Context, start, end time.Time) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM members WHERE created_at >= $1 AND created_at <= $2`, start, end)
	return n, err
}

// CountMembersCreatedBefore counts members created in [start, end).
func (r *Repository) CountMembersCreatedBefore(ctx context.Context, start, end time.Time) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM members WHERE created_at >= $1 AND created_at < $2`, start, end)
	return n, err
}

func (r *Repository) CountMembersCreatedUpTo(ctx context.Context, end time.Time) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM members WHERE created_at <= $1`, end)
	return n, err
}

func (r *Repository) CountInactiveMembersUpdated(ctx context.Context, start, end time.Time) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM members WHERE is_active = false AND updated_at >= $1 AND updated_at <= $2`,
		start, end)
	return n, err
}

// SumCompanyTransactions sums completed company transactions of the given
// type in the inclusive window. Missing rows sum to zero.
func (r *Repository) SumCompanyTransactions(ctx context.Context, txType string, start, end time.Time) (float64, error) {
	var sum float64
	err := r.db.GetContext(ctx, &sum,
		`SELECT COALESCE(SUM(amount), 0) FROM company_transactions
		 WHERE type = $1 AND status = 'COMPLETED'
		   AND transaction_date >= $2 AND transaction_date <= $3`,
		txType, start, end)
	return sum, err
}

// SumCompanyTransactionsBefore is the [start, end) variant used for the
// previous-period growth comparison.
func (r *Repository) SumCompanyTransactionsBefore(ctx context.Context, txType string, start, end time.Time) (float64, error) {
	var sum float64
	err := r.db.GetContext(ctx, &sum,
		`SELECT COALESCE(SUM(amount), 0) FROM company_transactions
		 WHERE type = $1 AND status = 'COMPLETED'
		   AND transaction_date >= $2 AND transaction_date < $3`,
		txType, start, end)
	return sum, err
}

type CategorySum struct {
	Category string  `db:"category"`
	Total    float64 `db:"total"`
}

func (r *Repository) IncomeByCategory(ctx context.Context, start, end time.Time) ([]CategorySum, error) {
	var rows []CategorySum
	err := r.db.SelectContext(ctx, &rows,
		`SELECT category, COALESCE(SUM(amount), 0) AS total FROM company_transactions
		 WHERE type = 'INCOME' AND status = 'COMPLETED'
		   AND transaction_date >= $1 AND transaction_date <= $2
		 GROUP BY category
		 ORDER BY total DESC`,
		start, end)
	return rows, err
}

type CampaignRow struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

// ActiveCampaignsOverlapping returns ACTIVE campaigns whose window
// intersects [start, end]; a NULL end_date means still running.
func (r *Repository) ActiveCampaignsOverlapping(ctx context.Context, start, end time.Time) ([]CampaignRow, error) {
	var rows []CampaignRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, name FROM campaigns
		 WHERE status = 'ACTIVE' AND start_date <= $2
		   AND (end_date IS NULL OR end_date >= $1)
		 ORDER BY created_at DESC`,
		start, end)
	return rows, err
}

func (r *Repository) CampaignLogMetrics(ctx context.Context, campaignID string, start, end time.Time) ([]json.RawMessage, error) {
	var rows [][]byte
	err := r.db.SelectContext(ctx, &rows,
		`SELECT metrics FROM campaign_logs
		 WHERE campaign_id = $1 AND metrics IS NOT NULL
		   AND log_date >= $2 AND log_date <= $3`,
		campaignID, start, end)
	if err != nil {
		return nil, err
	}
	metrics := make([]json.RawMessage, 0, len(rows))
	for _, raw := range rows {
		metrics = append(metrics, json.RawMessage(raw))
	}
	return metrics, nil
}

func (r *Repository) CountCheckInsOn(ctx context.Context, dayStart time.Time) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM member_absences
		 WHERE type = 'OTHER' AND date >= $1 AND date < $2`,
		dayStart, dayStart.Add(24*time.Hour))
	return n, err
}

func (r *Repository) CountPendingPaymentsDueBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM member_transactions
		 WHERE status = 'PENDING' AND due_date <= $1`, cutoff)
	return n, err
}

func (r *Repository) CountActiveCampaigns(ctx context.Context, today time.Time) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM campaigns
		 WHERE status = 'ACTIVE' AND start_date <= $1
		   AND (end_date IS NULL OR end_date >= $1)`, today)
	return n, err
}
