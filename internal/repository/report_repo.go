package repository

import (
	"context"
	"fmt"
	"time"

	"restomate/internal/dto"
	"restomate/internal/tenant"

	"gorm.io/gorm"
)

// ReportRepository runs the read-only analytic queries over a tenant's bill,
// bill_item and menu tables. Every query takes an inclusive [start, end]
// date range; empty results are empty slices, never errors.
type ReportRepository interface {
	ItemRevenues(ctx context.Context, restaurantID int64, start, end time.Time) ([]dto.ItemRevenueRow, error)
	CategoryRevenues(ctx context.Context, restaurantID int64, start, end time.Time) ([]dto.CategoryRevenueRow, error)
	PopularItems(ctx context.Context, restaurantID int64, start, end time.Time, limit int) ([]dto.ItemRevenueRow, error)
	Summary(ctx context.Context, restaurantID int64, start, end time.Time) (*dto.SummaryReport, error)
	SalesTrend(ctx context.Context, restaurantID int64, start, end time.Time, interval string) ([]dto.TrendPoint, error)
}

type reportRepo struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) ReportRepository { return &reportRepo{db: db} }

// rangeClause filters bills to the inclusive calendar-day range.
const rangeClause = `b.bill_date >= ?::date AND b.bill_date < (?::date + INTERVAL '1 day')`

func dateArgs(start, end time.Time) (string, string) {
	return start.Format("2006-01-02"), end.Format("2006-01-02")
}

func (r *reportRepo) ItemRevenues(ctx context.Context, restaurantID int64, start, end time.Time) ([]dto.ItemRevenueRow, error) {
	s, e := dateArgs(start, end)
	q := fmt.Sprintf(`
		SELECT bi.item_name AS item_name,
		       SUM(bi.quantity) AS quantity,
		       SUM(bi.subtotal) AS revenue
		FROM %s bi
		JOIN %s b ON b.id = bi.bill_id
		WHERE `+rangeClause+`
		GROUP BY bi.item_name
		ORDER BY revenue DESC`,
		tenant.Table(tenant.BillItems, restaurantID),
		tenant.Table(tenant.Bills, restaurantID))

	rows := []dto.ItemRevenueRow{}
	err := r.db.WithContext(ctx).Raw(q, s, e).Scan(&rows).Error
	return rows, err
}

// CategoryRevenues joins sold items back to the live menu for the category.
// Items whose menu row was deleted after the sale drop out of this report by
// policy (they remain visible in ItemRevenues).
func (r *reportRepo) CategoryRevenues(ctx context.Context, restaurantID int64, start, end time.Time) ([]dto.CategoryRevenueRow, error) {
	s, e := dateArgs(start, end)
	q := fmt.Sprintf(`
		SELECT m.category AS category,
		       SUM(bi.quantity) AS quantity,
		       SUM(bi.subtotal) AS revenue
		FROM %s bi
		JOIN %s b ON b.id = bi.bill_id
		JOIN %s m ON m.id = bi.item_id
		WHERE `+rangeClause+`
		GROUP BY m.category
		ORDER BY revenue DESC`,
		tenant.Table(tenant.BillItems, restaurantID),
		tenant.Table(tenant.Bills, restaurantID),
		tenant.Table(tenant.Menu, restaurantID))

	rows := []dto.CategoryRevenueRow{}
	err := r.db.WithContext(ctx).Raw(q, s, e).Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) PopularItems(ctx context.Context, restaurantID int64, start, end time.Time, limit int) ([]dto.ItemRevenueRow, error) {
	s, e := dateArgs(start, end)
	q := fmt.Sprintf(`
		SELECT bi.item_name AS item_name,
		       SUM(bi.quantity) AS quantity,
		       SUM(bi.subtotal) AS revenue
		FROM %s bi
		JOIN %s b ON b.id = bi.bill_id
		WHERE `+rangeClause+`
		GROUP BY bi.item_name
		ORDER BY quantity DESC
		LIMIT ?`,
		tenant.Table(tenant.BillItems, restaurantID),
		tenant.Table(tenant.Bills, restaurantID))

	rows := []dto.ItemRevenueRow{}
	err := r.db.WithContext(ctx).Raw(q, s, e, limit).Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) Summary(ctx context.Context, restaurantID int64, start, end time.Time) (*dto.SummaryReport, error) {
	s, e := dateArgs(start, end)
	summary := &dto.SummaryReport{}

	q := fmt.Sprintf(`
		SELECT COALESCE(SUM(b.total_amount), 0) AS total_revenue,
		       COUNT(*) AS customer_count,
		       COALESCE(ROUND(AVG(b.total_amount), 2), 0) AS average_order_value
		FROM %s b
		WHERE `+rangeClause,
		tenant.Table(tenant.Bills, restaurantID))
	if err := r.db.WithContext(ctx).Raw(q, s, e).Scan(summary).Error; err != nil {
		return nil, err
	}

	qi := fmt.Sprintf(`
		SELECT COALESCE(SUM(bi.quantity), 0)
		FROM %s bi
		JOIN %s b ON b.id = bi.bill_id
		WHERE `+rangeClause,
		tenant.Table(tenant.BillItems, restaurantID),
		tenant.Table(tenant.Bills, restaurantID))
	if err := r.db.WithContext(ctx).Raw(qi, s, e).Scan(&summary.TotalItemsSold).Error; err != nil {
		return nil, err
	}
	return summary, nil
}

// trendLabels maps an interval to the to_char format for its period label.
// Keys double as the whitelist — anything else never reaches SQL.
var trendLabels = map[string]string{
	"hour":  "YYYY-MM-DD HH24:00",
	"day":   "YYYY-MM-DD",
	"week":  `IYYY-"W"IW`,
	"month": "YYYY-MM",
}

func (r *reportRepo) SalesTrend(ctx context.Context, restaurantID int64, start, end time.Time, interval string) ([]dto.TrendPoint, error) {
	label, ok := trendLabels[interval]
	if !ok {
		return nil, fmt.Errorf("unsupported interval %q", interval)
	}

	s, e := dateArgs(start, end)
	q := fmt.Sprintf(`
		SELECT to_char(date_trunc('%s', b.bill_date), '%s') AS period,
		       SUM(b.total_amount) AS revenue,
		       COUNT(*) AS orders
		FROM %s b
		WHERE `+rangeClause+`
		GROUP BY date_trunc('%s', b.bill_date)
		ORDER BY date_trunc('%s', b.bill_date) ASC`,
		interval, label,
		tenant.Table(tenant.Bills, restaurantID),
		interval, interval)

	rows := []dto.TrendPoint{}
	err := r.db.WithContext(ctx).Raw(q, s, e).Scan(&rows).Error
	return rows, err
}
