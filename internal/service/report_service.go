package service

import (
	"context"
	"time"

	"restomate/internal/dto"
	"restomate/internal/repository"

	"github.com/shopspring/decimal"
)

type ReportService interface {
	ItemRevenues(ctx context.Context, restaurantID int64, rng dto.ReportRange) ([]dto.ItemRevenueRow, error)
	CategoryRevenues(ctx context.Context, restaurantID int64, rng dto.ReportRange) ([]dto.CategoryRevenueRow, error)
	PopularItems(ctx context.Context, restaurantID int64, rng dto.ReportRange) ([]dto.ItemRevenueRow, error)
	Summary(ctx context.Context, restaurantID int64, rng dto.ReportRange) (*dto.SummaryReport, error)
	SalesTrend(ctx context.Context, restaurantID int64, rng dto.ReportRange) ([]dto.TrendPoint, error)
	// Compare runs the sales trend over the requested range and over the
	// immediately preceding range of equal length, merged bucket by bucket.
	Compare(ctx context.Context, restaurantID int64, rng dto.ReportRange) (*dto.CompareReport, error)
}

type reportService struct {
	reports repository.ReportRepository
}

func NewReportService(reports repository.ReportRepository) ReportService {
	return &reportService{reports: reports}
}

var validIntervals = map[string]bool{"hour": true, "day": true, "week": true, "month": true}

// parseRange validates the date pair and normalizes interval and limit.
func parseRange(rng dto.ReportRange) (start, end time.Time, err error) {
	start, err = time.Parse("2006-01-02", rng.StartDate)
	if err != nil {
		return start, end, inputErr("startDate must be YYYY-MM-DD")
	}
	end, err = time.Parse("2006-01-02", rng.EndDate)
	if err != nil {
		return start, end, inputErr("endDate must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return start, end, inputErr("endDate must not be before startDate")
	}
	return start, end, nil
}

func normalizeInterval(interval string) (string, error) {
	if interval == "" {
		return "day", nil
	}
	if !validIntervals[interval] {
		return "", inputErr("interval must be one of hour, day, week, month")
	}
	return interval, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 10
	}
	if limit > 100 {
		return 100
	}
	return limit
}

func (s *reportService) ItemRevenues(ctx context.Context, restaurantID int64, rng dto.ReportRange) ([]dto.ItemRevenueRow, error) {
	start, end, err := parseRange(rng)
	if err != nil {
		return nil, err
	}
	return s.reports.ItemRevenues(ctx, restaurantID, start, end)
}

func (s *reportService) CategoryRevenues(ctx context.Context, restaurantID int64, rng dto.ReportRange) ([]dto.CategoryRevenueRow, error) {
	start, end, err := parseRange(rng)
	if err != nil {
		return nil, err
	}
	return s.reports.CategoryRevenues(ctx, restaurantID, start, end)
}

func (s *reportService) PopularItems(ctx context.Context, restaurantID int64, rng dto.ReportRange) ([]dto.ItemRevenueRow, error) {
	start, end, err := parseRange(rng)
	if err != nil {
		return nil, err
	}
	return s.reports.PopularItems(ctx, restaurantID, start, end, clampLimit(rng.Limit))
}

func (s *reportService) Summary(ctx context.Context, restaurantID int64, rng dto.ReportRange) (*dto.SummaryReport, error) {
	start, end, err := parseRange(rng)
	if err != nil {
		return nil, err
	}
	return s.reports.Summary(ctx, restaurantID, start, end)
}

func (s *reportService) SalesTrend(ctx context.Context, restaurantID int64, rng dto.ReportRange) ([]dto.TrendPoint, error) {
	start, end, err := parseRange(rng)
	if err != nil {
		return nil, err
	}
	interval, err := normalizeInterval(rng.Interval)
	if err != nil {
		return nil, err
	}
	return s.reports.SalesTrend(ctx, restaurantID, start, end, interval)
}

func (s *reportService) Compare(ctx context.Context, restaurantID int64, rng dto.ReportRange) (*dto.CompareReport, error) {
	start, end, err := parseRange(rng)
	if err != nil {
		return nil, err
	}
	interval, err := normalizeInterval(rng.Interval)
	if err != nil {
		return nil, err
	}

	prevStart, prevEnd := previousRange(start, end)

	current, err := s.reports.SalesTrend(ctx, restaurantID, start, end, interval)
	if err != nil {
		return nil, err
	}
	previous, err := s.reports.SalesTrend(ctx, restaurantID, prevStart, prevEnd, interval)
	if err != nil {
		return nil, err
	}

	return &dto.CompareReport{
		CurrentStart:  start.Format("2006-01-02"),
		CurrentEnd:    end.Format("2006-01-02"),
		PreviousStart: prevStart.Format("2006-01-02"),
		PreviousEnd:   prevEnd.Format("2006-01-02"),
		Data:          mergeTrends(current, previous),
	}, nil
}

// previousRange is the window of equal length ending the day before start.
// A single-day range compares against the previous single day.
func previousRange(start, end time.Time) (time.Time, time.Time) {
	prevEnd := start.AddDate(0, 0, -1)
	prevStart := prevEnd.Add(-end.Sub(start))
	return prevStart, prevEnd
}

// mergeTrends joins the two trends on period label, keeping the union of
// labels in current-first order. Missing sides read as zero, never null.
func mergeTrends(current, previous []dto.TrendPoint) []dto.ComparePoint {
	merged := make([]dto.ComparePoint, 0, len(current)+len(previous))
	index := make(map[string]int, len(current))

	for _, p := range current {
		index[p.Period] = len(merged)
		merged = append(merged, dto.ComparePoint{
			Period:          p.Period,
			Revenue:         p.Revenue,
			Orders:          p.Orders,
			PreviousRevenue: decimal.Zero,
		})
	}
	for _, p := range previous {
		if i, ok := index[p.Period]; ok {
			merged[i].PreviousRevenue = p.Revenue
			merged[i].PreviousOrders = p.Orders
			continue
		}
		merged = append(merged, dto.ComparePoint{
			Period:          p.Period,
			Revenue:         decimal.Zero,
			PreviousRevenue: p.Revenue,
			PreviousOrders:  p.Orders,
		})
	}
	return merged
}
