package dto

import "github.com/shopspring/decimal"

// ReportRange is bound from the query string of every /reports endpoint.
// Both dates are ISO YYYY-MM-DD and inclusive.
type ReportRange struct {
	StartDate string `form:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `form:"endDate"   validate:"required,datetime=2006-01-02"`
	Interval  string `form:"interval,default=day"`
	Limit     int    `form:"limit,default=10" validate:"min=1,max=100"`
}

// ItemRevenueRow is one line of the item revenue / popular items reports.
type ItemRevenueRow struct {
	ItemName string          `json:"item_name"`
	Quantity int64           `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// CategoryRevenueRow groups revenue by the menu category of each sold item.
// Items whose menu row was deleted after the sale are excluded (inner join).
type CategoryRevenueRow struct {
	Category string          `json:"category"`
	Quantity int64           `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// SummaryReport aggregates a date range into headline metrics.
type SummaryReport struct {
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TotalItemsSold    int64           `json:"totalItemsSold"`
	CustomerCount     int64           `json:"customerCount"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
}

// TrendPoint is one time bucket of the sales trend.
// Period is a label produced by date truncation (shape depends on interval).
type TrendPoint struct {
	Period  string          `json:"period"`
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int64           `json:"orders"`
}

// ComparePoint merges a current and a previous trend bucket by period label.
// A period with sales on only one side reports 0 on the other, never null.
type ComparePoint struct {
	Period          string          `json:"period"`
	Revenue         decimal.Decimal `json:"revenue"`
	Orders          int64           `json:"orders"`
	PreviousRevenue decimal.Decimal `json:"previousRevenue"`
	PreviousOrders  int64           `json:"previousOrders"`
}

// CompareReport is the payload of /reports/compare.
type CompareReport struct {
	CurrentStart  string         `json:"currentStart"`
	CurrentEnd    string         `json:"currentEnd"`
	PreviousStart string         `json:"previousStart"`
	PreviousEnd   string         `json:"previousEnd"`
	Data          []ComparePoint `json:"data"`
}
