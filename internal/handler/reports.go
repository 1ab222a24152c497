package handler

import (
	"net/http"

	"restomate/internal/apierror"
	"restomate/internal/dto"
	"restomate/internal/middleware"
	"restomate/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

func bindRange(c *gin.Context) (dto.ReportRange, bool) {
	var rng dto.ReportRange
	if err := c.ShouldBindQuery(&rng); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return rng, false
	}
	if !validateStruct(c, &rng) {
		return rng, false
	}
	return rng, true
}

// Summary godoc
// @Summary Headline metrics for a date range
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param restaurantId path int true "Restaurant id"
// @Param startDate query string true "Start YYYY-MM-DD (inclusive)"
// @Param endDate query string true "End YYYY-MM-DD (inclusive)"
// @Success 200 {object} dto.SummaryReport
// @Router /reports/summary/{restaurantId} [get]
func (h *ReportsHandler) Summary(c *gin.Context) {
	rng, ok := bindRange(c)
	if !ok {
		return
	}
	resp, err := h.svc.Summary(c.Request.Context(), middleware.GetRestaurantID(c), rng)
	if err != nil {
		respondServiceError(c, err, "Failed to build summary report")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ItemRevenues godoc
// @Summary Revenue per menu item
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param restaurantId path int true "Restaurant id"
// @Param startDate query string true "Start YYYY-MM-DD (inclusive)"
// @Param endDate query string true "End YYYY-MM-DD (inclusive)"
// @Success 200 {array} dto.ItemRevenueRow
// @Router /reports/item-revenues/{restaurantId} [get]
func (h *ReportsHandler) ItemRevenues(c *gin.Context) {
	rng, ok := bindRange(c)
	if !ok {
		return
	}
	resp, err := h.svc.ItemRevenues(c.Request.Context(), middleware.GetRestaurantID(c), rng)
	if err != nil {
		respondServiceError(c, err, "Failed to build item revenue report")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CategoryRevenues godoc
// @Summary Revenue per menu category
// @Description Groups by the category of the current menu row. Items removed from the menu since the sale are excluded.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param restaurantId path int true "Restaurant id"
// @Param startDate query string true "Start YYYY-MM-DD (inclusive)"
// @Param endDate query string true "End YYYY-MM-DD (inclusive)"
// @Success 200 {array} dto.CategoryRevenueRow
// @Router /reports/category-revenues/{restaurantId} [get]
func (h *ReportsHandler) CategoryRevenues(c *gin.Context) {
	rng, ok := bindRange(c)
	if !ok {
		return
	}
	resp, err := h.svc.CategoryRevenues(c.Request.Context(), middleware.GetRestaurantID(c), rng)
	if err != nil {
		respondServiceError(c, err, "Failed to build category revenue report")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PopularItems godoc
// @Summary Best-selling items by quantity
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param restaurantId path int true "Restaurant id"
// @Param startDate query string true "Start YYYY-MM-DD (inclusive)"
// @Param endDate query string true "End YYYY-MM-DD (inclusive)"
// @Param limit query int false "Max rows (default 10, max 100)"
// @Success 200 {array} dto.ItemRevenueRow
// @Router /reports/popular-items/{restaurantId} [get]
func (h *ReportsHandler) PopularItems(c *gin.Context) {
	rng, ok := bindRange(c)
	if !ok {
		return
	}
	resp, err := h.svc.PopularItems(c.Request.Context(), middleware.GetRestaurantID(c), rng)
	if err != nil {
		respondServiceError(c, err, "Failed to build popular items report")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SalesTrend godoc
// @Summary Revenue over time
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param restaurantId path int true "Restaurant id"
// @Param startDate query string true "Start YYYY-MM-DD (inclusive)"
// @Param endDate query string true "End YYYY-MM-DD (inclusive)"
// @Param interval query string false "hour | day | week | month (default day)"
// @Success 200 {array} dto.TrendPoint
// @Router /reports/sales-trend/{restaurantId} [get]
func (h *ReportsHandler) SalesTrend(c *gin.Context) {
	rng, ok := bindRange(c)
	if !ok {
		return
	}
	resp, err := h.svc.SalesTrend(c.Request.Context(), middleware.GetRestaurantID(c), rng)
	if err != nil {
		respondServiceError(c, err, "Failed to build sales trend")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Compare godoc
// @Summary Compare a range with the preceding one
// @Description Runs the sales trend over the requested range and the immediately preceding range of equal length.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param restaurantId path int true "Restaurant id"
// @Param startDate query string true "Start YYYY-MM-DD (inclusive)"
// @Param endDate query string true "End YYYY-MM-DD (inclusive)"
// @Param interval query string false "hour | day | week | month (default day)"
// @Success 200 {object} dto.CompareReport
// @Router /reports/compare/{restaurantId} [get]
func (h *ReportsHandler) Compare(c *gin.Context) {
	rng, ok := bindRange(c)
	if !ok {
		return
	}
	resp, err := h.svc.Compare(c.Request.Context(), middleware.GetRestaurantID(c), rng)
	if err != nil {
		respondServiceError(c, err, "Failed to build comparison report")
		return
	}
	c.JSON(http.StatusOK, resp)
}
