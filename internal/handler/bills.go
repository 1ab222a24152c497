package handler

import (
	"errors"
	"net/http"
	"strconv"

	"restomate/internal/apierror"
	"restomate/internal/dto"
	"restomate/internal/middleware"
	"restomate/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BillsHandler struct{ svc service.BillService }

func NewBillsHandler(svc service.BillService) *BillsHandler { return &BillsHandler{svc: svc} }

// Place godoc
// @Summary Place a bill
// @Description Writes the bill and all of its item rows in one ACID transaction. The restaurant_id in the body must match the token's restaurant.
// @Tags bills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.PlaceBillRequest true "Bill with items"
// @Success 201 {object} dto.PlaceBillResponse
// @Failure 403 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /bills [post]
func (h *BillsHandler) Place(c *gin.Context) {
	var req dto.PlaceBillRequest
	if !bindAndValidate(c, &req) {
		return
	}

	// No :restaurantId on this route — the tenant comes from the body and
	// must match the token just the same.
	claims := middleware.GetClaims(c)
	if req.RestaurantID != claims.RestaurantID {
		c.JSON(http.StatusForbidden, apierror.New("Access to this restaurant is not allowed"))
		return
	}

	resp, err := h.svc.PlaceBill(c.Request.Context(), req.RestaurantID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to place bill")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Count godoc
// @Summary Bills placed on a day
// @Description Advisory count used by clients to suggest the next display bill number. Not a uniqueness guarantee.
// @Tags bills
// @Produce json
// @Security BearerAuth
// @Param restaurantId path int true "Restaurant id"
// @Param date query string false "Date YYYY-MM-DD (default: today)"
// @Success 200 {object} dto.BillCountResponse
// @Router /bills/count/{restaurantId} [get]
func (h *BillsHandler) Count(c *gin.Context) {
	count, err := h.svc.DailyCount(c.Request.Context(), middleware.GetRestaurantID(c), c.Query("date"))
	if err != nil {
		respondServiceError(c, err, "Failed to count bills")
		return
	}
	c.JSON(http.StatusOK, dto.BillCountResponse{Count: count})
}

// List godoc
// @Summary List bills for a day
// @Tags bills
// @Produce json
// @Security BearerAuth
// @Param restaurantId path int true "Restaurant id"
// @Param date query string false "Date YYYY-MM-DD (default: today)"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Rows per page (default 50)"
// @Success 200 {object} dto.BillListResponse
// @Router /bills/{restaurantId} [get]
func (h *BillsHandler) List(c *gin.Context) {
	var filter dto.BillFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if !validateStruct(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), middleware.GetRestaurantID(c), filter)
	if err != nil {
		respondServiceError(c, err, "Failed to list bills")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Bill detail
// @Tags bills
// @Produce json
// @Security BearerAuth
// @Param restaurantId path int true "Restaurant id"
// @Param billId path int true "Bill id"
// @Success 200 {object} dto.BillResponse
// @Failure 404 {object} apierror.APIError
// @Router /bills/{restaurantId}/{billId} [get]
func (h *BillsHandler) Get(c *gin.Context) {
	billID, err := strconv.ParseInt(c.Param("billId"), 10, 64)
	if err != nil || billID <= 0 {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid bill id"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), middleware.GetRestaurantID(c), billID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Bill not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to load bill"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
