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

type MenuHandler struct{ svc service.MenuService }

func NewMenuHandler(svc service.MenuService) *MenuHandler { return &MenuHandler{svc: svc} }

// List godoc
// @Summary List menu items
// @Tags menu
// @Produce json
// @Security BearerAuth
// @Param restaurantId path int true "Restaurant id"
// @Success 200 {array} dto.MenuItemResponse
// @Failure 403 {object} apierror.APIError
// @Router /menu/{restaurantId} [get]
func (h *MenuHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context(), middleware.GetRestaurantID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list menu"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary Add a menu item
// @Tags menu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param restaurantId path int true "Restaurant id"
// @Param body body dto.CreateMenuItemRequest true "Item"
// @Success 201 {object} dto.MenuItemResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /menu/{restaurantId} [post]
func (h *MenuHandler) Create(c *gin.Context) {
	var req dto.CreateMenuItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), middleware.GetRestaurantID(c), req)
	if err != nil {
		respondServiceError(c, err, "Failed to create menu item")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Update godoc
// @Summary Update a menu item
// @Tags menu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param restaurantId path int true "Restaurant id"
// @Param itemId path int true "Item id"
// @Param body body dto.UpdateMenuItemRequest true "Changed fields"
// @Success 200 {object} dto.MenuItemResponse
// @Failure 404 {object} apierror.APIError
// @Router /menu/{restaurantId}/{itemId} [put]
func (h *MenuHandler) Update(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil || itemID <= 0 {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid item id"))
		return
	}
	var req dto.UpdateMenuItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), middleware.GetRestaurantID(c), itemID, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Menu item not found"))
			return
		}
		respondServiceError(c, err, "Failed to update menu item")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary Delete a menu item
// @Tags menu
// @Security BearerAuth
// @Param restaurantId path int true "Restaurant id"
// @Param itemId path int true "Item id"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /menu/{restaurantId}/{itemId} [delete]
func (h *MenuHandler) Delete(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil || itemID <= 0 {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid item id"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), middleware.GetRestaurantID(c), itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Menu item not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to delete menu item"))
		return
	}
	c.Status(http.StatusNoContent)
}
