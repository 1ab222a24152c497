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

type EmployeesHandler struct{ svc service.EmployeeService }

func NewEmployeesHandler(svc service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{svc: svc}
}

// List godoc
// @Summary List employees
// @Tags employees
// @Produce json
// @Security BearerAuth
// @Param restaurantId path int true "Restaurant id"
// @Success 200 {array} dto.EmployeeResponse
// @Router /employees/{restaurantId} [get]
func (h *EmployeesHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context(), middleware.GetRestaurantID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list employees"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary Add an employee
// @Tags employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param restaurantId path int true "Restaurant id"
// @Param body body dto.CreateEmployeeRequest true "Employee"
// @Success 201 {object} dto.EmployeeResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /employees/{restaurantId} [post]
func (h *EmployeesHandler) Create(c *gin.Context) {
	var req dto.CreateEmployeeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), middleware.GetRestaurantID(c), req)
	if err != nil {
		respondServiceError(c, err, "Failed to create employee")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Update godoc
// @Summary Update an employee
// @Tags employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param restaurantId path int true "Restaurant id"
// @Param employeeId path int true "Employee id"
// @Param body body dto.UpdateEmployeeRequest true "Changed fields"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 404 {object} apierror.APIError
// @Router /employees/{restaurantId}/{employeeId} [put]
func (h *EmployeesHandler) Update(c *gin.Context) {
	employeeID, err := strconv.ParseInt(c.Param("employeeId"), 10, 64)
	if err != nil || employeeID <= 0 {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid employee id"))
		return
	}
	var req dto.UpdateEmployeeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), middleware.GetRestaurantID(c), employeeID, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Employee not found"))
			return
		}
		respondServiceError(c, err, "Failed to update employee")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary Remove an employee
// @Tags employees
// @Security BearerAuth
// @Param restaurantId path int true "Restaurant id"
// @Param employeeId path int true "Employee id"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /employees/{restaurantId}/{employeeId} [delete]
func (h *EmployeesHandler) Delete(c *gin.Context) {
	employeeID, err := strconv.ParseInt(c.Param("employeeId"), 10, 64)
	if err != nil || employeeID <= 0 {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid employee id"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), middleware.GetRestaurantID(c), employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Employee not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to delete employee"))
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkAttendance godoc
// @Summary Record attendance for a day
// @Description Replaces the full roster for the date carried by the entries. All entries must share the same date.
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param restaurantId path int true "Restaurant id"
// @Param body body dto.MarkAttendanceRequest true "Roster for the day"
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} apierror.ValidationError
// @Router /employees/attendance/{restaurantId} [post]
func (h *EmployeesHandler) MarkAttendance(c *gin.Context) {
	var req dto.MarkAttendanceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	count, err := h.svc.MarkAttendance(c.Request.Context(), middleware.GetRestaurantID(c), req)
	if err != nil {
		respondServiceError(c, err, "Failed to record attendance")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "recorded": count})
}

// Attendance godoc
// @Summary Attendance for a day
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param restaurantId path int true "Restaurant id"
// @Param date query string false "Date YYYY-MM-DD (default: today)"
// @Success 200 {array} dto.AttendanceRecordResponse
// @Router /employees/attendance/{restaurantId} [get]
func (h *EmployeesHandler) Attendance(c *gin.Context) {
	resp, err := h.svc.AttendanceByDate(c.Request.Context(), middleware.GetRestaurantID(c), c.Query("date"))
	if err != nil {
		respondServiceError(c, err, "Failed to load attendance")
		return
	}
	c.JSON(http.StatusOK, resp)
}
