package handler

import (
	"errors"
	"io"
	"net/http"

	"restomate/internal/apierror"
	"restomate/internal/dto"
	"restomate/internal/middleware"
	"restomate/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// maxLogoSize caps the optional restaurant logo upload at 2 MiB.
const maxLogoSize = 2 << 20

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Register godoc
// @Summary Register a user
// @Description Owner registration creates the restaurant and all of its tables atomically; manager/staff join an existing restaurant using its secret code. Accepts an optional logo file for owners.
// @Tags auth
// @Accept mpfd
// @Produce json
// @Param name formData string true "Full name"
// @Param email formData string true "Email"
// @Param password formData string true "Password (min 8 chars)"
// @Param role formData string true "owner | manager | staff"
// @Param secret_code formData string true "Tenant secret code"
// @Param restaurant_name formData string false "Restaurant name (owner only)"
// @Param restaurant_id formData int false "Restaurant id (manager/staff only)"
// @Param logo formData file false "Restaurant logo (owner only)"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} apierror.APIError
// @Router /users/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindFormAndValidate(c, &req) {
		return
	}

	var logo []byte
	var logoMime string
	if file, err := c.FormFile("logo"); err == nil {
		if file.Size > maxLogoSize {
			c.JSON(http.StatusBadRequest, apierror.New("Logo must be smaller than 2 MiB"))
			return
		}
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Could not read logo upload"))
			return
		}
		defer f.Close()
		logo, err = io.ReadAll(f)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Could not read logo upload"))
			return
		}
		logoMime = file.Header.Get("Content-Type")
	}

	resp, err := h.svc.Register(c.Request.Context(), req, logo, logoMime)
	if err != nil {
		respondServiceError(c, err, "Registration failed")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary User login
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} apierror.APIError
// @Router /users/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		if service.IsInputError(err) {
			c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Login failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if service.IsInputError(err) {
			c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Token refresh failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Restaurants Handler ──────────────────────────────────────────────────────

type RestaurantsHandler struct{ svc service.AuthService }

func NewRestaurantsHandler(svc service.AuthService) *RestaurantsHandler {
	return &RestaurantsHandler{svc: svc}
}

// Me godoc
// @Summary Current restaurant profile
// @Description Returns the restaurant of the authenticated user. The secret code is included for owners only.
// @Tags restaurants
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.RestaurantResponse
// @Failure 404 {object} apierror.APIError
// @Router /restaurants/me [get]
func (h *RestaurantsHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Restaurant(c.Request.Context(), claims.RestaurantID, claims.Role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Restaurant not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to load restaurant"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
