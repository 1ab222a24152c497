package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"restomate/internal/dto"
	"restomate/internal/middleware"
	"restomate/internal/model"
	"restomate/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBillService struct {
	placeErr error
}

func (s *stubBillService) PlaceBill(_ context.Context, _ int64, _ dto.PlaceBillRequest) (*dto.PlaceBillResponse, error) {
	if s.placeErr != nil {
		return nil, s.placeErr
	}
	return &dto.PlaceBillResponse{Success: true, BillID: 1}, nil
}

func (s *stubBillService) DailyCount(context.Context, int64, string) (int64, error) {
	return 0, nil
}

func (s *stubBillService) List(context.Context, int64, dto.BillFilter) (*dto.BillListResponse, error) {
	return &dto.BillListResponse{}, nil
}

func (s *stubBillService) Get(context.Context, int64, int64) (*dto.BillResponse, error) {
	return &dto.BillResponse{}, nil
}

var _ service.BillService = (*stubBillService)(nil)

// billsRouter mounts Place behind a shim that injects claims the way JWTAuth
// would.
func billsRouter(svc service.BillService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewBillsHandler(svc)
	r.POST("/bills", func(c *gin.Context) {
		c.Set(middleware.ClaimsKey, &middleware.JWTClaims{
			UserID: 1, Role: model.RoleStaff, RestaurantID: 1,
		})
	}, h.Place)
	return r
}

func placeBillBody(t *testing.T, restaurantID int64) *bytes.Reader {
	t.Helper()
	body, err := json.Marshal(dto.PlaceBillRequest{
		RestaurantID:  restaurantID,
		EmployeeName:  "Asha",
		PaymentMethod: "cash",
		TotalAmount:   decimal.NewFromInt(40),
		Items: []dto.BillItemRequest{{
			ItemID: 1, ItemName: "Tea", Quantity: 2,
			Price: decimal.NewFromInt(20), Subtotal: decimal.NewFromInt(40),
		}},
	})
	require.NoError(t, err)
	return bytes.NewReader(body)
}

func TestPlaceBill_DatabaseErrorStaysGeneric(t *testing.T) {
	svc := &stubBillService{
		placeErr: errors.New(`ERROR: new row violates check constraint "bill_items_7_quantity_check" (SQLSTATE 23514)`),
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bills", placeBillBody(t, 1))
	req.Header.Set("Content-Type", "application/json")
	billsRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to place bill")
	assert.NotContains(t, w.Body.String(), "check constraint")
	assert.NotContains(t, w.Body.String(), "SQLSTATE")
}

func TestPlaceBill_InputErrorKeepsMessage(t *testing.T) {
	svc := &stubBillService{
		placeErr: &service.InputError{Msg: "item 0 (Tea): subtotal 45 does not match 20 x 2"},
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bills", placeBillBody(t, 1))
	req.Header.Set("Content-Type", "application/json")
	billsRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "does not match")
}

func TestPlaceBill_BodyTenantMustMatchToken(t *testing.T) {
	svc := &stubBillService{}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bills", placeBillBody(t, 2))
	req.Header.Set("Content-Type", "application/json")
	billsRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
