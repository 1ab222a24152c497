package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"restomate/internal/dto"
	"restomate/internal/model"
	"restomate/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubBillRepo is an in-memory BillRepository for testing.
type stubBillRepo struct {
	bills        []*model.Bill
	items        []*model.BillItem
	failItemName string // CreateItemTx fails when inserting this item
}

func (r *stubBillRepo) CreateTx(_ context.Context, _ *gorm.DB, _ int64, b *model.Bill) error {
	b.ID = int64(len(r.bills) + 1)
	r.bills = append(r.bills, b)
	return nil
}

func (r *stubBillRepo) CreateItemTx(_ context.Context, _ *gorm.DB, _ int64, item *model.BillItem) error {
	if item.ItemName == r.failItemName {
		return errors.New("insert failed")
	}
	item.ID = int64(len(r.items) + 1)
	r.items = append(r.items, item)
	return nil
}

func (r *stubBillRepo) CountByDate(_ context.Context, _ int64, date time.Time) (int64, error) {
	day := date.Format("2006-01-02")
	var count int64
	for _, b := range r.bills {
		if b.BillDate.Format("2006-01-02") == day {
			count++
		}
	}
	return count, nil
}

func (r *stubBillRepo) FindByID(_ context.Context, _ int64, billID int64) (*model.Bill, []model.BillItem, error) {
	for _, b := range r.bills {
		if b.ID == billID {
			var items []model.BillItem
			for _, it := range r.items {
				if it.BillID == billID {
					items = append(items, *it)
				}
			}
			return b, items, nil
		}
	}
	return nil, nil, gorm.ErrRecordNotFound
}

func (r *stubBillRepo) List(_ context.Context, _ int64, date time.Time, _, _ int) ([]model.Bill, int64, error) {
	day := date.Format("2006-01-02")
	var out []model.Bill
	for _, b := range r.bills {
		if b.BillDate.Format("2006-01-02") == day {
			out = append(out, *b)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubBillRepo) DB() *gorm.DB { return nil }

var _ repository.BillRepository = (*stubBillRepo)(nil)

// stubEnqueuer records receipt jobs pushed after commit.
type stubEnqueuer struct {
	calls []string
}

func (e *stubEnqueuer) EnqueueReceipt(_ context.Context, _, _ int64, email string) error {
	e.calls = append(e.calls, email)
	return nil
}

func placeRequest() dto.PlaceBillRequest {
	return dto.PlaceBillRequest{
		RestaurantID:  1,
		BillNumber:    3,
		BillDate:      "2026-03-10",
		EmployeeName:  "Asha",
		PaymentMethod: "cash",
		Items: []dto.BillItemRequest{
			{ItemID: 1, ItemName: "Tea", Quantity: 2, Price: decimal.NewFromFloat(20.00), Subtotal: decimal.NewFromFloat(40.00)},
			{ItemID: 2, ItemName: "Coffee", Quantity: 1, Price: decimal.NewFromFloat(30.00), Subtotal: decimal.NewFromFloat(30.00)},
		},
		TotalAmount: decimal.NewFromFloat(70.00),
	}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestPlaceBill_WritesBillAndAllItems(t *testing.T) {
	repo := &stubBillRepo{}
	enq := &stubEnqueuer{}
	svc := NewBillService(repo, enq)

	resp, err := svc.PlaceBill(context.Background(), 1, placeRequest())
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, int64(1), resp.BillID)

	require.Len(t, repo.bills, 1)
	require.Len(t, repo.items, 2)
	assert.Equal(t, "70", repo.bills[0].TotalAmount.String())
	for _, it := range repo.items {
		assert.Equal(t, resp.BillID, it.BillID)
	}
	// No customer email — no receipt job
	assert.Empty(t, enq.calls)
}

func TestPlaceBill_SubtotalMismatchRejected(t *testing.T) {
	repo := &stubBillRepo{}
	svc := NewBillService(repo, nil)

	req := placeRequest()
	req.Items[1].Subtotal = decimal.NewFromFloat(31.00) // 30.00 × 1 claimed as 31.00

	_, err := svc.PlaceBill(context.Background(), 1, req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subtotal")
	assert.True(t, IsInputError(err), "caller-correctable failures carry the input marker")
	// Rejected before any write
	assert.Empty(t, repo.bills)
	assert.Empty(t, repo.items)
}

func TestPlaceBill_EmptyItemsRejected(t *testing.T) {
	svc := NewBillService(&stubBillRepo{}, nil)

	req := placeRequest()
	req.Items = nil

	_, err := svc.PlaceBill(context.Background(), 1, req)
	assert.ErrorContains(t, err, "at least one item")
}

func TestPlaceBill_ItemFailureFailsWholeBill(t *testing.T) {
	repo := &stubBillRepo{failItemName: "Coffee"}
	svc := NewBillService(repo, nil)

	_, err := svc.PlaceBill(context.Background(), 1, placeRequest())
	assert.Error(t, err)
	assert.False(t, IsInputError(err), "a write failure is internal, not caller-correctable")
}

func TestPlaceBill_TotalMismatchStoredAsSent(t *testing.T) {
	repo := &stubBillRepo{}
	svc := NewBillService(repo, nil)

	req := placeRequest()
	req.TotalAmount = decimal.NewFromFloat(75.00) // items sum to 70.00

	resp, err := svc.PlaceBill(context.Background(), 1, req)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "75", repo.bills[0].TotalAmount.String())
}

func TestPlaceBill_EnqueuesReceiptWhenEmailGiven(t *testing.T) {
	repo := &stubBillRepo{}
	enq := &stubEnqueuer{}
	svc := NewBillService(repo, enq)

	req := placeRequest()
	req.CustomerEmail = "guest@example.com"

	_, err := svc.PlaceBill(context.Background(), 1, req)
	require.NoError(t, err)
	assert.Equal(t, []string{"guest@example.com"}, enq.calls)
}

func TestPlaceBill_InvalidDateRejected(t *testing.T) {
	svc := NewBillService(&stubBillRepo{}, nil)

	req := placeRequest()
	req.BillDate = "10/03/2026"

	_, err := svc.PlaceBill(context.Background(), 1, req)
	assert.ErrorContains(t, err, "bill_date")
}

func TestDailyCount(t *testing.T) {
	repo := &stubBillRepo{}
	svc := NewBillService(repo, nil)

	_, err := svc.PlaceBill(context.Background(), 1, placeRequest())
	require.NoError(t, err)

	count, err := svc.DailyCount(context.Background(), 1, "2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = svc.DailyCount(context.Background(), 1, "2026-03-11")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	_, err = svc.DailyCount(context.Background(), 1, "bad-date")
	assert.Error(t, err)
}

func TestGetBill_IncludesItems(t *testing.T) {
	repo := &stubBillRepo{}
	svc := NewBillService(repo, nil)

	placed, err := svc.PlaceBill(context.Background(), 1, placeRequest())
	require.NoError(t, err)

	resp, err := svc.Get(context.Background(), 1, placed.BillID)
	require.NoError(t, err)
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, "Tea", resp.Items[0].ItemName)
}
