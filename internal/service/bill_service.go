package service

import (
	"context"
	"time"

	"restomate/internal/dto"
	"restomate/internal/model"
	"restomate/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReceiptEnqueuer pushes a receipt job for a committed bill. The bill is
// already durable when this runs; a queue failure is logged, never surfaced.
type ReceiptEnqueuer interface {
	EnqueueReceipt(ctx context.Context, restaurantID, billID int64, email string) error
}

type BillService interface {
	// PlaceBill writes the bill row and all its item rows in one transaction.
	// Any failure rolls back everything — a bill never exists without its items.
	PlaceBill(ctx context.Context, restaurantID int64, req dto.PlaceBillRequest) (*dto.PlaceBillResponse, error)
	DailyCount(ctx context.Context, restaurantID int64, date string) (int64, error)
	List(ctx context.Context, restaurantID int64, filter dto.BillFilter) (*dto.BillListResponse, error)
	Get(ctx context.Context, restaurantID, billID int64) (*dto.BillResponse, error)
}

type billService struct {
	bills    repository.BillRepository
	receipts ReceiptEnqueuer
}

func NewBillService(bills repository.BillRepository, receipts ReceiptEnqueuer) BillService {
	return &billService{bills: bills, receipts: receipts}
}

func (s *billService) PlaceBill(ctx context.Context, restaurantID int64, req dto.PlaceBillRequest) (*dto.PlaceBillResponse, error) {
	if len(req.Items) == 0 {
		return nil, inputErr("bill must contain at least one item")
	}

	billDate, err := parseBillDate(req.BillDate)
	if err != nil {
		return nil, err
	}

	itemTotal := decimal.Zero
	for i, it := range req.Items {
		expected := it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))).Round(2)
		if !it.Subtotal.Equal(expected) {
			return nil, inputErr("item %d (%s): subtotal %s does not match %s x %d",
				i, it.ItemName, it.Subtotal, it.Price, it.Quantity)
		}
		itemTotal = itemTotal.Add(it.Subtotal)
	}
	if !req.TotalAmount.Equal(itemTotal) {
		// Stored as sent: the client's figure is the one on the printed
		// receipt, so we keep it and leave a trail instead of rejecting.
		log.Warn().
			Int64("restaurant_id", restaurantID).
			Str("sent_total", req.TotalAmount.String()).
			Str("item_total", itemTotal.String()).
			Msg("bill total does not match sum of item subtotals")
	}

	bill := &model.Bill{
		RestaurantID:  restaurantID,
		BillNumber:    req.BillNumber,
		BillDate:      billDate,
		EmployeeID:    req.EmployeeID,
		EmployeeName:  req.EmployeeName,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		PaymentMethod: req.PaymentMethod,
		TotalAmount:   req.TotalAmount,
	}

	err = runTx(ctx, s.bills.DB(), func(tx *gorm.DB) error {
		if err := s.bills.CreateTx(ctx, tx, restaurantID, bill); err != nil {
			return err
		}
		for i := range req.Items {
			item := &model.BillItem{
				BillID:   bill.ID,
				ItemID:   req.Items[i].ItemID,
				ItemName: req.Items[i].ItemName,
				Quantity: req.Items[i].Quantity,
				Price:    req.Items[i].Price,
				Subtotal: req.Items[i].Subtotal,
			}
			if err := s.bills.CreateItemTx(ctx, tx, restaurantID, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if req.CustomerEmail != "" && s.receipts != nil {
		if err := s.receipts.EnqueueReceipt(ctx, restaurantID, bill.ID, req.CustomerEmail); err != nil {
			log.Error().Err(err).
				Int64("bill_id", bill.ID).
				Msg("failed to enqueue receipt job")
		}
	}

	return &dto.PlaceBillResponse{Success: true, BillID: bill.ID}, nil
}

func (s *billService) DailyCount(ctx context.Context, restaurantID int64, date string) (int64, error) {
	day := time.Now()
	if date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			return 0, inputErr("date must be YYYY-MM-DD")
		}
		day = parsed
	}
	return s.bills.CountByDate(ctx, restaurantID, day)
}

func (s *billService) List(ctx context.Context, restaurantID int64, filter dto.BillFilter) (*dto.BillListResponse, error) {
	day := time.Now()
	if filter.Date != "" {
		parsed, err := time.Parse("2006-01-02", filter.Date)
		if err != nil {
			return nil, inputErr("date must be YYYY-MM-DD")
		}
		day = parsed
	}

	bills, total, err := s.bills.List(ctx, restaurantID, day, filter.Page, filter.Limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.BillListResponse{
		Data:  make([]dto.BillResponse, 0, len(bills)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range bills {
		resp.Data = append(resp.Data, toBillResponse(&bills[i], nil))
	}
	return resp, nil
}

func (s *billService) Get(ctx context.Context, restaurantID, billID int64) (*dto.BillResponse, error) {
	bill, items, err := s.bills.FindByID(ctx, restaurantID, billID)
	if err != nil {
		return nil, err
	}
	resp := toBillResponse(bill, items)
	return &resp, nil
}

func toBillResponse(b *model.Bill, items []model.BillItem) dto.BillResponse {
	resp := dto.BillResponse{
		ID:            b.ID,
		BillNumber:    b.BillNumber,
		BillDate:      b.BillDate.Format(time.RFC3339),
		EmployeeName:  b.EmployeeName,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		PaymentMethod: b.PaymentMethod,
		TotalAmount:   b.TotalAmount,
	}
	for i := range items {
		resp.Items = append(resp.Items, dto.BillItemResponse{
			ItemID:   items[i].ItemID,
			ItemName: items[i].ItemName,
			Quantity: items[i].Quantity,
			Price:    items[i].Price,
			Subtotal: items[i].Subtotal,
		})
	}
	return resp
}

// parseBillDate accepts RFC 3339 or a bare date; empty means now.
func parseBillDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Time{}, inputErr("bill_date must be RFC 3339 or YYYY-MM-DD")
}
