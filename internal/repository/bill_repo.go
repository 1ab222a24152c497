package repository

import (
	"context"
	"fmt"
	"time"

	"restomate/internal/model"
	"restomate/internal/tenant"

	"gorm.io/gorm"
)

type BillRepository interface {
	// CreateTx inserts the bill row and populates b.ID from RETURNING.
	CreateTx(ctx context.Context, tx *gorm.DB, restaurantID int64, b *model.Bill) error
	CreateItemTx(ctx context.Context, tx *gorm.DB, restaurantID int64, item *model.BillItem) error
	// CountByDate is the advisory per-day bill count behind the suggested
	// bill_number. Read-only; runs outside the placement transaction.
	CountByDate(ctx context.Context, restaurantID int64, date time.Time) (int64, error)
	FindByID(ctx context.Context, restaurantID, billID int64) (*model.Bill, []model.BillItem, error)
	List(ctx context.Context, restaurantID int64, date time.Time, page, limit int) ([]model.Bill, int64, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type billRepo struct{ db *gorm.DB }

func NewBillRepository(db *gorm.DB) BillRepository { return &billRepo{db: db} }

func (r *billRepo) DB() *gorm.DB { return r.db }

func (r *billRepo) billsTable(restaurantID int64) string {
	return tenant.Table(tenant.Bills, restaurantID)
}

func (r *billRepo) itemsTable(restaurantID int64) string {
	return tenant.Table(tenant.BillItems, restaurantID)
}

func (r *billRepo) CreateTx(ctx context.Context, tx *gorm.DB, restaurantID int64, b *model.Bill) error {
	q := fmt.Sprintf(`INSERT INTO %s
		(restaurant_id, bill_number, bill_date, employee_id, employee_name,
		 customer_name, customer_phone, payment_method, total_amount)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`, r.billsTable(restaurantID))
	return tx.WithContext(ctx).
		Raw(q, b.RestaurantID, b.BillNumber, b.BillDate, b.EmployeeID, b.EmployeeName,
			b.CustomerName, b.CustomerPhone, b.PaymentMethod, b.TotalAmount).
		Scan(&b.ID).Error
}

func (r *billRepo) CreateItemTx(ctx context.Context, tx *gorm.DB, restaurantID int64, item *model.BillItem) error {
	q := fmt.Sprintf(`INSERT INTO %s
		(bill_id, item_id, item_name, quantity, price, subtotal)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`, r.itemsTable(restaurantID))
	return tx.WithContext(ctx).
		Raw(q, item.BillID, item.ItemID, item.ItemName, item.Quantity, item.Price, item.Subtotal).
		Scan(&item.ID).Error
}

func (r *billRepo) CountByDate(ctx context.Context, restaurantID int64, date time.Time) (int64, error) {
	var count int64
	q := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE bill_date::date = ?::date`,
		r.billsTable(restaurantID))
	err := r.db.WithContext(ctx).Raw(q, date.Format("2006-01-02")).Scan(&count).Error
	return count, err
}

func (r *billRepo) FindByID(ctx context.Context, restaurantID, billID int64) (*model.Bill, []model.BillItem, error) {
	var b model.Bill
	err := r.db.WithContext(ctx).Table(r.billsTable(restaurantID)).
		Where("id = ?", billID).First(&b).Error
	if err != nil {
		return nil, nil, err
	}

	var items []model.BillItem
	err = r.db.WithContext(ctx).Table(r.itemsTable(restaurantID)).
		Where("bill_id = ?", billID).Order("id ASC").Find(&items).Error
	if err != nil {
		return nil, nil, err
	}
	return &b, items, nil
}

func (r *billRepo) List(ctx context.Context, restaurantID int64, date time.Time, page, limit int) ([]model.Bill, int64, error) {
	var bills []model.Bill
	var total int64
	offset := (page - 1) * limit

	q := r.db.WithContext(ctx).Table(r.billsTable(restaurantID)).
		Where("bill_date::date = ?::date", date.Format("2006-01-02"))

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("bill_date DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&bills).Error
	return bills, total, err
}
