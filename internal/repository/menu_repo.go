package repository

import (
	"context"

	"restomate/internal/model"
	"restomate/internal/tenant"

	"gorm.io/gorm"
)

type MenuRepository interface {
	List(ctx context.Context, restaurantID int64) ([]model.MenuItem, error)
	FindByID(ctx context.Context, restaurantID, itemID int64) (*model.MenuItem, error)
	Create(ctx context.Context, restaurantID int64, item *model.MenuItem) error
	Update(ctx context.Context, restaurantID int64, item *model.MenuItem) error
	Delete(ctx context.Context, restaurantID, itemID int64) error
}

type menuRepo struct{ db *gorm.DB }

func NewMenuRepository(db *gorm.DB) MenuRepository { return &menuRepo{db: db} }

func (r *menuRepo) table(restaurantID int64) string {
	return tenant.Table(tenant.Menu, restaurantID)
}

func (r *menuRepo) List(ctx context.Context, restaurantID int64) ([]model.MenuItem, error) {
	var items []model.MenuItem
	err := r.db.WithContext(ctx).Table(r.table(restaurantID)).
		Order("category ASC, item_name ASC").
		Find(&items).Error
	return items, err
}

func (r *menuRepo) FindByID(ctx context.Context, restaurantID, itemID int64) (*model.MenuItem, error) {
	var item model.MenuItem
	err := r.db.WithContext(ctx).Table(r.table(restaurantID)).
		Where("id = ?", itemID).First(&item).Error
	return &item, err
}

func (r *menuRepo) Create(ctx context.Context, restaurantID int64, item *model.MenuItem) error {
	return r.db.WithContext(ctx).Table(r.table(restaurantID)).Create(item).Error
}

func (r *menuRepo) Update(ctx context.Context, restaurantID int64, item *model.MenuItem) error {
	res := r.db.WithContext(ctx).Table(r.table(restaurantID)).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"item_name":   item.ItemName,
			"description": item.Description,
			"price":       item.Price,
			"category":    item.Category,
			"available":   item.Available,
			"updated_at":  gorm.Expr("now()"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *menuRepo) Delete(ctx context.Context, restaurantID, itemID int64) error {
	res := r.db.WithContext(ctx).Table(r.table(restaurantID)).
		Where("id = ?", itemID).Delete(&model.MenuItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
