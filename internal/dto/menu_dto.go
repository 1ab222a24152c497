package dto

import "github.com/shopspring/decimal"

type CreateMenuItemRequest struct {
	ItemName    string          `json:"item_name"   validate:"required,min=1"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"       validate:"min=0"`
	Category    string          `json:"category"`
	Available   *bool           `json:"available"`
}

type UpdateMenuItemRequest struct {
	ItemName    string           `json:"item_name"   validate:"omitempty,min=1"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"       validate:"omitempty,min=0"`
	Category    *string          `json:"category"`
	Available   *bool            `json:"available"`
}

type MenuItemResponse struct {
	ID          int64           `json:"id"`
	ItemName    string          `json:"item_name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Available   bool            `json:"available"`
}
