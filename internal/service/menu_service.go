package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"restomate/internal/dto"
	"restomate/internal/model"
	"restomate/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const menuCacheTTL = 5 * time.Minute

type MenuService interface {
	List(ctx context.Context, restaurantID int64) ([]dto.MenuItemResponse, error)
	Get(ctx context.Context, restaurantID, itemID int64) (*dto.MenuItemResponse, error)
	Create(ctx context.Context, restaurantID int64, req dto.CreateMenuItemRequest) (*dto.MenuItemResponse, error)
	Update(ctx context.Context, restaurantID, itemID int64, req dto.UpdateMenuItemRequest) (*dto.MenuItemResponse, error)
	Delete(ctx context.Context, restaurantID, itemID int64) error
}

// menuService fronts the tenant menu table with a short-lived Redis cache.
// Every write invalidates the tenant's cache key; cache trouble degrades to
// plain DB reads and is only logged.
type menuService struct {
	menu repository.MenuRepository
	rdb  *redis.Client
}

func NewMenuService(menu repository.MenuRepository, rdb *redis.Client) MenuService {
	return &menuService{menu: menu, rdb: rdb}
}

func menuCacheKey(restaurantID int64) string {
	return fmt.Sprintf("menu:%d", restaurantID)
}

func (s *menuService) List(ctx context.Context, restaurantID int64) ([]dto.MenuItemResponse, error) {
	key := menuCacheKey(restaurantID)
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
			var cached []dto.MenuItemResponse
			if json.Unmarshal(raw, &cached) == nil {
				return cached, nil
			}
		}
	}

	items, err := s.menu.List(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MenuItemResponse, 0, len(items))
	for i := range items {
		resp = append(resp, toMenuItemResponse(&items[i]))
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, key, raw, menuCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("menu cache write failed")
			}
		}
	}
	return resp, nil
}

func (s *menuService) Get(ctx context.Context, restaurantID, itemID int64) (*dto.MenuItemResponse, error) {
	item, err := s.menu.FindByID(ctx, restaurantID, itemID)
	if err != nil {
		return nil, err
	}
	resp := toMenuItemResponse(item)
	return &resp, nil
}

func (s *menuService) Create(ctx context.Context, restaurantID int64, req dto.CreateMenuItemRequest) (*dto.MenuItemResponse, error) {
	available := true
	if req.Available != nil {
		available = *req.Available
	}
	item := &model.MenuItem{
		ItemName:    req.ItemName,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Available:   available,
	}
	if err := s.menu.Create(ctx, restaurantID, item); err != nil {
		return nil, err
	}
	s.invalidate(ctx, restaurantID)
	resp := toMenuItemResponse(item)
	return &resp, nil
}

func (s *menuService) Update(ctx context.Context, restaurantID, itemID int64, req dto.UpdateMenuItemRequest) (*dto.MenuItemResponse, error) {
	item, err := s.menu.FindByID(ctx, restaurantID, itemID)
	if err != nil {
		return nil, err
	}

	if req.ItemName != "" {
		item.ItemName = req.ItemName
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := s.menu.Update(ctx, restaurantID, item); err != nil {
		return nil, err
	}
	s.invalidate(ctx, restaurantID)
	resp := toMenuItemResponse(item)
	return &resp, nil
}

func (s *menuService) Delete(ctx context.Context, restaurantID, itemID int64) error {
	if err := s.menu.Delete(ctx, restaurantID, itemID); err != nil {
		return err
	}
	s.invalidate(ctx, restaurantID)
	return nil
}

func (s *menuService) invalidate(ctx context.Context, restaurantID int64) {
	if s.rdb == nil {
		return
	}
	key := menuCacheKey(restaurantID)
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("menu cache invalidation failed")
	}
}

func toMenuItemResponse(item *model.MenuItem) dto.MenuItemResponse {
	return dto.MenuItemResponse{
		ID:          item.ID,
		ItemName:    item.ItemName,
		Description: item.Description,
		Price:       item.Price,
		Category:    item.Category,
		Available:   item.Available,
	}
}
