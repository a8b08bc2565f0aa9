package menu

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cklam2/canteen/internal/logging"
	"github.com/cklam2/canteen/internal/models"
	"github.com/cklam2/canteen/internal/repo"
	"github.com/cklam2/canteen/internal/transport"
)

var (
	ErrValidation = errors.New("validation") // 400
	ErrNotFound   = errors.New("not found")  // 404
)

// Indexer mirrors menu writes into the search index.
type Indexer interface {
	IndexMenuItem(ctx context.Context, item *models.MenuItem) error
	DeleteMenuItem(ctx context.Context, id string) error
}

type Service struct {
	Repo    *repo.GormRepo
	Indexer Indexer
}

func (s *Service) CreateMenuItem(ctx context.Context, req transport.MenuItemRequest) (*models.MenuItem, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}

	item := &models.MenuItem{
		ID:                  uuid.NewString(),
		Name:                req.Name,
		Price:               req.Price,
		Image:               req.Image,
		Category:            req.Category,
		Calories:            req.Calories,
		HasDiscountedDrinks: req.HasDiscountedDrinks,
		Available:           req.Available,
		CreatedAt:           time.Now().UTC(),
	}
	created, err := s.Repo.CreateMenuItem(ctx, item)
	if err != nil {
		return nil, err
	}

	s.index(ctx, created)
	return created, nil
}

func (s *Service) ListMenuItems(ctx context.Context, onlyAvailable bool) ([]models.MenuItem, error) {
	return s.Repo.ListMenuItems(ctx, onlyAvailable)
}

func (s *Service) PatchMenuItem(ctx context.Context, id string, req transport.PatchMenuItemRequest) (*models.MenuItem, error) {
	item, err := s.Repo.GetMenuItem(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: menu item %s", ErrNotFound, id)
		}
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
		}
		item.Price = *req.Price
	}
	if req.Image != nil {
		item.Image = *req.Image
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Calories != nil {
		item.Calories = *req.Calories
	}
	if req.HasDiscountedDrinks != nil {
		item.HasDiscountedDrinks = *req.HasDiscountedDrinks
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := s.Repo.SaveMenuItem(ctx, item); err != nil {
		return nil, err
	}

	s.index(ctx, item)
	return item, nil
}

func (s *Service) DeleteMenuItem(ctx context.Context, id string) error {
	deleted, err := s.Repo.DeleteMenuItem(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: menu item %s", ErrNotFound, id)
	}

	if s.Indexer != nil {
		if err := s.Indexer.DeleteMenuItem(ctx, id); err != nil {
			logging.FromContext(ctx).Error("search index delete failed", "id", id, "error", err)
		}
	}
	return nil
}

func (s *Service) CreateDrink(ctx context.Context, req transport.DrinkRequest) (*models.Drink, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if req.OriginalPrice < 0 || req.DiscountedPrice < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	if req.DiscountedPrice > req.OriginalPrice {
		return nil, fmt.Errorf("%w: discounted price must not exceed original price", ErrValidation)
	}

	drink := &models.Drink{
		ID:              uuid.NewString(),
		Name:            req.Name,
		OriginalPrice:   req.OriginalPrice,
		DiscountedPrice: req.DiscountedPrice,
		Image:           req.Image,
		Available:       req.Available,
		CreatedAt:       time.Now().UTC(),
	}
	return s.Repo.CreateDrink(ctx, drink)
}

func (s *Service) ListDrinks(ctx context.Context, onlyAvailable bool) ([]models.Drink, error) {
	return s.Repo.ListDrinks(ctx, onlyAvailable)
}

func (s *Service) PatchDrink(ctx context.Context, id string, req transport.PatchDrinkRequest) (*models.Drink, error) {
	drink, err := s.Repo.GetDrink(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: drink %s", ErrNotFound, id)
		}
		return nil, err
	}

	if req.Name != nil {
		drink.Name = *req.Name
	}
	if req.OriginalPrice != nil {
		drink.OriginalPrice = *req.OriginalPrice
	}
	if req.DiscountedPrice != nil {
		drink.DiscountedPrice = *req.DiscountedPrice
	}
	if req.Image != nil {
		drink.Image = *req.Image
	}
	if req.Available != nil {
		drink.Available = *req.Available
	}
	if drink.OriginalPrice < 0 || drink.DiscountedPrice < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	if drink.DiscountedPrice > drink.OriginalPrice {
		return nil, fmt.Errorf("%w: discounted price must not exceed original price", ErrValidation)
	}

	if err := s.Repo.SaveDrink(ctx, drink); err != nil {
		return nil, err
	}
	return drink, nil
}

func (s *Service) DeleteDrink(ctx context.Context, id string) error {
	deleted, err := s.Repo.DeleteDrink(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: drink %s", ErrNotFound, id)
	}
	return nil
}

func (s *Service) index(ctx context.Context, item *models.MenuItem) {
	if s.Indexer == nil {
		return
	}
	if err := s.Indexer.IndexMenuItem(ctx, item); err != nil {
		logging.FromContext(ctx).Error("search index write failed", "id", item.ID, "error", err)
	}
}
