package repo

import (
	"context"

	"github.com/cklam2/canteen/internal/models"
)

const menuListLimit = 100

func (r *GormRepo) CreateMenuItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	if err := r.DB.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *GormRepo) GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.DB.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) ListMenuItems(ctx context.Context, onlyAvailable bool) ([]models.MenuItem, error) {
	q := r.DB.WithContext(ctx).Model(&models.MenuItem{})
	if onlyAvailable {
		q = q.Where("available = ?", true)
	}

	var items []models.MenuItem
	if err := q.Order("created_at DESC").Limit(menuListLimit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) SaveMenuItem(ctx context.Context, item *models.MenuItem) error {
	return r.DB.WithContext(ctx).Save(item).Error
}

func (r *GormRepo) DeleteMenuItem(ctx context.Context, id string) (bool, error) {
	res := r.DB.WithContext(ctx).Delete(&models.MenuItem{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *GormRepo) CreateDrink(ctx context.Context, drink *models.Drink) (*models.Drink, error) {
	if err := r.DB.WithContext(ctx).Create(drink).Error; err != nil {
		return nil, err
	}
	return drink, nil
}

func (r *GormRepo) GetDrink(ctx context.Context, id string) (*models.Drink, error) {
	var drink models.Drink
	if err := r.DB.WithContext(ctx).First(&drink, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &drink, nil
}

func (r *GormRepo) ListDrinks(ctx context.Context, onlyAvailable bool) ([]models.Drink, error) {
	q := r.DB.WithContext(ctx).Model(&models.Drink{})
	if onlyAvailable {
		q = q.Where("available = ?", true)
	}

	var drinks []models.Drink
	if err := q.Order("created_at DESC").Limit(menuListLimit).Find(&drinks).Error; err != nil {
		return nil, err
	}
	return drinks, nil
}

func (r *GormRepo) SaveDrink(ctx context.Context, drink *models.Drink) error {
	return r.DB.WithContext(ctx).Save(drink).Error
}

func (r *GormRepo) DeleteDrink(ctx context.Context, id string) (bool, error) {
	res := r.DB.WithContext(ctx).Delete(&models.Drink{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
