package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/zokirzonovbek1-art/school-food-system/internal/model"
)

type MenuRepository interface {
	Create(ctx context.Context, item *model.MenuItem) error
	FindByID(ctx context.Context, id uint) (*model.MenuItem, error)
	FindAll(ctx context.Context, date, mealType string) ([]*model.MenuItem, error)
	Update(ctx context.Context, id uint, cols map[string]any) error
	Delete(ctx context.Context, id uint) error
}

type menuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) Create(ctx context.Context, item *model.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *menuRepository) FindByID(ctx context.Context, id uint) (*model.MenuItem, error) {
	var item model.MenuItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuRepository) FindAll(ctx context.Context, date, mealType string) ([]*model.MenuItem, error) {
	var items []*model.MenuItem
	query := r.db.WithContext(ctx).Order("date DESC, id")
	if date != "" {
		query = query.Where("date = ?", date)
	}
	if mealType != "" {
		query = query.Where("meal_type = ?", mealType)
	}
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *menuRepository) Update(ctx context.Context, id uint, cols map[string]any) error {
	return r.db.WithContext(ctx).Model(&model.MenuItem{}).Where("id = ?", id).Updates(cols).Error
}

func (r *menuRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.MenuItem{}, id).Error
}
