package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/zokirzonovbek1-art/school-food-system/internal/model"
)

type InventoryRepository interface {
	Create(ctx context.Context, item *model.InventoryItem) error
	FindByID(ctx context.Context, id uint) (*model.InventoryItem, error)
	FindAll(ctx context.Context, status, q string) ([]*model.InventoryItem, error)
	Update(ctx context.Context, id uint, cols map[string]any) error
	Delete(ctx context.Context, id uint) error
}

type inventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) Create(ctx context.Context, item *model.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *inventoryRepository) FindByID(ctx context.Context, id uint) (*model.InventoryItem, error) {
	var item model.InventoryItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepository) FindAll(ctx context.Context, status, q string) ([]*model.InventoryItem, error) {
	var items []*model.InventoryItem
	query := r.db.WithContext(ctx).Order("LOWER(product_name), id")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where(
			"LOWER(product_name) LIKE ? OR LOWER(COALESCE(category, '')) LIKE ? OR LOWER(COALESCE(supplier, '')) LIKE ?",
			like, like, like,
		)
	}
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *inventoryRepository) Update(ctx context.Context, id uint, cols map[string]any) error {
	return r.db.WithContext(ctx).Model(&model.InventoryItem{}).Where("id = ?", id).Updates(cols).Error
}

func (r *inventoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.InventoryItem{}, id).Error
}
