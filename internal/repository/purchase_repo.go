package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/zokirzonovbek1-art/school-food-system/internal/model"
)

type PurchaseRepository interface {
	Create(ctx context.Context, req *model.PurchaseRequest) error
	FindByID(ctx context.Context, id uint) (*model.PurchaseRequest, error)
	FindByIDJoined(ctx context.Context, id uint) (*model.PurchaseRequest, error)
	FindAll(ctx context.Context, status string, cookID uint) ([]*model.PurchaseRequest, error)
	Update(ctx context.Context, id uint, cols map[string]any) error
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type purchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) Create(ctx context.Context, req *model.PurchaseRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *purchaseRepository) FindByID(ctx context.Context, id uint) (*model.PurchaseRequest, error) {
	var req model.PurchaseRequest
	if err := r.db.WithContext(ctx).First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *purchaseRepository) FindByIDJoined(ctx context.Context, id uint) (*model.PurchaseRequest, error) {
	var req model.PurchaseRequest
	if err := r.db.WithContext(ctx).Preload("Cook").First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *purchaseRepository) FindAll(ctx context.Context, status string, cookID uint) ([]*model.PurchaseRequest, error) {
	var reqs []*model.PurchaseRequest
	query := r.db.WithContext(ctx).Preload("Cook").Order("created_at DESC, id DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if cookID != 0 {
		query = query.Where("cook_id = ?", cookID)
	}
	if err := query.Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *purchaseRepository) Update(ctx context.Context, id uint, cols map[string]any) error {
	return r.db.WithContext(ctx).Model(&model.PurchaseRequest{}).Where("id = ?", id).Updates(cols).Error
}

func (r *purchaseRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PurchaseRequest{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
