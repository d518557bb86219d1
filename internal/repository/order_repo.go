package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/zokirzonovbek1-art/school-food-system/internal/model"
)

type OrderFilter struct {
	StudentID uint
	Status    string
	Date      string
}

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, id uint) (*model.Order, error)
	FindByIDJoined(ctx context.Context, id uint) (*model.Order, error)
	FindAllJoined(ctx context.Context, filter OrderFilter) ([]*model.Order, error)
	Update(ctx context.Context, id uint, cols map[string]any) error
	Count(ctx context.Context) (int64, error)
	SumRevenue(ctx context.Context) (float64, error)
	CountReceivedOn(ctx context.Context, date string) (int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) FindByID(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	if err := r.db.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByIDJoined(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("MenuItem").
		First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindAllJoined(ctx context.Context, filter OrderFilter) ([]*model.Order, error) {
	var orders []*model.Order
	query := r.db.WithContext(ctx).
		Preload("Student").
		Preload("MenuItem").
		Order("created_at DESC, id DESC")

	if filter.StudentID != 0 {
		query = query.Where("student_id = ?", filter.StudentID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Date != "" {
		query = query.Where("order_date = ?", filter.Date)
	}

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) Update(ctx context.Context, id uint, cols map[string]any) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", id).Updates(cols).Error
}

func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).Count(&count).Error
	return count, err
}

func (r *orderRepository) SumRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("status IN ?", []string{model.OrderPaid, model.OrderReceived}).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&total).Error
	return total, err
}

func (r *orderRepository) CountReceivedOn(ctx context.Context, date string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_date = ? AND status = ?", date, model.OrderReceived).
		Count(&count).Error
	return count, err
}
