package service

import (
	"context"

	"github.com/zokirzonovbek1-art/school-food-system/internal/model"
	"github.com/zokirzonovbek1-art/school-food-system/internal/repository"
)

// Stats is the admin dashboard summary.
type Stats struct {
	TotalStudents   int64   `json:"totalStudents"`
	TotalOrders     int64   `json:"totalOrders"`
	TotalRevenue    float64 `json:"totalRevenue"`
	TodayAttendance int64   `json:"todayAttendance"`
	PendingRequests int64   `json:"pendingRequests"`
}

type StatsService interface {
	Summary(ctx context.Context) (*Stats, error)
}

type statsService struct {
	users     repository.UserRepository
	orders    repository.OrderRepository
	purchases repository.PurchaseRepository
}

func NewStatsService(users repository.UserRepository, orders repository.OrderRepository, purchases repository.PurchaseRepository) StatsService {
	return &statsService{users: users, orders: orders, purchases: purchases}
}

func (s *statsService) Summary(ctx context.Context) (*Stats, error) {
	students, err := s.users.CountActiveStudents(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.Count(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.orders.SumRevenue(ctx)
	if err != nil {
		return nil, err
	}
	attendance, err := s.orders.CountReceivedOn(ctx, model.Today())
	if err != nil {
		return nil, err
	}
	pending, err := s.purchases.CountByStatus(ctx, model.PurchasePending)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalStudents:   students,
		TotalOrders:     orders,
		TotalRevenue:    revenue,
		TodayAttendance: attendance,
		PendingRequests: pending,
	}, nil
}
