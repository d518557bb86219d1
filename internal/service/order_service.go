package service

import (
	"context"
	"fmt"

	"github.com/zokirzonovbek1-art/school-food-system/internal/fieldmap"
	"github.com/zokirzonovbek1-art/school-food-system/internal/model"
	"github.com/zokirzonovbek1-art/school-food-system/internal/repository"
	"github.com/zokirzonovbek1-art/school-food-system/pkg/apperror"
)

var orderStatuses = []string{
	model.OrderPending, model.OrderPaid, model.OrderPreparing,
	model.OrderReady, model.OrderReceived, model.OrderCancelled,
}

var orderUpdateFields = fieldmap.Mapping{
	{Key: "status", Column: "status", Rule: fieldmap.Enum(orderStatuses...)},
	{Key: "receivedAt", Column: "received_at"},
	{Key: "specialInstructions", Column: "special_instructions"},
	{Key: "paymentType", Column: "payment_type", Rule: fieldmap.Enum(model.PaymentOneTime, model.PaymentSubscription)},
	{Key: "subscriptionId", Column: "subscription_id", Rule: fieldmap.IntOrNil},
}

type OrderService interface {
	List(ctx context.Context, filter repository.OrderFilter) ([]*model.Order, error)
	Get(ctx context.Context, id uint) (*model.Order, error)
	Create(ctx context.Context, payload fieldmap.Payload) (*model.Order, error)
	Update(ctx context.Context, id uint, payload fieldmap.Payload) (*model.Order, error)
}

type orderService struct {
	orders   repository.OrderRepository
	menus    repository.MenuRepository
	notifier Notifier
}

func NewOrderService(orders repository.OrderRepository, menus repository.MenuRepository, notifier Notifier) OrderService {
	return &orderService{orders: orders, menus: menus, notifier: notifier}
}

func (s *orderService) List(ctx context.Context, filter repository.OrderFilter) ([]*model.Order, error) {
	return s.orders.FindAllJoined(ctx, filter)
}

func (s *orderService) Get(ctx context.Context, id uint) (*model.Order, error) {
	order, err := s.orders.FindByIDJoined(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Заказ не найден")
	}
	return order, nil
}

func (s *orderService) Create(ctx context.Context, payload fieldmap.Payload) (*model.Order, error) {
	studentID, okStudent, err := payload.Int("studentId", "student_id")
	if err != nil {
		return nil, apperror.BadRequest("studentId and menuId required")
	}
	menuID, okMenu, err := payload.Int("menuId", "menu_id", "dishId", "dish_id")
	if err != nil || !okStudent || !okMenu {
		return nil, apperror.BadRequest("studentId and menuId required")
	}

	mealType := payload.String("type", "mealType")
	if mealType != "" && mealType != model.MealBreakfast && mealType != model.MealLunch {
		return nil, apperror.BadRequest("type must be breakfast|lunch")
	}

	paymentType := payload.String("paymentType", "payment_type")
	if paymentType == "" {
		paymentType = model.PaymentOneTime
	}
	if paymentType != model.PaymentOneTime && paymentType != model.PaymentSubscription {
		return nil, apperror.BadRequest("paymentType must be one_time|subscription")
	}

	quantity := 1
	if v, ok, err := payload.Int("quantity"); ok || err != nil {
		if err != nil || v <= 0 {
			return nil, apperror.BadRequest("quantity must be positive integer")
		}
		quantity = v
	}

	menu, err := s.menus.FindByID(ctx, uint(menuID))
	if err != nil {
		return nil, notFoundOr(err, "Блюдо не найдено")
	}

	status := payload.String("status")
	if status == "" {
		status = model.OrderPending
	}
	if !contains(orderStatuses, status) {
		return nil, apperror.BadRequest("Некорректный status")
	}

	orderDate := payload.String("date", "orderDate", "order_date")
	if orderDate == "" {
		orderDate = model.Today()
	}

	if mealType == "" {
		mealType = menu.MealType
	}

	order := &model.Order{
		StudentID:   uint(studentID),
		MenuItemID:  menu.ID,
		OrderDate:   orderDate,
		MealType:    mealType,
		Quantity:    quantity,
		TotalPrice:  menu.Price * float64(quantity),
		Status:      status,
		PaymentType: paymentType,
		CreatedAt:   model.UTCNow(),
	}
	setOptional(&order.SpecialInstructions, payload.String("specialInstructions", "special_instructions"))
	setOptional(&order.ReceivedAt, payload.String("receivedAt", "received_at"))
	if subID, ok, err := payload.Int("subscriptionId", "subscription_id"); err == nil && ok {
		order.SubscriptionID = &subID
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.notifier.Emit(ctx, order.StudentID, model.NotifOrder,
		"Новый заказ",
		fmt.Sprintf("Ваш заказ '%s' принят", menu.Name),
		"/student.html")

	return s.orders.FindByIDJoined(ctx, order.ID)
}

func (s *orderService) Update(ctx context.Context, id uint, payload fieldmap.Payload) (*model.Order, error) {
	before, err := s.orders.FindByIDJoined(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Заказ не найден")
	}

	assignments, err := orderUpdateFields.Apply(payload)
	if err != nil {
		return nil, mapFieldError(err)
	}

	cols := fieldmap.Columns(assignments)

	// Marking the order received stamps the pickup time unless the caller
	// supplied one.
	newStatus, statusChanged := cols["status"].(string)
	if _, has := cols["received_at"]; !has && statusChanged && newStatus == model.OrderReceived {
		cols["received_at"] = model.UTCNow()
	}

	if err := s.orders.Update(ctx, id, cols); err != nil {
		return nil, err
	}

	if statusChanged && newStatus == model.OrderReceived && before.Status != model.OrderReceived {
		s.notifier.Emit(ctx, before.StudentID, model.NotifOrder,
			"Заказ получен",
			"Ваш заказ был успешно получен",
			"/student.html")
	}

	return s.orders.FindByIDJoined(ctx, id)
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
