package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/zokirzonovbek1-art/school-food-system/internal/fieldmap"
	"github.com/zokirzonovbek1-art/school-food-system/internal/model"
	"github.com/zokirzonovbek1-art/school-food-system/internal/repository"
)

func newOrderService(t *testing.T) (OrderService, *gorm.DB, *recordingNotifier) {
	t.Helper()
	db := newTestDB(t)
	notifier := &recordingNotifier{}
	svc := NewOrderService(repository.NewOrderRepository(db), repository.NewMenuRepository(db), notifier)
	return svc, db, notifier
}

func TestOrderCreateComputesTotalAndNotifies(t *testing.T) {
	svc, db, notifier := newOrderService(t)
	ctx := context.Background()

	student := seedUser(t, db, model.RoleStudent, true)
	menu := seedMenuItem(t, db, "Борщ", 120)

	order, err := svc.Create(ctx, fieldmap.Payload{
		"studentId": float64(student.ID),
		"dishId":    float64(menu.ID),
		"quantity":  float64(2),
	})
	require.NoError(t, err)
	assert.Equal(t, float64(240), order.TotalPrice)
	assert.Equal(t, model.OrderPending, order.Status)
	assert.Equal(t, model.PaymentOneTime, order.PaymentType)
	assert.Equal(t, model.Today(), order.OrderDate)
	assert.Equal(t, menu.MealType, order.MealType)
	require.NotNil(t, order.MenuItem)
	assert.Equal(t, "Борщ", order.MenuItem.Name)

	require.Len(t, notifier.emitted, 1)
	e := notifier.emitted[0]
	assert.Equal(t, student.ID, e.UserID)
	assert.Equal(t, model.NotifOrder, e.Type)
	assert.Equal(t, "Новый заказ", e.Title)
	assert.Equal(t, "Ваш заказ 'Борщ' принят", e.Message)
	assert.Equal(t, "/student.html", e.Link)
}

func TestOrderCreateValidation(t *testing.T) {
	svc, db, _ := newOrderService(t)
	ctx := context.Background()

	student := seedUser(t, db, model.RoleStudent, true)
	menu := seedMenuItem(t, db, "Каша", 60)

	_, err := svc.Create(ctx, fieldmap.Payload{"studentId": float64(student.ID)})
	require.Error(t, err)
	assert.Equal(t, "studentId and menuId required", err.Error())

	_, err = svc.Create(ctx, fieldmap.Payload{
		"studentId":   float64(student.ID),
		"menuId":      float64(menu.ID),
		"paymentType": "crypto",
	})
	require.Error(t, err)
	assert.Equal(t, "paymentType must be one_time|subscription", err.Error())

	_, err = svc.Create(ctx, fieldmap.Payload{
		"studentId": float64(student.ID),
		"menuId":    float64(menu.ID),
		"quantity":  float64(0),
	})
	require.Error(t, err)
	assert.Equal(t, "quantity must be positive integer", err.Error())

	_, err = svc.Create(ctx, fieldmap.Payload{
		"studentId": float64(student.ID),
		"menuId":    float64(9999),
	})
	require.Error(t, err)
	assert.Equal(t, "Блюдо не найдено", err.Error())

	_, err = svc.Create(ctx, fieldmap.Payload{
		"studentId": float64(student.ID),
		"menuId":    float64(menu.ID),
		"status":    "lost",
	})
	require.Error(t, err)
	assert.Equal(t, "Некорректный status", err.Error())

	_, err = svc.Create(ctx, fieldmap.Payload{
		"studentId": float64(student.ID),
		"menuId":    float64(menu.ID),
		"type":      "dinner",
	})
	require.Error(t, err)
	assert.Equal(t, "type must be breakfast|lunch", err.Error())
}

func TestOrderCreateDateAndReceivedAt(t *testing.T) {
	svc, db, _ := newOrderService(t)
	ctx := context.Background()

	student := seedUser(t, db, model.RoleStudent, true)
	menu := &model.MenuItem{
		Date:        "2026-01-15",
		MealType:    model.MealLunch,
		Name:        "Запеканка",
		Price:       70,
		IsAvailable: true,
		CreatedAt:   model.UTCNow(),
	}
	require.NoError(t, db.Create(menu).Error)

	// Without an explicit date the order lands on today, not the menu day.
	order, err := svc.Create(ctx, fieldmap.Payload{
		"studentId":  float64(student.ID),
		"menuId":     float64(menu.ID),
		"mealType":   model.MealBreakfast,
		"receivedAt": "2026-01-15T12:00:00",
	})
	require.NoError(t, err)
	assert.Equal(t, model.Today(), order.OrderDate)
	assert.Equal(t, model.MealBreakfast, order.MealType)
	require.NotNil(t, order.ReceivedAt)
	assert.Equal(t, "2026-01-15T12:00:00", *order.ReceivedAt)
}

func TestOrderUpdateReceivedStampsAndNotifies(t *testing.T) {
	svc, db, notifier := newOrderService(t)
	ctx := context.Background()

	student := seedUser(t, db, model.RoleStudent, true)
	menu := seedMenuItem(t, db, "Суп", 80)

	order, err := svc.Create(ctx, fieldmap.Payload{
		"studentId": float64(student.ID),
		"menuId":    float64(menu.ID),
	})
	require.NoError(t, err)
	notifier.emitted = nil

	updated, err := svc.Update(ctx, order.ID, fieldmap.Payload{"status": model.OrderReceived})
	require.NoError(t, err)
	assert.Equal(t, model.OrderReceived, updated.Status)
	require.NotNil(t, updated.ReceivedAt)

	require.Len(t, notifier.emitted, 1)
	assert.Equal(t, "Заказ получен", notifier.emitted[0].Title)
	assert.Equal(t, "Ваш заказ был успешно получен", notifier.emitted[0].Message)

	// Setting received again does not renotify.
	notifier.emitted = nil
	_, err = svc.Update(ctx, order.ID, fieldmap.Payload{"status": model.OrderReceived})
	require.NoError(t, err)
	assert.Empty(t, notifier.emitted)
}

func TestOrderUpdateCancelledIsSilent(t *testing.T) {
	svc, db, notifier := newOrderService(t)
	ctx := context.Background()

	student := seedUser(t, db, model.RoleStudent, true)
	menu := seedMenuItem(t, db, "Рагу", 110)

	order, err := svc.Create(ctx, fieldmap.Payload{
		"studentId": float64(student.ID),
		"menuId":    float64(menu.ID),
	})
	require.NoError(t, err)
	notifier.emitted = nil

	// Only the received transition notifies the student.
	updated, err := svc.Update(ctx, order.ID, fieldmap.Payload{"status": model.OrderCancelled})
	require.NoError(t, err)
	assert.Equal(t, model.OrderCancelled, updated.Status)
	assert.Nil(t, updated.ReceivedAt)
	assert.Empty(t, notifier.emitted)
}

func TestOrderUpdateRejectsBadStatus(t *testing.T) {
	svc, db, _ := newOrderService(t)
	ctx := context.Background()

	student := seedUser(t, db, model.RoleStudent, true)
	menu := seedMenuItem(t, db, "Плов", 150)

	order, err := svc.Create(ctx, fieldmap.Payload{
		"studentId": float64(student.ID),
		"menuId":    float64(menu.ID),
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, order.ID, fieldmap.Payload{"status": "teleported"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status")
}

func TestOrderUpdateNotFound(t *testing.T) {
	svc, _, _ := newOrderService(t)

	_, err := svc.Update(context.Background(), 4242, fieldmap.Payload{"status": model.OrderPaid})
	require.Error(t, err)
	assert.Equal(t, "Заказ не найден", err.Error())
}

func TestOrderListFilters(t *testing.T) {
	svc, db, _ := newOrderService(t)
	ctx := context.Background()

	s1 := seedUser(t, db, model.RoleStudent, true)
	s2 := seedUser(t, db, model.RoleStudent, true)
	menu := seedMenuItem(t, db, "Котлета", 90)

	for _, sid := range []uint{s1.ID, s1.ID, s2.ID} {
		_, err := svc.Create(ctx, fieldmap.Payload{
			"studentId": float64(sid),
			"menuId":    float64(menu.ID),
		})
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, repository.OrderFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := svc.List(ctx, repository.OrderFilter{StudentID: s1.ID})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	paid, err := svc.List(ctx, repository.OrderFilter{Status: model.OrderPaid})
	require.NoError(t, err)
	assert.Empty(t, paid)
}
