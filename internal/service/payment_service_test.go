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

func newPaymentService(t *testing.T) (PaymentService, *gorm.DB, *recordingNotifier) {
	t.Helper()
	db := newTestDB(t)
	notifier := &recordingNotifier{}
	svc := NewPaymentService(repository.NewPaymentRepository(db), repository.NewUserRepository(db), notifier)
	return svc, db, notifier
}

func TestPaymentCreateAssignsTransactionID(t *testing.T) {
	svc, db, _ := newPaymentService(t)
	ctx := context.Background()

	student := seedUser(t, db, model.RoleStudent, true)

	payment, err := svc.Create(ctx, fieldmap.Payload{
		"userId": float64(student.ID),
		"amount": float64(500),
	})
	require.NoError(t, err)
	assert.Equal(t, model.PayPending, payment.Status)
	assert.Equal(t, model.PayMethodCard, payment.PaymentMethod)
	require.NotNil(t, payment.TransactionID)
	assert.NotEmpty(t, *payment.TransactionID)

	second, err := svc.Create(ctx, fieldmap.Payload{
		"userId": float64(student.ID),
		"amount": float64(100),
		"method": "sbp",
	})
	require.NoError(t, err)
	assert.Equal(t, model.PayMethodSBP, second.PaymentMethod)
	assert.NotEqual(t, *payment.TransactionID, *second.TransactionID)
}

func TestPaymentCreateValidation(t *testing.T) {
	svc, db, _ := newPaymentService(t)
	ctx := context.Background()
	student := seedUser(t, db, model.RoleStudent, true)

	_, err := svc.Create(ctx, fieldmap.Payload{"amount": float64(10)})
	require.Error(t, err)
	assert.Equal(t, "userId and amount required", err.Error())

	_, err = svc.Create(ctx, fieldmap.Payload{
		"userId": float64(student.ID),
		"amount": float64(-5),
	})
	require.Error(t, err)
	assert.Equal(t, "amount must be positive", err.Error())

	_, err = svc.Create(ctx, fieldmap.Payload{
		"userId": float64(student.ID),
		"amount": float64(10),
		"method": "barter",
	})
	require.Error(t, err)
	assert.Equal(t, "paymentMethod must be card|sbp|cash|transfer", err.Error())

	_, err = svc.Create(ctx, fieldmap.Payload{
		"userId": float64(9999),
		"amount": float64(10),
	})
	require.Error(t, err)
	assert.Equal(t, "Пользователь не найден", err.Error())
}

func TestPaymentCompleteCreditsBalance(t *testing.T) {
	svc, db, notifier := newPaymentService(t)
	ctx := context.Background()

	student := seedUser(t, db, model.RoleStudent, true)
	users := repository.NewUserRepository(db)

	payment, err := svc.Create(ctx, fieldmap.Payload{
		"userId": float64(student.ID),
		"amount": float64(300),
	})
	require.NoError(t, err)

	completed, err := svc.Complete(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PayCompleted, completed.Status)
	require.NotNil(t, completed.CompletedAt)

	refreshed, err := users.FindByID(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(300), refreshed.Balance)

	require.Len(t, notifier.emitted, 1)
	assert.Equal(t, model.NotifPayment, notifier.emitted[0].Type)
	assert.Equal(t, "Баланс пополнен", notifier.emitted[0].Title)

	// Completing twice is refused and does not double-credit.
	_, err = svc.Complete(ctx, payment.ID)
	require.Error(t, err)
	assert.Equal(t, "Платеж уже обработан", err.Error())

	refreshed, err = users.FindByID(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(300), refreshed.Balance)
}

func TestPaymentListByUser(t *testing.T) {
	svc, db, _ := newPaymentService(t)
	ctx := context.Background()

	s1 := seedUser(t, db, model.RoleStudent, true)
	s2 := seedUser(t, db, model.RoleStudent, true)

	for _, id := range []uint{s1.ID, s1.ID, s2.ID} {
		_, err := svc.Create(ctx, fieldmap.Payload{
			"userId": float64(id),
			"amount": float64(10),
		})
		require.NoError(t, err)
	}

	mine, err := svc.ListByUser(ctx, s1.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}
