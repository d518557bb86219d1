package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/zokirzonovbek1-art/school-food-system/internal/fieldmap"
	"github.com/zokirzonovbek1-art/school-food-system/internal/model"
	"github.com/zokirzonovbek1-art/school-food-system/internal/repository"
	"github.com/zokirzonovbek1-art/school-food-system/pkg/apperror"
)

var paymentMethods = []string{
	model.PayMethodCard, model.PayMethodSBP, model.PayMethodCash, model.PayMethodTransfer,
}

type PaymentService interface {
	ListByUser(ctx context.Context, userID uint) ([]*model.Payment, error)
	Get(ctx context.Context, id uint) (*model.Payment, error)
	Create(ctx context.Context, payload fieldmap.Payload) (*model.Payment, error)
	Complete(ctx context.Context, id uint) (*model.Payment, error)
}

type paymentService struct {
	payments repository.PaymentRepository
	users    repository.UserRepository
	notifier Notifier
}

func NewPaymentService(payments repository.PaymentRepository, users repository.UserRepository, notifier Notifier) PaymentService {
	return &paymentService{payments: payments, users: users, notifier: notifier}
}

func (s *paymentService) ListByUser(ctx context.Context, userID uint) ([]*model.Payment, error) {
	return s.payments.FindByUser(ctx, userID)
}

func (s *paymentService) Get(ctx context.Context, id uint) (*model.Payment, error) {
	payment, err := s.payments.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Платеж не найден")
	}
	return payment, nil
}

func (s *paymentService) Create(ctx context.Context, payload fieldmap.Payload) (*model.Payment, error) {
	userID, okUser, err := payload.Int("userId", "user_id", "studentId")
	if err != nil || !okUser {
		return nil, apperror.BadRequest("userId and amount required")
	}
	amount, okAmount, err := payload.Float("amount")
	if err != nil || !okAmount {
		return nil, apperror.BadRequest("userId and amount required")
	}
	if amount <= 0 {
		return nil, apperror.BadRequest("amount must be positive")
	}

	method := payload.String("paymentMethod", "method")
	if method == "" {
		method = model.PayMethodCard
	}
	if !contains(paymentMethods, method) {
		return nil, apperror.BadRequest("paymentMethod must be card|sbp|cash|transfer")
	}

	if _, err := s.users.FindByID(ctx, uint(userID)); err != nil {
		return nil, notFoundOr(err, "Пользователь не найден")
	}

	txID := uuid.NewString()
	payment := &model.Payment{
		UserID:        uint(userID),
		Amount:        amount,
		PaymentMethod: method,
		TransactionID: &txID,
		Status:        model.PayPending,
		CreatedAt:     model.UTCNow(),
	}
	setOptional(&payment.Description, payload.String("description"))
	setOptional(&payment.Metadata, payload.String("metadata"))

	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// Complete marks a pending payment completed, credits the user's balance and
// sends a payment notification. Completing twice is a conflict.
func (s *paymentService) Complete(ctx context.Context, id uint) (*model.Payment, error) {
	payment, err := s.payments.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Платеж не найден")
	}
	if payment.Status != model.PayPending {
		return nil, apperror.Conflict("Платеж уже обработан")
	}

	now := model.UTCNow()
	cols := map[string]any{
		"status":       model.PayCompleted,
		"completed_at": now,
	}
	if err := s.payments.Update(ctx, id, cols); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, payment.UserID)
	if err == nil {
		balanceCols := map[string]any{
			"balance":    user.Balance + payment.Amount,
			"updated_at": now,
		}
		if err := s.users.Update(ctx, user.ID, balanceCols); err != nil {
			return nil, err
		}
	}

	s.notifier.Emit(ctx, payment.UserID, model.NotifPayment,
		"Баланс пополнен",
		fmt.Sprintf("Ваш баланс пополнен на %.2f ₽", payment.Amount),
		"/student.html")

	return s.payments.FindByID(ctx, id)
}
