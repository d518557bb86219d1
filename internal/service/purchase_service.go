package service

import (
	"context"
	"fmt"

	"github.com/zokirzonovbek1-art/school-food-system/internal/fieldmap"
	"github.com/zokirzonovbek1-art/school-food-system/internal/model"
	"github.com/zokirzonovbek1-art/school-food-system/internal/repository"
	"github.com/zokirzonovbek1-art/school-food-system/pkg/apperror"
)

var purchaseUpdateFields = fieldmap.Mapping{
	{Key: "status", Column: "status", Rule: fieldmap.Enum(
		model.PurchasePending, model.PurchaseApproved,
		model.PurchaseRejected, model.PurchaseCompleted)},
	{Key: "adminId", Column: "admin_id", Rule: fieldmap.IntOrNil},
	{Key: "adminNotes", Column: "admin_notes"},
	{Key: "approvedAt", Column: "approved_at"},
	{Key: "completedAt", Column: "completed_at"},
}

// purchaseStatusLabels are the past-tense forms used in the status-change
// notification text.
var purchaseStatusLabels = map[string]string{
	model.PurchasePending:   "в ожидании",
	model.PurchaseApproved:  "одобрена",
	model.PurchaseRejected:  "отклонена",
	model.PurchaseCompleted: "выполнена",
}

type PurchaseService interface {
	List(ctx context.Context, status string, cookID uint) ([]*model.PurchaseRequest, error)
	Get(ctx context.Context, id uint) (*model.PurchaseRequest, error)
	Create(ctx context.Context, payload fieldmap.Payload) (*model.PurchaseRequest, error)
	Update(ctx context.Context, id uint, payload fieldmap.Payload) (*model.PurchaseRequest, error)
}

type purchaseService struct {
	purchases repository.PurchaseRepository
	users     repository.UserRepository
	notifier  Notifier
}

func NewPurchaseService(purchases repository.PurchaseRepository, users repository.UserRepository, notifier Notifier) PurchaseService {
	return &purchaseService{purchases: purchases, users: users, notifier: notifier}
}

func (s *purchaseService) List(ctx context.Context, status string, cookID uint) ([]*model.PurchaseRequest, error) {
	return s.purchases.FindAll(ctx, status, cookID)
}

func (s *purchaseService) Get(ctx context.Context, id uint) (*model.PurchaseRequest, error) {
	req, err := s.purchases.FindByIDJoined(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Заявка не найдена")
	}
	return req, nil
}

func (s *purchaseService) Create(ctx context.Context, payload fieldmap.Payload) (*model.PurchaseRequest, error) {
	cookID, okCook, err := payload.Int("cookId", "cook_id")
	if err != nil {
		return nil, apperror.BadRequest("cookId, product, quantity required")
	}
	product := payload.String("product", "productName", "product_name")
	quantity, okQty, err := payload.Float("quantity")
	if err != nil || !okCook || product == "" || !okQty {
		return nil, apperror.BadRequest("cookId, product, quantity required")
	}

	unit := payload.String("unit")
	if unit == "" {
		unit = "шт"
	}

	urgency := payload.String("urgency", "priority")
	if urgency == "" {
		urgency = model.UrgencyMedium
	}
	if urgency != model.UrgencyLow && urgency != model.UrgencyMedium && urgency != model.UrgencyHigh {
		return nil, apperror.BadRequest("urgency must be low|medium|high")
	}

	req := &model.PurchaseRequest{
		CookID:      uint(cookID),
		ProductName: product,
		Quantity:    quantity,
		Unit:        unit,
		Urgency:     urgency,
		Status:      model.PurchasePending,
		CreatedAt:   model.UTCNow(),
	}
	setOptional(&req.Reason, payload.String("reason"))

	if err := s.purchases.Create(ctx, req); err != nil {
		return nil, err
	}

	// Every active administrator is told about the new request.
	admins, err := s.users.FindActiveAdmins(ctx)
	if err == nil {
		for _, admin := range admins {
			s.notifier.Emit(ctx, admin.ID, model.NotifWarning,
				"Новая заявка на закупку",
				fmt.Sprintf("Повар подал заявку на %s", product),
				"/admin.html")
		}
	}

	return s.purchases.FindByIDJoined(ctx, req.ID)
}

func (s *purchaseService) Update(ctx context.Context, id uint, payload fieldmap.Payload) (*model.PurchaseRequest, error) {
	before, err := s.purchases.FindByIDJoined(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Заявка не найдена")
	}

	assignments, err := purchaseUpdateFields.Apply(payload)
	if err != nil {
		return nil, mapFieldError(err)
	}

	cols := fieldmap.Columns(assignments)
	newStatus, statusChanged := cols["status"].(string)

	if err := s.purchases.Update(ctx, id, cols); err != nil {
		return nil, err
	}

	if statusChanged && newStatus != before.Status {
		s.notifier.Emit(ctx, before.CookID, model.NotifSystem,
			"Статус заявки изменен",
			fmt.Sprintf("Ваша заявка на %s была %s", before.ProductName, purchaseStatusLabels[newStatus]),
			"/cook.html")
	}

	return s.purchases.FindByIDJoined(ctx, id)
}
