package service

import (
	"context"

	"github.com/zokirzonovbek1-art/school-food-system/internal/fieldmap"
	"github.com/zokirzonovbek1-art/school-food-system/internal/model"
	"github.com/zokirzonovbek1-art/school-food-system/internal/repository"
	"github.com/zokirzonovbek1-art/school-food-system/pkg/apperror"
)

var inventoryUpdateFields = fieldmap.Mapping{
	{Key: "name", Column: "product_name", Rule: fieldmap.RequiredString},
	{Key: "productName", Column: "product_name", Rule: fieldmap.RequiredString},
	{Key: "product_name", Column: "product_name", Rule: fieldmap.RequiredString},
	{Key: "category", Column: "category"},
	{Key: "currentStock", Column: "quantity", Rule: fieldmap.Float},
	{Key: "quantity", Column: "quantity", Rule: fieldmap.Float},
	{Key: "unit", Column: "unit"},
	{Key: "minStock", Column: "min_quantity", Rule: fieldmap.Float},
	{Key: "minQuantity", Column: "min_quantity", Rule: fieldmap.Float},
	{Key: "expiryDate", Column: "expiration_date"},
	{Key: "expirationDate", Column: "expiration_date"},
	{Key: "supplier", Column: "supplier"},
	{Key: "lastRestocked", Column: "last_restocked"},
	{Key: "status", Column: "status", Rule: fieldmap.Enum(model.StockIn, model.StockLow, model.StockOut)},
}

type InventoryService interface {
	List(ctx context.Context, status, q string) ([]*model.InventoryItem, error)
	Get(ctx context.Context, id uint) (*model.InventoryItem, error)
	Create(ctx context.Context, payload fieldmap.Payload) (*model.InventoryItem, error)
	Update(ctx context.Context, id uint, payload fieldmap.Payload) (*model.InventoryItem, error)
	Delete(ctx context.Context, id uint) error
}

type inventoryService struct {
	repo repository.InventoryRepository
}

func NewInventoryService(repo repository.InventoryRepository) InventoryService {
	return &inventoryService{repo: repo}
}

func (s *inventoryService) List(ctx context.Context, status, q string) ([]*model.InventoryItem, error) {
	return s.repo.FindAll(ctx, status, q)
}

func (s *inventoryService) Get(ctx context.Context, id uint) (*model.InventoryItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Позиция не найдена")
	}
	return item, nil
}

func (s *inventoryService) Create(ctx context.Context, payload fieldmap.Payload) (*model.InventoryItem, error) {
	name := payload.String("name", "productName", "product_name")
	if name == "" {
		return nil, apperror.BadRequest("productName required")
	}

	quantity, hasQty, err := payload.Float("currentStock", "quantity")
	if err != nil || !hasQty {
		return nil, apperror.BadRequest("quantity must be number")
	}

	unit := payload.String("unit")
	if unit == "" {
		unit = "шт"
	}

	// Without an explicit threshold a third of the starting stock is used.
	minQuantity, hasMin, err := payload.Float("minStock", "minQuantity", "min_quantity")
	if err != nil {
		return nil, apperror.BadRequest("minQuantity must be number")
	}
	if !hasMin {
		minQuantity = quantity * 0.3
		if minQuantity < 0 {
			minQuantity = 0
		}
	}

	status := payload.String("status")
	if status == "" {
		status = model.ResolveStockStatus(quantity, minQuantity)
	}
	if status != model.StockIn && status != model.StockLow && status != model.StockOut {
		return nil, apperror.BadRequest("status must be in_stock|low_stock|out_of_stock")
	}

	now := model.UTCNow()
	item := &model.InventoryItem{
		ProductName: name,
		Quantity:    quantity,
		Unit:        unit,
		MinQuantity: minQuantity,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	setOptional(&item.Category, payload.String("category"))
	setOptional(&item.ExpirationDate, payload.String("expiryDate", "expirationDate", "expiration_date"))
	setOptional(&item.Supplier, payload.String("supplier"))
	restocked := payload.String("lastRestocked", "last_restocked")
	if restocked == "" {
		restocked = model.Today()
	}
	item.LastRestocked = &restocked

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update applies a partial update and keeps the derived status in sync: when
// quantity or the threshold changes and the caller did not pin a status, the
// status is recomputed over the effective values.
func (s *inventoryService) Update(ctx context.Context, id uint, payload fieldmap.Payload) (*model.InventoryItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Позиция не найдена")
	}

	assignments, err := inventoryUpdateFields.Apply(payload)
	if err != nil {
		return nil, mapFieldError(err)
	}

	cols := fieldmap.Columns(assignments)

	quantity := item.Quantity
	minQuantity := item.MinQuantity
	qtyChanged := false
	if v, ok := cols["quantity"].(float64); ok {
		quantity = v
		qtyChanged = true
	}
	minChanged := false
	if v, ok := cols["min_quantity"].(float64); ok {
		minQuantity = v
		minChanged = true
	}

	if _, statusProvided := cols["status"]; !statusProvided && (qtyChanged || minChanged) {
		cols["status"] = model.ResolveStockStatus(quantity, minQuantity)
	}
	if _, hasRestocked := cols["last_restocked"]; qtyChanged && !hasRestocked {
		cols["last_restocked"] = model.Today()
	}
	cols["updated_at"] = model.UTCNow()

	if err := s.repo.Update(ctx, id, cols); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *inventoryService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "Позиция не найдена")
	}
	return s.repo.Delete(ctx, id)
}
