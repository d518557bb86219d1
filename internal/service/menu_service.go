package service

import (
	"context"

	"github.com/zokirzonovbek1-art/school-food-system/internal/fieldmap"
	"github.com/zokirzonovbek1-art/school-food-system/internal/model"
	"github.com/zokirzonovbek1-art/school-food-system/internal/repository"
	"github.com/zokirzonovbek1-art/school-food-system/pkg/apperror"
)

var menuUpdateFields = fieldmap.Mapping{
	{Key: "date", Column: "date"},
	{Key: "type", Column: "meal_type", Rule: fieldmap.Enum(model.MealBreakfast, model.MealLunch)},
	{Key: "name", Column: "name", Rule: fieldmap.RequiredString},
	{Key: "description", Column: "description"},
	{Key: "price", Column: "price", Rule: fieldmap.Float},
	{Key: "calories", Column: "calories", Rule: fieldmap.IntOrNil},
	{Key: "allergens", Column: "allergens", Rule: fieldmap.StringList},
	{Key: "isAvailable", Column: "is_available", Rule: fieldmap.Bool},
	{Key: "imageUrl", Column: "image_url"},
}

type MenuService interface {
	List(ctx context.Context, date, mealType string) ([]*model.MenuItem, error)
	Get(ctx context.Context, id uint) (*model.MenuItem, error)
	Create(ctx context.Context, payload fieldmap.Payload) (*model.MenuItem, error)
	Update(ctx context.Context, id uint, payload fieldmap.Payload) (*model.MenuItem, error)
	Delete(ctx context.Context, id uint) error
}

type menuService struct {
	repo repository.MenuRepository
}

func NewMenuService(repo repository.MenuRepository) MenuService {
	return &menuService{repo: repo}
}

func (s *menuService) List(ctx context.Context, date, mealType string) ([]*model.MenuItem, error) {
	return s.repo.FindAll(ctx, date, mealType)
}

func (s *menuService) Get(ctx context.Context, id uint) (*model.MenuItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Блюдо не найдено")
	}
	return item, nil
}

func (s *menuService) Create(ctx context.Context, payload fieldmap.Payload) (*model.MenuItem, error) {
	mealType := payload.String("type", "mealType")
	if mealType != model.MealBreakfast && mealType != model.MealLunch {
		return nil, apperror.BadRequest("type must be breakfast|lunch")
	}

	name := payload.String("name")
	if name == "" {
		return nil, apperror.BadRequest("name required")
	}

	price, hasPrice, err := payload.Float("price")
	if err != nil || !hasPrice {
		return nil, apperror.BadRequest("price must be number")
	}

	date := payload.String("date")
	if date == "" {
		date = model.Today()
	}

	item := &model.MenuItem{
		Date:        date,
		MealType:    mealType,
		Name:        name,
		Price:       price,
		IsAvailable: true,
		CreatedAt:   model.UTCNow(),
	}
	setOptional(&item.Description, payload.String("description"))
	setOptional(&item.ImageURL, payload.String("imageUrl", "image_url"))
	if calories, ok, err := payload.Int("calories"); err == nil && ok {
		item.Calories = &calories
	}
	if allergens, ok := payload.List("allergens"); ok {
		item.Allergens = &allergens
	}
	if v, ok, err := payload.Bool("isAvailable", "is_available"); err == nil && ok {
		item.IsAvailable = v
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *menuService) Update(ctx context.Context, id uint, payload fieldmap.Payload) (*model.MenuItem, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, notFoundOr(err, "Блюдо не найдено")
	}

	assignments, err := menuUpdateFields.Apply(payload)
	if err != nil {
		return nil, mapFieldError(err)
	}

	if err := s.repo.Update(ctx, id, fieldmap.Columns(assignments)); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *menuService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "Блюдо не найдено")
	}
	return s.repo.Delete(ctx, id)
}
