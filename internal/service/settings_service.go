package service

import (
	"context"

	"github.com/zokirzonovbek1-art/school-food-system/internal/fieldmap"
	"github.com/zokirzonovbek1-art/school-food-system/internal/model"
	"github.com/zokirzonovbek1-art/school-food-system/internal/repository"
	"github.com/zokirzonovbek1-art/school-food-system/pkg/apperror"
)

type SettingsService interface {
	Get(ctx context.Context) (*model.Settings, error)
	Update(ctx context.Context, payload fieldmap.Payload) (*model.Settings, error)
}

type settingsService struct {
	repo repository.SettingsRepository
}

func NewSettingsService(repo repository.SettingsRepository) SettingsService {
	return &settingsService{repo: repo}
}

func (s *settingsService) Get(ctx context.Context) (*model.Settings, error) {
	return s.repo.Get(ctx)
}

func (s *settingsService) Update(ctx context.Context, payload fieldmap.Payload) (*model.Settings, error) {
	if len(payload) == 0 {
		return nil, apperror.BadRequest("Нет данных")
	}

	// The singleton row has to exist before a partial update lands on it.
	if _, err := s.repo.Get(ctx); err != nil {
		return nil, err
	}

	cols := map[string]any{}

	if v := payload.String("schoolName", "school_name"); v != "" {
		cols["school_name"] = v
	}

	// Work hours arrive either flat or nested under workHours.
	workStart := payload.String("workStart", "work_start")
	workEnd := payload.String("workEnd", "work_end")
	if hours, ok := payload["workHours"].(map[string]any); ok {
		if v, ok := hours["start"].(string); ok && workStart == "" {
			workStart = v
		}
		if v, ok := hours["end"].(string); ok && workEnd == "" {
			workEnd = v
		}
	}
	if workStart != "" {
		cols["work_start"] = workStart
	}
	if workEnd != "" {
		cols["work_end"] = workEnd
	}

	if v, ok, err := payload.Int("minBalance", "min_balance"); err != nil {
		return nil, apperror.BadRequest("minBalance must be integer")
	} else if ok {
		cols["min_balance"] = v
	}

	boolCols := []struct {
		column string
		keys   []string
	}{
		{"notifications_enabled", []string{"notificationsEnabled", "notifications_enabled"}},
		{"email_notifications", []string{"emailNotifications", "email_notifications"}},
		{"order_notifications", []string{"orderNotifications", "order_notifications"}},
		{"low_stock_notifications", []string{"lowStockNotifications", "low_stock_notifications"}},
	}
	for _, bc := range boolCols {
		if v, ok, err := payload.Bool(bc.keys...); err == nil && ok {
			cols[bc.column] = v
		}
	}

	if len(cols) == 0 {
		return nil, apperror.BadRequest("Нет поддерживаемых полей")
	}

	cols["updated_at"] = model.UTCNow()
	if err := s.repo.Update(ctx, cols); err != nil {
		return nil, err
	}

	return s.repo.Get(ctx)
}
