package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/zokirzonovbek1-art/school-food-system/internal/model"
	"github.com/zokirzonovbek1-art/school-food-system/internal/repository"
	"github.com/zokirzonovbek1-art/school-food-system/pkg/apperror"
	"github.com/zokirzonovbek1-art/school-food-system/pkg/metrics"
)

// Notifier is the only surface workflows use to reach the notification
// store. Emission never fails the triggering operation.
type Notifier interface {
	Emit(ctx context.Context, userID uint, notifType, title, message, link string)
}

type CreateNotificationInput struct {
	UserID  uint   `json:"userId" binding:"required"`
	Type    string `json:"type"`
	Title   string `json:"title" binding:"required"`
	Message string `json:"message" binding:"required"`
	Link    string `json:"link"`
}

type NotificationService interface {
	Notifier
	List(ctx context.Context, userID uint, unreadOnly bool) ([]*model.Notification, error)
	Create(ctx context.Context, input CreateNotificationInput) (*model.Notification, error)
	MarkRead(ctx context.Context, id uint) (*model.Notification, error)
}

type notificationService struct {
	repo        repository.NotificationRepository
	redisClient *redis.Client
}

func NewNotificationService(repo repository.NotificationRepository, redisClient *redis.Client) NotificationService {
	return &notificationService{
		repo:        repo,
		redisClient: redisClient,
	}
}

// Emit appends an unread notification row stamped with the current time.
// Errors are logged and swallowed: a failed side effect must not block the
// order or purchase write that triggered it. Callers invoke it once per
// logical event; nothing here deduplicates.
func (s *notificationService) Emit(ctx context.Context, userID uint, notifType, title, message, link string) {
	notification := &model.Notification{
		UserID:    userID,
		Type:      notifType,
		Title:     title,
		Message:   message,
		IsRead:    false,
		CreatedAt: model.UTCNow(),
	}
	if link != "" {
		notification.Link = &link
	}

	if err := s.repo.Create(ctx, notification); err != nil {
		log.Printf("[notifications] emit failed for user %d: %v", userID, err)
		return
	}

	metrics.NotificationsEmitted.WithLabelValues(notifType).Inc()
	s.publish(ctx, notification)
}

// publish pushes the notification to the per-user Redis channel so connected
// websocket clients see it live. No-op without Redis.
func (s *notificationService) publish(ctx context.Context, notification *model.Notification) {
	if s.redisClient == nil {
		return
	}

	channel := fmt.Sprintf("user_notifications:%d", notification.UserID)
	payload, err := json.Marshal(notification.ToAPI())
	if err == nil {
		s.redisClient.Publish(ctx, channel, payload)
	}
}

func (s *notificationService) List(ctx context.Context, userID uint, unreadOnly bool) ([]*model.Notification, error) {
	return s.repo.FindByUser(ctx, userID, unreadOnly, 10)
}

// Create is the admin-facing endpoint. Out-of-enum types fall back to "info"
// rather than failing, matching the legacy behavior.
func (s *notificationService) Create(ctx context.Context, input CreateNotificationInput) (*model.Notification, error) {
	notifType := input.Type
	switch notifType {
	case model.NotifOrder, model.NotifPayment, model.NotifSystem, model.NotifWarning, model.NotifInfo:
	default:
		notifType = model.NotifInfo
	}

	notification := &model.Notification{
		UserID:    input.UserID,
		Type:      notifType,
		Title:     input.Title,
		Message:   input.Message,
		IsRead:    false,
		CreatedAt: model.UTCNow(),
	}
	if input.Link != "" {
		notification.Link = &input.Link
	}

	if err := s.repo.Create(ctx, notification); err != nil {
		return nil, err
	}
	metrics.NotificationsEmitted.WithLabelValues(notifType).Inc()
	s.publish(ctx, notification)

	return notification, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id uint) (*model.Notification, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, notFoundOr(err, "Уведомление не найдено")
	}

	if err := s.repo.MarkRead(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// notFoundOr converts a gorm record-not-found into a localized 404 and
// passes other errors through.
func notFoundOr(err error, message string) error {
	if isRecordNotFound(err) {
		return apperror.NotFound(message)
	}
	return err
}
