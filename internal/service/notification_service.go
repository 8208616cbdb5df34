package service

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/educhain/educhain-server/internal/config"
	"github.com/educhain/educhain-server/internal/model"
	"github.com/educhain/educhain-server/internal/repository"
)

// NotificationService handles institutional alerts: persistence plus a
// live publish on the recipient's Redis channel so connected WebSocket
// clients see new alerts without polling.
type NotificationService struct {
	notificationRepo *repository.NotificationRepository
	userRepo         *repository.UserRepository
	rdb              *redis.Client
	log              zerolog.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notificationRepo *repository.NotificationRepository, userRepo *repository.UserRepository, rdb *redis.Client, log zerolog.Logger) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		rdb:              rdb,
		log:              log.With().Str("component", "notification_service").Logger(),
	}
}

// List retrieves the caller's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, claims *Claims) ([]model.Notification, error) {
	notifications, err := s.notificationRepo.ListByRecipient(ctx, claims.Username)
	if err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []model.Notification{}
	}
	return notifications, nil
}

// MarkRead flips one of the caller's notifications to read. Marking an
// already-read notification succeeds without change.
func (s *NotificationService) MarkRead(ctx context.Context, claims *Claims, id int) error {
	return s.notificationRepo.MarkRead(ctx, id, claims.Username)
}

// Notify stores a notification and publishes it to the recipient's live
// channel. A publish failure is logged, not returned: the stored row is
// the source of truth.
func (s *NotificationService) Notify(ctx context.Context, n *model.Notification) error {
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		return err
	}

	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}
	channel := config.CacheKey.NotificationChannel(n.Recipient)
	if err := s.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		s.log.Warn().Err(err).Str("channel", channel).Msg("Notification publish failed")
	}
	return nil
}

// NotifyAdmins stores the same alert for every admin account.
func (s *NotificationService) NotifyAdmins(ctx context.Context, title, message string, typ model.NotificationType) error {
	admins, err := s.userRepo.ListAdminUsernames(ctx)
	if err != nil {
		return err
	}
	for _, username := range admins {
		n := &model.Notification{
			Recipient: username,
			Title:     title,
			Message:   message,
			Type:      typ,
		}
		if err := s.Notify(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

// HasRecentRiskAlert reports whether a risk alert for the student was
// already raised within the dedupe window.
func (s *NotificationService) HasRecentRiskAlert(ctx context.Context, recipient, studentID string) (bool, error) {
	return s.notificationRepo.ExistsRecentRiskAlert(ctx, recipient, studentID)
}
