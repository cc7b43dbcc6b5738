package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/wakanda-gov/platform/internal/config"
	"github.com/wakanda-gov/platform/internal/events"
)

// NotificationService handles emitting notifications for account events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotifyConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotifyConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to account events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	n.dispatcher.Subscribe(events.EventUserLoggedIn, n.handleUserLoggedIn)
}

func (n *NotificationService) handleUserRegistered(ctx context.Context, event events.Event) error {
	n.logger.Info("UserRegistered", zap.String("user_id", event.UserID))
	n.sendWelcomeEmailStub(ctx, event)
	n.sendWebhookStub(ctx, event)
	return nil
}

func (n *NotificationService) handleUserLoggedIn(_ context.Context, event events.Event) error {
	n.logger.Debug("UserLoggedIn", zap.String("user_id", event.UserID))
	return nil
}

func (n *NotificationService) sendWelcomeEmailStub(_ context.Context, event events.Event) {
	n.logger.Info("welcome email stub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("user_id", event.UserID),
	)
}

func (n *NotificationService) sendWebhookStub(_ context.Context, event events.Event) {
	if n.cfg.WebhookURL == "" {
		return
	}
	n.logger.Info("webhook stub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event", string(event.Type)),
	)
}
