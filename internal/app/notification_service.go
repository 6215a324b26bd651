// internal/app/notification_service.go
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/maxbond/telegram/internal/domain/notification"
	domainTelegram "github.com/maxbond/telegram/internal/domain/telegram"
	"github.com/maxbond/telegram/pkg/telegram"

	"github.com/sirupsen/logrus"
)

// Application-level errors for the notification service
var ErrUnknownKind = errors.New("unknown notification kind")
var ErrNoJournal = errors.New("delivery journal is not configured")

// NotificationService delivers notifications and keeps the delivery journal.
type NotificationService interface {
	// Send makes exactly one Bot API call for n. The returned Delivery is
	// filled in even when the call fails; the error is the client's error.
	Send(ctx context.Context, n notification.Notification) (*notification.Delivery, error)
	RecentDeliveries(ctx context.Context, limit int) ([]*notification.Delivery, error)
}

// NotificationServiceImpl implements the NotificationService interface.
type NotificationServiceImpl struct {
	telegramClient domainTelegram.Client
	deliveryRepo   notification.Repository // nil disables the journal
	logger         logrus.FieldLogger
	now            func() time.Time
}

func NewNotificationServiceImpl(
	tc domainTelegram.Client,
	dr notification.Repository,
	logger logrus.FieldLogger,
) *NotificationServiceImpl {
	return &NotificationServiceImpl{
		telegramClient: tc,
		deliveryRepo:   dr,
		logger:         logger,
		now:            time.Now,
	}
}

// Send dispatches n to the Bot API method matching its kind.
func (s *NotificationServiceImpl) Send(ctx context.Context, n notification.Notification) (*notification.Delivery, error) {
	var (
		endpoint string
		resp     *http.Response
		err      error
	)
	switch n.Kind {
	case notification.KindMessage:
		endpoint = "sendMessage"
		resp, err = s.telegramClient.SendMessage(ctx, n.Params)
	case notification.KindFile:
		endpoint = telegram.FileEndpoint(n.FileType)
		resp, err = s.telegramClient.SendFile(ctx, n.Params, n.FileType, n.Multipart)
	case notification.KindLocation:
		endpoint = "sendLocation"
		resp, err = s.telegramClient.SendLocation(ctx, n.Params)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, n.Kind)
	}

	log := s.logger.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"chat_id":  n.ChatID(),
	})

	delivery := &notification.Delivery{
		Kind:      n.Kind,
		Endpoint:  endpoint,
		ChatID:    n.ChatID(),
		CreatedAt: s.now(),
	}

	if err != nil {
		classify(delivery, err)
		log.WithError(err).Errorf("Failed to deliver %s notification", n.Kind)
	} else {
		delivery.Status = notification.StatusDelivered
		delivery.StatusCode = resp.StatusCode
		env, decodeErr := telegram.DecodeResponse(resp)
		switch {
		case decodeErr == nil:
			if id := env.MessageID(); id != 0 {
				delivery.MessageID = sql.NullInt64{Int64: id, Valid: true}
			}
			log.Infof("Delivered %s notification (message_id=%d)", n.Kind, delivery.MessageID.Int64)
		case errors.As(decodeErr, new(*telegram.APIError)):
			// ok=false under a success status is still a rejection.
			classify(delivery, decodeErr)
			log.WithError(decodeErr).Errorf("Telegram rejected %s notification", n.Kind)
			err = decodeErr
		default:
			log.WithError(decodeErr).Warn("Could not decode Telegram response")
		}
	}

	s.record(ctx, delivery)
	return delivery, err
}

// classify maps a client error onto the delivery record.
func classify(d *notification.Delivery, err error) {
	d.ErrorText = sql.NullString{String: err.Error(), Valid: true}

	var apiErr *telegram.APIError
	switch {
	case errors.Is(err, telegram.ErrMissingToken):
		d.Status = notification.StatusMissingToken
	case errors.As(err, &apiErr):
		d.Status = notification.StatusAPIError
		d.StatusCode = apiErr.StatusCode
	default: // *telegram.TransportError
		d.Status = notification.StatusTransportError
	}
}

func (s *NotificationServiceImpl) record(ctx context.Context, d *notification.Delivery) {
	if s.deliveryRepo == nil {
		return
	}
	if err := s.deliveryRepo.Create(ctx, d); err != nil {
		s.logger.WithError(err).Error("Failed to record delivery")
		return
	}
	s.logger.Debugf("Delivery recorded with ID: %d", d.ID)
}

// RecentDeliveries lists the newest journal entries.
func (s *NotificationServiceImpl) RecentDeliveries(ctx context.Context, limit int) ([]*notification.Delivery, error) {
	if s.deliveryRepo == nil {
		return nil, ErrNoJournal
	}
	deliveries, err := s.deliveryRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list deliveries: %w", err)
	}
	return deliveries, nil
}
