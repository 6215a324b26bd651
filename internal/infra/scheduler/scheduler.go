package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/maxbond/telegram/internal/app"
	"github.com/maxbond/telegram/internal/domain/notification"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const defaultRunTimeout = 1 * time.Minute

// NotificationScheduler sends the same notification on every tick of a cron spec.
// A failed run is logged and the next tick sends again.
type NotificationScheduler struct {
	cronEngine   *cron.Cron
	notifService app.NotificationService
	notif        notification.Notification
	logger       logrus.FieldLogger
	cronSpec     string // e.g., "0 9 * * *" (9 AM daily)
	runTimeout   time.Duration
}

func NewNotificationScheduler(
	notifService app.NotificationService,
	notif notification.Notification,
	logger logrus.FieldLogger,
	cronSpec string,
) *NotificationScheduler {
	return &NotificationScheduler{
		cronEngine:   cron.New(cron.WithLocation(time.Local)), // Use server's local time for cron
		notifService: notifService,
		notif:        notif,
		logger:       logger,
		cronSpec:     cronSpec,
		runTimeout:   defaultRunTimeout,
	}
}

// Start registers the job and starts the cron engine.
func (s *NotificationScheduler) Start() error {
	s.logger.Infof("Starting notification scheduler with spec %q...", s.cronSpec)

	_, err := s.cronEngine.AddFunc(s.cronSpec, func() {
		s.logger.Info("Cron job triggered for scheduled notification.")
		s.run()
	})
	if err != nil {
		return fmt.Errorf("could not add notification cron job: %w", err)
	}

	s.cronEngine.Start()
	s.logger.Info("Notification scheduler started.")
	return nil
}

// run performs one send with its own deadline.
func (s *NotificationScheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.runTimeout)
	defer cancel()

	delivery, err := s.notifService.Send(ctx, s.notif)
	if err != nil {
		s.logger.WithError(err).Error("Scheduled notification failed")
		return
	}
	s.logger.Infof("Scheduled notification delivered via %s.", delivery.Endpoint)
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *NotificationScheduler) Stop() {
	s.logger.Info("Stopping notification scheduler...")
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
	s.logger.Info("Notification scheduler gracefully stopped.")
}
