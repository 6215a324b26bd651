package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/maxbond/telegram/internal/domain/notification"
	"github.com/maxbond/telegram/pkg/telegram"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Send(ctx context.Context, n notification.Notification) (*notification.Delivery, error) {
	args := m.Called(ctx, n)
	d, _ := args.Get(0).(*notification.Delivery)
	return d, args.Error(1)
}

func (m *MockNotificationService) RecentDeliveries(ctx context.Context, limit int) ([]*notification.Delivery, error) {
	args := m.Called(ctx, limit)
	d, _ := args.Get(0).([]*notification.Delivery)
	return d, args.Error(1)
}

var heartbeat = notification.Notification{
	Kind:   notification.KindMessage,
	Params: telegram.Params{"chat_id": "1", "text": "still alive"},
}

func TestRunSendsWithDeadline(t *testing.T) {
	svc := &MockNotificationService{}
	svc.On("Send", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	}), heartbeat).Return(&notification.Delivery{Endpoint: "sendMessage"}, nil).Once()

	logger, hook := test.NewNullLogger()
	s := NewNotificationScheduler(svc, heartbeat, logger, "@every 1h")
	s.run()

	svc.AssertExpectations(t)
	assert.Equal(t, "Scheduled notification delivered via sendMessage.", hook.LastEntry().Message)
}

func TestRunLogsFailure(t *testing.T) {
	svc := &MockNotificationService{}
	svc.On("Send", mock.Anything, heartbeat).Return(&notification.Delivery{}, errors.New("telegram down")).Once()

	logger, hook := test.NewNullLogger()
	s := NewNotificationScheduler(svc, heartbeat, logger, "@every 1h")
	s.run()

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "Scheduled notification failed", hook.LastEntry().Message)
}

func TestStartRejectsInvalidSpec(t *testing.T) {
	logger, _ := test.NewNullLogger()
	s := NewNotificationScheduler(&MockNotificationService{}, heartbeat, logger, "every tuesday")
	assert.Error(t, s.Start())
}

func TestStartFiresJob(t *testing.T) {
	fired := make(chan struct{}, 1)
	svc := &MockNotificationService{}
	svc.On("Send", mock.Anything, heartbeat).Return(&notification.Delivery{Endpoint: "sendMessage"}, nil).Run(func(mock.Arguments) {
		select {
		case fired <- struct{}{}:
		default:
		}
	})

	logger, _ := test.NewNullLogger()
	s := NewNotificationScheduler(svc, heartbeat, logger, "@every 1s")
	require.NoError(t, s.Start())
	defer s.Stop()

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduled job did not fire")
	}
}
