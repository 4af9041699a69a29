package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SHM-SeatService/internal/domain"
	"github.com/m04kA/SHM-SeatService/internal/integrations/notifyservice"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeSubRepo struct {
	expiring []*domain.ExpiryNotice
	expired  []*domain.ExpiryNotice
}

func (f *fakeSubRepo) GetExpiringWithin(_ context.Context, _ int) ([]*domain.ExpiryNotice, error) {
	return f.expiring, nil
}

func (f *fakeSubRepo) GetExpiredWithin(_ context.Context, _ int) ([]*domain.ExpiryNotice, error) {
	return f.expired, nil
}

type fakeNotifyClient struct {
	mu   sync.Mutex
	sent []*notifyservice.Message
	err  error
}

func (f *fakeNotifyClient) SendWithGracefulDegradation(_ context.Context, msg *notifyservice.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeNotifyClient) messages() []*notifyservice.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*notifyservice.Message, len(f.sent))
	copy(out, f.sent)
	return out
}

func notice(subID, studentID int64) *domain.ExpiryNotice {
	return &domain.ExpiryNotice{
		SubscriptionID: subID,
		StudentID:      studentID,
		StudentName:    "Иванов Иван",
		Mobile:         "+79001234567",
		SeatID:         5,
		TimeslotName:   "Morning",
		EndDate:        time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC),
	}
}

func TestRunCycle_SendsBothWindows(t *testing.T) {
	repo := &fakeSubRepo{
		expiring: []*domain.ExpiryNotice{notice(100, 10)},
		expired:  []*domain.ExpiryNotice{notice(101, 11)},
	}
	client := &fakeNotifyClient{}

	w := NewWorker(repo, client, nopLogger{}, time.Hour, 7, 3, 600)
	w.runCycle(context.Background())

	msgs := client.messages()
	require.Len(t, msgs, 2)

	assert.Equal(t, notifyservice.KindExpiringSoon, msgs[0].Kind)
	assert.Equal(t, int64(10), msgs[0].StudentID)
	assert.Equal(t, "+79001234567", msgs[0].Mobile)
	assert.Contains(t, msgs[0].Text, "истекает 2026-09-05")

	assert.Equal(t, notifyservice.KindExpired, msgs[1].Kind)
	assert.Contains(t, msgs[1].Text, "истёк 2026-09-05")
}

func TestRunCycle_DegradedSendDoesNotStopCycle(t *testing.T) {
	repo := &fakeSubRepo{
		expiring: []*domain.ExpiryNotice{notice(100, 10), notice(101, 11)},
	}
	client := &fakeNotifyClient{err: errors.New("notify service down")}

	w := NewWorker(repo, client, nopLogger{}, time.Hour, 7, 3, 600)

	// Деградация отправки не паникует и не прерывает обход
	w.runCycle(context.Background())
	assert.Empty(t, client.messages())
}

func TestWorker_StartStop(t *testing.T) {
	repo := &fakeSubRepo{expiring: []*domain.ExpiryNotice{notice(100, 10)}}
	client := &fakeNotifyClient{}

	w := NewWorker(repo, client, nopLogger{}, time.Hour, 7, 3, 600)
	w.Start()

	// Первый проход выполняется сразу при старте
	require.Eventually(t, func() bool {
		return len(client.messages()) == 1
	}, time.Second, 10*time.Millisecond)

	w.Stop()
}

func TestNewWorker_DefaultsRateWhenUnset(t *testing.T) {
	repo := &fakeSubRepo{expiring: []*domain.ExpiryNotice{notice(100, 10)}}
	client := &fakeNotifyClient{}

	// Нулевой лимит заменяется значением по умолчанию, а не делит на ноль
	w := NewWorker(repo, client, nopLogger{}, time.Hour, 7, 3, 0)
	w.runCycle(context.Background())

	assert.Len(t, client.messages(), 1)
}

func TestBuildMessage(t *testing.T) {
	n := notice(100, 10)

	msg := buildMessage(n, notifyservice.KindExpiringSoon)
	assert.Equal(t, int64(10), msg.StudentID)
	assert.Contains(t, msg.Text, "Иванов Иван")
	assert.Contains(t, msg.Text, "место 5")
	assert.Contains(t, msg.Text, "Morning")
}
