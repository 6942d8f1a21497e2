package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/solestride/storefront/internal/notification/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockNotificationRepo struct {
	mu            sync.Mutex
	notifications map[string]*domain.Notification
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{notifications: map[string]*domain.Notification{}}
}

func (m *mockNotificationRepo) Save(ctx context.Context, n *domain.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	saved := *n
	m.notifications[n.NotificationID] = &saved
	return nil
}

func (m *mockNotificationRepo) Get(ctx context.Context, id string) (*domain.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notifications[id]
	if !ok {
		return nil, domain.ErrNotificationNotFound
	}
	out := *n
	return &out, nil
}

func (m *mockNotificationRepo) ListFailed(ctx context.Context, limit int) ([]*domain.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.Notification{}
	for _, n := range m.notifications {
		if n.Status == domain.NotificationStatusFailed && len(out) < limit {
			copied := *n
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *mockNotificationRepo) ListByOrderID(ctx context.Context, orderID string) ([]*domain.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.Notification{}
	for _, n := range m.notifications {
		if n.OrderID == orderID {
			copied := *n
			out = append(out, &copied)
		}
	}
	return out, nil
}

type mockSender struct {
	mu    sync.Mutex
	calls int
	err   error
	last  string
}

func (m *mockSender) Send(ctx context.Context, target, subject, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.last = content
	return m.err
}

func placedOrder() OrderPlacedNotification {
	return OrderPlacedNotification{
		OrderID: "ORD-1756600000000-042",
		UserID:  "u1",
		Lines: []OrderLine{
			{Name: "Air Zoom 1", Size: "9", Price: decimal.NewFromInt(100), Quantity: 2},
		},
		Total:            decimal.NewFromInt(200),
		DeliveryEstimate: time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
	}
}

func TestNotification_OrderPlacedSendsAndMarksSent(t *testing.T) {
	repo := newMockNotificationRepo()
	sender := &mockSender{}
	svc := NewNotificationService(repo, sender, "https://hooks.example.com/orders")

	require.NoError(t, svc.HandleOrderPlaced(context.Background(), placedOrder()))
	assert.Equal(t, 1, sender.calls)

	saved, err := repo.ListByOrderID(context.Background(), "ORD-1756600000000-042")
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, domain.NotificationStatusSent, saved[0].Status)
	require.NotNil(t, saved[0].SentAt)

	assert.Contains(t, sender.last, "Air Zoom 1 (Size: 9) x2 @ 100.00")
	assert.Contains(t, sender.last, "Total: 200.00")
	assert.Contains(t, sender.last, "2026-09-07")
}

func TestNotification_SendFailureRecordedNotPropagated(t *testing.T) {
	repo := newMockNotificationRepo()
	sender := &mockSender{err: errors.New("webhook down")}
	svc := NewNotificationService(repo, sender, "https://hooks.example.com/orders")

	// 发送失败不向消费方报错，避免消息无限重投
	require.NoError(t, svc.HandleOrderPlaced(context.Background(), placedOrder()))

	saved, err := repo.ListByOrderID(context.Background(), "ORD-1756600000000-042")
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, domain.NotificationStatusFailed, saved[0].Status)
	assert.Equal(t, "webhook down", saved[0].ErrorMessage)
}

func TestNotification_DuplicateOrderSkipped(t *testing.T) {
	repo := newMockNotificationRepo()
	sender := &mockSender{}
	svc := NewNotificationService(repo, sender, "https://hooks.example.com/orders")

	require.NoError(t, svc.HandleOrderPlaced(context.Background(), placedOrder()))
	require.NoError(t, svc.HandleOrderPlaced(context.Background(), placedOrder()))

	assert.Equal(t, 1, sender.calls)
	saved, _ := repo.ListByOrderID(context.Background(), "ORD-1756600000000-042")
	assert.Len(t, saved, 1)
}

func TestNotification_RetryFailedResends(t *testing.T) {
	repo := newMockNotificationRepo()
	sender := &mockSender{err: errors.New("webhook down")}
	svc := NewNotificationService(repo, sender, "https://hooks.example.com/orders")
	require.NoError(t, svc.HandleOrderPlaced(context.Background(), placedOrder()))

	sender.mu.Lock()
	sender.err = nil
	sender.mu.Unlock()

	sent, err := svc.RetryFailed(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	saved, _ := repo.ListByOrderID(context.Background(), "ORD-1756600000000-042")
	require.Len(t, saved, 1)
	assert.Equal(t, domain.NotificationStatusSent, saved[0].Status)
}

func TestNotification_RetryUnknownID(t *testing.T) {
	svc := NewNotificationService(newMockNotificationRepo(), &mockSender{}, "https://hooks.example.com/orders")
	err := svc.Retry(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrNotificationNotFound)
}
