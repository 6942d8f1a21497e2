// Package application 通知应用服务
package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/solestride/storefront/internal/notification/domain"
	"github.com/wyfcoding/pkg/idgen"
	"github.com/wyfcoding/pkg/logging"
)

// OrderLine 通知内容里的订单行
type OrderLine struct {
	Name     string
	Size     string
	Price    decimal.Decimal
	Quantity int
}

// OrderPlacedNotification 下单通知命令
type OrderPlacedNotification struct {
	OrderID          string
	UserID           string
	Lines            []OrderLine
	Total            decimal.Decimal
	DeliveryEstimate time.Time
}

// NotificationService 处理下单通知的落库与发送
type NotificationService struct {
	repo   domain.NotificationRepository
	sender domain.Sender
	target string
}

// NewNotificationService 创建通知服务
// target 为外部 Webhook 地址
func NewNotificationService(repo domain.NotificationRepository, sender domain.Sender, target string) *NotificationService {
	return &NotificationService{repo: repo, sender: sender, target: target}
}

// HandleOrderPlaced 处理下单事件
// 先落库 PENDING 再发送，发送失败记 FAILED 等待补发，不向上游报错；
// 同一订单已发送成功时直接跳过，容忍消息重投
func (s *NotificationService) HandleOrderPlaced(ctx context.Context, cmd OrderPlacedNotification) error {
	existing, err := s.repo.ListByOrderID(ctx, cmd.OrderID)
	if err != nil {
		return err
	}
	for _, n := range existing {
		if n.Status == domain.NotificationStatusSent {
			return nil
		}
	}

	notification := &domain.Notification{
		NotificationID: fmt.Sprintf("%d", idgen.GenID()),
		OrderID:        cmd.OrderID,
		UserID:         cmd.UserID,
		Type:           domain.NotificationTypeWebhook,
		Target:         s.target,
		Content:        formatOrderMessage(cmd),
		Status:         domain.NotificationStatusPending,
	}
	if err := s.repo.Save(ctx, notification); err != nil {
		return err
	}

	s.deliver(ctx, notification)
	return nil
}

// Retry 补发单条通知
func (s *NotificationService) Retry(ctx context.Context, notificationID string) error {
	notification, err := s.repo.Get(ctx, notificationID)
	if err != nil {
		return err
	}
	s.deliver(ctx, notification)
	if notification.Status != domain.NotificationStatusSent {
		return fmt.Errorf("notification %s still failed: %s", notificationID, notification.ErrorMessage)
	}
	return nil
}

// RetryFailed 批量补发失败通知，返回成功条数
func (s *NotificationService) RetryFailed(ctx context.Context, limit int) (int, error) {
	failed, err := s.repo.ListFailed(ctx, limit)
	if err != nil {
		return 0, err
	}
	sent := 0
	for _, notification := range failed {
		s.deliver(ctx, notification)
		if notification.Status == domain.NotificationStatusSent {
			sent++
		}
	}
	return sent, nil
}

// ListByOrder 查询订单关联的通知
func (s *NotificationService) ListByOrder(ctx context.Context, orderID string) ([]*domain.Notification, error) {
	return s.repo.ListByOrderID(ctx, orderID)
}

func (s *NotificationService) deliver(ctx context.Context, notification *domain.Notification) {
	subject := fmt.Sprintf("New order %s", notification.OrderID)
	if err := s.sender.Send(ctx, notification.Target, subject, notification.Content); err != nil {
		notification.MarkFailed(err)
		logging.Warn(ctx, "notification delivery failed",
			"notification_id", notification.NotificationID, "order_id", notification.OrderID, "error", err)
	} else {
		notification.MarkSent(time.Now())
	}
	if err := s.repo.Save(ctx, notification); err != nil {
		logging.Error(ctx, "failed to persist notification status",
			"notification_id", notification.NotificationID, "error", err)
	}
}

func formatOrderMessage(cmd OrderPlacedNotification) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order %s\n", cmd.OrderID)
	if cmd.UserID != "" {
		fmt.Fprintf(&b, "User: %s\n", cmd.UserID)
	} else {
		b.WriteString("User: guest\n")
	}
	for _, line := range cmd.Lines {
		fmt.Fprintf(&b, "- %s (Size: %s) x%d @ %s\n", line.Name, line.Size, line.Quantity, line.Price.StringFixed(2))
	}
	fmt.Fprintf(&b, "Total: %s\n", cmd.Total.StringFixed(2))
	fmt.Fprintf(&b, "Estimated delivery: %s", cmd.DeliveryEstimate.Format("2006-01-02"))
	return b.String()
}
