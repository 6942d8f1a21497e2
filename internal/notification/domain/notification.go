// Package domain 通知服务的领域模型
package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// NotificationType 通知类型
type NotificationType string

const (
	NotificationTypeWebhook NotificationType = "WEBHOOK" // Webhook 通知
)

// NotificationStatus 通知状态
type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "PENDING"
	NotificationStatusSent    NotificationStatus = "SENT"
	NotificationStatusFailed  NotificationStatus = "FAILED"
)

// Notification 通知实体
// 每笔订单产生一条下单通知，发送结果落库便于补发
type Notification struct {
	gorm.Model
	// NotificationID 通知 ID
	NotificationID string `gorm:"column:notification_id;type:varchar(32);uniqueIndex;not null" json:"notification_id"`
	// OrderID 关联订单号
	OrderID string `gorm:"column:order_id;type:varchar(64);index;not null" json:"order_id"`
	// UserID 用户 ID，游客订单为空
	UserID string `gorm:"column:user_id;type:varchar(36);index" json:"user_id"`
	// Type 通知类型
	Type NotificationType `gorm:"column:type;type:varchar(20);not null" json:"type"`
	// Target 通知目标地址
	Target string `gorm:"column:target;type:varchar(512);not null" json:"target"`
	// Content 通知内容
	Content string `gorm:"column:content;type:text" json:"content"`
	// Status 通知状态
	Status NotificationStatus `gorm:"column:status;type:varchar(20);index;not null;default:'PENDING'" json:"status"`
	// ErrorMessage 错误信息
	ErrorMessage string `gorm:"column:error_message;type:text" json:"error_message"`
	// SentAt 发送时间
	SentAt *time.Time `gorm:"column:sent_at;type:datetime" json:"sent_at"`
}

func (Notification) TableName() string { return "notifications" }

// MarkSent 标记发送成功
func (n *Notification) MarkSent(at time.Time) {
	n.Status = NotificationStatusSent
	n.ErrorMessage = ""
	n.SentAt = &at
}

// MarkFailed 标记发送失败
func (n *Notification) MarkFailed(err error) {
	n.Status = NotificationStatusFailed
	n.ErrorMessage = err.Error()
}

// NotificationRepository 通知仓储接口
type NotificationRepository interface {
	// Save 保存或更新通知记录
	Save(ctx context.Context, notification *Notification) error
	// Get 根据通知 ID 获取通知记录
	Get(ctx context.Context, notificationID string) (*Notification, error)
	// ListFailed 返回待补发的失败通知
	ListFailed(ctx context.Context, limit int) ([]*Notification, error)
	// ListByOrderID 返回订单关联的通知
	ListByOrderID(ctx context.Context, orderID string) ([]*Notification, error)
}

// Sender 通知发送接口
type Sender interface {
	Send(ctx context.Context, target string, subject string, content string) error
}
