// Package mysql 通知的 MySQL 持久化实现
package mysql

import (
	"context"
	"errors"

	"github.com/solestride/storefront/internal/notification/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建通知仓储
func NewNotificationRepository(db *gorm.DB) domain.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Save(ctx context.Context, notification *domain.Notification) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "notification_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"status", "error_message", "sent_at", "updated_at",
		}),
	}).Create(notification).Error
}

func (r *notificationRepository) Get(ctx context.Context, notificationID string) (*domain.Notification, error) {
	var notification domain.Notification
	err := r.db.WithContext(ctx).
		Where("notification_id = ?", notificationID).
		First(&notification).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotificationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) ListFailed(ctx context.Context, limit int) ([]*domain.Notification, error) {
	var notifications []*domain.Notification
	err := r.db.WithContext(ctx).
		Where("status = ?", domain.NotificationStatusFailed).
		Order("id ASC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) ListByOrderID(ctx context.Context, orderID string) ([]*domain.Notification, error) {
	var notifications []*domain.Notification
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&notifications).Error
	return notifications, err
}
