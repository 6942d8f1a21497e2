// Package mysql 订单的 MySQL 持久化实现
package mysql

import (
	"context"

	"github.com/solestride/storefront/internal/checkout/domain"
	"github.com/wyfcoding/pkg/contextx"
	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) domain.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextx.GetTx(ctx).(*gorm.DB); ok {
		return tx
	}
	return r.db
}

func (r *orderRepository) InsertLines(ctx context.Context, lines []domain.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}
	return r.getDB(ctx).WithContext(ctx).Create(&lines).Error
}

func (r *orderRepository) ListByOrderID(ctx context.Context, orderID string) ([]domain.OrderLine, error) {
	var lines []domain.OrderLine
	err := r.getDB(ctx).WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&lines).Error
	return lines, err
}

func (r *orderRepository) ListForUser(ctx context.Context, userID string) ([]domain.OrderLine, error) {
	var lines []domain.OrderLine
	err := r.getDB(ctx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&lines).Error
	return lines, err
}
