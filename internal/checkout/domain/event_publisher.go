package domain

import "context"

// EventPublisher 结账领域事件发布接口
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, event any) error
	// PublishInTx 在数据库事务内登记事件，与订单行写入同生共死
	PublishInTx(ctx context.Context, tx any, topic, key string, event any) error
}
