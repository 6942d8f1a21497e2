package messaging

import (
	"context"

	"github.com/solestride/storefront/internal/cart/domain"
	"github.com/wyfcoding/pkg/messagequeue/outbox"
)

// outboxPublisher 基于 Outbox 模式的事件发布者实现
type outboxPublisher struct {
	manager *outbox.Manager
}

// NewOutboxPublisher 创建一个新的 OutboxPublisher 实例
func NewOutboxPublisher(manager *outbox.Manager) domain.EventPublisher {
	return &outboxPublisher{manager: manager}
}

// Publish 发布一个普通事件（非事务内）
func (p *outboxPublisher) Publish(ctx context.Context, topic string, key string, event any) error {
	return p.manager.PublishInTx(ctx, p.manager.DB(), topic, key, event)
}
