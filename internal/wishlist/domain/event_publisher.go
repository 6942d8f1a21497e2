package domain

import "context"

// EventPublisher 心愿单领域事件发布接口
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, event any) error
}
