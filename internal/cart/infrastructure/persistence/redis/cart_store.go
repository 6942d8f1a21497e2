package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/solestride/storefront/internal/cart/domain"
)

// cartSnapshotStore 基于 Redis 的购物车快照仓储
// 每个会话一个固定键，整个 {items, count} 文档整体覆盖写入
type cartSnapshotStore struct {
	client redis.UniversalClient
	prefix string
}

func NewCartSnapshotStore(client redis.UniversalClient) domain.SnapshotStore {
	return &cartSnapshotStore{
		client: client,
		prefix: "storefront:cart:",
	}
}

func (s *cartSnapshotStore) key(sessionID string) string {
	return s.prefix + sessionID
}

func (s *cartSnapshotStore) Save(ctx context.Context, sessionID string, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart snapshot: %w", err)
	}
	// 购物车不自动过期，只在下单成功或显式清空时删除
	return s.client.Set(ctx, s.key(sessionID), data, 0).Err()
}

func (s *cartSnapshotStore) Load(ctx context.Context, sessionID string) (*domain.Cart, error) {
	data, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart snapshot: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart snapshot: %w", err)
	}
	return &cart, nil
}

func (s *cartSnapshotStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.key(sessionID)).Err()
}
