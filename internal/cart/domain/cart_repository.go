package domain

import "context"

// SnapshotStore 购物车快照仓储
// 每次变更后整体写入 {items, count}，会话重建时整体读回
type SnapshotStore interface {
	// Save 整体覆盖写入会话的购物车快照
	Save(ctx context.Context, sessionID string, cart *Cart) error
	// Load 读取会话快照，不存在时返回 nil
	Load(ctx context.Context, sessionID string) (*Cart, error)
	// Delete 删除会话快照
	Delete(ctx context.Context, sessionID string) error
}
