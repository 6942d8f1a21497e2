// Package application 购物车状态管理
package application

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/solestride/storefront/internal/cart/domain"
	catalog "github.com/solestride/storefront/internal/catalog/domain"
)

// Manager 购物车状态管理器
// 每个会话一个实例，独占持有内存中的聚合；所有变更都经由它进行，
// 并在变更后整体透写到快照仓储。透写失败只记告警，不阻塞本次变更。
type Manager struct {
	sessionID string
	store     domain.SnapshotStore
	publisher domain.EventPublisher

	mu   sync.Mutex
	cart *domain.Cart
}

// NewManager 创建购物车状态管理器实例
func NewManager(sessionID string, store domain.SnapshotStore, publisher domain.EventPublisher) *Manager {
	return &Manager{
		sessionID: sessionID,
		store:     store,
		publisher: publisher,
		cart:      domain.NewCart(),
	}
}

// Restore 从快照仓储恢复会话的购物车，没有快照时保持空车
func (m *Manager) Restore(ctx context.Context) error {
	snapshot, err := m.store.Load(ctx, m.sessionID)
	if err != nil {
		return err
	}
	if snapshot == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.cart = snapshot
	return nil
}

// AddItem 加购，同组合键合并数量
func (m *Manager) AddItem(ctx context.Context, snapshot catalog.Snapshot, size string, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.cart.AddItem(snapshot, size, qty); err != nil {
		return err
	}
	m.persist(ctx)

	event := domain.CartItemAddedEvent{
		SessionID: m.sessionID,
		ProductID: snapshot.ProductID,
		Size:      size,
		Quantity:  qty,
		UnitPrice: snapshot.SellPrice,
		Timestamp: time.Now(),
	}
	m.publish(ctx, "cart.item.added", event)
	return nil
}

// RemoveItem 移除行项目，未找到时为 no-op
func (m *Manager) RemoveItem(ctx context.Context, productID, size string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cart.RemoveItem(productID, size)
	m.persist(ctx)

	event := domain.CartItemRemovedEvent{
		SessionID: m.sessionID,
		ProductID: productID,
		Size:      size,
		Timestamp: time.Now(),
	}
	m.publish(ctx, "cart.item.removed", event)
}

// UpdateQuantity 替换行项目数量，下限校验由调用方负责
func (m *Manager) UpdateQuantity(ctx context.Context, productID, size string, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.cart.UpdateQuantity(productID, size, qty); err != nil {
		return err
	}
	m.persist(ctx)

	event := domain.CartQuantityChangedEvent{
		SessionID: m.sessionID,
		ProductID: productID,
		Size:      size,
		Quantity:  qty,
		Timestamp: time.Now(),
	}
	m.publish(ctx, "cart.quantity.changed", event)
	return nil
}

// Clear 清空购物车，下单成功后由结算流程调用
func (m *Manager) Clear(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cart.Clear()
	m.persist(ctx)

	m.publish(ctx, "cart.cleared", domain.CartClearedEvent{
		SessionID: m.sessionID,
		Timestamp: time.Now(),
	})
}

// Snapshot 返回聚合的只读拷贝
func (m *Manager) Snapshot() *domain.Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart.Clone()
}

// Total 派生总金额
func (m *Manager) Total() decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart.Total()
}

// Count 当前商品总件数
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart.Count
}

// persist 透写快照，调用方必须已持有锁
// 仓储失败（如配额耗尽）不影响内存内的变更结果
func (m *Manager) persist(ctx context.Context) {
	if err := m.store.Save(ctx, m.sessionID, m.cart); err != nil {
		slog.WarnContext(ctx, "cart snapshot write-through failed",
			"session_id", m.sessionID, "error", err)
	}
}

func (m *Manager) publish(ctx context.Context, topic string, event any) {
	if m.publisher == nil {
		return
	}
	if err := m.publisher.Publish(ctx, topic, m.sessionID, event); err != nil {
		slog.WarnContext(ctx, "cart event publish failed",
			"topic", topic, "session_id", m.sessionID, "error", err)
	}
}
