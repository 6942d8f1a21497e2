// Package application 心愿单应用服务
package application

import (
	"context"
	"log/slog"
	"sync"
	"time"

	catalog "github.com/solestride/storefront/internal/catalog/domain"
	"github.com/solestride/storefront/internal/wishlist/domain"
)

const (
	topicWishlistItemAdded   = "wishlist.item.added"
	topicWishlistItemRemoved = "wishlist.item.removed"
)

// Manager 心愿单管理器
// 仓储是权威状态，内存镜像只服务于快速读取；
// 乐观写入先改镜像，远端失败再回滚，保证镜像不超前于仓储
type Manager struct {
	repo      domain.Repository
	publisher domain.EventPublisher

	mu         sync.Mutex
	items      []domain.Item
	fetchedFor string
	loading    bool
	lastErr    error
}

// NewManager 创建心愿单管理器
func NewManager(repo domain.Repository, publisher domain.EventPublisher) *Manager {
	return &Manager{repo: repo, publisher: publisher, items: []domain.Item{}}
}

// Fetch 从仓储整体加载用户心愿单并替换镜像
// 用户标识为空时直接返回，镜像保持不变
func (m *Manager) Fetch(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}
	m.mu.Lock()
	m.loading = true
	m.mu.Unlock()

	items, err := m.repo.ListForUser(ctx, userID)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = false
	if err != nil {
		m.lastErr = err
		return err
	}
	m.items = items
	m.fetchedFor = userID
	m.lastErr = nil
	return nil
}

// Add 添加心愿单条目
// 先乐观写入镜像再落库，落库失败撤销镜像写入并返回错误
// 镜像中的条目无论来自 Fetch 还是乐观写入都参与去重，保证组合键在镜像内唯一
func (m *Manager) Add(ctx context.Context, userID string, snapshot catalog.Snapshot) error {
	if userID == "" || snapshot.ProductID == "" {
		return nil
	}

	m.mu.Lock()
	if m.containsLocked(userID, snapshot.ProductID) {
		m.mu.Unlock()
		return nil
	}
	fetched := m.fetchedFor == userID
	m.mu.Unlock()

	// 镜像未加载时无法从本地确认成员关系，先问仓储
	if !fetched {
		exists, err := m.repo.Exists(ctx, userID, snapshot.ProductID)
		if err != nil {
			m.mu.Lock()
			m.lastErr = err
			m.mu.Unlock()
			return err
		}
		if exists {
			return nil
		}
	}

	staged := domain.Item{
		UserID:    userID,
		ProductID: snapshot.ProductID,
		Product:   snapshot,
		AddedAt:   time.Now(),
	}
	m.mu.Lock()
	if m.containsLocked(userID, snapshot.ProductID) {
		m.mu.Unlock()
		return nil
	}
	m.items = append(m.items, staged)
	m.mu.Unlock()

	if err := m.repo.Add(ctx, userID, snapshot.ProductID); err != nil {
		m.mu.Lock()
		m.removeLocked(userID, snapshot.ProductID)
		m.lastErr = err
		m.mu.Unlock()
		return err
	}

	m.publish(ctx, topicWishlistItemAdded, userID, domain.WishlistItemAddedEvent{
		UserID:    userID,
		ProductID: snapshot.ProductID,
	})
	return nil
}

// Remove 移除心愿单条目
// 先落库后改镜像，落库失败镜像保持不变
func (m *Manager) Remove(ctx context.Context, userID, productID string) error {
	if userID == "" || productID == "" {
		return nil
	}
	if err := m.repo.Remove(ctx, userID, productID); err != nil {
		m.mu.Lock()
		m.lastErr = err
		m.mu.Unlock()
		return err
	}

	m.mu.Lock()
	m.removeLocked(userID, productID)
	m.mu.Unlock()

	m.publish(ctx, topicWishlistItemRemoved, userID, domain.WishlistItemRemovedEvent{
		UserID:    userID,
		ProductID: productID,
	})
	return nil
}

// Contains 判断商品是否在心愿单中
// 镜像命中（含乐观写入的条目）直接作答；镜像已加载时未命中即不存在，
// 否则回退到仓储查询
func (m *Manager) Contains(ctx context.Context, userID, productID string) (bool, error) {
	if userID == "" || productID == "" {
		return false, nil
	}
	m.mu.Lock()
	if m.containsLocked(userID, productID) {
		m.mu.Unlock()
		return true, nil
	}
	if m.fetchedFor == userID {
		m.mu.Unlock()
		return false, nil
	}
	m.mu.Unlock()
	return m.repo.Exists(ctx, userID, productID)
}

// Items 返回镜像条目的拷贝
func (m *Manager) Items() []domain.Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Item, len(m.items))
	copy(out, m.items)
	return out
}

// IsLoading 返回是否有加载中的 Fetch
func (m *Manager) IsLoading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// LastErr 返回最近一次失败操作的错误
func (m *Manager) LastErr() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

func (m *Manager) containsLocked(userID, productID string) bool {
	for _, it := range m.items {
		if it.UserID == userID && it.ProductID == productID {
			return true
		}
	}
	return false
}

func (m *Manager) removeLocked(userID, productID string) {
	kept := m.items[:0]
	for _, it := range m.items {
		if it.UserID != userID || it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	m.items = kept
}

func (m *Manager) publish(ctx context.Context, topic, key string, event any) {
	if m.publisher == nil {
		return
	}
	if err := m.publisher.Publish(ctx, topic, key, event); err != nil {
		slog.WarnContext(ctx, "wishlist event publish failed", "topic", topic, "error", err)
	}
}
