// Package session 维护每个会话的购物车与心愿单管理器
package session

import (
	"context"
	"sync"

	cartapp "github.com/solestride/storefront/internal/cart/application"
	cartdomain "github.com/solestride/storefront/internal/cart/domain"
	wishlistapp "github.com/solestride/storefront/internal/wishlist/application"
	wishlistdomain "github.com/solestride/storefront/internal/wishlist/domain"
)

// Session 单个会话持有的状态管理器
type Session struct {
	ID       string
	Cart     *cartapp.Manager
	Wishlist *wishlistapp.Manager
}

// Registry 会话注册表
// 同一会话标识在进程内复用同一组管理器，首次访问时从快照恢复购物车
type Registry struct {
	cartStore     cartdomain.SnapshotStore
	cartPublisher cartdomain.EventPublisher
	wishlistRepo  wishlistdomain.Repository
	wishlistPub   wishlistdomain.EventPublisher

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry 创建会话注册表
func NewRegistry(
	cartStore cartdomain.SnapshotStore,
	cartPublisher cartdomain.EventPublisher,
	wishlistRepo wishlistdomain.Repository,
	wishlistPub wishlistdomain.EventPublisher,
) *Registry {
	return &Registry{
		cartStore:     cartStore,
		cartPublisher: cartPublisher,
		wishlistRepo:  wishlistRepo,
		wishlistPub:   wishlistPub,
		sessions:      make(map[string]*Session),
	}
}

// Get 返回会话，没有则创建并恢复购物车快照
func (r *Registry) Get(ctx context.Context, sessionID string) (*Session, error) {
	r.mu.Lock()
	if s, ok := r.sessions[sessionID]; ok {
		r.mu.Unlock()
		return s, nil
	}
	r.mu.Unlock()

	cart := cartapp.NewManager(sessionID, r.cartStore, r.cartPublisher)
	if err := cart.Restore(ctx); err != nil {
		return nil, err
	}
	s := &Session{
		ID:       sessionID,
		Cart:     cart,
		Wishlist: wishlistapp.NewManager(r.wishlistRepo, r.wishlistPub),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// 并发首访时保留先注册的会话
	if existing, ok := r.sessions[sessionID]; ok {
		return existing, nil
	}
	r.sessions[sessionID] = s
	return s, nil
}

// Drop 移除会话，比如结账完成后清理
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
}

// Len 返回当前注册的会话数
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
