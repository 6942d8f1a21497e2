package session

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	cartdomain "github.com/solestride/storefront/internal/cart/domain"
	catalog "github.com/solestride/storefront/internal/catalog/domain"
	wishlistdomain "github.com/solestride/storefront/internal/wishlist/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSnapshotStore struct {
	mu        sync.Mutex
	snapshots map[string]*cartdomain.Cart
}

func (s *stubSnapshotStore) Save(ctx context.Context, sessionID string, cart *cartdomain.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[sessionID] = cart.Clone()
	return nil
}

func (s *stubSnapshotStore) Load(ctx context.Context, sessionID string) (*cartdomain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.snapshots[sessionID]; ok {
		return c.Clone(), nil
	}
	return nil, nil
}

func (s *stubSnapshotStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, sessionID)
	return nil
}

type stubWishlistRepo struct{}

func (stubWishlistRepo) Add(ctx context.Context, userID, productID string) error    { return nil }
func (stubWishlistRepo) Remove(ctx context.Context, userID, productID string) error { return nil }
func (stubWishlistRepo) Exists(ctx context.Context, userID, productID string) (bool, error) {
	return false, nil
}
func (stubWishlistRepo) ListForUser(ctx context.Context, userID string) ([]wishlistdomain.Item, error) {
	return []wishlistdomain.Item{}, nil
}

func TestRegistry_SameSessionSharesManagers(t *testing.T) {
	store := &stubSnapshotStore{snapshots: map[string]*cartdomain.Cart{}}
	registry := NewRegistry(store, nil, stubWishlistRepo{}, nil)

	first, err := registry.Get(context.Background(), "s1")
	require.NoError(t, err)
	second, err := registry.Get(context.Background(), "s1")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, registry.Len())
}

func TestRegistry_RestoresCartSnapshotOnFirstAccess(t *testing.T) {
	store := &stubSnapshotStore{snapshots: map[string]*cartdomain.Cart{}}
	seeded := cartdomain.NewCart()
	require.NoError(t, seeded.AddItem(catalog.Snapshot{
		ProductID: "1",
		Name:      "Air Zoom 1",
		SellPrice: decimal.NewFromInt(100),
		Sizes:     []string{"9"},
	}, "9", 2))
	require.NoError(t, store.Save(context.Background(), "s1", seeded))

	registry := NewRegistry(store, nil, stubWishlistRepo{}, nil)
	s, err := registry.Get(context.Background(), "s1")
	require.NoError(t, err)

	assert.Equal(t, 2, s.Cart.Count())
}

func TestRegistry_DistinctSessionsAreIsolated(t *testing.T) {
	store := &stubSnapshotStore{snapshots: map[string]*cartdomain.Cart{}}
	registry := NewRegistry(store, nil, stubWishlistRepo{}, nil)

	a, err := registry.Get(context.Background(), "s1")
	require.NoError(t, err)
	b, err := registry.Get(context.Background(), "s2")
	require.NoError(t, err)

	require.NoError(t, a.Cart.AddItem(context.Background(), catalog.Snapshot{
		ProductID: "1",
		Name:      "Air Zoom 1",
		SellPrice: decimal.NewFromInt(100),
		Sizes:     []string{"9"},
	}, "9", 1))

	assert.Equal(t, 1, a.Cart.Count())
	assert.Equal(t, 0, b.Cart.Count())
}

func TestRegistry_DropRemovesSession(t *testing.T) {
	store := &stubSnapshotStore{snapshots: map[string]*cartdomain.Cart{}}
	registry := NewRegistry(store, nil, stubWishlistRepo{}, nil)

	_, err := registry.Get(context.Background(), "s1")
	require.NoError(t, err)
	registry.Drop("s1")
	assert.Equal(t, 0, registry.Len())
}
