package application

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	catalog "github.com/solestride/storefront/internal/catalog/domain"
	"github.com/solestride/storefront/internal/wishlist/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockWishlistRepo struct {
	mu          sync.Mutex
	entries     map[string]map[string]catalog.Snapshot
	addCalls    int
	existsCalls int
	addErr      error
	removeErr   error
	listErr     error
}

func newMockWishlistRepo() *mockWishlistRepo {
	return &mockWishlistRepo{entries: map[string]map[string]catalog.Snapshot{}}
}

func (m *mockWishlistRepo) seed(userID string, snap catalog.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries[userID] == nil {
		m.entries[userID] = map[string]catalog.Snapshot{}
	}
	m.entries[userID][snap.ProductID] = snap
}

func (m *mockWishlistRepo) Add(ctx context.Context, userID, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addCalls++
	if m.addErr != nil {
		return m.addErr
	}
	if m.entries[userID] == nil {
		m.entries[userID] = map[string]catalog.Snapshot{}
	}
	if _, ok := m.entries[userID][productID]; !ok {
		m.entries[userID][productID] = catalog.Snapshot{ProductID: productID}
	}
	return nil
}

func (m *mockWishlistRepo) Remove(ctx context.Context, userID, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.removeErr != nil {
		return m.removeErr
	}
	delete(m.entries[userID], productID)
	return nil
}

func (m *mockWishlistRepo) Exists(ctx context.Context, userID, productID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.existsCalls++
	_, ok := m.entries[userID][productID]
	return ok, nil
}

func (m *mockWishlistRepo) ListForUser(ctx context.Context, userID string) ([]domain.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	items := []domain.Item{}
	for id, snap := range m.entries[userID] {
		items = append(items, domain.Item{UserID: userID, ProductID: id, Product: snap})
	}
	return items, nil
}

func snap(id string) catalog.Snapshot {
	return catalog.Snapshot{
		ProductID: id,
		Name:      "Air Zoom " + id,
		SellPrice: decimal.NewFromInt(120),
		Slug:      "air-zoom-" + id,
		Sizes:     []string{"8", "9"},
	}
}

func TestManager_FetchReplacesMirror(t *testing.T) {
	repo := newMockWishlistRepo()
	repo.seed("u1", snap("1"))
	repo.seed("u1", snap("2"))
	m := NewManager(repo, nil)

	require.NoError(t, m.Fetch(context.Background(), "u1"))
	assert.Len(t, m.Items(), 2)

	// 再次拉取时整体替换而不是追加
	require.NoError(t, m.Fetch(context.Background(), "u1"))
	assert.Len(t, m.Items(), 2)
}

func TestManager_FetchWithoutUserIsNoop(t *testing.T) {
	repo := newMockWishlistRepo()
	m := NewManager(repo, nil)

	require.NoError(t, m.Fetch(context.Background(), ""))
	assert.Empty(t, m.Items())
}

func TestManager_FetchFailureKeepsMirror(t *testing.T) {
	repo := newMockWishlistRepo()
	repo.seed("u1", snap("1"))
	m := NewManager(repo, nil)
	require.NoError(t, m.Fetch(context.Background(), "u1"))

	repo.listErr = errors.New("db down")
	err := m.Fetch(context.Background(), "u1")
	require.Error(t, err)
	assert.Len(t, m.Items(), 1)
	assert.Error(t, m.LastErr())
}

func TestManager_AddAppendsAndPersists(t *testing.T) {
	repo := newMockWishlistRepo()
	m := NewManager(repo, nil)
	require.NoError(t, m.Fetch(context.Background(), "u1"))

	require.NoError(t, m.Add(context.Background(), "u1", snap("7")))
	items := m.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "7", items[0].ProductID)

	exists, err := repo.Exists(context.Background(), "u1", "7")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestManager_AddRollsBackOnRepositoryFailure(t *testing.T) {
	repo := newMockWishlistRepo()
	repo.addErr = errors.New("insert failed")
	m := NewManager(repo, nil)
	require.NoError(t, m.Fetch(context.Background(), "u1"))

	err := m.Add(context.Background(), "u1", snap("7"))
	require.Error(t, err)
	// 镜像不得超前于仓储
	assert.Empty(t, m.Items())
}

func TestManager_AddDuplicateIsIdempotent(t *testing.T) {
	repo := newMockWishlistRepo()
	m := NewManager(repo, nil)
	require.NoError(t, m.Fetch(context.Background(), "u1"))

	require.NoError(t, m.Add(context.Background(), "u1", snap("7")))
	require.NoError(t, m.Add(context.Background(), "u1", snap("7")))

	assert.Len(t, m.Items(), 1)
	assert.Equal(t, 1, repo.addCalls)
}

func TestManager_DoubleAddBeforeFetchKeepsMirrorUnique(t *testing.T) {
	repo := newMockWishlistRepo()
	m := NewManager(repo, nil)

	// 未 Fetch 过也不允许镜像出现重复组合键
	require.NoError(t, m.Add(context.Background(), "u1", snap("7")))
	require.NoError(t, m.Add(context.Background(), "u1", snap("7")))

	assert.Len(t, m.Items(), 1)
	assert.Equal(t, 1, repo.addCalls)
}

func TestManager_AddBeforeFetchSkipsExistingRemoteEntry(t *testing.T) {
	repo := newMockWishlistRepo()
	repo.seed("u1", snap("7"))
	m := NewManager(repo, nil)

	require.NoError(t, m.Add(context.Background(), "u1", snap("7")))

	assert.Empty(t, m.Items())
	assert.Equal(t, 0, repo.addCalls)
}

func TestManager_ContainsSeesOptimisticAddBeforeFetch(t *testing.T) {
	repo := newMockWishlistRepo()
	m := NewManager(repo, nil)
	require.NoError(t, m.Add(context.Background(), "u1", snap("7")))

	before := repo.existsCalls
	found, err := m.Contains(context.Background(), "u1", "7")
	require.NoError(t, err)
	assert.True(t, found)
	// 镜像命中时不回仓储
	assert.Equal(t, before, repo.existsCalls)
}

func TestManager_AddWithoutUserIsNoop(t *testing.T) {
	repo := newMockWishlistRepo()
	m := NewManager(repo, nil)

	require.NoError(t, m.Add(context.Background(), "", snap("7")))
	assert.Empty(t, m.Items())
	assert.Equal(t, 0, repo.addCalls)
}

func TestManager_RemoveFiltersMirrorAfterPersist(t *testing.T) {
	repo := newMockWishlistRepo()
	repo.seed("u1", snap("1"))
	repo.seed("u1", snap("2"))
	m := NewManager(repo, nil)
	require.NoError(t, m.Fetch(context.Background(), "u1"))

	require.NoError(t, m.Remove(context.Background(), "u1", "1"))
	items := m.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].ProductID)
}

func TestManager_RemoveFailureKeepsMirror(t *testing.T) {
	repo := newMockWishlistRepo()
	repo.seed("u1", snap("1"))
	m := NewManager(repo, nil)
	require.NoError(t, m.Fetch(context.Background(), "u1"))

	repo.removeErr = errors.New("delete failed")
	err := m.Remove(context.Background(), "u1", "1")
	require.Error(t, err)
	assert.Len(t, m.Items(), 1)
}

func TestManager_ContainsUsesMirrorThenFallback(t *testing.T) {
	repo := newMockWishlistRepo()
	repo.seed("u1", snap("1"))
	m := NewManager(repo, nil)

	// 镜像未加载时回退到仓储
	found, err := m.Contains(context.Background(), "u1", "1")
	require.NoError(t, err)
	assert.True(t, found)

	require.NoError(t, m.Fetch(context.Background(), "u1"))
	found, err = m.Contains(context.Background(), "u1", "1")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = m.Contains(context.Background(), "u1", "999")
	require.NoError(t, err)
	assert.False(t, found)
}
