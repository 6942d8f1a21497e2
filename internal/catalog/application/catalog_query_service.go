package application

import (
	"context"

	"github.com/solestride/storefront/internal/catalog/domain"
)

// CatalogQueryService 商品目录查询服务
type CatalogQueryService struct {
	repo domain.ProductRepository
}

// NewCatalogQueryService 创建商品目录查询服务实例
func NewCatalogQueryService(
	repo domain.ProductRepository,
) *CatalogQueryService {
	return &CatalogQueryService{
		repo: repo,
	}
}

// GetProduct 根据ID获取商品信息
func (s *CatalogQueryService) GetProduct(ctx context.Context, id uint) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// GetProductBySlug 根据 slug 获取商品信息
func (s *CatalogQueryService) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return s.repo.GetBySlug(ctx, slug)
}

// GetSnapshot 根据ID获取校验过的商品快照
func (s *CatalogQueryService) GetSnapshot(ctx context.Context, id uint) (domain.Snapshot, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return domain.NewSnapshot(product)
}

// ListTrending 列出热门商品，lastID 为键集分页游标
func (s *CatalogQueryService) ListTrending(ctx context.Context, lastID uint, limit int) ([]*domain.Product, uint, bool, error) {
	if limit <= 0 {
		limit = 5
	}
	products, err := s.repo.ListTrending(ctx, lastID, limit)
	if err != nil {
		return nil, 0, false, err
	}
	var nextID uint
	if len(products) > 0 {
		nextID = products[len(products)-1].ID
	}
	return products, nextID, len(products) == limit, nil
}

// ListNewArrivals 列出最新发售商品
func (s *CatalogQueryService) ListNewArrivals(ctx context.Context, limit int) ([]*domain.Product, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.repo.ListNewArrivals(ctx, limit)
}

// ListByBrand 按品牌列出商品
func (s *CatalogQueryService) ListByBrand(ctx context.Context, brand string, limit int) ([]*domain.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.ListByBrand(ctx, brand, limit)
}

// ListSports 列出运动类商品，lastID 为键集分页游标
func (s *CatalogQueryService) ListSports(ctx context.Context, lastID uint, limit int) ([]*domain.Product, uint, bool, error) {
	if limit <= 0 {
		limit = 5
	}
	products, err := s.repo.ListSports(ctx, lastID, limit)
	if err != nil {
		return nil, 0, false, err
	}
	var nextID uint
	if len(products) > 0 {
		nextID = products[len(products)-1].ID
	}
	return products, nextID, len(products) == limit, nil
}
