package application

import (
	"context"

	"github.com/solestride/storefront/internal/catalog/domain"
)

// CatalogApplicationService 商品目录服务门面，整合命令服务和查询服务
type CatalogApplicationService struct {
	commandService *CatalogCommandService
	queryService   *CatalogQueryService
}

// NewCatalogApplicationService 创建商品目录服务门面实例
func NewCatalogApplicationService(
	repo domain.ProductRepository,
	publisher domain.EventPublisher,
) *CatalogApplicationService {
	return &CatalogApplicationService{
		commandService: NewCatalogCommandService(repo, publisher),
		queryService:   NewCatalogQueryService(repo),
	}
}

// CreateProduct 处理创建商品
func (s *CatalogApplicationService) CreateProduct(ctx context.Context, cmd CreateProductCommand) (uint, error) {
	return s.commandService.CreateProduct(ctx, cmd)
}

// UpdateProduct 处理更新商品
func (s *CatalogApplicationService) UpdateProduct(ctx context.Context, cmd UpdateProductCommand) error {
	return s.commandService.UpdateProduct(ctx, cmd)
}

// GetProduct 根据ID获取商品信息
func (s *CatalogApplicationService) GetProduct(ctx context.Context, id uint) (*domain.Product, error) {
	return s.queryService.GetProduct(ctx, id)
}

// GetProductBySlug 根据 slug 获取商品信息
func (s *CatalogApplicationService) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return s.queryService.GetProductBySlug(ctx, slug)
}

// GetSnapshot 根据ID获取校验过的商品快照
func (s *CatalogApplicationService) GetSnapshot(ctx context.Context, id uint) (domain.Snapshot, error) {
	return s.queryService.GetSnapshot(ctx, id)
}

// ListTrending 列出热门商品
func (s *CatalogApplicationService) ListTrending(ctx context.Context, lastID uint, limit int) ([]*domain.Product, uint, bool, error) {
	return s.queryService.ListTrending(ctx, lastID, limit)
}

// ListNewArrivals 列出最新发售商品
func (s *CatalogApplicationService) ListNewArrivals(ctx context.Context, limit int) ([]*domain.Product, error) {
	return s.queryService.ListNewArrivals(ctx, limit)
}

// ListByBrand 按品牌列出商品
func (s *CatalogApplicationService) ListByBrand(ctx context.Context, brand string, limit int) ([]*domain.Product, error) {
	return s.queryService.ListByBrand(ctx, brand, limit)
}

// ListSports 列出运动类商品
func (s *CatalogApplicationService) ListSports(ctx context.Context, lastID uint, limit int) ([]*domain.Product, uint, bool, error) {
	return s.queryService.ListSports(ctx, lastID, limit)
}
