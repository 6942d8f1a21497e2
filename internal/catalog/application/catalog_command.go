package application

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/solestride/storefront/internal/catalog/domain"
)

// CreateProductCommand 创建商品命令
type CreateProductCommand struct {
	Name          string
	Slug          string
	Brand         string
	Gender        string
	ProductType   string
	SellPrice     decimal.Decimal
	OriginalPrice decimal.Decimal
	Stock         int
	Trending      bool
	Sizes         []string
	ReleaseDate   time.Time
	Description   string
	ImageURLs     []string
}

// UpdateProductCommand 更新商品命令
type UpdateProductCommand struct {
	ID        uint
	Name      string
	SellPrice decimal.Decimal
	Stock     int
	Trending  bool
	Sizes     []string
}

// CatalogCommandService 商品目录命令服务
type CatalogCommandService struct {
	repo      domain.ProductRepository
	publisher domain.EventPublisher
}

// NewCatalogCommandService 创建商品目录命令服务实例
func NewCatalogCommandService(
	repo domain.ProductRepository,
	publisher domain.EventPublisher,
) *CatalogCommandService {
	return &CatalogCommandService{
		repo:      repo,
		publisher: publisher,
	}
}

// CreateProduct 处理创建商品
func (s *CatalogCommandService) CreateProduct(ctx context.Context, cmd CreateProductCommand) (uint, error) {
	product := &domain.Product{
		Name:          cmd.Name,
		Slug:          cmd.Slug,
		Brand:         cmd.Brand,
		Gender:        cmd.Gender,
		ProductType:   cmd.ProductType,
		SellPrice:     cmd.SellPrice,
		OriginalPrice: cmd.OriginalPrice,
		Stock:         cmd.Stock,
		Trending:      cmd.Trending,
		Sizes:         cmd.Sizes,
		ReleaseDate:   cmd.ReleaseDate,
		Description:   cmd.Description,
	}
	for _, url := range cmd.ImageURLs {
		product.Images = append(product.Images, domain.ProductImage{URL: url})
	}

	if err := s.repo.Save(ctx, product); err != nil {
		return 0, err
	}

	// 发布商品创建事件
	event := domain.ProductCreatedEvent{
		ProductID: product.ID,
		Name:      product.Name,
		Slug:      product.Slug,
		Brand:     product.Brand,
		SellPrice: product.SellPrice,
		Stock:     product.Stock,
		Timestamp: time.Now(),
	}
	s.publisher.Publish(ctx, "product.created", product.Slug, event)

	return product.ID, nil
}

// UpdateProduct 处理更新商品
func (s *CatalogCommandService) UpdateProduct(ctx context.Context, cmd UpdateProductCommand) error {
	product, err := s.repo.GetByID(ctx, cmd.ID)
	if err != nil {
		return err
	}

	oldStock := product.Stock

	product.Name = cmd.Name
	product.SellPrice = cmd.SellPrice
	product.Stock = cmd.Stock
	product.Trending = cmd.Trending
	product.Sizes = cmd.Sizes

	if err := s.repo.Save(ctx, product); err != nil {
		return err
	}

	// 发布商品更新事件
	event := domain.ProductUpdatedEvent{
		ProductID: product.ID,
		Name:      product.Name,
		SellPrice: product.SellPrice,
		Stock:     product.Stock,
		Timestamp: time.Now(),
	}
	s.publisher.Publish(ctx, "product.updated", product.Slug, event)

	// 如果库存发生变化，发布库存变更事件
	if oldStock != product.Stock {
		stockEvent := domain.ProductStockChangedEvent{
			ProductID: product.ID,
			OldStock:  oldStock,
			NewStock:  product.Stock,
			Timestamp: time.Now(),
		}
		s.publisher.Publish(ctx, "product.stock.changed", product.Slug, stockEvent)
	}

	return nil
}
