package domain

import "context"

type ProductRepository interface {
	Save(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, id uint) (*Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	// ListTrending 按 id 倒序的热门商品，lastID 为 0 时从头开始
	ListTrending(ctx context.Context, lastID uint, limit int) ([]*Product, error)
	// ListNewArrivals 按发售日期倒序
	ListNewArrivals(ctx context.Context, limit int) ([]*Product, error)
	ListByBrand(ctx context.Context, brand string, limit int) ([]*Product, error)
	// ListSports 商品类型包含 sports 的商品，lastID 为 0 时从头开始
	ListSports(ctx context.Context, lastID uint, limit int) ([]*Product, error)
}
