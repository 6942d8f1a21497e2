package mysql

import (
	"context"
	"errors"

	"github.com/solestride/storefront/internal/catalog/domain"
	"gorm.io/gorm"
)

type productRepository struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) domain.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Save(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).Preload("Images").First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).Preload("Images").Where("slug = ?", slug).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) ListTrending(ctx context.Context, lastID uint, limit int) ([]*domain.Product, error) {
	q := r.db.WithContext(ctx).Preload("Images").
		Where("trending = ?", true).
		Order("id DESC").
		Limit(limit)
	if lastID > 0 {
		q = q.Where("id < ?", lastID)
	}
	var products []*domain.Product
	err := q.Find(&products).Error
	return products, err
}

func (r *productRepository) ListNewArrivals(ctx context.Context, limit int) ([]*domain.Product, error) {
	var products []*domain.Product
	err := r.db.WithContext(ctx).Preload("Images").
		Order("release_date DESC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (r *productRepository) ListByBrand(ctx context.Context, brand string, limit int) ([]*domain.Product, error) {
	var products []*domain.Product
	err := r.db.WithContext(ctx).Preload("Images").
		Where("brand = ?", brand).
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (r *productRepository) ListSports(ctx context.Context, lastID uint, limit int) ([]*domain.Product, error) {
	q := r.db.WithContext(ctx).Preload("Images").
		Where("product_type LIKE ?", "%sports%").
		Order("id DESC").
		Limit(limit)
	if lastID > 0 {
		q = q.Where("id < ?", lastID)
	}
	var products []*domain.Product
	err := q.Find(&products).Error
	return products, err
}
