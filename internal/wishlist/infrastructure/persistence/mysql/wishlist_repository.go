// Package mysql 心愿单的 MySQL 持久化实现
package mysql

import (
	"context"
	"strconv"

	catalog "github.com/solestride/storefront/internal/catalog/domain"
	"github.com/solestride/storefront/internal/wishlist/domain"
	"github.com/wyfcoding/pkg/contextx"
	"gorm.io/gorm"
)

type wishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository 创建心愿单仓储
func NewWishlistRepository(db *gorm.DB) domain.Repository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextx.GetTx(ctx).(*gorm.DB); ok {
		return tx
	}
	return r.db
}

// Add 先查后插，组合键已存在时视为成功
func (r *wishlistRepository) Add(ctx context.Context, userID, productID string) error {
	db := r.getDB(ctx)
	var count int64
	if err := db.WithContext(ctx).Model(&domain.Entry{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&domain.Entry{UserID: userID, ProductID: productID}).Error
}

func (r *wishlistRepository) Remove(ctx context.Context, userID, productID string) error {
	return r.getDB(ctx).WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&domain.Entry{}).Error
}

func (r *wishlistRepository) Exists(ctx context.Context, userID, productID string) (bool, error) {
	var count int64
	err := r.getDB(ctx).WithContext(ctx).Model(&domain.Entry{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListForUser 返回用户条目并联结商品快照
// 已下架或校验不通过的商品跳过，不影响其余条目
func (r *wishlistRepository) ListForUser(ctx context.Context, userID string) ([]domain.Item, error) {
	db := r.getDB(ctx)
	var entries []domain.Entry
	if err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return []domain.Item{}, nil
	}

	ids := make([]uint, 0, len(entries))
	for _, e := range entries {
		id, err := strconv.ParseUint(e.ProductID, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}

	var products []catalog.Product
	if err := db.WithContext(ctx).Preload("Images").
		Where("id IN ?", ids).
		Find(&products).Error; err != nil {
		return nil, err
	}
	snapshots := make(map[string]catalog.Snapshot, len(products))
	for i := range products {
		snap, err := catalog.NewSnapshot(&products[i])
		if err != nil {
			continue
		}
		snapshots[snap.ProductID] = snap
	}

	items := make([]domain.Item, 0, len(entries))
	for _, e := range entries {
		snap, ok := snapshots[e.ProductID]
		if !ok {
			continue
		}
		items = append(items, domain.Item{
			UserID:    e.UserID,
			ProductID: e.ProductID,
			Product:   snap,
			AddedAt:   e.CreatedAt,
		})
	}
	return items, nil
}
