// Package domain 包含心愿单的领域模型
package domain

import (
	"context"
	"time"

	catalog "github.com/solestride/storefront/internal/catalog/domain"
	"gorm.io/gorm"
)

// Entry 心愿单持久化行
// 只存储 (UserID, ProductID) 组合键，商品信息在读取时联结
type Entry struct {
	gorm.Model
	UserID    string `gorm:"column:user_id;type:varchar(36);uniqueIndex:idx_wishlist_user_product;not null" json:"user_id"`
	ProductID string `gorm:"column:product_id;type:varchar(36);uniqueIndex:idx_wishlist_user_product;not null" json:"product_id"`
}

func (Entry) TableName() string { return "wishlist_entries" }

// Item 读取侧的心愿单条目，带联结出的商品快照
type Item struct {
	UserID    string           `json:"user_id"`
	ProductID string           `json:"product_id"`
	Product   catalog.Snapshot `json:"product"`
	AddedAt   time.Time        `json:"added_at"`
}

// Repository 心愿单仓储接口
type Repository interface {
	// Add 幂等写入，组合键已存在时不报错也不产生重复行
	Add(ctx context.Context, userID, productID string) error
	// Remove 按组合键删除
	Remove(ctx context.Context, userID, productID string) error
	// Exists 判断组合键是否存在
	Exists(ctx context.Context, userID, productID string) (bool, error)
	// ListForUser 返回用户的全部条目并联结商品快照
	ListForUser(ctx context.Context, userID string) ([]Item, error)
}
