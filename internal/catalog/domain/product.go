// Package domain 包含商品目录的领域模型
package domain

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product 商品实体
// 代表目录中的一款鞋及其展示属性
type Product struct {
	gorm.Model
	// 商品名称
	Name string `gorm:"column:name;type:varchar(255);not null" json:"name"`
	// 商品 slug，页面路由唯一标识
	Slug string `gorm:"column:slug;type:varchar(255);uniqueIndex;not null" json:"slug"`
	// 品牌
	Brand string `gorm:"column:brand;type:varchar(100);index" json:"brand"`
	// 适用性别
	Gender string `gorm:"column:gender;type:varchar(20)" json:"gender"`
	// 商品类型（running / sports / casual 等）
	ProductType string `gorm:"column:product_type;type:varchar(100);index" json:"product_type"`
	// 售价
	SellPrice decimal.Decimal `gorm:"column:sell_price;type:decimal(20,8);not null" json:"sell_price"`
	// 原价，零值表示无折扣价
	OriginalPrice decimal.Decimal `gorm:"column:original_price;type:decimal(20,8)" json:"original_price"`
	// 库存
	Stock int `gorm:"column:stock;not null;default:0" json:"stock"`
	// 是否热门
	Trending bool `gorm:"column:trending;index" json:"trending"`
	// 可选尺码
	Sizes []string `gorm:"column:sizes;type:json;serializer:json" json:"sizes"`
	// 发售日期
	ReleaseDate time.Time `gorm:"column:release_date" json:"release_date"`
	// 商品描述
	Description string `gorm:"column:description;type:text" json:"description"`
	// 商品图片
	Images []ProductImage `gorm:"foreignKey:ProductID" json:"images"`
}

func (Product) TableName() string { return "products" }

// ProductImage 商品图片
type ProductImage struct {
	gorm.Model
	ProductID uint   `gorm:"column:product_id;index;not null" json:"product_id"`
	URL       string `gorm:"column:url;type:varchar(512);not null" json:"url"`
}

func (ProductImage) TableName() string { return "product_images" }

// PrimaryImage 返回首图，没有图片时返回空串
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}

// Snapshot 商品快照值对象
// 在目录边界构造并校验，购物车和心愿单只消费快照，不再判断可选字段
type Snapshot struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	SellPrice decimal.Decimal `json:"sell_price"`
	Image     string          `json:"image"`
	Slug      string          `json:"slug"`
	Sizes     []string        `json:"sizes"`
}

// NewSnapshot 从商品实体构造快照
// 标识、名称或价格缺失的商品无法进入购物车，直接拒绝
func NewSnapshot(p *Product) (Snapshot, error) {
	if p == nil || p.ID == 0 {
		return Snapshot{}, ErrMissingProductID
	}
	if p.Name == "" {
		return Snapshot{}, ErrMissingProductName
	}
	if !p.SellPrice.IsPositive() {
		return Snapshot{}, ErrInvalidProductPrice
	}
	return Snapshot{
		ProductID: strconv.FormatUint(uint64(p.ID), 10),
		Name:      p.Name,
		SellPrice: p.SellPrice,
		Image:     p.PrimaryImage(),
		Slug:      p.Slug,
		Sizes:     p.Sizes,
	}, nil
}

// HasSize 判断快照是否包含给定尺码
func (s Snapshot) HasSize(size string) bool {
	for _, v := range s.Sizes {
		if v == size {
			return true
		}
	}
	return false
}
