// Package domain 包含购物车的领域模型
package domain

import (
	"github.com/shopspring/decimal"
	catalog "github.com/solestride/storefront/internal/catalog/domain"
)

// LineItem 购物车行项目
// 以 (ProductID, SelectedSize) 作为唯一标识；展示字段在加购时快照，之后不再刷新
type LineItem struct {
	ProductID    string          `json:"product_id"`
	Name         string          `json:"name"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Image        string          `json:"image"`
	Slug         string          `json:"slug"`
	SelectedSize string          `json:"selected_size"`
	Quantity     int             `json:"quantity"`
}

// Subtotal 行小计
func (i LineItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart 购物车聚合
// Items 按插入顺序排列即展示顺序；Count 在每次变更时增量维护，
// 任何时刻都等于所有行项目数量之和
type Cart struct {
	Items []LineItem `json:"items"`
	Count int        `json:"count"`
}

// NewCart 创建空购物车
func NewCart() *Cart {
	return &Cart{Items: []LineItem{}}
}

func (c *Cart) find(productID, size string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID && c.Items[i].SelectedSize == size {
			return i
		}
	}
	return -1
}

// AddItem 加购
// 同一 (ProductID, SelectedSize) 已存在时合并数量，否则追加新行
// 校验失败时聚合保持原状
func (c *Cart) AddItem(snapshot catalog.Snapshot, size string, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	if snapshot.ProductID == "" {
		return ErrMissingProductID
	}
	if size == "" {
		return ErrMissingSelectedSize
	}

	if i := c.find(snapshot.ProductID, size); i >= 0 {
		c.Items[i].Quantity += qty
		c.Count += qty
		return nil
	}

	c.Items = append(c.Items, LineItem{
		ProductID:    snapshot.ProductID,
		Name:         snapshot.Name,
		UnitPrice:    snapshot.SellPrice,
		Image:        snapshot.Image,
		Slug:         snapshot.Slug,
		SelectedSize: size,
		Quantity:     qty,
	})
	c.Count += qty
	return nil
}

// RemoveItem 按组合键移除行项目，未找到时为静默 no-op
func (c *Cart) RemoveItem(productID, size string) {
	i := c.find(productID, size)
	if i < 0 {
		return
	}
	c.Count -= c.Items[i].Quantity
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
}

// UpdateQuantity 替换行项目数量并按差量调整 Count
// 数量下限由调用方保证，这里只拒绝不做钳制；未找到时为 no-op
func (c *Cart) UpdateQuantity(productID, size string, newQty int) error {
	if newQty < 1 {
		return ErrInvalidQuantity
	}
	i := c.find(productID, size)
	if i < 0 {
		return nil
	}
	c.Count += newQty - c.Items[i].Quantity
	c.Items[i].Quantity = newQty
	return nil
}

// Clear 清空购物车
func (c *Cart) Clear() {
	c.Items = []LineItem{}
	c.Count = 0
}

// Total 派生总金额，每次按需计算，不做缓存
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// IsEmpty 是否为空车
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Clone 深拷贝，用于对外暴露只读快照
func (c *Cart) Clone() *Cart {
	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)
	return &Cart{Items: items, Count: c.Count}
}
