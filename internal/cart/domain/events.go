package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItemAddedEvent 购物车添加商品事件
type CartItemAddedEvent struct {
	SessionID string          `json:"session_id"`
	ProductID string          `json:"product_id"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Timestamp time.Time       `json:"timestamp"`
}

// CartItemRemovedEvent 购物车移除商品事件
type CartItemRemovedEvent struct {
	SessionID string    `json:"session_id"`
	ProductID string    `json:"product_id"`
	Size      string    `json:"size"`
	Timestamp time.Time `json:"timestamp"`
}

// CartQuantityChangedEvent 购物车数量调整事件
type CartQuantityChangedEvent struct {
	SessionID string    `json:"session_id"`
	ProductID string    `json:"product_id"`
	Size      string    `json:"size"`
	Quantity  int       `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
}

// CartClearedEvent 购物车清空事件
type CartClearedEvent struct {
	SessionID string    `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`
}
