package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlacedLine 事件内的订单行
type PlacedLine struct {
	Name     string          `json:"name"`
	Size     string          `json:"size"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// OrderPlacedEvent 下单成功事件
// 通知等下游从这里取件，不再回查订单表
type OrderPlacedEvent struct {
	OrderID          string          `json:"order_id"`
	UserID           string          `json:"user_id"`
	SessionID        string          `json:"session_id"`
	Lines            []PlacedLine    `json:"lines"`
	Total            decimal.Decimal `json:"total"`
	DeliveryEstimate time.Time       `json:"delivery_estimate"`
	PlacedAt         time.Time       `json:"placed_at"`
}
