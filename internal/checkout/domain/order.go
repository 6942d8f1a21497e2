// Package domain 包含结账与订单的领域模型
package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	cart "github.com/solestride/storefront/internal/cart/domain"
	"github.com/wyfcoding/pkg/idgen"
	"gorm.io/gorm"
)

// 订单行状态
const StatusPending = "pending"

// 预计送达天数
const DeliveryLeadDays = 7

// OrderLine 订单行
// 一次下单把购物车的每一行展开为一条记录，共享同一个 OrderID
type OrderLine struct {
	gorm.Model
	OrderID string `gorm:"column:order_id;type:varchar(64);index;not null" json:"order_id"`
	// 空串表示游客下单
	UserID   string          `gorm:"column:user_id;type:varchar(36);index" json:"user_id"`
	Name     string          `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Size     string          `gorm:"column:size;type:varchar(20);not null" json:"size"`
	Price    decimal.Decimal `gorm:"column:price;type:decimal(20,8);not null" json:"price"`
	Quantity int             `gorm:"column:quantity;not null" json:"quantity"`
	Status   string          `gorm:"column:status;type:varchar(20);not null;default:'pending'" json:"status"`
}

func (OrderLine) TableName() string { return "order_lines" }

// NewOrderID 生成订单号，毫秒时间戳加三位随机后缀
func NewOrderID() string {
	return fmt.Sprintf("ORD-%d-%03d", time.Now().UnixMilli(), idgen.GenID()%1000)
}

// EstimateDelivery 预计送达时间
func EstimateDelivery(now time.Time) time.Time {
	return now.AddDate(0, 0, DeliveryLeadDays)
}

// LinesFromCart 把购物车展开为订单行
func LinesFromCart(orderID, userID string, c *cart.Cart) []OrderLine {
	lines := make([]OrderLine, 0, len(c.Items))
	for _, item := range c.Items {
		lines = append(lines, OrderLine{
			OrderID:  orderID,
			UserID:   userID,
			Name:     item.Name,
			Size:     item.SelectedSize,
			Price:    item.UnitPrice,
			Quantity: item.Quantity,
			Status:   StatusPending,
		})
	}
	return lines
}

// OrderRepository 订单仓储接口
type OrderRepository interface {
	// InsertLines 批量写入订单行，必须在同一事务内
	InsertLines(ctx context.Context, lines []OrderLine) error
	// ListByOrderID 返回一笔订单的全部行
	ListByOrderID(ctx context.Context, orderID string) ([]OrderLine, error)
	// ListForUser 返回用户的历史订单行，按时间倒序
	ListForUser(ctx context.Context, userID string) ([]OrderLine, error)
}
