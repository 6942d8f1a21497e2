// Package application 结账应用服务
package application

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	cartdomain "github.com/solestride/storefront/internal/cart/domain"
	"github.com/solestride/storefront/internal/checkout/domain"
	"github.com/wyfcoding/pkg/contextx"
	"gorm.io/gorm"
)

const topicOrderPlaced = "order.placed"

// Cart 结账需要的购物车视角
type Cart interface {
	Snapshot() *cartdomain.Cart
	RemoveItem(ctx context.Context, productID, size string)
}

// TxManager 事务执行器，*gorm.DB 天然满足
type TxManager interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}

// Result 下单结果
type Result struct {
	OrderID          string          `json:"order_id"`
	Total            decimal.Decimal `json:"total"`
	DeliveryEstimate time.Time       `json:"delivery_estimate"`
}

// CheckoutService 处理下单与订单查询
// 订单行和下单事件在同一事务内落库，事件经 Outbox 异步出站
type CheckoutService struct {
	repo      domain.OrderRepository
	publisher domain.EventPublisher
	db        TxManager

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewCheckoutService 创建结账服务
func NewCheckoutService(repo domain.OrderRepository, publisher domain.EventPublisher, db TxManager) *CheckoutService {
	return &CheckoutService{
		repo:      repo,
		publisher: publisher,
		db:        db,
		inflight:  make(map[string]struct{}),
	}
}

// PlaceOrder 下单
// 同一会话同时只允许一笔结账在途；成功后按快照逐行清出购物车，
// 事务窗口内新加入的行不受影响
func (s *CheckoutService) PlaceOrder(ctx context.Context, sessionID, userID string, cart Cart) (Result, error) {
	snapshot := cart.Snapshot()
	if snapshot.IsEmpty() {
		return Result{}, domain.ErrEmptyCart
	}

	if !s.begin(sessionID) {
		return Result{}, domain.ErrCheckoutInProgress
	}
	defer s.end(sessionID)

	now := time.Now()
	orderID := domain.NewOrderID()
	lines := domain.LinesFromCart(orderID, userID, snapshot)
	estimate := domain.EstimateDelivery(now)

	event := domain.OrderPlacedEvent{
		OrderID:          orderID,
		UserID:           userID,
		SessionID:        sessionID,
		Total:            snapshot.Total(),
		DeliveryEstimate: estimate,
		PlacedAt:         now,
	}
	for _, line := range lines {
		event.Lines = append(event.Lines, domain.PlacedLine{
			Name:     line.Name,
			Size:     line.Size,
			Price:    line.Price,
			Quantity: line.Quantity,
		})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := contextx.WithTx(ctx, tx)
		if err := s.repo.InsertLines(txCtx, lines); err != nil {
			return err
		}
		return s.publisher.PublishInTx(ctx, tx, topicOrderPlaced, orderID, event)
	})
	if err != nil {
		return Result{}, err
	}

	for _, item := range snapshot.Items {
		cart.RemoveItem(ctx, item.ProductID, item.SelectedSize)
	}

	return Result{
		OrderID:          orderID,
		Total:            event.Total,
		DeliveryEstimate: estimate,
	}, nil
}

// GetOrder 返回一笔订单的全部行
func (s *CheckoutService) GetOrder(ctx context.Context, orderID string) ([]domain.OrderLine, error) {
	return s.repo.ListByOrderID(ctx, orderID)
}

// ListOrders 返回用户的历史订单行
func (s *CheckoutService) ListOrders(ctx context.Context, userID string) ([]domain.OrderLine, error) {
	return s.repo.ListForUser(ctx, userID)
}

func (s *CheckoutService) begin(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[sessionID]; busy {
		return false
	}
	s.inflight[sessionID] = struct{}{}
	return true
}

func (s *CheckoutService) end(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, sessionID)
}
