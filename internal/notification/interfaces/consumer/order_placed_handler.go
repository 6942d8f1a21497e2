package consumer

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/solestride/storefront/internal/notification/application"
)

// TopicOrderPlaced 订阅的下单事件主题
const TopicOrderPlaced = "order.placed"

// OrderPlacedHandler 消费下单事件并触发通知
type OrderPlacedHandler struct {
	service *application.NotificationService
	logger  *slog.Logger
}

func NewOrderPlacedHandler(service *application.NotificationService, logger *slog.Logger) *OrderPlacedHandler {
	return &OrderPlacedHandler{service: service, logger: logger}
}

func (h *OrderPlacedHandler) Handle(ctx context.Context, msg kafka.Message) error {
	switch msg.Topic {
	case TopicOrderPlaced:
		var payload struct {
			OrderID string `json:"order_id"`
			UserID  string `json:"user_id"`
			Lines   []struct {
				Name     string          `json:"name"`
				Size     string          `json:"size"`
				Price    decimal.Decimal `json:"price"`
				Quantity int             `json:"quantity"`
			} `json:"lines"`
			Total            decimal.Decimal `json:"total"`
			DeliveryEstimate time.Time       `json:"delivery_estimate"`
		}
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			h.logger.ErrorContext(ctx, "failed to unmarshal order placed event", "error", err)
			return err
		}
		if payload.OrderID == "" {
			return nil
		}

		cmd := application.OrderPlacedNotification{
			OrderID:          payload.OrderID,
			UserID:           payload.UserID,
			Total:            payload.Total,
			DeliveryEstimate: payload.DeliveryEstimate,
		}
		for _, line := range payload.Lines {
			cmd.Lines = append(cmd.Lines, application.OrderLine{
				Name:     line.Name,
				Size:     line.Size,
				Price:    line.Price,
				Quantity: line.Quantity,
			})
		}
		return h.service.HandleOrderPlaced(ctx, cmd)
	default:
		h.logger.WarnContext(ctx, "unknown notification topic", "topic", msg.Topic)
		return nil
	}
}
