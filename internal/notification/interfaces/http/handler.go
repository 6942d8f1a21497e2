package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/solestride/storefront/internal/notification/application"
	"github.com/solestride/storefront/internal/notification/domain"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
)

// NotificationHandler HTTP 处理器
// 运维侧接口，查询与补发通知
type NotificationHandler struct {
	app *application.NotificationService
}

func NewNotificationHandler(app *application.NotificationService) *NotificationHandler {
	return &NotificationHandler{app: app}
}

// 注册路由
func (h *NotificationHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/notifications")
	{
		api.GET("/order/:orderID", h.ListByOrder)   // 按订单查询
		api.POST("/:notificationID/retry", h.Retry) // 单条补发
		api.POST("/retry-failed", h.RetryFailed)    // 批量补发
	}
}

// ListByOrder 查询订单关联的通知
func (h *NotificationHandler) ListByOrder(c *gin.Context) {
	orderID := c.Param("orderID")
	notifications, err := h.app.ListByOrder(c.Request.Context(), orderID)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list notifications", "order_id", orderID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, gin.H{"notifications": notifications})
}

// Retry 补发单条通知
func (h *NotificationHandler) Retry(c *gin.Context) {
	notificationID := c.Param("notificationID")
	err := h.app.Retry(c.Request.Context(), notificationID)
	if errors.Is(err, domain.ErrNotificationNotFound) {
		response.ErrorWithStatus(c, http.StatusNotFound, "notification not found", "")
		return
	}
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to retry notification", "notification_id", notificationID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, gin.H{"notification_id": notificationID})
}

// RetryFailed 批量补发失败通知
func (h *NotificationHandler) RetryFailed(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	sent, err := h.app.RetryFailed(c.Request.Context(), limit)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to retry notifications", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, gin.H{"sent": sent})
}
