package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/solestride/storefront/internal/checkout/application"
	"github.com/solestride/storefront/internal/checkout/domain"
	"github.com/solestride/storefront/internal/session"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
)

// 请求头
const (
	HeaderSessionID = "X-Session-ID"
	HeaderUserID    = "X-User-ID"
)

// CheckoutHandler HTTP 处理器
// 负责处理结账与订单查询请求
type CheckoutHandler struct {
	sessions *session.Registry
	app      *application.CheckoutService
}

func NewCheckoutHandler(sessions *session.Registry, app *application.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{sessions: sessions, app: app}
}

// 注册路由
func (h *CheckoutHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1")
	{
		api.POST("/checkout", h.PlaceOrder)     // 下单
		api.GET("/orders", h.ListOrders)        // 历史订单
		api.GET("/orders/:orderID", h.GetOrder) // 订单详情
	}
}

// PlaceOrder 下单
// 游客允许下单，用户标识留空
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	sessionID := c.GetHeader(HeaderSessionID)
	if sessionID == "" {
		response.ErrorWithStatus(c, http.StatusBadRequest, "session id is required", "")
		return
	}
	s, err := h.sessions.Get(c.Request.Context(), sessionID)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to restore session", "session_id", sessionID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	userID := c.GetHeader(HeaderUserID)
	result, err := h.app.PlaceOrder(c.Request.Context(), sessionID, userID, s.Cart)
	if errors.Is(err, domain.ErrEmptyCart) {
		response.ErrorWithStatus(c, http.StatusBadRequest, "cart is empty", "")
		return
	}
	if errors.Is(err, domain.ErrCheckoutInProgress) {
		response.ErrorWithStatus(c, http.StatusConflict, "checkout already in progress", "")
		return
	}
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to place order", "session_id", sessionID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, result)
}

// ListOrders 历史订单，需要登录
func (h *CheckoutHandler) ListOrders(c *gin.Context) {
	userID := c.GetHeader(HeaderUserID)
	if userID == "" {
		response.ErrorWithStatus(c, http.StatusUnauthorized, "login required", "")
		return
	}

	lines, err := h.app.ListOrders(c.Request.Context(), userID)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list orders", "user_id", userID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, gin.H{"orders": lines})
}

// GetOrder 按订单号查询订单行
func (h *CheckoutHandler) GetOrder(c *gin.Context) {
	orderID := c.Param("orderID")
	lines, err := h.app.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to get order", "order_id", orderID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	if len(lines) == 0 {
		response.ErrorWithStatus(c, http.StatusNotFound, "order not found", "")
		return
	}
	response.Success(c, gin.H{"lines": lines})
}
