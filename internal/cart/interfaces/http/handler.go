package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	cartdomain "github.com/solestride/storefront/internal/cart/domain"
	catalogapp "github.com/solestride/storefront/internal/catalog/application"
	catalogdomain "github.com/solestride/storefront/internal/catalog/domain"
	"github.com/solestride/storefront/internal/session"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
)

// 会话标识请求头
const HeaderSessionID = "X-Session-ID"

// CartHandler HTTP 处理器
// 负责处理与购物车相关的 HTTP 请求
type CartHandler struct {
	sessions *session.Registry
	catalog  *catalogapp.CatalogApplicationService
}

func NewCartHandler(sessions *session.Registry, catalog *catalogapp.CatalogApplicationService) *CartHandler {
	return &CartHandler{sessions: sessions, catalog: catalog}
}

// 注册路由
func (h *CartHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/cart")
	{
		api.GET("", h.GetCart)                               // 查看购物车
		api.POST("/items", h.AddItem)                        // 加购
		api.PUT("/items/:productID/:size", h.UpdateQuantity) // 改数量
		api.DELETE("/items/:productID/:size", h.RemoveItem)  // 移除
		api.DELETE("", h.ClearCart)                          // 清空
	}
}

func (h *CartHandler) session(c *gin.Context) (*session.Session, bool) {
	sessionID := c.GetHeader(HeaderSessionID)
	if sessionID == "" {
		response.ErrorWithStatus(c, http.StatusBadRequest, "session id is required", "")
		return nil, false
	}
	s, err := h.sessions.Get(c.Request.Context(), sessionID)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to restore session", "session_id", sessionID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return nil, false
	}
	return s, true
}

// GetCart 返回当前购物车快照
func (h *CartHandler) GetCart(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	cart := s.Cart.Snapshot()
	response.Success(c, gin.H{"items": cart.Items, "count": cart.Count, "total": cart.Total()})
}

// AddItemRequest 加购请求
type AddItemRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Size      string `json:"size" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// AddItem 加购
// 商品快照从目录取，加购的价格和名称不信任客户端
func (h *CartHandler) AddItem(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	snapshot, err := h.catalog.GetSnapshot(c.Request.Context(), req.ProductID)
	if errors.Is(err, catalogdomain.ErrProductNotFound) {
		response.ErrorWithStatus(c, http.StatusNotFound, "product not found", "")
		return
	}
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to load product snapshot", "product_id", req.ProductID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	if err := s.Cart.AddItem(c.Request.Context(), snapshot, req.Size, req.Quantity); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	response.Success(c, gin.H{"count": s.Cart.Count(), "total": s.Cart.Total()})
}

// UpdateQuantityRequest 改数量请求
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// UpdateQuantity 设置某行的数量
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	err := s.Cart.UpdateQuantity(c.Request.Context(), c.Param("productID"), c.Param("size"), req.Quantity)
	if errors.Is(err, cartdomain.ErrInvalidQuantity) {
		response.ErrorWithStatus(c, http.StatusBadRequest, "quantity must be at least 1", "")
		return
	}
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	response.Success(c, gin.H{"count": s.Cart.Count(), "total": s.Cart.Total()})
}

// RemoveItem 移除某行
func (h *CartHandler) RemoveItem(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	s.Cart.RemoveItem(c.Request.Context(), c.Param("productID"), c.Param("size"))
	response.Success(c, gin.H{"count": s.Cart.Count(), "total": s.Cart.Total()})
}

// ClearCart 清空购物车
func (h *CartHandler) ClearCart(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	s.Cart.Clear(c.Request.Context())
	response.Success(c, gin.H{"count": 0})
}
