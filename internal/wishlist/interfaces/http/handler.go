package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/solestride/storefront/internal/catalog/application"
	catalogdomain "github.com/solestride/storefront/internal/catalog/domain"
	"github.com/solestride/storefront/internal/session"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
)

// 请求头
const (
	HeaderSessionID = "X-Session-ID"
	HeaderUserID    = "X-User-ID"
)

// WishlistHandler HTTP 处理器
// 负责处理与心愿单相关的 HTTP 请求
type WishlistHandler struct {
	sessions *session.Registry
	catalog  *catalogapp.CatalogApplicationService
}

func NewWishlistHandler(sessions *session.Registry, catalog *catalogapp.CatalogApplicationService) *WishlistHandler {
	return &WishlistHandler{sessions: sessions, catalog: catalog}
}

// 注册路由
func (h *WishlistHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/wishlist")
	{
		api.GET("", h.List)                           // 心愿单列表
		api.POST("/items", h.AddItem)                 // 收藏
		api.DELETE("/items/:productID", h.RemoveItem) // 取消收藏
		api.GET("/contains/:productID", h.Contains)   // 是否已收藏
	}
}

func (h *WishlistHandler) session(c *gin.Context) (*session.Session, bool) {
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

// List 拉取并返回用户心愿单
func (h *WishlistHandler) List(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	userID := c.GetHeader(HeaderUserID)
	if err := s.Wishlist.Fetch(c.Request.Context(), userID); err != nil {
		logging.Error(c.Request.Context(), "Failed to fetch wishlist", "user_id", userID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, gin.H{"items": s.Wishlist.Items()})
}

// AddItemRequest 收藏请求
type AddItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// AddItem 收藏商品，需要登录
func (h *WishlistHandler) AddItem(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	userID := c.GetHeader(HeaderUserID)
	if userID == "" {
		response.ErrorWithStatus(c, http.StatusUnauthorized, "login required", "")
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

	if err := s.Wishlist.Add(c.Request.Context(), userID, snapshot); err != nil {
		logging.Error(c.Request.Context(), "Failed to add wishlist item", "user_id", userID, "product_id", req.ProductID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, gin.H{"items": s.Wishlist.Items()})
}

// RemoveItem 取消收藏，需要登录
func (h *WishlistHandler) RemoveItem(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	userID := c.GetHeader(HeaderUserID)
	if userID == "" {
		response.ErrorWithStatus(c, http.StatusUnauthorized, "login required", "")
		return
	}

	productID := c.Param("productID")
	if err := s.Wishlist.Remove(c.Request.Context(), userID, productID); err != nil {
		logging.Error(c.Request.Context(), "Failed to remove wishlist item", "user_id", userID, "product_id", productID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, gin.H{"items": s.Wishlist.Items()})
}

// Contains 判断商品是否已收藏
func (h *WishlistHandler) Contains(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	userID := c.GetHeader(HeaderUserID)
	productID := c.Param("productID")

	found, err := s.Wishlist.Contains(c.Request.Context(), userID, productID)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to check wishlist", "user_id", userID, "product_id", productID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, gin.H{"in_wishlist": found})
}
