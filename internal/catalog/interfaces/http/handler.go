package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/solestride/storefront/internal/catalog/application"
	"github.com/solestride/storefront/internal/catalog/domain"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
)

// CatalogHandler HTTP 处理器
// 负责处理与商品目录相关的 HTTP 请求
type CatalogHandler struct {
	app *application.CatalogApplicationService
}

func NewCatalogHandler(app *application.CatalogApplicationService) *CatalogHandler {
	return &CatalogHandler{app: app}
}

// 注册路由
func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/products")
	{
		api.GET("/trending", h.ListTrending)    // 热门商品
		api.GET("/new-arrivals", h.NewArrivals) // 新品
		api.GET("/sports", h.ListSports)        // 运动系列
		api.GET("/brand/:brand", h.ListByBrand) // 按品牌
		api.GET("/:slug", h.GetBySlug)          // 商品详情
		api.POST("", h.CreateProduct)           // 上架
		api.PUT("/:id", h.UpdateProduct)        // 修改
	}
}

// CreateProductRequest 上架请求
type CreateProductRequest struct {
	Name          string          `json:"name" binding:"required"`
	Slug          string          `json:"slug" binding:"required"`
	Brand         string          `json:"brand"`
	Gender        string          `json:"gender"`
	ProductType   string          `json:"product_type"`
	SellPrice     decimal.Decimal `json:"sell_price" binding:"required"`
	OriginalPrice decimal.Decimal `json:"original_price"`
	Stock         int             `json:"stock"`
	Trending      bool            `json:"trending"`
	Sizes         []string        `json:"sizes"`
	ReleaseDate   time.Time       `json:"release_date"`
	Description   string          `json:"description"`
	ImageURLs     []string        `json:"image_urls"`
}

// CreateProduct 上架商品
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	id, err := h.app.CreateProduct(c.Request.Context(), application.CreateProductCommand{
		Name:          req.Name,
		Slug:          req.Slug,
		Brand:         req.Brand,
		Gender:        req.Gender,
		ProductType:   req.ProductType,
		SellPrice:     req.SellPrice,
		OriginalPrice: req.OriginalPrice,
		Stock:         req.Stock,
		Trending:      req.Trending,
		Sizes:         req.Sizes,
		ReleaseDate:   req.ReleaseDate,
		Description:   req.Description,
		ImageURLs:     req.ImageURLs,
	})
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to create product", "slug", req.Slug, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, gin.H{"id": id})
}

// UpdateProductRequest 修改请求
type UpdateProductRequest struct {
	Name      string          `json:"name" binding:"required"`
	SellPrice decimal.Decimal `json:"sell_price" binding:"required"`
	Stock     int             `json:"stock"`
	Trending  bool            `json:"trending"`
	Sizes     []string        `json:"sizes"`
}

// UpdateProduct 修改商品
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid product id", "")
		return
	}
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	err = h.app.UpdateProduct(c.Request.Context(), application.UpdateProductCommand{
		ID:        uint(id),
		Name:      req.Name,
		SellPrice: req.SellPrice,
		Stock:     req.Stock,
		Trending:  req.Trending,
		Sizes:     req.Sizes,
	})
	if errors.Is(err, domain.ErrProductNotFound) {
		response.ErrorWithStatus(c, http.StatusNotFound, "product not found", "")
		return
	}
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to update product", "id", id, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, gin.H{"id": id})
}

// GetBySlug 获取商品详情
func (h *CatalogHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		response.ErrorWithStatus(c, http.StatusBadRequest, "slug is required", "")
		return
	}

	product, err := h.app.GetProductBySlug(c.Request.Context(), slug)
	if errors.Is(err, domain.ErrProductNotFound) {
		response.ErrorWithStatus(c, http.StatusNotFound, "product not found", "")
		return
	}
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to get product", "slug", slug, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, product)
}

// ListTrending 热门商品，键集分页
func (h *CatalogHandler) ListTrending(c *gin.Context) {
	lastID, _ := strconv.ParseUint(c.Query("last_id"), 10, 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	products, nextID, hasMore, err := h.app.ListTrending(c.Request.Context(), uint(lastID), limit)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list trending products", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, gin.H{"products": products, "last_id": nextID, "has_more": hasMore})
}

// NewArrivals 最新发售的商品
func (h *CatalogHandler) NewArrivals(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	products, err := h.app.ListNewArrivals(c.Request.Context(), limit)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list new arrivals", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, gin.H{"products": products})
}

// ListByBrand 按品牌列出商品
func (h *CatalogHandler) ListByBrand(c *gin.Context) {
	brand := c.Param("brand")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	products, err := h.app.ListByBrand(c.Request.Context(), brand, limit)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list brand products", "brand", brand, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, gin.H{"products": products})
}

// ListSports 运动系列商品，键集分页
func (h *CatalogHandler) ListSports(c *gin.Context) {
	lastID, _ := strconv.ParseUint(c.Query("last_id"), 10, 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	products, nextID, hasMore, err := h.app.ListSports(c.Request.Context(), uint(lastID), limit)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list sports products", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, gin.H{"products": products, "last_id": nextID, "has_more": hasMore})
}
