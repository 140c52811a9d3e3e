package infrastructure

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"go-grocery/internal/catalog/application"
	"go-grocery/internal/catalog/domain"
	"go-grocery/pkg/auth"
	"go-grocery/pkg/errors"
	"go-grocery/pkg/middleware"
)

// HTTPHandler handles HTTP requests for the product catalog
type HTTPHandler struct {
	useCase *application.ProductUseCase
}

// NewHTTPHandler creates a new HTTP handler
func NewHTTPHandler(useCase *application.ProductUseCase) *HTTPHandler {
	return &HTTPHandler{useCase: useCase}
}

// RegisterRoutes registers the product routes. Reads are public;
// writes require an authenticated caller with catalog permissions.
func (h *HTTPHandler) RegisterRoutes(r *gin.RouterGroup, authenticate gin.HandlerFunc) {
	products := r.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/search", h.SearchProducts)
		products.GET("/low-stock", h.LowStockProducts)
		products.GET("/category/:category", h.ListByCategory)
		products.GET("/:id", h.GetProduct)

		products.POST("", authenticate, middleware.Authorize(auth.OpProductsWrite), h.CreateProduct)
		products.PUT("/:id", authenticate, middleware.Authorize(auth.OpProductsWrite), h.UpdateProduct)
		products.DELETE("/:id", authenticate, middleware.Authorize(auth.OpProductsWrite), h.DeleteProduct)
	}
}

// ProductRequest is the request body for creating or updating a product
type ProductRequest struct {
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description"`
	Category      string          `json:"category" binding:"required"`
	Price         decimal.Decimal `json:"price" binding:"required"`
	StockQuantity int             `json:"stock_quantity"`
	ImageURL      string          `json:"image_url"`
}

// ProductResponse is the response body for product operations
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	ImageURL      string          `json:"image_url,omitempty"`
	Active        bool            `json:"active"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}

// ListProducts handles GET /products
func (h *HTTPHandler) ListProducts(c *gin.Context) {
	products, err := h.useCase.ListProducts(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	h.respondList(c, products)
}

// GetProduct handles GET /products/:id
func (h *HTTPHandler) GetProduct(c *gin.Context) {
	product, err := h.useCase.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	h.respond(c, http.StatusOK, product)
}

// ListByCategory handles GET /products/category/:category
func (h *HTTPHandler) ListByCategory(c *gin.Context) {
	products, err := h.useCase.ListProductsByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		c.Error(err)
		return
	}
	h.respondList(c, products)
}

// SearchProducts handles GET /products/search?q=term
func (h *HTTPHandler) SearchProducts(c *gin.Context) {
	term := c.Query("q")
	if term == "" {
		c.Error(errors.NewValidation("search term 'q' is required", nil))
		return
	}

	products, err := h.useCase.SearchProducts(c.Request.Context(), term)
	if err != nil {
		c.Error(err)
		return
	}
	h.respondList(c, products)
}

// LowStockProducts handles GET /products/low-stock?threshold=n
func (h *HTTPHandler) LowStockProducts(c *gin.Context) {
	threshold := 10
	if raw := c.Query("threshold"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.Error(errors.NewValidation("invalid threshold", nil))
			return
		}
		threshold = parsed
	}

	products, err := h.useCase.LowStockProducts(c.Request.Context(), threshold)
	if err != nil {
		c.Error(err)
		return
	}
	h.respondList(c, products)
}

// CreateProduct handles POST /products
func (h *HTTPHandler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	product, err := h.useCase.CreateProduct(c.Request.Context(), application.ProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		ImageURL:      req.ImageURL,
	})
	if err != nil {
		c.Error(err)
		return
	}
	h.respond(c, http.StatusCreated, product)
}

// UpdateProduct handles PUT /products/:id
func (h *HTTPHandler) UpdateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	product, err := h.useCase.UpdateProduct(c.Request.Context(), c.Param("id"), application.ProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		ImageURL:      req.ImageURL,
	})
	if err != nil {
		c.Error(err)
		return
	}
	h.respond(c, http.StatusOK, product)
}

// DeleteProduct handles DELETE /products/:id
func (h *HTTPHandler) DeleteProduct(c *gin.Context) {
	if err := h.useCase.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HTTPHandler) respond(c *gin.Context, status int, product *domain.Product) {
	c.JSON(status, gin.H{
		"data":     toResponse(product),
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

func (h *HTTPHandler) respondList(c *gin.Context, products []*domain.Product) {
	responses := make([]ProductResponse, len(products))
	for i, product := range products {
		responses[i] = toResponse(product)
	}
	c.JSON(http.StatusOK, gin.H{
		"data":     responses,
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

func toResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:            product.ID,
		Name:          product.Name,
		Description:   product.Description,
		Category:      product.Category,
		Price:         product.Price,
		StockQuantity: product.StockQuantity,
		ImageURL:      product.ImageURL,
		Active:        product.Active,
		CreatedAt:     product.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:     product.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
