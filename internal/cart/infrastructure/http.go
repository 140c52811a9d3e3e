package infrastructure

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"go-grocery/internal/cart/application"
	"go-grocery/internal/cart/domain"
	"go-grocery/pkg/auth"
	"go-grocery/pkg/errors"
	"go-grocery/pkg/middleware"
)

// HTTPHandler handles HTTP requests for carts
type HTTPHandler struct {
	useCase *application.CartUseCase
}

// NewHTTPHandler creates a new HTTP handler
func NewHTTPHandler(useCase *application.CartUseCase) *HTTPHandler {
	return &HTTPHandler{useCase: useCase}
}

// RegisterRoutes registers the cart routes; all of them require an
// authenticated caller
func (h *HTTPHandler) RegisterRoutes(r *gin.RouterGroup, authenticate gin.HandlerFunc) {
	cart := r.Group("/cart", authenticate)
	{
		cart.GET("/:customerId", middleware.Authorize(auth.OpCartRead), h.GetCart)
		cart.POST("/:customerId/items", middleware.Authorize(auth.OpCartModify), h.AddItem)
		cart.PUT("/:customerId/items/:productId", middleware.Authorize(auth.OpCartModify), h.UpdateItemQuantity)
		cart.DELETE("/:customerId/items/:productId", middleware.Authorize(auth.OpCartModify), h.RemoveItem)
		cart.DELETE("/:customerId", middleware.Authorize(auth.OpCartModify), h.ClearCart)
	}
}

// AddItemRequest is the request body for adding an item to a cart
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

// UpdateQuantityRequest is the request body for updating a line item
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartItemResponse is a line item in cart responses
type CartItemResponse struct {
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name"`
	ProductCategory string          `json:"product_category,omitempty"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	ImageURL        string          `json:"image_url,omitempty"`
}

// CartResponse is the response body for cart operations
type CartResponse struct {
	ID          string             `json:"id"`
	CustomerID  string             `json:"customer_id"`
	Items       []CartItemResponse `json:"items"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	TotalItems  int                `json:"total_items"`
	UpdatedAt   string             `json:"updated_at"`
}

// GetCart handles GET /cart/:customerId
func (h *HTTPHandler) GetCart(c *gin.Context) {
	cart, err := h.useCase.GetOrCreateCart(c.Request.Context(), c.Param("customerId"))
	if err != nil {
		c.Error(err)
		return
	}
	h.respond(c, http.StatusOK, cart)
}

// AddItem handles POST /cart/:customerId/items
func (h *HTTPHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	cart, err := h.useCase.AddItem(c.Request.Context(), c.Param("customerId"), req.ProductID, req.Quantity)
	if err != nil {
		c.Error(err)
		return
	}
	h.respond(c, http.StatusOK, cart)
}

// UpdateItemQuantity handles PUT /cart/:customerId/items/:productId
func (h *HTTPHandler) UpdateItemQuantity(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	cart, err := h.useCase.UpdateItemQuantity(c.Request.Context(), c.Param("customerId"), c.Param("productId"), req.Quantity)
	if err != nil {
		c.Error(err)
		return
	}
	h.respond(c, http.StatusOK, cart)
}

// RemoveItem handles DELETE /cart/:customerId/items/:productId
func (h *HTTPHandler) RemoveItem(c *gin.Context) {
	cart, err := h.useCase.RemoveItem(c.Request.Context(), c.Param("customerId"), c.Param("productId"))
	if err != nil {
		c.Error(err)
		return
	}
	h.respond(c, http.StatusOK, cart)
}

// ClearCart handles DELETE /cart/:customerId
func (h *HTTPHandler) ClearCart(c *gin.Context) {
	if err := h.useCase.ClearCart(c.Request.Context(), c.Param("customerId")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HTTPHandler) respond(c *gin.Context, status int, cart *domain.Cart) {
	items := make([]CartItemResponse, len(cart.Items))
	for i, item := range cart.Items {
		items[i] = CartItemResponse{
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			ProductCategory: item.ProductCategory,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			TotalPrice:      item.TotalPrice,
			ImageURL:        item.ImageURL,
		}
	}

	c.JSON(status, gin.H{
		"data": CartResponse{
			ID:          cart.ID,
			CustomerID:  cart.CustomerID,
			Items:       items,
			TotalAmount: cart.TotalAmount,
			TotalItems:  cart.TotalItems,
			UpdatedAt:   cart.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		},
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}
