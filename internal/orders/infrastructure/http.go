package infrastructure

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"go-grocery/internal/orders/application"
	"go-grocery/internal/orders/domain"
	"go-grocery/pkg/auth"
	"go-grocery/pkg/errors"
	"go-grocery/pkg/middleware"
)

// HTTPHandler handles HTTP requests for orders
type HTTPHandler struct {
	useCase *application.OrderUseCase
}

// NewHTTPHandler creates a new HTTP handler
func NewHTTPHandler(useCase *application.OrderUseCase) *HTTPHandler {
	return &HTTPHandler{useCase: useCase}
}

// RegisterRoutes registers the order routes. All routes require an
// authenticated caller; per-operation permissions decide the rest.
func (h *HTTPHandler) RegisterRoutes(r *gin.RouterGroup, authenticate gin.HandlerFunc) {
	orders := r.Group("/orders", authenticate)
	{
		orders.GET("", middleware.Authorize(auth.OpOrdersList), h.ListOrders)
		orders.GET("/status/:status", middleware.Authorize(auth.OpOrdersList), h.ListByStatus)
		orders.GET("/customer/:customerId", middleware.Authorize(auth.OpOrdersRead), h.ListByCustomer)
		orders.GET("/:id", middleware.Authorize(auth.OpOrdersRead), h.GetOrder)

		orders.POST("", middleware.Authorize(auth.OpOrdersCreate), h.CreateOrder)
		orders.PUT("/:id/status", middleware.Authorize(auth.OpOrdersUpdateStatus), h.UpdateStatus)
		orders.PUT("/:id/payment-status", middleware.Authorize(auth.OpOrdersUpdatePayment), h.UpdatePaymentStatus)
		orders.DELETE("/:id", middleware.Authorize(auth.OpOrdersCancel), h.CancelOrder)
	}
}

// OrderItemRequest identifies a product and quantity on an incoming order
type OrderItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

// CreateOrderRequest is the request body for placing an order
type CreateOrderRequest struct {
	CustomerID      string             `json:"customer_id" binding:"required"`
	CustomerName    string             `json:"customer_name"`
	Items           []OrderItemRequest `json:"items" binding:"required"`
	PaymentMethod   string             `json:"payment_method"`
	DeliveryAddress string             `json:"delivery_address"`
	Notes           string             `json:"notes"`
	DeliveryDate    *time.Time         `json:"delivery_date"`
}

// UpdateStatusRequest is the request body for status updates
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdatePaymentStatusRequest is the request body for payment status updates
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// OrderItemResponse is a line item in an order response
type OrderItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// OrderResponse is the response body for order operations
type OrderResponse struct {
	ID              string              `json:"id"`
	OrderNumber     string              `json:"order_number"`
	CustomerID      string              `json:"customer_id"`
	CustomerName    string              `json:"customer_name,omitempty"`
	Items           []OrderItemResponse `json:"items"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	Status          string              `json:"status"`
	PaymentMethod   string              `json:"payment_method,omitempty"`
	PaymentStatus   string              `json:"payment_status"`
	DeliveryAddress string              `json:"delivery_address,omitempty"`
	Notes           string              `json:"notes,omitempty"`
	OrderDate       string              `json:"order_date"`
	DeliveryDate    string              `json:"delivery_date,omitempty"`
	CreatedAt       string              `json:"created_at"`
	UpdatedAt       string              `json:"updated_at"`
}

// CreateOrder handles POST /orders
func (h *HTTPHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	items := make([]application.OrderItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = application.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	order, err := h.useCase.CreateOrder(c.Request.Context(), application.CreateOrderInput{
		CustomerID:      req.CustomerID,
		CustomerName:    req.CustomerName,
		Items:           items,
		PaymentMethod:   req.PaymentMethod,
		DeliveryAddress: req.DeliveryAddress,
		Notes:           req.Notes,
		DeliveryDate:    req.DeliveryDate,
	})
	if err != nil {
		c.Error(err)
		return
	}
	h.respond(c, http.StatusCreated, order)
}

// ListOrders handles GET /orders
func (h *HTTPHandler) ListOrders(c *gin.Context) {
	orders, err := h.useCase.ListOrders(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	h.respondList(c, orders)
}

// GetOrder handles GET /orders/:id
func (h *HTTPHandler) GetOrder(c *gin.Context) {
	order, err := h.useCase.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	h.respond(c, http.StatusOK, order)
}

// ListByCustomer handles GET /orders/customer/:customerId
func (h *HTTPHandler) ListByCustomer(c *gin.Context) {
	orders, err := h.useCase.ListOrdersByCustomer(c.Request.Context(), c.Param("customerId"))
	if err != nil {
		c.Error(err)
		return
	}
	h.respondList(c, orders)
}

// ListByStatus handles GET /orders/status/:status
func (h *HTTPHandler) ListByStatus(c *gin.Context) {
	orders, err := h.useCase.ListOrdersByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		c.Error(err)
		return
	}
	h.respondList(c, orders)
}

// UpdateStatus handles PUT /orders/:id/status
func (h *HTTPHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	order, err := h.useCase.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		c.Error(err)
		return
	}
	h.respond(c, http.StatusOK, order)
}

// UpdatePaymentStatus handles PUT /orders/:id/payment-status
func (h *HTTPHandler) UpdatePaymentStatus(c *gin.Context) {
	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	order, err := h.useCase.UpdatePaymentStatus(c.Request.Context(), c.Param("id"), req.PaymentStatus)
	if err != nil {
		c.Error(err)
		return
	}
	h.respond(c, http.StatusOK, order)
}

// CancelOrder handles DELETE /orders/:id
func (h *HTTPHandler) CancelOrder(c *gin.Context) {
	order, err := h.useCase.CancelOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	h.respond(c, http.StatusOK, order)
}

func (h *HTTPHandler) respond(c *gin.Context, status int, order *domain.Order) {
	c.JSON(status, gin.H{
		"data":     toResponse(order),
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

func (h *HTTPHandler) respondList(c *gin.Context, orders []*domain.Order) {
	responses := make([]OrderResponse, len(orders))
	for i, order := range orders {
		responses[i] = toResponse(order)
	}
	c.JSON(http.StatusOK, gin.H{
		"data":     responses,
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

func toResponse(order *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		}
	}
	resp := OrderResponse{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerID:      order.CustomerID,
		CustomerName:    order.CustomerName,
		Items:           items,
		TotalAmount:     order.TotalAmount,
		Status:          string(order.Status),
		PaymentMethod:   order.PaymentMethod,
		PaymentStatus:   string(order.PaymentStatus),
		DeliveryAddress: order.DeliveryAddress,
		Notes:           order.Notes,
		OrderDate:       order.OrderDate.Format("2006-01-02T15:04:05Z07:00"),
		CreatedAt:       order.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:       order.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if order.DeliveryDate != nil {
		resp.DeliveryDate = order.DeliveryDate.Format("2006-01-02T15:04:05Z07:00")
	}
	return resp
}
