package infrastructure

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-grocery/internal/customers/application"
	"go-grocery/internal/customers/domain"
	"go-grocery/pkg/auth"
	"go-grocery/pkg/errors"
	"go-grocery/pkg/middleware"
)

// HTTPHandler handles HTTP requests for customers
type HTTPHandler struct {
	useCase *application.CustomerUseCase
}

// NewHTTPHandler creates a new HTTP handler
func NewHTTPHandler(useCase *application.CustomerUseCase) *HTTPHandler {
	return &HTTPHandler{useCase: useCase}
}

// RegisterRoutes registers the customer routes
func (h *HTTPHandler) RegisterRoutes(r *gin.RouterGroup, authenticate gin.HandlerFunc) {
	customers := r.Group("/customers", authenticate)
	{
		customers.GET("", middleware.Authorize(auth.OpCustomersList), h.ListCustomers)
		customers.GET("/email/:email", middleware.Authorize(auth.OpCustomersList), h.GetByEmail)
		customers.GET("/:id", middleware.Authorize(auth.OpCustomersRead), h.GetCustomer)

		customers.POST("", middleware.Authorize(auth.OpCustomersWrite), h.CreateCustomer)
		customers.PUT("/:id", middleware.Authorize(auth.OpCustomersUpdate), h.UpdateCustomer)
		customers.DELETE("/:id", middleware.Authorize(auth.OpCustomersDelete), h.DeleteCustomer)
	}
}

// CustomerRequest is the request body for creating or updating a customer
type CustomerRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phone_number" binding:"required"`
}

// CustomerResponse is the response body for customer operations
type CustomerResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	PhoneNumber    string   `json:"phone_number"`
	ProductsBought []string `json:"products_bought,omitempty"`
}

// ListCustomers handles GET /customers
func (h *HTTPHandler) ListCustomers(c *gin.Context) {
	customers, err := h.useCase.ListCustomers(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	h.respondList(c, customers)
}

// GetCustomer handles GET /customers/:id
func (h *HTTPHandler) GetCustomer(c *gin.Context) {
	customer, err := h.useCase.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	h.respond(c, http.StatusOK, customer)
}

// GetByEmail handles GET /customers/email/:email
func (h *HTTPHandler) GetByEmail(c *gin.Context) {
	customer, err := h.useCase.GetCustomerByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		c.Error(err)
		return
	}
	h.respond(c, http.StatusOK, customer)
}

// CreateCustomer handles POST /customers
func (h *HTTPHandler) CreateCustomer(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	customer, err := h.useCase.CreateCustomer(c.Request.Context(), application.CustomerInput{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		c.Error(err)
		return
	}
	h.respond(c, http.StatusCreated, customer)
}

// UpdateCustomer handles PUT /customers/:id
func (h *HTTPHandler) UpdateCustomer(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	customer, err := h.useCase.UpdateCustomer(c.Request.Context(), c.Param("id"), application.CustomerInput{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		c.Error(err)
		return
	}
	h.respond(c, http.StatusOK, customer)
}

// DeleteCustomer handles DELETE /customers/:id
func (h *HTTPHandler) DeleteCustomer(c *gin.Context) {
	if err := h.useCase.DeleteCustomer(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HTTPHandler) respond(c *gin.Context, status int, customer *domain.Customer) {
	c.JSON(status, gin.H{
		"data":     toResponse(customer),
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

func (h *HTTPHandler) respondList(c *gin.Context, customers []*domain.Customer) {
	responses := make([]CustomerResponse, len(customers))
	for i, customer := range customers {
		responses[i] = toResponse(customer)
	}
	c.JSON(http.StatusOK, gin.H{
		"data":     responses,
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

func toResponse(customer *domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:             customer.ID,
		Name:           customer.Name,
		Email:          customer.Email,
		PhoneNumber:    customer.PhoneNumber,
		ProductsBought: customer.ProductsBought,
	}
}
