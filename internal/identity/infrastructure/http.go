package infrastructure

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-grocery/internal/identity/application"
	"go-grocery/internal/identity/domain"
	"go-grocery/pkg/auth"
	"go-grocery/pkg/errors"
	"go-grocery/pkg/middleware"
)

// HTTPHandler handles HTTP requests for authentication and user management
type HTTPHandler struct {
	useCase *application.UserUseCase
}

// NewHTTPHandler creates a new HTTP handler
func NewHTTPHandler(useCase *application.UserUseCase) *HTTPHandler {
	return &HTTPHandler{useCase: useCase}
}

// RegisterRoutes registers the auth and user routes. Login and
// registration are public; everything else requires a bearer token.
func (h *HTTPHandler) RegisterRoutes(r *gin.RouterGroup, authenticate gin.HandlerFunc) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/register", h.Register)
		authGroup.GET("/me", authenticate, h.Me)
	}

	users := r.Group("/users", authenticate)
	{
		users.GET("", middleware.Authorize(auth.OpUsersManage), h.ListUsers)
		users.GET("/username/:username", middleware.Authorize(auth.OpUsersManage), h.GetByUsername)
		users.GET("/:id", middleware.Authorize(auth.OpUsersRead), h.GetUser)

		users.POST("", middleware.Authorize(auth.OpUsersManage), h.CreateUser)
		users.PUT("/:id", middleware.Authorize(auth.OpUsersUpdate), h.UpdateUser)
		users.DELETE("/:id", middleware.Authorize(auth.OpUsersManage), h.DeleteUser)
	}
}

// LoginRequest is the request body for logging in. The login field
// matches either username or email.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the request body for self-service registration
type RegisterRequest struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
}

// UserRequest is the request body for admin user management
type UserRequest struct {
	Username    string   `json:"username" binding:"required"`
	Email       string   `json:"email" binding:"required,email"`
	Password    string   `json:"password"`
	FullName    string   `json:"full_name"`
	PhoneNumber string   `json:"phone_number"`
	Roles       []string `json:"roles"`
	Enabled     bool     `json:"enabled"`
}

// UserResponse is the response body for user operations. The password
// hash is never exposed.
type UserResponse struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	FullName    string   `json:"full_name,omitempty"`
	PhoneNumber string   `json:"phone_number,omitempty"`
	Roles       []string `json:"roles"`
	Enabled     bool     `json:"enabled"`
	LastLoginAt string   `json:"last_login_at,omitempty"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

// AuthResponse is the response body for login and registration
type AuthResponse struct {
	Token    string   `json:"token"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name,omitempty"`
	Roles    []string `json:"roles"`
}

// Login handles POST /auth/login
func (h *HTTPHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	result, err := h.useCase.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.Error(err)
		return
	}
	h.respondAuth(c, http.StatusOK, result)
}

// Register handles POST /auth/register
func (h *HTTPHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	result, err := h.useCase.Register(c.Request.Context(), application.RegisterInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		c.Error(err)
		return
	}
	h.respondAuth(c, http.StatusCreated, result)
}

// Me handles GET /auth/me
func (h *HTTPHandler) Me(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		c.Error(errors.NewUnauthorized("authentication required"))
		return
	}

	user, err := h.useCase.CurrentUser(c.Request.Context(), principal)
	if err != nil {
		c.Error(err)
		return
	}
	h.respond(c, http.StatusOK, user)
}

// ListUsers handles GET /users
func (h *HTTPHandler) ListUsers(c *gin.Context) {
	users, err := h.useCase.ListUsers(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	h.respondList(c, users)
}

// GetUser handles GET /users/:id
func (h *HTTPHandler) GetUser(c *gin.Context) {
	user, err := h.useCase.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	h.respond(c, http.StatusOK, user)
}

// GetByUsername handles GET /users/username/:username
func (h *HTTPHandler) GetByUsername(c *gin.Context) {
	user, err := h.useCase.GetUserByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		c.Error(err)
		return
	}
	h.respond(c, http.StatusOK, user)
}

// CreateUser handles POST /users
func (h *HTTPHandler) CreateUser(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	user, err := h.useCase.CreateUser(c.Request.Context(), application.UserInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Roles:       req.Roles,
		Enabled:     req.Enabled,
	})
	if err != nil {
		c.Error(err)
		return
	}
	h.respond(c, http.StatusCreated, user)
}

// UpdateUser handles PUT /users/:id
func (h *HTTPHandler) UpdateUser(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	user, err := h.useCase.UpdateUser(c.Request.Context(), c.Param("id"), application.UserInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Roles:       req.Roles,
		Enabled:     req.Enabled,
	})
	if err != nil {
		c.Error(err)
		return
	}
	h.respond(c, http.StatusOK, user)
}

// DeleteUser handles DELETE /users/:id
func (h *HTTPHandler) DeleteUser(c *gin.Context) {
	if err := h.useCase.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HTTPHandler) respondAuth(c *gin.Context, status int, result *application.AuthResult) {
	c.JSON(status, gin.H{
		"data": AuthResponse{
			Token:    result.Token,
			Username: result.User.Username,
			Email:    result.User.Email,
			FullName: result.User.FullName,
			Roles:    result.User.Roles,
		},
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

func (h *HTTPHandler) respond(c *gin.Context, status int, user *domain.User) {
	c.JSON(status, gin.H{
		"data":     toResponse(user),
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

func (h *HTTPHandler) respondList(c *gin.Context, users []*domain.User) {
	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = toResponse(user)
	}
	c.JSON(http.StatusOK, gin.H{
		"data":     responses,
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

func toResponse(user *domain.User) UserResponse {
	resp := UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		FullName:    user.FullName,
		PhoneNumber: user.PhoneNumber,
		Roles:       user.Roles,
		Enabled:     user.Enabled,
		CreatedAt:   user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   user.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if user.LastLoginAt != nil {
		resp.LastLoginAt = user.LastLoginAt.Format("2006-01-02T15:04:05Z07:00")
	}
	return resp
}
