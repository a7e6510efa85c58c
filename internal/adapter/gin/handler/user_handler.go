package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"mysql-user-service/internal/usecase/user"
	apperrors "mysql-user-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RootBanner is the plain-text body served at the root endpoint.
const RootBanner = "Flask App Running with Docker!"

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Usecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// CreateUserRequest represents the HTTP request body for creating a user
type CreateUserRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// UserResponse represents the HTTP response for user data
type UserResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UserRow is a listing row serialized as a two-element [id, name] array.
type UserRow struct {
	ID   int64
	Name string
}

// MarshalJSON emits the row as [id, name].
func (r UserRow) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{r.ID, r.Name})
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Root handles GET /
func (h *UserHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, RootBanner)
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	resp, err := h.uc.ListUsers(c.Request.Context())
	if err != nil {
		h.log.Error("ListUsers failed", zap.Error(err))
		h.handleError(c, err)
		return
	}

	rows := make([]UserRow, len(resp.Users))
	for i, u := range resp.Users {
		rows[i] = UserRow{ID: u.ID, Name: u.Name}
	}

	c.JSON(http.StatusOK, rows)
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid create user request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	h.log.Info("CreateUser request", zap.String("name", req.Name))

	resp, err := h.uc.CreateUser(c.Request.Context(), user.CreateUserRequest{Name: req.Name})
	if err != nil {
		h.log.Error("CreateUser failed", zap.Error(err))
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, UserResponse{
		ID:   resp.ID,
		Name: resp.Name,
	})
}

// GetUser handles GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	resp, err := h.uc.GetUser(c.Request.Context(), user.GetUserRequest{ID: id})
	if err != nil {
		h.log.Error("GetUser failed", zap.Int64("id", id), zap.Error(err))
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, UserResponse{
		ID:   resp.ID,
		Name: resp.Name,
	})
}

// DeleteUser handles DELETE /users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	h.log.Info("DeleteUser request", zap.Int64("id", id))

	resp, err := h.uc.DeleteUser(c.Request.Context(), user.DeleteUserRequest{ID: id})
	if err != nil {
		h.log.Error("DeleteUser failed", zap.Int64("id", id), zap.Error(err))
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": resp.ID})
}

// parseID extracts and validates the :id path parameter.
// On failure it writes a 400 response and returns ok=false.
func (h *UserHandler) parseID(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		h.log.Warn("invalid user ID", zap.String("id", idStr))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "User ID must be a positive number",
		})
		return 0, false
	}
	return id, true
}

// handleError converts usecase errors to appropriate HTTP responses
func (h *UserHandler) handleError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)

	var label string
	switch status {
	case http.StatusBadRequest:
		label = "invalid_input"
	case http.StatusNotFound:
		label = "not_found"
	case http.StatusConflict:
		label = "already_exists"
	default:
		label = "internal_error"
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		// Internal details stay in the logs
		message = "An internal error occurred"
	}

	c.JSON(status, ErrorResponse{
		Error:   label,
		Message: message,
	})
}
