package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"user-api/internal/domain"
	"user-api/internal/service"
)

const metricsContentType = "text/plain; version=0.0.4; charset=utf-8"

// Metrics is the part of the metrics registry the HTTP layer needs.
type Metrics interface {
	Render(w io.Writer) error
	ObserveRequest(method, route string, status int)
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	users   service.UserService
	metrics Metrics
	health  *HealthHandler
	logger  *logrus.Logger
}

func NewHandler(users service.UserService, metrics Metrics, db HealthChecker, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		users:   users,
		metrics: metrics,
		health:  NewHealthHandler(db),
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.HandleMethodNotAllowed = true

	router.Use(recovery(h.logger))
	router.Use(requestID())
	router.Use(requestLogger(h.logger))
	if h.metrics != nil {
		router.Use(requestMetrics(h.metrics))
	}
	router.Use(corsMiddleware())

	router.GET("/users", h.listUsers)
	router.POST("/users", h.createUser)
	router.GET("/metrics", h.renderMetrics)
	router.GET("/healthz", h.health.Healthz)
	router.GET("/readyz", h.health.Readyz)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})
}

// createUserRequest accepts query string, form or JSON input. Pointers tell
// a missing field apart from a zero value.
type createUserRequest struct {
	Name *string `form:"name" json:"name" binding:"required"`
	Age  *int    `form:"age" json:"age" binding:"required"`
}

type UserResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(users[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBind(&req); err != nil {
		h.writeError(c, bindingError(err))
		return
	}
	// the form binder reads an empty integer as 0
	if blankFormValue(c, "age") {
		h.writeError(c, &domain.ValidationError{Field: "age", Reason: "must be an integer"})
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), *req.Name, *req.Age)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, userToResponse(*user))
}

func (h *Handler) renderMetrics(c *gin.Context) {
	if h.metrics == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "metrics not configured"})
		return
	}

	var buf bytes.Buffer
	if err := h.metrics.Render(&buf); err != nil {
		h.writeError(c, err)
		return
	}
	c.Data(http.StatusOK, metricsContentType, buf.Bytes())
}

// writeError maps the error taxonomy onto HTTP statuses. Server-side
// details stay in the request log; clients get a fixed message.
func (h *Handler) writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	var (
		vErr *domain.ValidationError
		sErr *domain.StorageError
	)
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &sErr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// blankFormValue reports whether key was sent in the query string or a form
// body with an empty value. JSON bodies are typed and need no such check.
func blankFormValue(c *gin.Context, key string) bool {
	if c.ContentType() == binding.MIMEJSON {
		return false
	}
	if v, ok := c.GetQuery(key); ok && strings.TrimSpace(v) == "" {
		return true
	}
	if v, ok := c.GetPostForm(key); ok && strings.TrimSpace(v) == "" {
		return true
	}
	return false
}

func bindingError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return &domain.ValidationError{
			Field:  strings.ToLower(fieldErrs[0].Field()),
			Reason: "field is required",
		}
	}

	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return &domain.ValidationError{Field: "age", Reason: "must be an integer"}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &domain.ValidationError{Field: typeErr.Field, Reason: "must be of type " + typeErr.Type.String()}
	}

	return &domain.ValidationError{Reason: err.Error()}
}

func userToResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:   user.ID,
		Name: user.Name,
		Age:  user.Age,
	}
}
