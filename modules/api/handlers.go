package api

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/MorenaPoli/todo-api/modules/analytics"
	"github.com/MorenaPoli/todo-api/modules/auth"
	taskmod "github.com/MorenaPoli/todo-api/modules/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	authContainer      mono.ServiceContainer
	analyticsContainer mono.ServiceContainer
	tasks              taskmod.TaskPort
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authContainer, analyticsContainer mono.ServiceContainer, tasks taskmod.TaskPort) *Handlers {
	return &Handlers{
		authContainer:      authContainer,
		analyticsContainer: analyticsContainer,
		tasks:              tasks,
	}
}

// Root returns the service banner.
func (h *Handlers) Root(c *fiber.Ctx) error {
	return c.JSON(MessageResponse{
		Message: "Todo API is running!",
	})
}

// ListTasks handles GET /tasks with optional filter query params.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	tasks, err := h.tasks.List(c.UserContext(), taskmod.ListTasksRequest{
		Owner:    ownerFromContext(c),
		FilterBy: c.Query("filter_by"),
		Category: c.Query("category"),
		Priority: c.Query("priority"),
	})
	if err != nil {
		return h.handleServiceError(c, err)
	}
	return c.JSON(tasks)
}

// CreateTask handles POST /tasks.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	var req TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request body",
		})
	}

	created, err := h.tasks.Create(c.UserContext(), taskmod.CreateTaskRequest{
		Title:    req.Title,
		Done:     req.Done,
		DueDate:  req.DueDate,
		Category: req.Category,
		Priority: req.Priority,
		Owner:    ownerFromContext(c),
	})
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetTask handles GET /tasks/:id.
func (h *Handlers) GetTask(c *fiber.Ctx) error {
	t, err := h.tasks.Get(c.UserContext(), c.Params("id"), ownerFromContext(c))
	if err != nil {
		return h.handleServiceError(c, err)
	}
	return c.JSON(t)
}

// UpdateTask handles PUT /tasks/:id with full-replacement semantics.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	var req TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request body",
		})
	}

	updated, err := h.tasks.Update(c.UserContext(), taskmod.UpdateTaskRequest{
		ID:       c.Params("id"),
		Owner:    ownerFromContext(c),
		Title:    req.Title,
		Done:     req.Done,
		DueDate:  req.DueDate,
		Category: req.Category,
		Priority: req.Priority,
	})
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(updated)
}

// DeleteTask handles DELETE /tasks/:id.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	if err := h.tasks.Delete(c.UserContext(), c.Params("id"), ownerFromContext(c)); err != nil {
		return h.handleServiceError(c, err)
	}
	return c.JSON(MessageResponse{
		Message: "Task deleted successfully",
	})
}

// SearchTasks handles GET /search with q, in_title and in_category params.
// The column flags default to true when omitted.
func (h *Handlers) SearchTasks(c *fiber.Ctx) error {
	results, err := h.tasks.Search(c.UserContext(), taskmod.SearchTasksRequest{
		Owner:      ownerFromContext(c),
		Query:      c.Query("q"),
		InTitle:    queryFlag(c, "in_title", true),
		InCategory: queryFlag(c, "in_category", true),
	})
	if err != nil {
		return h.handleServiceError(c, err)
	}
	return c.JSON(SearchResponse{Results: results})
}

// Signup handles user registration.
func (h *Handlers) Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request body",
		})
	}

	if req.Username == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Username and password are required",
		})
	}

	authReq := auth.SignupRequest{
		Username: req.Username,
		Password: req.Password,
	}
	var resp auth.SignupResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"signup",
		json.Marshal,
		json.Unmarshal,
		&authReq,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(UserResponse{
		ID:        resp.ID,
		Username:  resp.Username,
		CreatedAt: resp.CreatedAt,
	})
}

// Login handles user login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request body",
		})
	}

	if req.Username == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Username and password are required",
		})
	}

	authReq := auth.LoginRequest{
		Username: req.Username,
		Password: req.Password,
	}
	var resp auth.LoginResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"login",
		json.Marshal,
		json.Unmarshal,
		&authReq,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(TokenResponse{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		TokenType:    resp.TokenType,
	})
}

// Refresh handles token refresh.
func (h *Handlers) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request body",
		})
	}

	if req.RefreshToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Refresh token is required",
		})
	}

	authReq := auth.RefreshRequest{
		RefreshToken: req.RefreshToken,
	}
	var resp auth.RefreshResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"refresh-token",
		json.Marshal,
		json.Unmarshal,
		&authReq,
		&resp,
	); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid or expired refresh token",
		})
	}

	return c.Status(fiber.StatusOK).JSON(TokenResponse{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		TokenType:    resp.TokenType,
	})
}

// Productivity handles GET /analytics/productivity. Requires auth.
func (h *Handlers) Productivity(c *fiber.Ctx) error {
	req := analytics.ProductivityRequest{
		Owner:     ownerFromContext(c),
		Timeframe: c.Query("timeframe"),
	}
	var resp analytics.ProductivityResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.analyticsContainer,
		"productivity",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(resp)
}

// queryFlag parses a boolean query parameter with a default for omission.
func queryFlag(c *fiber.Ctx, name string, def bool) bool {
	switch strings.ToLower(c.Query(name)) {
	case "":
		return def
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

// handleServiceError translates module errors into HTTP responses.
// Errors cross the service container as flattened messages, so known
// failures are matched by their stable message text.
func (h *Handlers) handleServiceError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "task not found"):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Task not found",
		})
	case strings.Contains(errStr, "title is required"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Title is required",
		})
	case strings.Contains(errStr, "invalid priority"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Priority must be high, medium or low",
		})
	case strings.Contains(errStr, "invalid date"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Due date must use the YYYY-MM-DD format",
		})
	case strings.Contains(errStr, "invalid timeframe"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Timeframe must be day, week or month",
		})
	case strings.Contains(errStr, "invalid username or password"):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid username or password",
		})
	case strings.Contains(errStr, "username already taken"):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Error:   "conflict",
			Message: "Username already taken",
		})
	case strings.Contains(errStr, "username is required"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Username is required",
		})
	case strings.Contains(errStr, "password must be at least"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Password does not meet the minimum length policy",
		})
	case strings.Contains(errStr, "password must be at most"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Password must be at most 72 characters",
		})
	case strings.Contains(errStr, "token validation failed"), strings.Contains(errStr, "invalid refresh token"):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid or expired token",
		})
	default:
		// Log the actual error but don't expose it to the client
		log.Printf("[api] Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
	}
}
