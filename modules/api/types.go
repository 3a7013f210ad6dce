package api

import (
	"time"

	domain "github.com/MorenaPoli/todo-api/domain/task"
)

// TaskRequest is the body of POST /tasks and PUT /tasks/:id.
type TaskRequest struct {
	Title    string       `json:"title"`
	Done     bool         `json:"done"`
	DueDate  *domain.Date `json:"due_date"`
	Category *string      `json:"category"`
	Priority string       `json:"priority"`
}

// SignupRequest represents a user signup request.
type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshRequest represents a token refresh request.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse represents an authentication token response.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// UserResponse represents a user response.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []domain.Task `json:"results"`
}

// MessageResponse is a simple confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
