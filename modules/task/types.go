package task

import (
	domain "github.com/MorenaPoli/todo-api/domain/task"
)

// CreateTaskRequest is the request for creating a task.
type CreateTaskRequest struct {
	Title    string       `json:"title"`
	Done     bool         `json:"done"`
	DueDate  *domain.Date `json:"due_date"`
	Category *string      `json:"category"`
	Priority string       `json:"priority"`
	Owner    string       `json:"owner"`
}

// ListTasksRequest is the request for listing tasks.
type ListTasksRequest struct {
	Owner    string `json:"owner"`
	FilterBy string `json:"filter_by"`
	Category string `json:"category"`
	Priority string `json:"priority"`
}

// ListTasksResponse is the response containing a list of tasks.
type ListTasksResponse struct {
	Tasks []domain.Task `json:"tasks"`
	Total int           `json:"total"`
}

// GetTaskRequest is the request for getting a task.
type GetTaskRequest struct {
	ID    string `json:"id"`
	Owner string `json:"owner"`
}

// UpdateTaskRequest is the request for a full-replacement update.
type UpdateTaskRequest struct {
	ID       string       `json:"id"`
	Owner    string       `json:"owner"`
	Title    string       `json:"title"`
	Done     bool         `json:"done"`
	DueDate  *domain.Date `json:"due_date"`
	Category *string      `json:"category"`
	Priority string       `json:"priority"`
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	ID    string `json:"id"`
	Owner string `json:"owner"`
}

// DeleteTaskResponse is the response after deleting a task.
type DeleteTaskResponse struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// SearchTasksRequest is the request for searching tasks.
type SearchTasksRequest struct {
	Owner      string `json:"owner"`
	Query      string `json:"query"`
	InTitle    bool   `json:"in_title"`
	InCategory bool   `json:"in_category"`
}

// SearchTasksResponse is the response containing matching tasks.
type SearchTasksResponse struct {
	Results []domain.Task `json:"results"`
}
