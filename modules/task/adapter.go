package task

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/MorenaPoli/todo-api/domain/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// TaskPort defines the interface other modules use to access the task store.
type TaskPort interface {
	Create(ctx context.Context, req CreateTaskRequest) (*domain.Task, error)
	List(ctx context.Context, req ListTasksRequest) ([]domain.Task, error)
	Get(ctx context.Context, id, owner string) (*domain.Task, error)
	Update(ctx context.Context, req UpdateTaskRequest) (*domain.Task, error)
	Delete(ctx context.Context, id, owner string) error
	Search(ctx context.Context, req SearchTasksRequest) ([]domain.Task, error)
}

// TaskAdapter implements TaskPort using the service container.
type TaskAdapter struct {
	container mono.ServiceContainer
}

// NewTaskAdapter creates a new TaskAdapter.
func NewTaskAdapter(container mono.ServiceContainer) *TaskAdapter {
	return &TaskAdapter{
		container: container,
	}
}

// call invokes one of the task module's request-reply services.
func call[T1 any, T2 any](a *TaskAdapter, ctx context.Context, service string, req T1, resp *T2) error {
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		resp,
	); err != nil {
		return fmt.Errorf("%s request failed: %w", service, err)
	}
	return nil
}

// Create creates a new task.
func (a *TaskAdapter) Create(ctx context.Context, req CreateTaskRequest) (*domain.Task, error) {
	var resp domain.Task
	if err := call(a, ctx, "create", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// List returns tasks matching the request filters.
func (a *TaskAdapter) List(ctx context.Context, req ListTasksRequest) ([]domain.Task, error) {
	var resp ListTasksResponse
	if err := call(a, ctx, "list", &req, &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

// Get fetches a single task.
func (a *TaskAdapter) Get(ctx context.Context, id, owner string) (*domain.Task, error) {
	req := GetTaskRequest{ID: id, Owner: owner}
	var resp domain.Task
	if err := call(a, ctx, "get", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Update replaces a task's mutable fields.
func (a *TaskAdapter) Update(ctx context.Context, req UpdateTaskRequest) (*domain.Task, error) {
	var resp domain.Task
	if err := call(a, ctx, "update", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete removes a task.
func (a *TaskAdapter) Delete(ctx context.Context, id, owner string) error {
	req := DeleteTaskRequest{ID: id, Owner: owner}
	var resp DeleteTaskResponse
	return call(a, ctx, "delete", &req, &resp)
}

// Search finds tasks matching a query.
func (a *TaskAdapter) Search(ctx context.Context, req SearchTasksRequest) ([]domain.Task, error) {
	var resp SearchTasksResponse
	if err := call(a, ctx, "search", &req, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}
