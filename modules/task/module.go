package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	domain "github.com/MorenaPoli/todo-api/domain/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TaskModule provides the task store services.
type TaskModule struct {
	db      *gorm.DB
	repo    *TaskRepository
	service *TaskService
	cfg     Config
}

// Compile-time interface checks.
var _ mono.Module = (*TaskModule)(nil)
var _ mono.ServiceProviderModule = (*TaskModule)(nil)
var _ mono.HealthCheckableModule = (*TaskModule)(nil)

// NewModule creates a new TaskModule.
func NewModule(cfg Config) *TaskModule {
	return &TaskModule{
		cfg: cfg,
	}
}

// Name returns the module name.
func (m *TaskModule) Name() string {
	return "tasks"
}

// SetCache wires a list cache into the task service. Called from main
// after the cache module is started; safe to skip entirely.
func (m *TaskModule) SetCache(cache ListCache) {
	if m.service != nil {
		m.service.SetCache(cache)
	}
}

// Start initializes the task module.
func (m *TaskModule) Start(_ context.Context) error {
	db, err := gorm.Open(sqlite.Open(m.cfg.DBPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	m.repo = NewTaskRepository(db)
	if err := m.repo.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	m.service = NewTaskService(m.repo, nil)

	log.Printf("[tasks] Module started (database: %s)", m.cfg.DBPath)
	return nil
}

// Stop shuts down the module.
func (m *TaskModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[tasks] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *TaskModule) Health(_ context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}

	if err := sqlDB.Ping(); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": m.cfg.DBPath,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *TaskModule) RegisterServices(container mono.ServiceContainer) error {
	services := []struct {
		name     string
		register func() error
	}{
		{"create", func() error {
			return helper.RegisterTypedRequestReplyService(container, "create", json.Unmarshal, json.Marshal, m.handleCreate)
		}},
		{"list", func() error {
			return helper.RegisterTypedRequestReplyService(container, "list", json.Unmarshal, json.Marshal, m.handleList)
		}},
		{"get", func() error {
			return helper.RegisterTypedRequestReplyService(container, "get", json.Unmarshal, json.Marshal, m.handleGet)
		}},
		{"update", func() error {
			return helper.RegisterTypedRequestReplyService(container, "update", json.Unmarshal, json.Marshal, m.handleUpdate)
		}},
		{"delete", func() error {
			return helper.RegisterTypedRequestReplyService(container, "delete", json.Unmarshal, json.Marshal, m.handleDelete)
		}},
		{"search", func() error {
			return helper.RegisterTypedRequestReplyService(container, "search", json.Unmarshal, json.Marshal, m.handleSearch)
		}},
	}

	for _, svc := range services {
		if err := svc.register(); err != nil {
			return fmt.Errorf("failed to register %s service: %w", svc.name, err)
		}
	}

	log.Printf("[tasks] Registered services: create, list, get, update, delete, search")
	return nil
}

// handleCreate handles task creation.
func (m *TaskModule) handleCreate(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (domain.Task, error) {
	t, err := m.service.Create(ctx, req)
	if err != nil {
		return domain.Task{}, err
	}
	return *t, nil
}

// handleList handles task listing with filters.
func (m *TaskModule) handleList(ctx context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	tasks, err := m.service.List(ctx, ListFilter{
		Owner:    req.Owner,
		FilterBy: req.FilterBy,
		Category: req.Category,
		Priority: req.Priority,
	})
	if err != nil {
		return ListTasksResponse{}, err
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return ListTasksResponse{Tasks: tasks, Total: len(tasks)}, nil
}

// handleGet handles fetching a single task.
func (m *TaskModule) handleGet(ctx context.Context, req GetTaskRequest, _ *mono.Msg) (domain.Task, error) {
	t, err := m.service.Get(ctx, req.ID, req.Owner)
	if err != nil {
		return domain.Task{}, err
	}
	return *t, nil
}

// handleUpdate handles a full-replacement update.
func (m *TaskModule) handleUpdate(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (domain.Task, error) {
	t, err := m.service.Update(ctx, req)
	if err != nil {
		return domain.Task{}, err
	}
	return *t, nil
}

// handleDelete handles task deletion.
func (m *TaskModule) handleDelete(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if err := m.service.Delete(ctx, req.ID, req.Owner); err != nil {
		return DeleteTaskResponse{Deleted: false, ID: req.ID}, err
	}
	return DeleteTaskResponse{Deleted: true, ID: req.ID}, nil
}

// handleSearch handles substring search.
func (m *TaskModule) handleSearch(ctx context.Context, req SearchTasksRequest, _ *mono.Msg) (SearchTasksResponse, error) {
	results, err := m.service.Search(ctx, req)
	if err != nil {
		return SearchTasksResponse{}, err
	}
	if results == nil {
		results = []domain.Task{}
	}
	return SearchTasksResponse{Results: results}, nil
}
