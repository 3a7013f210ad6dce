package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	domain "github.com/MorenaPoli/todo-api/domain/task"
	taskmod "github.com/MorenaPoli/todo-api/modules/task"
	"github.com/gofiber/fiber/v2"
)

// mockTaskPort implements taskmod.TaskPort for testing
type mockTaskPort struct {
	createFunc func(ctx context.Context, req taskmod.CreateTaskRequest) (*domain.Task, error)
	listFunc   func(ctx context.Context, req taskmod.ListTasksRequest) ([]domain.Task, error)
	getFunc    func(ctx context.Context, id, owner string) (*domain.Task, error)
	updateFunc func(ctx context.Context, req taskmod.UpdateTaskRequest) (*domain.Task, error)
	deleteFunc func(ctx context.Context, id, owner string) error
	searchFunc func(ctx context.Context, req taskmod.SearchTasksRequest) ([]domain.Task, error)
}

func (m *mockTaskPort) Create(ctx context.Context, req taskmod.CreateTaskRequest) (*domain.Task, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockTaskPort) List(ctx context.Context, req taskmod.ListTasksRequest) ([]domain.Task, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockTaskPort) Get(ctx context.Context, id, owner string) (*domain.Task, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id, owner)
	}
	return nil, errors.New("not implemented")
}

func (m *mockTaskPort) Update(ctx context.Context, req taskmod.UpdateTaskRequest) (*domain.Task, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockTaskPort) Delete(ctx context.Context, id, owner string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id, owner)
	}
	return errors.New("not implemented")
}

func (m *mockTaskPort) Search(ctx context.Context, req taskmod.SearchTasksRequest) ([]domain.Task, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

// newTaskTestApp wires the task routes the way the module does, with an
// always-valid auth port so requests run as "user-123".
func newTaskTestApp(tasks taskmod.TaskPort) *fiber.App {
	handlers := NewHandlers(nil, nil, tasks)
	authPort := validAuthPort("user-123", "morena")

	app := fiber.New()
	taskGroup := app.Group("/tasks", OptionalAuth(authPort))
	taskGroup.Get("/", handlers.ListTasks)
	taskGroup.Post("/", handlers.CreateTask)
	taskGroup.Get("/:id", handlers.GetTask)
	taskGroup.Put("/:id", handlers.UpdateTask)
	taskGroup.Delete("/:id", handlers.DeleteTask)
	app.Get("/search", OptionalAuth(authPort), handlers.SearchTasks)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string, authed bool) (*http.Response, string) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer token")
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("io.ReadAll() error = %v", err)
	}
	return resp, string(raw)
}

func TestListTasks(t *testing.T) {
	var gotReq taskmod.ListTasksRequest
	app := newTaskTestApp(&mockTaskPort{
		listFunc: func(ctx context.Context, req taskmod.ListTasksRequest) ([]domain.Task, error) {
			gotReq = req
			return []domain.Task{{ID: "t1", Title: "one"}, {ID: "t2", Title: "two"}}, nil
		},
	})

	resp, body := doJSON(t, app, "GET", "/tasks?filter_by=pending&category=work&priority=high", "", true)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusOK)
	}
	if gotReq.Owner != "user-123" || gotReq.FilterBy != "pending" || gotReq.Category != "work" || gotReq.Priority != "high" {
		t.Errorf("list request = %+v", gotReq)
	}

	// The list endpoint returns a bare JSON array
	var tasks []domain.Task
	if err := json.Unmarshal([]byte(body), &tasks); err != nil {
		t.Fatalf("body is not a task array: %v (%s)", err, body)
	}
	if len(tasks) != 2 || tasks[0].ID != "t1" {
		t.Errorf("tasks = %+v", tasks)
	}
}

func TestListTasks_AnonymousOwner(t *testing.T) {
	var gotOwner string
	app := newTaskTestApp(&mockTaskPort{
		listFunc: func(ctx context.Context, req taskmod.ListTasksRequest) ([]domain.Task, error) {
			gotOwner = req.Owner
			return []domain.Task{}, nil
		},
	})

	resp, _ := doJSON(t, app, "GET", "/tasks", "", false)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusOK)
	}
	if gotOwner != "" {
		t.Errorf("owner = %q, want anonymous", gotOwner)
	}
}

func TestCreateTask(t *testing.T) {
	app := newTaskTestApp(&mockTaskPort{
		createFunc: func(ctx context.Context, req taskmod.CreateTaskRequest) (*domain.Task, error) {
			if req.Owner != "user-123" {
				t.Errorf("owner = %q, want user-123", req.Owner)
			}
			return &domain.Task{ID: "new-id", Title: req.Title, Priority: domain.PriorityHigh}, nil
		},
	})

	resp, body := doJSON(t, app, "POST", "/tasks", `{"title":"Buy milk","priority":"high"}`, true)

	if resp.StatusCode != http.StatusCreated {
		t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusCreated)
	}
	if !strings.Contains(body, `"new-id"`) {
		t.Errorf("body = %s, want created task", body)
	}
}

func TestCreateTask_InvalidBody(t *testing.T) {
	app := newTaskTestApp(&mockTaskPort{})

	resp, _ := doJSON(t, app, "POST", "/tasks", `{not json`, true)

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestUpdateTask(t *testing.T) {
	app := newTaskTestApp(&mockTaskPort{
		updateFunc: func(ctx context.Context, req taskmod.UpdateTaskRequest) (*domain.Task, error) {
			if req.ID != "t1" {
				t.Errorf("id = %q, want t1", req.ID)
			}
			return &domain.Task{ID: req.ID, Title: req.Title, Done: req.Done}, nil
		},
	})

	resp, body := doJSON(t, app, "PUT", "/tasks/t1", `{"title":"Renamed","done":true}`, true)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusOK)
	}
	if !strings.Contains(body, `"Renamed"`) {
		t.Errorf("body = %s, want updated task", body)
	}
}

func TestDeleteTask(t *testing.T) {
	app := newTaskTestApp(&mockTaskPort{
		deleteFunc: func(ctx context.Context, id, owner string) error {
			return nil
		},
	})

	resp, body := doJSON(t, app, "DELETE", "/tasks/t1", "", true)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusOK)
	}
	if !strings.Contains(body, "Task deleted successfully") {
		t.Errorf("body = %s, want deletion confirmation", body)
	}
}

func TestSearchTasks_FlagDefaults(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		wantInTitle    bool
		wantInCategory bool
	}{
		{
			name:           "flags default to true",
			target:         "/search?q=milk",
			wantInTitle:    true,
			wantInCategory: true,
		},
		{
			name:           "explicit false",
			target:         "/search?q=milk&in_category=false",
			wantInTitle:    true,
			wantInCategory: false,
		},
		{
			name:           "numeric true",
			target:         "/search?q=milk&in_title=1&in_category=0",
			wantInTitle:    true,
			wantInCategory: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotReq taskmod.SearchTasksRequest
			app := newTaskTestApp(&mockTaskPort{
				searchFunc: func(ctx context.Context, req taskmod.SearchTasksRequest) ([]domain.Task, error) {
					gotReq = req
					return []domain.Task{}, nil
				},
			})

			resp, body := doJSON(t, app, "GET", tt.target, "", true)

			if resp.StatusCode != http.StatusOK {
				t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusOK)
			}
			if gotReq.Query != "milk" || gotReq.InTitle != tt.wantInTitle || gotReq.InCategory != tt.wantInCategory {
				t.Errorf("search request = %+v", gotReq)
			}
			if !strings.Contains(body, `"results"`) {
				t.Errorf("body = %s, want results envelope", body)
			}
		})
	}
}

// Module errors cross the service boundary as flattened messages; the
// API must still map each one to its status code.
func TestServiceErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "missing task",
			err:        errors.New("get request failed: task not found"),
			wantStatus: http.StatusNotFound,
			wantError:  "not_found",
		},
		{
			name:       "blank title",
			err:        errors.New("create request failed: title is required"),
			wantStatus: http.StatusBadRequest,
			wantError:  "bad_request",
		},
		{
			name:       "bad priority",
			err:        errors.New("create request failed: invalid priority: must be high, medium or low"),
			wantStatus: http.StatusBadRequest,
			wantError:  "bad_request",
		},
		{
			name:       "bad date",
			err:        errors.New("create request failed: invalid date \"2026-13-99\""),
			wantStatus: http.StatusBadRequest,
			wantError:  "bad_request",
		},
		{
			name:       "unexpected failure stays opaque",
			err:        errors.New("database is on fire"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTaskTestApp(&mockTaskPort{
				getFunc: func(ctx context.Context, id, owner string) (*domain.Task, error) {
					return nil, tt.err
				},
			})

			resp, body := doJSON(t, app, "GET", "/tasks/t1", "", true)

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %v, want %v", resp.StatusCode, tt.wantStatus)
			}
			if !strings.Contains(body, tt.wantError) {
				t.Errorf("body = %s, want error %q", body, tt.wantError)
			}
			if tt.wantStatus == http.StatusInternalServerError && strings.Contains(body, "on fire") {
				t.Error("internal error details leaked to the client")
			}
		})
	}
}
