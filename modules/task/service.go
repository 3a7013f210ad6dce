package task

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	domain "github.com/MorenaPoli/todo-api/domain/task"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrEmptyTitle is returned when the title is blank after trimming.
	ErrEmptyTitle = errors.New("title is required")
	// ErrInvalidPriority is returned for priorities outside the enum.
	ErrInvalidPriority = errors.New("invalid priority: must be high, medium or low")
)

// ListCache is the read-through cache used for task list results. A nil
// cache disables caching; the store is fully correct without one.
type ListCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	DeletePattern(ctx context.Context, pattern string) error
}

// TaskService handles task business logic on top of the repository, with
// optional list caching (cache-aside, invalidate-on-write).
type TaskService struct {
	repo    *TaskRepository
	cache   ListCache
	sfGroup singleflight.Group // collapses concurrent misses for the same list
}

// NewTaskService creates a new TaskService. cache may be nil.
func NewTaskService(repo *TaskRepository, cache ListCache) *TaskService {
	return &TaskService{
		repo:  repo,
		cache: cache,
	}
}

// SetCache wires a list cache after construction.
func (s *TaskService) SetCache(cache ListCache) {
	s.cache = cache
}

// listCacheKey returns the cache key for one owner's filtered list.
func listCacheKey(f ListFilter) string {
	return fmt.Sprintf("list:%s:%s:%s:%s", f.Owner, f.FilterBy, f.Category, f.Priority)
}

// ownerCachePattern matches every cached list for one owner.
func ownerCachePattern(owner string) string {
	return "list:" + owner + ":*"
}

// Create validates and persists a new task.
func (s *TaskService) Create(ctx context.Context, req CreateTaskRequest) (*domain.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	priority, ok := domain.ParsePriority(req.Priority)
	if !ok {
		return nil, ErrInvalidPriority
	}

	t := &domain.Task{
		ID:       uuid.New().String(),
		Title:    title,
		Done:     req.Done,
		DueDate:  req.DueDate,
		Category: normalizeCategory(req.Category),
		Priority: priority,
		Owner:    req.Owner,
	}
	if t.Done {
		now := time.Now()
		t.CompletedAt = &now
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	s.invalidateOwner(ctx, req.Owner)
	return t, nil
}

// List returns the owner's tasks matching the filter, serving repeated
// calls from the cache when one is wired.
func (s *TaskService) List(ctx context.Context, f ListFilter) ([]domain.Task, error) {
	// The overdue filter depends on the current date, so its results are
	// never cached.
	if s.cache == nil || f.FilterBy == domain.FilterOverdue {
		return s.repo.List(ctx, f)
	}

	key := listCacheKey(f)

	var cached []domain.Task
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Printf("[tasks] cache error for %s: %v", key, err)
	}
	if found {
		return cached, nil
	}

	val, err, _ := s.sfGroup.Do(key, func() (any, error) {
		return s.repo.List(ctx, f)
	})
	if err != nil {
		return nil, err
	}
	tasks := val.([]domain.Task)

	if err := s.cache.Set(ctx, key, tasks); err != nil {
		log.Printf("[tasks] failed to cache %s: %v", key, err)
	}

	return tasks, nil
}

// Get returns one of the owner's tasks.
func (s *TaskService) Get(ctx context.Context, id, owner string) (*domain.Task, error) {
	return s.repo.FindByID(ctx, id, owner)
}

// Update replaces all mutable fields of the owner's task.
func (s *TaskService) Update(ctx context.Context, req UpdateTaskRequest) (*domain.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	priority, ok := domain.ParsePriority(req.Priority)
	if !ok {
		return nil, ErrInvalidPriority
	}

	t, err := s.repo.Replace(ctx, req.ID, req.Owner, Replacement{
		Title:    title,
		Done:     req.Done,
		DueDate:  req.DueDate,
		Category: normalizeCategory(req.Category),
		Priority: priority,
	})
	if err != nil {
		return nil, err
	}

	s.invalidateOwner(ctx, req.Owner)
	return t, nil
}

// Delete removes the owner's task permanently.
func (s *TaskService) Delete(ctx context.Context, id, owner string) error {
	if err := s.repo.Delete(ctx, id, owner); err != nil {
		return err
	}
	s.invalidateOwner(ctx, owner)
	return nil
}

// Search finds the owner's tasks matching the query. A blank query
// matches nothing; callers fall back to List for the unfiltered view.
func (s *TaskService) Search(ctx context.Context, req SearchTasksRequest) ([]domain.Task, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return []domain.Task{}, nil
	}
	return s.repo.Search(ctx, req.Owner, query, req.InTitle, req.InCategory)
}

// invalidateOwner drops every cached list for the owner after a write.
func (s *TaskService) invalidateOwner(ctx context.Context, owner string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, ownerCachePattern(owner)); err != nil {
		log.Printf("[tasks] failed to invalidate cache for owner %q: %v", owner, err)
	}
}

// normalizeCategory trims the category and treats blank values as absent.
func normalizeCategory(category *string) *string {
	if category == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*category)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
