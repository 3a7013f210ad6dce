package task

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	domain "github.com/MorenaPoli/todo-api/domain/task"
	"gorm.io/gorm"
)

// ErrTaskNotFound is returned when no task matches the requested id for
// the requesting owner.
var ErrTaskNotFound = errors.New("task not found")

// ListFilter narrows a List call. Zero values impose no constraint; all
// set fields compose with logical AND.
type ListFilter struct {
	Owner    string
	FilterBy string // "", "completed", "pending" or "overdue"
	Category string
	Priority string
}

// Replacement carries the full set of mutable fields for an update.
// Update replaces all of them atomically.
type Replacement struct {
	Title    string
	Done     bool
	DueDate  *domain.Date
	Category *string
	Priority domain.Priority
}

// TaskRepository handles task persistence using GORM.
//
// Mutations to the same task id are serialized through a per-id lock so a
// concurrent read-modify-write cannot lose an update. Distinct ids proceed
// concurrently.
type TaskRepository struct {
	db    *gorm.DB
	locks sync.Map // task id -> *sync.Mutex
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Migrate runs database migrations for the tasks table.
func (r *TaskRepository) Migrate() error {
	return r.db.AutoMigrate(&domain.Task{})
}

// lockFor returns the mutation lock for the given task id.
func (r *TaskRepository) lockFor(id string) *sync.Mutex {
	mu, _ := r.locks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Create persists a new task.
func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindByID retrieves one of the owner's tasks by id.
func (r *TaskRepository) FindByID(ctx context.Context, id, owner string) (*domain.Task, error) {
	var t domain.Task
	err := r.db.WithContext(ctx).First(&t, "id = ? AND owner = ?", id, owner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &t, nil
}

// List retrieves the owner's tasks matching the filter, in creation order.
// The secondary id sort keeps the order deterministic when timestamps tie.
func (r *TaskRepository) List(ctx context.Context, f ListFilter) ([]domain.Task, error) {
	q := r.db.WithContext(ctx).Where("owner = ?", f.Owner)

	switch f.FilterBy {
	case domain.FilterCompleted:
		q = q.Where("done = ?", true)
	case domain.FilterPending:
		q = q.Where("done = ?", false)
	case domain.FilterOverdue:
		q = q.Where("done = ? AND due_date IS NOT NULL AND due_date < ?", false, domain.Today().String())
	}

	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}

	var tasks []domain.Task
	if err := q.Order("created_at ASC, id ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// likeEscaper neutralizes the LIKE metacharacters so a query matches them
// literally instead of as wildcards.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search finds the owner's tasks whose title and/or category contains the
// query, case-insensitively. When neither column is selected no task matches.
func (r *TaskRepository) Search(ctx context.Context, owner, query string, inTitle, inCategory bool) ([]domain.Task, error) {
	if !inTitle && !inCategory {
		return []domain.Task{}, nil
	}

	pattern := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
	var conds []string
	var args []any
	if inTitle {
		conds = append(conds, `LOWER(title) LIKE ? ESCAPE '\'`)
		args = append(args, pattern)
	}
	if inCategory {
		conds = append(conds, `category IS NOT NULL AND LOWER(category) LIKE ? ESCAPE '\'`)
		args = append(args, pattern)
	}

	q := r.db.WithContext(ctx).
		Where("owner = ?", owner).
		Where("("+strings.Join(conds, ") OR (")+")", args...)

	var tasks []domain.Task
	if err := q.Order("created_at ASC, id ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to search tasks: %w", err)
	}
	return tasks, nil
}

// Replace atomically overwrites all mutable fields of the owner's task and
// returns the stored result. CompletedAt tracks done transitions: it is
// stamped when a task flips to done and cleared when it flips back.
func (r *TaskRepository) Replace(ctx context.Context, id, owner string, fields Replacement) (*domain.Task, error) {
	mu := r.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	t, err := r.FindByID(ctx, id, owner)
	if err != nil {
		return nil, err
	}

	wasDone := t.Done
	t.Title = fields.Title
	t.Done = fields.Done
	t.DueDate = fields.DueDate
	t.Category = fields.Category
	t.Priority = fields.Priority

	switch {
	case fields.Done && !wasDone:
		now := time.Now()
		t.CompletedAt = &now
	case !fields.Done:
		t.CompletedAt = nil
	}

	// Save writes every field, including zero values, which is exactly the
	// full-replacement semantics update requires.
	if err := r.db.WithContext(ctx).Save(t).Error; err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return t, nil
}

// Delete removes the owner's task permanently. Deleting an id twice fails
// with ErrTaskNotFound on the second call.
func (r *TaskRepository) Delete(ctx context.Context, id, owner string) error {
	mu := r.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	result := r.db.WithContext(ctx).Delete(&domain.Task{}, "id = ? AND owner = ?", id, owner)
	if result.Error != nil {
		return fmt.Errorf("failed to delete task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}

	r.locks.Delete(id)
	return nil
}
