package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	domain "github.com/MorenaPoli/todo-api/domain/task"
	taskmod "github.com/MorenaPoli/todo-api/modules/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AnalyticsModule derives productivity statistics from the task store.
// All outputs are recomputed on each call; nothing is persisted.
type AnalyticsModule struct {
	tasks taskmod.TaskPort
	cfg   Config
}

// Compile-time interface checks.
var _ mono.Module = (*AnalyticsModule)(nil)
var _ mono.ServiceProviderModule = (*AnalyticsModule)(nil)
var _ mono.DependentModule = (*AnalyticsModule)(nil)

// NewModule creates a new AnalyticsModule.
func NewModule(cfg Config) *AnalyticsModule {
	return &AnalyticsModule{
		cfg: cfg,
	}
}

// Name returns the module name.
func (m *AnalyticsModule) Name() string {
	return "analytics"
}

// Dependencies returns the list of module dependencies.
func (m *AnalyticsModule) Dependencies() []string {
	return []string{"tasks"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *AnalyticsModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "tasks" {
		m.tasks = taskmod.NewTaskAdapter(container)
	}
}

// Start initializes the analytics module.
func (m *AnalyticsModule) Start(_ context.Context) error {
	if m.tasks == nil {
		return fmt.Errorf("tasks dependency not set")
	}
	log.Println("[analytics] Module started")
	return nil
}

// Stop shuts down the module.
func (m *AnalyticsModule) Stop(_ context.Context) error {
	log.Println("[analytics] Module stopped")
	return nil
}

// RegisterServices registers request-reply services in the service container.
func (m *AnalyticsModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container,
		"productivity",
		json.Unmarshal,
		json.Marshal,
		m.handleProductivity,
	); err != nil {
		return fmt.Errorf("failed to register productivity service: %w", err)
	}

	log.Printf("[analytics] Registered services: productivity")
	return nil
}

// handleProductivity builds the full productivity report for one owner.
// The task list is fetched once, so the report is a consistent snapshot
// of the store at some point during the call.
func (m *AnalyticsModule) handleProductivity(ctx context.Context, req ProductivityRequest, _ *mono.Msg) (ProductivityResponse, error) {
	days, err := m.cfg.WindowDays(req.Timeframe)
	if err != nil {
		return ProductivityResponse{}, err
	}

	tasks, err := m.tasks.List(ctx, taskmod.ListTasksRequest{Owner: req.Owner})
	if err != nil {
		return ProductivityResponse{}, fmt.Errorf("failed to load tasks: %w", err)
	}

	today := domain.Today()
	start := today.AddDays(-(days - 1))

	return ProductivityResponse{
		CompletionOverview: CompletionOverview(tasks, today),
		PriorityAnalytics:  PriorityBreakdown(tasks),
		CategoryAnalytics:  CategoryBreakdown(tasks),
		DailyProductivity:  DailyTrend(tasks, start, today),
	}, nil
}
