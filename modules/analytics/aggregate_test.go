package analytics

import (
	"testing"
	"time"

	domain "github.com/MorenaPoli/todo-api/domain/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func datePtr(d domain.Date) *domain.Date {
	return &d
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestCompletionOverview(t *testing.T) {
	today := domain.NewDate(2026, time.August, 29)
	yesterday := today.AddDays(-1)
	tomorrow := today.AddDays(1)

	tasks := []domain.Task{
		{Title: "done", Done: true},
		{Title: "done late", Done: true, DueDate: datePtr(yesterday)},
		{Title: "pending, no due date"},
		{Title: "pending, future", DueDate: datePtr(tomorrow)},
		{Title: "overdue", DueDate: datePtr(yesterday)},
		{Title: "due today", DueDate: datePtr(today)},
	}

	got := CompletionOverview(tasks, today)

	// Overdue tasks stay in the pending count as well
	assert.Equal(t, Overview{Completed: 2, Pending: 4, Overdue: 1}, got)
}

func TestCompletionOverview_Empty(t *testing.T) {
	assert.Equal(t, Overview{}, CompletionOverview(nil, domain.Today()))
}

func TestPriorityBreakdown(t *testing.T) {
	tasks := []domain.Task{
		{Priority: domain.PriorityHigh, Done: true},
		{Priority: domain.PriorityHigh},
		{Priority: domain.PriorityHigh},
		{Priority: domain.PriorityLow, Done: true},
	}

	got := PriorityBreakdown(tasks)

	require.Len(t, got, 2)
	assert.Equal(t, PriorityStats{Total: 3, Completed: 1}, got["high"])
	assert.Equal(t, PriorityStats{Total: 1, Completed: 1}, got["low"])
	assert.NotContains(t, got, "medium", "no bucket for an absent priority")
}

func TestCategoryBreakdown(t *testing.T) {
	tasks := []domain.Task{
		{Category: strPtr("work"), Done: true},
		{Category: strPtr("work"), Done: true},
		{Category: strPtr("work")},
		{Category: strPtr("errands")},
		{Title: "no category", Done: true},
	}

	got := CategoryBreakdown(tasks)

	require.Len(t, got, 3)
	assert.Equal(t, 3, got["work"].Total)
	assert.InDelta(t, 66.67, got["work"].CompletionRate, 0.01)
	assert.Equal(t, CategoryStats{Total: 1, CompletionRate: 0}, got["errands"])
	assert.Equal(t, CategoryStats{Total: 1, CompletionRate: 100}, got[uncategorized])
}

func TestDailyTrend(t *testing.T) {
	start := domain.NewDate(2026, time.August, 25)
	end := domain.NewDate(2026, time.August, 29)

	day := func(d int, hour int) time.Time {
		return time.Date(2026, time.August, d, hour, 0, 0, 0, time.UTC)
	}

	tasks := []domain.Task{
		{CreatedAt: day(25, 9)},
		{CreatedAt: day(25, 18), Done: true, CompletedAt: timePtr(day(27, 12))},
		{CreatedAt: day(29, 8)},
		// Done without a completion stamp contributes nothing to the trend
		{CreatedAt: day(26, 10), Done: true},
	}

	got := DailyTrend(tasks, start, end)

	assert.Equal(t, []DayActivity{
		{Date: "2026-08-25", Created: 2},
		{Date: "2026-08-26", Created: 1},
		{Date: "2026-08-27", Completed: 1},
		{Date: "2026-08-28"},
		{Date: "2026-08-29", Created: 1},
	}, got)
}

func TestDailyTrend_SingleDayWindow(t *testing.T) {
	today := domain.NewDate(2026, time.August, 29)

	got := DailyTrend(nil, today, today)

	assert.Equal(t, []DayActivity{{Date: "2026-08-29"}}, got)
}

func TestConfig_WindowDays(t *testing.T) {
	cfg := Config{WeekDays: 7, MonthDays: 30}

	tests := []struct {
		timeframe string
		want      int
	}{
		{timeframe: "day", want: 1},
		{timeframe: "week", want: 7},
		{timeframe: "", want: 7},
		{timeframe: "month", want: 30},
	}

	for _, tt := range tests {
		got, err := cfg.WindowDays(tt.timeframe)
		require.NoError(t, err, "WindowDays(%q)", tt.timeframe)
		assert.Equal(t, tt.want, got, "WindowDays(%q)", tt.timeframe)
	}

	_, err := cfg.WindowDays("year")
	assert.ErrorIs(t, err, ErrInvalidTimeframe)
}

func TestLoadConfig_ClampsWindowLengths(t *testing.T) {
	t.Setenv("ANALYTICS_WEEK_DAYS", "0")
	t.Setenv("ANALYTICS_MONTH_DAYS", "-5")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.WeekDays)
	assert.Equal(t, 1, cfg.MonthDays)

	// A one-day window still yields a non-empty trend
	days, err := cfg.WindowDays("week")
	require.NoError(t, err)
	today := domain.Today()
	trend := DailyTrend(nil, today.AddDays(-(days-1)), today)
	assert.Len(t, trend, 1)
}
