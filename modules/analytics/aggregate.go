package analytics

import (
	domain "github.com/MorenaPoli/todo-api/domain/task"
)

// uncategorized is the bucket for tasks without a category.
const uncategorized = "uncategorized"

// CompletionOverview counts the owner's tasks by completion state.
// Overdue tasks are those past due and not done; they are also counted
// as pending, matching how the list filters classify them.
func CompletionOverview(tasks []domain.Task, today domain.Date) Overview {
	var o Overview
	for i := range tasks {
		t := &tasks[i]
		if t.Done {
			o.Completed++
			continue
		}
		o.Pending++
		if t.Overdue(today) {
			o.Overdue++
		}
	}
	return o
}

// PriorityBreakdown returns per-priority totals, one entry per priority
// value present in the input.
func PriorityBreakdown(tasks []domain.Task) map[string]PriorityStats {
	stats := make(map[string]PriorityStats)
	for i := range tasks {
		t := &tasks[i]
		s := stats[string(t.Priority)]
		s.Total++
		if t.Done {
			s.Completed++
		}
		stats[string(t.Priority)] = s
	}
	return stats
}

// CategoryBreakdown returns per-category totals with a completion rate
// percentage. The rate is 0 when a bucket is empty; the division only
// happens for buckets with at least one task.
func CategoryBreakdown(tasks []domain.Task) map[string]CategoryStats {
	type counts struct{ total, completed int }
	byCategory := make(map[string]counts)
	for i := range tasks {
		t := &tasks[i]
		name := uncategorized
		if t.Category != nil {
			name = *t.Category
		}
		c := byCategory[name]
		c.total++
		if t.Done {
			c.completed++
		}
		byCategory[name] = c
	}

	stats := make(map[string]CategoryStats, len(byCategory))
	for name, c := range byCategory {
		s := CategoryStats{Total: c.total}
		if c.total > 0 {
			s.CompletionRate = float64(c.completed) / float64(c.total) * 100
		}
		stats[name] = s
	}
	return stats
}

// DailyTrend buckets task creations and completions per calendar day over
// [start, end]. Every day in the window gets an entry, zero-filled when
// nothing happened, in chronological order.
func DailyTrend(tasks []domain.Task, start, end domain.Date) []DayActivity {
	created := make(map[string]int)
	completed := make(map[string]int)
	for i := range tasks {
		t := &tasks[i]
		created[domain.DateOf(t.CreatedAt).String()]++
		if t.Done && t.CompletedAt != nil {
			completed[domain.DateOf(*t.CompletedAt).String()]++
		}
	}

	var trend []DayActivity
	for day := start; !day.Time.After(end.Time); day = day.AddDays(1) {
		key := day.String()
		trend = append(trend, DayActivity{
			Date:      key,
			Created:   created[key],
			Completed: completed[key],
		})
	}
	return trend
}
