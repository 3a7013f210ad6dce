package analytics

// ProductivityRequest asks for one owner's productivity report.
type ProductivityRequest struct {
	Owner     string `json:"owner"`
	Timeframe string `json:"timeframe"`
}

// Overview counts tasks by completion state.
type Overview struct {
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Overdue   int `json:"overdue"`
}

// PriorityStats holds per-priority counts.
type PriorityStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// CategoryStats holds per-category counts with a completion percentage.
type CategoryStats struct {
	Total          int     `json:"total"`
	CompletionRate float64 `json:"completion_rate"`
}

// DayActivity is one day of the daily trend.
type DayActivity struct {
	Date      string `json:"date"`
	Created   int    `json:"created"`
	Completed int    `json:"completed"`
}

// ProductivityResponse is the full report returned by the productivity service.
type ProductivityResponse struct {
	CompletionOverview Overview                  `json:"completion_overview"`
	PriorityAnalytics  map[string]PriorityStats  `json:"priority_analytics"`
	CategoryAnalytics  map[string]CategoryStats  `json:"category_analytics"`
	DailyProductivity  []DayActivity             `json:"daily_productivity"`
}
