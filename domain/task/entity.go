package task

import (
	"time"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

// Task statuses. Any status may replace any other; the store does not
// enforce a transition table.
const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
	StatusCancelled  TaskStatus = "cancelled"
)

// Valid reports whether s is one of the four known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// TaskPriority is the urgency level of a task, totally ordered
// low < medium < high < urgent.
type TaskPriority string

// Task priorities.
const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// Valid reports whether p is one of the four known priorities.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Ordinal returns the sort weight of the priority (low=1 .. urgent=4).
// Unknown priorities sort before low.
func (p TaskPriority) Ordinal() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	case PriorityUrgent:
		return 4
	}
	return 0
}

// Task is a user-owned unit of work. Date fields serialize as RFC3339;
// DueDate is null when the task has no due date.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	Category    string       `json:"category"`
	DueDate     *time.Time   `json:"dueDate"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	UserID      string       `json:"userId"`
	Tags        []string     `json:"tags"`
}

// Overdue reports whether the task's due date has passed at instant now.
// Completed tasks are never overdue; cancelled ones can be.
func (t *Task) Overdue(now time.Time) bool {
	if t.DueDate == nil || t.Status == StatusCompleted {
		return false
	}
	return now.After(*t.DueDate)
}

// Clone returns a deep copy of the task. The store hands out clones so
// callers cannot mutate its collection in place.
func (t *Task) Clone() Task {
	c := *t
	if t.DueDate != nil {
		due := *t.DueDate
		c.DueDate = &due
	}
	if t.Tags != nil {
		c.Tags = append([]string(nil), t.Tags...)
	}
	return c
}

// SortField selects the comparator used when ordering a task view.
type SortField string

// Recognized sort fields. Anything else compares all tasks as equal.
const (
	SortByTitle     SortField = "title"
	SortByDueDate   SortField = "dueDate"
	SortByCreatedAt SortField = "createdAt"
	SortByPriority  SortField = "priority"
)

// SortOrder is the direction of a sort.
type SortOrder string

// Sort orders; ascending is the default.
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Filter describes which predicates and sort order to apply to a task
// collection. Empty slices and blank strings disable the corresponding
// predicate; all active predicates are conjunctive.
type Filter struct {
	Status     []TaskStatus   `json:"status,omitempty"`
	Priority   []TaskPriority `json:"priority,omitempty"`
	Category   []string       `json:"category,omitempty"`
	SearchTerm string         `json:"searchTerm,omitempty"`
	SortBy     SortField      `json:"sortBy,omitempty"`
	SortOrder  SortOrder      `json:"sortOrder,omitempty"`
}

// Stats summarizes a task collection for the dashboard. Cancelled tasks
// count only toward Total (and Overdue when past due).
type Stats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
	Overdue    int `json:"overdue"`
}
