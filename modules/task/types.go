package task

import (
	domain "github.com/example/task-tracker/domain/task"
)

// CreateTaskRequest asks the task module to create a task for a user.
type CreateTaskRequest struct {
	UserID string   `json:"user_id"`
	Form   TaskForm `json:"form"`
}

// CreateTaskResponse carries the created task, or the field errors that
// kept it out of the store.
type CreateTaskResponse struct {
	Task        *domain.Task `json:"task,omitempty"`
	FieldErrors []FieldError `json:"field_errors,omitempty"`
}

// UpdateTaskRequest asks the task module to merge a partial update.
type UpdateTaskRequest struct {
	UserID string    `json:"user_id"`
	TaskID string    `json:"task_id"`
	Patch  TaskPatch `json:"patch"`
}

// UpdateTaskResponse carries field errors, if any. An ownership mismatch
// produces neither errors nor a mutation.
type UpdateTaskResponse struct {
	FieldErrors []FieldError `json:"field_errors,omitempty"`
}

// DeleteTaskRequest asks the task module to remove a task.
type DeleteTaskRequest struct {
	UserID string `json:"user_id"`
	TaskID string `json:"task_id"`
}

// DeleteTaskResponse is empty; deletion shares the silent ownership
// guard.
type DeleteTaskResponse struct{}

// ListTasksRequest asks for a user's tasks through the filter engine.
type ListTasksRequest struct {
	UserID string        `json:"user_id"`
	Filter domain.Filter `json:"filter"`
}

// ListTasksResponse carries the filtered, ordered view.
type ListTasksResponse struct {
	Tasks []domain.Task `json:"tasks"`
}

// TaskStatsRequest asks for a user's dashboard statistics.
type TaskStatsRequest struct {
	UserID string `json:"user_id"`
}

// TaskStatsResponse carries the aggregated counts.
type TaskStatsResponse struct {
	Stats domain.Stats `json:"stats"`
}

// RefreshTasksRequest asks the module to re-read the storage slot.
type RefreshTasksRequest struct {
	UserID string `json:"user_id"`
}

// RefreshTasksResponse is empty; a failed load degrades to an empty
// collection rather than an error.
type RefreshTasksResponse struct{}

// TaskFacetsRequest asks for the distinct categories and tags a user's
// filter dropdowns should offer.
type TaskFacetsRequest struct {
	UserID string `json:"user_id"`
}

// TaskFacetsResponse carries the facet values, sorted.
type TaskFacetsResponse struct {
	Categories []string `json:"categories"`
	Tags       []string `json:"tags"`
}
