package task

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"

	domain "github.com/example/task-tracker/domain/task"
)

// TaskPort is the interface other modules use to reach the task engine.
type TaskPort interface {
	Create(ctx context.Context, userID string, form TaskForm) (*domain.Task, []FieldError, error)
	Update(ctx context.Context, userID, taskID string, patch TaskPatch) ([]FieldError, error)
	Delete(ctx context.Context, userID, taskID string) error
	List(ctx context.Context, userID string, filter domain.Filter) ([]domain.Task, error)
	Stats(ctx context.Context, userID string) (domain.Stats, error)
	Refresh(ctx context.Context, userID string) error
	Facets(ctx context.Context, userID string) (categories, tags []string, err error)
}

// Adapter implements TaskPort over the module's service container.
type Adapter struct {
	container mono.ServiceContainer
}

// Compile-time interface check.
var _ TaskPort = (*Adapter)(nil)

// NewAdapter creates an Adapter.
func NewAdapter(container mono.ServiceContainer) *Adapter {
	return &Adapter{container: container}
}

// call is a package-level function because methods cannot carry the type
// parameters the typed request-reply helper needs.
func call[Req, Resp any](ctx context.Context, a *Adapter, service string, req *Req, resp *Resp) error {
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		resp,
	); err != nil {
		return fmt.Errorf("%s request failed: %w", service, err)
	}
	return nil
}

// Create creates a task for the user.
func (a *Adapter) Create(ctx context.Context, userID string, form TaskForm) (*domain.Task, []FieldError, error) {
	req := CreateTaskRequest{UserID: userID, Form: form}
	var resp CreateTaskResponse
	if err := call(ctx, a, "create-task", &req, &resp); err != nil {
		return nil, nil, err
	}
	return resp.Task, resp.FieldErrors, nil
}

// Update merges a partial update into the user's task.
func (a *Adapter) Update(ctx context.Context, userID, taskID string, patch TaskPatch) ([]FieldError, error) {
	req := UpdateTaskRequest{UserID: userID, TaskID: taskID, Patch: patch}
	var resp UpdateTaskResponse
	if err := call(ctx, a, "update-task", &req, &resp); err != nil {
		return nil, err
	}
	return resp.FieldErrors, nil
}

// Delete removes the user's task.
func (a *Adapter) Delete(ctx context.Context, userID, taskID string) error {
	req := DeleteTaskRequest{UserID: userID, TaskID: taskID}
	var resp DeleteTaskResponse
	return call(ctx, a, "delete-task", &req, &resp)
}

// List returns the user's filtered, ordered task view.
func (a *Adapter) List(ctx context.Context, userID string, filter domain.Filter) ([]domain.Task, error) {
	req := ListTasksRequest{UserID: userID, Filter: filter}
	var resp ListTasksResponse
	if err := call(ctx, a, "list-tasks", &req, &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

// Stats returns the user's dashboard statistics.
func (a *Adapter) Stats(ctx context.Context, userID string) (domain.Stats, error) {
	req := TaskStatsRequest{UserID: userID}
	var resp TaskStatsResponse
	if err := call(ctx, a, "task-stats", &req, &resp); err != nil {
		return domain.Stats{}, err
	}
	return resp.Stats, nil
}

// Refresh re-reads the storage slot into memory.
func (a *Adapter) Refresh(ctx context.Context, userID string) error {
	req := RefreshTasksRequest{UserID: userID}
	var resp RefreshTasksResponse
	return call(ctx, a, "refresh-tasks", &req, &resp)
}

// Facets returns the distinct categories and tags for filter dropdowns.
func (a *Adapter) Facets(ctx context.Context, userID string) ([]string, []string, error) {
	req := TaskFacetsRequest{UserID: userID}
	var resp TaskFacetsResponse
	if err := call(ctx, a, "task-facets", &req, &resp); err != nil {
		return nil, nil, err
	}
	return resp.Categories, resp.Tags, nil
}
