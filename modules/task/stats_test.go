package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	domain "github.com/example/task-tracker/domain/task"
)

func TestCalculateStats(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -3)
	future := now.AddDate(0, 0, 3)

	tasks := []domain.Task{
		{ID: "a", Status: domain.StatusPending, DueDate: &past},
		{ID: "b", Status: domain.StatusInProgress, DueDate: &future},
		{ID: "c", Status: domain.StatusCompleted, DueDate: &past},
		{ID: "d", Status: domain.StatusCancelled, DueDate: &past},
		{ID: "e", Status: domain.StatusCancelled},
		{ID: "f", Status: domain.StatusPending},
	}

	stats := CalculateStats(tasks, now)

	assert.Equal(t, 6, stats.Total)
	assert.Equal(t, 2, stats.Pending)
	assert.Equal(t, 1, stats.InProgress)
	assert.Equal(t, 1, stats.Completed)
	// Past-due pending and past-due cancelled count; past-due completed
	// does not.
	assert.Equal(t, 2, stats.Overdue)
}

func TestCalculateStats_Empty(t *testing.T) {
	assert.Equal(t, domain.Stats{}, CalculateStats(nil, time.Now()))
}

func TestCalculateStats_DueDateBoundary(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	// A task due exactly now is not yet overdue.
	due := now
	tasks := []domain.Task{{Status: domain.StatusPending, DueDate: &due}}
	assert.Equal(t, 0, CalculateStats(tasks, now).Overdue)

	later := now.Add(time.Second)
	assert.Equal(t, 1, CalculateStats(tasks, later).Overdue)
}
