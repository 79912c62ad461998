package task

import (
	"time"

	domain "github.com/example/task-tracker/domain/task"
)

// CalculateStats aggregates status counts and the overdue count for a
// task collection at instant now. Cancelled tasks contribute to Total
// only, except that a cancelled task past its due date still counts as
// overdue; completed tasks never do.
func CalculateStats(tasks []domain.Task, now time.Time) domain.Stats {
	stats := domain.Stats{Total: len(tasks)}

	for i := range tasks {
		t := &tasks[i]
		switch t.Status {
		case domain.StatusPending:
			stats.Pending++
		case domain.StatusInProgress:
			stats.InProgress++
		case domain.StatusCompleted:
			stats.Completed++
		}

		if t.Overdue(now) {
			stats.Overdue++
		}
	}
	return stats
}
