package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	domain "github.com/example/task-tracker/domain/task"
)

func sampleTasks() []domain.Task {
	base := time.Date(2026, time.February, 1, 10, 0, 0, 0, time.UTC)
	due1 := base.AddDate(0, 0, 5)
	due2 := base.AddDate(0, 0, 1)

	return []domain.Task{
		{
			ID: "t1", Title: "Write weekly report", Description: "summarize sprint progress",
			Status: domain.StatusPending, Priority: domain.PriorityHigh,
			Category: "Work", DueDate: &due1, CreatedAt: base, Tags: []string{"reporting"},
		},
		{
			ID: "t2", Title: "Buy groceries", Description: "milk and eggs",
			Status: domain.StatusInProgress, Priority: domain.PriorityLow,
			Category: "Personal", DueDate: &due2, CreatedAt: base.Add(time.Hour), Tags: []string{"errands"},
		},
		{
			ID: "t3", Title: "Plan team offsite", Description: "",
			Status: domain.StatusPending, Priority: domain.PriorityUrgent,
			Category: "Work", DueDate: nil, CreatedAt: base.Add(2 * time.Hour), Tags: []string{"planning", "Travel"},
		},
		{
			ID: "t4", Title: "Renew passport", Description: "",
			Status: domain.StatusCompleted, Priority: domain.PriorityMedium,
			Category: "Personal", DueDate: nil, CreatedAt: base.Add(3 * time.Hour), Tags: nil,
		},
	}
}

func taskIDs(tasks []domain.Task) []string {
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}

func TestFilterTasks_Predicates(t *testing.T) {
	tasks := sampleTasks()

	tests := []struct {
		name   string
		filter domain.Filter
		want   []string
	}{
		{"no predicates match all", domain.Filter{}, []string{"t1", "t2", "t3", "t4"}},
		{"single status", domain.Filter{Status: []domain.TaskStatus{domain.StatusPending}}, []string{"t1", "t3"}},
		{"multiple statuses", domain.Filter{Status: []domain.TaskStatus{domain.StatusCompleted, domain.StatusInProgress}}, []string{"t2", "t4"}},
		{"priority", domain.Filter{Priority: []domain.TaskPriority{domain.PriorityUrgent}}, []string{"t3"}},
		{"category", domain.Filter{Category: []string{"Work"}}, []string{"t1", "t3"}},
		{"conjunctive", domain.Filter{Status: []domain.TaskStatus{domain.StatusPending}, Category: []string{"Personal"}}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterTasks(tasks, tt.filter)
			assert.Equal(t, tt.want, taskIDs(got))
		})
	}
}

func TestFilterTasks_Search(t *testing.T) {
	tasks := sampleTasks()

	tests := []struct {
		name string
		term string
		want []string
	}{
		{"title match case-insensitive", "REPORT", []string{"t1"}},
		{"description match", "milk", []string{"t2"}},
		{"tag match case-insensitive", "travel", []string{"t3"}},
		{"substring", "pass", []string{"t4"}},
		{"whitespace only matches all", "   ", []string{"t1", "t2", "t3", "t4"}},
		{"padded term matches verbatim", " pass ", []string{}},
		{"padded term with real spaces", "weekly report", []string{"t1"}},
		{"no match", "zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterTasks(tasks, domain.Filter{SearchTerm: tt.term})
			assert.Equal(t, tt.want, taskIDs(got))
		})
	}
}

func TestSortTasks(t *testing.T) {
	tasks := sampleTasks()

	tests := []struct {
		name  string
		by    domain.SortField
		order domain.SortOrder
		want  []string
	}{
		{"priority asc", domain.SortByPriority, domain.SortAsc, []string{"t2", "t4", "t1", "t3"}},
		{"priority desc", domain.SortByPriority, domain.SortDesc, []string{"t3", "t1", "t4", "t2"}},
		{"due date asc puts undated last", domain.SortByDueDate, domain.SortAsc, []string{"t2", "t1", "t3", "t4"}},
		{"created desc", domain.SortByCreatedAt, domain.SortDesc, []string{"t4", "t3", "t2", "t1"}},
		{"title asc case-insensitive", domain.SortByTitle, domain.SortAsc, []string{"t2", "t3", "t4", "t1"}},
		{"unknown field keeps input order", domain.SortField("bogus"), domain.SortAsc, []string{"t1", "t2", "t3", "t4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SortTasks(tasks, tt.by, tt.order)
			assert.Equal(t, tt.want, taskIDs(got))
		})
	}
}

func TestSortTasks_StableAndNonDestructive(t *testing.T) {
	tasks := sampleTasks()
	// t1 and t3 share a status; give them equal priority to test ties.
	tasks[0].Priority = domain.PriorityUrgent

	got := SortTasks(tasks, domain.SortByPriority, domain.SortDesc)
	// Equal keys keep input order: t1 before t3.
	assert.Equal(t, []string{"t1", "t3", "t4", "t2"}, taskIDs(got))

	// The input slice is untouched.
	assert.Equal(t, []string{"t1", "t2", "t3", "t4"}, taskIDs(tasks))
}

func TestUniqueCategoriesAndTags(t *testing.T) {
	tasks := sampleTasks()

	assert.Equal(t, []string{"Personal", "Work"}, UniqueCategories(tasks))
	assert.Equal(t, []string{"Travel", "errands", "planning", "reporting"}, UniqueTags(tasks))

	assert.Empty(t, UniqueCategories(nil))
	assert.Empty(t, UniqueTags(nil))
}
