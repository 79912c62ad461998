package task

import (
	"slices"
	"sort"
	"strings"
	"time"

	domain "github.com/example/task-tracker/domain/task"
)

// maxDueDate is the sort key for tasks without a due date, so they come
// last in ascending due-date order.
var maxDueDate = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// ApplyFilter returns a new slice holding the tasks matching the filter,
// ordered by its sort spec. The input is never mutated.
func ApplyFilter(tasks []domain.Task, filter domain.Filter) []domain.Task {
	return SortTasks(FilterTasks(tasks, filter), filter.SortBy, filter.SortOrder)
}

// FilterTasks keeps the tasks matching every active predicate. Empty
// predicate sets and blank search terms match everything. A non-blank
// search term matches verbatim, surrounding whitespace included.
func FilterTasks(tasks []domain.Task, filter domain.Filter) []domain.Task {
	out := make([]domain.Task, 0, len(tasks))
	search := strings.ToLower(filter.SearchTerm)
	if strings.TrimSpace(search) == "" {
		search = ""
	}

	for _, t := range tasks {
		if len(filter.Status) > 0 && !slices.Contains(filter.Status, t.Status) {
			continue
		}
		if len(filter.Priority) > 0 && !slices.Contains(filter.Priority, t.Priority) {
			continue
		}
		if len(filter.Category) > 0 && !slices.Contains(filter.Category, t.Category) {
			continue
		}
		if search != "" && !matchesSearch(&t, search) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// matchesSearch reports whether the lowercased term occurs in the title,
// description, or any tag.
func matchesSearch(t *domain.Task, term string) bool {
	if strings.Contains(strings.ToLower(t.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Description), term) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// SortTasks returns a new slice ordered by the given field. The sort is
// stable: equal keys keep their relative order, including under an
// unrecognized sort field, which compares everything as equal.
func SortTasks(tasks []domain.Task, sortBy domain.SortField, order domain.SortOrder) []domain.Task {
	sorted := make([]domain.Task, len(tasks))
	copy(sorted, tasks)

	desc := order == domain.SortDesc
	sort.SliceStable(sorted, func(i, j int) bool {
		c := compareTasks(&sorted[i], &sorted[j], sortBy)
		if desc {
			return c > 0
		}
		return c < 0
	})
	return sorted
}

// compareTasks orders two tasks by the given field; 0 means equal.
func compareTasks(a, b *domain.Task, sortBy domain.SortField) int {
	switch sortBy {
	case domain.SortByTitle:
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	case domain.SortByDueDate:
		return dueDateOrMax(a).Compare(dueDateOrMax(b))
	case domain.SortByCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case domain.SortByPriority:
		return a.Priority.Ordinal() - b.Priority.Ordinal()
	}
	return 0
}

func dueDateOrMax(t *domain.Task) time.Time {
	if t.DueDate == nil {
		return maxDueDate
	}
	return *t.DueDate
}

// UniqueCategories returns the distinct categories in use, sorted.
func UniqueCategories(tasks []domain.Task) []string {
	return uniqueSorted(tasks, func(t *domain.Task) []string {
		return []string{t.Category}
	})
}

// UniqueTags returns the distinct tags in use, sorted.
func UniqueTags(tasks []domain.Task) []string {
	return uniqueSorted(tasks, func(t *domain.Task) []string {
		return t.Tags
	})
}

func uniqueSorted(tasks []domain.Task, pick func(*domain.Task) []string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, t := range tasks {
		for _, v := range pick(&t) {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
