package api

import (
	"net/http/httptest"
	"reflect"
	"testing"

	domain "github.com/example/task-tracker/domain/task"
	"github.com/gofiber/fiber/v2"
)

// parseFilterFrom runs parseFilter against a request with the given query
// string.
func parseFilterFrom(t *testing.T, query string) domain.Filter {
	t.Helper()

	app := fiber.New()
	var filter domain.Filter
	app.Get("/tasks", func(c *fiber.Ctx) error {
		filter = parseFilter(c)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/tasks?"+query, nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	resp.Body.Close()
	return filter
}

func TestParseFilter_Defaults(t *testing.T) {
	filter := parseFilterFrom(t, "")

	if filter.SortBy != domain.SortByCreatedAt {
		t.Errorf("SortBy = %v, want %v", filter.SortBy, domain.SortByCreatedAt)
	}
	if filter.SortOrder != domain.SortDesc {
		t.Errorf("SortOrder = %v, want %v", filter.SortOrder, domain.SortDesc)
	}
	if len(filter.Status) != 0 || len(filter.Priority) != 0 || len(filter.Category) != 0 {
		t.Errorf("predicates should be empty, got %+v", filter)
	}
	if filter.SearchTerm != "" {
		t.Errorf("SearchTerm = %q, want empty", filter.SearchTerm)
	}
}

func TestParseFilter_CommaSeparatedSets(t *testing.T) {
	filter := parseFilterFrom(t, "status=pending,in-progress&priority=urgent&category=Work,Personal&search=report&sort_by=priority&sort_order=asc")

	wantStatus := []domain.TaskStatus{domain.StatusPending, domain.StatusInProgress}
	if !reflect.DeepEqual(filter.Status, wantStatus) {
		t.Errorf("Status = %v, want %v", filter.Status, wantStatus)
	}
	wantPriority := []domain.TaskPriority{domain.PriorityUrgent}
	if !reflect.DeepEqual(filter.Priority, wantPriority) {
		t.Errorf("Priority = %v, want %v", filter.Priority, wantPriority)
	}
	wantCategory := []string{"Work", "Personal"}
	if !reflect.DeepEqual(filter.Category, wantCategory) {
		t.Errorf("Category = %v, want %v", filter.Category, wantCategory)
	}
	if filter.SearchTerm != "report" {
		t.Errorf("SearchTerm = %q, want report", filter.SearchTerm)
	}
	if filter.SortBy != domain.SortByPriority || filter.SortOrder != domain.SortAsc {
		t.Errorf("sort = %v/%v, want priority/asc", filter.SortBy, filter.SortOrder)
	}
}

func TestSplitQuery(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"single", "Work", []string{"Work"}},
		{"multiple", "a,b,c", []string{"a", "b", "c"}},
		{"blanks dropped", "a,,  ,b", []string{"a", "b"}},
		{"spaces trimmed", " a , b ", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitQuery(tt.raw); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitQuery(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
