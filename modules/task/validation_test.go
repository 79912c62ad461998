package task

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/example/task-tracker/domain/task"
)

func strPtr(s string) *string { return &s }

func TestValidateForm_Defaults(t *testing.T) {
	va := NewValidator()
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	clean, fieldErrs := va.ValidateForm(TaskForm{
		Title:    "Ship report",
		Category: "Work",
	}, now)

	require.Empty(t, fieldErrs)
	assert.Equal(t, domain.StatusPending, clean.Status)
	assert.Equal(t, domain.PriorityMedium, clean.Priority)
	assert.Equal(t, "", clean.Description)
	assert.NotNil(t, clean.Tags)
	assert.Empty(t, clean.Tags)
	assert.Nil(t, clean.DueDate)
}

func TestValidateForm_TitleBounds(t *testing.T) {
	va := NewValidator()
	now := time.Now()

	tests := []struct {
		name    string
		title   string
		wantErr bool
	}{
		{"empty title", "", true},
		{"single char", "a", false},
		{"exactly 100 chars", strings.Repeat("a", 100), false},
		{"101 chars", strings.Repeat("a", 101), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, fieldErrs := va.ValidateForm(TaskForm{Title: tt.title, Category: "Work"}, now)
			if tt.wantErr {
				require.Len(t, fieldErrs, 1)
				assert.Equal(t, "title", fieldErrs[0].Field)
			} else {
				assert.Empty(t, fieldErrs)
			}
		})
	}
}

func TestValidateForm_CategoryBounds(t *testing.T) {
	va := NewValidator()
	now := time.Now()

	_, fieldErrs := va.ValidateForm(TaskForm{Title: "t"}, now)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "category", fieldErrs[0].Field)
	assert.Equal(t, "Category is required", fieldErrs[0].Message)

	_, fieldErrs = va.ValidateForm(TaskForm{Title: "t", Category: strings.Repeat("c", 51)}, now)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "Category must be less than 50 characters", fieldErrs[0].Message)
}

func TestValidateForm_DueDate(t *testing.T) {
	va := NewValidator()
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1).Format(time.RFC3339)
	tomorrow := now.AddDate(0, 0, 1).Format(time.RFC3339)

	_, fieldErrs := va.ValidateForm(TaskForm{Title: "t", Category: "c", DueDate: strPtr(yesterday)}, now)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "dueDate", fieldErrs[0].Field)
	assert.Equal(t, "Due date must be in the future", fieldErrs[0].Message)

	clean, fieldErrs := va.ValidateForm(TaskForm{Title: "t", Category: "c", DueDate: strPtr(tomorrow)}, now)
	require.Empty(t, fieldErrs)
	require.NotNil(t, clean.DueDate)

	_, fieldErrs = va.ValidateForm(TaskForm{Title: "t", Category: "c", DueDate: strPtr("not-a-date")}, now)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "Invalid date format", fieldErrs[0].Message)

	// Blank strings mean no due date.
	clean, fieldErrs = va.ValidateForm(TaskForm{Title: "t", Category: "c", DueDate: strPtr("  ")}, now)
	require.Empty(t, fieldErrs)
	assert.Nil(t, clean.DueDate)
}

func TestValidateForm_DueDateLayouts(t *testing.T) {
	va := NewValidator()
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	for _, raw := range []string{"2026-06-15T10:30:00Z", "2026-06-15T10:30", "2026-06-15"} {
		clean, fieldErrs := va.ValidateForm(TaskForm{Title: "t", Category: "c", DueDate: strPtr(raw)}, now)
		require.Empty(t, fieldErrs, "layout %q", raw)
		require.NotNil(t, clean.DueDate, "layout %q", raw)
	}
}

func TestValidateForm_Tags(t *testing.T) {
	va := NewValidator()
	now := time.Now()

	long := strings.Repeat("x", 31)
	_, fieldErrs := va.ValidateForm(TaskForm{Title: "t", Category: "c", Tags: []string{long}}, now)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "Tag must be less than 30 characters", fieldErrs[0].Message)

	eleven := make([]string, 11)
	for i := range eleven {
		eleven[i] = "tag"
	}
	_, fieldErrs = va.ValidateForm(TaskForm{Title: "t", Category: "c", Tags: eleven}, now)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "Maximum 10 tags allowed", fieldErrs[0].Message)
}

func TestValidateForm_InvalidEnums(t *testing.T) {
	va := NewValidator()
	now := time.Now()

	_, fieldErrs := va.ValidateForm(TaskForm{Title: "t", Category: "c", Status: "done"}, now)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "status", fieldErrs[0].Field)

	_, fieldErrs = va.ValidateForm(TaskForm{Title: "t", Category: "c", Priority: "asap"}, now)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "priority", fieldErrs[0].Field)
}

func TestValidatePatch(t *testing.T) {
	va := NewValidator()
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	// Nil fields validate as absent.
	clean, fieldErrs := va.ValidatePatch(TaskPatch{}, now)
	require.Empty(t, fieldErrs)
	assert.Nil(t, clean.Title)
	assert.Nil(t, clean.Status)

	// Provided fields follow the full-form rules.
	_, fieldErrs = va.ValidatePatch(TaskPatch{Title: strPtr("")}, now)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "Title is required", fieldErrs[0].Message)

	_, fieldErrs = va.ValidatePatch(TaskPatch{Status: strPtr("archived")}, now)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "status", fieldErrs[0].Field)

	clean, fieldErrs = va.ValidatePatch(TaskPatch{Status: strPtr("completed")}, now)
	require.Empty(t, fieldErrs)
	require.NotNil(t, clean.Status)
	assert.Equal(t, domain.StatusCompleted, *clean.Status)

	// Past due dates are rejected on write.
	past := now.AddDate(0, 0, -2).Format(time.RFC3339)
	_, fieldErrs = va.ValidatePatch(TaskPatch{DueDate: strPtr(past)}, now)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "dueDate", fieldErrs[0].Field)
}
