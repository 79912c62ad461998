package task

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	domain "github.com/example/task-tracker/domain/task"
)

// TaskForm is the raw create/edit payload supplied by the presentation
// layer. Status and priority default when blank; DueDate is an RFC3339 or
// calendar-date string, nil for no due date.
type TaskForm struct {
	Title       string   `json:"title" validate:"required,max=100"`
	Description string   `json:"description" validate:"max=1000"`
	Status      string   `json:"status" validate:"omitempty,oneof=pending in-progress completed cancelled"`
	Priority    string   `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Category    string   `json:"category" validate:"required,max=50"`
	DueDate     *string  `json:"dueDate"`
	Tags        []string `json:"tags" validate:"max=10,dive,max=30"`
}

// TaskPatch is a partial update payload. Nil fields are left untouched;
// ClearDueDate removes an existing due date since a nil DueDate alone
// cannot express that.
type TaskPatch struct {
	Title        *string   `json:"title" validate:"omitempty,max=100"`
	Description  *string   `json:"description" validate:"omitempty,max=1000"`
	Status       *string   `json:"status" validate:"omitempty,oneof=pending in-progress completed cancelled"`
	Priority     *string   `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Category     *string   `json:"category" validate:"omitempty,max=50"`
	DueDate      *string   `json:"dueDate"`
	ClearDueDate bool      `json:"clearDueDate,omitempty"`
	Tags         *[]string `json:"tags" validate:"omitempty,max=10,dive,max=30"`
}

// CleanForm is a validated, defaulted form ready for the store.
type CleanForm struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	Category    string
	DueDate     *time.Time
	Tags        []string
}

// CleanPatch is a validated partial update ready for the store.
type CleanPatch struct {
	Title        *string
	Description  *string
	Status       *domain.TaskStatus
	Priority     *domain.TaskPriority
	Category     *string
	DueDate      *time.Time
	ClearDueDate bool
	Tags         *[]string
}

// Validator schema-checks task payloads before they reach the store.
// Expected-invalid input comes back as field errors, never as a Go error.
type Validator struct {
	v *validator.Validate
}

// NewValidator creates a Validator.
func NewValidator() *Validator {
	return &Validator{
		v: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// ValidateForm normalizes and checks a full task form. The due-date rule
// is evaluated against now; tasks already past due in the store are not
// re-validated on read.
func (va *Validator) ValidateForm(form TaskForm, now time.Time) (CleanForm, []FieldError) {
	if form.Status == "" {
		form.Status = string(domain.StatusPending)
	}
	if form.Priority == "" {
		form.Priority = string(domain.PriorityMedium)
	}
	if form.Tags == nil {
		form.Tags = []string{}
	}

	var fieldErrs []FieldError
	if err := va.v.Struct(form); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fieldErrs = append(fieldErrs, fieldMessage(fe.Field(), fe.Tag()))
			}
		} else {
			// Malformed invocation, not invalid input.
			fieldErrs = append(fieldErrs, FieldError{Field: "form", Message: err.Error()})
		}
	}

	due, dueErrs := validateDueDate(form.DueDate, now)
	fieldErrs = append(fieldErrs, dueErrs...)

	if len(fieldErrs) > 0 {
		return CleanForm{}, fieldErrs
	}

	return CleanForm{
		Title:       form.Title,
		Description: form.Description,
		Status:      domain.TaskStatus(form.Status),
		Priority:    domain.TaskPriority(form.Priority),
		Category:    form.Category,
		DueDate:     due,
		Tags:        form.Tags,
	}, nil
}

// ValidatePatch checks the provided fields of a partial update. Fields
// left nil are not validated and will not be merged.
func (va *Validator) ValidatePatch(patch TaskPatch, now time.Time) (CleanPatch, []FieldError) {
	var fieldErrs []FieldError
	if err := va.v.Struct(patch); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fieldErrs = append(fieldErrs, fieldMessage(fe.Field(), fe.Tag()))
			}
		} else {
			fieldErrs = append(fieldErrs, FieldError{Field: "form", Message: err.Error()})
		}
	}

	// omitempty skips empty strings behind non-nil pointers, so the
	// required rules need explicit checks here.
	if patch.Title != nil && *patch.Title == "" {
		fieldErrs = append(fieldErrs, FieldError{Field: "title", Message: "Title is required"})
	}
	if patch.Category != nil && *patch.Category == "" {
		fieldErrs = append(fieldErrs, FieldError{Field: "category", Message: "Category is required"})
	}

	due, dueErrs := validateDueDate(patch.DueDate, now)
	fieldErrs = append(fieldErrs, dueErrs...)

	if len(fieldErrs) > 0 {
		return CleanPatch{}, fieldErrs
	}

	clean := CleanPatch{
		Title:        patch.Title,
		Description:  patch.Description,
		Category:     patch.Category,
		DueDate:      due,
		ClearDueDate: patch.ClearDueDate,
		Tags:         patch.Tags,
	}
	if patch.Status != nil {
		s := domain.TaskStatus(*patch.Status)
		clean.Status = &s
	}
	if patch.Priority != nil {
		p := domain.TaskPriority(*patch.Priority)
		clean.Priority = &p
	}
	return clean, nil
}

// validateDueDate parses an optional due-date string and enforces the
// must-not-be-past rule at validation time.
func validateDueDate(raw *string, now time.Time) (*time.Time, []FieldError) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}

	due, ok := parseDueDate(strings.TrimSpace(*raw))
	if !ok {
		return nil, []FieldError{{Field: "dueDate", Message: "Invalid date format"}}
	}
	if due.Before(now) {
		return nil, []FieldError{{Field: "dueDate", Message: "Due date must be in the future"}}
	}
	return &due, nil
}

// parseDueDate accepts RFC3339, the datetime-local form, and a bare
// calendar date.
func parseDueDate(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// fieldMessage maps a validator failure to the message shown next to the
// offending form field.
func fieldMessage(field, tag string) FieldError {
	switch field {
	case "Title":
		if tag == "required" {
			return FieldError{Field: "title", Message: "Title is required"}
		}
		return FieldError{Field: "title", Message: "Title must be less than 100 characters"}
	case "Description":
		return FieldError{Field: "description", Message: "Description must be less than 1000 characters"}
	case "Status":
		return FieldError{Field: "status", Message: "Invalid status"}
	case "Priority":
		return FieldError{Field: "priority", Message: "Invalid priority"}
	case "Category":
		if tag == "required" {
			return FieldError{Field: "category", Message: "Category is required"}
		}
		return FieldError{Field: "category", Message: "Category must be less than 50 characters"}
	case "Tags":
		return FieldError{Field: "tags", Message: "Maximum 10 tags allowed"}
	}
	// dive failures on tag entries surface as Tags[i]
	if strings.HasPrefix(field, "Tags") {
		return FieldError{Field: "tags", Message: "Tag must be less than 30 characters"}
	}
	return FieldError{Field: strings.ToLower(field), Message: "Invalid value"}
}
