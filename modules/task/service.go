package task

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	domain "github.com/example/task-tracker/domain/task"
)

// Service owns the canonical in-memory task collection. It holds the full
// persisted superset (every user's tasks) and scopes each operation to
// the acting identity, so a save always writes the whole collection back.
//
// Mutations persist asynchronously: the in-memory update completes first,
// then a background save of the entire collection runs best-effort. A
// failed save is logged and the session continues against memory.
type Service struct {
	store     BlobStore
	validator *Validator
	newID     func() string
	now       func() time.Time

	mu    sync.RWMutex
	tasks []domain.Task

	// saveMu serializes saves so rapid successive mutations cannot reach
	// storage out of order.
	saveMu sync.Mutex
	loads  singleflight.Group
}

// NewService creates a Service over the given blob store.
func NewService(store BlobStore, validator *Validator, newID func() string) *Service {
	return &Service{
		store:     store,
		validator: validator,
		newID:     newID,
		now:       time.Now,
		tasks:     []domain.Task{},
	}
}

// Load replaces the in-memory collection with the stored one. A failed or
// malformed read yields an empty collection, never an error: the slot may
// simply not exist yet.
func (s *Service) Load(ctx context.Context) {
	tasks, err, _ := s.loads.Do("load", func() (any, error) {
		t, err := s.store.Load(ctx)
		return t, err
	})
	if err != nil {
		log.Printf("[task] failed to load tasks from storage: %v", err)
		tasks = []domain.Task{}
	}

	s.mu.Lock()
	s.tasks = tasks.([]domain.Task)
	s.mu.Unlock()
}

// Create validates the form and appends a new task owned by userID.
// Returns field errors for invalid input, ErrAuthenticationRequired when
// no identity is present.
func (s *Service) Create(_ context.Context, userID string, form TaskForm) (domain.Task, []FieldError, error) {
	if userID == "" {
		return domain.Task{}, nil, ErrAuthenticationRequired
	}

	clean, fieldErrs := s.validator.ValidateForm(form, s.now())
	if len(fieldErrs) > 0 {
		return domain.Task{}, fieldErrs, nil
	}

	now := s.now()
	t := domain.Task{
		ID:          s.newID(),
		Title:       clean.Title,
		Description: clean.Description,
		Status:      clean.Status,
		Priority:    clean.Priority,
		Category:    clean.Category,
		DueDate:     clean.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
		UserID:      userID,
		Tags:        append([]string{}, clean.Tags...),
	}

	s.mu.Lock()
	s.tasks = append(s.tasks, t)
	s.mu.Unlock()

	s.saveAsync()
	return t.Clone(), nil, nil
}

// Update merges the provided fields into the task with the given id. A
// missing id or a mismatched owner is a silent no-op: the ownership guard
// reports nothing, by design. Returns field errors for invalid input.
func (s *Service) Update(_ context.Context, userID, taskID string, patch TaskPatch) ([]FieldError, error) {
	if userID == "" {
		return nil, ErrAuthenticationRequired
	}

	clean, fieldErrs := s.validator.ValidatePatch(patch, s.now())
	if len(fieldErrs) > 0 {
		return fieldErrs, nil
	}

	s.mu.Lock()
	mutated := false
	for i := range s.tasks {
		t := &s.tasks[i]
		if t.ID != taskID || t.UserID != userID {
			continue
		}

		if clean.Title != nil {
			t.Title = *clean.Title
		}
		if clean.Description != nil {
			t.Description = *clean.Description
		}
		if clean.Status != nil {
			t.Status = *clean.Status
		}
		if clean.Priority != nil {
			t.Priority = *clean.Priority
		}
		if clean.Category != nil {
			t.Category = *clean.Category
		}
		if clean.Tags != nil {
			t.Tags = append([]string(nil), (*clean.Tags)...)
		}
		// A new value replaces the due date, an explicit clear removes
		// it, and an omitted field keeps the old one.
		switch {
		case clean.ClearDueDate:
			t.DueDate = nil
		case clean.DueDate != nil:
			due := *clean.DueDate
			t.DueDate = &due
		}
		t.UpdatedAt = s.now()
		mutated = true
		break
	}
	s.mu.Unlock()

	if mutated {
		s.saveAsync()
	}
	return nil, nil
}

// Delete removes the task only when both id and owner match; otherwise it
// is a silent no-op, same guard as Update.
func (s *Service) Delete(_ context.Context, userID, taskID string) error {
	if userID == "" {
		return ErrAuthenticationRequired
	}

	s.mu.Lock()
	mutated := false
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID == taskID && t.UserID == userID {
			mutated = true
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept
	s.mu.Unlock()

	if mutated {
		s.saveAsync()
	}
	return nil
}

// List returns clones of all tasks owned by userID; an empty identity
// yields an empty slice.
func (s *Service) List(userID string) []domain.Task {
	out := []domain.Task{}
	if userID == "" {
		return out
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.tasks {
		if s.tasks[i].UserID == userID {
			out = append(out, s.tasks[i].Clone())
		}
	}
	return out
}

// ListFiltered returns the user's tasks through the filter/sort engine.
func (s *Service) ListFiltered(userID string, filter domain.Filter) []domain.Task {
	return ApplyFilter(s.List(userID), filter)
}

// Stats aggregates the user's tasks at the current instant.
func (s *Service) Stats(userID string) domain.Stats {
	return CalculateStats(s.List(userID), s.now())
}

// Categories returns the distinct categories across the user's tasks.
func (s *Service) Categories(userID string) []string {
	return UniqueCategories(s.List(userID))
}

// Tags returns the distinct tags across the user's tasks.
func (s *Service) Tags(userID string) []string {
	return UniqueTags(s.List(userID))
}

// Refresh re-reads the storage slot and replaces the in-memory
// collection, recovering from external storage changes. Unauthenticated
// callers are a no-op.
func (s *Service) Refresh(ctx context.Context, userID string) {
	if userID == "" {
		return
	}
	s.Load(ctx)
}

// Flush writes the current collection to storage synchronously. Used on
// shutdown so the last fire-and-forget save is not lost; mutations go
// through saveAsync instead.
func (s *Service) Flush(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.RLock()
	snapshot := make([]domain.Task, len(s.tasks))
	copy(snapshot, s.tasks)
	s.mu.RUnlock()

	return s.store.Save(ctx, snapshot)
}

// Count returns the size of the full in-memory collection, for health
// reporting.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// saveAsync persists the whole collection in the background. Completion
// is not awaited; failure is a durability loss for this session, not a
// functional one.
func (s *Service) saveAsync() {
	go func() {
		if err := s.Flush(context.Background()); err != nil {
			log.Printf("[task] background save failed: %v", err)
		}
	}()
}
