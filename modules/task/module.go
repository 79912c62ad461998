package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Module wires the task data engine into the application: it opens the
// blob store, loads the collection, and exposes the store's operations as
// request-reply services.
type Module struct {
	db      *gorm.DB
	rdb     *redis.Client
	service *Service
	config  Config
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.ServiceProviderModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// Config holds the task module configuration.
type Config struct {
	// DBPath is the SQLite file backing the blob slot (and ignored when
	// RedisAddr selects the Redis backend).
	DBPath string
	// RedisAddr switches the blob slot to Redis when non-empty.
	RedisAddr string
	// StorageKey is the slot name holding the serialized collection.
	StorageKey string
}

// DefaultConfig returns the default task module configuration.
func DefaultConfig() Config {
	return Config{
		DBPath:     "tasks.db",
		StorageKey: DefaultStorageKey,
	}
}

// NewModule creates a task Module configured from the environment.
func NewModule() *Module {
	config := DefaultConfig()
	if path := os.Getenv("TASKS_DB_PATH"); path != "" {
		config.DBPath = path
	}
	if addr := os.Getenv("TASKS_REDIS_ADDR"); addr != "" {
		config.RedisAddr = addr
	}
	if key := os.Getenv("TASKS_STORAGE_KEY"); key != "" {
		config.StorageKey = key
	}
	return &Module{config: config}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "task"
}

// Start opens the blob store and loads the persisted collection.
func (m *Module) Start(ctx context.Context) error {
	store, err := m.openStore(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	newID, err := NewIDGenerator()
	if err != nil {
		return err
	}

	m.service = NewService(store, NewValidator(), newID)
	m.service.Load(ctx)

	log.Printf("[task] Module started (%d tasks loaded, key %q)", m.service.Count(), m.config.StorageKey)
	return nil
}

// Stop flushes the collection and closes the storage backend.
func (m *Module) Stop(ctx context.Context) error {
	if m.service != nil {
		if err := m.service.Flush(ctx); err != nil {
			log.Printf("[task] final flush failed: %v", err)
		}
	}
	if m.rdb != nil {
		m.rdb.Close()
	}
	if m.db != nil {
		if sqlDB, err := m.db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[task] Module stopped")
	return nil
}

// Health reports storage reachability and the collection size.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.service == nil {
		return mono.HealthStatus{Healthy: false, Message: "service not initialized"}
	}

	if m.rdb != nil {
		if err := m.rdb.Ping(ctx).Err(); err != nil {
			return mono.HealthStatus{Healthy: false, Message: fmt.Sprintf("redis ping failed: %v", err)}
		}
	} else if m.db != nil {
		sqlDB, err := m.db.DB()
		if err != nil || sqlDB.Ping() != nil {
			return mono.HealthStatus{Healthy: false, Message: "database ping failed"}
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"tasks":       m.service.Count(),
			"storage_key": m.config.StorageKey,
		},
	}
}

// Service exposes the engine to in-process callers (tests, seeding).
func (m *Module) Service() *Service {
	return m.service
}

// RegisterServices registers the task request-reply services.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	services := map[string]error{
		"create-task":   helper.RegisterTypedRequestReplyService(container, "create-task", json.Unmarshal, json.Marshal, m.handleCreate),
		"update-task":   helper.RegisterTypedRequestReplyService(container, "update-task", json.Unmarshal, json.Marshal, m.handleUpdate),
		"delete-task":   helper.RegisterTypedRequestReplyService(container, "delete-task", json.Unmarshal, json.Marshal, m.handleDelete),
		"list-tasks":    helper.RegisterTypedRequestReplyService(container, "list-tasks", json.Unmarshal, json.Marshal, m.handleList),
		"task-stats":    helper.RegisterTypedRequestReplyService(container, "task-stats", json.Unmarshal, json.Marshal, m.handleStats),
		"refresh-tasks": helper.RegisterTypedRequestReplyService(container, "refresh-tasks", json.Unmarshal, json.Marshal, m.handleRefresh),
		"task-facets":   helper.RegisterTypedRequestReplyService(container, "task-facets", json.Unmarshal, json.Marshal, m.handleFacets),
	}
	for name, err := range services {
		if err != nil {
			return fmt.Errorf("failed to register %s service: %w", name, err)
		}
	}

	log.Printf("[task] Registered services: create-task, update-task, delete-task, list-tasks, task-stats, refresh-tasks, task-facets")
	return nil
}

func (m *Module) handleCreate(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (CreateTaskResponse, error) {
	t, fieldErrs, err := m.service.Create(ctx, req.UserID, req.Form)
	if err != nil {
		return CreateTaskResponse{}, err
	}
	if len(fieldErrs) > 0 {
		return CreateTaskResponse{FieldErrors: fieldErrs}, nil
	}
	return CreateTaskResponse{Task: &t}, nil
}

func (m *Module) handleUpdate(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (UpdateTaskResponse, error) {
	fieldErrs, err := m.service.Update(ctx, req.UserID, req.TaskID, req.Patch)
	if err != nil {
		return UpdateTaskResponse{}, err
	}
	return UpdateTaskResponse{FieldErrors: fieldErrs}, nil
}

func (m *Module) handleDelete(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if err := m.service.Delete(ctx, req.UserID, req.TaskID); err != nil {
		return DeleteTaskResponse{}, err
	}
	return DeleteTaskResponse{}, nil
}

func (m *Module) handleList(_ context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	return ListTasksResponse{Tasks: m.service.ListFiltered(req.UserID, req.Filter)}, nil
}

func (m *Module) handleStats(_ context.Context, req TaskStatsRequest, _ *mono.Msg) (TaskStatsResponse, error) {
	return TaskStatsResponse{Stats: m.service.Stats(req.UserID)}, nil
}

func (m *Module) handleRefresh(ctx context.Context, req RefreshTasksRequest, _ *mono.Msg) (RefreshTasksResponse, error) {
	m.service.Refresh(ctx, req.UserID)
	return RefreshTasksResponse{}, nil
}

func (m *Module) handleFacets(_ context.Context, req TaskFacetsRequest, _ *mono.Msg) (TaskFacetsResponse, error) {
	return TaskFacetsResponse{
		Categories: m.service.Categories(req.UserID),
		Tags:       m.service.Tags(req.UserID),
	}, nil
}

// openStore picks the storage backend from the configuration.
func (m *Module) openStore(ctx context.Context) (BlobStore, error) {
	if m.config.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: m.config.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		m.rdb = rdb
		return NewRedisBlobStore(rdb, m.config.StorageKey), nil
	}

	db, err := gorm.Open(sqlite.Open(m.config.DBPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	m.db = db
	return NewSQLiteBlobStore(db, m.config.StorageKey)
}
