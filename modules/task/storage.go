package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/example/task-tracker/domain/task"
)

// DefaultStorageKey is the storage slot holding the serialized task
// collection.
const DefaultStorageKey = "task_management_tasks"

// BlobStore persists the entire task collection as one JSON array under a
// single key. Save always receives the full superset the caller knows
// about, not just one user's tasks. The engine treats a failed Save as a
// silent durability loss: the returned error is logged, never surfaced.
type BlobStore interface {
	Save(ctx context.Context, tasks []domain.Task) error
	Load(ctx context.Context) ([]domain.Task, error)
	Clear(ctx context.Context) error
}

// blobRow is the single-row table backing the SQLite blob store.
type blobRow struct {
	Key       string `gorm:"primaryKey;type:text"`
	Data      []byte `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName returns the table name for the blob slot.
func (blobRow) TableName() string {
	return "task_blobs"
}

// SQLiteBlobStore keeps the collection in a single row of a SQLite table.
// This is the default backend: a local file, no server to run.
type SQLiteBlobStore struct {
	db  *gorm.DB
	key string
}

// NewSQLiteBlobStore migrates the blob table and returns a store writing
// to the given key.
func NewSQLiteBlobStore(db *gorm.DB, key string) (*SQLiteBlobStore, error) {
	if key == "" {
		key = DefaultStorageKey
	}
	if err := db.AutoMigrate(&blobRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate blob table: %w", err)
	}
	return &SQLiteBlobStore{db: db, key: key}, nil
}

// Save serializes the collection and upserts the slot.
func (s *SQLiteBlobStore) Save(ctx context.Context, tasks []domain.Task) error {
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("failed to marshal tasks: %w", err)
	}

	row := blobRow{Key: s.key, Data: data, UpdatedAt: time.Now()}
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row)
	if result.Error != nil {
		return fmt.Errorf("failed to write blob: %w", result.Error)
	}
	return nil
}

// Load reads and deserializes the slot. An absent slot is an empty
// collection, not an error.
func (s *SQLiteBlobStore) Load(ctx context.Context) ([]domain.Task, error) {
	var row blobRow
	result := s.db.WithContext(ctx).First(&row, "key = ?", s.key)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return []domain.Task{}, nil
		}
		return nil, fmt.Errorf("failed to read blob: %w", result.Error)
	}

	return decodeTasks(row.Data)
}

// Clear removes the slot. Used by explicit reset flows only.
func (s *SQLiteBlobStore) Clear(ctx context.Context) error {
	result := s.db.WithContext(ctx).Delete(&blobRow{}, "key = ?", s.key)
	if result.Error != nil {
		return fmt.Errorf("failed to clear blob: %w", result.Error)
	}
	return nil
}

// RedisBlobStore keeps the collection under a single Redis key, for
// deployments that already run Redis and want the slot off the local disk.
type RedisBlobStore struct {
	client *redis.Client
	key    string
}

// NewRedisBlobStore returns a store writing to the given key.
func NewRedisBlobStore(client *redis.Client, key string) *RedisBlobStore {
	if key == "" {
		key = DefaultStorageKey
	}
	return &RedisBlobStore{client: client, key: key}
}

// Save serializes the collection and SETs the key with no expiry.
func (s *RedisBlobStore) Save(ctx context.Context, tasks []domain.Task) error {
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("failed to marshal tasks: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write blob: %w", err)
	}
	return nil
}

// Load reads and deserializes the key; a missing key is an empty
// collection.
func (s *RedisBlobStore) Load(ctx context.Context) ([]domain.Task, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []domain.Task{}, nil
		}
		return nil, fmt.Errorf("failed to read blob: %w", err)
	}
	return decodeTasks(data)
}

// Clear deletes the key.
func (s *RedisBlobStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to clear blob: %w", err)
	}
	return nil
}

// decodeTasks parses the stored JSON array. time.Time fields come back
// from their RFC3339 representation via the stdlib unmarshaler.
func decodeTasks(data []byte) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tasks: %w", err)
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}
