package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskList groups a user's tasks. Exactly one list per user carries
// IsDefault, established at registration; it can never be deleted.
type TaskList struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	UserID    uuid.UUID `json:"user_id"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskListWithCount is a list annotated with its live task count, the
// shape the list index endpoint returns.
type TaskListWithCount struct {
	TaskList
	TaskCount int64 `json:"task_count"`
}
