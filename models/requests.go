package models

import "github.com/google/uuid"

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateTaskRequest leaves status/priority/due date/list optional;
// defaults are applied by the task service.
type CreateTaskRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      *TaskStatus   `json:"status"`
	Priority    *TaskPriority `json:"priority"`
	DueDate     *Date         `json:"due_date"`
	ListID      *uuid.UUID    `json:"list_id"`
}

// UpdateTaskRequest uses pointer fields as presence tags: nil leaves the
// field untouched, a non-nil pointer overwrites it (an empty description
// clears; an empty title is rejected).
type UpdateTaskRequest struct {
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	Status      *TaskStatus   `json:"status"`
	Priority    *TaskPriority `json:"priority"`
	DueDate     *Date         `json:"due_date"`
	ListID      *uuid.UUID    `json:"list_id"`
}

type TaskListRequest struct {
	Name string `json:"name"`
}
