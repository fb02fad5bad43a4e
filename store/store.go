// Package store is the persistence boundary. Services talk to the Store
// interface only; Postgres backs production and Memory backs the tests.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/shuaizuo666/Task-System/models"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("store: not found")
	// ErrDuplicateEmail is returned when a user insert violates the
	// unique email constraint.
	ErrDuplicateEmail = errors.New("store: email already registered")
)

// TaskFilter narrows a task listing to a single dimension. The task
// service sets at most one field; when several are set anyway, the
// implementations honor them in field order (list, search, status,
// priority).
type TaskFilter struct {
	ListID   *uuid.UUID
	Search   string
	Status   *models.TaskStatus
	Priority *models.TaskPriority
}

type Store interface {
	// CreateUser persists the user and its default task list in one
	// transaction; neither exists without the other. Fails with
	// ErrDuplicateEmail when the email is taken.
	CreateUser(ctx context.Context, user *models.User, defaultListName string) (*models.TaskList, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	CreateList(ctx context.Context, list *models.TaskList) error
	ListByID(ctx context.Context, id uuid.UUID) (*models.TaskList, error)
	ListsByOwner(ctx context.Context, owner uuid.UUID) ([]models.TaskListWithCount, error)
	DefaultList(ctx context.Context, owner uuid.UUID) (*models.TaskList, error)
	RenameList(ctx context.Context, id uuid.UUID, name string) error
	// DeleteListAndReassign atomically moves every task in listID to
	// targetID, then deletes the list. Either both happen or neither.
	DeleteListAndReassign(ctx context.Context, listID, targetID uuid.UUID) error

	CreateTask(ctx context.Context, task *models.Task) error
	TaskByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	UpdateTask(ctx context.Context, task *models.Task) error
	DeleteTask(ctx context.Context, id uuid.UUID) error
	// Tasks returns one page of the owner's tasks sorted by creation
	// time descending (ties broken by id descending) plus the total
	// match count.
	Tasks(ctx context.Context, owner uuid.UUID, filter TaskFilter, page, size int) ([]models.Task, int64, error)

	CountTasks(ctx context.Context, owner uuid.UUID) (int64, error)
	CountTasksByStatus(ctx context.Context, owner uuid.UUID, status models.TaskStatus) (int64, error)
	CountTasksDueOn(ctx context.Context, owner uuid.UUID, day models.Date) (int64, error)
	// CountTasksOverdue counts tasks due strictly before day whose
	// status is not COMPLETED. Tasks without a due date never count.
	CountTasksOverdue(ctx context.Context, owner uuid.UUID, day models.Date) (int64, error)
}
