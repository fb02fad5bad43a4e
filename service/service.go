// Package service holds the ownership-enforcing domain logic. Every
// operation takes the caller's verified user id and checks it against
// the aggregate's owner before reading or writing anything else.
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/shuaizuo666/Task-System/apperr"
	"github.com/shuaizuo666/Task-System/models"
	"github.com/shuaizuo666/Task-System/store"
)

// ownedTask loads a task and distinguishes "does not exist" from
// "exists but belongs to someone else".
func ownedTask(ctx context.Context, s store.Store, userID, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.TaskByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("task not found")
		}
		return nil, apperr.Internal("could not load task", err)
	}
	if task.UserID != userID {
		return nil, apperr.Forbidden("not allowed to access this task")
	}
	return task, nil
}

func ownedList(ctx context.Context, s store.Store, userID, listID uuid.UUID) (*models.TaskList, error) {
	list, err := s.ListByID(ctx, listID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("task list not found")
		}
		return nil, apperr.Internal("could not load task list", err)
	}
	if list.UserID != userID {
		return nil, apperr.Forbidden("not allowed to access this task list")
	}
	return list, nil
}

// defaultList resolves the caller's default list. Its absence is an
// invariant violation, never a user-facing not-found.
func defaultList(ctx context.Context, s store.Store, userID uuid.UUID) (*models.TaskList, error) {
	list, err := s.DefaultList(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("default task list is missing", err)
	}
	return list, nil
}
