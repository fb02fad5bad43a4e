package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/shuaizuo666/Task-System/apperr"
	"github.com/shuaizuo666/Task-System/models"
	"github.com/shuaizuo666/Task-System/store"
)

type Lists struct {
	store store.Store
}

func NewLists(s store.Store) *Lists {
	return &Lists{store: s}
}

func (s *Lists) Create(ctx context.Context, userID uuid.UUID, req models.TaskListRequest) (*models.TaskList, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validation("list name must not be empty")
	}

	list := &models.TaskList{Name: name, UserID: userID, IsDefault: false}
	if err := s.store.CreateList(ctx, list); err != nil {
		return nil, apperr.Internal("could not create task list", err)
	}
	return list, nil
}

// All returns the caller's lists, each with its live task count.
func (s *Lists) All(ctx context.Context, userID uuid.UUID) ([]models.TaskListWithCount, error) {
	lists, err := s.store.ListsByOwner(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("could not list task lists", err)
	}
	return lists, nil
}

func (s *Lists) Get(ctx context.Context, userID, listID uuid.UUID) (*models.TaskList, error) {
	return ownedList(ctx, s.store, userID, listID)
}

func (s *Lists) Default(ctx context.Context, userID uuid.UUID) (*models.TaskList, error) {
	return defaultList(ctx, s.store, userID)
}

// Update renames the list; the name is the only mutable attribute.
func (s *Lists) Update(ctx context.Context, userID, listID uuid.UUID, req models.TaskListRequest) (*models.TaskList, error) {
	list, err := ownedList(ctx, s.store, userID, listID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validation("list name must not be empty")
	}

	if err := s.store.RenameList(ctx, list.ID, name); err != nil {
		return nil, apperr.Internal("could not rename task list", err)
	}
	list.Name = name
	return list, nil
}

// Delete removes a non-default list after atomically reassigning its
// tasks to the caller's default list. The default list itself is
// permanently protected.
func (s *Lists) Delete(ctx context.Context, userID, listID uuid.UUID) error {
	list, err := ownedList(ctx, s.store, userID, listID)
	if err != nil {
		return err
	}
	if list.IsDefault {
		return apperr.Validation("cannot delete the default list")
	}

	target, err := defaultList(ctx, s.store, userID)
	if err != nil {
		return err
	}

	if err := s.store.DeleteListAndReassign(ctx, list.ID, target.ID); err != nil {
		return apperr.Internal("could not delete task list", err)
	}
	return nil
}
