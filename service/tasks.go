package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/shuaizuo666/Task-System/apperr"
	"github.com/shuaizuo666/Task-System/events"
	"github.com/shuaizuo666/Task-System/models"
	"github.com/shuaizuo666/Task-System/store"
)

const (
	DefaultPageSize = 10
)

// Tasks implements task CRUD, filtering, and pagination scoped to one
// owner per call.
type Tasks struct {
	store store.Store
	hub   *events.Broker
}

func NewTasks(s store.Store, hub *events.Broker) *Tasks {
	return &Tasks{store: s, hub: hub}
}

// Create validates the title, resolves the target list (the caller's
// default list when none is given), applies the TODO/MEDIUM defaults,
// and persists the task under the caller's ownership.
func (s *Tasks) Create(ctx context.Context, userID uuid.UUID, req models.CreateTaskRequest) (*models.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperr.Validation("task title must not be empty")
	}

	var list *models.TaskList
	var err error
	if req.ListID != nil {
		list, err = ownedList(ctx, s.store, userID, *req.ListID)
	} else {
		list, err = defaultList(ctx, s.store, userID)
	}
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       title,
		Description: req.Description,
		Status:      models.StatusTodo,
		Priority:    models.PriorityMedium,
		DueDate:     req.DueDate,
		UserID:      userID,
		ListID:      list.ID,
		ListName:    list.Name,
	}
	if req.Status != nil {
		if _, err := models.ParseTaskStatus(string(*req.Status)); err != nil {
			return nil, apperr.Validation(err.Error())
		}
		task.Status = *req.Status
	}
	if req.Priority != nil {
		if _, err := models.ParseTaskPriority(string(*req.Priority)); err != nil {
			return nil, apperr.Validation(err.Error())
		}
		task.Priority = *req.Priority
	}

	if err := s.store.CreateTask(ctx, task); err != nil {
		return nil, apperr.Internal("could not create task", err)
	}
	s.publish(events.TypeTaskCreated, task)
	return task, nil
}

func (s *Tasks) Get(ctx context.Context, userID, taskID uuid.UUID) (*models.Task, error) {
	return ownedTask(ctx, s.store, userID, taskID)
}

// Update applies partial-update semantics: only fields present in the
// request overwrite the stored values.
func (s *Tasks) Update(ctx context.Context, userID, taskID uuid.UUID, req models.UpdateTaskRequest) (*models.Task, error) {
	task, err := ownedTask(ctx, s.store, userID, taskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperr.Validation("task title must not be empty")
		}
		task.Title = title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		if _, err := models.ParseTaskStatus(string(*req.Status)); err != nil {
			return nil, apperr.Validation(err.Error())
		}
		task.Status = *req.Status
	}
	if req.Priority != nil {
		if _, err := models.ParseTaskPriority(string(*req.Priority)); err != nil {
			return nil, apperr.Validation(err.Error())
		}
		task.Priority = *req.Priority
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.ListID != nil {
		list, err := ownedList(ctx, s.store, userID, *req.ListID)
		if err != nil {
			return nil, err
		}
		task.ListID = list.ID
		task.ListName = list.Name
	}

	if err := s.store.UpdateTask(ctx, task); err != nil {
		return nil, apperr.Internal("could not update task", err)
	}
	s.publish(events.TypeTaskUpdated, task)
	return task, nil
}

func (s *Tasks) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	task, err := ownedTask(ctx, s.store, userID, taskID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteTask(ctx, task.ID); err != nil {
		return apperr.Internal("could not delete task", err)
	}
	s.publish(events.TypeTaskDeleted, task)
	return nil
}

// List returns one page of the caller's tasks. Filters are mutually
// exclusive; when several are supplied only the highest-precedence
// dimension is honored: list, then search, then status, then priority.
func (s *Tasks) List(ctx context.Context, userID uuid.UUID, filter store.TaskFilter, page, size int) (*models.TaskPage, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}

	if filter.ListID != nil {
		if _, err := ownedList(ctx, s.store, userID, *filter.ListID); err != nil {
			return nil, err
		}
	}

	tasks, total, err := s.store.Tasks(ctx, userID, normalize(filter), page, size)
	if err != nil {
		return nil, apperr.Internal("could not list tasks", err)
	}

	totalPages := int(total) / size
	if int(total)%size != 0 {
		totalPages++
	}
	return &models.TaskPage{
		Items:         tasks,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

// normalize keeps only the highest-precedence filter dimension.
func normalize(f store.TaskFilter) store.TaskFilter {
	switch {
	case f.ListID != nil:
		return store.TaskFilter{ListID: f.ListID}
	case f.Search != "":
		return store.TaskFilter{Search: f.Search}
	case f.Status != nil:
		return store.TaskFilter{Status: f.Status}
	case f.Priority != nil:
		return store.TaskFilter{Priority: f.Priority}
	}
	return store.TaskFilter{}
}

func (s *Tasks) publish(eventType string, task *models.Task) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(events.Event{Type: eventType, UserID: task.UserID.String(), Task: task})
}
