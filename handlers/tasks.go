package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/shuaizuo666/Task-System/apperr"
	"github.com/shuaizuo666/Task-System/middleware"
	"github.com/shuaizuo666/Task-System/models"
	"github.com/shuaizuo666/Task-System/service"
	"github.com/shuaizuo666/Task-System/store"
)

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid id")
	}
	return id, nil
}

// HandleCreateTask creates a task for the caller.
//
//	@Summary  Create a task
//	@Accept   json
//	@Produce  json
//	@Param    request body models.CreateTaskRequest true "task data"
//	@Success  201 {object} models.Task
//	@Router   /api/tasks [post]
func (h *Handler) HandleCreateTask(c *fiber.Ctx) error {
	userID, err := middleware.CallerID(c)
	if err != nil {
		return err
	}

	var req models.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	task, err := h.Tasks.Create(c.Context(), userID, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

// HandleGetTask returns one of the caller's tasks.
//
//	@Summary  Get a task
//	@Produce  json
//	@Param    id path string true "task id"
//	@Success  200 {object} models.Task
//	@Router   /api/tasks/{id} [get]
func (h *Handler) HandleGetTask(c *fiber.Ctx) error {
	userID, err := middleware.CallerID(c)
	if err != nil {
		return err
	}
	taskID, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}

	task, err := h.Tasks.Get(c.Context(), userID, taskID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(task)
}

// HandleUpdateTask partially updates one of the caller's tasks.
//
//	@Summary  Update a task
//	@Accept   json
//	@Produce  json
//	@Param    id path string true "task id"
//	@Param    request body models.UpdateTaskRequest true "fields to change"
//	@Success  200 {object} models.Task
//	@Router   /api/tasks/{id} [put]
func (h *Handler) HandleUpdateTask(c *fiber.Ctx) error {
	userID, err := middleware.CallerID(c)
	if err != nil {
		return err
	}
	taskID, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}

	var req models.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	task, err := h.Tasks.Update(c.Context(), userID, taskID, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(task)
}

// HandleDeleteTask removes one of the caller's tasks.
//
//	@Summary  Delete a task
//	@Produce  json
//	@Param    id path string true "task id"
//	@Success  200 {object} models.MessageResponse
//	@Router   /api/tasks/{id} [delete]
func (h *Handler) HandleDeleteTask(c *fiber.Ctx) error {
	userID, err := middleware.CallerID(c)
	if err != nil {
		return err
	}
	taskID, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}

	if err := h.Tasks.Delete(c.Context(), userID, taskID); err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(models.MessageResponse{Message: "task deleted"})
}

// HandleListTasks returns one page of the caller's tasks, optionally
// narrowed by exactly one of list_id, search, status, or priority.
// Invalid status or priority values are rejected, not ignored.
//
//	@Summary  List tasks
//	@Produce  json
//	@Param    page     query int    false "zero-indexed page"
//	@Param    size     query int    false "page size"
//	@Param    list_id  query string false "filter by list"
//	@Param    search   query string false "search in title/description"
//	@Param    status   query string false "filter by status"
//	@Param    priority query string false "filter by priority"
//	@Success  200 {object} models.TaskPage
//	@Router   /api/tasks [get]
func (h *Handler) HandleListTasks(c *fiber.Ctx) error {
	userID, err := middleware.CallerID(c)
	if err != nil {
		return err
	}

	filter := store.TaskFilter{Search: c.Query("search")}
	if raw := c.Query("list_id"); raw != "" {
		listID, err := parseID(raw)
		if err != nil {
			return err
		}
		filter.ListID = &listID
	}
	if raw := c.Query("status"); raw != "" {
		status, err := models.ParseTaskStatus(raw)
		if err != nil {
			return apperr.Validation(err.Error())
		}
		filter.Status = &status
	}
	if raw := c.Query("priority"); raw != "" {
		priority, err := models.ParseTaskPriority(raw)
		if err != nil {
			return apperr.Validation(err.Error())
		}
		filter.Priority = &priority
	}

	page, err := h.Tasks.List(c.Context(), userID, filter,
		c.QueryInt("page", 0), c.QueryInt("size", service.DefaultPageSize))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(page)
}
