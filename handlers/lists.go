package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shuaizuo666/Task-System/apperr"
	"github.com/shuaizuo666/Task-System/middleware"
	"github.com/shuaizuo666/Task-System/models"
)

// HandleCreateList creates a non-default list for the caller.
//
//	@Summary  Create a task list
//	@Accept   json
//	@Produce  json
//	@Param    request body models.TaskListRequest true "list data"
//	@Success  201 {object} models.TaskList
//	@Router   /api/lists [post]
func (h *Handler) HandleCreateList(c *fiber.Ctx) error {
	userID, err := middleware.CallerID(c)
	if err != nil {
		return err
	}

	var req models.TaskListRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	list, err := h.Lists.Create(c.Context(), userID, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(list)
}

// HandleAllLists returns the caller's lists with live task counts.
//
//	@Summary  List task lists
//	@Produce  json
//	@Success  200 {array} models.TaskListWithCount
//	@Router   /api/lists [get]
func (h *Handler) HandleAllLists(c *fiber.Ctx) error {
	userID, err := middleware.CallerID(c)
	if err != nil {
		return err
	}

	lists, err := h.Lists.All(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(lists)
}

// HandleDefaultList returns the caller's default list.
//
//	@Summary  Get the default list
//	@Produce  json
//	@Success  200 {object} models.TaskList
//	@Router   /api/lists/default [get]
func (h *Handler) HandleDefaultList(c *fiber.Ctx) error {
	userID, err := middleware.CallerID(c)
	if err != nil {
		return err
	}

	list, err := h.Lists.Default(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(list)
}

// HandleGetList returns one of the caller's lists.
//
//	@Summary  Get a task list
//	@Produce  json
//	@Param    id path string true "list id"
//	@Success  200 {object} models.TaskList
//	@Router   /api/lists/{id} [get]
func (h *Handler) HandleGetList(c *fiber.Ctx) error {
	userID, err := middleware.CallerID(c)
	if err != nil {
		return err
	}
	listID, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}

	list, err := h.Lists.Get(c.Context(), userID, listID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(list)
}

// HandleUpdateList renames one of the caller's lists.
//
//	@Summary  Rename a task list
//	@Accept   json
//	@Produce  json
//	@Param    id path string true "list id"
//	@Param    request body models.TaskListRequest true "new name"
//	@Success  200 {object} models.TaskList
//	@Router   /api/lists/{id} [put]
func (h *Handler) HandleUpdateList(c *fiber.Ctx) error {
	userID, err := middleware.CallerID(c)
	if err != nil {
		return err
	}
	listID, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}

	var req models.TaskListRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	list, err := h.Lists.Update(c.Context(), userID, listID, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(list)
}

// HandleDeleteList deletes a non-default list, moving its tasks to the
// caller's default list first.
//
//	@Summary  Delete a task list
//	@Produce  json
//	@Param    id path string true "list id"
//	@Success  200 {object} models.MessageResponse
//	@Router   /api/lists/{id} [delete]
func (h *Handler) HandleDeleteList(c *fiber.Ctx) error {
	userID, err := middleware.CallerID(c)
	if err != nil {
		return err
	}
	listID, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}

	if err := h.Lists.Delete(c.Context(), userID, listID); err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(models.MessageResponse{Message: "task list deleted"})
}
