// Package handlers adapts HTTP requests to the domain services. Request
// parsing and response shaping live here; all rules and ownership checks
// live in the services.
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/shuaizuo666/Task-System/apperr"
	"github.com/shuaizuo666/Task-System/auth"
	"github.com/shuaizuo666/Task-System/events"
	"github.com/shuaizuo666/Task-System/service"
)

type Handler struct {
	Auth  *auth.Service
	Tasks *service.Tasks
	Lists *service.Lists
	Stats *service.Stats
	Hub   *events.Broker
}

func New(authSvc *auth.Service, tasks *service.Tasks, lists *service.Lists, stats *service.Stats, hub *events.Broker) *Handler {
	return &Handler{Auth: authSvc, Tasks: tasks, Lists: lists, Stats: stats, Hub: hub}
}

// ErrorHandler is the app-wide fiber error handler. Domain error kinds
// map to status codes; anything unclassified becomes a 500 with a
// generic body so internals never leak.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}

	status := fiber.StatusInternalServerError
	message := "internal server error"
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		message = appErr.Message
		switch appErr.Kind {
		case apperr.KindValidation:
			status = fiber.StatusBadRequest
		case apperr.KindConflict:
			status = fiber.StatusConflict
		case apperr.KindUnauthorized:
			status = fiber.StatusUnauthorized
		case apperr.KindForbidden:
			status = fiber.StatusForbidden
		case apperr.KindNotFound:
			status = fiber.StatusNotFound
		default:
			status = fiber.StatusInternalServerError
		}
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}
