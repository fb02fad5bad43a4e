package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shuaizuo666/Task-System/handlers"
	"github.com/shuaizuo666/Task-System/middleware"
	"github.com/shuaizuo666/Task-System/token"
)

func SetupRoutes(app *fiber.App, h *handlers.Handler, tokens *token.Service) {
	app.Get("/health", handlers.HandleHealthCheck)

	auth := app.Group("/api/auth")
	auth.Post("/register", h.HandleRegister)
	auth.Post("/login", h.HandleLogin)
	auth.Post("/logout", h.HandleLogout)

	api := app.Group("/api", middleware.JWT(tokens))

	api.Get("/tasks", h.HandleListTasks)
	api.Post("/tasks", h.HandleCreateTask)
	api.Get("/tasks/:id", h.HandleGetTask)
	api.Put("/tasks/:id", h.HandleUpdateTask)
	api.Delete("/tasks/:id", h.HandleDeleteTask)

	api.Get("/lists", h.HandleAllLists)
	api.Post("/lists", h.HandleCreateList)
	api.Get("/lists/default", h.HandleDefaultList)
	api.Get("/lists/:id", h.HandleGetList)
	api.Put("/lists/:id", h.HandleUpdateList)
	api.Delete("/lists/:id", h.HandleDeleteList)

	api.Get("/statistics/dashboard", h.HandleDashboardStats)
	api.Get("/events", h.HandleEvents)
}
